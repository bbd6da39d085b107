// Package token issues and verifies the signed bearer tokens used by the API.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// Subject is what a token is issued for.
type Subject struct {
	ID      uuid.UUID
	IsAdmin bool
}

// Claims is the verified content of a token.
type Claims struct {
	UserID    uuid.UUID
	IsAdmin   bool
	ExpiresAt time.Time
}

type tokenClaims struct {
	jwt.RegisteredClaims
	IsAdmin bool `json:"adm"`
}

// Service signs tokens with a single HMAC key. It is safe for concurrent use.
type Service struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

func NewService(secret, issuer string, ttl time.Duration) *Service {
	return &Service{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of s that reads time from now.
func (s *Service) WithClock(now func() time.Time) *Service {
	cp := *s
	cp.now = now
	return &cp
}

// Issue returns a signed token for sub and the instant it stops being valid.
func (s *Service) Issue(sub Subject) (string, time.Time, error) {
	issuedAt := s.now().UTC().Truncate(time.Second)
	expiresAt := issuedAt.Add(s.ttl)

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub.ID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		IsAdmin: sub.IsAdmin,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify checks signature and expiry. It never touches storage.
func (s *Service) Verify(raw string) (Claims, error) {
	var parsed tokenClaims
	_, err := jwt.ParseWithClaims(raw, &parsed, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if s.issuer != "" && parsed.Issuer != s.issuer {
		return Claims{}, fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)
	}
	if parsed.ExpiresAt == nil {
		return Claims{}, fmt.Errorf("%w: missing exp", ErrInvalidToken)
	}

	userID, err := uuid.Parse(parsed.Subject)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	expiresAt := parsed.ExpiresAt.Time.UTC()
	if !s.now().UTC().Before(expiresAt) {
		return Claims{}, ErrExpiredToken
	}

	return Claims{
		UserID:    userID,
		IsAdmin:   parsed.IsAdmin,
		ExpiresAt: expiresAt,
	}, nil
}
