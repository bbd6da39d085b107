package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"event-booking/internal/apperror"
	"event-booking/internal/data/entity"
	"event-booking/internal/data/repository"
	"event-booking/internal/dto/request"
	"event-booking/internal/dto/response"
	"event-booking/pkg/token"
	"event-booking/pkg/utils"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error)
	Profile(ctx context.Context, identity utils.Identity) (*response.UserResponse, error)

	// SeedAdmin makes sure an administrator with this email exists.
	SeedAdmin(ctx context.Context, name, email, password string) error
}

type authService struct {
	users  repository.UserRepository
	tokens *token.Service
	log    *zap.Logger
}

func NewAuthService(users repository.UserRepository, tokens *token.Service, log *zap.Logger) AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	email := normalizeEmail(req.Email)

	// 2. Check email is free
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, apperror.Storage("failed to check email", err)
	}
	if existing != nil {
		return nil, apperror.InvalidInput("email already registered")
	}

	// 3. Hash password
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, apperror.Storage("failed to process password", err)
	}

	// 4. Save user
	user := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      false,
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration for the same email
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperror.InvalidInput("email already registered")
		}
		return nil, apperror.Storage("failed to create account", err)
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	// 5. Auto login after register
	return s.issue(user)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, apperror.Validation(errs)
	}

	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, apperror.Storage("failed to find user", err)
	}

	if user == nil {
		s.log.Warn("User not found for login", zap.String("email", req.Email))
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Invalid password", zap.String("user_id", user.ID.String()))
		return nil, apperror.Unauthenticated("invalid credentials")
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))

	return s.issue(user)
}

func (s *authService) Profile(ctx context.Context, identity utils.Identity) (*response.UserResponse, error) {
	user, err := s.users.FindByID(ctx, identity.UserID)
	if err != nil {
		return nil, apperror.Storage("failed to load profile", err)
	}
	if user == nil {
		return nil, apperror.NotFound("user not found")
	}

	resp := response.UserToResponse(user)
	return &resp, nil
}

func (s *authService) SeedAdmin(ctx context.Context, name, email, password string) error {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return apperror.InvalidInput("admin email and password are required")
	}

	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperror.Storage("failed to check admin account", err)
	}

	if existing != nil {
		if existing.IsAdmin {
			s.log.Info("Admin account present", zap.String("email", email))
			return nil
		}

		existing.IsAdmin = true
		existing.Touch(time.Now())
		if err := s.users.Update(ctx, existing); err != nil {
			return apperror.Storage("failed to promote admin account", err)
		}

		s.log.Info("Existing account promoted to admin", zap.String("user_id", existing.ID.String()))
		return nil
	}

	hashedPassword, err := utils.HashPassword(password)
	if err != nil {
		return apperror.Storage("failed to process password", err)
	}

	admin := &entity.User{
		Base:         entity.NewBase(time.Now()),
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		IsAdmin:      true,
	}

	if err := s.users.Create(ctx, admin); err != nil {
		return apperror.Storage("failed to create admin account", err)
	}

	s.log.Info("Admin account seeded",
		zap.String("user_id", admin.ID.String()),
		zap.String("email", email))
	return nil
}

// ==================== HELPER METHODS ====================

func (s *authService) issue(user *entity.User) (*response.AuthResponse, error) {
	signed, expiresAt, err := s.tokens.Issue(token.Subject{ID: user.ID, IsAdmin: user.IsAdmin})
	if err != nil {
		s.log.Error("Failed to issue token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, apperror.Storage("failed to issue token", err)
	}

	return &response.AuthResponse{
		User:      response.UserToResponse(user),
		Token:     signed,
		ExpiresAt: expiresAt,
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
