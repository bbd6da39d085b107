package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	err := fmt.Errorf("create booking: %w", NotFound("event abc not found"))

	if !errors.Is(err, ErrNotFound) {
		t.Fatal("expected wrapped NotFound to match ErrNotFound")
	}
	if errors.Is(err, ErrInvalidInput) {
		t.Fatal("NotFound must not match ErrInvalidInput")
	}
}

func TestStorageUnwrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Storage("failed to create booking", cause)

	if !errors.Is(err, cause) {
		t.Fatal("expected storage error to unwrap to its cause")
	}
	if KindOf(err) != KindStorageFailure {
		t.Fatalf("KindOf = %s, want %s", KindOf(err), KindStorageFailure)
	}
}

func TestKindOfForeignError(t *testing.T) {
	if got := KindOf(errors.New("boom")); got != KindStorageFailure {
		t.Fatalf("KindOf = %s, want %s", got, KindStorageFailure)
	}
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindStorageFailure, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := tt.kind.HTTPStatus(); got != tt.want {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
