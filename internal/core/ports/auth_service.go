package ports

import (
	"context"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

// AuthService orchestrates registration, login and admin bootstrap.
type AuthService interface {
	Register(ctx context.Context, userName, email, password, roleName string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	// EnsureAdmin provisions the bootstrap administrator iff no user with the
	// given email exists. Idempotent, called once at startup.
	EnsureAdmin(ctx context.Context, userName, email, password string) error
}
