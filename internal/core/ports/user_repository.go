package ports

import (
	"context"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

// UserRepository persists user credentials. The store itself enforces email
// uniqueness atomically; callers may pre-check but must not rely on it.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
