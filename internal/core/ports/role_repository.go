package ports

import (
	"context"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

// RoleRepository persists the fixed role set and resolves id/name lookups.
type RoleRepository interface {
	// EnsureSeeded creates each named role iff absent. Idempotent, safe to
	// call on every startup.
	EnsureSeeded(ctx context.Context, names []string) error
	FindByName(ctx context.Context, name string) (*domain.Role, error)
	FindByID(ctx context.Context, id string) (*domain.Role, error)
}
