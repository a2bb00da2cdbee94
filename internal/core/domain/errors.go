package domain

import "errors"

var (
	// ErrInvalidInput rejects requests whose shape survived binding but not
	// semantic checks.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmailTaken is returned when registration hits the email uniqueness
	// constraint.
	ErrEmailTaken = errors.New("email address already in use")

	// ErrUserNotFound is returned when no user matches the lookup.
	ErrUserNotFound = errors.New("no user with matching email")

	// ErrInvalidCredentials is returned on password mismatch.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrRoleNotFound indicates a role lookup miss. During registration this
	// is an invariant violation: the primitive roles are seeded at startup.
	ErrRoleNotFound = errors.New("role does not exist")

	// ErrInvalidToken covers malformed tokens, bad signatures and expired
	// claims alike. Verification failure is an expected outcome, not a fault.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMissingClaims indicates a role check ran without an authenticated
	// claim in context. Unreachable when the gates are ordered correctly.
	ErrMissingClaims = errors.New("missing authentication claims")

	// ErrForbidden is returned when the caller is authenticated but below the
	// required rank.
	ErrForbidden = errors.New("access forbidden")

	// ErrTooManyAttempts is returned when the failed-login throttle trips.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
