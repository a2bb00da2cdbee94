package ports

import (
	"time"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

// TokenService mints and checks signed, time-bounded access tokens.
type TokenService interface {
	// Issue signs a token for subjectID expiring after ttl. A ttl <= 0
	// selects the configured default.
	Issue(subjectID string, ttl time.Duration) (string, error)
	// Verify checks signature and expiry. It returns domain.ErrInvalidToken
	// for anything unverifiable; this is an expected outcome on gated routes.
	Verify(token string) (*domain.Claim, error)
}
