package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/gatehouse/auth-api/internal/core/domain"
)

const defaultTokenTTL = 2 * time.Hour

// JWTTokenService issues and verifies HS256-signed access tokens. The secret
// is fixed at construction and never rotated during a run.
type JWTTokenService struct {
	secret     []byte
	defaultTTL time.Duration
}

func NewJWTTokenService(secret string, defaultTTL time.Duration) *JWTTokenService {
	if defaultTTL <= 0 {
		defaultTTL = defaultTokenTTL
	}
	return &JWTTokenService{secret: []byte(secret), defaultTTL: defaultTTL}
}

// Issue signs a token whose subject is subjectID and whose expiry is
// now + ttl, at whole-second resolution.
func (s *JWTTokenService) Issue(subjectID string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = s.defaultTTL
	}

	now := time.Now().UTC().Truncate(time.Second)
	claims := jwt.RegisteredClaims{
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify checks signature integrity and expiry. Every failure mode collapses
// into domain.ErrInvalidToken: callers only need the yes/no.
func (s *JWTTokenService) Verify(token string) (*domain.Claim, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	rc, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || rc.Subject == "" || rc.ExpiresAt == nil {
		return nil, domain.ErrInvalidToken
	}

	// Strict cutoff: a token presented at exactly its expiry instant is dead.
	// No clock-skew allowance.
	if !time.Now().Before(rc.ExpiresAt.Time) {
		return nil, domain.ErrInvalidToken
	}

	claim := &domain.Claim{
		SubjectID: rc.Subject,
		ExpiresAt: rc.ExpiresAt.Time,
	}
	if rc.IssuedAt != nil {
		claim.IssuedAt = rc.IssuedAt.Time
	}
	return claim, nil
}
