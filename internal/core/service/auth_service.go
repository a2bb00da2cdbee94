package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gatehouse/auth-api/internal/core/domain"
	"github.com/gatehouse/auth-api/internal/core/ports"
)

// bcrypt.DefaultCost is 10 salt rounds.
const hashCost = bcrypt.DefaultCost

// AuthService implements registration, login and the startup admin bootstrap.
// All collaborators are injected; the service holds no mutable state.
type AuthService struct {
	users    ports.UserRepository
	roles    ports.RoleRepository
	tokens   ports.TokenService
	throttle ports.LoginThrottle
}

// NewAuthService wires the auth flow. throttle may be nil, in which case
// failed-login throttling is disabled.
func NewAuthService(users ports.UserRepository, roles ports.RoleRepository, tokens ports.TokenService, throttle ports.LoginThrottle) *AuthService {
	return &AuthService{users: users, roles: roles, tokens: tokens, throttle: throttle}
}

// Register creates a user bound to an existing role. The email pre-check is
// an optimization only; the repository's uniqueness constraint is the source
// of truth and closes the check-then-create race.
func (s *AuthService) Register(ctx context.Context, userName, email, password, roleName string) (*domain.User, error) {
	if userName == "" || email == "" || password == "" || roleName == "" {
		return nil, domain.ErrInvalidInput
	}
	email = strings.ToLower(email)

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	// A miss here is a seeding bug, not user error: the primitive roles are
	// provisioned before the service accepts traffic.
	role, err := s.roles.FindByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		UserName:     userName,
		Email:        email,
		PasswordHash: string(hash),
		RoleID:       role.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	return s.users.Create(ctx, user)
}

// Login verifies credentials and mints a token with the default TTL. Unknown
// email and wrong password both end in a 401 at the edge; the throttle counts
// either as a failure.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	key := strings.ToLower(email)
	if s.tooManyFailures(ctx, key) {
		return "", nil, domain.ErrTooManyAttempts
	}

	user, err := s.users.FindByEmail(ctx, key)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, key)
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, key)
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, 0)
	if err != nil {
		return "", nil, err
	}

	if s.throttle != nil {
		_ = s.throttle.Reset(ctx, key)
	}
	return token, user, nil
}

// EnsureAdmin provisions the bootstrap administrator iff absent. A concurrent
// restart losing the create race is fine: the account exists either way.
func (s *AuthService) EnsureAdmin(ctx context.Context, userName, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	_, err := s.users.FindByEmail(ctx, strings.ToLower(email))
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	_, err = s.Register(ctx, userName, email, password, domain.RoleAdmin)
	if errors.Is(err, domain.ErrEmailTaken) {
		return nil
	}
	return err
}

// Throttle errors never block a login: the throttle fails open so a redis
// outage cannot lock every account out.
func (s *AuthService) tooManyFailures(ctx context.Context, key string) bool {
	if s.throttle == nil {
		return false
	}
	blocked, err := s.throttle.TooManyFailures(ctx, key)
	return err == nil && blocked
}

func (s *AuthService) recordFailure(ctx context.Context, key string) {
	if s.throttle != nil {
		_ = s.throttle.RecordFailure(ctx, key)
	}
}
