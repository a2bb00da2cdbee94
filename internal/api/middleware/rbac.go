package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse/auth-api/internal/core/domain"
	"github.com/gatehouse/auth-api/internal/core/ports"
)

// Moderator admits moderators and admins.
func Moderator(users ports.UserRepository, roles ports.RoleRepository) echo.MiddlewareFunc {
	return minRank(domain.RankModerator, "content reserved to moderators and admins", users, roles)
}

// Admin admits admins only.
func Admin(users ports.UserRepository, roles ports.RoleRepository) echo.MiddlewareFunc {
	return minRank(domain.RankAdmin, "content reserved to admins", users, roles)
}

// minRank resolves the authenticated subject's role and compares ranks.
// It assumes Authenticated already ran; a missing claim is an internal
// inconsistency, not a client error.
func minRank(min domain.Rank, deniedMsg string, users ports.UserRepository, roles ports.RoleRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claim, ok := ClaimFromContext(c)
			if !ok {
				return domain.ErrMissingClaims
			}

			ctx := c.Request().Context()

			user, err := users.FindByID(ctx, claim.SubjectID)
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					// Valid token for a vanished subject.
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			role, err := roles.FindByID(ctx, user.RoleID)
			if err != nil {
				return err
			}
			rank, ok := role.Rank()
			if !ok {
				return domain.ErrRoleNotFound
			}

			if rank < min {
				return echo.NewHTTPError(http.StatusForbidden, deniedMsg)
			}
			return next(c)
		}
	}
}
