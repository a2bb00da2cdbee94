package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/gatehouse/auth-api/internal/api/metrics"
	"github.com/gatehouse/auth-api/internal/core/domain"
	"github.com/gatehouse/auth-api/internal/core/ports"
)

// claimKey is the echo context key the verified claim is stored under.
const claimKey = "auth_claim"

// Authenticated reads the access token from its cookie, verifies it, and
// attaches the claim to the request context. The chain halts with 401 when
// the cookie is absent or the token does not verify.
func Authenticated(cookieName string, tokens ports.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				metrics.TokenVerificationsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "access denied, you need to login")
			}

			claim, err := tokens.Verify(cookie.Value)
			if err != nil {
				metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
			c.Set(claimKey, claim)
			return next(c)
		}
	}
}

// ClaimFromContext returns the claim attached by Authenticated.
func ClaimFromContext(c echo.Context) (*domain.Claim, bool) {
	claim, ok := c.Get(claimKey).(*domain.Claim)
	return claim, ok
}
