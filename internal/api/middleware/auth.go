package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/metrics"
	"github.com/taskboard/taskboard-api/internal/core/session"
)

const (
	ctxClaims = "claims"
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// Auth verifies the bearer token with guard and injects the claims into
// context.
func Auth(guard *session.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				metrics.TokenRejectionsTotal.WithLabelValues("missing").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			claims, err := guard.Verify(strings.TrimSpace(parts[1]))
			if err != nil {
				metrics.TokenRejectionsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(ctxClaims, claims)
			c.Set(ctxUserID, claims.UserID)
			c.Set(ctxRole, claims.Role)

			return next(c)
		}
	}
}

// ClaimsFrom returns the claims set by Auth, if it ran.
func ClaimsFrom(c echo.Context) (*session.Claims, bool) {
	claims, ok := c.Get(ctxClaims).(*session.Claims)
	return claims, ok && claims != nil
}
