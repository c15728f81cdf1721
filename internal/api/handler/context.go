package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/taskboard/taskboard-api/internal/api/middleware"
	"github.com/taskboard/taskboard-api/internal/core/ports"
)

// actorFrom returns the authenticated caller, or nil when the route is not
// behind the Auth middleware.
func actorFrom(c echo.Context) *ports.Actor {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return nil
	}
	return &ports.Actor{UserID: claims.UserID, Role: claims.Role}
}

// creatorID prefers the authenticated caller over whatever the body claims.
func creatorID(c echo.Context, fromBody string) string {
	if actor := actorFrom(c); actor != nil {
		return actor.UserID
	}
	return fromBody
}
