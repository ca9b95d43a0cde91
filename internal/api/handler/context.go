package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/acquisitions/user-api/internal/core/domain"
)

// actorFromContext extracts the authenticated actor injected by the Auth
// middleware. A nil return means the request is anonymous; the authorization
// policy turns that into ErrUnauthenticated for protected mutations.
func actorFromContext(c echo.Context) *domain.Actor {
	id, ok := c.Get("user_id").(int64)
	if !ok || id <= 0 {
		return nil
	}
	role, _ := c.Get("role").(string)
	return &domain.Actor{ID: id, Role: role}
}
