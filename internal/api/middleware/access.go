package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/api/handler"
	"github.com/interviewme/backend/internal/core/domain"
)

// RequireActive rejects deactivated accounts. It must run after Auth.
func RequireActive() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, _ := c.Get(handler.UserContextKey).(*domain.User)
			if user == nil {
				return domain.ErrUnauthenticated
			}
			if !user.IsActive {
				return domain.ErrUserInactive
			}
			return next(c)
		}
	}
}
