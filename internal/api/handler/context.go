package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/core/domain"
)

// UserContextKey is where the Auth middleware stores the resolved *domain.User.
const UserContextKey = "user"

// currentUser returns the local user resolved by the Auth middleware. Its
// absence means the route was mounted without authentication.
func currentUser(c echo.Context) (*domain.User, error) {
	user, _ := c.Get(UserContextKey).(*domain.User)
	if user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}
