package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/api/handler"
	"github.com/interviewme/backend/internal/core/domain"
)

func TestRequireActive(t *testing.T) {
	cases := []struct {
		name    string
		user    *domain.User
		wantErr error
	}{
		{"no user", nil, domain.ErrUnauthenticated},
		{"inactive", &domain.User{ID: "u1", IsActive: false}, domain.ErrUserInactive},
		{"active", &domain.User{ID: "u1", IsActive: true}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := echo.New()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
			if tc.user != nil {
				c.Set(handler.UserContextKey, tc.user)
			}

			called := false
			err := RequireActive()(func(c echo.Context) error {
				called = true
				return nil
			})(c)

			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
			if called != (tc.wantErr == nil) {
				t.Errorf("next called = %v", called)
			}
		})
	}
}
