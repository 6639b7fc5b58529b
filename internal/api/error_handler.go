package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
)

const (
	statusFail  = "fail"
	statusError = "error"

	msgRouteNotFound = "Route not found"
	msgInternal      = "Internal server error"
)

// errorResponse is the envelope for every non-2xx answer.
type errorResponse struct {
	Status  string              `json:"status"`
	Message string              `json:"message"`
	Errors  []domain.FieldError `json:"errors,omitempty"`
	Stack   []string            `json:"stack,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps domain errors to HTTP status codes through domain.KindOf.
//   - Logs unexpected errors without leaking details to the client.
//   - Adds the wrapped error chain as "stack" outside production.
func NewHTTPErrorHandler(log zerolog.Logger, production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		resp, code := resolveError(err, log, c)
		if !production {
			resp.Stack = errorChain(err)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (errorResponse, int) {
	// Echo's own errors (router 404, body limit, rate limit, auth middleware).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			logUnhandled(log, c, err)
		}
		msg := fmt.Sprintf("%v", he.Message)
		if he.Code == http.StatusNotFound && errors.Is(err, echo.ErrNotFound) {
			msg = msgRouteNotFound
		}
		return errorResponse{Status: statusOf(he.Code), Message: msg}, he.Code
	}

	code := statusCode(domain.KindOf(err))
	msg, public := domain.PublicMessage(err)
	if !public || code >= http.StatusInternalServerError {
		logUnhandled(log, c, err)
	}
	if !public {
		msg = msgInternal
	}

	resp := errorResponse{Status: statusOf(code), Message: msg}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Errors = ve.Fields
	}
	return resp, code
}

func statusCode(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindUnauthorized:
		return http.StatusUnauthorized
	case domain.KindForbidden:
		return http.StatusForbidden
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func statusOf(code int) string {
	if code >= http.StatusInternalServerError {
		return statusError
	}
	return statusFail
}

func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}

// errorChain flattens err and everything it wraps, outermost first.
func errorChain(err error) []string {
	var chain []string
	var walk func(error)
	walk = func(e error) {
		if e == nil {
			return
		}
		chain = append(chain, e.Error())
		switch u := e.(type) {
		case interface{ Unwrap() []error }:
			for _, inner := range u.Unwrap() {
				walk(inner)
			}
		case interface{ Unwrap() error }:
			walk(u.Unwrap())
		}
	}
	walk(err)
	return chain
}
