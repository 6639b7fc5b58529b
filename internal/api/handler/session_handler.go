package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

// SessionHandler handles HTTP requests for interview sessions.
type SessionHandler struct {
	sessions ports.SessionService
	queries  ports.SessionQueryService
}

func NewSessionHandler(sessions ports.SessionService, queries ports.SessionQueryService) *SessionHandler {
	return &SessionHandler{sessions: sessions, queries: queries}
}

// Create handles POST /sessions.
//
// @Summary      Create a session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createSessionRequest  true  "Problem and difficulty"
// @Success      201   {object}  successResponse{data=sessionEnvelope}
// @Failure      400   {object}  failResponse
// @Failure      401   {object}  failResponse
// @Failure      409   {object}  failResponse
// @Failure      500   {object}  failResponse
// @Router       /sessions [post]
func (h *SessionHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createSessionRequest
	if err := c.Bind(&req); err != nil {
		return domain.NewValidationError("body", "Invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	session, err := h.sessions.Create(c.Request().Context(), user, ports.CreateSessionInput{
		Problem:    req.Problem,
		Difficulty: req.Difficulty,
	})
	if err != nil {
		return err
	}

	view := ports.SessionView{Session: session, Host: summaryOf(user)}
	return success(c, http.StatusCreated, sessionEnvelope{Session: toSessionResponse(view)})
}

// ListActive handles GET /sessions/active.
//
// @Summary      List active sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of sessions (default 20, max 100)"
// @Success      200    {object}  successResponse{data=sessionsEnvelope}
// @Failure      401    {object}  failResponse
// @Router       /sessions/active [get]
func (h *SessionHandler) ListActive(c echo.Context) error {
	limit, err := bindLimit(c)
	if err != nil {
		return err
	}

	views, err := h.queries.ListActive(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sessionsEnvelope{Sessions: toSessionResponses(views)})
}

// MyRecent handles GET /sessions/my-recent.
//
// @Summary      List the caller's completed sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum number of sessions (default 20, max 100)"
// @Success      200    {object}  successResponse{data=sessionsEnvelope}
// @Failure      401    {object}  failResponse
// @Router       /sessions/my-recent [get]
func (h *SessionHandler) MyRecent(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	limit, err := bindLimit(c)
	if err != nil {
		return err
	}

	views, err := h.queries.ListRecentForUser(c.Request().Context(), user.ID, limit)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sessionsEnvelope{Sessions: toSessionResponses(views)})
}

// Get handles GET /sessions/:id.
//
// @Summary      Get a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  successResponse{data=sessionEnvelope}
// @Failure      404  {object}  failResponse
// @Router       /sessions/{id} [get]
func (h *SessionHandler) Get(c echo.Context) error {
	id, err := bindSessionID(c)
	if err != nil {
		return err
	}

	view, err := h.queries.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return success(c, http.StatusOK, sessionEnvelope{Session: toSessionResponse(*view)})
}

// Join handles POST /sessions/:id/join.
//
// @Summary      Join a session as participant
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  successResponse{data=sessionEnvelope}
// @Failure      400  {object}  failResponse
// @Failure      404  {object}  failResponse
// @Failure      409  {object}  failResponse
// @Failure      500  {object}  failResponse
// @Router       /sessions/{id}/join [post]
func (h *SessionHandler) Join(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bindSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.Join(c.Request().Context(), id, user)
	if err != nil {
		return err
	}

	view := h.populated(c.Request().Context(), session, user)
	return success(c, http.StatusOK, sessionEnvelope{Session: toSessionResponse(view)})
}

// End handles POST /sessions/:id/end.
//
// @Summary      End a session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Session id"
// @Success      200  {object}  successResponse{data=sessionEnvelope}
// @Failure      400  {object}  failResponse
// @Failure      403  {object}  failResponse
// @Failure      404  {object}  failResponse
// @Failure      500  {object}  failResponse
// @Router       /sessions/{id}/end [post]
func (h *SessionHandler) End(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	id, err := bindSessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessions.End(c.Request().Context(), id, user)
	if err != nil {
		return err
	}

	view := h.populated(c.Request().Context(), session, user)
	return success(c, http.StatusOK, sessionEnvelope{Session: toSessionResponse(view)})
}

// populated re-reads s with host and participant resolved. The state change
// has already happened, so a failed read falls back to what the caller knows.
func (h *SessionHandler) populated(ctx context.Context, s *domain.Session, caller *domain.User) ports.SessionView {
	if view, err := h.queries.Get(ctx, s.ID); err == nil {
		return *view
	}
	view := ports.SessionView{Session: s}
	switch caller.ID {
	case s.HostID:
		view.Host = summaryOf(caller)
	case s.ParticipantID:
		view.Participant = summaryOf(caller)
	}
	return view
}

// bindSessionID reports a malformed id as an unknown session.
func bindSessionID(c echo.Context) (string, error) {
	p := sessionIDParam{ID: c.Param("id")}
	if err := c.Validate(&p); err != nil {
		return "", domain.ErrSessionNotFound
	}
	return p.ID, nil
}

func bindLimit(c echo.Context) (int, error) {
	var q listQuery
	if err := (&echo.DefaultBinder{}).BindQueryParams(c, &q); err != nil {
		return 0, domain.NewValidationError("limit", "Limit must be a number")
	}
	if err := c.Validate(&q); err != nil {
		return 0, err
	}
	return q.Limit, nil
}
