package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/interviewme/backend/internal/core/ports"
)

// ChatHandler issues communication provider credentials.
type ChatHandler struct {
	chat ports.ChatService
}

func NewChatHandler(chat ports.ChatService) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Token handles GET /chat/token.
//
// @Summary      Issue a video/chat token
// @Tags         chat
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  successResponse{data=chatTokenResponse}
// @Failure      401  {object}  failResponse
// @Failure      500  {object}  failResponse
// @Router       /chat/token [get]
func (h *ChatHandler) Token(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	tok, err := h.chat.IssueToken(c.Request().Context(), user)
	if err != nil {
		return err
	}

	return success(c, http.StatusOK, chatTokenResponse{
		Token:     tok.Token,
		UserID:    tok.UserID,
		UserName:  tok.UserName,
		UserImage: tok.UserImage,
	})
}
