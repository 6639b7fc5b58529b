package handler

import "github.com/labstack/echo/v4"

// successResponse is the envelope of every 2xx answer.
type successResponse struct {
	Status string `json:"status" example:"success"`
	Data   any    `json:"data"`
}

func success(c echo.Context, code int, data any) error {
	return c.JSON(code, successResponse{Status: "success", Data: data})
}

// failResponse documents the error envelope rendered by the HTTP error handler.
type failResponse struct {
	Status  string              `json:"status" example:"fail"`
	Message string              `json:"message" example:"session not found"`
	Errors  []fieldErrorPayload `json:"errors,omitempty"`
}

type fieldErrorPayload struct {
	Field   string `json:"field" example:"problem"`
	Message string `json:"message" example:"Problem is required"`
}
