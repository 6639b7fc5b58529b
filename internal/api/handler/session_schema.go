package handler

import "time"

// createSessionRequest is the body of POST /sessions.
type createSessionRequest struct {
	Problem    string `json:"problem" validate:"required" example:"Two Sum with a sliding window"`
	Difficulty string `json:"difficulty" validate:"required,oneof=easy medium hard" example:"medium"`
}

// sessionIDParam validates the :id path parameter.
type sessionIDParam struct {
	ID string `param:"id" json:"id" validate:"len=24,hexadecimal"`
}

// listQuery carries the optional ?limit= of list endpoints.
type listQuery struct {
	Limit int `query:"limit" json:"limit" validate:"gte=0"`
}

type userSummaryResponse struct {
	ID           string `json:"id"`
	ExternalID   string `json:"externalId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage"`
}

type sessionResponse struct {
	ID            string               `json:"id"`
	Problem       string               `json:"problem"`
	Difficulty    string               `json:"difficulty"`
	Status        string               `json:"status"`
	CallID        string               `json:"callId"`
	HostID        string               `json:"hostId"`
	ParticipantID string               `json:"participantId,omitempty"`
	Host          *userSummaryResponse `json:"host,omitempty"`
	Participant   *userSummaryResponse `json:"participant"`
	StartedAt     *time.Time           `json:"startedAt,omitempty"`
	EndedAt       *time.Time           `json:"endedAt,omitempty"`
	Duration      *int                 `json:"duration,omitempty"`
	Feedback      string               `json:"feedback,omitempty"`
	Rating        *int                 `json:"rating,omitempty"`
	CreatedAt     time.Time            `json:"createdAt"`
	UpdatedAt     time.Time            `json:"updatedAt"`
}

type sessionEnvelope struct {
	Session sessionResponse `json:"session"`
}

type sessionsEnvelope struct {
	Sessions []sessionResponse `json:"sessions"`
}

type chatTokenResponse struct {
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	UserName  string `json:"userName"`
	UserImage string `json:"userImage"`
}

// identityWebhookPayload is the identity provider's user event.
type identityWebhookPayload struct {
	Type string `json:"type"`
	Data struct {
		ID             string `json:"id"`
		EmailAddresses []struct {
			EmailAddress string `json:"email_address"`
		} `json:"email_addresses"`
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		ImageURL  string `json:"image_url"`
	} `json:"data"`
}

type webhookAck struct {
	Received bool `json:"received"`
}
