package handler

import (
	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

func toSessionResponse(v ports.SessionView) sessionResponse {
	s := v.Session
	return sessionResponse{
		ID:            s.ID,
		Problem:       s.Problem,
		Difficulty:    string(s.Difficulty),
		Status:        string(s.Status),
		CallID:        s.CallID,
		HostID:        s.HostID,
		ParticipantID: s.ParticipantID,
		Host:          toUserSummaryResponse(v.Host),
		Participant:   toUserSummaryResponse(v.Participant),
		StartedAt:     s.StartedAt,
		EndedAt:       s.EndedAt,
		Duration:      s.Duration,
		Feedback:      s.Feedback,
		Rating:        s.Rating,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}

func toSessionResponses(views []ports.SessionView) []sessionResponse {
	out := make([]sessionResponse, 0, len(views))
	for _, v := range views {
		out = append(out, toSessionResponse(v))
	}
	return out
}

func toUserSummaryResponse(u *ports.UserSummary) *userSummaryResponse {
	if u == nil {
		return nil
	}
	return &userSummaryResponse{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

func summaryOf(u *domain.User) *ports.UserSummary {
	if u == nil {
		return nil
	}
	return &ports.UserSummary{
		ID:           u.ID,
		ExternalID:   u.ExternalID,
		Name:         u.Name,
		Email:        u.Email,
		ProfileImage: u.ProfileImage,
	}
}

func toIdentityEvent(deliveryID string, p identityWebhookPayload) domain.IdentityEvent {
	emails := make([]string, 0, len(p.Data.EmailAddresses))
	for _, e := range p.Data.EmailAddresses {
		emails = append(emails, e.EmailAddress)
	}
	return domain.IdentityEvent{
		DeliveryID: deliveryID,
		Type:       p.Type,
		ExternalID: p.Data.ID,
		Emails:     emails,
		FirstName:  p.Data.FirstName,
		LastName:   p.Data.LastName,
		ImageURL:   p.Data.ImageURL,
	}
}
