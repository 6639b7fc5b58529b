package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
)

type chatService struct {
	gateway ports.CommunicationGateway
	log     zerolog.Logger
}

// NewChatService returns a ChatService implementation.
func NewChatService(gateway ports.CommunicationGateway, log zerolog.Logger) ports.ChatService {
	return &chatService{gateway: gateway, log: log}
}

// IssueToken signs a communication credential for user.
func (s *chatService) IssueToken(_ context.Context, user *domain.User) (*ports.ChatToken, error) {
	if user == nil || user.ExternalID == "" {
		return nil, domain.ErrUnauthenticated
	}

	token, err := s.gateway.IssueToken(user.ExternalID)
	if err != nil {
		s.log.Error().Err(err).Str("external_id", user.ExternalID).Msg("chat token signing failed")
		return nil, fmt.Errorf("%w: %w", domain.ErrTokenIssueFailed, err)
	}

	name := user.Name
	if name == "" {
		name = fallbackDisplayName
	}

	return &ports.ChatToken{
		Token:     token,
		UserID:    user.ExternalID,
		UserName:  name,
		UserImage: user.ProfileImage,
	}, nil
}
