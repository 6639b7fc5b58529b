package ports

import (
	"context"

	"github.com/interviewme/backend/internal/core/domain"
)

// ChatToken is the client credential for the communication provider.
type ChatToken struct {
	Token     string
	UserID    string
	UserName  string
	UserImage string
}

// ChatService issues communication credentials.
type ChatService interface {
	IssueToken(ctx context.Context, user *domain.User) (*ChatToken, error)
}
