package ports

import (
	"context"

	"github.com/interviewme/backend/internal/core/domain"
)

// UserDirectory applies identity-provider user lifecycle events. Both
// handlers are idempotent.
type UserDirectory interface {
	OnUserCreated(ctx context.Context, event domain.IdentityEvent) error
	OnUserDeleted(ctx context.Context, event domain.IdentityEvent) error
}

// IdentityEventService processes a single webhook delivery end to end.
type IdentityEventService interface {
	Process(ctx context.Context, event domain.IdentityEvent) error
}
