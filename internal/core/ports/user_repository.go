package ports

import (
	"context"

	"github.com/interviewme/backend/internal/core/domain"
)

// UserRepository defines persistence operations for synced users.
type UserRepository interface {
	// Create inserts a new user and returns it with its surrogate ID.
	// Returns domain.ErrUserExists when the external ID or email is taken.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByExternalID(ctx context.Context, externalID string) (*domain.User, error)
	// FindByIDs resolves surrogate IDs in one round trip. Unknown IDs are
	// simply absent from the result.
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.User, error)
	// DeleteByExternalID removes the user, reporting whether one existed.
	DeleteByExternalID(ctx context.Context, externalID string) (bool, error)
}
