package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/metrics"
)

const fallbackDisplayName = "User"

// UserDirectoryService keeps local users and remote communication
// identities in step with the identity provider. Both handlers are safe to
// run more than once for the same event.
type UserDirectoryService struct {
	users          ports.UserRepository
	gateway        ports.CommunicationGateway
	gatewayTimeout time.Duration
	log            zerolog.Logger
	now            func() time.Time
}

func NewUserDirectoryService(users ports.UserRepository, gateway ports.CommunicationGateway, gatewayTimeout time.Duration, log zerolog.Logger) *UserDirectoryService {
	if gatewayTimeout <= 0 {
		gatewayTimeout = defaultGatewayTimeout
	}
	return &UserDirectoryService{
		users:          users,
		gateway:        gateway,
		gatewayTimeout: gatewayTimeout,
		log:            log,
		now:            func() time.Time { return time.Now().UTC() },
	}
}

// OnUserCreated creates the local user and mirrors it as a communication
// identity. An existing user makes this a no-op.
func (s *UserDirectoryService) OnUserCreated(ctx context.Context, ev domain.IdentityEvent) error {
	if ev.ExternalID == "" {
		s.log.Warn().Str("delivery_id", ev.DeliveryID).Msg("user.created without external id, ignoring")
		return nil
	}

	existing, err := s.users.FindByExternalID(ctx, ev.ExternalID)
	switch {
	case err == nil && existing != nil:
		s.log.Debug().Str("external_id", ev.ExternalID).Msg("user already synced")
		return nil
	case err != nil && !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("user created: lookup: %w", err)
	}

	email := primaryEmail(ev.Emails)
	if email == "" {
		return domain.NewValidationError("email", "Email is required")
	}

	now := s.now()
	user := &domain.User{
		ExternalID:   ev.ExternalID,
		Name:         displayName(ev.FirstName, ev.LastName, email),
		Email:        email,
		ProfileImage: strings.TrimSpace(ev.ImageURL),
		Role:         domain.RoleCandidate,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			// A concurrent delivery of the same event won the insert.
			s.log.Debug().Str("external_id", ev.ExternalID).Msg("user inserted concurrently")
			return nil
		}
		return fmt.Errorf("user created: insert: %w", err)
	}

	s.log.Info().
		Str("user_id", created.ID).
		Str("external_id", created.ExternalID).
		Msg("user synced")

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	identity := ports.Identity{ID: created.ExternalID, Name: created.Name, Image: created.ProfileImage}
	if err := s.gateway.UpsertIdentity(gctx, identity); err != nil {
		metrics.IdentitySyncFailuresTotal.WithLabelValues("upsert").Inc()
		s.log.Error().Err(err).Str("external_id", created.ExternalID).Msg("failed to upsert communication identity")
	}
	return nil
}

// OnUserDeleted removes the local user and its communication identity.
// Deleting an unknown user succeeds.
func (s *UserDirectoryService) OnUserDeleted(ctx context.Context, ev domain.IdentityEvent) error {
	if ev.ExternalID == "" {
		s.log.Warn().Str("delivery_id", ev.DeliveryID).Msg("user.deleted without external id, ignoring")
		return nil
	}

	existed, err := s.users.DeleteByExternalID(ctx, ev.ExternalID)
	if err != nil {
		return fmt.Errorf("user deleted: %w", err)
	}
	if !existed {
		s.log.Debug().Str("external_id", ev.ExternalID).Msg("user already absent")
	}

	gctx, cancel := context.WithTimeout(ctx, s.gatewayTimeout)
	defer cancel()

	if err := s.gateway.DeleteIdentity(gctx, ev.ExternalID); err != nil {
		metrics.IdentitySyncFailuresTotal.WithLabelValues("delete").Inc()
		s.log.Error().Err(err).Str("external_id", ev.ExternalID).Msg("failed to delete communication identity")
	}

	s.log.Info().Str("external_id", ev.ExternalID).Msg("user removed")
	return nil
}

func primaryEmail(emails []string) string {
	if len(emails) == 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(emails[0]))
}

// displayName joins first and last name, falling back to the local part of
// the email and finally to a fixed placeholder.
func displayName(first, last, email string) string {
	name := cleanText(strings.TrimSpace(first + " " + last))
	if name != "" {
		return name
	}
	if local, _, ok := strings.Cut(email, "@"); ok && local != "" {
		return local
	}
	return fallbackDisplayName
}
