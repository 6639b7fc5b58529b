package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/interviewme/backend/internal/core/domain"
	"github.com/interviewme/backend/internal/core/ports"
	"github.com/interviewme/backend/internal/infrastructure/metrics"
)

// DedupChecker abstracts the idempotency store (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, deliveryID string) (bool, error)
	Mark(ctx context.Context, deliveryID string) error
}

type identityEventService struct {
	directory ports.UserDirectory
	dedup     DedupChecker
	log       zerolog.Logger
}

// NewIdentityEventService returns an IdentityEventService implementation.
func NewIdentityEventService(directory ports.UserDirectory, dedup DedupChecker, log zerolog.Logger) ports.IdentityEventService {
	return &identityEventService{
		directory: directory,
		dedup:     dedup,
		log:       log,
	}
}

// Process deduplicates and routes a single identity-provider delivery.
func (s *identityEventService) Process(ctx context.Context, ev domain.IdentityEvent) error {
	// 1. Idempotency check. A failing store must not block user sync; the
	// handlers are idempotent on their own.
	if ev.DeliveryID != "" {
		isDup, err := s.dedup.IsDuplicate(ctx, ev.DeliveryID)
		switch {
		case err != nil:
			s.log.Warn().Err(err).Str("delivery_id", ev.DeliveryID).Msg("dedup check failed, processing anyway")
		case isDup:
			metrics.IdentityEventsDedupTotal.WithLabelValues("hit").Inc()
			s.log.Debug().Str("delivery_id", ev.DeliveryID).Str("type", ev.Type).Msg("duplicate event skipped")
			return nil
		default:
			metrics.IdentityEventsDedupTotal.WithLabelValues("miss").Inc()
		}
	}

	// 2. Route by event type.
	var err error
	switch ev.Type {
	case domain.EventUserCreated:
		err = s.directory.OnUserCreated(ctx, ev)
	case domain.EventUserDeleted:
		err = s.directory.OnUserDeleted(ctx, ev)
	default:
		s.log.Debug().Str("type", ev.Type).Str("delivery_id", ev.DeliveryID).Msg("unhandled event type ignored")
		return nil
	}
	if err != nil {
		metrics.IdentityEventsErrorsTotal.WithLabelValues(ev.Type).Inc()
		return fmt.Errorf("process %s: %w", ev.Type, err)
	}

	// 3. Mark only after success so a failed delivery is retried.
	if ev.DeliveryID != "" {
		if markErr := s.dedup.Mark(ctx, ev.DeliveryID); markErr != nil {
			s.log.Warn().Err(markErr).Str("delivery_id", ev.DeliveryID).Msg("failed to set dedup key")
		}
	}

	metrics.IdentityEventsProcessedTotal.WithLabelValues(ev.Type).Inc()
	s.log.Info().
		Str("delivery_id", ev.DeliveryID).
		Str("type", ev.Type).
		Str("external_id", ev.ExternalID).
		Msg("identity event processed")

	return nil
}
