package services

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/stakewell-labs/staking-vault/internal/events"
)

// emitEvent publishes an event for external observers. Events are
// observability only, so a publish failure never fails the operation that
// produced it; the queue layer already counted the error.
func (s *Service) emitEvent(ctx context.Context, event *events.Envelope) {
	if err := s.emitter.Emit(ctx, event); err != nil {
		log.Ctx(ctx).Error().
			Err(err).
			Stringer("event_type", event.EventType).
			Str("event_id", event.EventID).
			Msg("Failed to publish event")
	}
}
