package cache

import (
	"context"
	"time"

	"allaccess/internal/domain/shared/events"
	"allaccess/internal/shared/logger"
)

// statusAffectingEvents are the event types after which the cached derived
// status of the aggregate pass may no longer be valid.
var statusAffectingEvents = map[string]bool{
	"pass.activated":      true,
	"pass.expired":        true,
	"pass.upgraded":       true,
	"pass.status_changed": true,
	"pass.quota_reset":    true,
}

// PassStatusInvalidator evicts cached pass statuses when lifecycle events
// change the underlying state
type PassStatusInvalidator struct {
	cache  PassStatusCache
	logger logger.Interface
}

// NewPassStatusInvalidator creates a new pass status invalidator
func NewPassStatusInvalidator(cache PassStatusCache, logger logger.Interface) *PassStatusInvalidator {
	return &PassStatusInvalidator{
		cache:  cache,
		logger: logger,
	}
}

// Handle processes a domain event by evicting the affected pass
func (h *PassStatusInvalidator) Handle(event events.DomainEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	passID := event.GetAggregateID()
	if err := h.cache.Invalidate(ctx, passID); err != nil {
		h.logger.Warnw("failed to invalidate pass status cache",
			"pass_id", passID,
			"event_type", event.GetEventType(),
			"error", err)
		return err
	}
	return nil
}

// CanHandle checks if this handler can handle the given event type
func (h *PassStatusInvalidator) CanHandle(eventType string) bool {
	return statusAffectingEvents[eventType]
}
