package application

import (
	"context"
	"log/slog"

	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

// Notify hands committed events to observers in order. Observer failures are
// logged; the state change they describe has already committed.
func Notify(
	ctx context.Context,
	observers []ports.EventObserver,
	events []entities.Event,
	logger *slog.Logger,
) {
	logger = ResolveLogger(logger)
	for _, event := range events {
		for _, observer := range observers {
			if err := observer.Observe(ctx, event); err != nil {
				logger.Warn("event observer failed",
					"event", "authenticity_observer_failed",
					"module", "product-integrity/authenticity-service",
					"layer", "application",
					"event_id", event.EventID,
					"event_type", string(event.Type),
					"error", err.Error(),
				)
			}
		}
	}
}
