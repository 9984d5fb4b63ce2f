package workers

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	application "brandlink/contexts/marketplace/collaboration-service/application"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

// OutboxRelay publishes pending collaboration outbox rows to the event bus.
type OutboxRelay struct {
	Outbox    ports.Repository
	Publisher ports.EventPublisher
	Clock     ports.Clock
	BatchSize int
	Logger    *slog.Logger
}

func (r OutboxRelay) RunOnce(ctx context.Context) error {
	logger := application.ResolveLogger(r.Logger)
	limit := r.BatchSize
	if limit <= 0 {
		limit = 100
	}

	pending, err := r.Outbox.ListPendingOutbox(ctx, limit)
	if err != nil {
		logger.Error("collaboration outbox list failed",
			"event", "collaboration_outbox_list_failed",
			"module", "marketplace/collaboration-service",
			"layer", "worker",
			"error", err.Error(),
		)
		return err
	}

	now := time.Now().UTC()
	if r.Clock != nil {
		now = r.Clock.Now().UTC()
	}

	for _, row := range pending {
		var event ports.EventEnvelope
		if err := json.Unmarshal(row.Payload, &event); err != nil {
			logger.Error("collaboration outbox decode failed",
				"event", "collaboration_outbox_decode_failed",
				"module", "marketplace/collaboration-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"error", err.Error(),
			)
			return err
		}

		topic := event.EventType
		if topic == "" {
			topic = row.EventType
		}
		if err := r.Publisher.Publish(ctx, topic, event); err != nil {
			logger.Error("collaboration outbox publish failed",
				"event", "collaboration_outbox_publish_failed",
				"module", "marketplace/collaboration-service",
				"layer", "worker",
				"outbox_id", row.OutboxID,
				"event_id", event.EventID,
				"topic", topic,
				"error", err.Error(),
			)
			return err
		}
		if err := r.Outbox.MarkOutboxPublished(ctx, row.OutboxID, now); err != nil {
			return err
		}
	}
	return nil
}
