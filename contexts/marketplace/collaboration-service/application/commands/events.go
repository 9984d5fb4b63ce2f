package commands

import (
	"encoding/json"
	"time"

	"brandlink/contexts/marketplace/collaboration-service/ports"
)

const (
	EventCollaborationAccepted  = "collaboration.accepted"
	EventCollaborationCompleted = "collaboration.completed"
)

func collaborationEnvelope(
	eventID string,
	eventType string,
	campaignID string,
	occurredAt time.Time,
	data map[string]any,
) (ports.EventEnvelope, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return ports.EventEnvelope{}, err
	}
	return ports.EventEnvelope{
		EventID:          eventID,
		EventType:        eventType,
		OccurredAt:       occurredAt.UTC(),
		SourceService:    "collaboration-service",
		SchemaVersion:    1,
		PartitionKeyPath: "campaign_id",
		PartitionKey:     campaignID,
		Data:             payload,
	}, nil
}
