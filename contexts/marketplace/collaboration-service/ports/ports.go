package ports

import (
	"context"
	"time"

	contractsv1 "brandlink/contracts/gen/events/v1"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
)

// CampaignSnapshot is the collaboration module's read view onto the campaign
// context: just enough to guard invites and slot accounting.
type CampaignSnapshot struct {
	CampaignID         string
	BrandID            string
	Name               string
	Image              string
	CollaborationLimit int
	InfluencerCount    int
	ApprovalStatus     string
	Active             bool
}

type CampaignReader interface {
	GetCampaignSnapshot(ctx context.Context, campaignID string) (CampaignSnapshot, error)
}

type CollaborationFilter struct {
	CampaignID   string
	BrandID      string
	InfluencerID string
	Origin       entities.Origin
	Status       entities.Status
	Page         int
	Limit        int
}

// AcceptResult reports the outcome of the transactional accept: the updated
// collaboration plus the campaign's influencer count after the increment.
type AcceptResult struct {
	Collaboration   entities.Collaboration
	InfluencerCount int
}

type EventEnvelope = contractsv1.Envelope

type OutboxMessage struct {
	OutboxID     string
	EventType    string
	PartitionKey string
	Payload      []byte
	CreatedAt    time.Time
}

// Repository persists collaborations, proofs, and the event outbox. The
// multi-row operations (AcceptCollaboration, CompleteCollaboration) are
// atomic: adapters run them inside one transaction with the campaign row
// locked so concurrent accepts cannot overshoot the collaboration limit.
type Repository interface {
	CreateCollaboration(ctx context.Context, collaboration entities.Collaboration) error
	GetCollaboration(ctx context.Context, collaborationID string) (entities.Collaboration, error)
	UpdateCollaboration(ctx context.Context, collaboration entities.Collaboration) error
	FindByCampaignAndInfluencer(ctx context.Context, campaignID, influencerID string) (entities.Collaboration, error)
	ListCollaborations(ctx context.Context, filter CollaborationFilter) ([]entities.Collaboration, int, error)
	// CountOpenedBetween counts collaborations created against the campaign
	// in the window, optionally restricted to one origin.
	CountOpenedBetween(ctx context.Context, campaignID string, origin entities.Origin, from, to time.Time) (int, error)

	// AcceptCollaboration re-checks state and slot availability under a
	// campaign row lock, increments the campaign's influencer count, flips
	// the collaboration to Accepted, and appends the outbox event.
	AcceptCollaboration(ctx context.Context, collaborationID string, now time.Time, envelope EventEnvelope) (AcceptResult, error)

	// CompleteCollaboration flips an Accepted collaboration and its
	// non-rejected proof to Completed in one transaction. The campaign
	// counter is not touched; the slot was taken on accept.
	CompleteCollaboration(ctx context.Context, collaborationID string, now time.Time, envelope EventEnvelope) (entities.Collaboration, error)

	CreateProof(ctx context.Context, proof entities.Proof) error
	GetProofByCollaboration(ctx context.Context, collaborationID string) (entities.Proof, error)
	ListProofsByCampaigns(ctx context.Context, campaignIDs []string) ([]entities.Proof, error)

	AppendOutbox(ctx context.Context, envelope EventEnvelope) error
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event EventEnvelope) error
}

type NotifierEvent struct {
	Text             string
	ReceiverID       string
	Name             string
	Image            string
	BroadcastToAdmin bool
}

// Notifier is fire-and-forget; callers log failures and never roll back.
type Notifier interface {
	Send(ctx context.Context, event NotifierEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
