package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"

	"github.com/google/uuid"
)

const defaultCollaborationLimit = 2

type outboxRow struct {
	message   ports.OutboxMessage
	published bool
}

// Store is the in-memory Repository plus CampaignReader used by local wiring
// and tests. All multi-row operations run under one mutex, which gives them
// the same atomicity the postgres adapter gets from row locks.
type Store struct {
	mu             sync.Mutex
	collaborations map[string]entities.Collaboration
	proofs         map[string]entities.Proof
	campaigns      map[string]ports.CampaignSnapshot
	outbox         []outboxRow
}

func NewStore() *Store {
	return &Store{
		collaborations: make(map[string]entities.Collaboration),
		proofs:         make(map[string]entities.Proof),
		campaigns:      make(map[string]ports.CampaignSnapshot),
	}
}

// SeedCampaign registers a campaign snapshot for guards and slot accounting.
func (s *Store) SeedCampaign(snapshot ports.CampaignSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns[snapshot.CampaignID] = snapshot
}

func (s *Store) CampaignSnapshotCopy(campaignID string) (ports.CampaignSnapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.campaigns[campaignID]
	return snapshot, ok
}

func (s *Store) GetCampaignSnapshot(_ context.Context, campaignID string) (ports.CampaignSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot, ok := s.campaigns[strings.TrimSpace(campaignID)]
	if !ok {
		return ports.CampaignSnapshot{}, domainerrors.ErrCampaignNotFound
	}
	return snapshot, nil
}

func (s *Store) CreateCollaboration(_ context.Context, collaboration entities.Collaboration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.collaborations {
		if existing.CampaignID == collaboration.CampaignID && existing.InfluencerID == collaboration.InfluencerID {
			return domainerrors.ErrAlreadyInvited
		}
	}
	s.collaborations[collaboration.CollaborationID] = collaboration
	return nil
}

func (s *Store) GetCollaboration(_ context.Context, collaborationID string) (entities.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getCollaborationLocked(collaborationID)
}

func (s *Store) getCollaborationLocked(collaborationID string) (entities.Collaboration, error) {
	collaboration, ok := s.collaborations[strings.TrimSpace(collaborationID)]
	if !ok {
		return entities.Collaboration{}, domainerrors.ErrCollaborationNotFound
	}
	return collaboration, nil
}

func (s *Store) UpdateCollaboration(_ context.Context, collaboration entities.Collaboration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.collaborations[collaboration.CollaborationID]; !ok {
		return domainerrors.ErrCollaborationNotFound
	}
	s.collaborations[collaboration.CollaborationID] = collaboration
	return nil
}

func (s *Store) FindByCampaignAndInfluencer(_ context.Context, campaignID, influencerID string) (entities.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, collaboration := range s.collaborations {
		if collaboration.CampaignID == strings.TrimSpace(campaignID) && collaboration.InfluencerID == strings.TrimSpace(influencerID) {
			return collaboration, nil
		}
	}
	return entities.Collaboration{}, domainerrors.ErrCollaborationNotFound
}

func (s *Store) ListCollaborations(_ context.Context, filter ports.CollaborationFilter) ([]entities.Collaboration, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	matched := make([]entities.Collaboration, 0, len(s.collaborations))
	for _, collaboration := range s.collaborations {
		if strings.TrimSpace(filter.CampaignID) != "" && collaboration.CampaignID != strings.TrimSpace(filter.CampaignID) {
			continue
		}
		if strings.TrimSpace(filter.BrandID) != "" && collaboration.BrandID != strings.TrimSpace(filter.BrandID) {
			continue
		}
		if strings.TrimSpace(filter.InfluencerID) != "" && collaboration.InfluencerID != strings.TrimSpace(filter.InfluencerID) {
			continue
		}
		if filter.Origin != "" && collaboration.Origin != filter.Origin {
			continue
		}
		if filter.Status != "" && collaboration.Status != filter.Status {
			continue
		}
		matched = append(matched, collaboration)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := (page - 1) * limit
	if offset >= total {
		return []entities.Collaboration{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *Store) CountOpenedBetween(_ context.Context, campaignID string, origin entities.Origin, from, to time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, collaboration := range s.collaborations {
		if collaboration.CampaignID != strings.TrimSpace(campaignID) {
			continue
		}
		if origin != "" && collaboration.Origin != origin {
			continue
		}
		if collaboration.CreatedAt.Before(from) || collaboration.CreatedAt.After(to) {
			continue
		}
		count++
	}
	return count, nil
}

func (s *Store) AcceptCollaboration(
	_ context.Context,
	collaborationID string,
	now time.Time,
	envelope ports.EventEnvelope,
) (ports.AcceptResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collaboration, err := s.getCollaborationLocked(collaborationID)
	if err != nil {
		return ports.AcceptResult{}, err
	}
	if collaboration.IsTerminal() {
		return ports.AcceptResult{}, domainerrors.ErrAlreadyFinalized
	}
	if collaboration.Status != entities.StatusPending {
		return ports.AcceptResult{}, domainerrors.ErrInvalidStatusTransition
	}

	campaign, ok := s.campaigns[collaboration.CampaignID]
	if !ok {
		return ports.AcceptResult{}, domainerrors.ErrCampaignNotFound
	}
	limit := campaign.CollaborationLimit
	if limit <= 0 {
		limit = defaultCollaborationLimit
	}
	if campaign.InfluencerCount >= limit {
		return ports.AcceptResult{}, fmt.Errorf("%w: limit %d reached with %d accepted", domainerrors.ErrQuotaExceeded, limit, campaign.InfluencerCount)
	}

	campaign.InfluencerCount++
	s.campaigns[campaign.CampaignID] = campaign

	timestamp := now.UTC()
	collaboration.Status = entities.StatusAccepted
	collaboration.RespondedAt = timestamp
	collaboration.UpdatedAt = timestamp
	s.collaborations[collaboration.CollaborationID] = collaboration

	s.appendOutboxLocked(envelope)
	return ports.AcceptResult{
		Collaboration:   collaboration,
		InfluencerCount: campaign.InfluencerCount,
	}, nil
}

func (s *Store) CompleteCollaboration(
	_ context.Context,
	collaborationID string,
	now time.Time,
	envelope ports.EventEnvelope,
) (entities.Collaboration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	collaboration, err := s.getCollaborationLocked(collaborationID)
	if err != nil {
		return entities.Collaboration{}, err
	}
	if collaboration.IsTerminal() {
		return entities.Collaboration{}, domainerrors.ErrAlreadyFinalized
	}
	if collaboration.Status != entities.StatusAccepted {
		return entities.Collaboration{}, domainerrors.ErrInvalidStatusTransition
	}

	var proof entities.Proof
	found := false
	for _, candidate := range s.proofs {
		if candidate.CollaborationID == collaboration.CollaborationID && !candidate.IsRejected() {
			proof = candidate
			found = true
			break
		}
	}
	if !found {
		return entities.Collaboration{}, domainerrors.ErrProofRequired
	}

	timestamp := now.UTC()
	collaboration.Status = entities.StatusCompleted
	collaboration.CompletedAt = timestamp
	collaboration.UpdatedAt = timestamp
	s.collaborations[collaboration.CollaborationID] = collaboration

	proof.Status = entities.ProofCompleted
	proof.UpdatedAt = timestamp
	s.proofs[proof.ProofID] = proof

	s.appendOutboxLocked(envelope)
	return collaboration, nil
}

func (s *Store) CreateProof(_ context.Context, proof entities.Proof) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.proofs {
		if existing.CollaborationID == proof.CollaborationID && !existing.IsRejected() {
			return domainerrors.ErrDuplicateSubmission
		}
	}
	s.proofs[proof.ProofID] = proof
	return nil
}

func (s *Store) GetProofByCollaboration(_ context.Context, collaborationID string) (entities.Proof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var newest entities.Proof
	found := false
	for _, proof := range s.proofs {
		if proof.CollaborationID != strings.TrimSpace(collaborationID) {
			continue
		}
		if !found || proof.CreatedAt.After(newest.CreatedAt) {
			newest = proof
			found = true
		}
	}
	if !found {
		return entities.Proof{}, domainerrors.ErrProofNotFound
	}
	return newest, nil
}

func (s *Store) ListProofsByCampaigns(_ context.Context, campaignIDs []string) ([]entities.Proof, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	wanted := make(map[string]struct{}, len(campaignIDs))
	for _, id := range campaignIDs {
		wanted[strings.TrimSpace(id)] = struct{}{}
	}

	items := make([]entities.Proof, 0)
	for _, proof := range s.proofs {
		if _, ok := wanted[proof.CampaignID]; ok {
			items = append(items, proof)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) AppendOutbox(_ context.Context, envelope ports.EventEnvelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendOutboxLocked(envelope)
	return nil
}

func (s *Store) appendOutboxLocked(envelope ports.EventEnvelope) {
	payload, err := json.Marshal(envelope)
	if err != nil {
		return
	}
	outboxID := strings.TrimSpace(envelope.EventID)
	if outboxID == "" {
		outboxID = uuid.NewString()
	}
	for _, row := range s.outbox {
		if row.message.OutboxID == outboxID {
			return
		}
	}
	s.outbox = append(s.outbox, outboxRow{
		message: ports.OutboxMessage{
			OutboxID:     outboxID,
			EventType:    envelope.EventType,
			PartitionKey: envelope.PartitionKey,
			Payload:      payload,
			CreatedAt:    envelope.OccurredAt.UTC(),
		},
	})
}

func (s *Store) ListPendingOutbox(_ context.Context, limit int) ([]ports.OutboxMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 100
	}
	items := make([]ports.OutboxMessage, 0)
	for _, row := range s.outbox {
		if row.published {
			continue
		}
		items = append(items, row.message)
		if len(items) >= limit {
			break
		}
	}
	return items, nil
}

func (s *Store) MarkOutboxPublished(_ context.Context, outboxID string, _ time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.outbox {
		if s.outbox[i].message.OutboxID == strings.TrimSpace(outboxID) {
			s.outbox[i].published = true
			return nil
		}
	}
	return domainerrors.ErrInvalidInput
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns the same instant on every call.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

// NoopNotifier drops notifications.
type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, ports.NotifierEvent) error {
	return nil
}

// CapturingPublisher records published events for assertions.
type CapturingPublisher struct {
	mu     sync.Mutex
	Events []ports.EventEnvelope
}

func (p *CapturingPublisher) Publish(_ context.Context, _ string, event ports.EventEnvelope) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Events = append(p.Events, event)
	return nil
}

func (p *CapturingPublisher) Published() []ports.EventEnvelope {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]ports.EventEnvelope(nil), p.Events...)
}
