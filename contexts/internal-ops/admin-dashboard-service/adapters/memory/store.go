package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	domainerrors "brandlink/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"brandlink/contexts/internal-ops/admin-dashboard-service/ports"
)

// CampaignFact and the other fact types are the raw rows the stats reader
// aggregates over. Tests seed them directly.
type CampaignFact struct {
	CampaignID string
	BrandID    string
}

type CollaborationFact struct {
	CollaborationID string
	InfluencerID    string
}

type RevenueFact struct {
	UserID     string
	AmountCent int64
	OccurredAt time.Time
}

type Store struct {
	mu             sync.Mutex
	campaigns      []CampaignFact
	collaborations []CollaborationFact
	revenue        []RevenueFact
	logs           []ports.AuditLog
	idempotency    map[string]ports.IdempotencyRecord
}

func NewStore() *Store {
	return &Store{
		logs:        make([]ports.AuditLog, 0, 128),
		idempotency: map[string]ports.IdempotencyRecord{},
	}
}

func (s *Store) SeedCampaign(fact CampaignFact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.campaigns = append(s.campaigns, fact)
}

func (s *Store) SeedCollaboration(fact CollaborationFact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.collaborations = append(s.collaborations, fact)
}

func (s *Store) SeedRevenue(fact RevenueFact) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revenue = append(s.revenue, fact)
}

func (s *Store) CountCampaigns(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.campaigns)), nil
}

func (s *Store) CountDistinctBrands(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	brands := map[string]struct{}{}
	for _, fact := range s.campaigns {
		brands[fact.BrandID] = struct{}{}
	}
	return int64(len(brands)), nil
}

func (s *Store) CountCollaborations(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.collaborations)), nil
}

func (s *Store) CountDistinctInfluencers(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	influencers := map[string]struct{}{}
	for _, fact := range s.collaborations {
		influencers[fact.InfluencerID] = struct{}{}
	}
	return int64(len(influencers)), nil
}

func (s *Store) TotalRevenueCents(_ context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var total int64
	for _, fact := range s.revenue {
		total += fact.AmountCent
	}
	return total, nil
}

func (s *Store) MonthlyRevenueCents(_ context.Context, from, to time.Time) ([]ports.MonthlyRevenue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := map[string]*ports.MonthlyRevenue{}
	order := make([]string, 0)
	for _, fact := range s.revenue {
		at := fact.OccurredAt.UTC()
		if at.Before(from) || !at.Before(to) {
			continue
		}
		key := at.Format("2006-01")
		if _, exists := totals[key]; !exists {
			totals[key] = &ports.MonthlyRevenue{Year: at.Year(), Month: at.Month()}
			order = append(order, key)
		}
		totals[key].RevenueCents += fact.AmountCent
	}
	slices.Sort(order)

	out := make([]ports.MonthlyRevenue, 0, len(order))
	for _, key := range order {
		out = append(out, *totals[key])
	}
	return out, nil
}

func (s *Store) AppendAuditLog(_ context.Context, row ports.AuditLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = append(s.logs, row)
	return nil
}

func (s *Store) ListRecentAuditLogs(_ context.Context, limit int) ([]ports.AuditLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if limit <= 0 {
		limit = 50
	}
	out := make([]ports.AuditLog, 0, limit)
	for i := len(s.logs) - 1; i >= 0; i-- {
		out = append(out, s.logs[i])
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *Store) Get(_ context.Context, key string, now time.Time) (*ports.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.idempotency[key]
	if !ok {
		return nil, nil
	}
	if now.After(row.ExpiresAt) {
		delete(s.idempotency, key)
		return nil, nil
	}
	clone := row
	clone.ResponseBody = slices.Clone(row.ResponseBody)
	return &clone, nil
}

func (s *Store) Reserve(_ context.Context, key, requestHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if row, ok := s.idempotency[key]; ok && time.Now().UTC().Before(row.ExpiresAt) {
		if row.RequestHash != requestHash {
			return domainerrors.ErrIdempotencyConflict
		}
		return nil
	}
	s.idempotency[key] = ports.IdempotencyRecord{
		Key:         key,
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	return nil
}

func (s *Store) Complete(_ context.Context, key string, responseBody []byte, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row, ok := s.idempotency[key]
	if !ok {
		return nil
	}
	row.ResponseBody = slices.Clone(responseBody)
	if at.After(row.ExpiresAt) {
		row.ExpiresAt = at.Add(7 * 24 * time.Hour)
	}
	s.idempotency[key] = row
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

// FixedClock returns the same instant on every call.
type FixedClock struct {
	Instant time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Instant
}
