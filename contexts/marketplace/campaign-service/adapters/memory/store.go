package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	"brandlink/contexts/marketplace/campaign-service/ports"

	"github.com/google/uuid"
)

// Store is an in-memory CampaignRepository used by local wiring and tests.
type Store struct {
	mu        sync.RWMutex
	campaigns map[string]entities.Campaign
}

func NewStore() *Store {
	return &Store{
		campaigns: make(map[string]entities.Campaign),
	}
}

func (s *Store) CreateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; exists {
		return domainerrors.ErrInvalidCampaignInput
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) UpdateCampaign(_ context.Context, campaign entities.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.campaigns[campaign.CampaignID]; !exists {
		return domainerrors.ErrCampaignNotFound
	}
	s.campaigns[campaign.CampaignID] = campaign
	return nil
}

func (s *Store) GetCampaign(_ context.Context, campaignID string) (entities.Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	campaign, exists := s.campaigns[strings.TrimSpace(campaignID)]
	if !exists {
		return entities.Campaign{}, domainerrors.ErrCampaignNotFound
	}
	return campaign, nil
}

func (s *Store) ListCampaigns(_ context.Context, filter ports.CampaignFilter) ([]entities.Campaign, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matched := make([]entities.Campaign, 0, len(s.campaigns))
	for _, campaign := range s.campaigns {
		if strings.TrimSpace(filter.BrandID) != "" && campaign.BrandID != strings.TrimSpace(filter.BrandID) {
			continue
		}
		if strings.TrimSpace(filter.Category) != "" && campaign.Category != strings.TrimSpace(filter.Category) {
			continue
		}
		if filter.Status != "" && campaign.Status != filter.Status {
			continue
		}
		matched = append(matched, campaign)
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
		return []entities.Campaign{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (s *Store) CountCreatedBetween(_ context.Context, brandID string, from, to time.Time) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, campaign := range s.campaigns {
		if campaign.BrandID != strings.TrimSpace(brandID) {
			continue
		}
		if campaign.CreatedAt.Before(from) || campaign.CreatedAt.After(to) {
			continue
		}
		count++
	}
	return count, nil
}

// StaticSubscriptionReader answers quota questions with fixed values. Local
// wiring uses it so campaign flows work without the billing context.
type StaticSubscriptionReader struct {
	Active bool
	Limit  int
}

func (r StaticSubscriptionReader) IsSubscriptionActive(context.Context, string) (bool, error) {
	return r.Active, nil
}

func (r StaticSubscriptionReader) ActivePackageLimit(context.Context, string) (int, error) {
	return r.Limit, nil
}

// NoopNotifier drops notifications.
type NoopNotifier struct{}

func (NoopNotifier) Send(context.Context, ports.NotifierEvent) error {
	return nil
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
