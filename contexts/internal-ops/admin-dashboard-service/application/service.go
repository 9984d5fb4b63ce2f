package application

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	domainerrors "brandlink/contexts/internal-ops/admin-dashboard-service/domain/errors"
	"brandlink/contexts/internal-ops/admin-dashboard-service/ports"
)

type Service struct {
	Stats          ports.StatsReader
	Repo           ports.Repository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IdempotencyTTL time.Duration
}

// BrandStatistics resolves the brand dashboard card: campaign volume, how
// many distinct brands run them, and total subscription revenue.
func (s Service) BrandStatistics(ctx context.Context) (ports.BrandStatistics, error) {
	campaigns, err := s.Stats.CountCampaigns(ctx)
	if err != nil {
		return ports.BrandStatistics{}, err
	}
	brands, err := s.Stats.CountDistinctBrands(ctx)
	if err != nil {
		return ports.BrandStatistics{}, err
	}
	revenue, err := s.Stats.TotalRevenueCents(ctx)
	if err != nil {
		return ports.BrandStatistics{}, err
	}
	return ports.BrandStatistics{
		TotalCampaigns:    campaigns,
		TotalBrands:       brands,
		TotalRevenueCents: revenue,
	}, nil
}

// InfluencerStatistics resolves the influencer dashboard card. The revenue
// figure is the current calendar month only.
func (s Service) InfluencerStatistics(ctx context.Context) (ports.InfluencerStatistics, error) {
	collaborations, err := s.Stats.CountCollaborations(ctx)
	if err != nil {
		return ports.InfluencerStatistics{}, err
	}
	influencers, err := s.Stats.CountDistinctInfluencers(ctx)
	if err != nil {
		return ports.InfluencerStatistics{}, err
	}

	now := s.Clock.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	months, err := s.Stats.MonthlyRevenueCents(ctx, from, from.AddDate(0, 1, 0))
	if err != nil {
		return ports.InfluencerStatistics{}, err
	}
	var latest int64
	for _, month := range months {
		if month.Year == now.Year() && month.Month == now.Month() {
			latest = month.RevenueCents
		}
	}
	return ports.InfluencerStatistics{
		TotalCollaborations:       collaborations,
		TotalInfluencers:          influencers,
		LatestMonthlyRevenueCents: latest,
	}, nil
}

// MonthlyEarnings returns a dense series for the trailing window, oldest
// first. Months with no revenue appear as zero entries.
func (s Service) MonthlyEarnings(ctx context.Context, months int) ([]ports.MonthlyRevenue, error) {
	if months <= 0 {
		months = 12
	}
	if months > 24 {
		months = 24
	}

	now := s.Clock.Now().UTC()
	currentMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	from := currentMonth.AddDate(0, -(months - 1), 0)
	to := currentMonth.AddDate(0, 1, 0)

	recorded, err := s.Stats.MonthlyRevenueCents(ctx, from, to)
	if err != nil {
		return nil, err
	}
	byMonth := make(map[string]int64, len(recorded))
	for _, month := range recorded {
		byMonth[monthKey(month.Year, month.Month)] = month.RevenueCents
	}

	series := make([]ports.MonthlyRevenue, 0, months)
	for cursor := from; cursor.Before(to); cursor = cursor.AddDate(0, 1, 0) {
		series = append(series, ports.MonthlyRevenue{
			Year:         cursor.Year(),
			Month:        cursor.Month(),
			RevenueCents: byMonth[monthKey(cursor.Year(), cursor.Month())],
		})
	}
	return series, nil
}

type RecordActionInput struct {
	ActorID       string
	Action        string
	TargetID      string
	Justification string
	SourceIP      string
	CorrelationID string
}

// RecordAdminAction appends an audit entry for a moderation or catalog
// decision. The idempotency key makes retried submissions return the
// original entry instead of duplicating it.
func (s Service) RecordAdminAction(ctx context.Context, idempotencyKey string, input RecordActionInput) (ports.AuditLog, error) {
	if strings.TrimSpace(input.ActorID) == "" {
		return ports.AuditLog{}, domainerrors.ErrUnauthorized
	}
	if strings.TrimSpace(input.Action) == "" || strings.TrimSpace(input.Justification) == "" {
		return ports.AuditLog{}, domainerrors.ErrInvalidInput
	}
	if strings.TrimSpace(idempotencyKey) == "" {
		return ports.AuditLog{}, domainerrors.ErrIdempotencyRequired
	}

	now := s.Clock.Now().UTC()
	if s.IdempotencyTTL <= 0 {
		s.IdempotencyTTL = 7 * 24 * time.Hour
	}
	requestHash := hashPayload(input)

	existing, err := s.Idempotency.Get(ctx, idempotencyKey, now)
	if err != nil {
		return ports.AuditLog{}, err
	}
	if existing != nil {
		if existing.RequestHash != requestHash {
			return ports.AuditLog{}, domainerrors.ErrIdempotencyConflict
		}
		var cached ports.AuditLog
		if err := json.Unmarshal(existing.ResponseBody, &cached); err != nil {
			return ports.AuditLog{}, err
		}
		return cached, nil
	}
	if err := s.Idempotency.Reserve(ctx, idempotencyKey, requestHash, now.Add(s.IdempotencyTTL)); err != nil {
		return ports.AuditLog{}, err
	}

	logRow := ports.AuditLog{
		AuditID:       fmt.Sprintf("audit_%d", now.UnixNano()),
		ActorID:       strings.TrimSpace(input.ActorID),
		Action:        strings.TrimSpace(input.Action),
		TargetID:      strings.TrimSpace(input.TargetID),
		Justification: strings.TrimSpace(input.Justification),
		OccurredAt:    now,
		SourceIP:      strings.TrimSpace(input.SourceIP),
		CorrelationID: strings.TrimSpace(input.CorrelationID),
	}
	if err := s.Repo.AppendAuditLog(ctx, logRow); err != nil {
		return ports.AuditLog{}, err
	}
	body, err := json.Marshal(logRow)
	if err != nil {
		return ports.AuditLog{}, err
	}
	if err := s.Idempotency.Complete(ctx, idempotencyKey, body, now); err != nil {
		return ports.AuditLog{}, err
	}
	return logRow, nil
}

func (s Service) ListRecentActions(ctx context.Context, limit int) ([]ports.AuditLog, error) {
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}
	return s.Repo.ListRecentAuditLogs(ctx, limit)
}

func monthKey(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

func hashPayload(v interface{}) string {
	data, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
