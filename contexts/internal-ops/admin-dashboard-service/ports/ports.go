package ports

import (
	"context"
	"time"
)

// BrandStatistics is the brand-side dashboard card.
type BrandStatistics struct {
	TotalCampaigns    int64
	TotalBrands       int64
	TotalRevenueCents int64
}

// InfluencerStatistics is the influencer-side dashboard card.
type InfluencerStatistics struct {
	TotalCollaborations       int64
	TotalInfluencers          int64
	LatestMonthlyRevenueCents int64
}

type MonthlyRevenue struct {
	Year         int
	Month        time.Month
	RevenueCents int64
}

// StatsReader aggregates across the marketplace and billing tables. It is
// read-only; the dashboard never writes through it.
type StatsReader interface {
	CountCampaigns(ctx context.Context) (int64, error)
	CountDistinctBrands(ctx context.Context) (int64, error)
	CountCollaborations(ctx context.Context) (int64, error)
	CountDistinctInfluencers(ctx context.Context) (int64, error)
	TotalRevenueCents(ctx context.Context) (int64, error)
	MonthlyRevenueCents(ctx context.Context, from, to time.Time) ([]MonthlyRevenue, error)
}

type AuditLog struct {
	AuditID       string
	ActorID       string
	Action        string
	TargetID      string
	Justification string
	OccurredAt    time.Time
	SourceIP      string
	CorrelationID string
}

type Repository interface {
	AppendAuditLog(ctx context.Context, row AuditLog) error
	ListRecentAuditLogs(ctx context.Context, limit int) ([]AuditLog, error)
}

type IdempotencyRecord struct {
	Key          string
	RequestHash  string
	ResponseBody []byte
	ExpiresAt    time.Time
}

type IdempotencyStore interface {
	Get(ctx context.Context, key string, now time.Time) (*IdempotencyRecord, error)
	Reserve(ctx context.Context, key, requestHash string, expiresAt time.Time) error
	Complete(ctx context.Context, key string, responseBody []byte, at time.Time) error
}

type Clock interface {
	Now() time.Time
}
