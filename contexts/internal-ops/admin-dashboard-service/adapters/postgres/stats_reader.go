package postgres

import (
	"context"
	"time"

	"brandlink/contexts/internal-ops/admin-dashboard-service/ports"

	"gorm.io/gorm"
)

// StatsReader aggregates the marketplace and billing tables with raw SQL.
// Every query is a single round trip; the dashboard tolerates slightly
// stale numbers.
type StatsReader struct {
	db *gorm.DB
}

func NewStatsReader(db *gorm.DB) *StatsReader {
	return &StatsReader{db: db}
}

func (r *StatsReader) CountCampaigns(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("campaigns").
		Where("status <> ?", "deleted").
		Count(&count).
		Error
	return count, err
}

func (r *StatsReader) CountDistinctBrands(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("campaigns").
		Where("status <> ?", "deleted").
		Distinct("brand_id").
		Count(&count).
		Error
	return count, err
}

func (r *StatsReader) CountCollaborations(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("collaborations").
		Count(&count).
		Error
	return count, err
}

func (r *StatsReader) CountDistinctInfluencers(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("collaborations").
		Distinct("influencer_id").
		Count(&count).
		Error
	return count, err
}

func (r *StatsReader) TotalRevenueCents(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(p.price_cents), 0)
		     FROM subscriptions s
		     JOIN packages p ON p.package_id = s.package_id`).
		Scan(&total).
		Error
	return total, err
}

type monthlyRevenueRow struct {
	Year         int
	Month        int
	RevenueCents int64
}

func (r *StatsReader) MonthlyRevenueCents(ctx context.Context, from, to time.Time) ([]ports.MonthlyRevenue, error) {
	var rows []monthlyRevenueRow
	err := r.db.WithContext(ctx).
		Raw(`SELECT EXTRACT(YEAR FROM s.created_at)::int AS year,
		            EXTRACT(MONTH FROM s.created_at)::int AS month,
		            COALESCE(SUM(p.price_cents), 0) AS revenue_cents
		     FROM subscriptions s
		     JOIN packages p ON p.package_id = s.package_id
		     WHERE s.created_at >= ? AND s.created_at < ?
		     GROUP BY 1, 2
		     ORDER BY 1, 2`, from.UTC(), to.UTC()).
		Scan(&rows).
		Error
	if err != nil {
		return nil, err
	}

	out := make([]ports.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, ports.MonthlyRevenue{
			Year:         row.Year,
			Month:        time.Month(row.Month),
			RevenueCents: row.RevenueCents,
		})
	}
	return out, nil
}
