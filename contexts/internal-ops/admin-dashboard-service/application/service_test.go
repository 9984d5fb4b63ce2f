package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandlink/contexts/internal-ops/admin-dashboard-service/adapters/memory"
	domainerrors "brandlink/contexts/internal-ops/admin-dashboard-service/domain/errors"
)

func newTestService() (*memory.Store, Service) {
	store := memory.NewStore()
	service := Service{
		Stats:       store,
		Repo:        store,
		Idempotency: store,
		Clock:       memory.FixedClock{Instant: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)},
	}
	return store, service
}

func TestBrandStatistics(t *testing.T) {
	store, service := newTestService()
	ctx := context.Background()

	store.SeedCampaign(memory.CampaignFact{CampaignID: "c1", BrandID: "brand-1"})
	store.SeedCampaign(memory.CampaignFact{CampaignID: "c2", BrandID: "brand-1"})
	store.SeedCampaign(memory.CampaignFact{CampaignID: "c3", BrandID: "brand-2"})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-1", AmountCent: 4999, OccurredAt: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-2", AmountCent: 2999, OccurredAt: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)})

	stats, err := service.BrandStatistics(ctx)
	if err != nil {
		t.Fatalf("brand statistics: %v", err)
	}
	if stats.TotalCampaigns != 3 || stats.TotalBrands != 2 {
		t.Fatalf("stats = %+v, want 3 campaigns across 2 brands", stats)
	}
	if stats.TotalRevenueCents != 7998 {
		t.Fatalf("revenue = %d, want 7998", stats.TotalRevenueCents)
	}
}

func TestInfluencerStatisticsUsesCurrentMonthRevenue(t *testing.T) {
	store, service := newTestService()
	ctx := context.Background()

	store.SeedCollaboration(memory.CollaborationFact{CollaborationID: "col1", InfluencerID: "inf-1"})
	store.SeedCollaboration(memory.CollaborationFact{CollaborationID: "col2", InfluencerID: "inf-1"})
	store.SeedCollaboration(memory.CollaborationFact{CollaborationID: "col3", InfluencerID: "inf-2"})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-1", AmountCent: 1000, OccurredAt: time.Date(2025, time.May, 20, 0, 0, 0, 0, time.UTC)})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-2", AmountCent: 2500, OccurredAt: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-3", AmountCent: 500, OccurredAt: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC)})

	stats, err := service.InfluencerStatistics(ctx)
	if err != nil {
		t.Fatalf("influencer statistics: %v", err)
	}
	if stats.TotalCollaborations != 3 || stats.TotalInfluencers != 2 {
		t.Fatalf("stats = %+v, want 3 collaborations across 2 influencers", stats)
	}
	if stats.LatestMonthlyRevenueCents != 3000 {
		t.Fatalf("latest monthly revenue = %d, want 3000", stats.LatestMonthlyRevenueCents)
	}
}

func TestMonthlyEarningsFillsEmptyMonths(t *testing.T) {
	store, service := newTestService()
	ctx := context.Background()

	store.SeedRevenue(memory.RevenueFact{UserID: "brand-1", AmountCent: 4999, OccurredAt: time.Date(2025, time.April, 10, 0, 0, 0, 0, time.UTC)})
	store.SeedRevenue(memory.RevenueFact{UserID: "brand-2", AmountCent: 2999, OccurredAt: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)})

	series, err := service.MonthlyEarnings(ctx, 4)
	if err != nil {
		t.Fatalf("monthly earnings: %v", err)
	}
	if len(series) != 4 {
		t.Fatalf("series length = %d, want 4", len(series))
	}
	if series[0].Month != time.March || series[0].RevenueCents != 0 {
		t.Fatalf("series[0] = %+v, want empty March", series[0])
	}
	if series[1].Month != time.April || series[1].RevenueCents != 4999 {
		t.Fatalf("series[1] = %+v, want April 4999", series[1])
	}
	if series[2].Month != time.May || series[2].RevenueCents != 0 {
		t.Fatalf("series[2] = %+v, want empty May", series[2])
	}
	if series[3].Month != time.June || series[3].RevenueCents != 2999 {
		t.Fatalf("series[3] = %+v, want June 2999", series[3])
	}
}

func TestRecordAdminActionIdempotency(t *testing.T) {
	_, service := newTestService()
	ctx := context.Background()

	input := RecordActionInput{
		ActorID:       "admin-1",
		Action:        "campaign.approve",
		TargetID:      "campaign-9",
		Justification: "meets content guidelines",
	}
	first, err := service.RecordAdminAction(ctx, "key-1", input)
	if err != nil {
		t.Fatalf("record action: %v", err)
	}
	replay, err := service.RecordAdminAction(ctx, "key-1", input)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if replay.AuditID != first.AuditID {
		t.Fatalf("replay created a second audit entry: %s vs %s", replay.AuditID, first.AuditID)
	}

	input.Justification = "different reason"
	if _, err := service.RecordAdminAction(ctx, "key-1", input); !errors.Is(err, domainerrors.ErrIdempotencyConflict) {
		t.Fatalf("reused key err = %v, want ErrIdempotencyConflict", err)
	}

	if _, err := service.RecordAdminAction(ctx, "", input); !errors.Is(err, domainerrors.ErrIdempotencyRequired) {
		t.Fatalf("missing key err = %v, want ErrIdempotencyRequired", err)
	}

	logs, err := service.ListRecentActions(ctx, 10)
	if err != nil {
		t.Fatalf("list actions: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("audit log count = %d, want 1", len(logs))
	}
}
