package http

import (
	"context"
	"time"

	"brandlink/contexts/internal-ops/admin-dashboard-service/application"
	httptransport "brandlink/contexts/internal-ops/admin-dashboard-service/transport/http"
)

type Handler struct {
	Service application.Service
}

func (h Handler) BrandStatisticsHandler(ctx context.Context) (httptransport.BrandStatisticsResponse, error) {
	stats, err := h.Service.BrandStatistics(ctx)
	if err != nil {
		return httptransport.BrandStatisticsResponse{}, err
	}
	return httptransport.BrandStatisticsResponse{
		TotalCampaigns:    stats.TotalCampaigns,
		TotalBrands:       stats.TotalBrands,
		TotalRevenueCents: stats.TotalRevenueCents,
	}, nil
}

func (h Handler) InfluencerStatisticsHandler(ctx context.Context) (httptransport.InfluencerStatisticsResponse, error) {
	stats, err := h.Service.InfluencerStatistics(ctx)
	if err != nil {
		return httptransport.InfluencerStatisticsResponse{}, err
	}
	return httptransport.InfluencerStatisticsResponse{
		TotalCollaborations:       stats.TotalCollaborations,
		TotalInfluencers:          stats.TotalInfluencers,
		LatestMonthlyRevenueCents: stats.LatestMonthlyRevenueCents,
	}, nil
}

func (h Handler) MonthlyEarningsHandler(ctx context.Context, months int) (httptransport.MonthlyEarningsResponse, error) {
	series, err := h.Service.MonthlyEarnings(ctx, months)
	if err != nil {
		return httptransport.MonthlyEarningsResponse{}, err
	}
	views := make([]httptransport.MonthlyEarningView, 0, len(series))
	for _, month := range series {
		views = append(views, httptransport.MonthlyEarningView{
			Year:         month.Year,
			Month:        month.Month.String(),
			RevenueCents: month.RevenueCents,
		})
	}
	return httptransport.MonthlyEarningsResponse{Earnings: views}, nil
}

func (h Handler) RecordAdminActionHandler(
	ctx context.Context,
	adminID string,
	idempotencyKey string,
	req httptransport.RecordAdminActionRequest,
) (httptransport.RecordAdminActionResponse, error) {
	row, err := h.Service.RecordAdminAction(ctx, idempotencyKey, application.RecordActionInput{
		ActorID:       adminID,
		Action:        req.Action,
		TargetID:      req.TargetID,
		Justification: req.Justification,
		SourceIP:      req.SourceIP,
		CorrelationID: req.CorrelationID,
	})
	if err != nil {
		return httptransport.RecordAdminActionResponse{}, err
	}
	return httptransport.RecordAdminActionResponse{
		AuditID:    row.AuditID,
		OccurredAt: row.OccurredAt.UTC().Format(time.RFC3339),
	}, nil
}

func (h Handler) ListAuditLogsHandler(ctx context.Context, limit int) (httptransport.ListAuditLogsResponse, error) {
	logs, err := h.Service.ListRecentActions(ctx, limit)
	if err != nil {
		return httptransport.ListAuditLogsResponse{}, err
	}
	views := make([]httptransport.AuditLogView, 0, len(logs))
	for _, row := range logs {
		views = append(views, httptransport.AuditLogView{
			AuditID:       row.AuditID,
			ActorID:       row.ActorID,
			Action:        row.Action,
			TargetID:      row.TargetID,
			Justification: row.Justification,
			OccurredAt:    row.OccurredAt.UTC().Format(time.RFC3339),
		})
	}
	return httptransport.ListAuditLogsResponse{Logs: views}, nil
}
