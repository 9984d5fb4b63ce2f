package queries

import (
	"context"
	"log/slog"
	"strings"

	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	"brandlink/contexts/marketplace/campaign-service/ports"
)

type ListCampaignsQuery struct {
	BrandID  string
	Category string
	Page     int
	Limit    int
}

type ListCampaignsResult struct {
	Campaigns []entities.Campaign
	Page      int
	Total     int
}

type ListCampaignsUseCase struct {
	Campaigns ports.CampaignRepository
	Logger    *slog.Logger
}

func (uc ListCampaignsUseCase) Execute(ctx context.Context, query ListCampaignsQuery) (ListCampaignsResult, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	items, total, err := uc.Campaigns.ListCampaigns(ctx, ports.CampaignFilter{
		BrandID:  strings.TrimSpace(query.BrandID),
		Category: strings.TrimSpace(query.Category),
		Status:   entities.CampaignStatusActive,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return ListCampaignsResult{}, err
	}
	return ListCampaignsResult{Campaigns: items, Page: page, Total: total}, nil
}
