package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"brandlink/contexts/marketplace/campaign-service/application/commands"
	"brandlink/contexts/marketplace/campaign-service/application/queries"
	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	httptransport "brandlink/contexts/marketplace/campaign-service/transport/http"
)

type Handler struct {
	CreateCampaign   commands.CreateCampaignUseCase
	UpdateCampaign   commands.UpdateCampaignUseCase
	DeleteCampaign   commands.DeleteCampaignUseCase
	ModerateCampaign commands.ModerateCampaignUseCase
	GetCampaign      queries.GetCampaignUseCase
	ListCampaigns    queries.ListCampaignsUseCase
	Logger           *slog.Logger
}

func (h Handler) CreateCampaignHandler(
	ctx context.Context,
	brandID string,
	req httptransport.CreateCampaignRequest,
) (httptransport.CreateCampaignResponse, error) {
	result, err := h.CreateCampaign.Execute(ctx, commands.CreateCampaignCommand{
		BrandID:            brandID,
		Name:               req.Name,
		Image:              req.Image,
		Description:        req.Description,
		Category:           req.Category,
		CollaborationLimit: req.CollaborationLimit,
	})
	if err != nil {
		return httptransport.CreateCampaignResponse{}, err
	}
	return httptransport.CreateCampaignResponse{
		Campaign:     mapCampaign(result.Campaign),
		MonthlyCount: result.MonthlyCount,
	}, nil
}

func (h Handler) UpdateCampaignHandler(
	ctx context.Context,
	brandID string,
	campaignID string,
	req httptransport.UpdateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.UpdateCampaign.Execute(ctx, commands.UpdateCampaignCommand{
		CampaignID:         campaignID,
		BrandID:            brandID,
		Name:               req.Name,
		Image:              req.Image,
		Description:        req.Description,
		Category:           req.Category,
		CollaborationLimit: req.CollaborationLimit,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) DeleteCampaignHandler(ctx context.Context, brandID string, campaignID string) (httptransport.CampaignResponse, error) {
	campaign, err := h.DeleteCampaign.Execute(ctx, commands.DeleteCampaignCommand{
		CampaignID: campaignID,
		BrandID:    brandID,
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ModerateCampaignHandler(
	ctx context.Context,
	campaignID string,
	req httptransport.ModerateCampaignRequest,
) (httptransport.CampaignResponse, error) {
	campaign, err := h.ModerateCampaign.Execute(ctx, commands.ModerateCampaignCommand{
		CampaignID:     campaignID,
		ApprovalStatus: entities.ApprovalStatus(req.ApprovalStatus),
	})
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) GetCampaignHandler(ctx context.Context, campaignID string) (httptransport.CampaignResponse, error) {
	campaign, err := h.GetCampaign.Execute(ctx, campaignID)
	if err != nil {
		return httptransport.CampaignResponse{}, err
	}
	return httptransport.CampaignResponse{Campaign: mapCampaign(campaign)}, nil
}

func (h Handler) ListCampaignsHandler(
	ctx context.Context,
	brandID string,
	category string,
	page int,
	limit int,
) (httptransport.ListCampaignsResponse, error) {
	result, err := h.ListCampaigns.Execute(ctx, queries.ListCampaignsQuery{
		BrandID:  brandID,
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return httptransport.ListCampaignsResponse{}, err
	}

	views := make([]httptransport.CampaignView, 0, len(result.Campaigns))
	for _, item := range result.Campaigns {
		views = append(views, mapCampaign(item))
	}
	return httptransport.ListCampaignsResponse{
		Campaigns: views,
		Page:      result.Page,
		Total:     result.Total,
	}, nil
}

func mapCampaign(item entities.Campaign) httptransport.CampaignView {
	return httptransport.CampaignView{
		CampaignID:         item.CampaignID,
		BrandID:            item.BrandID,
		Name:               item.Name,
		Image:              item.Image,
		Description:        item.Description,
		Category:           item.Category,
		CollaborationLimit: item.EffectiveCollaborationLimit(),
		InfluencerCount:    item.InfluencerCount,
		ApprovalStatus:     string(item.ApprovalStatus),
		Status:             string(item.Status),
		CreatedAt:          item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:          item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}
