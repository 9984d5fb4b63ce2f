package commands

import (
	"context"
	"log/slog"
	"strings"

	application "brandlink/contexts/marketplace/campaign-service/application"
	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	"brandlink/contexts/marketplace/campaign-service/ports"
)

type UpdateCampaignCommand struct {
	CampaignID         string
	BrandID            string
	Name               *string
	Image              *string
	Description        *string
	Category           *string
	CollaborationLimit *int
}

type UpdateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc UpdateCampaignUseCase) Execute(ctx context.Context, cmd UpdateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	campaign, err := uc.Campaigns.GetCampaign(ctx, cmd.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.BrandID != strings.TrimSpace(cmd.BrandID) {
		return entities.Campaign{}, domainerrors.ErrCampaignNotOwned
	}
	if !campaign.IsActive() {
		return entities.Campaign{}, domainerrors.ErrCampaignNotActive
	}

	if cmd.Name != nil {
		campaign.Name = strings.TrimSpace(*cmd.Name)
	}
	if cmd.Image != nil {
		campaign.Image = strings.TrimSpace(*cmd.Image)
	}
	if cmd.Description != nil {
		campaign.Description = strings.TrimSpace(*cmd.Description)
	}
	if cmd.Category != nil {
		campaign.Category = strings.TrimSpace(*cmd.Category)
	}
	if cmd.CollaborationLimit != nil {
		campaign.CollaborationLimit = *cmd.CollaborationLimit
	}
	campaign.UpdatedAt = uc.Clock.Now().UTC()

	if !campaign.ValidateBasics() {
		return entities.Campaign{}, domainerrors.ErrInvalidCampaignInput
	}
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign updated",
		"event", "campaign_updated",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return campaign, nil
}

type DeleteCampaignCommand struct {
	CampaignID string
	BrandID    string
}

type DeleteCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Clock     ports.Clock
	Logger    *slog.Logger
}

// Execute soft-deletes: the row stays for history and quota windows, but
// disappears from active listings and rejects further collaboration.
func (uc DeleteCampaignUseCase) Execute(ctx context.Context, cmd DeleteCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	campaign, err := uc.Campaigns.GetCampaign(ctx, cmd.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}
	if campaign.BrandID != strings.TrimSpace(cmd.BrandID) {
		return entities.Campaign{}, domainerrors.ErrCampaignNotOwned
	}

	campaign.Status = entities.CampaignStatusDeleted
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	logger.Info("campaign soft-deleted",
		"event", "campaign_deleted",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
	)
	return campaign, nil
}
