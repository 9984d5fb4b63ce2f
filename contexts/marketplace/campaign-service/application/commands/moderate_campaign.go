package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "brandlink/contexts/marketplace/campaign-service/application"
	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	"brandlink/contexts/marketplace/campaign-service/ports"
)

type ModerateCampaignCommand struct {
	CampaignID     string
	ApprovalStatus entities.ApprovalStatus
}

// ModerateCampaignUseCase is the admin approve/reject action that gates the
// whole collaboration workflow. Brands are notified of the outcome.
type ModerateCampaignUseCase struct {
	Campaigns ports.CampaignRepository
	Notifier  ports.Notifier
	Clock     ports.Clock
	Logger    *slog.Logger
}

func (uc ModerateCampaignUseCase) Execute(ctx context.Context, cmd ModerateCampaignCommand) (entities.Campaign, error) {
	logger := application.ResolveLogger(uc.Logger)

	if cmd.ApprovalStatus != entities.ApprovalApproved && cmd.ApprovalStatus != entities.ApprovalRejected {
		return entities.Campaign{}, domainerrors.ErrInvalidApprovalStatus
	}

	campaign, err := uc.Campaigns.GetCampaign(ctx, cmd.CampaignID)
	if err != nil {
		return entities.Campaign{}, err
	}

	campaign.ApprovalStatus = cmd.ApprovalStatus
	campaign.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Campaigns.UpdateCampaign(ctx, campaign); err != nil {
		return entities.Campaign{}, err
	}

	if uc.Notifier != nil {
		text := fmt.Sprintf("Your campaign %q was %s", campaign.Name, lowered(cmd.ApprovalStatus))
		if err := uc.Notifier.Send(ctx, ports.NotifierEvent{
			Text:       text,
			ReceiverID: campaign.BrandID,
			Image:      campaign.Image,
		}); err != nil {
			logger.Warn("moderation notification failed",
				"event", "campaign_moderation_notify_failed",
				"module", "marketplace/campaign-service",
				"layer", "application",
				"campaign_id", campaign.CampaignID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("campaign moderated",
		"event", "campaign_moderated",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"approval_status", string(cmd.ApprovalStatus),
	)
	return campaign, nil
}

func lowered(status entities.ApprovalStatus) string {
	switch status {
	case entities.ApprovalApproved:
		return "approved"
	case entities.ApprovalRejected:
		return "rejected"
	default:
		return string(status)
	}
}
