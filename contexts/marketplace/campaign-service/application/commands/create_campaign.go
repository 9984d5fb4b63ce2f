package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "brandlink/contexts/marketplace/campaign-service/application"
	"brandlink/contexts/marketplace/campaign-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/campaign-service/domain/errors"
	"brandlink/contexts/marketplace/campaign-service/ports"
	"brandlink/internal/shared/period"
)

type CreateCampaignCommand struct {
	BrandID            string
	Name               string
	Image              string
	Description        string
	Category           string
	CollaborationLimit int
}

type CreateCampaignUseCase struct {
	Campaigns     ports.CampaignRepository
	Subscriptions ports.SubscriptionReader
	Clock         ports.Clock
	IDGenerator   ports.IDGenerator
	Logger        *slog.Logger
}

type CreateCampaignResult struct {
	Campaign     entities.Campaign
	MonthlyCount int
}

// Execute creates a campaign after the monthly quota check. The quota is
// recomputed from creation timestamps on every call: subscribed brands are
// capped at their package limit per calendar month, unsubscribed brands are
// uncapped. An active subscription whose package limit cannot be resolved
// fails loudly instead of granting unlimited creation.
func (uc CreateCampaignUseCase) Execute(ctx context.Context, cmd CreateCampaignCommand) (CreateCampaignResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	now := uc.Clock.Now().UTC()

	campaignID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return CreateCampaignResult{}, err
	}

	campaign := entities.Campaign{
		CampaignID:         campaignID,
		BrandID:            strings.TrimSpace(cmd.BrandID),
		Name:               strings.TrimSpace(cmd.Name),
		Image:              strings.TrimSpace(cmd.Image),
		Description:        strings.TrimSpace(cmd.Description),
		Category:           strings.TrimSpace(cmd.Category),
		CollaborationLimit: cmd.CollaborationLimit,
		InfluencerCount:    0,
		ApprovalStatus:     entities.ApprovalPending,
		Status:             entities.CampaignStatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if !campaign.ValidateBasics() {
		return CreateCampaignResult{}, domainerrors.ErrInvalidCampaignInput
	}

	active, err := uc.Subscriptions.IsSubscriptionActive(ctx, campaign.BrandID)
	if err != nil {
		return CreateCampaignResult{}, err
	}
	if active {
		limit, err := uc.Subscriptions.ActivePackageLimit(ctx, campaign.BrandID)
		if err != nil {
			return CreateCampaignResult{}, err
		}
		if limit <= 0 {
			return CreateCampaignResult{}, domainerrors.ErrPackageLimitUnresolved
		}

		from, to := period.MonthWindow(now)
		count, err := uc.Campaigns.CountCreatedBetween(ctx, campaign.BrandID, from, to)
		if err != nil {
			return CreateCampaignResult{}, err
		}
		if count >= limit {
			logger.Info("campaign creation blocked by quota",
				"event", "campaign_quota_exceeded",
				"module", "marketplace/campaign-service",
				"layer", "application",
				"brand_id", campaign.BrandID,
				"limit", limit,
				"count", count,
			)
			return CreateCampaignResult{}, fmt.Errorf("%w: limit %d reached with %d this month", domainerrors.ErrCampaignQuotaExceeded, limit, count)
		}
	}

	if err := uc.Campaigns.CreateCampaign(ctx, campaign); err != nil {
		return CreateCampaignResult{}, err
	}

	from, to := period.MonthWindow(now)
	monthlyCount, err := uc.Campaigns.CountCreatedBetween(ctx, campaign.BrandID, from, to)
	if err != nil {
		return CreateCampaignResult{}, err
	}

	logger.Info("campaign created",
		"event", "campaign_created",
		"module", "marketplace/campaign-service",
		"layer", "application",
		"campaign_id", campaign.CampaignID,
		"brand_id", campaign.BrandID,
	)
	return CreateCampaignResult{Campaign: campaign, MonthlyCount: monthlyCount}, nil
}
