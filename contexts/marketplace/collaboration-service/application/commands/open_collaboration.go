package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	application "brandlink/contexts/marketplace/collaboration-service/application"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"
	"brandlink/internal/shared/period"
)

const (
	campaignApprovalApproved = "Approved"
	campaignApprovalRejected = "Rejected"

	defaultCollaborationLimit = 2
)

type InviteInfluencerCommand struct {
	CampaignID   string
	BrandID      string
	InfluencerID string
	Message      string
}

// InviteInfluencerUseCase opens a Pending collaboration on the brand's
// initiative and notifies the influencer.
type InviteInfluencerUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

func (uc InviteInfluencerUseCase) Execute(ctx context.Context, cmd InviteInfluencerCommand) (entities.Collaboration, error) {
	campaign, err := guardOpenCollaboration(ctx, uc.Collaborations, uc.Campaigns, cmd.CampaignID, cmd.InfluencerID, entities.OriginInvited, uc.Clock.Now())
	if err != nil {
		return entities.Collaboration{}, err
	}
	if campaign.BrandID != strings.TrimSpace(cmd.BrandID) {
		return entities.Collaboration{}, domainerrors.ErrForbidden
	}

	collaboration, err := createCollaboration(ctx, uc.Collaborations, uc.Clock, uc.IDGenerator, campaign, cmd.InfluencerID, entities.OriginInvited, cmd.Message)
	if err != nil {
		return entities.Collaboration{}, err
	}

	notify(ctx, uc.Notifier, application.ResolveLogger(uc.Logger), "collaboration_invite_notify_failed", ports.NotifierEvent{
		Text:       fmt.Sprintf("You have been invited to collaborate on %q", campaign.Name),
		ReceiverID: collaboration.InfluencerID,
		Name:       campaign.Name,
		Image:      campaign.Image,
	})

	application.ResolveLogger(uc.Logger).Info("influencer invited",
		"event", "collaboration_invited",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"collaboration_id", collaboration.CollaborationID,
		"campaign_id", collaboration.CampaignID,
		"influencer_id", collaboration.InfluencerID,
	)
	return collaboration, nil
}

type ShowInterestCommand struct {
	CampaignID   string
	InfluencerID string
	Message      string
}

// ShowInterestUseCase opens a Pending collaboration on the influencer's
// initiative and notifies the campaign owner.
type ShowInterestUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

func (uc ShowInterestUseCase) Execute(ctx context.Context, cmd ShowInterestCommand) (entities.Collaboration, error) {
	campaign, err := guardOpenCollaboration(ctx, uc.Collaborations, uc.Campaigns, cmd.CampaignID, cmd.InfluencerID, entities.OriginInterested, uc.Clock.Now())
	if err != nil {
		return entities.Collaboration{}, err
	}

	collaboration, err := createCollaboration(ctx, uc.Collaborations, uc.Clock, uc.IDGenerator, campaign, cmd.InfluencerID, entities.OriginInterested, cmd.Message)
	if err != nil {
		return entities.Collaboration{}, err
	}

	notify(ctx, uc.Notifier, application.ResolveLogger(uc.Logger), "collaboration_interest_notify_failed", ports.NotifierEvent{
		Text:       fmt.Sprintf("An influencer showed interest in %q", campaign.Name),
		ReceiverID: campaign.BrandID,
		Name:       campaign.Name,
		Image:      campaign.Image,
	})

	application.ResolveLogger(uc.Logger).Info("interest shown",
		"event", "collaboration_interest_shown",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"collaboration_id", collaboration.CollaborationID,
		"campaign_id", collaboration.CampaignID,
		"influencer_id", collaboration.InfluencerID,
	)
	return collaboration, nil
}

// guardOpenCollaboration runs the shared admission checks: the campaign must
// be live and admin-approved and the pair must be new. Brand-initiated
// invites are additionally capped by the campaign's monthly invite quota;
// influencer interest is unbounded here and gated at accept time by the
// slot counter instead.
func guardOpenCollaboration(
	ctx context.Context,
	repo ports.Repository,
	campaigns ports.CampaignReader,
	campaignID string,
	influencerID string,
	origin entities.Origin,
	now time.Time,
) (ports.CampaignSnapshot, error) {
	if strings.TrimSpace(campaignID) == "" || strings.TrimSpace(influencerID) == "" {
		return ports.CampaignSnapshot{}, domainerrors.ErrInvalidInput
	}

	campaign, err := campaigns.GetCampaignSnapshot(ctx, campaignID)
	if err != nil {
		return ports.CampaignSnapshot{}, err
	}
	if !campaign.Active {
		return ports.CampaignSnapshot{}, domainerrors.ErrCampaignNotFound
	}
	switch campaign.ApprovalStatus {
	case campaignApprovalApproved:
	case campaignApprovalRejected:
		return ports.CampaignSnapshot{}, domainerrors.ErrCampaignRejected
	default:
		return ports.CampaignSnapshot{}, domainerrors.ErrApprovalRequired
	}

	_, err = repo.FindByCampaignAndInfluencer(ctx, campaignID, influencerID)
	if err == nil {
		return ports.CampaignSnapshot{}, domainerrors.ErrAlreadyInvited
	}
	if !errors.Is(err, domainerrors.ErrCollaborationNotFound) {
		return ports.CampaignSnapshot{}, err
	}

	if origin == entities.OriginInvited {
		limit := campaign.CollaborationLimit
		if limit <= 0 {
			limit = defaultCollaborationLimit
		}
		from, to := period.MonthWindow(now)
		count, err := repo.CountOpenedBetween(ctx, campaignID, entities.OriginInvited, from, to)
		if err != nil {
			return ports.CampaignSnapshot{}, err
		}
		if count >= limit {
			return ports.CampaignSnapshot{}, fmt.Errorf("%w: limit %d reached with %d this month", domainerrors.ErrQuotaExceeded, limit, count)
		}
	}
	return campaign, nil
}

func createCollaboration(
	ctx context.Context,
	repo ports.Repository,
	clock ports.Clock,
	idGen ports.IDGenerator,
	campaign ports.CampaignSnapshot,
	influencerID string,
	origin entities.Origin,
	message string,
) (entities.Collaboration, error) {
	collaborationID, err := idGen.NewID(ctx)
	if err != nil {
		return entities.Collaboration{}, err
	}
	now := clock.Now().UTC()

	collaboration := entities.Collaboration{
		CollaborationID: collaborationID,
		CampaignID:      campaign.CampaignID,
		BrandID:         campaign.BrandID,
		InfluencerID:    strings.TrimSpace(influencerID),
		Origin:          origin,
		Status:          entities.StatusPending,
		Message:         strings.TrimSpace(message),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !collaboration.ValidateBasics() {
		return entities.Collaboration{}, domainerrors.ErrInvalidInput
	}
	if err := repo.CreateCollaboration(ctx, collaboration); err != nil {
		return entities.Collaboration{}, err
	}
	return collaboration, nil
}

func notify(ctx context.Context, notifier ports.Notifier, logger *slog.Logger, failEvent string, event ports.NotifierEvent) {
	if notifier == nil {
		return
	}
	if err := notifier.Send(ctx, event); err != nil {
		logger.Warn("notification dispatch failed",
			"event", failEvent,
			"module", "marketplace/collaboration-service",
			"layer", "application",
			"receiver_id", event.ReceiverID,
			"error", err.Error(),
		)
	}
}
