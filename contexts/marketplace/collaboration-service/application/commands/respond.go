package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "brandlink/contexts/marketplace/collaboration-service/application"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

type RespondCommand struct {
	CollaborationID string
	BrandID         string
	Accept          bool
}

type RespondResult struct {
	Collaboration   entities.Collaboration
	InfluencerCount int
}

// RespondUseCase is the campaign owner's accept/reject decision on a Pending
// collaboration. Accept runs transactionally in the repository: the campaign
// row is locked, the slot re-checked against the collaboration limit, the
// counter incremented, and the accepted event appended to the outbox. Two
// concurrent accepts can never overshoot the limit.
type RespondUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

func (uc RespondUseCase) Execute(ctx context.Context, cmd RespondCommand) (RespondResult, error) {
	logger := application.ResolveLogger(uc.Logger)

	collaboration, err := uc.Collaborations.GetCollaboration(ctx, cmd.CollaborationID)
	if err != nil {
		return RespondResult{}, err
	}
	if collaboration.BrandID != strings.TrimSpace(cmd.BrandID) {
		return RespondResult{}, domainerrors.ErrForbidden
	}
	if collaboration.IsTerminal() {
		return RespondResult{}, domainerrors.ErrAlreadyFinalized
	}

	target := entities.StatusRejected
	if cmd.Accept {
		target = entities.StatusAccepted
	}
	if !collaboration.CanTransition(target) {
		return RespondResult{}, domainerrors.ErrInvalidStatusTransition
	}

	campaign, err := uc.Campaigns.GetCampaignSnapshot(ctx, collaboration.CampaignID)
	if err != nil {
		return RespondResult{}, err
	}
	if campaign.ApprovalStatus != campaignApprovalApproved {
		return RespondResult{}, domainerrors.ErrApprovalRequired
	}

	now := uc.Clock.Now().UTC()

	if cmd.Accept {
		eventID, err := uc.IDGenerator.NewID(ctx)
		if err != nil {
			return RespondResult{}, err
		}
		envelope, err := collaborationEnvelope(eventID, EventCollaborationAccepted, collaboration.CampaignID, now, map[string]any{
			"collaboration_id": collaboration.CollaborationID,
			"campaign_id":      collaboration.CampaignID,
			"influencer_id":    collaboration.InfluencerID,
			"origin":           string(collaboration.Origin),
		})
		if err != nil {
			return RespondResult{}, err
		}

		accepted, err := uc.Collaborations.AcceptCollaboration(ctx, collaboration.CollaborationID, now, envelope)
		if err != nil {
			return RespondResult{}, err
		}

		notify(ctx, uc.Notifier, logger, "collaboration_accept_notify_failed", ports.NotifierEvent{
			Text:       fmt.Sprintf("Your collaboration on %q was accepted", campaign.Name),
			ReceiverID: collaboration.InfluencerID,
			Name:       campaign.Name,
			Image:      campaign.Image,
		})

		logger.Info("collaboration accepted",
			"event", "collaboration_accepted",
			"module", "marketplace/collaboration-service",
			"layer", "application",
			"collaboration_id", collaboration.CollaborationID,
			"campaign_id", collaboration.CampaignID,
			"influencer_count", accepted.InfluencerCount,
		)
		return RespondResult(accepted), nil
	}

	collaboration.Status = entities.StatusRejected
	collaboration.RespondedAt = now
	collaboration.UpdatedAt = now
	if err := uc.Collaborations.UpdateCollaboration(ctx, collaboration); err != nil {
		return RespondResult{}, err
	}

	notify(ctx, uc.Notifier, logger, "collaboration_reject_notify_failed", ports.NotifierEvent{
		Text:       fmt.Sprintf("Your collaboration on %q was rejected", campaign.Name),
		ReceiverID: collaboration.InfluencerID,
		Name:       campaign.Name,
		Image:      campaign.Image,
	})

	logger.Info("collaboration rejected",
		"event", "collaboration_rejected",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"collaboration_id", collaboration.CollaborationID,
		"campaign_id", collaboration.CampaignID,
	)
	return RespondResult{Collaboration: collaboration}, nil
}
