package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "brandlink/contexts/marketplace/collaboration-service/application"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	domainerrors "brandlink/contexts/marketplace/collaboration-service/domain/errors"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

type CompleteCollaborationCommand struct {
	CollaborationID string
	BrandID         string
}

// CompleteCollaborationUseCase closes out an Accepted collaboration whose
// proof has been submitted. The collaboration and its proof flip to
// Completed in one transaction; the campaign counter stays where the accept
// put it.
type CompleteCollaborationUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

func (uc CompleteCollaborationUseCase) Execute(ctx context.Context, cmd CompleteCollaborationCommand) (entities.Collaboration, error) {
	logger := application.ResolveLogger(uc.Logger)

	collaboration, err := uc.Collaborations.GetCollaboration(ctx, cmd.CollaborationID)
	if err != nil {
		return entities.Collaboration{}, err
	}
	if collaboration.BrandID != strings.TrimSpace(cmd.BrandID) {
		return entities.Collaboration{}, domainerrors.ErrForbidden
	}
	if collaboration.IsTerminal() {
		return entities.Collaboration{}, domainerrors.ErrAlreadyFinalized
	}
	if !collaboration.CanTransition(entities.StatusCompleted) {
		return entities.Collaboration{}, domainerrors.ErrInvalidStatusTransition
	}

	proof, err := uc.Collaborations.GetProofByCollaboration(ctx, collaboration.CollaborationID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrProofNotFound) {
			return entities.Collaboration{}, domainerrors.ErrProofRequired
		}
		return entities.Collaboration{}, err
	}
	if proof.IsRejected() {
		return entities.Collaboration{}, domainerrors.ErrProofRequired
	}

	now := uc.Clock.Now().UTC()
	eventID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Collaboration{}, err
	}
	envelope, err := collaborationEnvelope(eventID, EventCollaborationCompleted, collaboration.CampaignID, now, map[string]any{
		"collaboration_id": collaboration.CollaborationID,
		"campaign_id":      collaboration.CampaignID,
		"influencer_id":    collaboration.InfluencerID,
		"proof_id":         proof.ProofID,
	})
	if err != nil {
		return entities.Collaboration{}, err
	}

	completed, err := uc.Collaborations.CompleteCollaboration(ctx, collaboration.CollaborationID, now, envelope)
	if err != nil {
		return entities.Collaboration{}, err
	}

	name, image := campaignDisplay(ctx, uc.Campaigns, collaboration.CampaignID)
	notify(ctx, uc.Notifier, logger, "collaboration_complete_notify_failed", ports.NotifierEvent{
		Text:       fmt.Sprintf("Your collaboration on %q was marked completed", name),
		ReceiverID: collaboration.InfluencerID,
		Name:       name,
		Image:      image,
	})

	logger.Info("collaboration completed",
		"event", "collaboration_completed",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"collaboration_id", completed.CollaborationID,
		"campaign_id", completed.CampaignID,
	)
	return completed, nil
}

type CancelCollaborationCommand struct {
	CollaborationID string
	BrandID         string
}

// CancelCollaborationUseCase cancels a Pending or Accepted collaboration.
// A slot taken on accept is not handed back; the campaign keeps its count.
type CancelCollaborationUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	Logger         *slog.Logger
}

func (uc CancelCollaborationUseCase) Execute(ctx context.Context, cmd CancelCollaborationCommand) (entities.Collaboration, error) {
	logger := application.ResolveLogger(uc.Logger)

	collaboration, err := uc.Collaborations.GetCollaboration(ctx, cmd.CollaborationID)
	if err != nil {
		return entities.Collaboration{}, err
	}
	if collaboration.BrandID != strings.TrimSpace(cmd.BrandID) {
		return entities.Collaboration{}, domainerrors.ErrForbidden
	}
	if collaboration.IsTerminal() {
		return entities.Collaboration{}, domainerrors.ErrAlreadyFinalized
	}
	if !collaboration.CanTransition(entities.StatusCancelled) {
		return entities.Collaboration{}, domainerrors.ErrInvalidStatusTransition
	}

	now := uc.Clock.Now().UTC()
	collaboration.Status = entities.StatusCancelled
	collaboration.UpdatedAt = now
	if err := uc.Collaborations.UpdateCollaboration(ctx, collaboration); err != nil {
		return entities.Collaboration{}, err
	}

	name, image := campaignDisplay(ctx, uc.Campaigns, collaboration.CampaignID)
	notify(ctx, uc.Notifier, logger, "collaboration_cancel_notify_failed", ports.NotifierEvent{
		Text:       fmt.Sprintf("Your collaboration on %q was cancelled", name),
		ReceiverID: collaboration.InfluencerID,
		Name:       name,
		Image:      image,
	})

	logger.Info("collaboration cancelled",
		"event", "collaboration_cancelled",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"collaboration_id", collaboration.CollaborationID,
		"campaign_id", collaboration.CampaignID,
	)
	return collaboration, nil
}

func campaignDisplay(ctx context.Context, campaigns ports.CampaignReader, campaignID string) (string, string) {
	if campaigns == nil {
		return campaignID, ""
	}
	campaign, err := campaigns.GetCampaignSnapshot(ctx, campaignID)
	if err != nil {
		return campaignID, ""
	}
	return campaign.Name, campaign.Image
}
