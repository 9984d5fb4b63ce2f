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

type SubmitProofCommand struct {
	CollaborationID string
	InfluencerID    string
	Images          []string
	SocialLinks     []string
}

// SubmitProofUseCase records the influencer's completion evidence. The
// collaboration must be Accepted and carry no earlier non-rejected proof.
// The campaign owner and the admin feed are both notified.
type SubmitProofUseCase struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Clock          ports.Clock
	IDGenerator    ports.IDGenerator
	Logger         *slog.Logger
}

func (uc SubmitProofUseCase) Execute(ctx context.Context, cmd SubmitProofCommand) (entities.Proof, error) {
	logger := application.ResolveLogger(uc.Logger)

	collaboration, err := uc.Collaborations.GetCollaboration(ctx, cmd.CollaborationID)
	if err != nil {
		return entities.Proof{}, err
	}
	if collaboration.InfluencerID != strings.TrimSpace(cmd.InfluencerID) {
		return entities.Proof{}, domainerrors.ErrForbidden
	}
	if collaboration.Status != entities.StatusAccepted {
		return entities.Proof{}, domainerrors.ErrCollaborationNotAccepted
	}

	existing, err := uc.Collaborations.GetProofByCollaboration(ctx, collaboration.CollaborationID)
	if err == nil && !existing.IsRejected() {
		return entities.Proof{}, domainerrors.ErrDuplicateSubmission
	}
	if err != nil && !errors.Is(err, domainerrors.ErrProofNotFound) {
		return entities.Proof{}, err
	}

	proofID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Proof{}, err
	}
	now := uc.Clock.Now().UTC()
	proof := entities.Proof{
		ProofID:         proofID,
		CollaborationID: collaboration.CollaborationID,
		CampaignID:      collaboration.CampaignID,
		InfluencerID:    collaboration.InfluencerID,
		Images:          trimAll(cmd.Images),
		SocialLinks:     trimAll(cmd.SocialLinks),
		Status:          entities.ProofPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if !proof.ValidateBasics() {
		return entities.Proof{}, domainerrors.ErrInvalidInput
	}
	if err := uc.Collaborations.CreateProof(ctx, proof); err != nil {
		return entities.Proof{}, err
	}

	name, image := campaignDisplay(ctx, uc.Campaigns, collaboration.CampaignID)
	notify(ctx, uc.Notifier, logger, "collaboration_proof_notify_failed", ports.NotifierEvent{
		Text:             fmt.Sprintf("Proof submitted for %q", name),
		ReceiverID:       collaboration.BrandID,
		Name:             name,
		Image:            image,
		BroadcastToAdmin: true,
	})

	logger.Info("proof submitted",
		"event", "collaboration_proof_submitted",
		"module", "marketplace/collaboration-service",
		"layer", "application",
		"proof_id", proof.ProofID,
		"collaboration_id", collaboration.CollaborationID,
		"campaign_id", collaboration.CampaignID,
	)
	return proof, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
