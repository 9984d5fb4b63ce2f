package httpadapter

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"brandlink/contexts/marketplace/collaboration-service/application/commands"
	"brandlink/contexts/marketplace/collaboration-service/application/queries"
	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	httptransport "brandlink/contexts/marketplace/collaboration-service/transport/http"
)

type Handler struct {
	InviteInfluencer commands.InviteInfluencerUseCase
	ShowInterest     commands.ShowInterestUseCase
	Respond          commands.RespondUseCase
	SubmitProof      commands.SubmitProofUseCase
	Complete         commands.CompleteCollaborationUseCase
	Cancel           commands.CancelCollaborationUseCase
	Queries          queries.QueryUseCase
	Logger           *slog.Logger
}

func (h Handler) InviteInfluencerHandler(
	ctx context.Context,
	brandID string,
	req httptransport.InviteInfluencerRequest,
) (httptransport.CollaborationResponse, error) {
	collaboration, err := h.InviteInfluencer.Execute(ctx, commands.InviteInfluencerCommand{
		CampaignID:   req.CampaignID,
		BrandID:      brandID,
		InfluencerID: req.InfluencerID,
		Message:      req.Message,
	})
	if err != nil {
		return httptransport.CollaborationResponse{}, err
	}
	return httptransport.CollaborationResponse{Collaboration: mapCollaboration(collaboration)}, nil
}

func (h Handler) ShowInterestHandler(
	ctx context.Context,
	influencerID string,
	req httptransport.ShowInterestRequest,
) (httptransport.CollaborationResponse, error) {
	collaboration, err := h.ShowInterest.Execute(ctx, commands.ShowInterestCommand{
		CampaignID:   req.CampaignID,
		InfluencerID: influencerID,
		Message:      req.Message,
	})
	if err != nil {
		return httptransport.CollaborationResponse{}, err
	}
	return httptransport.CollaborationResponse{Collaboration: mapCollaboration(collaboration)}, nil
}

func (h Handler) RespondHandler(
	ctx context.Context,
	brandID string,
	collaborationID string,
	req httptransport.RespondRequest,
) (httptransport.RespondResponse, error) {
	result, err := h.Respond.Execute(ctx, commands.RespondCommand{
		CollaborationID: collaborationID,
		BrandID:         brandID,
		Accept:          strings.EqualFold(strings.TrimSpace(req.Action), "accept"),
	})
	if err != nil {
		return httptransport.RespondResponse{}, err
	}
	return httptransport.RespondResponse{
		Collaboration:   mapCollaboration(result.Collaboration),
		InfluencerCount: result.InfluencerCount,
	}, nil
}

func (h Handler) SubmitProofHandler(
	ctx context.Context,
	influencerID string,
	collaborationID string,
	req httptransport.SubmitProofRequest,
) (httptransport.ProofResponse, error) {
	proof, err := h.SubmitProof.Execute(ctx, commands.SubmitProofCommand{
		CollaborationID: collaborationID,
		InfluencerID:    influencerID,
		Images:          req.Images,
		SocialLinks:     req.SocialLinks,
	})
	if err != nil {
		return httptransport.ProofResponse{}, err
	}
	return httptransport.ProofResponse{Proof: mapProof(proof)}, nil
}

func (h Handler) CompleteHandler(ctx context.Context, brandID string, collaborationID string) (httptransport.CollaborationResponse, error) {
	collaboration, err := h.Complete.Execute(ctx, commands.CompleteCollaborationCommand{
		CollaborationID: collaborationID,
		BrandID:         brandID,
	})
	if err != nil {
		return httptransport.CollaborationResponse{}, err
	}
	return httptransport.CollaborationResponse{Collaboration: mapCollaboration(collaboration)}, nil
}

func (h Handler) CancelHandler(ctx context.Context, brandID string, collaborationID string) (httptransport.CollaborationResponse, error) {
	collaboration, err := h.Cancel.Execute(ctx, commands.CancelCollaborationCommand{
		CollaborationID: collaborationID,
		BrandID:         brandID,
	})
	if err != nil {
		return httptransport.CollaborationResponse{}, err
	}
	return httptransport.CollaborationResponse{Collaboration: mapCollaboration(collaboration)}, nil
}

func (h Handler) GetCollaborationHandler(ctx context.Context, collaborationID string) (httptransport.CollaborationResponse, error) {
	collaboration, err := h.Queries.GetCollaboration(ctx, collaborationID)
	if err != nil {
		return httptransport.CollaborationResponse{}, err
	}
	return httptransport.CollaborationResponse{Collaboration: mapCollaboration(collaboration)}, nil
}

func (h Handler) ListCollaborationsHandler(
	ctx context.Context,
	query queries.ListCollaborationsQuery,
) (httptransport.ListCollaborationsResponse, error) {
	result, err := h.Queries.ListCollaborations(ctx, query)
	if err != nil {
		return httptransport.ListCollaborationsResponse{}, err
	}

	views := make([]httptransport.CollaborationView, 0, len(result.Collaborations))
	for _, item := range result.Collaborations {
		views = append(views, mapCollaboration(item))
	}
	return httptransport.ListCollaborationsResponse{
		Collaborations: views,
		Page:           result.Page,
		Total:          result.Total,
	}, nil
}

func (h Handler) ListProofsHandler(ctx context.Context, campaignIDs []string) (httptransport.ListProofsResponse, error) {
	proofs, err := h.Queries.ListProofsForBrand(ctx, campaignIDs)
	if err != nil {
		return httptransport.ListProofsResponse{}, err
	}

	views := make([]httptransport.ProofView, 0, len(proofs))
	for _, proof := range proofs {
		views = append(views, mapProof(proof))
	}
	return httptransport.ListProofsResponse{Proofs: views}, nil
}

func mapCollaboration(item entities.Collaboration) httptransport.CollaborationView {
	view := httptransport.CollaborationView{
		CollaborationID: item.CollaborationID,
		CampaignID:      item.CampaignID,
		BrandID:         item.BrandID,
		InfluencerID:    item.InfluencerID,
		Origin:          string(item.Origin),
		Status:          string(item.Status),
		Message:         item.Message,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if !item.RespondedAt.IsZero() {
		view.RespondedAt = item.RespondedAt.UTC().Format(time.RFC3339)
	}
	if !item.CompletedAt.IsZero() {
		view.CompletedAt = item.CompletedAt.UTC().Format(time.RFC3339)
	}
	return view
}

func mapProof(item entities.Proof) httptransport.ProofView {
	return httptransport.ProofView{
		ProofID:         item.ProofID,
		CollaborationID: item.CollaborationID,
		CampaignID:      item.CampaignID,
		InfluencerID:    item.InfluencerID,
		Images:          append([]string(nil), item.Images...),
		SocialLinks:     append([]string(nil), item.SocialLinks...),
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
	}
}
