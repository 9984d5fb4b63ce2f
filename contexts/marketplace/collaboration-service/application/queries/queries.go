package queries

import (
	"context"
	"log/slog"

	"brandlink/contexts/marketplace/collaboration-service/domain/entities"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

type ListCollaborationsQuery struct {
	CampaignID   string
	BrandID      string
	InfluencerID string
	Origin       entities.Origin
	Status       entities.Status
	Page         int
	Limit        int
}

type ListCollaborationsResult struct {
	Collaborations []entities.Collaboration
	Page           int
	Total          int
}

type QueryUseCase struct {
	Collaborations ports.Repository
	Logger         *slog.Logger
}

func (uc QueryUseCase) GetCollaboration(ctx context.Context, collaborationID string) (entities.Collaboration, error) {
	return uc.Collaborations.GetCollaboration(ctx, collaborationID)
}

func (uc QueryUseCase) ListCollaborations(ctx context.Context, query ListCollaborationsQuery) (ListCollaborationsResult, error) {
	page := query.Page
	if page <= 0 {
		page = 1
	}
	limit := query.Limit
	if limit <= 0 {
		limit = 10
	}

	items, total, err := uc.Collaborations.ListCollaborations(ctx, ports.CollaborationFilter{
		CampaignID:   query.CampaignID,
		BrandID:      query.BrandID,
		InfluencerID: query.InfluencerID,
		Origin:       query.Origin,
		Status:       query.Status,
		Page:         page,
		Limit:        limit,
	})
	if err != nil {
		return ListCollaborationsResult{}, err
	}
	return ListCollaborationsResult{
		Collaborations: items,
		Page:           page,
		Total:          total,
	}, nil
}

func (uc QueryUseCase) GetProof(ctx context.Context, collaborationID string) (entities.Proof, error) {
	return uc.Collaborations.GetProofByCollaboration(ctx, collaborationID)
}

// ListProofsForBrand returns the proofs submitted against the given
// campaigns, for the campaign owner's review screen.
func (uc QueryUseCase) ListProofsForBrand(ctx context.Context, campaignIDs []string) ([]entities.Proof, error) {
	if len(campaignIDs) == 0 {
		return []entities.Proof{}, nil
	}
	return uc.Collaborations.ListProofsByCampaigns(ctx, campaignIDs)
}
