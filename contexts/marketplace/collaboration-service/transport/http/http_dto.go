package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type InviteInfluencerRequest struct {
	CampaignID   string `json:"campaign_id"`
	InfluencerID string `json:"influencer_id"`
	Message      string `json:"message"`
}

type ShowInterestRequest struct {
	CampaignID string `json:"campaign_id"`
	Message    string `json:"message"`
}

type RespondRequest struct {
	Action string `json:"action"` // "accept" or "reject"
}

type SubmitProofRequest struct {
	Images      []string `json:"images"`
	SocialLinks []string `json:"social_links"`
}

type CollaborationView struct {
	CollaborationID string `json:"collaboration_id"`
	CampaignID      string `json:"campaign_id"`
	BrandID         string `json:"brand_id"`
	InfluencerID    string `json:"influencer_id"`
	Origin          string `json:"origin"`
	Status          string `json:"status"`
	Message         string `json:"message,omitempty"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
	RespondedAt     string `json:"responded_at,omitempty"`
	CompletedAt     string `json:"completed_at,omitempty"`
}

type ProofView struct {
	ProofID         string   `json:"proof_id"`
	CollaborationID string   `json:"collaboration_id"`
	CampaignID      string   `json:"campaign_id"`
	InfluencerID    string   `json:"influencer_id"`
	Images          []string `json:"images"`
	SocialLinks     []string `json:"social_links"`
	Status          string   `json:"status"`
	CreatedAt       string   `json:"created_at"`
}

type CollaborationResponse struct {
	Collaboration CollaborationView `json:"collaboration"`
}

type RespondResponse struct {
	Collaboration   CollaborationView `json:"collaboration"`
	InfluencerCount int               `json:"influencer_count"`
}

type ProofResponse struct {
	Proof ProofView `json:"proof"`
}

type ListCollaborationsResponse struct {
	Collaborations []CollaborationView `json:"collaborations"`
	Page           int                 `json:"page"`
	Total          int                 `json:"total"`
}

type ListProofsResponse struct {
	Proofs []ProofView `json:"proofs"`
}
