package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateCampaignRequest struct {
	Name               string `json:"name"`
	Image              string `json:"image"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	CollaborationLimit int    `json:"collaboration_limit"`
}

type UpdateCampaignRequest struct {
	Name               *string `json:"name"`
	Image              *string `json:"image"`
	Description        *string `json:"description"`
	Category           *string `json:"category"`
	CollaborationLimit *int    `json:"collaboration_limit"`
}

type ModerateCampaignRequest struct {
	ApprovalStatus string `json:"approval_status"`
}

type CampaignView struct {
	CampaignID         string `json:"campaign_id"`
	BrandID            string `json:"brand_id"`
	Name               string `json:"name"`
	Image              string `json:"image"`
	Description        string `json:"description"`
	Category           string `json:"category"`
	CollaborationLimit int    `json:"collaboration_limit"`
	InfluencerCount    int    `json:"influencer_count"`
	ApprovalStatus     string `json:"approval_status"`
	Status             string `json:"status"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type CreateCampaignResponse struct {
	Campaign     CampaignView `json:"campaign"`
	MonthlyCount int          `json:"monthly_count"`
}

type CampaignResponse struct {
	Campaign CampaignView `json:"campaign"`
}

type ListCampaignsResponse struct {
	Campaigns []CampaignView `json:"campaigns"`
	Page      int            `json:"page"`
	Total     int            `json:"total"`
}
