package http

type BrandStatisticsResponse struct {
	TotalCampaigns    int64 `json:"total_campaigns"`
	TotalBrands       int64 `json:"total_brands"`
	TotalRevenueCents int64 `json:"total_revenue_cents"`
}

type InfluencerStatisticsResponse struct {
	TotalCollaborations       int64 `json:"total_collaborations"`
	TotalInfluencers          int64 `json:"total_influencers"`
	LatestMonthlyRevenueCents int64 `json:"latest_monthly_revenue_cents"`
}

type MonthlyEarningView struct {
	Year         int    `json:"year"`
	Month        string `json:"month"`
	RevenueCents int64  `json:"revenue_cents"`
}

type MonthlyEarningsResponse struct {
	Earnings []MonthlyEarningView `json:"earnings"`
}

type RecordAdminActionRequest struct {
	Action        string `json:"action"`
	TargetID      string `json:"target_id"`
	Justification string `json:"justification"`
	SourceIP      string `json:"source_ip"`
	CorrelationID string `json:"correlation_id"`
}

type RecordAdminActionResponse struct {
	AuditID    string `json:"audit_id"`
	OccurredAt string `json:"occurred_at"`
}

type AuditLogView struct {
	AuditID       string `json:"audit_id"`
	ActorID       string `json:"actor_id"`
	Action        string `json:"action"`
	TargetID      string `json:"target_id,omitempty"`
	Justification string `json:"justification"`
	OccurredAt    string `json:"occurred_at"`
}

type ListAuditLogsResponse struct {
	Logs []AuditLogView `json:"logs"`
}
