package ports

import (
	"context"
	"time"

	"brandlink/contexts/marketplace/campaign-service/domain/entities"
)

type CampaignFilter struct {
	BrandID  string
	Category string
	Status   entities.CampaignStatus
	Page     int
	Limit    int
}

type CampaignRepository interface {
	CreateCampaign(ctx context.Context, campaign entities.Campaign) error
	UpdateCampaign(ctx context.Context, campaign entities.Campaign) error
	GetCampaign(ctx context.Context, campaignID string) (entities.Campaign, error)
	ListCampaigns(ctx context.Context, filter CampaignFilter) ([]entities.Campaign, int, error)
	CountCreatedBetween(ctx context.Context, brandID string, from, to time.Time) (int, error)
}

// SubscriptionReader is the campaign module's view onto billing: enough to
// resolve the monthly campaign-creation quota, nothing more.
type SubscriptionReader interface {
	IsSubscriptionActive(ctx context.Context, userID string) (bool, error)
	ActivePackageLimit(ctx context.Context, userID string) (int, error)
}

type NotifierEvent struct {
	Text             string
	ReceiverID       string
	Name             string
	Image            string
	BroadcastToAdmin bool
}

// Notifier is fire-and-forget; callers log failures and never roll back.
type Notifier interface {
	Send(ctx context.Context, event NotifierEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
