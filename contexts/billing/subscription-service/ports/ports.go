package ports

import (
	"context"
	"time"

	"brandlink/contexts/billing/subscription-service/domain/entities"
)

type Repository interface {
	CreatePackage(ctx context.Context, pkg entities.Package) error
	UpdatePackage(ctx context.Context, pkg entities.Package) error
	GetPackage(ctx context.Context, packageID string) (entities.Package, error)
	ListPackages(ctx context.Context) ([]entities.Package, error)

	CreateSubscription(ctx context.Context, subscription entities.Subscription) error
	UpdateSubscription(ctx context.Context, subscription entities.Subscription) error
	GetSubscription(ctx context.Context, subscriptionID string) (entities.Subscription, error)
	FindActiveByUser(ctx context.Context, userID string) (entities.Subscription, error)
	ListSubscriptions(ctx context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error)

	UpsertAccount(ctx context.Context, account entities.Account) error
	GetAccount(ctx context.Context, userID string) (entities.Account, error)
}

// ProviderSubscription is what the payment provider reports back after a
// successful checkout.
type ProviderSubscription struct {
	ProviderRef        string
	CurrentPeriodStart time.Time
	CurrentPeriodEnd   time.Time
}

// PaymentGateway is the opaque billing boundary. Checkout, webhooks, and
// billing-portal flows all live behind it.
type PaymentGateway interface {
	CreateSubscription(ctx context.Context, userID string, pkg entities.Package) (ProviderSubscription, error)
	CancelAtPeriodEnd(ctx context.Context, providerRef string) error
	Charge(ctx context.Context, userID string, amountCents int64) error
}

type NotifierEvent struct {
	Text             string
	ReceiverID       string
	Name             string
	Image            string
	BroadcastToAdmin bool
}

type Notifier interface {
	Send(ctx context.Context, event NotifierEvent) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}
