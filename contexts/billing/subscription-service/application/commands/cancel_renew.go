package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	application "brandlink/contexts/billing/subscription-service/application"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	"brandlink/contexts/billing/subscription-service/ports"
	"brandlink/internal/shared/period"
)

type CancelSubscriptionCommand struct {
	UserID         string
	SubscriptionID string
}

// CancelSubscriptionUseCase asks the gateway to stop renewal at period end
// and marks the local record cancelled. The account keeps its flags until
// the expiry sweep clears them when the period actually ends.
type CancelSubscriptionUseCase struct {
	Repository ports.Repository
	Gateway    ports.PaymentGateway
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc CancelSubscriptionUseCase) Execute(ctx context.Context, cmd CancelSubscriptionCommand) (entities.Subscription, error) {
	subscription, err := uc.Repository.GetSubscription(ctx, strings.TrimSpace(cmd.SubscriptionID))
	if err != nil {
		return entities.Subscription{}, err
	}
	if subscription.UserID != strings.TrimSpace(cmd.UserID) {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	if !subscription.IsActive() {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}

	if err := uc.Gateway.CancelAtPeriodEnd(ctx, subscription.ProviderRef); err != nil {
		return entities.Subscription{}, fmt.Errorf("%w: %v", domainerrors.ErrPaymentFailed, err)
	}

	subscription.Status = entities.SubscriptionCancelled
	subscription.UpdatedAt = uc.Clock.Now().UTC()
	if err := uc.Repository.UpdateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	application.ResolveLogger(uc.Logger).Info("subscription cancelled",
		"event", "subscription_cancelled",
		"module", "billing/subscription-service",
		"layer", "application",
		"subscription_id", subscription.SubscriptionID,
		"user_id", subscription.UserID,
	)
	return subscription, nil
}

type RenewSubscriptionCommand struct {
	UserID         string
	SubscriptionID string
}

// RenewSubscriptionUseCase re-activates an expired subscription: charges
// the package price through the gateway and opens a fresh 30-day period
// starting today.
type RenewSubscriptionUseCase struct {
	Repository ports.Repository
	Gateway    ports.PaymentGateway
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (uc RenewSubscriptionUseCase) Execute(ctx context.Context, cmd RenewSubscriptionCommand) (entities.Subscription, error) {
	subscription, err := uc.Repository.GetSubscription(ctx, strings.TrimSpace(cmd.SubscriptionID))
	if err != nil {
		return entities.Subscription{}, err
	}
	if subscription.UserID != strings.TrimSpace(cmd.UserID) {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotFound
	}
	if subscription.Status != entities.SubscriptionExpired {
		return entities.Subscription{}, domainerrors.ErrSubscriptionNotExpired
	}

	pkg, err := uc.Repository.GetPackage(ctx, subscription.PackageID)
	if err != nil {
		return entities.Subscription{}, err
	}

	if err := uc.Gateway.Charge(ctx, subscription.UserID, pkg.PriceCents); err != nil {
		return entities.Subscription{}, fmt.Errorf("%w: %v", domainerrors.ErrPaymentFailed, err)
	}

	now := uc.Clock.Now().UTC()
	subscription.Status = entities.SubscriptionActive
	subscription.CurrentPeriodStart = period.FormatSubscriptionDate(now)
	subscription.CurrentPeriodEnd = period.FormatSubscriptionDate(now.AddDate(0, 0, entities.RenewalPeriodDays))
	subscription.UpdatedAt = now
	if err := uc.Repository.UpdateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	if err := uc.Repository.UpsertAccount(ctx, entities.Account{
		UserID:     subscription.UserID,
		Subscribed: true,
		Title:      pkg.Title,
		UpdatedAt:  now,
	}); err != nil {
		return entities.Subscription{}, err
	}

	application.ResolveLogger(uc.Logger).Info("subscription renewed",
		"event", "subscription_renewed",
		"module", "billing/subscription-service",
		"layer", "application",
		"subscription_id", subscription.SubscriptionID,
		"user_id", subscription.UserID,
		"period_end", subscription.CurrentPeriodEnd,
	)
	return subscription, nil
}
