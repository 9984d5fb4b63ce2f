package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	application "brandlink/contexts/billing/subscription-service/application"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	"brandlink/contexts/billing/subscription-service/ports"
	"brandlink/internal/shared/period"
)

type SubscribeCommand struct {
	UserID    string
	PackageID string
}

// SubscribeUseCase runs the checkout through the gateway and records the
// resulting subscription. The account flags flip in the same call so the
// quota evaluator sees the new tier immediately.
type SubscribeUseCase struct {
	Repository  ports.Repository
	Gateway     ports.PaymentGateway
	Notifier    ports.Notifier
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func (uc SubscribeUseCase) Execute(ctx context.Context, cmd SubscribeCommand) (entities.Subscription, error) {
	logger := application.ResolveLogger(uc.Logger)
	userID := strings.TrimSpace(cmd.UserID)
	if userID == "" || strings.TrimSpace(cmd.PackageID) == "" {
		return entities.Subscription{}, domainerrors.ErrInvalidInput
	}

	if _, err := uc.Repository.FindActiveByUser(ctx, userID); err == nil {
		return entities.Subscription{}, domainerrors.ErrSubscriptionExists
	} else if !errors.Is(err, domainerrors.ErrSubscriptionNotFound) {
		return entities.Subscription{}, err
	}

	pkg, err := uc.Repository.GetPackage(ctx, strings.TrimSpace(cmd.PackageID))
	if err != nil {
		return entities.Subscription{}, err
	}

	provider, err := uc.Gateway.CreateSubscription(ctx, userID, pkg)
	if err != nil {
		return entities.Subscription{}, fmt.Errorf("%w: %v", domainerrors.ErrPaymentFailed, err)
	}

	subscriptionID, err := uc.IDGenerator.NewID(ctx)
	if err != nil {
		return entities.Subscription{}, err
	}
	now := uc.Clock.Now().UTC()

	subscription := entities.Subscription{
		SubscriptionID:     subscriptionID,
		UserID:             userID,
		PackageID:          pkg.PackageID,
		ProviderRef:        provider.ProviderRef,
		Status:             entities.SubscriptionActive,
		CurrentPeriodStart: period.FormatSubscriptionDate(provider.CurrentPeriodStart),
		CurrentPeriodEnd:   period.FormatSubscriptionDate(provider.CurrentPeriodEnd),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.Repository.CreateSubscription(ctx, subscription); err != nil {
		return entities.Subscription{}, err
	}

	if err := uc.Repository.UpsertAccount(ctx, entities.Account{
		UserID:     userID,
		Subscribed: true,
		Title:      pkg.Title,
		UpdatedAt:  now,
	}); err != nil {
		return entities.Subscription{}, err
	}

	if uc.Notifier != nil {
		if err := uc.Notifier.Send(ctx, ports.NotifierEvent{
			Text:       fmt.Sprintf("Your %s subscription is active until %s", pkg.Title, subscription.CurrentPeriodEnd),
			ReceiverID: userID,
		}); err != nil {
			logger.Warn("subscribe notification failed",
				"event", "subscription_notify_failed",
				"module", "billing/subscription-service",
				"layer", "application",
				"user_id", userID,
				"error", err.Error(),
			)
		}
	}

	logger.Info("subscription created",
		"event", "subscription_created",
		"module", "billing/subscription-service",
		"layer", "application",
		"subscription_id", subscription.SubscriptionID,
		"user_id", userID,
		"package_id", pkg.PackageID,
	)
	return subscription, nil
}
