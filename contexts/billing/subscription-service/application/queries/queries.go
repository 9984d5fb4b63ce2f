package queries

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	"brandlink/contexts/billing/subscription-service/ports"
)

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) ListPackages(ctx context.Context) ([]entities.Package, error) {
	return uc.Repository.ListPackages(ctx)
}

func (uc QueryUseCase) ListSubscriptions(ctx context.Context, status entities.SubscriptionStatus) ([]entities.Subscription, error) {
	return uc.Repository.ListSubscriptions(ctx, status)
}

func (uc QueryUseCase) GetAccount(ctx context.Context, userID string) (entities.Account, error) {
	return uc.Repository.GetAccount(ctx, userID)
}

// IsSubscriptionActive reports whether the user holds an active
// subscription right now.
func (uc QueryUseCase) IsSubscriptionActive(ctx context.Context, userID string) (bool, error) {
	_, err := uc.Repository.FindActiveByUser(ctx, strings.TrimSpace(userID))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, domainerrors.ErrSubscriptionNotFound) {
		return false, nil
	}
	return false, err
}

// ActivePackageLimit resolves the campaign allowance of the user's active
// subscription. An active subscription pointing at a missing package is a
// data-integrity fault and never grants unlimited creation.
func (uc QueryUseCase) ActivePackageLimit(ctx context.Context, userID string) (int, error) {
	subscription, err := uc.Repository.FindActiveByUser(ctx, strings.TrimSpace(userID))
	if err != nil {
		return 0, err
	}
	pkg, err := uc.Repository.GetPackage(ctx, subscription.PackageID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrPackageNotFound) {
			return 0, fmt.Errorf("%w: active subscription %s references missing package %s",
				domainerrors.ErrConfiguration, subscription.SubscriptionID, subscription.PackageID)
		}
		return 0, err
	}
	return pkg.Limit, nil
}
