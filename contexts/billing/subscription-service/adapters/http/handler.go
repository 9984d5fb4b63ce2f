package httpadapter

import (
	"context"
	"log/slog"

	"brandlink/contexts/billing/subscription-service/application/commands"
	"brandlink/contexts/billing/subscription-service/application/queries"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	httptransport "brandlink/contexts/billing/subscription-service/transport/http"
)

type Handler struct {
	CreatePackage commands.CreatePackageUseCase
	UpdatePackage commands.UpdatePackageUseCase
	Subscribe     commands.SubscribeUseCase
	Cancel        commands.CancelSubscriptionUseCase
	Renew         commands.RenewSubscriptionUseCase
	Queries       queries.QueryUseCase
	Logger        *slog.Logger
}

func (h Handler) CreatePackageHandler(ctx context.Context, req httptransport.CreatePackageRequest) (httptransport.PackageResponse, error) {
	pkg, err := h.CreatePackage.Execute(ctx, commands.CreatePackageCommand{
		Title:      entities.PackageTitle(req.Title),
		Duration:   entities.PackageDuration(req.Duration),
		Limit:      req.Limit,
		PriceCents: req.PriceCents,
		Features:   req.Features,
	})
	if err != nil {
		return httptransport.PackageResponse{}, err
	}
	return httptransport.PackageResponse{Package: mapPackage(pkg)}, nil
}

func (h Handler) UpdatePackageHandler(ctx context.Context, packageID string, req httptransport.UpdatePackageRequest) (httptransport.PackageResponse, error) {
	pkg, err := h.UpdatePackage.Execute(ctx, commands.UpdatePackageCommand{
		PackageID:  packageID,
		Limit:      req.Limit,
		PriceCents: req.PriceCents,
		Features:   req.Features,
	})
	if err != nil {
		return httptransport.PackageResponse{}, err
	}
	return httptransport.PackageResponse{Package: mapPackage(pkg)}, nil
}

func (h Handler) ListPackagesHandler(ctx context.Context) (httptransport.ListPackagesResponse, error) {
	packages, err := h.Queries.ListPackages(ctx)
	if err != nil {
		return httptransport.ListPackagesResponse{}, err
	}
	views := make([]httptransport.PackageView, 0, len(packages))
	for _, pkg := range packages {
		views = append(views, mapPackage(pkg))
	}
	return httptransport.ListPackagesResponse{Packages: views}, nil
}

func (h Handler) SubscribeHandler(ctx context.Context, userID string, req httptransport.SubscribeRequest) (httptransport.SubscriptionResponse, error) {
	subscription, err := h.Subscribe.Execute(ctx, commands.SubscribeCommand{
		UserID:    userID,
		PackageID: req.PackageID,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return httptransport.SubscriptionResponse{Subscription: mapSubscription(subscription)}, nil
}

func (h Handler) CancelHandler(ctx context.Context, userID string, subscriptionID string) (httptransport.SubscriptionResponse, error) {
	subscription, err := h.Cancel.Execute(ctx, commands.CancelSubscriptionCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return httptransport.SubscriptionResponse{Subscription: mapSubscription(subscription)}, nil
}

func (h Handler) RenewHandler(ctx context.Context, userID string, subscriptionID string) (httptransport.SubscriptionResponse, error) {
	subscription, err := h.Renew.Execute(ctx, commands.RenewSubscriptionCommand{
		UserID:         userID,
		SubscriptionID: subscriptionID,
	})
	if err != nil {
		return httptransport.SubscriptionResponse{}, err
	}
	return httptransport.SubscriptionResponse{Subscription: mapSubscription(subscription)}, nil
}

func (h Handler) ListSubscriptionsHandler(ctx context.Context, status string) (httptransport.ListSubscriptionsResponse, error) {
	subscriptions, err := h.Queries.ListSubscriptions(ctx, entities.SubscriptionStatus(status))
	if err != nil {
		return httptransport.ListSubscriptionsResponse{}, err
	}
	views := make([]httptransport.SubscriptionView, 0, len(subscriptions))
	for _, subscription := range subscriptions {
		views = append(views, mapSubscription(subscription))
	}
	return httptransport.ListSubscriptionsResponse{Subscriptions: views}, nil
}

func (h Handler) GetAccountHandler(ctx context.Context, userID string) (httptransport.AccountResponse, error) {
	account, err := h.Queries.GetAccount(ctx, userID)
	if err != nil {
		return httptransport.AccountResponse{}, err
	}
	return httptransport.AccountResponse{Account: httptransport.AccountView{
		UserID:     account.UserID,
		Subscribed: account.Subscribed,
		Title:      string(account.Title),
	}}, nil
}

func mapPackage(item entities.Package) httptransport.PackageView {
	return httptransport.PackageView{
		PackageID:  item.PackageID,
		Title:      string(item.Title),
		Duration:   string(item.Duration),
		Limit:      item.Limit,
		PriceCents: item.PriceCents,
		Features:   item.Features,
	}
}

func mapSubscription(item entities.Subscription) httptransport.SubscriptionView {
	return httptransport.SubscriptionView{
		SubscriptionID:     item.SubscriptionID,
		UserID:             item.UserID,
		PackageID:          item.PackageID,
		Status:             string(item.Status),
		CurrentPeriodStart: item.CurrentPeriodStart,
		CurrentPeriodEnd:   item.CurrentPeriodEnd,
	}
}
