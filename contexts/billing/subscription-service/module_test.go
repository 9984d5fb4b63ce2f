package subscriptionservice

import (
	"context"
	"errors"
	"testing"
	"time"

	"brandlink/contexts/billing/subscription-service/adapters/memory"
	"brandlink/contexts/billing/subscription-service/adapters/payment"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	domainerrors "brandlink/contexts/billing/subscription-service/domain/errors"
	httptransport "brandlink/contexts/billing/subscription-service/transport/http"
	"brandlink/internal/shared/period"
)

type stepClock struct {
	now time.Time
}

func (c *stepClock) Now() time.Time {
	return c.now
}

func newTestModule(t *testing.T) (Module, *stepClock) {
	t.Helper()
	clock := &stepClock{now: time.Date(2025, time.March, 3, 10, 0, 0, 0, time.UTC)}
	store := memory.NewStore()
	gateway := payment.NewLocalGateway(clock)
	module := NewModule(Dependencies{
		Repository: store,
		Gateway:    gateway,
		Notifier:   memory.NoopNotifier{},
		Clock:      clock,
		IDGen:      memory.UUIDGenerator{},
	})
	module.Store = store
	module.Gateway = gateway
	return module, clock
}

func createGoldPackage(t *testing.T, module Module, limit int) httptransport.PackageView {
	t.Helper()
	resp, err := module.Handler.CreatePackageHandler(context.Background(), httptransport.CreatePackageRequest{
		Title:      string(entities.PackageGold),
		Duration:   string(entities.DurationMonthly),
		Limit:      limit,
		PriceCents: 4999,
		Features:   []string{"priority support"},
	})
	if err != nil {
		t.Fatalf("create package: %v", err)
	}
	return resp.Package
}

func TestSubscribeActivatesAccount(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 5)

	resp, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if resp.Subscription.Status != string(entities.SubscriptionActive) {
		t.Fatalf("status = %q, want active", resp.Subscription.Status)
	}
	wantEnd := period.FormatSubscriptionDate(clock.now.AddDate(0, 0, entities.RenewalPeriodDays))
	if resp.Subscription.CurrentPeriodEnd != wantEnd {
		t.Fatalf("period end = %q, want %q", resp.Subscription.CurrentPeriodEnd, wantEnd)
	}

	account, err := module.Handler.GetAccountHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !account.Account.Subscribed || account.Account.Title != string(entities.PackageGold) {
		t.Fatalf("account = %+v, want subscribed Gold", account.Account)
	}

	active, err := module.Queries.IsSubscriptionActive(ctx, "brand-1")
	if err != nil || !active {
		t.Fatalf("IsSubscriptionActive = %v, %v; want true, nil", active, err)
	}
	limit, err := module.Queries.ActivePackageLimit(ctx, "brand-1")
	if err != nil {
		t.Fatalf("ActivePackageLimit: %v", err)
	}
	if limit != 5 {
		t.Fatalf("limit = %d, want 5", limit)
	}
}

func TestSubscribeRejectsSecondActiveSubscription(t *testing.T) {
	module, _ := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	if _, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID}); err != nil {
		t.Fatalf("first subscribe: %v", err)
	}
	_, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if !errors.Is(err, domainerrors.ErrSubscriptionExists) {
		t.Fatalf("second subscribe err = %v, want ErrSubscriptionExists", err)
	}
}

func TestSubscribePaymentFailureLeavesAccountUntouched(t *testing.T) {
	module, _ := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	module.Gateway.FailNext = true
	_, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if !errors.Is(err, domainerrors.ErrPaymentFailed) {
		t.Fatalf("subscribe err = %v, want ErrPaymentFailed", err)
	}

	account, err := module.Handler.GetAccountHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Account.Subscribed {
		t.Fatalf("account flagged subscribed after failed checkout")
	}
	if active, _ := module.Queries.IsSubscriptionActive(ctx, "brand-1"); active {
		t.Fatalf("subscription recorded despite failed checkout")
	}
}

func TestCancelKeepsFlagsUntilSweep(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	subscribed, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	cancelled, err := module.Handler.CancelHandler(ctx, "brand-1", subscribed.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if cancelled.Subscription.Status != string(entities.SubscriptionCancelled) {
		t.Fatalf("status = %q, want cancelled", cancelled.Subscription.Status)
	}
	if got := module.Gateway.Cancelled(); len(got) != 1 {
		t.Fatalf("gateway cancellations = %v, want one", got)
	}

	// The paid-for period keeps running.
	account, err := module.Handler.GetAccountHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !account.Account.Subscribed {
		t.Fatalf("cancel cleared account flags before the period ended")
	}

	clock.now = clock.now.AddDate(0, 0, entities.RenewalPeriodDays+1)
	report, err := module.Sweeper.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Expired != 1 {
		t.Fatalf("sweep expired = %d, want 1", report.Expired)
	}

	account, err = module.Handler.GetAccountHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if account.Account.Subscribed || account.Account.Title != "" {
		t.Fatalf("account = %+v, want cleared after sweep", account.Account)
	}
}

func TestRenewRequiresExpiredSubscription(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	subscribed, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	_, err = module.Handler.RenewHandler(ctx, "brand-1", subscribed.Subscription.SubscriptionID)
	if !errors.Is(err, domainerrors.ErrSubscriptionNotExpired) {
		t.Fatalf("renew active err = %v, want ErrSubscriptionNotExpired", err)
	}

	clock.now = clock.now.AddDate(0, 0, entities.RenewalPeriodDays+1)
	if _, err := module.Sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	renewed, err := module.Handler.RenewHandler(ctx, "brand-1", subscribed.Subscription.SubscriptionID)
	if err != nil {
		t.Fatalf("renew expired: %v", err)
	}
	if renewed.Subscription.Status != string(entities.SubscriptionActive) {
		t.Fatalf("renewed status = %q, want active", renewed.Subscription.Status)
	}
	wantEnd := period.FormatSubscriptionDate(clock.now.AddDate(0, 0, entities.RenewalPeriodDays))
	if renewed.Subscription.CurrentPeriodEnd != wantEnd {
		t.Fatalf("renewed period end = %q, want %q", renewed.Subscription.CurrentPeriodEnd, wantEnd)
	}
	// Checkout charged once, renewal charged again.
	if charged := module.Gateway.ChargedTotal("brand-1"); charged != 2*4999 {
		t.Fatalf("charged = %d, want %d", charged, 2*4999)
	}

	account, err := module.Handler.GetAccountHandler(ctx, "brand-1")
	if err != nil {
		t.Fatalf("get account: %v", err)
	}
	if !account.Account.Subscribed || account.Account.Title != string(entities.PackageGold) {
		t.Fatalf("account = %+v, want restored after renewal", account.Account)
	}
}

func TestRenewPaymentFailureLeavesSubscriptionExpired(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	subscribed, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	clock.now = clock.now.AddDate(0, 0, entities.RenewalPeriodDays+1)
	if _, err := module.Sweeper.RunOnce(ctx); err != nil {
		t.Fatalf("sweep: %v", err)
	}

	module.Gateway.FailNext = true
	_, err = module.Handler.RenewHandler(ctx, "brand-1", subscribed.Subscription.SubscriptionID)
	if !errors.Is(err, domainerrors.ErrPaymentFailed) {
		t.Fatalf("renew err = %v, want ErrPaymentFailed", err)
	}

	remaining, err := module.Handler.ListSubscriptionsHandler(ctx, string(entities.SubscriptionExpired))
	if err != nil {
		t.Fatalf("list expired: %v", err)
	}
	if len(remaining.Subscriptions) != 1 {
		t.Fatalf("expired subscriptions = %d, want 1", len(remaining.Subscriptions))
	}
}

func TestSweepExpiresOnPeriodEndDay(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	if _, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	// Stored period-end dates carry day precision. Landing on the end day
	// counts as expired even though midnight of that day is behind us.
	clock.now = clock.now.AddDate(0, 0, entities.RenewalPeriodDays)
	report, err := module.Sweeper.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Expired != 1 {
		t.Fatalf("sweep expired = %d, want 1", report.Expired)
	}
}

func TestSweepSkipsMalformedPeriodAndIsIdempotent(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()
	pkg := createGoldPackage(t, module, 3)

	if _, err := module.Handler.SubscribeHandler(ctx, "brand-1", httptransport.SubscribeRequest{PackageID: pkg.PackageID}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	broken := entities.Subscription{
		SubscriptionID:     "sub-broken",
		UserID:             "brand-2",
		PackageID:          pkg.PackageID,
		Status:             entities.SubscriptionActive,
		CurrentPeriodStart: "not-a-date",
		CurrentPeriodEnd:   "not-a-date",
		CreatedAt:          clock.now,
		UpdatedAt:          clock.now,
	}
	if err := module.Store.CreateSubscription(ctx, broken); err != nil {
		t.Fatalf("seed broken subscription: %v", err)
	}

	clock.now = clock.now.AddDate(0, 0, entities.RenewalPeriodDays+1)
	report, err := module.Sweeper.RunOnce(ctx)
	if err != nil {
		t.Fatalf("sweep: %v", err)
	}
	if report.Expired != 1 || report.ParseFailed != 1 {
		t.Fatalf("report = %+v, want one expired and one parse failure", report)
	}

	// Expired rows drop out of the scan set, so a second pass is a no-op.
	report, err = module.Sweeper.RunOnce(ctx)
	if err != nil {
		t.Fatalf("second sweep: %v", err)
	}
	if report.Expired != 0 || report.ParseFailed != 1 {
		t.Fatalf("second report = %+v, want no new expiries", report)
	}
}

func TestActivePackageLimitFailsOnMissingPackage(t *testing.T) {
	module, clock := newTestModule(t)
	ctx := context.Background()

	orphan := entities.Subscription{
		SubscriptionID:     "sub-orphan",
		UserID:             "brand-9",
		PackageID:          "pkg-ghost",
		Status:             entities.SubscriptionActive,
		CurrentPeriodStart: period.FormatSubscriptionDate(clock.now),
		CurrentPeriodEnd:   period.FormatSubscriptionDate(clock.now.AddDate(0, 0, entities.RenewalPeriodDays)),
		CreatedAt:          clock.now,
		UpdatedAt:          clock.now,
	}
	if err := module.Store.CreateSubscription(ctx, orphan); err != nil {
		t.Fatalf("seed subscription: %v", err)
	}

	_, err := module.Queries.ActivePackageLimit(ctx, "brand-9")
	if !errors.Is(err, domainerrors.ErrConfiguration) {
		t.Fatalf("ActivePackageLimit err = %v, want ErrConfiguration", err)
	}
}

func TestPackageCatalogValidationAndPatch(t *testing.T) {
	module, _ := newTestModule(t)
	ctx := context.Background()

	_, err := module.Handler.CreatePackageHandler(ctx, httptransport.CreatePackageRequest{
		Title:    "Platinum",
		Duration: string(entities.DurationMonthly),
		Limit:    3,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPackageInput) {
		t.Fatalf("unknown title err = %v, want ErrInvalidPackageInput", err)
	}
	_, err = module.Handler.CreatePackageHandler(ctx, httptransport.CreatePackageRequest{
		Title:    string(entities.PackageSilver),
		Duration: "Weekly",
		Limit:    3,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPackageInput) {
		t.Fatalf("unknown duration err = %v, want ErrInvalidPackageInput", err)
	}
	_, err = module.Handler.CreatePackageHandler(ctx, httptransport.CreatePackageRequest{
		Title:    string(entities.PackageSilver),
		Duration: string(entities.DurationMonthly),
		Limit:    0,
	})
	if !errors.Is(err, domainerrors.ErrInvalidPackageInput) {
		t.Fatalf("zero limit err = %v, want ErrInvalidPackageInput", err)
	}

	pkg := createGoldPackage(t, module, 3)
	newLimit := 7
	updated, err := module.Handler.UpdatePackageHandler(ctx, pkg.PackageID, httptransport.UpdatePackageRequest{Limit: &newLimit})
	if err != nil {
		t.Fatalf("update package: %v", err)
	}
	if updated.Package.Limit != 7 || updated.Package.PriceCents != 4999 {
		t.Fatalf("updated package = %+v, want limit 7 and original price", updated.Package)
	}

	listed, err := module.Handler.ListPackagesHandler(ctx)
	if err != nil {
		t.Fatalf("list packages: %v", err)
	}
	if len(listed.Packages) != 1 {
		t.Fatalf("catalog size = %d, want 1", len(listed.Packages))
	}
}
