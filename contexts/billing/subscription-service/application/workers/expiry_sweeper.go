package workers

import (
	"context"
	"log/slog"
	"time"

	application "brandlink/contexts/billing/subscription-service/application"
	"brandlink/contexts/billing/subscription-service/domain/entities"
	"brandlink/contexts/billing/subscription-service/ports"
	"brandlink/internal/shared/period"
)

// SweepReport summarizes one sweeper pass.
type SweepReport struct {
	Scanned      int
	Expired      int
	ParseFailed  int
	UpdateFailed int
}

// ExpirySweeper scans subscriptions whose billing period has ended and
// flips them to expired, clearing the owner's account flags. One bad
// record never aborts the pass, and re-running over already-expired rows
// is a no-op.
type ExpirySweeper struct {
	Repository ports.Repository
	Clock      ports.Clock
	Logger     *slog.Logger
}

func (s ExpirySweeper) RunOnce(ctx context.Context) (SweepReport, error) {
	logger := application.ResolveLogger(s.Logger)
	report := SweepReport{}

	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}

	// Cancelled records still carry a running period; they expire on the
	// same schedule so the account flags get cleared.
	for _, status := range []entities.SubscriptionStatus{entities.SubscriptionActive, entities.SubscriptionCancelled} {
		subscriptions, err := s.Repository.ListSubscriptions(ctx, status)
		if err != nil {
			return report, err
		}
		for _, subscription := range subscriptions {
			report.Scanned++
			s.sweepOne(ctx, logger, subscription, now, &report)
		}
	}

	logger.Info("expiry sweep finished",
		"event", "subscription_sweep_finished",
		"module", "billing/subscription-service",
		"layer", "worker",
		"scanned", report.Scanned,
		"expired", report.Expired,
		"parse_failed", report.ParseFailed,
		"update_failed", report.UpdateFailed,
	)
	return report, nil
}

func (s ExpirySweeper) sweepOne(
	ctx context.Context,
	logger *slog.Logger,
	subscription entities.Subscription,
	now time.Time,
	report *SweepReport,
) {
	end, err := period.ParseSubscriptionDate(subscription.CurrentPeriodEnd)
	if err != nil {
		report.ParseFailed++
		logger.Error("subscription period parse failed",
			"event", "subscription_sweep_parse_failed",
			"module", "billing/subscription-service",
			"layer", "worker",
			"subscription_id", subscription.SubscriptionID,
			"period_end", subscription.CurrentPeriodEnd,
			"error", err.Error(),
		)
		return
	}
	if end.After(now) && !period.SameDay(end, now) {
		return
	}

	subscription.Status = entities.SubscriptionExpired
	subscription.UpdatedAt = now
	if err := s.Repository.UpdateSubscription(ctx, subscription); err != nil {
		report.UpdateFailed++
		logger.Error("subscription expiry update failed",
			"event", "subscription_sweep_update_failed",
			"module", "billing/subscription-service",
			"layer", "worker",
			"subscription_id", subscription.SubscriptionID,
			"error", err.Error(),
		)
		return
	}
	if err := s.Repository.UpsertAccount(ctx, entities.Account{
		UserID:     subscription.UserID,
		Subscribed: false,
		Title:      "",
		UpdatedAt:  now,
	}); err != nil {
		report.UpdateFailed++
		logger.Error("account flag clear failed",
			"event", "subscription_sweep_account_failed",
			"module", "billing/subscription-service",
			"layer", "worker",
			"subscription_id", subscription.SubscriptionID,
			"user_id", subscription.UserID,
			"error", err.Error(),
		)
		return
	}

	report.Expired++
	logger.Info("subscription expired",
		"event", "subscription_expired",
		"module", "billing/subscription-service",
		"layer", "worker",
		"subscription_id", subscription.SubscriptionID,
		"user_id", subscription.UserID,
		"period_end", subscription.CurrentPeriodEnd,
	)
}
