package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	subscriptionservice "brandlink/contexts/billing/subscription-service"
	billingpostgres "brandlink/contexts/billing/subscription-service/adapters/postgres"
	"brandlink/contexts/billing/subscription-service/adapters/payment"
	billingworkers "brandlink/contexts/billing/subscription-service/application/workers"
	notificationservice "brandlink/contexts/engagement/notification-service"
	notificationpostgres "brandlink/contexts/engagement/notification-service/adapters/postgres"
	admindashboardservice "brandlink/contexts/internal-ops/admin-dashboard-service"
	dashboardpostgres "brandlink/contexts/internal-ops/admin-dashboard-service/adapters/postgres"
	campaignservice "brandlink/contexts/marketplace/campaign-service"
	campaignpostgres "brandlink/contexts/marketplace/campaign-service/adapters/postgres"
	collaborationservice "brandlink/contexts/marketplace/collaboration-service"
	collaborationpostgres "brandlink/contexts/marketplace/collaboration-service/adapters/postgres"
	collaborationworkers "brandlink/contexts/marketplace/collaboration-service/application/workers"
	"brandlink/internal/platform/config"
	"brandlink/internal/platform/db"
	"brandlink/internal/platform/httpserver"
	"brandlink/internal/platform/messaging"
	"brandlink/internal/platform/metrics"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

type APIApp struct {
	server   *httpserver.Server
	postgres *db.Postgres
	logger   *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  collaborationworkers.OutboxRelay
	sweeper      billingworkers.ExpirySweeper
	runRelay     bool
	runSweeper   bool
	pollInterval time.Duration
	logger       *slog.Logger
}

func BuildAPI(ctx context.Context) (*APIApp, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	notifications := notificationservice.NewModule(notificationservice.Dependencies{
		Repository: notificationpostgres.NewRepository(pg.DB, logger),
		Clock:      notificationpostgres.SystemClock{},
		IDGen:      notificationpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	subscriptions := subscriptionservice.NewModule(subscriptionservice.Dependencies{
		Repository: billingpostgres.NewRepository(pg.DB, logger),
		Gateway:    payment.NewLocalGateway(billingpostgres.SystemClock{}),
		Notifier:   billingNotifier{send: notifications.Send},
		Clock:      billingpostgres.SystemClock{},
		IDGen:      billingpostgres.UUIDGenerator{},
		Logger:     logger,
	})

	campaigns := campaignservice.NewModule(campaignservice.Dependencies{
		Campaigns:     campaignpostgres.NewRepository(pg.DB, logger),
		Subscriptions: subscriptions.Queries,
		Notifier:      campaignNotifier{send: notifications.Send},
		Clock:         campaignpostgres.SystemClock{},
		IDGen:         campaignpostgres.UUIDGenerator{},
		Logger:        logger,
	})

	collaborations := collaborationservice.NewModule(collaborationservice.Dependencies{
		Collaborations: collaborationpostgres.NewRepository(pg.DB, logger),
		Campaigns:      collaborationpostgres.NewCampaignReader(pg.DB),
		Notifier:       collaborationNotifier{send: notifications.Send},
		Publisher:      nil, // the relay runs in the worker process
		Clock:          collaborationpostgres.SystemClock{},
		IDGen:          collaborationpostgres.UUIDGenerator{},
		Logger:         logger,
	})

	dashboardRepo := dashboardpostgres.NewRepository(pg.DB)
	dashboard := admindashboardservice.NewModule(admindashboardservice.Dependencies{
		Stats:          dashboardpostgres.NewStatsReader(pg.DB),
		Repository:     dashboardRepo,
		Idempotency:    dashboardRepo,
		Clock:          dashboardpostgres.SystemClock{},
		IdempotencyTTL: 7 * 24 * time.Hour,
	})

	server := httpserver.New(httpserver.Modules{
		Campaigns:      campaigns,
		Collaborations: collaborations,
		Subscriptions:  subscriptions,
		Notifications:  notifications,
		Dashboard:      dashboard,
	}, logger, normalizeAddr(cfg.HTTPPort), cfg.RateLimitPerSecond, cfg.RateLimitBurst)

	return &APIApp{
		server:   server,
		postgres: pg,
		logger:   logger,
	}, nil
}

func BuildWorker(ctx context.Context) (*WorkerApp, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}

	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: collaborationworkers.OutboxRelay{
			Outbox:    collaborationpostgres.NewRepository(pg.DB, logger),
			Publisher: kafka,
			Clock:     collaborationpostgres.SystemClock{},
			BatchSize: 100,
			Logger:    logger,
		},
		sweeper: billingworkers.ExpirySweeper{
			Repository: billingpostgres.NewRepository(pg.DB, logger),
			Clock:      billingpostgres.SystemClock{},
			Logger:     logger,
		},
		runRelay:     cfg.EnableOutboxRelay,
		runSweeper:   cfg.EnableExpirySweeper,
		pollInterval: cfg.WorkerPollInterval,
		logger:       logger,
	}, nil
}

func (a *APIApp) Run(_ context.Context) error {
	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
	}
	return a.server.Start()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if w.pollInterval <= 0 {
		w.pollInterval = 30 * time.Second
	}
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
		"outbox_relay", w.runRelay,
		"expiry_sweeper", w.runSweeper,
	)

	for {
		if w.runSweeper {
			report, err := w.sweeper.RunOnce(ctx)
			if err != nil {
				return err
			}
			metrics.SweepRunsTotal.Inc()
			metrics.SweepSubscriptionsExpired.Add(float64(report.Expired))
		}
		if w.runRelay {
			if err := w.outboxRelay.RunOnce(ctx); err != nil {
				return err
			}
		}
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (w *WorkerApp) Close() error {
	if w.postgres != nil {
		return w.postgres.Close()
	}
	return nil
}

func normalizeAddr(port string) string {
	value := strings.TrimSpace(port)
	if value == "" {
		return ":8080"
	}
	if strings.HasPrefix(value, ":") {
		return value
	}
	return ":" + value
}
