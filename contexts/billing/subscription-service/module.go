package subscriptionservice

import (
	"log/slog"

	httpadapter "brandlink/contexts/billing/subscription-service/adapters/http"
	"brandlink/contexts/billing/subscription-service/adapters/memory"
	"brandlink/contexts/billing/subscription-service/adapters/payment"
	"brandlink/contexts/billing/subscription-service/application/commands"
	"brandlink/contexts/billing/subscription-service/application/queries"
	"brandlink/contexts/billing/subscription-service/application/workers"
	"brandlink/contexts/billing/subscription-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Queries queries.QueryUseCase
	Sweeper workers.ExpirySweeper
	Store   *memory.Store
	Gateway *payment.LocalGateway
}

type Dependencies struct {
	Repository ports.Repository
	Gateway    ports.PaymentGateway
	Notifier   ports.Notifier
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createPackage := commands.CreatePackageUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGen,
		Logger:      deps.Logger,
	}
	updatePackage := commands.UpdatePackageUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	subscribe := commands.SubscribeUseCase{
		Repository:  deps.Repository,
		Gateway:     deps.Gateway,
		Notifier:    deps.Notifier,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGen,
		Logger:      deps.Logger,
	}
	cancel := commands.CancelSubscriptionUseCase{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	renew := commands.RenewSubscriptionUseCase{
		Repository: deps.Repository,
		Gateway:    deps.Gateway,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreatePackage: createPackage,
			UpdatePackage: updatePackage,
			Subscribe:     subscribe,
			Cancel:        cancel,
			Renew:         renew,
			Queries:       queryUseCase,
			Logger:        deps.Logger,
		},
		Queries: queryUseCase,
		Sweeper: workers.ExpirySweeper{
			Repository: deps.Repository,
			Clock:      deps.Clock,
			Logger:     deps.Logger,
		},
	}
}

func NewInMemoryModule(notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	clock := memory.SystemClock{}
	gateway := payment.NewLocalGateway(clock)
	if notifier == nil {
		notifier = memory.NoopNotifier{}
	}
	module := NewModule(Dependencies{
		Repository: store,
		Gateway:    gateway,
		Notifier:   notifier,
		Clock:      clock,
		IDGen:      memory.UUIDGenerator{},
		Logger:     logger,
	})
	module.Store = store
	module.Gateway = gateway
	return module
}
