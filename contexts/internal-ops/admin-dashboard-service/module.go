package admindashboardservice

import (
	"time"

	httpadapter "brandlink/contexts/internal-ops/admin-dashboard-service/adapters/http"
	"brandlink/contexts/internal-ops/admin-dashboard-service/adapters/memory"
	"brandlink/contexts/internal-ops/admin-dashboard-service/application"
	"brandlink/contexts/internal-ops/admin-dashboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Stats          ports.StatsReader
	Repository     ports.Repository
	Idempotency    ports.IdempotencyStore
	Clock          ports.Clock
	IdempotencyTTL time.Duration
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Service: application.Service{
				Stats:          deps.Stats,
				Repo:           deps.Repository,
				Idempotency:    deps.Idempotency,
				Clock:          deps.Clock,
				IdempotencyTTL: deps.IdempotencyTTL,
			},
		},
	}
}

func NewInMemoryModule() Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Stats:          store,
		Repository:     store,
		Idempotency:    store,
		Clock:          store,
		IdempotencyTTL: 7 * 24 * time.Hour,
	})
	module.Store = store
	return module
}
