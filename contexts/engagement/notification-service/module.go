package notificationservice

import (
	"log/slog"

	httpadapter "brandlink/contexts/engagement/notification-service/adapters/http"
	"brandlink/contexts/engagement/notification-service/adapters/memory"
	"brandlink/contexts/engagement/notification-service/application/commands"
	"brandlink/contexts/engagement/notification-service/application/queries"
	"brandlink/contexts/engagement/notification-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Send    commands.SendUseCase
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	send := commands.SendUseCase{
		Repository:  deps.Repository,
		Clock:       deps.Clock,
		IDGenerator: deps.IDGen,
		Logger:      deps.Logger,
	}
	markAllRead := commands.MarkAllReadUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	markAdminRead := commands.MarkAdminReadUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Send:          send,
			MarkAllRead:   markAllRead,
			MarkAdminRead: markAdminRead,
			Queries:       queryUseCase,
			Logger:        deps.Logger,
		},
		Send: send,
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Clock:      memory.SystemClock{},
		IDGen:      memory.UUIDGenerator{},
		Logger:     logger,
	})
	module.Store = store
	return module
}
