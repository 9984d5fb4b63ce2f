package collaborationservice

import (
	"log/slog"

	httpadapter "brandlink/contexts/marketplace/collaboration-service/adapters/http"
	"brandlink/contexts/marketplace/collaboration-service/adapters/memory"
	"brandlink/contexts/marketplace/collaboration-service/application/commands"
	"brandlink/contexts/marketplace/collaboration-service/application/queries"
	"brandlink/contexts/marketplace/collaboration-service/application/workers"
	"brandlink/contexts/marketplace/collaboration-service/ports"
)

type Module struct {
	Handler     httpadapter.Handler
	OutboxRelay workers.OutboxRelay
	Store       *memory.Store
}

type Dependencies struct {
	Collaborations ports.Repository
	Campaigns      ports.CampaignReader
	Notifier       ports.Notifier
	Publisher      ports.EventPublisher
	Clock          ports.Clock
	IDGen          ports.IDGenerator
	Logger         *slog.Logger
}

func NewModule(deps Dependencies) Module {
	invite := commands.InviteInfluencerUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGen,
		Logger:         deps.Logger,
	}
	showInterest := commands.ShowInterestUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGen,
		Logger:         deps.Logger,
	}
	respond := commands.RespondUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGen,
		Logger:         deps.Logger,
	}
	submitProof := commands.SubmitProofUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGen,
		Logger:         deps.Logger,
	}
	complete := commands.CompleteCollaborationUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		IDGenerator:    deps.IDGen,
		Logger:         deps.Logger,
	}
	cancel := commands.CancelCollaborationUseCase{
		Collaborations: deps.Collaborations,
		Campaigns:      deps.Campaigns,
		Notifier:       deps.Notifier,
		Clock:          deps.Clock,
		Logger:         deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Collaborations: deps.Collaborations,
		Logger:         deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			InviteInfluencer: invite,
			ShowInterest:     showInterest,
			Respond:          respond,
			SubmitProof:      submitProof,
			Complete:         complete,
			Cancel:           cancel,
			Queries:          queryUseCase,
			Logger:           deps.Logger,
		},
		OutboxRelay: workers.OutboxRelay{
			Outbox:    deps.Collaborations,
			Publisher: deps.Publisher,
			Clock:     deps.Clock,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(notifier ports.Notifier, publisher ports.EventPublisher, logger *slog.Logger) Module {
	store := memory.NewStore()
	if notifier == nil {
		notifier = memory.NoopNotifier{}
	}
	if publisher == nil {
		publisher = &memory.CapturingPublisher{}
	}
	module := NewModule(Dependencies{
		Collaborations: store,
		Campaigns:      store,
		Notifier:       notifier,
		Publisher:      publisher,
		Clock:          memory.SystemClock{},
		IDGen:          memory.UUIDGenerator{},
		Logger:         logger,
	})
	module.Store = store
	return module
}
