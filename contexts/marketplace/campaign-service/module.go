package campaignservice

import (
	"log/slog"

	httpadapter "brandlink/contexts/marketplace/campaign-service/adapters/http"
	"brandlink/contexts/marketplace/campaign-service/adapters/memory"
	"brandlink/contexts/marketplace/campaign-service/application/commands"
	"brandlink/contexts/marketplace/campaign-service/application/queries"
	"brandlink/contexts/marketplace/campaign-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Campaigns     ports.CampaignRepository
	Subscriptions ports.SubscriptionReader
	Notifier      ports.Notifier
	Clock         ports.Clock
	IDGen         ports.IDGenerator
	Logger        *slog.Logger
}

func NewModule(deps Dependencies) Module {
	createCampaign := commands.CreateCampaignUseCase{
		Campaigns:     deps.Campaigns,
		Subscriptions: deps.Subscriptions,
		Clock:         deps.Clock,
		IDGenerator:   deps.IDGen,
		Logger:        deps.Logger,
	}
	updateCampaign := commands.UpdateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	deleteCampaign := commands.DeleteCampaignUseCase{
		Campaigns: deps.Campaigns,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	moderateCampaign := commands.ModerateCampaignUseCase{
		Campaigns: deps.Campaigns,
		Notifier:  deps.Notifier,
		Clock:     deps.Clock,
		Logger:    deps.Logger,
	}
	getCampaign := queries.GetCampaignUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}
	listCampaigns := queries.ListCampaignsUseCase{
		Campaigns: deps.Campaigns,
		Logger:    deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			CreateCampaign:   createCampaign,
			UpdateCampaign:   updateCampaign,
			DeleteCampaign:   deleteCampaign,
			ModerateCampaign: moderateCampaign,
			GetCampaign:      getCampaign,
			ListCampaigns:    listCampaigns,
			Logger:           deps.Logger,
		},
	}
}

func NewInMemoryModule(subscriptions ports.SubscriptionReader, notifier ports.Notifier, logger *slog.Logger) Module {
	store := memory.NewStore()
	if subscriptions == nil {
		subscriptions = memory.StaticSubscriptionReader{Active: false, Limit: 1}
	}
	if notifier == nil {
		notifier = memory.NoopNotifier{}
	}
	module := NewModule(Dependencies{
		Campaigns:     store,
		Subscriptions: subscriptions,
		Notifier:      notifier,
		Clock:         memory.SystemClock{},
		IDGen:         memory.UUIDGenerator{},
		Logger:        logger,
	})
	module.Store = store
	return module
}
