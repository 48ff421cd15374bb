package cmd

import (
	"fmt"
	"log/slog"

	httpin "cargo/internal/adapters/in/http"
	"cargo/internal/adapters/out/localfs"
	"cargo/internal/adapters/out/manifest"
	"cargo/internal/adapters/out/postgres"
	"cargo/internal/adapters/out/tariff"
	"cargo/internal/adapters/out/webhook"
	"cargo/internal/core/application/usecases/commands"
	"cargo/internal/core/application/usecases/queries"
	"cargo/internal/core/domain/model/kernel"
	"cargo/internal/jobs"

	"gorm.io/gorm"
)

// CompositionRoot wires repositories, collaborators and use-case handlers.
// Every handler gets its own narrow unit-of-work factory view over the
// shared gorm-backed factory.
type CompositionRoot struct {
	config Config
	gormDB *gorm.DB
	log    *slog.Logger

	uowFactory    postgres.GormUnitOfWorkFactory
	files         *localfs.Storage
	notifier      *webhook.Notifier
	rates         *tariff.Provider
	renderer      *manifest.Renderer
	systemActorID kernel.UUID
}

// NewCompositionRoot builds the object graph. Fails fast on invalid
// configuration so a misconfigured node never starts serving.
func NewCompositionRoot(config Config, gormDB *gorm.DB, log *slog.Logger) (*CompositionRoot, error) {
	files, err := localfs.NewStorage(config.EvidenceDir)
	if err != nil {
		return nil, fmt.Errorf("evidence storage: %w", err)
	}
	notifier, err := webhook.NewNotifier(config.NotifyEndpoint)
	if err != nil {
		return nil, fmt.Errorf("notifier: %w", err)
	}
	rates, err := tariff.NewProvider(config.RateBasePrice, config.RatePerKg)
	if err != nil {
		return nil, fmt.Errorf("rate provider: %w", err)
	}
	renderer, err := manifest.NewRenderer(config.ManifestDir)
	if err != nil {
		return nil, fmt.Errorf("manifest renderer: %w", err)
	}
	systemActorID, err := kernel.UUIDFromString(config.SystemActorID)
	if err != nil {
		return nil, fmt.Errorf("system actor id: %w", err)
	}

	return &CompositionRoot{
		config:        config,
		gormDB:        gormDB,
		log:           log,
		uowFactory:    *postgres.NewGormUnitOfWorkFactory(gormDB),
		files:         files,
		notifier:      notifier,
		rates:         rates,
		renderer:      renderer,
		systemActorID: systemActorID,
	}, nil
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.IntakeUoWFactory = FuncIntakeUoWFactory(func() commands.IntakeUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.config.PickupReadyDelay, c.log)
}

func (c *CompositionRoot) CreateCancelOrderCommandHandler() commands.CancelOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeleteOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateReweighPieceCommandHandler() commands.ReweighPieceCommandHandler {
	var f commands.ReweighUoWFactory = FuncReweighUoWFactory(func() commands.ReweighUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReweighPieceCommandHandler(f, c.rates, c.notifier, c.log)
}

func (c *CompositionRoot) CreateBulkReweighCommandHandler() commands.BulkReweighCommandHandler {
	var f commands.ReweighUoWFactory = FuncReweighUoWFactory(func() commands.ReweighUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBulkReweighCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateSubmitCorrectionCommandHandler() commands.SubmitCorrectionCommandHandler {
	var f commands.CorrectionUoWFactory = FuncCorrectionUoWFactory(func() commands.CorrectionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSubmitCorrectionCommandHandler(f)
}

func (c *CompositionRoot) CreateDecideCorrectionCommandHandler() commands.DecideCorrectionCommandHandler {
	var f commands.CorrectionUoWFactory = FuncCorrectionUoWFactory(func() commands.CorrectionUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDecideCorrectionCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateCreateTransitCommandHandler() commands.CreateTransitCommandHandler {
	var f commands.TransitUoWFactory = FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateTransitCommandHandler(f, c.renderer, c.log)
}

func (c *CompositionRoot) CreateEditTransitCommandHandler() commands.EditTransitCommandHandler {
	var f commands.TransitUoWFactory = FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewEditTransitCommandHandler(f)
}

func (c *CompositionRoot) CreateInboundScanCommandHandler() commands.InboundScanCommandHandler {
	var f commands.TransitUoWFactory = FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInboundScanCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateInboundConfirmCommandHandler() commands.InboundConfirmCommandHandler {
	var f commands.TransitUoWFactory = FuncTransitUoWFactory(func() commands.TransitUoW {
		return c.uowFactory.Create()
	})
	return commands.NewInboundConfirmCommandHandler(f)
}

func (c *CompositionRoot) CreateBypassReceiveCommandHandler() commands.BypassReceiveCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewBypassReceiveCommandHandler(f, c.files, c.log)
}

func (c *CompositionRoot) CreateStartDeliveryCommandHandler() commands.StartDeliveryCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartDeliveryCommandHandler(f)
}

func (c *CompositionRoot) CreateRevertToWaitingCommandHandler() commands.RevertToWaitingCommandHandler {
	var f commands.DeliveryUoWFactory = FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRevertToWaitingCommandHandler(f)
}

func (c *CompositionRoot) CreateAssignCourierCommandHandler() commands.AssignCourierCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignCourierCommandHandler(f)
}

func (c *CompositionRoot) CreateReleasePickupReadyCommandHandler() commands.ReleasePickupReadyCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReleasePickupReadyCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateAutoAssignCouriersCommandHandler() commands.AutoAssignCouriersCommandHandler {
	var f commands.AssignUoWFactory = FuncAssignUoWFactory(func() commands.AssignUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAutoAssignCouriersCommandHandler(f, c.log)
}

func (c *CompositionRoot) CreateListTransitsQueryHandler() queries.ListTransitsQueryHandler {
	return queries.NewListTransitsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetTransitQueryHandler() queries.GetTransitQueryHandler {
	return queries.NewGetTransitQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListCorrectionsQueryHandler() queries.ListCorrectionsQueryHandler {
	return queries.NewListCorrectionsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSuggestCouriersQueryHandler() queries.SuggestCouriersQueryHandler {
	return queries.NewSuggestCouriersQueryHandler(c.gormDB)
}

// CreateHTTPServer assembles the inbound HTTP adapter over all handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(httpin.Handlers{
		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		CancelOrder:     c.CreateCancelOrderCommandHandler(),
		DeleteOrder:     c.CreateDeleteOrderCommandHandler(),
		ReweighPiece:    c.CreateReweighPieceCommandHandler(),
		BulkReweigh:     c.CreateBulkReweighCommandHandler(),
		SubmitCorr:      c.CreateSubmitCorrectionCommandHandler(),
		DecideCorr:      c.CreateDecideCorrectionCommandHandler(),
		CreateTransit:   c.CreateCreateTransitCommandHandler(),
		EditTransit:     c.CreateEditTransitCommandHandler(),
		InboundScan:     c.CreateInboundScanCommandHandler(),
		InboundConfirm:  c.CreateInboundConfirmCommandHandler(),
		BypassReceive:   c.CreateBypassReceiveCommandHandler(),
		StartDelivery:   c.CreateStartDeliveryCommandHandler(),
		RevertToWaiting: c.CreateRevertToWaitingCommandHandler(),
		AssignCourier:   c.CreateAssignCourierCommandHandler(),
		ListTransits:    c.CreateListTransitsQueryHandler(),
		GetTransit:      c.CreateGetTransitQueryHandler(),
		ListCorrections: c.CreateListCorrectionsQueryHandler(),
		SuggestCouriers: c.CreateSuggestCouriersQueryHandler(),
	})
}

// CreateJobManager assembles the background job scheduler.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateReleasePickupReadyCommandHandler(),
		c.CreateAutoAssignCouriersCommandHandler(),
		c.systemActorID,
		c.log,
	)
}

type FuncIntakeUoWFactory func() commands.IntakeUoW

func (f FuncIntakeUoWFactory) Create() commands.IntakeUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncReweighUoWFactory func() commands.ReweighUoW

func (f FuncReweighUoWFactory) Create() commands.ReweighUoW {
	return f()
}

type FuncCorrectionUoWFactory func() commands.CorrectionUoW

func (f FuncCorrectionUoWFactory) Create() commands.CorrectionUoW {
	return f()
}

type FuncTransitUoWFactory func() commands.TransitUoW

func (f FuncTransitUoWFactory) Create() commands.TransitUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncAssignUoWFactory func() commands.AssignUoW

func (f FuncAssignUoWFactory) Create() commands.AssignUoW {
	return f()
}
