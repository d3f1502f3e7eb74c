package authenticity

import (
	"log/slog"

	httpadapter "provenance/contexts/product-integrity/authenticity-service/adapters/http"
	"provenance/contexts/product-integrity/authenticity-service/adapters/labels"
	"provenance/contexts/product-integrity/authenticity-service/adapters/memory"
	application "provenance/contexts/product-integrity/authenticity-service/application"
	"provenance/contexts/product-integrity/authenticity-service/application/commands"
	"provenance/contexts/product-integrity/authenticity-service/application/queries"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
)

// Module is the composition surface for the authenticity engine.
// Runtime wiring should consume Handler; Store is set only for in-memory wiring.
type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Store            ports.StateStore
	Clock            ports.Clock
	IDGenerator      ports.IDGenerator
	Labels           ports.LabelRenderer
	Observers        []ports.EventObserver
	HistoryPageLimit int
	Logger           *slog.Logger
}

// NewModule wires every use case against one state store. All mutating use
// cases share a single Guard.
func NewModule(deps Dependencies) Module {
	renderer := deps.Labels
	if renderer == nil {
		renderer = labels.NewQRRenderer()
	}
	runtime := commands.Runtime{
		Store:       deps.Store,
		Guard:       application.NewGuard(),
		Clock:       deps.Clock,
		IDGenerator: deps.IDGenerator,
		Observers:   deps.Observers,
		Logger:      deps.Logger,
	}

	handler := httpadapter.Handler{
		AuthorizeManufacturer: commands.AuthorizeManufacturerUseCase{Runtime: runtime},
		TransferOwnership:     commands.TransferOwnershipUseCase{Runtime: runtime},
		SetPaused:             commands.SetPausedUseCase{Runtime: runtime},
		RegisterBatch:         commands.RegisterBatchUseCase{Runtime: runtime},
		UpdateMetadata:        commands.UpdateMetadataUseCase{Runtime: runtime},
		VerifyProduct:         commands.VerifyProductUseCase{Runtime: runtime},
		BatchVerify:           commands.BatchVerifyUseCase{Runtime: runtime},

		GetBatch: queries.GetBatchUseCase{
			Registry: deps.Store,
			Logger:   deps.Logger,
		},
		GetBatchesBulk: queries.GetBatchesBulkUseCase{
			Registry: deps.Store,
			Logger:   deps.Logger,
		},
		RenderLabel: queries.RenderLabelUseCase{
			Registry: deps.Store,
			Renderer: renderer,
			Logger:   deps.Logger,
		},
		FingerprintStatus: queries.FingerprintStatusUseCase{
			Ledger: deps.Store,
			Logger: deps.Logger,
		},
		History: queries.VerificationHistoryUseCase{
			Ledger:       deps.Store,
			DefaultLimit: deps.HistoryPageLimit,
			Logger:       deps.Logger,
		},
		HistoryBulk: queries.VerificationHistoryBulkUseCase{
			Ledger:       deps.Store,
			DefaultLimit: deps.HistoryPageLimit,
			Logger:       deps.Logger,
		},
		Statistics: queries.GetStatisticsUseCase{
			Ledger: deps.Store,
			Logger: deps.Logger,
		},
		ListManufacturers: queries.ListManufacturersUseCase{
			Authorizations: deps.Store,
			Logger:         deps.Logger,
		},
		IsAuthorized: queries.IsAuthorizedUseCase{
			Authorizations: deps.Store,
			Logger:         deps.Logger,
		},
		Owner: queries.GetOwnerUseCase{
			Authorizations: deps.Store,
			Logger:         deps.Logger,
		},
		Logger: deps.Logger,
	}

	return Module{Handler: handler}
}

// NewInMemoryModule wires the engine against the in-memory store with owner as
// the genesis owner.
func NewInMemoryModule(owner entities.Address, logger *slog.Logger, observers ...ports.EventObserver) Module {
	store := memory.NewStore(owner, logger)
	module := NewModule(Dependencies{
		Store:       store,
		Clock:       store,
		IDGenerator: store,
		Observers:   observers,
		Logger:      logger,
	})
	module.Store = store
	return module
}
