package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	authenticity "provenance/contexts/product-integrity/authenticity-service"
	postgresadapter "provenance/contexts/product-integrity/authenticity-service/adapters/postgres"
	workerapp "provenance/contexts/product-integrity/authenticity-service/application/workers"
	"provenance/contexts/product-integrity/authenticity-service/domain/entities"
	"provenance/contexts/product-integrity/authenticity-service/ports"
	"provenance/internal/platform/config"
	"provenance/internal/platform/db"
	"provenance/internal/platform/httpserver"
	"provenance/internal/platform/identity"
	"provenance/internal/platform/messaging"

	"golang.org/x/sync/errgroup"
)

// Package bootstrap is the composition root.
// Keep construction/wiring here so module code stays framework-agnostic.

const shutdownTimeout = 10 * time.Second

type APIApp struct {
	server       *httpserver.Server
	postgres     *db.Postgres
	outboxRelay  *workerapp.OutboxRelay
	audit        *workerapp.AuditLogConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

type WorkerApp struct {
	postgres     *db.Postgres
	outboxRelay  workerapp.OutboxRelay
	audit        workerapp.AuditLogConsumer
	pollInterval time.Duration
	logger       *slog.Logger
}

// BuildAPI wires the HTTP process. Without POSTGRES_DSN the engine runs on the
// in-memory store and relays its own outbox, since no other process can see it.
func BuildAPI() (*APIApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "api")
	owner, err := entities.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		return nil, fmt.Errorf("OWNER_ADDRESS: %w", err)
	}

	app := &APIApp{
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}

	var (
		module authenticity.Module
		outbox ports.OutboxRepository
		clock  ports.Clock
	)
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		logger.Warn("postgres dsn not set, using in-memory state",
			"event", "bootstrap_memory_store",
			"module", "internal/app/bootstrap",
			"layer", "platform",
		)
		module = authenticity.NewInMemoryModule(owner, logger)
		outbox = module.Store
		clock = module.Store
	} else {
		pg, repo, err := openRepository(cfg, owner, logger)
		if err != nil {
			return nil, err
		}
		app.postgres = pg
		module = authenticity.NewModule(authenticity.Dependencies{
			Store:            repo,
			Clock:            postgresadapter.SystemClock{},
			IDGenerator:      postgresadapter.UUIDGenerator{},
			HistoryPageLimit: cfg.HistoryPageLimit,
			Logger:           logger,
		})
		outbox = repo
		clock = postgresadapter.SystemClock{}
	}

	if apiRelaysOutbox(cfg) {
		kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
		if err != nil {
			return nil, err
		}
		app.outboxRelay = &workerapp.OutboxRelay{
			Outbox:    outbox,
			Publisher: kafka,
			Clock:     clock,
			Topic:     workerapp.DefaultTopic,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		}
		app.audit = &workerapp.AuditLogConsumer{
			Subscriber: kafka,
			Topic:      workerapp.DefaultTopic,
			Logger:     logger,
		}
	}

	app.server = httpserver.New(
		module,
		callerResolver(cfg, logger),
		logger,
		normalizeAddr(cfg.HTTPPort),
	)
	return app, nil
}

// BuildWorker wires the relay process. It needs the shared postgres outbox.
func BuildWorker() (*WorkerApp, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	logger := slog.Default().With("service", cfg.ServiceName, "process", "worker")
	if strings.TrimSpace(cfg.PostgresDSN) == "" {
		return nil, errors.New("POSTGRES_DSN is required")
	}
	owner, err := entities.ParseAddress(cfg.OwnerAddress)
	if err != nil {
		return nil, fmt.Errorf("OWNER_ADDRESS: %w", err)
	}

	pg, repo, err := openRepository(cfg, owner, logger)
	if err != nil {
		return nil, err
	}

	kafka, err := messaging.NewKafka(cfg.KafkaBrokers, logger)
	if err != nil {
		_ = pg.Close()
		return nil, err
	}

	return &WorkerApp{
		postgres: pg,
		outboxRelay: workerapp.OutboxRelay{
			Outbox:    repo,
			Publisher: kafka,
			Clock:     postgresadapter.SystemClock{},
			Topic:     workerapp.DefaultTopic,
			BatchSize: cfg.OutboxBatchSize,
			Logger:    logger,
		},
		audit: workerapp.AuditLogConsumer{
			Subscriber: kafka,
			Topic:      workerapp.DefaultTopic,
			Logger:     logger,
		},
		pollInterval: cfg.OutboxPollInterval,
		logger:       logger,
	}, nil
}

// apiRelaysOutbox reports whether the API process relays its own outbox. With
// postgres the shared outbox belongs to cmd/worker alone; ListPendingOutbox does
// not claim rows, so a second relay would publish every event twice.
func apiRelaysOutbox(cfg config.Config) bool {
	return cfg.EnableOutboxRelay && strings.TrimSpace(cfg.PostgresDSN) == ""
}

func callerResolver(cfg config.Config, logger *slog.Logger) identity.Resolver {
	resolver := identity.Resolver{
		Secret:      cfg.JWTSecret,
		TrustHeader: cfg.TrustCallerHeader,
	}
	if resolver.HeaderMode() {
		logger.Warn("caller identity taken from unverified request header",
			"event", "bootstrap_caller_header_trusted",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"header", identity.CallerHeader,
		)
	}
	return resolver
}

func openRepository(cfg config.Config, owner entities.Address, logger *slog.Logger) (*db.Postgres, *postgresadapter.Repository, error) {
	pg, err := db.Connect(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	repo := postgresadapter.NewRepository(pg.DB, logger)
	if cfg.DBAutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			_ = pg.Close()
			return nil, nil, err
		}
	}
	if err := repo.EnsureGenesis(ctx, owner, time.Now().UTC()); err != nil {
		_ = pg.Close()
		return nil, nil, err
	}
	return pg, repo, nil
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *APIApp) Run(ctx context.Context) error {
	group, ctx := errgroup.WithContext(ctx)

	if a.audit != nil {
		if err := a.audit.Start(ctx); err != nil {
			return err
		}
	}
	if a.outboxRelay != nil {
		relay := *a.outboxRelay
		group.Go(func() error {
			return relay.Run(ctx, a.pollInterval)
		})
	}
	group.Go(func() error {
		return a.server.Start()
	})
	group.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return a.server.Shutdown(shutdownCtx)
	})

	if a.logger != nil {
		a.logger.Info("api app started",
			"event", "bootstrap_api_started",
			"module", "internal/app/bootstrap",
			"layer", "platform",
			"outbox_relay", a.outboxRelay != nil,
		)
	}
	return group.Wait()
}

func (a *APIApp) Close() error {
	if a.postgres != nil {
		return a.postgres.Close()
	}
	return nil
}

func (w *WorkerApp) Run(ctx context.Context) error {
	if err := w.audit.Start(ctx); err != nil {
		return err
	}

	w.logger.Info("worker app started",
		"event", "bootstrap_worker_started",
		"module", "internal/app/bootstrap",
		"layer", "platform",
		"poll_interval", w.pollInterval.String(),
	)
	return w.outboxRelay.Run(ctx, w.pollInterval)
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
