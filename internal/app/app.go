package app

import (
	"context"
	"math/rand"

	"go.uber.org/zap"

	"chargefleet/internal/config"
	"chargefleet/internal/filter"
	httpserver "chargefleet/internal/http"
	"chargefleet/internal/http/handlers"
	"chargefleet/internal/ingest"
	"chargefleet/internal/inject"
	"chargefleet/internal/service"
	"chargefleet/internal/store"
	"chargefleet/internal/ws"
)

// App wires chargefleet dependencies.
type App struct {
	server *httpserver.Server
	hub    *ws.Hub
	logger *zap.Logger
}

// New constructs the application graph and loads the CSV exports.
func New(cfg *config.Config, logger *zap.Logger) (*App, error) {
	stations, utilization, err := ingest.LoadDir(cfg.Data.Dir)
	if err != nil {
		return nil, err
	}

	st := store.New()
	st.Load(stations, utilization)
	logger.Info("loaded charging data",
		zap.Int("stations", len(stations)),
		zap.Int("utilization_rows", len(utilization)))

	engine := filter.NewEngine(st)

	var rng *rand.Rand
	if seed := cfg.Inject.Seed; seed != 0 {
		rng = rand.New(rand.NewSource(seed))
	}
	injector := inject.NewInjector(rng)

	hub := ws.NewHub(cfg.PingInterval(), cfg.WriteTimeout(), logger)
	svc := service.NewChargingService(st, engine, injector, hub, logger)

	injectHandler := handlers.NewInjectHandler(svc, cfg.InjectCount(), logger)

	routes := httpserver.Routes{
		Health:     handlers.NewHealthHandler(),
		Facets:     handlers.NewFacetsHandler(svc),
		Filter:     handlers.NewFilterHandler(svc),
		Connectors: handlers.NewConnectorsHandler(svc, cfg.PageSize()),
		Inject:     injectHandler.Handle,
		MapSocket:  hub.HandleWS,
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		hub:    hub,
		logger: logger,
	}, nil
}

// Run starts the keepalive loop and HTTP server.
func (a *App) Run(ctx context.Context) error {
	go a.hub.Start(ctx)
	return a.server.Run(ctx)
}
