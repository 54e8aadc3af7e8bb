package destinations

import (
	"context"

	httpadapter "love-journey/internal/destinations/adapter/http"
	mongodbpersistence "love-journey/internal/destinations/adapter/persistence/mongodb"
	"love-journey/internal/destinations/config"
	"love-journey/internal/destinations/domain/repository"
	"love-journey/internal/destinations/usecase"
	"love-journey/internal/shared/logger"

	"github.com/gofiber/fiber/v2"
)

// Module wires the destinations service: connector, repository, usecase and
// HTTP handler.
type Module struct {
	Config    *config.Config
	Connector *mongodbpersistence.Connector
	Repo      repository.DestinationRepository
	Usecase   usecase.DestinationUsecase
	Handler   *httpadapter.DestinationHandler
	Logger    logger.Logger
}

// NewModule creates and wires the destinations module from environment
// configuration. The storage connection is not opened yet; call Start.
func NewModule(log logger.Logger) (*Module, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	connector := mongodbpersistence.NewConnector(cfg.MongoDBURI, cfg.DatabaseName, cfg.ConnectRetryDelay, log)
	repo := mongodbpersistence.NewDestinationRepository(connector)
	uc := usecase.NewDestinationUsecase(repo, connector, cfg.AdminSecret, log)
	handler := httpadapter.NewDestinationHandler(uc, connector, log)

	return &Module{
		Config:    cfg,
		Connector: connector,
		Repo:      repo,
		Usecase:   uc,
		Handler:   handler,
		Logger:    log,
	}, nil
}

// Start launches the background storage connection loop. Requests are
// accepted immediately and answer 503 until the store is reachable.
func (m *Module) Start() {
	m.Connector.Start()
}

// RegisterRoutes registers the HTTP routes for the destinations module.
func (m *Module) RegisterRoutes(router fiber.Router) {
	router.Use(httpadapter.RequestID())
	m.Handler.RegisterRoutes(router)
	m.Logger.Info("Destination routes registered")
}

// IsReady reports whether the storage connector is connected.
func (m *Module) IsReady() bool {
	return m.Connector.IsReady()
}

// Stop gracefully shuts down the destinations module.
func (m *Module) Stop(ctx context.Context) error {
	m.Logger.Info("Stopping destinations module...")
	return m.Connector.Close(ctx)
}
