package routes

import (
	"log"

	"founder-match/internal/config"
	"founder-match/internal/database"
	"founder-match/internal/delivery/http/handler"
	"founder-match/internal/oracle"
	"founder-match/internal/pkg/jwt"
	"founder-match/internal/usecase"
	"founder-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the process-level collaborators the route tree needs beyond
// config and the database: they are constructed once in the app container.
type Deps struct {
	Logger   *log.Logger
	JWT      jwt.Service
	Cache    usecase.InboxCache
	Oracle   oracle.Oracle
	Hub      *ws.Hub
	Notifier *ws.Notifier
}

type Registry struct {
	cfg  config.Config
	db   database.DB
	deps Deps

	health *handler.HealthHandler
	socket *ws.Handler
}

func NewRegistry(cfg config.Config, db database.DB, deps Deps) *Registry {
	return &Registry{
		cfg:    cfg,
		db:     db,
		deps:   deps,
		health: handler.NewHealthHandler(db),
		socket: ws.NewHandler(deps.Hub, deps.JWT, deps.Logger),
	}
}

func (r *Registry) Register(app *fiber.App) error {
	if app == nil {
		return nil
	}

	r.health.RegisterRoutes(app)
	app.Get("/ws", r.socket.HandleWS)

	api := app.Group("/api")
	return RegisterV1(api.Group("/v1"), r.cfg, r.db, r.deps)
}
