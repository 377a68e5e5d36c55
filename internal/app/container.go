package app

import (
	"context"
	"log"
	"os"
	"time"

	"founder-match/internal/config"
	"founder-match/internal/database"
	"founder-match/internal/database/migration"
	dbpostgres "founder-match/internal/database/postgres"
	"founder-match/internal/database/seeder"
	"founder-match/internal/infrastructure/cache"
	"founder-match/internal/oracle"
	"founder-match/internal/pkg/jwt"
	"founder-match/internal/ws"
)

// Container holds every process-level collaborator: the database pool, the
// scoring oracle, the Redis cache, the JWT service and the websocket hub.
type Container struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Oracle oracle.Oracle
	JWT    jwt.Service
	Hub    *ws.Hub
	Logger *log.Logger
}

func NewContainer(cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	if err := (migration.Runner{Dir: os.Getenv("MIGRATIONS_DIR")}).Run(ctx, db.SQLDB()); err != nil {
		_ = db.Close()
		return nil, err
	}

	if cfg.App.SeedDemo {
		if err := (seeder.Runner{Seeders: seeder.Defaults()}).Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		logger.Printf("[App] demo data seeded")
	}

	o, err := oracle.NewGeminiOracle(ctx, cfg.Oracle, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	hub := ws.NewHub(logger)
	go hub.Run()

	return &Container{
		Config: cfg,
		DB:     db,
		Cache:  cache.NewRedis(logger),
		Oracle: o,
		JWT:    jwtSvc,
		Hub:    hub,
		Logger: logger,
	}, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
