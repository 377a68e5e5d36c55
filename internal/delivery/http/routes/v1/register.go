package v1

import (
	"log"

	"founder-match/internal/config"
	"founder-match/internal/database"
	"founder-match/internal/delivery/http/handler"
	"founder-match/internal/delivery/http/middleware"
	"founder-match/internal/infrastructure/persistence/postgres"
	"founder-match/internal/oracle"
	"founder-match/internal/pkg/jwt"
	"founder-match/internal/repository"
	"founder-match/internal/usecase"
	"founder-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Logger   *log.Logger
	JWT      jwt.Service
	Cache    usecase.InboxCache
	Oracle   oracle.Oracle
	Notifier *ws.Notifier
}

func Register(r fiber.Router, cfg config.Config, db database.DB, d Deps) error {
	if r == nil {
		return nil
	}

	authMw := middleware.NewAuthMiddleware(d.JWT)

	userRepo, err := postgres.NewUserRepository(db)
	if err != nil {
		return err
	}
	dir := repository.NewPostgresDirectory(db)
	matchRepo := repository.NewPostgresMatchRepository(db)
	messageRepo := repository.NewPostgresMessageRepository(db)

	authUC := usecase.NewAuthUsecase(userRepo, d.JWT)
	matchingUC := usecase.NewMatchingUsecase(dir, matchRepo, d.Oracle, d.Logger, cfg.Matching.CandidateLimit, cfg.Matching.ScoreThreshold)
	lifecycleUC := usecase.NewMatchLifecycleUsecase(dir, matchRepo, d.Notifier)
	messagingUC := usecase.NewMessagingUsecase(matchRepo, messageRepo, d.Cache, d.Notifier, d.Logger)
	conversationUC := usecase.NewConversationUsecase(dir, matchRepo, messageRepo, d.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	matchingHandler := handler.NewMatchingHandler(matchingUC, lifecycleUC)
	messageHandler := handler.NewMessageHandler(messagingUC, conversationUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	matchingGroup := protected.Group("/matching")
	matchingHandler.RegisterRoutes(matchingGroup)

	messagesGroup := protected.Group("/messages")
	messageHandler.RegisterRoutes(messagesGroup)

	return nil
}
