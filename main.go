package main

import (
	"log"

	api "edufeed-backend/cmd/api"
	authdomain "edufeed-backend/internal/auth/domain"
	authRepo "edufeed-backend/internal/auth/repository"
	authUsecase "edufeed-backend/internal/auth/usecase"
	feeddomain "edufeed-backend/internal/feed/domain"
	feedRepo "edufeed-backend/internal/feed/repository"
	feedUsecase "edufeed-backend/internal/feed/usecase"
	"edufeed-backend/internal/notification"
	"edufeed-backend/pkg/config"
	"edufeed-backend/pkg/database"
	"edufeed-backend/pkg/fcm"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(
		&authdomain.User{},
		&authdomain.RefreshToken{},
		&authdomain.MutedInstructor{},
		&feeddomain.Post{},
		&feeddomain.Comment{},
		&feeddomain.PostReaction{},
		&feeddomain.Poll{},
		&feeddomain.PollOption{},
		&feeddomain.PollVote{},
	); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	muteRepo := authRepo.NewMuteRepository(db)
	postRepo := feedRepo.NewPostRepository(db)
	pollRepo := feedRepo.NewPollRepository(db)

	// Initialize FCM client. Push is optional: without credentials the
	// notification service records every batch as failed instead of sending.
	var gateway notification.Gateway
	if cfg.FirebaseCredentials != "" {
		fcmClient, err := fcm.NewClient(cfg.FirebaseCredentials)
		if err != nil {
			log.Printf("[WARN] Failed to initialize FCM client (push notifications disabled): %v", err)
		} else {
			gateway = fcmClient
		}
	} else {
		log.Printf("[WARN] No Firebase credentials configured, push notifications disabled")
	}

	notifService := notification.NewService(userRepo, gateway, cfg.PushWorkers, cfg.PushRatePerSecond, cfg.PushSendTimeout)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, muteRepo, cfg)
	feedUsecaseInstance := feedUsecase.NewFeedUsecase(postRepo, pollRepo, notifService)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, feedUsecaseInstance, cfg)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
