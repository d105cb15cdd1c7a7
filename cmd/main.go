package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fathima-sithara/account-service/internal/config"
	"github.com/fathima-sithara/account-service/internal/database"
	"github.com/fathima-sithara/account-service/internal/handlers"
	"github.com/fathima-sithara/account-service/internal/middlewares"
	"github.com/fathima-sithara/account-service/internal/notifier"
	"github.com/fathima-sithara/account-service/internal/repository"
	"github.com/fathima-sithara/account-service/internal/routes"
	"github.com/fathima-sithara/account-service/internal/services"
	"github.com/fathima-sithara/account-service/internal/storage"
	"github.com/fathima-sithara/account-service/internal/token"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.IsDevelopment() {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting account-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	smsClient := notifier.NewSMSNotifier(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, sugar)
	if !smsClient.IsConfigured() {
		sugar.Warn("Twilio client not fully configured. SMS delivery will be skipped.")
	}
	emailClient := notifier.NewEmailNotifier(cfg.Brevo.APIKey, cfg.Brevo.SenderEmail, cfg.Brevo.SenderName, sugar)
	if !emailClient.IsConfigured() {
		sugar.Warn("Brevo client not fully configured. Email delivery will be skipped.")
	}
	sms := notifier.NewBreakerSMS(smsClient, sugar)
	email := notifier.NewBreakerEmail(emailClient, sugar)

	var store storage.PictureStore
	switch cfg.Storage.Driver {
	case "s3":
		store, err = storage.NewS3Store(context.Background(), cfg.Storage.AWSRegion, cfg.Storage.Bucket, cfg.Storage.PublicRead, sugar)
	default:
		store, err = storage.NewLocalStore(cfg.Storage.UploadDir, sugar)
	}
	if err != nil {
		sugar.Fatalf("failed to initialize picture storage: %v", err)
	}

	tokens := token.NewManager(cfg.JWT.Secret, cfg.TokenTTL)
	userRepo := repository.NewMongoUserRepo(db, cfg.Mongo.Collection)

	authSvc := services.NewAuthService(userRepo, sms, email, tokens, cfg.OTPTTL, cfg.Security.PasswordHashCost, cfg.NotifyTimeout, cfg.IsDevelopment(), sugar)
	profileSvc := services.NewProfileService(userRepo, store, cfg.App.URL, sugar)
	h := handlers.NewHandler(authSvc, profileSvc, cfg.IsDevelopment(), sugar)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		BodyLimit:    10 * 1024 * 1024,
	})

	app.Use(cors.New())
	app.Use(middlewares.RequestLogger(sugar))

	if cfg.Storage.Driver == "local" {
		app.Static("/uploads", "uploads")
	}

	routes.Setup(app, h, middlewares.Protect(tokens, userRepo), cfg.App.Env)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctxShut, cancelShut := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShut()

	if err := app.ShutdownWithContext(ctxShut); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctxShut); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}
	sugar.Info("Graceful shutdown complete")
}
