package api

import (
	"context"
	"time"

	_ "marketplace/docs"
	"marketplace/internal/app/config"
	"marketplace/internal/app/dsn"
	"marketplace/internal/app/handler"
	"marketplace/internal/app/lifecycle"
	"marketplace/internal/app/matching"
	"marketplace/internal/app/middleware"
	"marketplace/internal/app/notify"
	"marketplace/internal/app/redis"
	"marketplace/internal/app/repository"
	"marketplace/internal/app/scheduler"
	"marketplace/internal/app/storage"
	"marketplace/internal/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/shopspring/decimal"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func StartServer() {
	logrus.Info("Starting server")
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logrus.SetLevel(level)
	}

	repo, err := repository.New(dsn.FromEnv())
	if err != nil {
		logrus.Fatalf("repository: %v", err)
	}

	sessions, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		logrus.Fatalf("redis: %v", err)
	}

	deps := lifecycle.Deps{Notifier: notify.Log{}}
	var links handler.DocumentLinker
	if cfg.Minio.Endpoint != "" {
		store, err := storage.NewMinIOClient(ctx, cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.Bucket, cfg.Minio.UseSSL)
		if err != nil {
			logrus.Fatalf("minio: %v", err)
		}
		deps.Store = store
		links = store
	} else {
		logrus.Warn("Minio.Endpoint is empty, invoice documents will not be archived")
	}
	if cfg.Twilio.AccountSID != "" {
		deps.Notifier = notify.NewSMS(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.From, repo)
	}

	vat, _ := cfg.VATRate()
	fixed, _ := cfg.FixedSharePercent()
	engine := lifecycle.New(repo, lifecycle.Config{
		StoreTimeout:      cfg.Lifecycle.StoreTimeout,
		VATRate:           decimal.NewNullDecimal(vat),
		FixedSharePercent: fixed,
	}, deps)

	auth := middleware.NewAuthMiddleware(sessions, cfg.JWT.Token)
	h := handler.NewHandler(repo, engine, sessions, auth, handler.Config{
		JWTSecret:         cfg.JWT.Token,
		JWTExpiresIn:      cfg.JWT.ExpiresIn,
		PaymentWebhookKey: cfg.PaymentWebhookKey,
	})
	h.Links = links

	var gemini *matching.Gemini
	if cfg.Gemini.APIKey != "" {
		gemini, err = matching.NewGemini(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			logrus.Fatalf("gemini: %v", err)
		}
		h.Matcher = matching.NewMatcher(gemini)
	}

	router := gin.Default()
	if len(cfg.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Payment-Key"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	application := pkg.NewApp(cfg, router, h, scheduler.New(engine.Issuer, cfg.Scheduler.BatchSize))
	application.OnShutdown(repo.Close)
	application.OnShutdown(sessions.Close)
	if gemini != nil {
		application.OnShutdown(gemini.Close)
	}

	application.RunApp()
}
