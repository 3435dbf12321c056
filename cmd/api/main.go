package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/adpilot/internal/application"
	appai "github.com/bryanwahyu/adpilot/internal/application/ai"
	appmkt "github.com/bryanwahyu/adpilot/internal/application/marketing"
	"github.com/bryanwahyu/adpilot/internal/config"
	domai "github.com/bryanwahyu/adpilot/internal/domain/ai"
	"github.com/bryanwahyu/adpilot/internal/domain/analysis"
	"github.com/bryanwahyu/adpilot/internal/infra/ai/gemini"
	openaiClient "github.com/bryanwahyu/adpilot/internal/infra/ai/openai"
	"github.com/bryanwahyu/adpilot/internal/infra/cache"
	mysqlp "github.com/bryanwahyu/adpilot/internal/infra/db/mysql"
	"github.com/bryanwahyu/adpilot/internal/infra/db/postgres"
	"github.com/bryanwahyu/adpilot/internal/infra/httpserver"
	"github.com/bryanwahyu/adpilot/internal/infra/mail"
	"github.com/bryanwahyu/adpilot/internal/infra/report"
	"github.com/bryanwahyu/adpilot/internal/infra/scrape"
	minioStore "github.com/bryanwahyu/adpilot/internal/infra/storage"
	"github.com/bryanwahyu/adpilot/internal/logger"
	"github.com/bryanwahyu/adpilot/internal/middleware"
)

func main() {
	// path config.yaml
	path := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}

	// load config
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("config load error: %v", err)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	ctx := context.Background()
	health := middleware.NewHealth()

	// database
	db, analyses, recs, err := openStore(ctx, cfg)
	if err != nil {
		log.Fatalf("%s connect error: %v", cfg.Database.Driver, err)
	}
	defer db.Close()
	health.Critical("database", middleware.DBChecker(db))

	// model
	client, closeClient, err := newModelClient(ctx, cfg)
	if err != nil {
		log.Fatalf("ai client error: %v", err)
	}
	defer closeClient()

	metrics := middleware.NewMetrics()
	svc := &appmkt.Service{
		Analyses:        analyses,
		Recommendations: recs,
		Fetcher: scrape.NewFetcher(scrape.Options{
			ProxyBase: cfg.Fetch.ProxyBase,
			UserAgent: cfg.Fetch.UserAgent,
			Timeout:   cfg.Fetch.Timeout,
		}, log),
		Generator: appai.NewService(client, log).WithRateLimit(cfg.AI.RPM, cfg.AI.Burst),
		Renderer:  report.Renderer{},
		Observer:  metrics,
		Clock:     application.SystemClock{},
		Log:       log,
	}

	// redis, optional
	if cfg.Redis.Addr != "" {
		strategies := cache.NewStrategyStore(cache.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.StrategyTTL,
		})
		defer strategies.Close()
		svc.Strategies = strategies
		health.Optional("redis", middleware.PingChecker(strategies.Ping))
	}

	// minio, optional
	if cfg.Minio.Endpoint != "" {
		store, err := minioStore.New(ctx, minioStore.Options{
			Endpoint:  cfg.Minio.Endpoint,
			Region:    cfg.Minio.Region,
			Bucket:    cfg.Minio.BucketName,
			AccessKey: cfg.Minio.AccessKey,
			SecretKey: cfg.Minio.SecretKey,
			UseSSL:    cfg.Minio.UseSSL,
		})
		if err != nil {
			log.Fatalf("minio init error: %v", err)
		}
		svc.Reports = store
		svc.ReportExpiry = cfg.Minio.PresignExpiry
	}

	if cfg.Email.Enabled {
		svc.Mailer = mail.NewEmailJS(mail.Config{
			Endpoint:   cfg.Email.Endpoint,
			ServiceID:  cfg.Email.ServiceID,
			TemplateID: cfg.Email.TemplateID,
			PublicKey:  cfg.Email.PublicKey,
		})
	}

	handler := httpserver.NewRouter(svc, httpserver.Options{
		Log:         log,
		Metrics:     metrics,
		Health:      health,
		APIKeys:     cfg.Auth.APIKeys,
		CORSOrigins: cfg.Server.CORSOrigins,
		RateLimit:   cfg.Server.RateLimit,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// run server
	go func() {
		log.WithFields(logrus.Fields{
			"addr":     addr,
			"driver":   cfg.Database.Driver,
			"provider": cfg.AI.Provider,
		}).Info("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	log.Info("shutting down server...")

	ctx2, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx2); err != nil {
		log.Errorf("shutdown error: %v", err)
	}
}

func openStore(ctx context.Context, cfg *config.Config) (*sql.DB, analysis.Repository, analysis.RecommendationRepository, error) {
	switch cfg.Database.Driver {
	case "mysql":
		db, err := mysqlp.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Database.Migrate {
			if err := mysqlp.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return nil, nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return db, mysqlp.NewAnalysisRepository(db), mysqlp.NewRecommendationRepository(db), nil
	default:
		db, err := postgres.Connect(ctx, cfg.DSN())
		if err != nil {
			return nil, nil, nil, err
		}
		if cfg.Database.Migrate {
			if err := postgres.EnsureSchema(ctx, db); err != nil {
				db.Close()
				return nil, nil, nil, fmt.Errorf("migrate: %w", err)
			}
		}
		return db, postgres.NewAnalysisRepository(db), postgres.NewRecommendationRepository(db), nil
	}
}

func newModelClient(ctx context.Context, cfg *config.Config) (domai.Client, func(), error) {
	switch cfg.AI.Provider {
	case "openai":
		model := cfg.AI.Model
		if model == "" {
			model = openaiClient.DefaultModel
		}
		c := openaiClient.NewClient(cfg.AI.APIKey, model)
		if cfg.AI.BaseURL != "" {
			c = openaiClient.NewClientWithBaseURL(cfg.AI.APIKey, model, cfg.AI.BaseURL)
		}
		c.Temperature = cfg.AI.Temperature
		c.MaxTokens = cfg.AI.MaxTokens
		return c, func() {}, nil
	default:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      cfg.AI.APIKey,
			Model:       cfg.AI.Model,
			Temperature: cfg.AI.Temperature,
			MaxTokens:   int32(cfg.AI.MaxTokens),
		})
		if err != nil {
			return nil, nil, err
		}
		return c, func() { _ = c.Close() }, nil
	}
}
