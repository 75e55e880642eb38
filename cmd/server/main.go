package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"go.uber.org/zap"

	"github.com/karangnongko/goatherd/internal/config"
	"github.com/karangnongko/goatherd/internal/demo"
	"github.com/karangnongko/goatherd/internal/repository/mongodb"
	"github.com/karangnongko/goatherd/internal/repository/sheets"
	"github.com/karangnongko/goatherd/internal/scheduler"
	"github.com/karangnongko/goatherd/internal/server/handlers"
	"github.com/karangnongko/goatherd/internal/server/router"
	feedlogssvc "github.com/karangnongko/goatherd/internal/service/feedlogs"
	goatssvc "github.com/karangnongko/goatherd/internal/service/goats"
	reportingsvc "github.com/karangnongko/goatherd/internal/service/reporting"
	"github.com/karangnongko/goatherd/internal/session"
	"github.com/karangnongko/goatherd/pkg/clients/farmapi"
	"github.com/karangnongko/goatherd/pkg/logger"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.FarmAPI.DemoMode))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	var apiClient farmapi.Client
	if cfg.FarmAPI.DemoMode {
		apiClient = demo.NewClient()
		baseLogger.Warn("demo mode enabled, livestock data is in-memory fixtures")
	} else {
		apiClient = farmapi.NewClient(cfg.FarmAPI.BaseURL)
	}

	var sessionRepo session.Repository
	var mongoRepo *mongodb.MongoDBRepository
	if cfg.FarmAPI.DemoMode {
		// The demo farm forgets everything on restart anyway, so the session
		// snapshot can live in memory too.
		sessionRepo = session.NewMemoryRepository()
	} else {
		mongoRepo, err = mongodb.NewMongoDBRepository(context.Background(), cfg.MongoDB.URI, cfg.MongoDB.DBName)
		if err != nil {
			baseLogger.Fatal("failed to init mongodb repository", zap.Error(err))
		}
		defer func() {
			if err := mongoRepo.Close(context.Background()); err != nil {
				baseLogger.Error("failed to close mongodb connection", zap.Error(err))
			}
		}()
		sessionRepo = mongoRepo
	}

	sessionStore := session.NewStore(apiClient, sessionRepo, baseLogger.Named("session"))
	if err := sessionStore.Restore(context.Background()); err != nil {
		baseLogger.Warn("failed to restore session snapshot", zap.Error(err))
	}

	goatSvc := goatssvc.NewService(apiClient, baseLogger.Named("svc.goats"))
	feedingSvc := feedlogssvc.NewService(apiClient, baseLogger.Named("svc.feedlogs"))

	authHandler := handlers.NewAuthHandler(sessionStore, baseLogger.Named("handlers.auth"))
	goatHandler := handlers.NewGoatHandler(goatSvc, sessionStore, baseLogger.Named("handlers.goats"))
	feedingHandler := handlers.NewFeedingHandler(feedingSvc, sessionStore, baseLogger.Named("handlers.feedlogs"))
	engine := router.New(sessionStore, authHandler, goatHandler, feedingHandler, baseLogger.Named("router"))

	if cfg.Reporting.Enabled && mongoRepo != nil {
		sheetsRepo, err := sheets.NewGoogleSheetRepository(context.Background(), cfg.Sheets, baseLogger.Named("repo.sheets"))
		if err != nil {
			baseLogger.Fatal("failed to init sheets repository", zap.Error(err))
		}

		reportingSvc := reportingsvc.NewService(apiClient, sheetsRepo, mongoRepo, cfg.Reporting, baseLogger.Named("svc.reporting"))
		sched := scheduler.NewScheduler(cfg.Reporting, reportingSvc, baseLogger.Named("scheduler"))
		sched.Start()
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
