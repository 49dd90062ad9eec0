package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/sitecraft/estimate-api/internal/config"
	"github.com/sitecraft/estimate-api/internal/database"
	"github.com/sitecraft/estimate-api/internal/engine"
	"github.com/sitecraft/estimate-api/internal/http/handler"
	"github.com/sitecraft/estimate-api/internal/http/router"
	"github.com/sitecraft/estimate-api/internal/jobs"
	"github.com/sitecraft/estimate-api/internal/logger"
	"github.com/sitecraft/estimate-api/internal/repository"
	"github.com/sitecraft/estimate-api/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize the estimation engine
	eng := engine.New(db, log, engine.PercentageBase(cfg.Engine.PercentageBase))

	// Initialize repositories
	projectRepo := repository.NewProjectRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	materialRepo := repository.NewMaterialRepository(db)
	projectMaterialRepo := repository.NewProjectMaterialRepository(db)
	workerRepo := repository.NewWorkerRepository(db)
	settingsRepo := repository.NewUserSettingsRepository(db)

	// Initialize services. The quota gate is a plug point for a billing
	// backend; the default allows everything.
	var quota service.QuotaGate = service.AllowAll{}

	projectService := service.NewProjectService(projectRepo, materialRepo, eng, quota, log)
	roomService := service.NewRoomService(roomRepo, projectRepo, eng, quota, log)
	materialService := service.NewMaterialService(materialRepo, projectMaterialRepo, quota, log)
	projectMaterialService := service.NewProjectMaterialService(projectMaterialRepo, projectRepo, materialRepo, eng, quota, log)
	workerService := service.NewWorkerService(workerRepo, projectRepo, eng, quota, log)
	settingsService := service.NewSettingsService(settingsRepo, projectRepo, eng, log)

	// Initialize handlers
	projectHandler := handler.NewProjectHandler(projectService, log)
	roomHandler := handler.NewRoomHandler(roomService, log)
	materialHandler := handler.NewMaterialHandler(materialService, projectMaterialService, log)
	workerHandler := handler.NewWorkerHandler(workerService, log)
	settingsHandler := handler.NewSettingsHandler(settingsService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		projectHandler,
		roomHandler,
		materialHandler,
		workerHandler,
		settingsHandler,
	)

	// Start the background recompute sweep if enabled
	var scheduler *jobs.Scheduler
	if cfg.Jobs.SweepEnabled {
		scheduler = jobs.NewScheduler(log)
		sweep := jobs.NewRecomputeSweepJob(
			projectRepo,
			eng,
			log,
			cfg.Jobs.SweepWindow(),
			cfg.Jobs.SweepBatchSize,
		)
		if err := scheduler.AddJob(jobs.RecomputeSweepJobName, cfg.Jobs.SweepSchedule, sweep.Run); err != nil {
			log.Error("Failed to register recompute sweep job", zap.Error(err))
		} else {
			scheduler.Start()
		}
	} else {
		log.Info("Recompute sweep disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
