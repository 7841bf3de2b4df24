package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/longles/Reddit-Downloader/internal/app/dedup"
	"github.com/longles/Reddit-Downloader/internal/app/delivery"
	"github.com/longles/Reddit-Downloader/internal/app/events"
	"github.com/longles/Reddit-Downloader/internal/app/lister"
	"github.com/longles/Reddit-Downloader/internal/app/repository"
	"github.com/longles/Reddit-Downloader/internal/app/usecase"
	"github.com/longles/Reddit-Downloader/internal/config"
	"github.com/longles/Reddit-Downloader/internal/middleware"
	"github.com/longles/Reddit-Downloader/internal/utils/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig(".env")
	if err != nil {
		fmt.Printf("error initializing config: %v\n", err)
		os.Exit(1)
	}

	err = logger.Init(cfg.LogMode)
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("configuration loaded successfully")
	logger.Debug("debug mode enabled",
		zap.String("log_mode", cfg.LogMode),
		zap.Int("download_limit", cfg.DownloadLimit),
		zap.Int("max_concurrent_downloads", cfg.MaxConcurrentDownloads),
	)

	for _, dir := range []string{cfg.DownloadDir, cfg.UploadDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			logger.Error("failed to create directory",
				zap.String("dir", dir),
				zap.Error(err),
			)
			os.Exit(1)
		}
	}

	bus := events.CreateBus()
	defer bus.Close()

	jobRepo := repository.CreateJobRepository()
	listerClient := lister.CreateClient(&http.Client{Timeout: cfg.ListerTimeout}, cfg.UserAgent)
	deduper := dedup.CreateEngine(cfg.ValidFormats)

	// The media client carries no global timeout: large files legitimately
	// take long, and stalled downloads are bounded by job cancellation.
	archiveUsecase := usecase.CreateArchiveUsecase(jobRepo, listerClient, bus, deduper, &http.Client{}, cfg)
	archiveDelivery := delivery.CreateArchiveDelivery(archiveUsecase, bus)

	router := mux.NewRouter()

	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	apiRouter := router.PathPrefix("/api").Subrouter()
	archiveRouter := apiRouter.PathPrefix("/archive").Subrouter()
	archiveRouter.HandleFunc("/start", archiveDelivery.StartArchive).Methods("POST")
	archiveRouter.HandleFunc("/status/{id}", archiveDelivery.GetJobStatus).Methods("GET")
	archiveRouter.HandleFunc("/stop/{id}", archiveDelivery.StopArchive).Methods("POST")
	apiRouter.HandleFunc("/jobs", archiveDelivery.GetAllJobs).Methods("GET")
	apiRouter.HandleFunc("/downloads/{id}", archiveDelivery.GetJobDownloads).Methods("GET")
	apiRouter.HandleFunc("/users/folders", archiveDelivery.GetUserFolders).Methods("GET")
	apiRouter.HandleFunc("/users/file", archiveDelivery.UploadUserFile).Methods("POST")
	apiRouter.HandleFunc("/events", archiveDelivery.StreamEvents).Methods("GET")

	router.Use(middleware.LoggingMiddleware)
	router.Use(middleware.PanicMiddleware)

	addr := fmt.Sprintf(":%s", cfg.ServerPort)
	server := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	g, gctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		logger.Info("starting HTTP server",
			zap.String("address", server.Addr),
			zap.Any("config", cfg),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-quit:
			logger.Info("server is shutting down",
				zap.String("signal", sig.String()),
			)
		case <-gctx.Done():
			return nil
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		return server.Shutdown(ctx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("server stopped")
}
