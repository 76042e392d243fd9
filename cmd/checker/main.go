package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"points_checker/internal/app/service"
	"points_checker/internal/client"
	"points_checker/internal/infrastructure/configloader"
	"points_checker/internal/infrastructure/restapi"
	"points_checker/internal/infrastructure/sessionstore"
	"points_checker/internal/pkg/logger"
	"points_checker/internal/pkg/metrics"
	"points_checker/internal/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	// Запас поверх таймаута запроса: батчи дожидаются текущего запроса к API
	shutdownGrace = 5 * time.Second
	// Как часто обновляется метрика активных сессий
	sessionGaugeInterval = 15 * time.Second
)

func main() {
	if err := run(); err != nil {
		logger.Fatal("Сервер остановлен с ошибкой", "ошибка", err)
	}
}

func run() error {
	// Загрузка конфигурации
	cfg, err := configloader.Load(utils.GetEnv("CONFIG_PATH", configloader.DefaultPath))
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	zapLogger, err := logger.NewZapLogger(cfg.Logging.Level, cfg.Logging.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}
	defer func() { _ = zapLogger.Sync() }()

	level, _ := logger.ParseLevel(cfg.Logging.Level)
	logger.InitSlogZap(zapLogger, level)
	appLogger := logger.NewSlogAdapter()
	appLogger.Info("Points checker server starting", "log_level", level.String())

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Metrics.Enabled {
		metrics.MustRegisterMetrics()
	}

	pointsClient := client.NewPointsClient(cfg.Points.BaseURL, cfg.RequestTimeout(), zapLogger)
	pointsService := service.NewPointsService(pointsClient, appLogger.With("component", "PointsService"))

	store := sessionstore.NewStore(cfg.SessionTTL(), cfg.SessionCleanupInterval(), appLogger.With("component", "SessionStore"))
	batchService := service.NewBatchService(pointsService, store, appLogger.With("component", "BatchService"))
	store.OnEvicted(batchService.Forget)

	router, err := restapi.SetupRouter(restapi.RouterDeps{
		Config:   cfg,
		Batches:  batchService,
		Sessions: store,
		Logger:   appLogger,
		Zap:      zapLogger,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		appLogger.Info("Запуск HTTP сервера", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	if cfg.Metrics.Enabled {
		g.Go(func() error {
			ticker := time.NewTicker(sessionGaugeInterval)
			defer ticker.Stop()
			for {
				metrics.ActiveSessions.Set(float64(store.Count()))
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Получен сигнал завершения. Завершение работы HTTP сервера...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout()+shutdownGrace)
		defer cancel()
		batchService.Shutdown()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		zapLogger.Error("Server stopped with error", zap.Error(err))
		return err
	}
	appLogger.Info("Points checker server stopped")
	return nil
}
