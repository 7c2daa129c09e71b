package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	httpadp "relief-fund-backend/internal/adapter/http"
	"relief-fund-backend/internal/adapter/middleware"
	"relief-fund-backend/internal/adapter/repository/gormrepo"
	"relief-fund-backend/internal/config"
	"relief-fund-backend/internal/infrastructure/cache"
	"relief-fund-backend/internal/infrastructure/db"
	"relief-fund-backend/internal/observability/logger"
	"relief-fund-backend/internal/observability/metrics"
	"relief-fund-backend/internal/usecase/relief"
)

const (
	serviceName     = "relief-fund"
	shutdownTimeout = 10 * time.Second
)

var Module = fx.Options(
	fx.Provide(
		provideConfig,
		provideLoggerConfig,
		logger.New,
		provideRegistry,
		provideMetrics,
		provideDB,
		provideRedis,
		provideUsecase,
		newEcho,
	),
	fx.Invoke(runHTTP),
)

func provideConfig() (*config.Config, error) {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return logger.Config{
		ServiceName: serviceName,
		Environment: cfg.AppEnv,
		Version:     cfg.AppVersion,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
	}
}

func provideRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func provideMetrics(reg *prometheus.Registry, cfg *config.Config) *metrics.WorkflowMetrics {
	return metrics.NewWorkflowMetrics(reg, metrics.Config{ServiceName: serviceName, Environment: cfg.AppEnv})
}

func provideDB(lc fx.Lifecycle, cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	gdb, err := db.OpenGorm(cfg, log)
	if err != nil {
		return nil, err
	}
	if cfg.DBAutoMigrate {
		if err := db.AutoMigrate(context.Background(), gdb); err != nil {
			_ = db.Close(gdb)
			return nil, err
		}
		log.Info("schema migrated")
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return db.Close(gdb) },
	})
	return gdb, nil
}

// Redis backs the idempotency store, so it is required even with the read cache off.
func provideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return rdb.Close() },
	})
	return rdb, nil
}

func provideUsecase(gdb *gorm.DB, rdb *redis.Client, cfg *config.Config, log *zap.Logger, m *metrics.WorkflowMetrics) *relief.Usecase {
	opts := []relief.Option{
		relief.WithLogger(log.Named("relief")),
		relief.WithMetrics(m),
		relief.WithTimeouts(relief.Timeouts{
			LockWait:    cfg.Tx.LockWait,
			Timeout:     cfg.Tx.Timeout,
			BulkTimeout: cfg.Tx.BulkTimeout,
		}),
	}
	if cfg.CacheEnabled {
		opts = append(opts, relief.WithCache(cache.NewReadCache(rdb, cfg.CacheTTL, log)))
	}
	return relief.NewUsecase(gormrepo.NewGormUoW(gdb), gormrepo.NewRepos(gdb), opts...)
}

func newEcho(cfg *config.Config, uc *relief.Usecase, rdb *redis.Client, reg *prometheus.Registry, log *zap.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestContext(), middleware.AccessLog(log))

	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	idemTTL := time.Duration(cfg.IdempTTLSecs) * time.Second
	httpadp.RegisterRoutes(e, uc, middleware.Idempotency(rdb, idemTTL, log))
	return e
}

func runHTTP(lc fx.Lifecycle, sd fx.Shutdowner, e *echo.Echo, cfg *config.Config, log *zap.Logger) {
	addr := ":" + cfg.AppPort
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info("http: listening", zap.String("addr", addr))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("http: server stopped", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()
			return e.Shutdown(ctx)
		},
	})
}
