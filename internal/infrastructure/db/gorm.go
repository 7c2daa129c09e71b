package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"relief-fund-backend/internal/config"
	"relief-fund-backend/internal/observability/logger"
)

// Dialect picks the gorm dialector for the configured DB_TYPE.
func Dialect(cfg *config.Config) (gorm.Dialector, error) {
	switch cfg.DBType {
	case config.DBTypeMySQL:
		return mysql.Open(cfg.MySQLDSN()), nil
	case config.DBTypePostgres:
		return postgres.Open(cfg.PostgresDSN()), nil
	case config.DBTypeSQLite:
		return sqlite.Open(cfg.SQLiteDSN()), nil
	default:
		return nil, fmt.Errorf("unsupported %s type", cfg.DBType)
	}
}

type options struct {
	maxOpen    int
	maxIdle    int
	maxLife    time.Duration
	maxIdleFor time.Duration
	logger     gormlogger.Interface
}

type Option func(*options)

func WithPool(maxOpen, maxIdle int, maxLife, maxIdleFor time.Duration) Option {
	return func(o *options) {
		o.maxOpen, o.maxIdle, o.maxLife, o.maxIdleFor = maxOpen, maxIdle, maxLife, maxIdleFor
	}
}

func WithLogger(l gormlogger.Interface) Option {
	return func(o *options) { o.logger = l }
}

// OpenGorm connects using the configured dialect and pool limits.
func OpenGorm(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	dial, err := Dialect(cfg)
	if err != nil {
		return nil, err
	}
	gl := logger.DefaultGormLoggerConfig()
	if cfg.DBSlowThreshold > 0 {
		gl.SlowThreshold = cfg.DBSlowThreshold
	}
	db, err := OpenGormWithDialector(dial,
		WithPool(cfg.DBMaxOpenConns, cfg.DBMaxIdleConns, cfg.DBConnMaxLife, cfg.DBConnMaxIdle),
		WithLogger(logger.NewGormLogger(log, gl)),
	)
	if err != nil {
		return nil, err
	}
	if log != nil {
		log.Info("gorm: connected", zap.String("dialect", db.Dialector.Name()))
	}
	return db, nil
}

// OpenGormWithDialector opens gorm on dial and pings once.
func OpenGormWithDialector(dial gorm.Dialector, opts ...Option) (*gorm.DB, error) {
	o := options{
		maxOpen:    30,
		maxIdle:    10,
		maxLife:    30 * time.Minute,
		maxIdleFor: 10 * time.Minute,
		logger:     gormlogger.Discard,
	}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger:               o.logger,
		DisableAutomaticPing: true,
		NowFunc:              func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(o.maxOpen)
	sqlDB.SetMaxIdleConns(o.maxIdle)
	sqlDB.SetConnMaxLifetime(o.maxLife)
	sqlDB.SetConnMaxIdleTime(o.maxIdleFor)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
