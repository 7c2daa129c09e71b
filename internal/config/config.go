package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DBTypeMySQL    = "mysql"
	DBTypePostgres = "postgres"
	DBTypeSQLite   = "sqlite"
)

type Config struct {
	AppPort    string
	AppEnv     string
	AppVersion string

	LogLevel  string
	LogFormat string

	DBType          string
	DBAutoMigrate   bool
	DBMaxOpenConns  int
	DBMaxIdleConns  int
	DBConnMaxLife   time.Duration
	DBConnMaxIdle   time.Duration
	DBSlowThreshold time.Duration

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresHost    string
	PostgresPort    string
	PostgresDB      string
	PostgresUser    string
	PostgresPass    string
	PostgresSSLMode string

	SQLitePath string

	RedisAddr string
	RedisDB   int

	CacheEnabled bool
	CacheTTL     time.Duration

	IdempTTLSecs int

	Tx TxConfig
}

// TxConfig bounds every unit of work.
type TxConfig struct {
	LockWait    time.Duration
	Timeout     time.Duration
	BulkTimeout time.Duration
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func getenvBool(k string, d bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(k))) {
	case "1", "true", "yes", "y", "on":
		return true
	case "0", "false", "no", "n", "off":
		return false
	}
	return d
}

func getenvMillis(k string, d time.Duration) time.Duration {
	if n := getenvInt(k, -1); n >= 0 {
		return time.Duration(n) * time.Millisecond
	}
	return d
}

// Load reads the environment, after merging a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		AppPort:    getenv("APP_PORT", "8080"),
		AppEnv:     getenv("APP_ENV", "development"),
		AppVersion: getenv("APP_VERSION", "0.1.0"),

		LogLevel:  getenv("LOG_LEVEL", "info"),
		LogFormat: getenv("LOG_FORMAT", "json"),

		DBType:          strings.ToLower(getenv("DB_TYPE", DBTypeMySQL)),
		DBAutoMigrate:   getenvBool("DB_AUTO_MIGRATE", false),
		DBMaxOpenConns:  getenvInt("DB_MAX_OPEN_CONNS", 30),
		DBMaxIdleConns:  getenvInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxLife:   30 * time.Minute,
		DBConnMaxIdle:   10 * time.Minute,
		DBSlowThreshold: getenvMillis("DB_SLOW_THRESHOLD_MS", 200*time.Millisecond),

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "relief"),
		MySQLUser: getenv("MYSQL_USER", "relief"),
		MySQLPass: getenv("MYSQL_PASS", "relief"),

		PostgresHost:    getenv("POSTGRES_HOST", "postgres"),
		PostgresPort:    getenv("POSTGRES_PORT", "5432"),
		PostgresDB:      getenv("POSTGRES_DB", "relief"),
		PostgresUser:    getenv("POSTGRES_USER", "relief"),
		PostgresPass:    getenv("POSTGRES_PASS", "relief"),
		PostgresSSLMode: getenv("POSTGRES_SSLMODE", "disable"),

		SQLitePath: getenv("SQLITE_PATH", "relief.db"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		CacheEnabled: getenvBool("CACHE_ENABLED", true),
		CacheTTL:     time.Duration(getenvInt("CACHE_TTL_SECONDS", 60)) * time.Second,

		IdempTTLSecs: getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),

		Tx: TxConfig{
			LockWait:    getenvMillis("TX_LOCK_WAIT_MS", 5*time.Second),
			Timeout:     getenvMillis("TX_TIMEOUT_MS", 30*time.Second),
			BulkTimeout: getenvMillis("TX_BULK_TIMEOUT_MS", 60*time.Second),
		},
	}
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBType {
	case DBTypeMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DBTypePostgres:
		if c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDB == "" || c.PostgresUser == "" {
			return errors.New("missing Postgres config (POSTGRES_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.PostgresPort); err != nil {
			return fmt.Errorf("invalid POSTGRES_PORT %q: %w", c.PostgresPort, err)
		}
	case DBTypeSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_TYPE %q", c.DBType)
	}
	if c.Tx.LockWait <= 0 || c.Tx.Timeout <= 0 || c.Tx.BulkTimeout <= 0 {
		return errors.New("transaction bounds must be positive (TX_LOCK_WAIT_MS/TX_TIMEOUT_MS/TX_BULK_TIMEOUT_MS)")
	}
	if c.Tx.LockWait > c.Tx.Timeout {
		return errors.New("TX_LOCK_WAIT_MS must not exceed TX_TIMEOUT_MS")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// MySQLDSN sets the row lock wait per connection; MySQL has no transaction
// scoped form, and a SET SESSION would leak into pooled connections.
func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps timestamps comparable
	dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
	if ms := c.Tx.LockWait.Milliseconds(); ms > 0 {
		// whole-second resolution
		dsn += fmt.Sprintf("&innodb_lock_wait_timeout=%d", (ms+999)/1000)
	}
	return dsn
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.PostgresHost, c.PostgresUser, c.PostgresPass, c.PostgresDB, c.PostgresPort, c.PostgresSSLMode)
}

// SQLiteDSN starts write transactions eagerly so concurrent writers queue on
// the busy timeout instead of failing on lock upgrade.
func (c *Config) SQLiteDSN() string {
	return fmt.Sprintf("%s?_txlock=immediate&_busy_timeout=%d", c.SQLitePath, c.Tx.LockWait.Milliseconds())
}
