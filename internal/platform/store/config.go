package store

import (
	"time"

	"batchtrace/internal/platform/config"
)

// Config selects and configures the backend
type Config struct {
	Driver string

	PG     PGConfig
	SQLite SQLiteConfig
}

// PGConfig configures Postgres
type PGConfig struct {
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	ConnectRetries int
	PingTimeout    time.Duration
}

// SQLiteConfig configures the embedded database
type SQLiteConfig struct {
	Path        string
	BusyTimeout time.Duration
	WAL         bool
	LogSQL      bool
	SlowQueryMs int
}

// FromConfig reads STORE_DRIVER, SERVICE_PGSQL_* and SERVICE_SQLITE_* from root
func FromConfig(root config.Conf) Config {
	pg := root.Prefix("SERVICE_PGSQL_")
	lite := root.Prefix("SERVICE_SQLITE_")
	cfg := Config{
		Driver: root.Prefix("STORE_").MayEnum("DRIVER", DriverSQLite, DriverSQLite, DriverPostgres),
		SQLite: SQLiteConfig{
			Path:        lite.MayString("PATH", "data/batchtrace.db"),
			BusyTimeout: lite.MayDuration("BUSY_TIMEOUT", 5*time.Second),
			WAL:         lite.MayBool("WAL", true),
			LogSQL:      lite.MayBool("LOG_SQL", false),
			SlowQueryMs: lite.MayInt("SLOW_MS", 200),
		},
	}
	if cfg.Driver == DriverPostgres {
		cfg.PG = PGConfig{
			URL:            pg.MustString("DBURL"),
			MaxConns:       int32(pg.MayInt("MAX_CONNS", 4)),
			LogSQL:         pg.MayBool("LOG_SQL", false),
			SlowQueryMs:    pg.MayInt("SLOW_MS", 500),
			ConnectRetries: pg.MayInt("CONNECT_RETRIES", 20),
			PingTimeout:    pg.MayDuration("PING_TIMEOUT", 3*time.Second),
		}
	}
	return cfg
}
