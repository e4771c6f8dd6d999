// Package modkit provides module wiring and core deps
package modkit

import (
	"time"

	"batchtrace/internal/modkit/repokit"
	"batchtrace/internal/platform/config"
	"batchtrace/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
type Deps struct {
	Log logger.Logger
	Cfg config.Conf

	// DB is the opened store, nil when a module runs without persistence
	DB repokit.TxRunner
	// Dialect names the SQL flavour behind DB (repokit.DialectSQLite or repokit.DialectPostgres)
	Dialect string

	// Now is the clock, time.Now when nil
	Now func() time.Time
}

// Clock returns d.Now or time.Now
func (d Deps) Clock() func() time.Time {
	if d.Now != nil {
		return d.Now
	}
	return time.Now
}
