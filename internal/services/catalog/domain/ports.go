// Package domain holds the catalog load contract shared with other modules
package domain

import (
	"context"
	"time"

	"batchtrace/internal/core/catalog"
)

// Outcome labels a load for logs and metrics
type Outcome string

// Load outcomes
const (
	OutcomeOK         Outcome = "ok"
	OutcomeEmpty      Outcome = "empty"
	OutcomeFetchError Outcome = "fetch_error"
	OutcomeBadColumns Outcome = "bad_columns"
)

// Snapshot is one loaded catalog. A failed load is an empty snapshot, never an error
type Snapshot struct {
	Index    *catalog.Index
	Stats    catalog.Stats
	Outcome  Outcome
	Source   string
	LoadedAt time.Time
	Sample   []string
}

// Empty reports whether nothing can match against s
func (s Snapshot) Empty() bool { return s.Index == nil || s.Index.Len() == 0 }

// LoaderPort fetches and maps the remote catalog
type LoaderPort interface {
	Load(ctx context.Context) Snapshot
}
