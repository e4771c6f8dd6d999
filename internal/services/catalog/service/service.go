// Package service fetches the catalog feed and maps it to batch entries
package service

import (
	"context"
	"fmt"
	"time"

	"batchtrace/internal/adapters/sheets"
	"batchtrace/internal/core/catalog"
	"batchtrace/internal/core/csvgrid"
	"batchtrace/internal/platform/logger"
	"batchtrace/internal/platform/metrics"
	"batchtrace/internal/services/catalog/domain"

	"golang.org/x/sync/singleflight"
)

// sampleSize is how many leading batch codes a load logs
const sampleSize = 5

// Config controls how rows become entries
type Config struct {
	Columns ColumnSource

	ProductName    string
	LabName        string
	TestDateLayout string
	Location       *time.Location
}

// ColumnSource yields the column map for a load. It is resolved once at
// construction so a bad map disables every load the same way
type ColumnSource func() (catalog.ColumnMap, error)

// StaticColumns always yields cm
func StaticColumns(cm catalog.ColumnMap) ColumnSource {
	return func() (catalog.ColumnMap, error) { return cm, nil }
}

// Loader fetches, parses and maps the catalog on every Load
type Loader struct {
	fetch   sheets.Fetcher
	cols    catalog.ColumnMap
	colsErr error
	cfg     Config
	now     func() time.Time
	log     logger.Logger

	group singleflight.Group
}

// New builds a Loader. now may be nil
func New(f sheets.Fetcher, cfg Config, now func() time.Time) *Loader {
	if f == nil {
		panic("catalog.Loader requires a non nil Fetcher")
	}
	if now == nil {
		now = time.Now
	}
	if cfg.Columns == nil {
		cfg.Columns = StaticColumns(catalog.DefaultColumns())
	}
	if cfg.TestDateLayout == "" {
		cfg.TestDateLayout = "02/01/2006"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	l := &Loader{fetch: f, cfg: cfg, now: now, log: *logger.Named("catalog")}
	cm, err := cfg.Columns()
	if err == nil {
		err = cm.Validate()
	}
	if err != nil {
		l.colsErr = err
		l.log.Error().Err(err).Msg("column map rejected, catalog loads disabled")
	}
	l.cols = cm
	return l
}

// Load returns the current catalog. Concurrent callers share one fetch
func (l *Loader) Load(ctx context.Context) domain.Snapshot {
	v, _, _ := l.group.Do("catalog", func() (any, error) {
		return l.load(ctx), nil
	})
	return v.(domain.Snapshot)
}

func (l *Loader) load(ctx context.Context) domain.Snapshot {
	start := l.now()
	snap := domain.Snapshot{
		Index:    catalog.NewIndex(nil),
		Source:   source(l.fetch),
		LoadedAt: start,
	}
	defer func() {
		metrics.CatalogLoadsTotal.WithLabelValues(string(snap.Outcome)).Inc()
		metrics.CatalogEntries.Set(float64(snap.Stats.Entries))
		metrics.CatalogLoadSeconds.Observe(time.Since(start).Seconds())
	}()

	log := logger.C(ctx).With().Str("component", "catalog").Str("source", snap.Source).Logger()

	if l.colsErr != nil {
		snap.Outcome = domain.OutcomeBadColumns
		log.Error().Err(l.colsErr).Msg("catalog load skipped")
		return snap
	}

	log.Info().Msg("fetching catalog")
	body, err := l.fetch.Fetch(ctx)
	if err != nil {
		snap.Outcome = domain.OutcomeFetchError
		log.Error().Err(err).Msg("catalog fetch failed")
		return snap
	}

	rows := csvgrid.Parse(body)
	entries, st := catalog.FromRows(rows, l.cols, catalog.Defaults{
		ProductName: l.cfg.ProductName,
		LabName:     l.cfg.LabName,
		TestDate:    start.In(l.cfg.Location).Format(l.cfg.TestDateLayout),
	})
	snap.Stats = st
	snap.Index = catalog.NewIndex(entries)
	snap.Sample = catalog.FirstCodes(entries, sampleSize)

	if len(entries) == 0 {
		snap.Outcome = domain.OutcomeEmpty
		log.Warn().Int("rows", st.Rows).Int("dropped", st.Dropped).Msg("catalog has no usable entries")
		return snap
	}
	snap.Outcome = domain.OutcomeOK
	log.Info().
		Int("rows", st.Rows).
		Int("entries", st.Entries).
		Int("dropped", st.Dropped).
		Strs("first_codes", snap.Sample).
		Msg("catalog loaded")
	return snap
}

func source(f sheets.Fetcher) string {
	if s, ok := f.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", f)
}
