// Package service contains the submission store workflows
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"batchtrace/internal/core/csvgrid"
	"batchtrace/internal/core/query"
	"batchtrace/internal/core/submission"
	"batchtrace/internal/modkit/repokit"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/logger"
	"batchtrace/internal/platform/metrics"
	"batchtrace/internal/services/submissions/domain"
	"batchtrace/internal/services/submissions/repo"
)

// Service defines the service contract for submissions
type Service interface{ domain.ServicePort }

// Config controls the store key and exports
type Config struct {
	Key          string
	ExportPrefix string
	// Location evaluates calendar ranges
	Location *time.Location
	// Attempts bounds Save retries on lock contention
	Attempts int
}

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	cfg    Config
	now    func() time.Time
}

// New creates a new submissions service. now may be nil
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], cfg Config, now func() time.Time) *Svc {
	if db == nil {
		panic("submissions.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("submissions.Service requires a non nil Repo binder")
	}
	if cfg.Key == "" {
		cfg.Key = "submissions"
	}
	if cfg.ExportPrefix == "" {
		cfg.ExportPrefix = "adi_bharat_export"
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Attempts <= 0 {
		cfg.Attempts = 3
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, cfg: cfg, now: now}
}

// EnsureSchema creates the backing table
func (s *Svc) EnsureSchema(ctx context.Context) error {
	return s.Repo.EnsureSchema(ctx)
}

// Save appends sub inside one transaction. A corrupt stored document is
// left untouched and the save is reported as not logged
func (s *Svc) Save(ctx context.Context, sub submission.Submission) domain.SaveResult {
	log := logger.C(ctx)
	var err error
	for attempt := 1; attempt <= s.cfg.Attempts; attempt++ {
		err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
			return s.appendTo(ctx, s.binder.Bind(q), sub)
		})
		if err == nil || !perr.Retryable(err) || ctx.Err() != nil {
			break
		}
		log.Warn().Err(err).Int("attempt", attempt).Msg("submission save contended, retrying")
	}
	metrics.StoreOpsTotal.WithLabelValues("save", metrics.Outcome(err)).Inc()
	if err != nil {
		log.Error().Err(err).Str("submission_id", sub.ID).Msg("submission not logged")
		return domain.SaveResult{Logged: false, Reason: perr.WireFrom(err).Message}
	}
	log.Debug().Str("submission_id", sub.ID).Str("status", string(sub.Status)).Msg("submission logged")
	return domain.SaveResult{Logged: true}
}

func (s *Svc) appendTo(ctx context.Context, r repo.Repo, sub submission.Submission) error {
	raw, err := r.Lock(ctx, s.cfg.Key, "[]")
	if err != nil {
		return err
	}
	items, err := decode(raw)
	if err != nil {
		return err
	}
	doc, err := json.Marshal(append(items, sub))
	if err != nil {
		return perr.Wrapf(err, perr.ErrorCodeJSON, "encode submissions")
	}
	return r.Put(ctx, s.cfg.Key, string(doc))
}

// All reads every stored submission in insertion order
func (s *Svc) All(ctx context.Context) domain.LoadResult {
	raw, ok, err := s.Repo.Get(ctx, s.cfg.Key)
	metrics.StoreOpsTotal.WithLabelValues("load", metrics.Outcome(err)).Inc()
	if err != nil {
		logger.C(ctx).Error().Err(err).Msg("submissions unreadable")
		return domain.LoadResult{Items: []submission.Submission{}, Degraded: true, Reason: perr.WireFrom(err).Message}
	}
	if !ok {
		return domain.LoadResult{Items: []submission.Submission{}}
	}
	items, err := decode(raw)
	if err != nil {
		logger.C(ctx).Error().Err(err).Int("bytes", len(raw)).Msg("stored submissions corrupt")
		return domain.LoadResult{Items: []submission.Submission{}, Degraded: true, Reason: perr.WireFrom(err).Message}
	}
	return domain.LoadResult{Items: items}
}

// Clear removes the stored document
func (s *Svc) Clear(ctx context.Context) error {
	err := s.Repo.Delete(ctx, s.cfg.Key)
	metrics.StoreOpsTotal.WithLabelValues("clear", metrics.Outcome(err)).Inc()
	if err != nil {
		return err
	}
	logger.C(ctx).Info().Str("key", s.cfg.Key).Msg("submissions cleared")
	return nil
}

// List filters the stored submissions and orders them newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) domain.ListResult {
	all := s.All(ctx)
	f := in.Filter()
	items := query.SortNewest(query.Apply(all.Items, f, s.now(), s.cfg.Location))
	out := domain.ListResult{
		Items:    items,
		Total:    len(all.Items),
		Matched:  len(items),
		Range:    string(f.Range),
		Degraded: all.Degraded,
		Reason:   all.Reason,
	}
	for _, it := range items {
		if it.Status == submission.StatusSuccess {
			out.Success++
		} else {
			out.Failure++
		}
	}
	return out
}

// Export renders List as a quoted CSV download. Nothing to export is not found
func (s *Svc) Export(ctx context.Context, in domain.ListInput) (domain.Export, error) {
	res := s.List(ctx, in)
	if len(res.Items) == 0 {
		return domain.Export{}, perr.NotFoundf("no submissions match the filter")
	}
	var buf bytes.Buffer
	if err := csvgrid.Write(&buf, submission.ExportRows(res.Items)); err != nil {
		return domain.Export{}, perr.Wrapf(err, perr.ErrorCodeUnknown, "render export")
	}
	return domain.Export{
		Filename: s.Filename(query.RangeKind(res.Range)),
		Rows:     len(res.Items),
		Data:     buf.Bytes(),
	}, nil
}

// Filename is {prefix}_{range}_{YYYY-MM-DD}.csv dated in UTC
func (s *Svc) Filename(r query.RangeKind) string {
	return s.cfg.ExportPrefix + "_" + string(r) + "_" + s.now().UTC().Format(query.DateLayout) + ".csv"
}

func decode(raw string) ([]submission.Submission, error) {
	if strings.TrimSpace(raw) == "" {
		return []submission.Submission{}, nil
	}
	var items []submission.Submission
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeCorrupt, "stored submissions are corrupt")
	}
	if items == nil {
		items = []submission.Submission{}
	}
	return items, nil
}
