// Package service runs the consumer verification flow
package service

import (
	"context"
	"strings"
	"time"

	"batchtrace/internal/adapters/imagedit"
	"batchtrace/internal/core/packimage"
	"batchtrace/internal/core/submission"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/logger"
	"batchtrace/internal/platform/metrics"
	catalogdom "batchtrace/internal/services/catalog/domain"
	subdom "batchtrace/internal/services/submissions/domain"
	"batchtrace/internal/services/verify/domain"

	"github.com/google/uuid"
)

// Service defines the service contract for verification
type Service interface{ domain.ServicePort }

// Config bounds the session table
type Config struct {
	SessionTTL  time.Duration
	MaxSessions int
}

// Svc implements the Service interface
type Svc struct {
	loader   catalogdom.LoaderPort
	recorder subdom.RecorderPort
	editor   imagedit.Editor
	sessions *sessions
	now      func() time.Time
}

// New wires the flow. editor may be nil when image editing is off
func New(loader catalogdom.LoaderPort, recorder subdom.RecorderPort, editor imagedit.Editor, cfg Config, now func() time.Time) *Svc {
	if loader == nil {
		panic("verify.Service requires a non nil catalog loader")
	}
	if recorder == nil {
		panic("verify.Service requires a non nil submission recorder")
	}
	if editor == nil {
		editor = imagedit.Disabled{}
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 30 * time.Minute
	}
	if now == nil {
		now = time.Now
	}
	return &Svc{
		loader:   loader,
		recorder: recorder,
		editor:   editor,
		sessions: newSessions(cfg.SessionTTL, cfg.MaxSessions, now),
		now:      now,
	}
}

// Open loads the catalog and starts a session over it. An empty catalog
// means the service cannot verify anything
func (s *Svc) Open(ctx context.Context) (domain.Session, error) {
	snap := s.loader.Load(ctx)
	if snap.Empty() {
		return domain.Session{}, perr.Unavailablef(domain.MsgUnavailable)
	}
	v := s.sessions.open(snap.Index, snap.LoadedAt)
	logger.C(ctx).Info().Str("session_id", v.ID).Int("entries", v.Entries).Msg("verification session opened")
	return v, nil
}

// Submit matches in against the session catalog and records the attempt
// whether or not it matched
func (s *Svc) Submit(ctx context.Context, sessionID string, in domain.SubmitInput, userAgent string) (domain.SubmitResult, error) {
	ix, ok := s.sessions.get(sessionID)
	if !ok {
		return domain.SubmitResult{}, perr.NotFoundf("verification session not found or expired")
	}
	ctx = logger.WithSession(ctx, sessionID)
	log := logger.C(ctx)

	entry, matched := ix.Match(in.BatchCode)
	log.Debug().Str("input", strings.TrimSpace(in.BatchCode)).Bool("matched", matched).Msg("batch lookup")

	sub := submission.Submission{
		ID:         uuid.NewString(),
		Timestamp:  submission.Stamp(s.now()),
		FullName:   in.FullName,
		Mobile:     in.Mobile,
		Email:      in.Email,
		PinCode:    in.PinCode,
		BatchCode:  in.BatchCode,
		Status:     submission.StatusFailure,
		DeviceType: submission.DeviceType(userAgent),
		PackImage:  s.packImage(ctx, in.PackImage),
	}
	res := domain.SubmitResult{SubmissionID: sub.ID, Message: domain.MsgNotFound}
	if matched {
		sub.Status = submission.StatusSuccess
		sub.MatchedURL = entry.ReportURL
		res.Entry = &entry
		res.Message = domain.MsgVerified
	}
	res.Status = sub.Status

	saved := s.recorder.Save(ctx, sub)
	res.Logged, res.Reason = saved.Logged, saved.Reason
	metrics.VerificationsTotal.WithLabelValues(string(sub.Status)).Inc()
	return res, nil
}

// packImage re-encodes a decodable photo and keeps anything else as sent
func (s *Svc) packImage(ctx context.Context, img string) string {
	if img == "" {
		return ""
	}
	out, err := packimage.NormalizeDataURL(img)
	if err != nil {
		logger.C(ctx).Warn().Err(err).Int("bytes", len(img)).Msg("pack image kept as uploaded")
		return img
	}
	return out
}

// EditImage runs a pack photo through the image editor
func (s *Svc) EditImage(ctx context.Context, in domain.EditInput) (domain.EditResult, error) {
	out, err := s.editor.Edit(ctx, in.Image, in.Prompt)
	if err != nil {
		return domain.EditResult{}, err
	}
	return domain.EditResult{Image: out}, nil
}

// OpenSessions reports how many sessions are live
func (s *Svc) OpenSessions() int { return s.sessions.len() }
