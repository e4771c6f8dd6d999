package service

import (
	"sync"
	"time"

	"batchtrace/internal/core/catalog"
	"batchtrace/internal/platform/metrics"
	"batchtrace/internal/services/verify/domain"

	"github.com/google/uuid"
)

type session struct {
	view  domain.Session
	index *catalog.Index
}

// sessions holds open sessions in memory. Expired sessions are dropped
// lazily on access and on open
type sessions struct {
	mu    sync.Mutex
	m     map[string]session
	ttl   time.Duration
	limit int
	now   func() time.Time
}

func newSessions(ttl time.Duration, limit int, now func() time.Time) *sessions {
	return &sessions{m: make(map[string]session), ttl: ttl, limit: limit, now: now}
}

// open stores ix under a fresh id. At capacity the session closest to
// expiry is evicted
func (s *sessions) open(ix *catalog.Index, loadedAt time.Time) domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweepLocked(now)
	if s.limit > 0 && len(s.m) >= s.limit {
		var oldest string
		for id, ss := range s.m {
			if oldest == "" || ss.view.ExpiresAt.Before(s.m[oldest].view.ExpiresAt) {
				oldest = id
			}
		}
		delete(s.m, oldest)
	}

	v := domain.Session{
		ID:        uuid.NewString(),
		Entries:   ix.Len(),
		LoadedAt:  loadedAt,
		ExpiresAt: now.Add(s.ttl),
	}
	s.m[v.ID] = session{view: v, index: ix}
	metrics.ActiveSessions.Set(float64(len(s.m)))
	return v
}

// get returns the catalog of a live session
func (s *sessions) get(id string) (*catalog.Index, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ss, ok := s.m[id]
	if !ok {
		return nil, false
	}
	if !s.now().Before(ss.view.ExpiresAt) {
		delete(s.m, id)
		metrics.ActiveSessions.Set(float64(len(s.m)))
		return nil, false
	}
	return ss.index, true
}

func (s *sessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}

func (s *sessions) sweepLocked(now time.Time) {
	for id, ss := range s.m {
		if !now.Before(ss.view.ExpiresAt) {
			delete(s.m, id)
		}
	}
}
