package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"batchtrace/internal/core/submission"
	perr "batchtrace/internal/platform/errors"
	"batchtrace/internal/platform/store"
	"batchtrace/internal/services/submissions/domain"
	"batchtrace/internal/services/submissions/repo"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
)

var now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newSvc(t *testing.T) (*Svc, *store.Store) {
	t.Helper()
	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		Driver: store.DriverSQLite,
		SQLite: store.SQLiteConfig{Path: filepath.Join(t.TempDir(), "bt.db")},
	}, store.WithLogger(zerolog.Nop()))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close(ctx) })

	s := New(st.DB, repo.NewSQLite(), Config{Location: time.UTC}, func() time.Time { return now })
	if err := s.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	return s, st
}

func sub(id, ts, name, mobile, code string, st submission.Status) submission.Submission {
	s := submission.Submission{
		ID: id, Timestamp: ts, FullName: name, Mobile: mobile, PinCode: "560001",
		BatchCode: code, Status: st, DeviceType: submission.DeviceDesktop,
	}
	if st == submission.StatusSuccess {
		s.MatchedURL = "https://r/" + code
	}
	return s
}

func TestSaveAppendsInOrder(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()

	if got := s.All(ctx); len(got.Items) != 0 || got.Degraded {
		t.Fatalf("fresh store = %+v", got)
	}

	a := sub("a", "2024-05-15T10:00:00.000Z", "Asha", "9876500001", "B-1", submission.StatusSuccess)
	b := sub("b", "2024-05-15T09:00:00.000Z", "Ravi", "9876500002", "ZZ", submission.StatusFailure)
	for _, x := range []submission.Submission{a, b} {
		if res := s.Save(ctx, x); !res.Logged || res.Reason != "" {
			t.Fatalf("save %s = %+v", x.ID, res)
		}
	}
	got := s.All(ctx)
	if diff := cmp.Diff([]submission.Submission{a, b}, got.Items); diff != "" {
		t.Fatalf("items (-want +got):\n%s", diff)
	}
}

func TestConcurrentSavesAreNotLost(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()
	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res := s.Save(ctx, sub(fmt.Sprint(i), submission.Stamp(now), "N", "1", "B", submission.StatusFailure))
			if !res.Logged {
				t.Errorf("save %d = %+v", i, res)
			}
		}(i)
	}
	wg.Wait()
	if got := len(s.All(ctx).Items); got != n {
		t.Fatalf("stored %d, want %d", got, n)
	}
}

func TestCorruptDocument(t *testing.T) {
	s, st := newSvc(t)
	ctx := context.Background()
	if _, err := st.DB.Exec(ctx, `INSERT INTO kv_store (key, value) VALUES (?, ?)`, "submissions", `{not json`); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got := s.All(ctx)
	if !got.Degraded || len(got.Items) != 0 || !strings.Contains(got.Reason, "corrupt") {
		t.Fatalf("load = %+v", got)
	}

	res := s.Save(ctx, sub("x", submission.Stamp(now), "N", "1", "B", submission.StatusFailure))
	if res.Logged || !strings.Contains(res.Reason, "corrupt") {
		t.Fatalf("save over corrupt = %+v", res)
	}

	raw, ok, err := s.Repo.Get(ctx, "submissions")
	if err != nil || !ok || raw != `{not json` {
		t.Fatalf("document overwritten: %q %v %v", raw, ok, err)
	}

	l := s.List(ctx, domain.ListInput{})
	if !l.Degraded || l.Total != 0 {
		t.Fatalf("list = %+v", l)
	}
}

func TestClear(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()
	s.Save(ctx, sub("a", submission.Stamp(now), "N", "1", "B", submission.StatusFailure))
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear twice: %v", err)
	}
	if got := s.All(ctx); len(got.Items) != 0 || got.Degraded {
		t.Fatalf("after clear = %+v", got)
	}
	if _, ok, _ := s.Repo.Get(ctx, "submissions"); ok {
		t.Fatalf("key still present")
	}
}

func TestListFiltersAndSorts(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()
	seed := []submission.Submission{
		sub("old", "2024-01-10T08:00:00.000Z", "Meera Shah", "9000000001", "B-OLD", submission.StatusSuccess),
		sub("t1", "2024-05-15T08:00:00.000Z", "Asha Rao", "9000000002", "b-777", submission.StatusSuccess),
		sub("t2", "2024-05-15T11:30:00.000Z", "Ravi Kumar", "9000000003", "NOPE", submission.StatusFailure),
		sub("y", "2024-05-14T23:00:00.000Z", "Kiran", "9000000004", "B-9", submission.StatusFailure),
	}
	for _, x := range seed {
		if res := s.Save(ctx, x); !res.Logged {
			t.Fatalf("save: %+v", res)
		}
	}

	cases := []struct {
		name string
		in   domain.ListInput
		ids  []string
		ok   int
		bad  int
	}{
		{"all newest first", domain.ListInput{}, []string{"t2", "t1", "y", "old"}, 2, 2},
		{"today", domain.ListInput{Range: "today"}, []string{"t2", "t1"}, 1, 1},
		{"search batch case insensitive", domain.ListInput{Q: "B-777"}, []string{"t1"}, 1, 0},
		{"search mobile", domain.ListInput{Q: "0003"}, []string{"t2"}, 0, 1},
		{"custom inclusive end", domain.ListInput{Range: "custom", Start: "2024-01-10", End: "2024-01-10"}, []string{"old"}, 1, 0},
		{"unknown range is all", domain.ListInput{Range: "decade"}, []string{"t2", "t1", "y", "old"}, 2, 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := s.List(ctx, tc.in)
			ids := make([]string, 0, len(got.Items))
			for _, it := range got.Items {
				ids = append(ids, it.ID)
			}
			if diff := cmp.Diff(tc.ids, ids); diff != "" {
				t.Fatalf("ids (-want +got):\n%s", diff)
			}
			if got.Total != 4 || got.Matched != len(tc.ids) || got.Success != tc.ok || got.Failure != tc.bad {
				t.Fatalf("counts = %+v", got)
			}
		})
	}
}

func TestExport(t *testing.T) {
	s, _ := newSvc(t)
	ctx := context.Background()

	if _, err := s.Export(ctx, domain.ListInput{Range: "today"}); !perr.IsCode(err, perr.ErrorCodeNotFound) {
		t.Fatalf("empty export err = %v", err)
	}

	x := sub("a", "2024-05-15T10:00:00.000Z", `Asha "AJ" Rao`, "9876500001", "B-1", submission.StatusSuccess)
	s.Save(ctx, x)
	out, err := s.Export(ctx, domain.ListInput{Range: "today"})
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if out.Filename != "adi_bharat_export_today_2024-05-15.csv" || out.Rows != 1 {
		t.Fatalf("export meta = %q %d", out.Filename, out.Rows)
	}
	want := `"Timestamp","Full Name","Mobile","Email","PIN","Batch Code","Status","Matched URL","Device"` + "\n" +
		`"2024-05-15T10:00:00.000Z","Asha ""AJ"" Rao","9876500001","","560001","B-1","SUCCESS","https://r/B-1","Desktop"`
	if diff := cmp.Diff(want, string(out.Data)); diff != "" {
		t.Fatalf("csv (-want +got):\n%s", diff)
	}
}

func TestNewPanics(t *testing.T) {
	for name, fn := range map[string]func(){
		"nil db":     func() { New(nil, repo.NewSQLite(), Config{}, nil) },
		"nil binder": func() { New(&store.SQLAdapter{}, nil, Config{}, nil) },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatalf("want panic")
				}
			}()
			fn()
		})
	}
}
