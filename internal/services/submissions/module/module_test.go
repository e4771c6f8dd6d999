package module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"batchtrace/internal/core/submission"
	"batchtrace/internal/modkit"
	"batchtrace/internal/modkit/httpkit"
	"batchtrace/internal/modkit/module"
	"batchtrace/internal/platform/config"
	phttp "batchtrace/internal/platform/net/http"
	"batchtrace/internal/platform/store"
	"batchtrace/internal/services/submissions/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

var now = time.Date(2024, 5, 15, 12, 0, 0, 0, time.UTC)

func newModule(t *testing.T, token string) (*Module, *chi.Mux) {
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

	m := New(modkit.Deps{
		Log:     zerolog.Nop(),
		DB:      st.DB,
		Dialect: st.Driver,
		Now:     func() time.Time { return now },
	}, Options{Key: "submissions", Location: time.UTC, AdminToken: token})
	if err := m.Service().EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	mux := chi.NewRouter()
	httpkit.MountAPIV1(phttp.AdaptChi(mux), nil, func(api httpkit.Router) { m.MountRoutes(api) })
	return m, mux
}

func do(mux http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestAdminRoutes(t *testing.T) {
	m, mux := newModule(t, "s3cret")
	rec := m.Service().Save(context.Background(), submission.Submission{
		ID: "a", Timestamp: "2024-05-15T10:00:00.000Z", FullName: "Asha", Mobile: "9876500001",
		PinCode: "560001", BatchCode: "B-1", Status: submission.StatusSuccess,
		MatchedURL: "https://r/1", DeviceType: submission.DeviceMobile,
	})
	if !rec.Logged {
		t.Fatalf("seed: %+v", rec)
	}

	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions", ""); r.Code != http.StatusUnauthorized {
		t.Fatalf("no token = %d", r.Code)
	}
	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions", "wrong"); r.Code != http.StatusUnauthorized {
		t.Fatalf("wrong token = %d", r.Code)
	}

	r := do(mux, http.MethodGet, "/api/v1/admin/submissions?range=today&q=asha", "s3cret")
	if r.Code != http.StatusOK {
		t.Fatalf("list = %d %s", r.Code, r.Body.String())
	}
	var env struct {
		Data domain.ListResult `json:"data"`
	}
	if err := json.Unmarshal(r.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Data.Matched != 1 || env.Data.Range != "today" || env.Data.Items[0].ID != "a" {
		t.Fatalf("list = %+v", env.Data)
	}

	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions?range=fortnight", "s3cret"); r.Code != http.StatusBadRequest {
		t.Fatalf("bad range = %d", r.Code)
	}
	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions?range=custom&start=15-05-2024", "s3cret"); r.Code != http.StatusBadRequest {
		t.Fatalf("bad start = %d", r.Code)
	}

	r = do(mux, http.MethodGet, "/api/v1/admin/submissions/export?range=month", "s3cret")
	if r.Code != http.StatusOK {
		t.Fatalf("export = %d %s", r.Code, r.Body.String())
	}
	if got := r.Header().Get("Content-Disposition"); got != `attachment; filename="adi_bharat_export_month_2024-05-15.csv"` {
		t.Fatalf("disposition = %q", got)
	}
	if !strings.HasPrefix(r.Body.String(), `"Timestamp","Full Name"`) || r.Header().Get("X-Export-Rows") != "1" {
		t.Fatalf("export body = %q", r.Body.String())
	}

	if r := do(mux, http.MethodDelete, "/api/v1/admin/submissions", "s3cret"); r.Code != http.StatusNoContent {
		t.Fatalf("clear = %d", r.Code)
	}
	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions/export", "s3cret"); r.Code != http.StatusNotFound {
		t.Fatalf("export after clear = %d", r.Code)
	}
}

func TestAdminRoutesUnmountedWithoutToken(t *testing.T) {
	m, mux := newModule(t, "")
	if r := do(mux, http.MethodGet, "/api/v1/admin/submissions", ""); r.Code != http.StatusNotFound {
		t.Fatalf("status = %d", r.Code)
	}
	if _, ok := module.PortsOf[domain.RecorderPort](m); !ok {
		t.Fatalf("recorder port missing")
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_SUBMISSIONS_KEY", "")
	t.Setenv("CORE_ADMIN_TOKEN", "tok")
	o := FromConfig(config.New())
	if o.Key != "submissions" || o.AdminToken != "tok" || o.ExportPrefix != "adi_bharat_export" {
		t.Fatalf("options = %+v", o)
	}
}
