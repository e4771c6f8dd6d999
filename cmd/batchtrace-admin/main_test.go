package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"batchtrace/internal/services/submissions/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--env", filepath.Join(t.TempDir(), "none.env")}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func useTempStore(t *testing.T) {
	t.Helper()
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SERVICE_SQLITE_PATH", filepath.Join(t.TempDir(), "admin.db"))
}

func TestClearRequiresYes(t *testing.T) {
	useTempStore(t)
	if _, err := run(t, "submissions", "clear"); !errors.Is(err, errNeedConfirm) {
		t.Fatalf("err = %v, want errNeedConfirm", err)
	}
	out, err := run(t, "submissions", "clear", "--yes")
	if err != nil {
		t.Fatalf("clear --yes: %v", err)
	}
	if !strings.Contains(out, "submissions cleared") {
		t.Fatalf("out = %q", out)
	}
}

func TestListEmptyStoreJSON(t *testing.T) {
	useTempStore(t)
	out, err := run(t, "submissions", "list", "--json", "--range", "month")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var res domain.ListResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("decode %q: %v", out, err)
	}
	if res.Total != 0 || res.Range != "month" || len(res.Items) != 0 {
		t.Fatalf("res = %+v", res)
	}
}

func TestExportNothingFails(t *testing.T) {
	useTempStore(t)
	if _, err := run(t, "subs", "export", "-o", "-"); err == nil {
		t.Fatal("want error exporting an empty store")
	}
}
