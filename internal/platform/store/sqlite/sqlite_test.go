package sqlite

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDSN(t *testing.T) {
	got := DSN(Config{Path: "/tmp/x.db", BusyTimeout: 2 * time.Second, WAL: true})
	for _, want := range []string{"file:/tmp/x.db?", "busy_timeout%282000%29", "journal_mode%28WAL%29"} {
		if !strings.Contains(got, want) {
			t.Fatalf("DSN %q missing %q", got, want)
		}
	}
	if strings.Contains(DSN(Config{Path: ":memory:", WAL: true}), "journal_mode") {
		t.Fatal("memory databases skip WAL")
	}
}

func TestOpen_CreatesFileAndPings(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "data.db")
	db, err := Open(context.Background(), Config{Path: p, WAL: true})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`create table t (v text)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := db.Exec(`insert into t (v) values (?)`, "a"); err != nil {
		t.Fatalf("insert: %v", err)
	}
	var v string
	if err := db.QueryRow(`select v from t`).Scan(&v); err != nil || v != "a" {
		t.Fatalf("select = %q, %v", v, err)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(context.Background(), Config{}); err == nil {
		t.Fatal("expected error for empty path")
	}
}
