// Package testkit holds assertion helpers and seams for tests
package testkit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// MustPanic fails the test unless fn panics
func MustPanic(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic, got none")
		}
	}()
	fn()
}

// MustContain fails when needle is absent and dumps haystack to a temp file
func MustContain(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		p := filepath.Join(t.TempDir(), "haystack.txt")
		_ = os.WriteFile(p, []byte(haystack), 0o600)
		t.Fatalf("expected output to contain %q\nfull output written to %s", needle, p)
	}
}

// MustTime parses an RFC3339 timestamp or fails the test
func MustTime(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		t.Fatalf("bad time %q: %v", s, err)
	}
	return ts
}

// Clock returns a now func pinned to ts
func Clock(ts time.Time) func() time.Time { return func() time.Time { return ts } }
