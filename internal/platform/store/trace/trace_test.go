package trace

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestCompact(t *testing.T) {
	in := "select value\n\t from kv_store\r\n  where key = $1"
	if got := Compact(in); got != "select value from kv_store where key = $1" {
		t.Fatalf("Compact = %q", got)
	}
}

func TestZerologTracer(t *testing.T) {
	var buf bytes.Buffer
	root := zerolog.New(&buf).Level(zerolog.ErrorLevel)
	tr := Zerolog(root, "sqlite")
	long := strings.Repeat("x", 500)
	tr.OnQuery(context.Background(), QueryEvent{SQL: "select 1", Args: []any{"k", long}, ElapsedUS: 1500, Slow: true, Err: errors.New("boom")})

	out := buf.String()
	for _, want := range []string{`"component":"sqlite"`, `"level":"warn"`, `"sql":"select 1"`, `truncated`, `"error":"boom"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %s in %s", want, out)
		}
	}
	if strings.Contains(out, long) {
		t.Fatal("long argument should be truncated")
	}
}
