// Package trace logs SQL statements for the storage adapters
package trace

import (
	"context"
	"strings"

	"batchtrace/internal/platform/logger"

	"github.com/rs/zerolog"
)

// QueryEvent describes one statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives statement events
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Zerolog returns a tracer that logs every statement at info, slow ones at
// warn, regardless of the root level
func Zerolog(root logger.Logger, component string) QueryTracer {
	l := root.Level(zerolog.DebugLevel).With().Str("component", component).Logger()
	return &zlTracer{log: l}
}

type zlTracer struct{ log logger.Logger }

func (z *zlTracer) OnQuery(_ context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000.0).
		Bool("slow", ev.Slow).
		Str("sql", Compact(ev.SQL)).
		Interface("args", redact(ev.Args)).
		Err(ev.Err).
		Msg("sql query")
}

// Compact collapses whitespace runs so statements fit on one line
func Compact(s string) string { return strings.Join(strings.Fields(s), " ") }

// redact keeps long string args (stored documents) out of the log
func redact(args any) any {
	list, ok := args.([]any)
	if !ok {
		return args
	}
	out := make([]any, len(list))
	for i, a := range list {
		if s, ok := a.(string); ok && len(s) > 128 {
			out[i] = s[:64] + "...(truncated)"
			continue
		}
		out[i] = a
	}
	return out
}
