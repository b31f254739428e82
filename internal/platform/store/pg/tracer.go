package pg

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"chimera/internal/platform/logger"
)

// QueryEvent is one traced statement
type QueryEvent struct {
	SQL       string
	Args      any
	ElapsedUS int64
	Err       error
	Slow      bool
}

// QueryTracer receives QueryEvents
type QueryTracer interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// Tracer logs every postgres statement
func Tracer(root logger.Logger) QueryTracer { return NamedTracer(root, "pg") }

// NamedTracer logs every statement under component
// the level is pinned to debug so LOG_SQL works whatever the root level is
func NamedTracer(root logger.Logger, component string) QueryTracer {
	return &zlTracer{
		log: root.Level(zerolog.DebugLevel).With().Str("component", component).Logger(),
		msg: component + " query",
	}
}

type zlTracer struct {
	log logger.Logger
	msg string
}

func (z *zlTracer) OnQuery(ctx context.Context, ev QueryEvent) {
	evt := z.log.Info()
	if ev.Slow {
		evt = z.log.Warn()
	}
	if id := logger.AnalysisID(ctx); id != "" {
		evt = evt.Str("analysis_id", id)
	}
	evt.Float64("elapsed_ms", float64(ev.ElapsedUS)/1000).
		Bool("slow", ev.Slow).
		Str("sql", compact(ev.SQL)).
		Interface("args", ev.Args).
		Err(ev.Err).
		Msg(z.msg)
}

// compact folds the whitespace of multi line statements onto one line
func compact(s string) string { return strings.Join(strings.Fields(s), " ") }
