// Package logger owns the process-wide zerolog root and its context helpers
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"

	"chimera/internal/platform/config/raw"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is zerolog's logger, aliased so callers never import zerolog for the type
type Logger = zerolog.Logger

// Options shape the root logger
// Format "console" is human readable, anything else emits JSON lines
type Options struct {
	Level        string
	Format       string
	Service      string
	Component    string
	Writer       io.Writer // os.Stdout when nil
	WithCaller   bool
	SampleEvery  int // keep one line in N, off below 2
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw view, config itself logs so it cannot be used here
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	return Options{
		Level:       env.Get("LEVEL", "debug"),
		Format:      strings.ToLower(env.Get("FORMAT", "console")),
		Service:     env.Get("SERVICE", "chimera"),
		Component:   env.Get("COMPONENT", ""),
		WithCaller:  env.GetBool("CALLER", false),
		SampleEvery: env.GetInt("SAMPLE_EVERY", 0),
	}
}

var (
	once sync.Once
	root *Logger
)

// Init builds the root logger, only the first call has any effect
func Init(opt Options) {
	once.Do(func() { root = build(opt) })
}

// Get returns the root, initialising it from the environment on first use
func Get() *Logger {
	once.Do(func() { root = build(FromEnv()) })
	return root
}

func build(opt Options) *Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	out := opt.Writer
	if out == nil {
		out = os.Stdout
	}
	if opt.Format == "console" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	fields := map[string]any{}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fields["go_version"] = bi.GoVersion
	}
	for k, v := range map[string]string{"service": opt.Service, "component": opt.Component} {
		if v != "" {
			fields[k] = v
		}
	}
	for k, v := range opt.StaticFields {
		fields[k] = v
	}

	with := zerolog.New(out).Level(parseLevel(opt.Level)).With().Timestamp().Fields(fields)
	if opt.WithCaller {
		with = with.Caller()
	}
	l := with.Logger()
	if opt.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.SampleEvery)})
	}
	return &l
}

// parseLevel falls back to debug for blank or unknown names
func parseLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || s == "" {
		return zerolog.DebugLevel
	}
	return lvl
}

type analysisKey struct{}

// WithAnalysis tags every line logged under ctx with the analysis id
func WithAnalysis(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, analysisKey{}, id)
}

// AnalysisID returns the id set by WithAnalysis, empty when absent
func AnalysisID(ctx context.Context) string {
	id, _ := ctx.Value(analysisKey{}).(string)
	return id
}

// C returns a child of the root carrying request_id and analysis_id from ctx
func C(ctx context.Context) *Logger {
	with := Get().With()
	if id := chimw.GetReqID(ctx); id != "" {
		with = with.Str("request_id", id)
	}
	if id := AnalysisID(ctx); id != "" {
		with = with.Str("analysis_id", id)
	}
	l := with.Logger()
	return &l
}

// Named returns a child with a component field
func Named(component string) *Logger {
	if component == "" {
		return Get()
	}
	l := Get().With().Str("component", component).Logger()
	return &l
}
