package logger

import (
	"bytes"
	"context"
	"testing"

	kit "chimera/internal/platform/testkit"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"trace":    zerolog.TraceLevel,
		"DEBUG":    zerolog.DebugLevel,
		" info ":   zerolog.InfoLevel,
		"warn":     zerolog.WarnLevel,
		"warning":  zerolog.WarnLevel,
		"error":    zerolog.ErrorLevel,
		"fatal":    zerolog.FatalLevel,
		"panic":    zerolog.PanicLevel,
		"":         zerolog.DebugLevel,
		"nonsense": zerolog.DebugLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{
		Level:        "info",
		Format:       "json",
		Service:      "chimera-test",
		Component:    "root",
		Writer:       &buf,
		WithCaller:   true,
		StaticFields: map[string]string{"build": "dev"},
	})

	l.Debug().Msg("filtered")
	l.Info().Str("k", "v").Msg("kept")

	out := buf.String()
	if bytes.Contains(buf.Bytes(), []byte("filtered")) {
		t.Fatalf("debug line passed an info logger: %s", out)
	}
	for _, want := range []string{
		`"message":"kept"`,
		`"service":"chimera-test"`,
		`"component":"root"`,
		`"build":"dev"`,
		`"k":"v"`,
		`"caller":`,
	} {
		kit.MustContain(t, out, want)
	}
}

func TestBuild_Console(t *testing.T) {
	var buf bytes.Buffer
	l := build(Options{Format: "console", Writer: &buf})
	l.Warn().Msg("console-line")
	kit.MustContain(t, buf.String(), "console-line")
	if bytes.HasPrefix(bytes.TrimSpace(buf.Bytes()), []byte("{")) {
		t.Fatalf("console format wrote JSON: %s", buf.String())
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_SERVICE", "svc-b")
	t.Setenv("LOG_COMPONENT", "comp-b")
	t.Setenv("LOG_CALLER", "yes")
	t.Setenv("LOG_SAMPLE_EVERY", "5")

	got := FromEnv()
	want := Options{Level: "warn", Format: "json", Service: "svc-b", Component: "comp-b", WithCaller: true, SampleEvery: 5}
	if got.Level != want.Level || got.Format != want.Format || got.Service != want.Service ||
		got.Component != want.Component || got.WithCaller != want.WithCaller || got.SampleEvery != want.SampleEvery {
		t.Fatalf("FromEnv = %+v, want %+v", got, want)
	}
}

func TestC_ContextFields(t *testing.T) {
	tests := []struct {
		name  string
		ctx   context.Context
		wants []string
		nots  []string
	}{
		{
			name:  "request and analysis",
			ctx:   WithAnalysis(context.WithValue(context.Background(), chimw.RequestIDKey, "req-42"), "a-abc"),
			wants: []string{`"request_id":"req-42"`, `"analysis_id":"a-abc"`},
		},
		{
			name: "bare context",
			ctx:  context.Background(),
			nots: []string{"request_id", "analysis_id"},
		},
		{
			name: "empty analysis id is ignored",
			ctx:  WithAnalysis(context.Background(), ""),
			nots: []string{"analysis_id"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			// Output swaps the writer and keeps the context fields
			l := C(tc.ctx).Output(&buf)
			l.Error().Msg("line")
			for _, w := range tc.wants {
				kit.MustContain(t, buf.String(), w)
			}
			for _, n := range tc.nots {
				if bytes.Contains(buf.Bytes(), []byte(n)) {
					t.Fatalf("unexpected %q in %s", n, buf.String())
				}
			}
		})
	}
}

func TestAnalysisID(t *testing.T) {
	if got := AnalysisID(context.Background()); got != "" {
		t.Fatalf("bare ctx = %q", got)
	}
	if got := AnalysisID(WithAnalysis(context.Background(), "a-1")); got != "a-1" {
		t.Fatalf("AnalysisID = %q", got)
	}
}

func TestNamed(t *testing.T) {
	if Named("") != Get() {
		t.Fatal("empty component must return the root")
	}
	var buf bytes.Buffer
	l := Named("detector").Output(&buf)
	l.Error().Msg("named")
	kit.MustContain(t, buf.String(), `"component":"detector"`)
}
