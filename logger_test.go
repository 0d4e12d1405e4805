package rgraph

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

var levels = []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError}

func silenced(t *testing.T, l *slog.Logger) {
	t.Helper()
	if l == nil {
		t.Fatal("logger is nil")
	}
	for _, level := range levels {
		if l.Enabled(context.Background(), level) {
			t.Errorf("logger enabled at %v, want silent", level)
		}
	}
}

func TestLoggerSilentByDefault(t *testing.T) {
	silenced(t, Logger())
}

func TestSetLogger(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	SetLogger(l)
	if Logger() != l {
		t.Fatal("Logger() did not return the installed logger")
	}
	Logger().Debug("rgph: pass executed", "pass", "lambertian", "jobs", 3)
	if out := buf.String(); !strings.Contains(out, "pass=lambertian") || !strings.Contains(out, "jobs=3") {
		t.Errorf("log output = %q", out)
	}

	SetLogger(nil)
	silenced(t, Logger())
}

func TestSetLoggerConcurrent(t *testing.T) {
	prev := Logger()
	t.Cleanup(func() { SetLogger(prev) })

	loud := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	var wg sync.WaitGroup
	for i := range 64 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				SetLogger(loud)
			} else {
				SetLogger(nil)
			}
		}()
		go func() {
			defer wg.Done()
			if Logger() == nil {
				t.Error("Logger() returned nil")
			}
		}()
	}
	wg.Wait()
}

func BenchmarkSilentDebug(b *testing.B) {
	l := Logger()
	b.ReportAllocs()
	for b.Loop() {
		l.Debug("render: frame", "frame", 1)
	}
}
