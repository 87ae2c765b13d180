package speedy

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

// captureLogs installs a debug-level text logger for the duration of the
// test and returns its output buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { SetLogger(nil) })
	return &buf
}

func TestLoggerSilentByDefault(t *testing.T) {
	SetLogger(nil)
	l := Logger()
	if l == nil {
		t.Fatal("Logger() = nil")
	}
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn, slog.LevelError} {
		if l.Enabled(context.Background(), level) {
			t.Errorf("default Logger().Enabled(%v) = true, want false", level)
		}
	}
	h := l.Handler().WithAttrs([]slog.Attr{slog.Int("k", 1)}).WithGroup("g")
	if _, ok := h.(silentHandler); !ok {
		t.Errorf("derived handler = %T, want silentHandler", h)
	}
}

func TestSetLogger(t *testing.T) {
	buf := captureLogs(t)
	Logger().Info("hello", "key", "value")
	if got := buf.String(); !strings.Contains(got, "msg=hello key=value") {
		t.Errorf("log output = %q, want the record", got)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) left an enabled logger")
	}
}

func TestRendererLogs(t *testing.T) {
	buf := captureLogs(t)

	r, err := NewRenderer(newRecordingBackend(), UVec2{X: 4, Y: 4}, 1)
	if err != nil {
		t.Fatalf("NewRenderer() error = %v", err)
	}
	defer r.Close()
	if err := r.DrawFrame(func(g *Graphics) {
		g.DrawRectangle(NewRect(Vec2{}, Vec2{X: 2, Y: 2}), ColorRed)
	}); err != nil {
		t.Fatalf("DrawFrame() error = %v", err)
	}

	for _, msg := range []string{"speedy: renderer created", "speedy: frame flushed"} {
		if !strings.Contains(buf.String(), msg) {
			t.Errorf("log output lacks %q:\n%s", msg, buf.String())
		}
	}
}

func TestLoggerConcurrentAccess(t *testing.T) {
	t.Cleanup(func() { SetLogger(nil) })
	var wg sync.WaitGroup
	for range 50 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			Logger().Debug("frame")
		}()
		go func() {
			defer wg.Done()
			SetLogger(slog.Default())
			SetLogger(nil)
		}()
	}
	wg.Wait()
}

func BenchmarkDisabledLog(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		Logger().Debug("speedy: frame flushed", "batches", 1)
	}
}
