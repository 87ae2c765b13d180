package speedy

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// silentHandler drops every record. Enabled reports false, so disabled
// calls never build their attributes.
type silentHandler struct{}

func (silentHandler) Enabled(context.Context, slog.Level) bool { return false }
func (silentHandler) Handle(context.Context, slog.Record) error { return nil }
func (h silentHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h silentHandler) WithGroup(string) slog.Handler { return h }

var (
	silent = slog.New(silentHandler{})
	logger atomic.Pointer[slog.Logger]
)

// SetLogger installs the logger used by speedy, its backends and its
// platforms. Nothing is logged until a logger is set; nil restores that
// silent default. It may be called at any time from any goroutine.
//
// Levels:
//   - [slog.LevelDebug]: per-frame batch statistics, texture and atlas uploads
//   - [slog.LevelInfo]: window, renderer, backend and event loop lifecycle
//   - [slog.LevelWarn]: dropped glyphs, rejected window actions, failed frames
//
// For example:
//
//	speedy.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	logger.Store(l)
}

// Logger returns the logger installed by SetLogger, or a logger that
// discards everything.
func Logger() *slog.Logger {
	if l := logger.Load(); l != nil {
		return l
	}
	return silent
}
