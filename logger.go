package rgraph

import (
	"log/slog"
	"sync/atomic"
)

// Every package of the module logs through Logger, so one SetLogger call
// covers graph building, frame execution, codex resolution, scene loading
// and device selection. Nothing is logged until a logger is installed.
//
// Records by level:
//   - Debug: one per executed pass and frame, one per codex construction
//   - Info: graph built from configuration, scene loaded, device selected
//   - Warn: failed codex constructions
var (
	silent  = slog.New(slog.DiscardHandler)
	current atomic.Pointer[slog.Logger]
)

// SetLogger installs l for every rgraph package. Nil silences logging
// again. It may be called while frames render.
//
//	rgraph.SetLogger(slog.New(slog.NewJSONHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = silent
	}
	current.Store(l)
}

// Logger returns the installed logger, or a silent one.
func Logger() *slog.Logger {
	if l := current.Load(); l != nil {
		return l
	}
	return silent
}
