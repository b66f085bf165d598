package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/Makepad-fr/worktravel/internal/config"
	"github.com/Makepad-fr/worktravel/internal/logging"
	"github.com/Makepad-fr/worktravel/internal/store"
	"github.com/Makepad-fr/worktravel/internal/tasks"
	"github.com/Makepad-fr/worktravel/internal/ui"
)

// app is everything a command needs, opened once per invocation.
type app struct {
	cfg   *config.Config
	log   *log.Logger
	store store.Store
	ctl   *tasks.Controller

	closers []io.Closer
}

// openApp loads config, sets up logging and the store, and loads the
// controller. Logs go to the log file when the TUI owns the terminal.
func openApp(ctx context.Context, o config.Overrides, stderr io.Writer, interactive bool) (*app, error) {
	cfg, err := config.Load(o)
	if err != nil {
		return nil, usageError{err}
	}
	ui.SetTheme(cfg.Theme)

	a := &app{cfg: cfg}
	logOpts := logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat}
	if interactive {
		l, closer, err := logging.NewFile(cfg.LogPath(), logOpts)
		if err != nil {
			return nil, err
		}
		a.log = l
		a.closers = append(a.closers, closer)
	} else {
		a.log = logging.New(stderr, logOpts)
	}
	if cfg.Source != "" {
		a.log.Debug("config loaded", "path", cfg.Source)
	}

	st, err := store.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		a.close()
		return nil, err
	}
	a.store = st
	a.log.Debug("store opened", "backend", cfg.Backend, "dir", cfg.DataDir)

	a.ctl = tasks.New(ctx, st, tasks.WithLogger(a.log))
	if err := a.ctl.Load(ctx); err != nil {
		if ctx.Err() != nil {
			// nothing was read, so writing would clobber the saved lists
			a.close()
			return nil, ctx.Err()
		}
		a.log.Warn("could not load saved tasks, starting fresh", "err", err)
	}
	return a, nil
}

// close flushes pending writes before releasing the store.
func (a *app) close() {
	if a.ctl != nil {
		a.ctl.Close()
	}
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.log.Warn("close store", "err", err)
		}
	}
	for _, c := range a.closers {
		c.Close()
	}
}

type usageError struct{ err error }

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usagef(format string, args ...any) error {
	return usageError{fmt.Errorf(format, args...)}
}
