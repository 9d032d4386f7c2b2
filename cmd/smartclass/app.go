package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/text/language"

	"github.com/suguru-ai/smartclass/internal/catalog"
	"github.com/suguru-ai/smartclass/internal/gamification"
	"github.com/suguru-ai/smartclass/internal/kvstore"
	"github.com/suguru-ai/smartclass/internal/notify"
	"github.com/suguru-ai/smartclass/internal/platform/cache"
	"github.com/suguru-ai/smartclass/internal/platform/config"
	"github.com/suguru-ai/smartclass/internal/platform/database"
	"github.com/suguru-ai/smartclass/internal/platform/sqlite"
)

var errUsage = errors.New("unknown command")

const healthTimeout = 5 * time.Second

// commands lists the names dispatch accepts.
var commands = []string{"grades", "subjects", "topics", "learn", "code", "map", "progress", "export", "reset"}

// app holds the wired dependencies of one CLI invocation.
type app struct {
	catalog *catalog.Catalog
	tracker *gamification.Tracker
	toasts  *notify.Gateway
	lang    language.Tag

	in  *bufio.Scanner
	out io.Writer

	closers []func() error
}

func newApp(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*app, error) {
	a := &app{in: bufio.NewScanner(in), out: out}

	cat, err := catalog.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	a.catalog = cat

	lang, err := cfg.Language()
	if err != nil {
		return nil, err
	}
	a.lang = lang

	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	store, events, err := a.openStore(ctx, cfg)
	if err != nil {
		a.Close()
		return nil, err
	}

	a.tracker = gamification.NewTracker(gamification.TrackerConfig{
		Store:    store,
		Key:      cfg.Progress.Key,
		Location: loc,
		Subjects: cat,
		Events:   events,
	})

	a.toasts = notify.NewGateway(notify.GatewayConfig{DismissAfter: cfg.Notify.DismissAfter})
	a.toasts.Register("console", notify.NewConsoleChannel(out))
	a.closers = append(a.closers, a.toasts.Close)

	return a, nil
}

// openStore connects the configured progress backend. Event logging to
// PostgreSQL is available only with the postgres backend.
func (a *app) openStore(ctx context.Context, cfg *config.Config) (kvstore.Store, gamification.EventLogger, error) {
	var events gamification.EventLogger = gamification.NopEventLogger{}

	switch cfg.Store.Backend {
	case config.BackendMemory:
		return kvstore.NewMemoryStore(), events, nil

	case config.BackendFile:
		store, err := kvstore.NewFileStore(cfg.Store.Dir)
		if err != nil {
			return nil, nil, err
		}
		slog.Debug("using file store", "dir", cfg.Store.Dir)
		return store, events, nil

	case config.BackendSQLite:
		db, err := sqlite.Open(cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewSQLiteStore(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		a.closers = append(a.closers, store.Close)
		slog.Debug("using sqlite store", "path", cfg.SQLite.Path)
		return store, events, nil

	case config.BackendRedis:
		c, err := cache.New(ctx, cfg.Cache.URL, cfg.Store.Namespace)
		if err != nil {
			return nil, nil, err
		}
		store := kvstore.NewRedisStore(c)
		a.closers = append(a.closers, store.Close)
		if err := checkHealth(ctx, "cache", c.HealthCheck); err != nil {
			return nil, nil, err
		}
		return store, events, nil

	case config.BackendPostgres:
		db, err := database.New(ctx, cfg.Database.URL, cfg.Database.MaxConns, cfg.Database.MinConns)
		if err != nil {
			return nil, nil, err
		}
		a.closers = append(a.closers, func() error { db.Close(); return nil })
		if err := checkHealth(ctx, "database", db.HealthCheck); err != nil {
			return nil, nil, err
		}
		store, err := kvstore.NewPostgresStore(db.Pool, cfg.Store.Namespace)
		if err != nil {
			return nil, nil, err
		}
		if cfg.Database.Events {
			events = gamification.NewPostgresEventLogger(db.Pool)
		}
		return store, events, nil
	}
	return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

// checkHealth fails startup when a freshly connected backend does not answer.
func checkHealth(ctx context.Context, name string, check func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()
	if err := check(ctx); err != nil {
		return fmt.Errorf("%s health check: %w", name, err)
	}
	slog.Debug("backend healthy", "backend", name)
	return nil
}

// Close releases backends in reverse order of opening.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			slog.Warn("close failed", "error", err)
		}
	}
	a.closers = nil
}

func isCommand(name string) bool {
	return slices.Contains(commands, name)
}

func (a *app) dispatch(ctx context.Context, args []string) error {
	rest := args[1:]
	switch args[0] {
	case "grades":
		return a.cmdGrades()
	case "subjects":
		return a.cmdSubjects(rest)
	case "topics":
		return a.cmdTopics(ctx, rest)
	case "learn":
		return a.cmdLearn(ctx, rest)
	case "code":
		return a.cmdCode(ctx, rest)
	case "map":
		return a.cmdMap(rest)
	case "progress":
		return a.cmdProgress(ctx)
	case "export":
		return a.cmdExport(ctx, rest)
	case "reset":
		return a.cmdReset(ctx, rest)
	default:
		return errUsage
	}
}

// prompt prints label and reads one trimmed line. ok is false at end of input.
func (a *app) prompt(label string) (line string, ok bool) {
	fmt.Fprint(a.out, label)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false
	}
	return trimLine(a.in.Text()), true
}
