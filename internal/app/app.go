// Package app implements the application layer for pollwatch.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.trai.ch/pollwatch/internal/adapters/notify"
	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/pollwatch/internal/engine/watcher"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// EventBuffer is the capacity of the channel between the watcher and the renderer.
const EventBuffer = 64

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	walker       ports.Enumerator
	finder       ports.Enumerator
	logger       ports.Logger
	tracer       ports.Tracer
	renderer     ports.Renderer
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	walker ports.Enumerator,
	finder ports.Enumerator,
	log ports.Logger,
	tracer ports.Tracer,
	renderer ports.Renderer,
) *App {
	return &App{
		configLoader: loader,
		walker:       walker,
		finder:       finder,
		logger:       log,
		tracer:       tracer,
		renderer:     renderer,
	}
}

// RunOptions carries command-line overrides. Zero values leave the
// configuration file in charge.
type RunOptions struct {
	ConfigPath     string
	ConfigExplicit bool
	Root           string
	Period         time.Duration
	Backend        string
	Strategy       string
	NoPrune        bool
	Verbose        bool
	JSON           bool
	// Notify streams created, modified and deleted paths as fsnotify
	// operations instead of watcher events.
	Notify         bool
}

// ResolveConfig loads the configuration file and applies the overrides in opts.
func (a *App) ResolveConfig(opts RunOptions) (domain.Config, error) {
	path := opts.ConfigPath
	if path == "" {
		path = domain.DefaultConfigFile
	}

	cfg, err := a.configLoader.Load(path, opts.ConfigExplicit)
	if err != nil {
		return cfg, zerr.Wrap(err, "failed to load configuration")
	}

	if opts.Root != "" {
		cfg.Root = opts.Root
	}
	if opts.Period != 0 {
		cfg.Period = opts.Period
	}
	if opts.Backend != "" {
		cfg.Backend = domain.Backend(opts.Backend)
	}
	if opts.Strategy != "" {
		cfg.Strategy = domain.Strategy(opts.Strategy)
	}
	if opts.NoPrune {
		cfg.Prune = false
	}
	if opts.Verbose {
		cfg.LogLevel = "debug"
	}
	if opts.JSON {
		cfg.LogFormat = domain.LogFormatJSON
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// BuildFilter composes the dotfile filter with the configured ignore patterns.
func BuildFilter(cfg domain.Config) (domain.PathFilter, error) {
	filters := []domain.PathFilter{domain.DefaultFilter, domain.IgnorePatterns(cfg.Ignore...)}
	if cfg.IgnoreFile != "" {
		f, err := domain.IgnoreFile(cfg.IgnoreFile)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return domain.And(filters...), nil
}

func (a *App) enumerator(backend domain.Backend) ports.Enumerator {
	if backend == domain.BackendFind {
		return a.finder
	}
	return a.walker
}

type jsonSwitch interface {
	SetJSON(enabled bool)
}

type levelSwitch interface {
	SetLevel(level slog.Level)
}

// configureOutput applies the log format and level to adapters that support them.
func (a *App) configureOutput(cfg domain.Config) error {
	jsonMode := cfg.LogFormat == domain.LogFormatJSON
	if s, ok := a.logger.(jsonSwitch); ok {
		s.SetJSON(jsonMode)
	}
	if s, ok := a.renderer.(jsonSwitch); ok {
		s.SetJSON(jsonMode)
	}

	if cfg.LogLevel == "" {
		return nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return zerr.With(zerr.Wrap(err, "invalid log level"), "level", cfg.LogLevel)
	}
	if s, ok := a.logger.(levelSwitch); ok {
		s.SetLevel(level)
	}
	return nil
}

// Watch polls the configured root and renders events until ctx is cancelled.
func (a *App) Watch(ctx context.Context, opts RunOptions) error {
	cfg, err := a.ResolveConfig(opts)
	if err != nil {
		return err
	}
	if err := a.configureOutput(cfg); err != nil {
		return err
	}

	filter, err := BuildFilter(cfg)
	if err != nil {
		return err
	}

	wopts := watcher.FromConfig(cfg, filter)
	wopts.Logger = a.logger
	wopts.Tracer = a.tracer

	w, err := watcher.New(a.enumerator(cfg.Backend), wopts)
	if err != nil {
		return zerr.Wrap(err, "failed to create watcher")
	}

	g, ctx := errgroup.WithContext(ctx)

	var detach func()
	if opts.Notify {
		bridge := notify.New(w, cfg.Root, EventBuffer)
		detach = func() { _ = bridge.Close() }
		g.Go(func() error { return a.renderNotify(ctx, bridge) })
	} else {
		events, unsubscribe := w.Events(EventBuffer)
		detach = unsubscribe
		g.Go(func() error { return a.renderEvents(ctx, events) })
	}

	if err := w.Start(); err != nil {
		detach()
		w.Cleanup()
		_ = g.Wait()
		return err
	}

	a.logger.Info(fmt.Sprintf("watching %s every %s (%s backend, %s strategy)",
		cfg.Root, cfg.Period, cfg.Backend, cfg.Strategy))

	g.Go(func() error {
		<-ctx.Done()
		detach()
		w.Cleanup()
		w.Wait()

		stats := w.Stats()
		a.logger.Debug(fmt.Sprintf("stopped after %d flushes, %d events", stats.Flushes, stats.Events))
		return nil
	})

	return g.Wait()
}

func (a *App) renderEvents(ctx context.Context, events <-chan domain.Event) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-events:
			if !ok {
				return nil
			}
			if err := a.renderer.Render(e); err != nil {
				return err
			}
		}
	}
}

func (a *App) renderNotify(ctx context.Context, bridge *notify.Bridge) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-bridge.Events():
			if !ok {
				return nil
			}
			if err := a.renderer.RenderNotify(e); err != nil {
				return err
			}
		case err, ok := <-bridge.Errors():
			if !ok {
				return nil
			}
			if err := a.renderer.Render(domain.ErrorEvent{Err: err}); err != nil {
				return err
			}
		}
	}
}

// Snapshot enumerates the configured root once and renders the filtered paths.
func (a *App) Snapshot(ctx context.Context, opts RunOptions) error {
	cfg, err := a.ResolveConfig(opts)
	if err != nil {
		return err
	}
	if err := a.configureOutput(cfg); err != nil {
		return err
	}

	filter, err := BuildFilter(cfg)
	if err != nil {
		return err
	}

	ctx, span := a.tracer.Start(ctx, "snapshot", ports.WithAttribute("root", cfg.Root))
	defer span.End()

	listed, err := a.enumerator(cfg.Backend).ListAll(ctx, cfg.Root, cfg.PruneList())
	if err != nil {
		span.RecordError(err)
		return err
	}

	paths := listed.Filter(filter)
	span.SetAttribute("paths", paths.Len())
	return a.renderer.RenderSnapshot(cfg.Root, paths)
}
