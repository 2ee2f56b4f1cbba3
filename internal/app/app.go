// Package app implements the application layer for fastboot.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"go.trai.ch/fastboot/internal/build"
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
	"go.trai.ch/fastboot/internal/engine/locator"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// logConfigurer is implemented by loggers whose verbosity and format can be
// switched at runtime.
type logConfigurer interface {
	SetVerbose(enable bool)
	SetJSON(enable bool)
}

// App is the control surface of the module location cache.
type App struct {
	configLoader ports.ConfigLoader
	direct       ports.ModuleResolver
	fs           ports.FileSystem
	probes       ports.ProbeCounter
	logger       ports.Logger
	tracer       ports.Tracer

	mu    sync.Mutex
	cache *locator.Cache
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	direct ports.ModuleResolver,
	fsys ports.FileSystem,
	probes ports.ProbeCounter,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		configLoader: loader,
		direct:       direct,
		fs:           fsys,
		probes:       probes,
		logger:       log,
		tracer:       tracer,
	}
}

// StartOptions configures a Start or Clean call.
type StartOptions struct {
	// Cwd is the directory relative paths are resolved against. Defaults to the
	// process working directory.
	Cwd string
	// ConfigPath points at a config file. When empty, fastboot.yaml is looked up in Cwd.
	ConfigPath string
	// Overrides take precedence over the config file.
	Overrides domain.Options
	// Verbose forwards cache status messages to the logger.
	Verbose bool
	// JSON switches the logger to JSON output.
	JSON bool
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Startup bool
}

// Start loads the persisted documents and installs the caching resolver.
func (a *App) Start(ctx context.Context, so StartOptions) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cache != nil {
		return domain.ErrAlreadyStarted
	}

	_, span := a.tracer.Start(ctx, "load")
	defer span.End()

	opts, err := a.options(so)
	if err != nil {
		span.RecordError(err)
		return err
	}

	cache, err := locator.New(a.direct, a.fs, opts)
	if err != nil {
		span.RecordError(err)
		return zerr.Wrap(err, "failed to create module location cache")
	}

	loaded := cache.Load()
	span.SetAttribute("scope", opts.CacheScope)
	span.SetAttribute("loaded", loaded)
	span.SetAttribute("entries", cache.Stats().Entries)

	a.cache = cache
	return nil
}

// Stop uninstalls the caching resolver and flushes the cache file once.
// Stop without a prior Start is a no-op.
func (a *App) Stop(ctx context.Context) error {
	cache := a.detach()
	if cache == nil {
		return nil
	}

	_, span := a.tracer.Start(ctx, "save")
	defer span.End()

	if err := cache.Close(); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Discard uninstalls the caching resolver without writing anything.
func (a *App) Discard() {
	if cache := a.detach(); cache != nil {
		cache.Discard()
	}
}

func (a *App) detach() *locator.Cache {
	a.mu.Lock()
	defer a.mu.Unlock()

	cache := a.cache
	a.cache = nil
	return cache
}

func (a *App) started() (*locator.Cache, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.cache == nil {
		return nil, domain.ErrNotStarted
	}
	return a.cache, nil
}

// SaveCache flushes the active document to the cache file.
func (a *App) SaveCache(ctx context.Context) error {
	return a.save(ctx, "save", func(c *locator.Cache) error { return c.Save() })
}

// SaveStartupSeed writes the active document to the startup file.
func (a *App) SaveStartupSeed(ctx context.Context) error {
	return a.save(ctx, "save startup seed", func(c *locator.Cache) error { return c.SaveStartupSeed() })
}

// SaveAll writes the cache file and the startup file concurrently.
func (a *App) SaveAll(ctx context.Context) error {
	return a.save(ctx, "save all", func(c *locator.Cache) error {
		var g errgroup.Group
		g.Go(c.Save)
		g.Go(c.SaveStartupSeed)
		return g.Wait()
	})
}

func (a *App) save(ctx context.Context, name string, fn func(*locator.Cache) error) error {
	cache, err := a.started()
	if err != nil {
		return err
	}

	_, span := a.tracer.Start(ctx, name)
	defer span.End()

	if err := fn(cache); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}

// Resolve resolves request through the caching resolver when started,
// otherwise directly.
func (a *App) Resolve(ctx context.Context, request string, caller *domain.Caller) (string, error) {
	resolver := a.direct
	if cache, err := a.started(); err == nil {
		resolver = cache.Resolver()
	}

	ctx, span := a.tracer.Start(ctx, "resolve "+request)
	defer span.End()

	path, err := resolver.Resolve(ctx, request, caller)
	if err != nil {
		span.RecordError(err)
		return "", err
	}
	span.SetAttribute("path", path)
	return path, nil
}

// Stats returns a snapshot of the running cache.
func (a *App) Stats() (domain.Stats, error) {
	cache, err := a.started()
	if err != nil {
		return domain.Stats{}, err
	}
	return cache.Stats(), nil
}

// Probes returns the filesystem calls made so far.
func (a *App) Probes() domain.Probes {
	return a.probes.Probes()
}

// Clean removes the cache file and, when requested, the startup file.
func (a *App) Clean(_ context.Context, so StartOptions, options CleanOptions) error {
	opts, err := a.options(so)
	if err != nil {
		return err
	}

	var errs error
	remove := func(path, caption string) {
		a.logger.Info(fmt.Sprintf("removing %s file %s", caption, path))
		if err := a.fs.Remove(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, domain.ErrCleanFailed.Error()), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s file", caption))
	}

	remove(opts.CacheFile, domain.CaptionCache)
	if options.Startup {
		remove(opts.StartupFile, domain.CaptionStartup)
	}
	return errs
}

// options merges the config file with the overrides and applies defaults.
// Status messages are forwarded to the logger at debug level.
func (a *App) options(so StartOptions) (domain.Options, error) {
	if lc, ok := a.logger.(logConfigurer); ok {
		lc.SetJSON(so.JSON)
		lc.SetVerbose(so.Verbose)
	}

	cwd := so.Cwd
	if cwd == "" {
		wd, err := os.Getwd()
		if err != nil {
			return domain.Options{}, zerr.Wrap(err, "failed to get working directory")
		}
		cwd = wd
	}

	fileOpts, err := a.configLoader.Load(cwd, so.ConfigPath)
	if err != nil {
		return domain.Options{}, zerr.Wrap(err, "failed to load configuration")
	}

	merged := fileOpts.Merge(so.Overrides)
	host := merged.StatusCallback
	merged.StatusCallback = func(message string) {
		a.logger.Debug(message)
		if host != nil {
			host(message)
		}
	}

	return merged.WithDefaults(cwd, build.Version)
}
