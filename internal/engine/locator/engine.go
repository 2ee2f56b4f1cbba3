package locator

import (
	"context"
	"sync"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
)

var _ ports.ModuleResolver = (*Engine)(nil)

// Engine is the caching ModuleResolver. It answers repeated requests from the
// Store and delegates everything else to the upstream resolver.
type Engine struct {
	upstream       ports.ModuleResolver
	fs             ports.FileSystem
	scope          domain.Scope
	store          *Store
	dependencyDirs []string
	status         domain.StatusFunc

	mu       sync.Mutex
	memo     map[string]struct{}
	counters domain.Counters
}

// NewEngine creates an Engine. Misses recorded in store trigger whatever hook
// the store has registered.
func NewEngine(
	upstream ports.ModuleResolver,
	fsys ports.FileSystem,
	scope domain.Scope,
	store *Store,
	opts domain.Options,
) *Engine {
	e := &Engine{
		upstream:       upstream,
		fs:             fsys,
		scope:          scope,
		store:          store,
		dependencyDirs: opts.DependencyDirs,
		status:         opts.StatusCallback,
		memo:           make(map[string]struct{}),
	}
	if len(e.dependencyDirs) == 0 {
		e.dependencyDirs = []string{domain.DependencyDirName}
	}
	if e.status == nil {
		e.status = func(string) {}
	}
	return e
}

// Resolve returns the absolute path for request as seen from caller.
// Upstream errors are returned unchanged.
func (e *Engine) Resolve(ctx context.Context, request string, caller *domain.Caller) (string, error) {
	if caller == nil {
		return e.upstream.Resolve(ctx, request, caller)
	}

	callerID, ok := e.scope.CallerID(caller)
	if !ok {
		resolved, err := e.upstream.Resolve(ctx, request, caller)
		if err != nil {
			return "", err
		}
		e.notCached(resolved)
		return resolved, nil
	}

	key := domain.CompositeKey(callerID, request)
	// An empty entry would map to the scope root; treat it as absent.
	if canonical, found := e.store.Get(key); found && canonical != "" {
		path := e.scope.ToAbsolute(canonical)
		if e.confirm(path) {
			e.mu.Lock()
			e.counters.CacheHit++
			e.mu.Unlock()
			e.status(domain.StatusCacheHit(path))
			return path, nil
		}
	}

	resolved, err := e.upstream.Resolve(ctx, request, caller)
	if err != nil {
		return "", err
	}

	canonical, inScope := e.scope.ToCanonical(resolved)
	if !inScope || !domain.InDependencyDir(canonical, e.dependencyDirs) {
		e.notCached(resolved)
		return resolved, nil
	}

	e.mu.Lock()
	e.memo[resolved] = struct{}{}
	e.counters.CacheMiss++
	e.mu.Unlock()

	e.store.Set(key, canonical)
	e.status(domain.StatusCacheMiss(resolved))
	return resolved, nil
}

// confirm reports whether path is known to exist, probing the filesystem at
// most once per path for the lifetime of the Engine.
func (e *Engine) confirm(path string) bool {
	e.mu.Lock()
	_, known := e.memo[path]
	e.mu.Unlock()
	if known {
		return true
	}

	if !e.fs.Exists(path) {
		return false
	}

	e.mu.Lock()
	e.memo[path] = struct{}{}
	e.mu.Unlock()
	return true
}

func (e *Engine) notCached(path string) {
	e.mu.Lock()
	e.counters.NotCached++
	e.mu.Unlock()
	e.status(domain.StatusNotCached(path))
}

// Counters returns a snapshot of the resolution counters.
func (e *Engine) Counters() domain.Counters {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.counters
}
