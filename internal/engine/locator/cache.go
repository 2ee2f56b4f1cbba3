package locator

import (
	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
)

// Cache bundles the store, its persistence and the caching engine for one
// scope. Each Cache is independent; nothing is shared between instances.
type Cache struct {
	scope     domain.Scope
	store     *Store
	persister *Persister
	engine    *Engine
}

// New creates a Cache wrapping upstream. opts must have defaults applied.
func New(upstream ports.ModuleResolver, fsys ports.FileSystem, opts domain.Options) (*Cache, error) {
	scope, err := domain.NewScope(opts.CacheScope)
	if err != nil {
		return nil, err
	}

	store := NewStore(opts.VersionTag)
	persister := NewPersister(fsys, store, opts)
	store.OnChange(persister.ScheduleSave)

	return &Cache{
		scope:     scope,
		store:     store,
		persister: persister,
		engine:    NewEngine(upstream, fsys, scope, store, opts),
	}, nil
}

// Load reads the persisted documents. It reports whether one was adopted.
func (c *Cache) Load() bool {
	return c.persister.Load()
}

// Resolver returns the caching resolver.
func (c *Cache) Resolver() ports.ModuleResolver {
	return c.engine
}

// Scope returns the cache scope.
func (c *Cache) Scope() domain.Scope {
	return c.scope
}

// Save flushes the active document to the cache file.
func (c *Cache) Save() error {
	return c.persister.Save()
}

// SaveStartupSeed writes the active document to the startup file.
func (c *Cache) SaveStartupSeed() error {
	return c.persister.SaveStartupSeed()
}

// SavePending reports whether a debounced save is scheduled.
func (c *Cache) SavePending() bool {
	return c.persister.SavePending()
}

// Close cancels any scheduled save and flushes once.
func (c *Cache) Close() error {
	c.persister.CancelScheduledSave()
	return c.persister.Save()
}

// Discard cancels any scheduled save without writing.
func (c *Cache) Discard() {
	c.persister.CancelScheduledSave()
}

// Document returns a copy of the active document.
func (c *Cache) Document() *domain.Document {
	return c.store.Snapshot()
}

// Stats returns a snapshot of the counters, version tag and load status.
func (c *Cache) Stats() domain.Stats {
	return domain.Stats{
		Counters:   c.engine.Counters(),
		VersionTag: c.store.VersionTag(),
		Loading:    c.persister.LoadStatus(),
		Entries:    c.store.Len(),
	}
}
