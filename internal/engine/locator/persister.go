package locator

import (
	"sync"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
	"go.trai.ch/fastboot/internal/engine/debounce"
	"go.trai.ch/zerr"
)

// Persister loads the Store from disk and writes it back. It prefers the
// volatile cache file and falls back to the startup seed file.
type Persister struct {
	fs          ports.FileSystem
	store       *Store
	cacheFile   string
	startupFile string
	status      domain.StatusFunc
	saves       *debounce.Debouncer

	writeMu sync.Mutex

	mu      sync.RWMutex
	loading domain.LoadStatus
}

// NewPersister creates a Persister for store. opts must have defaults applied.
func NewPersister(fsys ports.FileSystem, store *Store, opts domain.Options) *Persister {
	p := &Persister{
		fs:          fsys,
		store:       store,
		cacheFile:   opts.CacheFile,
		startupFile: opts.StartupFile,
		status:      opts.StatusCallback,
		loading:     domain.InitialLoadStatus(),
	}
	if p.status == nil {
		p.status = func(string) {}
	}
	p.saves = debounce.New(opts.SaveTimeout, func() {
		// Failures are already reported through the status callback.
		_ = p.Save()
	})
	return p
}

// Load adopts the first valid document, trying the cache file and then the
// startup file. When neither is usable the store is reset.
// It reports whether a document was adopted.
func (p *Persister) Load() bool {
	p.mu.Lock()
	p.loading = domain.InitialLoadStatus()
	p.mu.Unlock()

	if p.tryLoad(p.cacheFile, domain.CaptionCache) {
		return true
	}
	if p.tryLoad(p.startupFile, domain.CaptionStartup) {
		return true
	}
	p.store.Reset()
	return false
}

func (p *Persister) tryLoad(path, caption string) bool {
	if !p.fs.Exists(path) {
		p.report(caption, domain.StatusNotFound(caption, path))
		return false
	}

	data, err := p.fs.ReadFile(path)
	if err != nil {
		err = zerr.With(zerr.Wrap(err, domain.ErrDocumentReadFailed.Error()), "path", path)
		p.report(caption, domain.StatusLoadFailed(caption, path, err))
		return false
	}

	doc, err := domain.ParseDocument(data)
	if err != nil {
		p.report(caption, domain.StatusLoadFailed(caption, path, err))
		return false
	}

	if !p.store.Accepts(doc) {
		p.report(caption, domain.StatusDismissed(caption, path))
		return false
	}

	p.store.Replace(doc)
	p.report(caption, domain.StatusLoaded(caption, path))
	return true
}

// report records message as the load status of the given document and
// forwards it to the status callback.
func (p *Persister) report(caption, message string) {
	p.mu.Lock()
	switch caption {
	case domain.CaptionCache:
		p.loading.CacheFile = message
	case domain.CaptionStartup:
		p.loading.StartupFile = message
	}
	p.mu.Unlock()

	p.status(message)
}

// LoadStatus returns the most recent load outcome of both documents.
func (p *Persister) LoadStatus() domain.LoadStatus {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loading
}

// Save writes the active document to the cache file, cancelling any
// scheduled save. A failed write leaves the in-memory document authoritative.
func (p *Persister) Save() error {
	p.saves.Cancel()
	return p.write(p.cacheFile, domain.CaptionCache)
}

// SaveStartupSeed writes the active document to the startup file.
func (p *Persister) SaveStartupSeed() error {
	return p.write(p.startupFile, domain.CaptionStartup)
}

// ScheduleSave arranges a Save once the save timeout has elapsed without
// further calls.
func (p *Persister) ScheduleSave() {
	p.saves.Schedule()
}

// CancelScheduledSave drops a pending save. It reports whether one was pending.
func (p *Persister) CancelScheduledSave() bool {
	return p.saves.Cancel()
}

// SavePending reports whether a save is scheduled.
func (p *Persister) SavePending() bool {
	return p.saves.Pending()
}

func (p *Persister) write(path, caption string) error {
	data, err := p.store.Marshal()
	if err == nil {
		p.writeMu.Lock()
		err = p.fs.WriteFile(path, data)
		p.writeMu.Unlock()
		if err != nil {
			err = zerr.With(zerr.Wrap(err, domain.ErrDocumentWriteFailed.Error()), "path", path)
		}
	}

	if err != nil {
		p.status(domain.StatusSaveFailed(caption, path, err))
		return err
	}

	p.status(domain.StatusSaved(caption, path))
	return nil
}
