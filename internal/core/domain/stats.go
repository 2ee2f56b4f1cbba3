package domain

// LoadStatus holds the most recent load outcome for each candidate document.
type LoadStatus struct {
	CacheFile   string `json:"cacheFile"`
	StartupFile string `json:"startupFile"`
}

// InitialLoadStatus returns the status of documents that were not yet read.
func InitialLoadStatus() LoadStatus {
	return LoadStatus{
		CacheFile:   StatusNotAttempted(CaptionCache),
		StartupFile: StatusNotAttempted(CaptionStartup),
	}
}

// Counters tracks resolution outcomes for the lifetime of a cache.
type Counters struct {
	CacheHit  int `json:"cacheHit"`
	CacheMiss int `json:"cacheMiss"`
	NotCached int `json:"notCached"`
}

// Total returns the number of counted resolutions.
func (c Counters) Total() int {
	return c.CacheHit + c.CacheMiss + c.NotCached
}

// Stats is a read-only snapshot of the cache.
type Stats struct {
	Counters
	VersionTag string     `json:"versionTag"`
	Loading    LoadStatus `json:"loading"`
	Entries    int        `json:"entries"`
}

// Probes is a snapshot of the filesystem calls made while resolving.
type Probes struct {
	Exists    int64 `json:"exists"`
	Stat      int64 `json:"stat"`
	ReadFile  int64 `json:"readFile"`
	WriteFile int64 `json:"writeFile"`
}

// Lookups returns the number of calls that inspect the filesystem without
// writing to it.
func (p Probes) Lookups() int64 {
	return p.Exists + p.Stat + p.ReadFile
}
