package config

// Fastfile represents the structure of the fastboot.yaml configuration file.
type Fastfile struct {
	Version           string   `yaml:"version"`
	CacheScope        string   `yaml:"cacheScope"`
	CacheFile         string   `yaml:"cacheFile"`
	StartupFile       string   `yaml:"startupFile"`
	SaveTimeout       *int64   `yaml:"saveTimeout"`
	VersionTag        string   `yaml:"versionTag"`
	VersionFile       string   `yaml:"versionFile"`
	DisableVersionTag bool     `yaml:"disableVersionTag"`
	DependencyDirs    []string `yaml:"dependencyDirs"`
}
