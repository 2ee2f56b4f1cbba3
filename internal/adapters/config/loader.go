// Package config provides the configuration loader for fastboot.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/fastboot/internal/core/domain"
	"go.trai.ch/fastboot/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
	Hasher ports.Hasher
}

// NewLoader creates a new Loader with the given logger and hasher.
func NewLoader(logger ports.Logger, hasher ports.Hasher) *Loader {
	return &Loader{Logger: logger, Hasher: hasher}
}

// Load reads the configuration file at path. When path is empty it looks for
// fastboot.yaml in cwd; a missing discovered file yields zero options.
func (l *Loader) Load(cwd, path string) (domain.Options, error) {
	configPath := path
	if configPath == "" {
		configPath = filepath.Join(cwd, domain.ConfigFileName)
		if _, err := os.Stat(configPath); errors.Is(err, iofs.ErrNotExist) {
			return domain.Options{}, nil
		}
	} else if !filepath.IsAbs(configPath) {
		configPath = filepath.Join(cwd, configPath)
	}

	var fastfile Fastfile
	if err := readAndUnmarshalYAML(configPath, &fastfile); err != nil {
		return domain.Options{}, zerr.With(err, "path", configPath)
	}

	return l.toOptions(configPath, &fastfile)
}

func (l *Loader) toOptions(configPath string, fastfile *Fastfile) (domain.Options, error) {
	configDir := filepath.Dir(configPath)

	opts := domain.Options{
		CacheScope:        resolvePath(configDir, fastfile.CacheScope),
		CacheFile:         resolvePath(configDir, fastfile.CacheFile),
		StartupFile:       resolvePath(configDir, fastfile.StartupFile),
		VersionTag:        fastfile.VersionTag,
		DisableVersionTag: fastfile.DisableVersionTag,
		DependencyDirs:    fastfile.DependencyDirs,
	}

	if fastfile.SaveTimeout != nil {
		if *fastfile.SaveTimeout < 0 {
			return domain.Options{}, zerr.With(domain.ErrInvalidSaveTimeout, "save_timeout_ms", *fastfile.SaveTimeout)
		}
		opts.SaveTimeout = time.Duration(*fastfile.SaveTimeout) * time.Millisecond
	}

	if fastfile.VersionFile != "" {
		if opts.VersionTag != "" {
			l.Logger.Warn(fmt.Sprintf("'versionFile' in %s has no effect when 'versionTag' is set", domain.ConfigFileName))
			return opts, nil
		}

		tag, err := Fingerprint(l.Hasher, resolvePath(configDir, fastfile.VersionFile))
		if err != nil {
			return domain.Options{}, err
		}
		opts.VersionTag = tag
	}

	return opts, nil
}

// Fingerprint derives a version tag from the content of a file, such as a
// package lockfile. The tag has the form <basename>@<hash>.
func Fingerprint(hasher ports.Hasher, path string) (string, error) {
	sum, err := hasher.ComputeFileHash(path)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrVersionFileFailed.Error()), "version_file", path)
	}
	return fmt.Sprintf("%s@%016x", filepath.Base(path), sum), nil
}

// resolvePath resolves a configured path relative to the config directory.
func resolvePath(configDir, configured string) string {
	if configured == "" {
		return ""
	}
	if filepath.IsAbs(configured) {
		return filepath.Clean(configured)
	}
	return filepath.Clean(filepath.Join(configDir, configured))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target
// struct, rejecting unknown keys.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is validated by caller
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return zerr.Wrap(err, domain.ErrConfigReadFailed.Error())
	}

	decoder := yaml.NewDecoder(bytes.NewReader(configFile))
	decoder.KnownFields(true)
	if parseErr := decoder.Decode(target); parseErr != nil && !errors.Is(parseErr, io.EOF) {
		return zerr.Wrap(parseErr, domain.ErrConfigParseFailed.Error())
	}

	return nil
}
