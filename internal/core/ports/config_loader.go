package ports

import "go.trai.ch/fastboot/internal/core/domain"

// ConfigLoader defines the interface for loading cache options.
//
//go:generate go run go.uber.org/mock/mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path, or discovers one in cwd when path is empty.
	// A missing discovered file yields zero options and no error.
	Load(cwd, path string) (domain.Options, error)
}
