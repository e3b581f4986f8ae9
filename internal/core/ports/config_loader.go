package ports

import "go.trai.ch/pollwatch/internal/core/domain"

// ConfigLoader defines the interface for loading the watch configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// Load reads the configuration file at path. When required is false a
	// missing file yields the defaults instead of an error.
	Load(path string, required bool) (domain.Config, error)
}
