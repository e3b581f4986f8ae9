// Package config provides the configuration loader for pollwatch.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"time"

	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the configuration at path and validates it. Values absent from
// the file keep their defaults. A relative root or ignore file is resolved
// against the directory holding the file.
func (l *Loader) Load(path string, required bool) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is provided by user
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if required {
				return cfg, zerr.With(domain.ErrConfigNotFound, "path", path)
			}
			return cfg, nil
		}
		return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	var file Pollfile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return cfg, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	l.warnUnknown(path, data)

	if file.Version != "" && file.Version != SupportedVersion {
		l.Logger.Warn(fmt.Sprintf("%s declares version %q, expected %q", path, file.Version, SupportedVersion))
	}

	apply(&cfg, file, filepath.Dir(path))

	if err := cfg.Validate(); err != nil {
		return cfg, zerr.With(err, "path", path)
	}
	return cfg, nil
}

func apply(cfg *domain.Config, file Pollfile, dir string) {
	cfg.Root = resolvePath(dir, file.Root)

	if file.PollPeriodSeconds != nil {
		cfg.Period = time.Duration(*file.PollPeriodSeconds * float64(time.Second))
	}
	if file.Prune != nil {
		cfg.Prune = *file.Prune
	}
	if file.Exclude != nil {
		cfg.Exclude = slices.Clone(file.Exclude)
	}
	if file.Ignore != nil {
		cfg.Ignore = slices.Clone(file.Ignore)
	}
	if file.IgnoreFile != "" {
		cfg.IgnoreFile = resolvePath(dir, file.IgnoreFile)
	}
	if file.Strategy != "" {
		cfg.Strategy = domain.Strategy(file.Strategy)
	}
	if file.ModifiedCadence != "" {
		cfg.ModifiedCadence = domain.Cadence(file.ModifiedCadence)
	}
	if file.Backend != "" {
		cfg.Backend = domain.Backend(file.Backend)
	}
	if file.FailureThreshold != nil {
		cfg.FailureThreshold = *file.FailureThreshold
	}
	if file.Log.Format != "" {
		cfg.LogFormat = domain.LogFormat(file.Log.Format)
	}
	if file.Log.Level != "" {
		cfg.LogLevel = file.Log.Level
	}
}

func resolvePath(dir, p string) string {
	if p == "" {
		return filepath.Clean(dir)
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(dir, p))
}

// warnUnknown logs top-level keys the schema does not define.
func (l *Loader) warnUnknown(path string, data []byte) {
	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}

	var unknown []string
	for key := range raw {
		if !knownKeys[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)

	for _, key := range unknown {
		l.Logger.Warn(fmt.Sprintf("unknown key %q in %s is ignored", key, path))
	}
}
