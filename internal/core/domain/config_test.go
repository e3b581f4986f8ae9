package domain_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pollwatch/internal/core/domain"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, time.Second, cfg.Period)
	assert.Equal(t, domain.StrategyPaired, cfg.Strategy)
	assert.Equal(t, domain.CadenceFull, cfg.ModifiedCadence)
	assert.Equal(t, domain.BackendWalk, cfg.Backend)
	assert.Equal(t, []string{".git", ".jj", "node_modules"}, cfg.PruneList())
}

func TestConfig_PruneList(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.Prune = false
	assert.Nil(t, cfg.PruneList())

	cfg.Prune = true
	list := cfg.PruneList()
	list[0] = "mutated"
	assert.Equal(t, ".git", cfg.Exclude[0])
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Config)
		wantErr error
	}{
		{name: "zero period", mutate: func(c *domain.Config) { c.Period = 0 }, wantErr: domain.ErrInvalidPeriod},
		{name: "negative period", mutate: func(c *domain.Config) { c.Period = -time.Second }, wantErr: domain.ErrInvalidPeriod},
		{name: "strategy", mutate: func(c *domain.Config) { c.Strategy = "mixed" }, wantErr: domain.ErrInvalidStrategy},
		{name: "cadence", mutate: func(c *domain.Config) { c.ModifiedCadence = "quarter" }, wantErr: domain.ErrInvalidCadence},
		{
			name: "half cadence of 1ns",
			mutate: func(c *domain.Config) {
				c.Period = time.Nanosecond
				c.ModifiedCadence = domain.CadenceHalf
			},
			wantErr: domain.ErrInvalidPeriod,
		},
		{name: "backend", mutate: func(c *domain.Config) { c.Backend = "inotify" }, wantErr: domain.ErrInvalidBackend},
		{
			name:    "failure threshold",
			mutate:  func(c *domain.Config) { c.FailureThreshold = -1 },
			wantErr: domain.ErrInvalidFailureThreshold,
		},
		{name: "log format", mutate: func(c *domain.Config) { c.LogFormat = "xml" }, wantErr: domain.ErrInvalidLogFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := domain.DefaultConfig()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.wantErr.Error())
		})
	}
}

func TestCadence_Interval(t *testing.T) {
	assert.Equal(t, 2*time.Second, domain.CadenceFull.Interval(2*time.Second))
	assert.Equal(t, time.Second, domain.CadenceHalf.Interval(2*time.Second))

	require.NoError(t, domain.CadenceHalf.CheckPeriod(2*time.Nanosecond))
	require.ErrorContains(t, domain.CadenceHalf.CheckPeriod(time.Nanosecond), domain.ErrInvalidPeriod.Error())
	require.NoError(t, domain.CadenceFull.CheckPeriod(time.Nanosecond))
}

func TestEnumerationError(t *testing.T) {
	cause := errors.New("permission denied")
	err := &domain.EnumerationError{Backend: "walk", Op: "list_all", Root: "/srv", Err: cause}

	require.ErrorIs(t, err, domain.ErrEnumerationFailed)
	require.ErrorIs(t, err, cause)
	assert.Equal(t, "enumeration failed: walk list_all /srv: permission denied", err.Error())
}

func TestEventKind_String(t *testing.T) {
	names := make([]string, 0, len(domain.EventKinds))
	for _, k := range domain.EventKinds {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"change", "created", "deleted", "modified", "error"}, names)
	assert.Equal(t, "unknown", domain.EventKind(42).String())
}
