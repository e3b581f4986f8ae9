package commands_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pollwatch/cmd/pollwatch/commands"
	"go.trai.ch/pollwatch/internal/app"
	"go.trai.ch/pollwatch/internal/build"
	"go.trai.ch/pollwatch/internal/core/domain"
)

type mockApp struct {
	watchFunc    func(ctx context.Context, opts app.RunOptions) error
	snapshotFunc func(ctx context.Context, opts app.RunOptions) error
}

func (m *mockApp) Watch(ctx context.Context, opts app.RunOptions) error {
	if m.watchFunc != nil {
		return m.watchFunc(ctx, opts)
	}
	return nil
}

func (m *mockApp) Snapshot(ctx context.Context, opts app.RunOptions) error {
	if m.snapshotFunc != nil {
		return m.snapshotFunc(ctx, opts)
	}
	return nil
}

func TestCommands_Watch(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{
			"watch", "--root", "./src", "--period", "500ms", "--strategy", "separate",
			"--backend", "find", "--no-prune", "--json", "-v", "--config", "custom.yaml",
			"--fsnotify",
		})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, app.RunOptions{
			ConfigPath:     "custom.yaml",
			ConfigExplicit: true,
			Root:           "./src",
			Period:         500 * time.Millisecond,
			Backend:        "find",
			Strategy:       "separate",
			NoPrune:        true,
			Verbose:        true,
			JSON:           true,
			Notify:         true,
		}, captured)
	})

	t.Run("positional root and default config", func(t *testing.T) {
		var captured app.RunOptions
		mock := &mockApp{
			watchFunc: func(_ context.Context, opts app.RunOptions) error {
				captured = opts
				return nil
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"watch", "/srv/data"})

		require.NoError(t, cli.Execute(context.Background()))
		assert.Equal(t, "/srv/data", captured.Root)
		assert.Equal(t, domain.DefaultConfigFile, captured.ConfigPath)
		assert.False(t, captured.ConfigExplicit)
		assert.Zero(t, captured.Period)
	})

	t.Run("returns error on watch failure", func(t *testing.T) {
		mock := &mockApp{
			watchFunc: func(_ context.Context, _ app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		cli := commands.New(mock)
		cli.SetArgs([]string{"watch"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		err := cli.Execute(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("rejects extra arguments", func(t *testing.T) {
		cli := commands.New(&mockApp{})
		cli.SetArgs([]string{"watch", "a", "b"})
		cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))

		require.Error(t, cli.Execute(context.Background()))
	})
}

func TestCommands_Snapshot(t *testing.T) {
	var captured app.RunOptions
	mock := &mockApp{
		snapshotFunc: func(_ context.Context, opts app.RunOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetArgs([]string{"snapshot", "-b", "walk", "./docs"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Equal(t, "./docs", captured.Root)
	assert.Equal(t, "walk", captured.Backend)
}

func TestCommands_Version(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "pollwatch version "+build.Version)
}

func TestCommands_VersionFlag(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"--version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), build.Commit)
}

func TestCommands_VerboseOwnsShortFlag(t *testing.T) {
	var captured app.RunOptions
	mock := &mockApp{
		snapshotFunc: func(_ context.Context, opts app.RunOptions) error {
			captured = opts
			return nil
		},
	}

	cli := commands.New(mock)
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"snapshot", "-v"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, captured.Verbose)
}

func TestCommands_VersionAfterVerbose(t *testing.T) {
	cli := commands.New(&mockApp{})

	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"-v", "version"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.Contains(t, buf.String(), "pollwatch version "+build.Version)
}
