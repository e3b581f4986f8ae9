package notify_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/pollwatch/internal/adapters/notify"
	"go.trai.ch/pollwatch/internal/core/domain"
	"go.trai.ch/pollwatch/internal/engine/events"
)

func TestBridge_MapsKindsToOps(t *testing.T) {
	bus := events.NewBus()
	b := notify.New(bus, "/srv", 8)
	defer b.Close()

	bus.Publish(domain.PathsEvent{EventKind: domain.EventCreated, Paths: []string{"a.txt", "src/b.go"}})
	bus.Publish(domain.PathsEvent{EventKind: domain.EventModified, Paths: []string{"c.txt"}})
	bus.Publish(domain.PathsEvent{EventKind: domain.EventDeleted, Paths: []string{"d.txt"}})
	bus.Publish(domain.ChangeEvent{Change: domain.ChangeSet{Created: []string{"ignored"}}})

	want := []fsnotify.Event{
		{Name: filepath.Join("/srv", "a.txt"), Op: fsnotify.Create},
		{Name: filepath.Join("/srv", "src", "b.go"), Op: fsnotify.Create},
		{Name: filepath.Join("/srv", "c.txt"), Op: fsnotify.Write},
		{Name: filepath.Join("/srv", "d.txt"), Op: fsnotify.Remove},
	}
	for _, w := range want {
		got := <-b.Events()
		assert.Equal(t, w, got)
	}
	assert.Empty(t, b.Events())
}

func TestBridge_Errors(t *testing.T) {
	bus := events.NewBus()
	b := notify.New(bus, "/srv", 1)
	defer b.Close()

	boom := errors.New("boom")
	bus.Publish(domain.ErrorEvent{Err: boom})

	require.ErrorIs(t, <-b.Errors(), boom)
}

func TestBridge_Close(t *testing.T) {
	bus := events.NewBus()
	b := notify.New(bus, "/srv", 0)

	require.Equal(t, 4, bus.Len())
	require.NoError(t, b.Close())
	require.NoError(t, b.Close())
	assert.Zero(t, bus.Len())

	_, open := <-b.Events()
	assert.False(t, open)
	_, open = <-b.Errors()
	assert.False(t, open)

	// Publishing after Close is dropped.
	bus.Publish(domain.PathsEvent{EventKind: domain.EventCreated, Paths: []string{"late"}})
}

func TestBridge_CloseUnblocksPublisher(t *testing.T) {
	bus := events.NewBus()
	b := notify.New(bus, "/srv", 0)

	done := make(chan struct{})
	go func() {
		defer close(done)
		bus.Publish(domain.PathsEvent{EventKind: domain.EventCreated, Paths: []string{"a", "b"}})
	}()

	got := <-b.Events()
	assert.Equal(t, filepath.Join("/srv", "a"), got.Name)

	require.NoError(t, b.Close())
	<-done
}
