package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitRebuild(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rebuild, got none")
	}
}

func TestWatcher_DebouncesAndFollowsNewDirs(t *testing.T) {
	root := t.TempDir()
	rebuilt := make(chan struct{}, 16)
	w, err := NewWatcher(root, 100*time.Millisecond, func(context.Context) error {
		rebuilt <- struct{}{}
		return nil
	}, quietLog())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})

	for _, name := range []string{"a.json", "b.json", "c.json"} {
		require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte("{}"), 0o644))
	}
	waitRebuild(t, rebuilt)

	select {
	case <-rebuilt:
		t.Fatal("expected a single rebuild for a burst of writes, got two")
	case <-time.After(400 * time.Millisecond):
	}

	sub := filepath.Join(root, "blogs")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitRebuild(t, rebuilt)

	// Give the watcher a moment to register the new directory.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(sub, "post.json"), []byte("{}"), 0o644))
	waitRebuild(t, rebuilt)
}

func TestWatcher_StopsOnCancel(t *testing.T) {
	w, err := NewWatcher(t.TempDir(), 0, func(context.Context) error { return nil }, quietLog())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}

func TestNewWatcher_MissingRoot(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), 0, func(context.Context) error { return nil }, quietLog())
	require.Error(t, err)
}
