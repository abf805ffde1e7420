package watch_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/reconciler/internal/watch"
)

func startWatcher(t *testing.T, files ...string) <-chan []string {
	t.Helper()
	w, err := watch.New(watch.Config{Files: files, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(files []string) { changes <- files })
	}()
	t.Cleanup(func() {
		cancel()
		assert.ErrorIs(t, <-done, context.Canceled)
	})
	return changes
}

func TestWatcherDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: div"), 0o644))

	changes := startWatcher(t, path)

	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("type: div%d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case files := <-changes:
		abs, _ := filepath.Abs(path)
		assert.Equal(t, []string{abs}, files)
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case files := <-changes:
		t.Fatalf("unexpected second notification: %v", files)
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tree.yaml")
	require.NoError(t, os.WriteFile(path, []byte("type: div"), 0o644))

	changes := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x"), 0o644))

	select {
	case files := <-changes:
		t.Fatalf("unexpected notification: %v", files)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNewErrors(t *testing.T) {
	_, err := watch.New(watch.Config{})
	assert.Error(t, err)

	_, err = watch.New(watch.Config{Files: []string{filepath.Join(t.TempDir(), "missing", "tree.yaml")}})
	assert.Error(t, err)
}
