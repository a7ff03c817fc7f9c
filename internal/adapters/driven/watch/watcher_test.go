package watch

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestWatcher(dir string) *Watcher {
	return New(dir, regexp.MustCompile(`\.txt$`),
		WithSettle(100*time.Millisecond),
		WithMinInterval(0))
}

// drain waits for ch to close so the watch goroutine has exited.
func drain(ch <-chan []string) {
	for range ch {
	}
}

func TestWatcher_EmitsBatch(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := newTestWatcher(dir).Changes(ctx)
	require.NoError(t, err)
	defer drain(changes)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.txt"), []byte("b"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.md"), []byte("c"), 0644))

	select {
	case batch := <-changes:
		assert.Equal(t, []string{"a.txt", "b.txt"}, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change batch")
	}
}

func TestWatcher_NestedDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "notes"), 0755))
	ctx, cancel := context.WithCancel(context.Background())

	changes, err := newTestWatcher(dir).Changes(ctx)
	require.NoError(t, err)
	defer drain(changes)
	defer cancel()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes", "n.txt"), []byte("n"), 0644))

	select {
	case batch := <-changes:
		assert.Equal(t, []string{"notes/n.txt"}, batch)
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for change batch")
	}
}

func TestWatcher_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	changes, err := newTestWatcher(t.TempDir()).Changes(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	_, err := newTestWatcher(filepath.Join(t.TempDir(), "missing")).Changes(context.Background())
	assert.Error(t, err)
}

func TestWatcher_Handle(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0755))

	fsw, err := fsnotify.NewWatcher()
	require.NoError(t, err)
	defer fsw.Close()

	w := newTestWatcher(dir)

	tests := []struct {
		name    string
		path    string
		op      fsnotify.Op
		wantKey string
		want    bool
	}{
		{name: "create", path: "a.txt", op: fsnotify.Create, wantKey: "a.txt", want: true},
		{name: "write", path: "a.txt", op: fsnotify.Write, wantKey: "a.txt", want: true},
		{name: "remove", path: "gone.txt", op: fsnotify.Remove, wantKey: "gone.txt", want: true},
		{name: "rename", path: "old.txt", op: fsnotify.Rename, wantKey: "old.txt", want: true},
		{name: "chmod ignored", path: "a.txt", op: fsnotify.Chmod},
		{name: "pattern mismatch", path: "a.md", op: fsnotify.Write},
		{name: "hidden file", path: ".a.txt", op: fsnotify.Write},
		{name: "hidden directory", path: ".git/x.txt", op: fsnotify.Write},
		{name: "new directory", path: "sub", op: fsnotify.Create},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, ok := w.handle(fsw, fsnotify.Event{Name: filepath.Join(dir, tt.path), Op: tt.op})
			assert.Equal(t, tt.want, ok)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestIsHidden(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.txt", false},
		{"dir/a.txt", false},
		{".a.txt", true},
		{"dir/.cache/a.txt", true},
		{".", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, isHidden(tt.path))
		})
	}
}
