// Package watch reports changes to input files so an index can be rebuilt.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/graphidx/internal/logger"
)

const (
	// DefaultSettle is how long the directory must be quiet before a batch is emitted.
	DefaultSettle = 500 * time.Millisecond

	// DefaultMinInterval is the minimum spacing between emitted batches.
	DefaultMinInterval = 5 * time.Second
)

var log = logger.For("watch")

// Watcher emits batches of changed input keys under a directory tree.
// Keys are slash-separated paths relative to the directory, matching the
// keys file storage reports.
type Watcher struct {
	dir     string
	pattern *regexp.Regexp
	settle  time.Duration
	limiter *rate.Limiter
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period that closes a batch.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) { w.settle = d }
}

// WithMinInterval sets the minimum spacing between batches.
// Zero disables the limit.
func WithMinInterval(d time.Duration) Option {
	return func(w *Watcher) {
		if d <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// New creates a watcher for dir. Only keys matching pattern are reported;
// a nil pattern matches everything.
func New(dir string, pattern *regexp.Regexp, opts ...Option) *Watcher {
	w := &Watcher{
		dir:     dir,
		pattern: pattern,
		settle:  DefaultSettle,
		limiter: rate.NewLimiter(rate.Every(DefaultMinInterval), 1),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Changes starts watching and returns a channel of sorted, de-duplicated key
// batches. The channel is closed when ctx is done or the watcher fails.
func (w *Watcher) Changes(ctx context.Context) (<-chan []string, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.addTree(fsw, w.dir); err != nil {
		fsw.Close()
		return nil, err
	}

	out := make(chan []string)
	go w.loop(ctx, fsw, out)
	return out, nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher, out chan<- []string) {
	defer close(out)
	defer fsw.Close()

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.settle)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			key, relevant := w.handle(fsw, event)
			if !relevant {
				continue
			}
			pending[key] = struct{}{}
			timer.Reset(w.settle)

		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			log.Warn("watch error: %v", err)

		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			if err := w.limiter.Wait(ctx); err != nil {
				return
			}
			batch := make([]string, 0, len(pending))
			for key := range pending {
				batch = append(batch, key)
			}
			sort.Strings(batch)
			clear(pending)

			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// handle filters one event and returns its key. New directories are added
// to the watch so files created inside them are seen.
func (w *Watcher) handle(fsw *fsnotify.Watcher, event fsnotify.Event) (string, bool) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return "", false
	}

	rel, err := filepath.Rel(w.dir, event.Name)
	if err != nil || isHidden(rel) {
		return "", false
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fsw, event.Name); err != nil {
				log.Warn("watching %s: %v", event.Name, err)
			}
			return "", false
		}
	}

	key := filepath.ToSlash(rel)
	if w.pattern != nil && !w.pattern.MatchString(key) {
		return "", false
	}
	log.Debug("%s %s", event.Op, key)
	return key, true
}

// addTree watches root and every non-hidden directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != root {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fsw.Add(path)
	})
}

// isHidden returns true if any element of the relative path starts with a dot.
func isHidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") && part != "." && part != ".." {
			return true
		}
	}
	return false
}
