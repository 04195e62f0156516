// Package watch re-runs a build when the site configuration, sidebar files or
// content directories change.
package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	foundationerrors "git.home.luguber.info/inful/docnav/internal/foundation/errors"
	"git.home.luguber.info/inful/docnav/internal/logfields"
	"git.home.luguber.info/inful/docnav/internal/util/sets"
)

const (
	DefaultQuietWindow = 300 * time.Millisecond
	DefaultMaxDelay    = 3 * time.Second
)

// RebuildFunc runs one build. Errors are logged and the watcher keeps going.
type RebuildFunc func(ctx context.Context) error

// Config selects what is watched and how changes are coalesced.
type Config struct {
	// Files are watched through their parent directory.
	Files []string
	// Trees are watched recursively. Trees that do not exist yet are picked
	// up when they are created inside a watched directory.
	Trees []string
	// Ignore lists directories whose changes never trigger a rebuild, such as
	// the output directory.
	Ignore []string

	// QuietWindow is how long the inputs must stay unchanged before a rebuild.
	QuietWindow time.Duration
	// MaxDelay bounds how long a stream of changes can postpone a rebuild.
	MaxDelay time.Duration
}

// Watcher coalesces file system events into serialized rebuilds. A change
// during a running rebuild queues exactly one follow-up.
type Watcher struct {
	cfg     Config
	rebuild RebuildFunc
	fsw     *fsnotify.Watcher

	files  sets.Set[string]
	trees  []string
	ignore []string

	runCh     chan string
	ready     chan struct{}
	readyOnce sync.Once
}

// New creates a watcher. Nothing is watched until Run is called.
func New(cfg Config, rebuild RebuildFunc) (*Watcher, error) {
	if rebuild == nil {
		return nil, foundationerrors.InternalError("watch requires a rebuild function").Build()
	}
	if cfg.QuietWindow <= 0 {
		cfg.QuietWindow = DefaultQuietWindow
	}
	if cfg.MaxDelay < cfg.QuietWindow {
		cfg.MaxDelay = max(DefaultMaxDelay, cfg.QuietWindow)
	}

	w := &Watcher{
		cfg:     cfg,
		rebuild: rebuild,
		files:   sets.New[string](),
		runCh:   make(chan string, 1),
		ready:   make(chan struct{}),
	}
	for _, f := range cfg.Files {
		if abs, err := filepath.Abs(f); err == nil {
			w.files.Add(abs)
		}
	}
	for _, t := range cfg.Trees {
		if abs, err := filepath.Abs(t); err == nil {
			w.trees = append(w.trees, abs)
		}
	}
	for _, d := range cfg.Ignore {
		if abs, err := filepath.Abs(d); err == nil {
			w.ignore = append(w.ignore, abs)
		}
	}
	return w, nil
}

// Ready is closed once Run is watching every input.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Trigger requests a rebuild outside the debounce window, coalescing with
// any rebuild already queued.
func (w *Watcher) Trigger(reason string) {
	select {
	case w.runCh <- reason:
	default:
	}
}

// Run watches until ctx is cancelled. It returns after the running rebuild,
// if any, has finished.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return foundationerrors.FileSystemError("failed to create file watcher").WithCause(err).Build()
	}
	w.fsw = fsw
	defer func() {
		if err := fsw.Close(); err != nil {
			slog.Warn("Error closing file watcher", logfields.Error(err))
		}
	}()

	if err := w.addInputs(); err != nil {
		return err
	}

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.runLoop(ctx)
	}()
	defer wg.Wait()

	slog.Info("Watching for changes", logfields.Count(len(w.fsw.WatchList())))
	w.readyOnce.Do(func() { close(w.ready) })
	w.eventLoop(ctx)
	return nil
}

func (w *Watcher) addInputs() error {
	dirs := sets.New[string]()
	for f := range w.files {
		dirs.Add(filepath.Dir(f))
	}
	for _, d := range sets.Sorted(dirs) {
		if err := w.fsw.Add(d); err != nil {
			return foundationerrors.FileSystemError("failed to watch directory").
				WithCause(err).
				WithContext("path", d).
				Build()
		}
	}
	for _, t := range w.trees {
		if err := w.addTree(t); err != nil {
			return err
		}
	}
	return nil
}

// addTree watches root and every directory below it. A missing root is not
// an error.
func (w *Watcher) addTree(root string) error {
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && (skipName(d.Name()) || w.ignored(p)) {
			return filepath.SkipDir
		}
		return w.fsw.Add(p)
	})
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return foundationerrors.FileSystemError("failed to watch directory tree").
			WithCause(err).
			WithContext("path", root).
			Build()
	}
	return nil
}

// eventLoop debounces events: a rebuild starts once the inputs have been
// quiet for QuietWindow, or MaxDelay after the first change of a burst.
func (w *Watcher) eventLoop(ctx context.Context) {
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	var first time.Time
	var reason string
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(ev.Name); err != nil {
						slog.Warn("Failed to watch new directory", logfields.Path(ev.Name), logfields.Error(err))
					}
				}
			}
			slog.Debug("Change detected", logfields.File(ev.Name), slog.String("op", ev.Op.String()))
			now := time.Now()
			if first.IsZero() {
				first = now
			}
			reason = ev.Name
			delay := w.cfg.QuietWindow
			if remaining := w.cfg.MaxDelay - now.Sub(first); remaining < delay {
				delay = max(remaining, 0)
			}
			timer.Reset(delay)
		case <-timer.C:
			first = time.Time{}
			w.Trigger(reason)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

// runLoop runs rebuilds one at a time.
func (w *Watcher) runLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-w.runCh:
			slog.Info("Rebuilding", slog.String("reason", reason))
			start := time.Now()
			if err := w.rebuild(ctx); err != nil {
				slog.Error("Rebuild failed", logfields.Error(err))
				continue
			}
			slog.Info("Rebuild complete", logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	name := filepath.Clean(ev.Name)
	if w.files.Has(name) {
		return true
	}
	if skipName(filepath.Base(name)) || w.ignored(name) {
		return false
	}
	for _, t := range w.trees {
		if name == t || within(t, name) {
			return true
		}
	}
	return false
}

func (w *Watcher) ignored(p string) bool {
	for _, d := range w.ignore {
		if p == d || within(d, p) {
			return true
		}
	}
	return false
}

func within(dir, p string) bool {
	return strings.HasPrefix(p, dir+string(filepath.Separator))
}

// skipName matches hidden files, editor backups and the temporary files
// artifacts are written through.
func skipName(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasSuffix(name, "~")
}
