package jobfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/qeforge/qeforge/pkg/telemetry"
)

// DefaultDebounce is the quiet period after the last change before a job
// file is reloaded.
const DefaultDebounce = 500 * time.Millisecond

// Watcher reloads a job file whenever it changes on disk.
type Watcher struct {
	loader   *Loader
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for the job file at path.
func NewWatcher(loader *Loader, path string) *Watcher {
	return &Watcher{
		loader:   loader,
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
	}
}

// SetDebounce overrides the quiet period. Non-positive values are ignored.
func (w *Watcher) SetDebounce(d time.Duration) {
	if d > 0 {
		w.debounce = d
	}
}

// Run loads the job once, then again after every write or create of the
// file, calling onChange with the result each time. Load errors are passed
// to onChange and do not stop the watcher. Run blocks until ctx is done and
// then returns nil; it returns an error only if watching cannot start.
//
// The parent directory is watched rather than the file so that editors
// replacing the file by rename are still seen.
func (w *Watcher) Run(ctx context.Context, onChange func(*Job, error)) error {
	logger := telemetry.FromContext(ctx).NewComponentLogger("watcher").WithJob(w.path)

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(w.path), err)
	}

	onChange(w.loader.Load(ctx, w.path))
	logger.Info("watching job file")

	// Timer callbacks only signal; loading stays on this goroutine.
	reload := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			logger.Debug("watcher stopped")
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}

			logger.Debugf("job file changed (%s)", event.Op)
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			onChange(w.loader.Load(ctx, w.path))

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.WithError(err).Error("watcher error")
		}
	}
}
