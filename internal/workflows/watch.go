package workflows

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/PolarWolf314/pixi-devenv/internal/configs"
	logger "github.com/PolarWolf314/pixi-devenv/internal/logging"
	"github.com/PolarWolf314/pixi-devenv/internal/workspace"
)

// WatchOptions configures the watch workflow.
type WatchOptions struct {
	// Dir is the directory of the starting project.
	Dir string

	// Debounce is how long to wait for further changes before updating.
	// Defaults to configs.DefaultDebounceMillis.
	Debounce time.Duration

	// OnUpdate receives the outcome of every update run, including the
	// initial one. It is called from the watch loop.
	OnUpdate func(*UpdateResult, error)

	Log logger.Logger
}

// Watch runs Update once, then again whenever a pixi.devenv.toml of the
// workspace changes, until ctx is cancelled.
//
// The set of watched files follows the workspace: it is recomputed after
// every run, so adding an upstream project starts watching it. Update errors
// are reported to OnUpdate and do not stop the loop.
func Watch(ctx context.Context, opts WatchOptions) error {
	if opts.Debounce <= 0 {
		opts.Debounce = configs.DefaultDebounceMillis * time.Millisecond
	}
	if opts.OnUpdate == nil {
		opts.OnUpdate = func(*UpdateResult, error) {}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	set := &watchSet{
		watcher: watcher,
		files:   map[string]bool{},
		dirs:    map[string]bool{},
		log:     opts.Log,
	}
	run := func() {
		result, err := Update(ctx, UpdateOptions{Dir: opts.Dir, Log: opts.Log})
		set.refresh(opts.Dir, result)
		opts.OnUpdate(result, err)
	}
	run()

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !set.matches(event) {
				continue
			}
			opts.Log.Debugf("Change detected: %s", event)
			if timer == nil {
				timer = time.NewTimer(opts.Debounce)
			} else {
				timer.Reset(opts.Debounce)
			}
			fire = timer.C
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			opts.Log.Warnf("File watcher error: %v", err)
		case <-fire:
			fire = nil
			run()
		}
	}
}

// watchSet tracks the project files being watched. Directories are watched
// instead of files so that editors replacing a file do not drop the watch.
type watchSet struct {
	watcher *fsnotify.Watcher
	files   map[string]bool
	dirs    map[string]bool
	log     logger.Logger
}

// refresh replaces the watched files with those of the workspace in dir.
// When the workspace cannot be built the previous files stay watched.
func (s *watchSet) refresh(dir string, result *UpdateResult) {
	var files []string
	if result != nil {
		files = result.Files
	} else if ws, err := workspace.FromStartingFile(devenvFile(dir)); err == nil {
		files = ws.Files()
	}
	if files == nil {
		files = append(filesOf(s.files), devenvFile(dir))
	}

	s.files = make(map[string]bool, len(files))
	dirs := make(map[string]bool)
	for _, file := range files {
		file = filepath.Clean(file)
		s.files[file] = true
		dirs[filepath.Dir(file)] = true
	}

	for d := range s.dirs {
		if !dirs[d] {
			if err := s.watcher.Remove(d); err != nil {
				s.log.Debugf("Failed to stop watching %s: %v", d, err)
			}
		}
	}
	for d := range dirs {
		if !s.dirs[d] {
			if err := s.watcher.Add(d); err != nil {
				s.log.Warnf("Failed to watch %s: %v", d, err)
				delete(dirs, d)
			}
		}
	}
	s.dirs = dirs
}

func (s *watchSet) matches(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	return s.files[filepath.Clean(event.Name)]
}

func filesOf(set map[string]bool) []string {
	files := make([]string, 0, len(set))
	for file := range set {
		files = append(files, file)
	}
	return files
}
