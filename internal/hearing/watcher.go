package hearing

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// PromptWatcher hot-reloads the prompt override file on change.
type PromptWatcher struct {
	watcher  *fsnotify.Watcher
	logger   zerolog.Logger
	source   *PromptSource
	path     string
	debounce time.Duration
	timer    *time.Timer
	stopCh   chan struct{}
}

// WatchPromptFile loads the override file and starts watching it for
// changes. Editors replace files rather than rewrite them in place, so
// the watch is on the parent directory and events are filtered by name.
func WatchPromptFile(path string, source *PromptSource, logger zerolog.Logger) (*PromptWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	pw := &PromptWatcher{
		watcher:  watcher,
		logger:   logger,
		source:   source,
		path:     filepath.Clean(path),
		debounce: 500 * time.Millisecond,
		stopCh:   make(chan struct{}),
	}

	if err := watcher.Add(filepath.Dir(pw.path)); err != nil {
		watcher.Close()
		return nil, err
	}

	pw.reload()
	go pw.run()

	return pw, nil
}

// Stop stops the watcher.
func (pw *PromptWatcher) Stop() error {
	close(pw.stopCh)
	return pw.watcher.Close()
}

// run processes file system events
func (pw *PromptWatcher) run() {
	for {
		select {
		case event, ok := <-pw.watcher.Events:
			if !ok {
				return
			}

			if filepath.Clean(event.Name) != pw.path {
				continue
			}

			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pw.logger.Debug().
					Str("file", filepath.Base(event.Name)).
					Str("op", event.Op.String()).
					Msg("Prompt file change detected")

				pw.scheduleReload()
			}

		case err, ok := <-pw.watcher.Errors:
			if !ok {
				return
			}
			pw.logger.Error().Err(err).Msg("Prompt watcher error")

		case <-pw.stopCh:
			return
		}
	}
}

// scheduleReload debounces reloads so a burst of editor events causes one.
func (pw *PromptWatcher) scheduleReload() {
	if pw.timer != nil {
		pw.timer.Stop()
	}

	pw.timer = time.AfterFunc(pw.debounce, pw.reload)
}

func (pw *PromptWatcher) reload() {
	if err := pw.source.LoadFile(pw.path); err != nil {
		pw.source.Reset()
		pw.logger.Warn().
			Err(err).
			Str("file", pw.path).
			Msg("Prompt override unavailable, using built-in prompt")
		return
	}

	pw.logger.Info().Str("file", pw.path).Msg("Prompt override loaded")
}
