package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/typelint/typelint/internal/types"
)

// StartWatching begins watching the given directories (recursively) and
// re-lints any .py or .pyi file on change.
func (e *Engine) StartWatching(dirs []string) error {
	if e.isWatching {
		return fmt.Errorf("already watching")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}
	e.watcher = watcher
	e.watchDirs = dirs

	for _, dir := range e.watchDirs {
		err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if info.IsDir() && !e.IsPathIgnored(path) {
				return e.watcher.Add(path)
			}
			return nil
		})
		if err != nil {
			e.watcher.Close()
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}

	e.isWatching = true
	go e.watchLoop()
	return nil
}

func (e *Engine) StopWatching() error {
	if !e.isWatching {
		return nil
	}

	e.isWatching = false
	return e.watcher.Close()
}

func (e *Engine) watchLoop() {
	for e.isWatching {
		select {
		case event, ok := <-e.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(event)
		case err, ok := <-e.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(event fsnotify.Event) {
	if event.Op&fsnotify.Write != fsnotify.Write {
		return
	}
	if !strings.HasSuffix(event.Name, ".py") && !strings.HasSuffix(event.Name, ".pyi") {
		return
	}
	if e.IsPathIgnored(event.Name) {
		return
	}

	// wait for a while after file change to consider multiple changes as one
	time.Sleep(100 * time.Millisecond)
	diagnostics, err := e.Run(event.Name)
	if err != nil {
		e.logger.Error("lint error", zap.String("file", event.Name), zap.Error(err))
		return
	}
	e.reportWatchResults(event.Name, diagnostics)
}

func (e *Engine) reportWatchResults(filename string, diagnostics []tt.Diagnostic) {
	if len(diagnostics) == 0 {
		e.logger.Info("no issues found", zap.String("file", filename))
		return
	}

	e.logger.Info("issues found",
		zap.String("file", filename),
		zap.Int("count", len(diagnostics)))
	for _, d := range diagnostics {
		e.logger.Info(fmt.Sprintf("- %s: %s", d.Rule, d.Message),
			zap.Int("line", d.Start.Line))
	}
}
