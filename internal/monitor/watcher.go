package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// RunFunc processes one detected article to completion.
type RunFunc func(ctx context.Context, path string) error

// eventBuffer bounds the queue between event delivery and the consumer.
const eventBuffer = 64

// Watcher subscribes to creation events in exactly one directory and runs
// the pipeline once per qualifying event. Events flow through a bounded
// channel drained by a single consumer, so runs never overlap and no
// cross-run locking is needed.
type Watcher struct {
	dir      string
	detector *Detector
	run      RunFunc
	log      *slog.Logger
}

// NewWatcher creates a watcher over dir.
func NewWatcher(dir string, detector *Detector, run RunFunc, log *slog.Logger) *Watcher {
	if log == nil {
		log = slog.Default()
	}
	return &Watcher{dir: dir, detector: detector, run: run, log: log}
}

// Watch blocks on filesystem events until the context is cancelled. A run
// failure is logged and leaves the item unmarked; it never stops the
// watcher.
func (w *Watcher) Watch(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.log.Info("watching for new articles", "dir", w.dir)

	events := make(chan string, eventBuffer)
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.consume(ctx, events)
	}()

	for {
		select {
		case <-ctx.Done():
			close(events)
			<-done
			return ctx.Err()

		case ev, ok := <-fw.Events:
			if !ok {
				close(events)
				<-done
				return nil
			}
			if !ev.Has(fsnotify.Create) || !w.qualifies(ev.Name) {
				continue
			}
			select {
			case events <- ev.Name:
			case <-ctx.Done():
			}

		case err, ok := <-fw.Errors:
			if !ok {
				continue
			}
			w.log.Warn("watch error", "error", err)
		}
	}
}

// qualifies filters events to markdown files created directly in the
// watched directory; nested subdirectories are ignored.
func (w *Watcher) qualifies(path string) bool {
	if filepath.Ext(path) != articleExt {
		return false
	}
	return filepath.Clean(filepath.Dir(path)) == filepath.Clean(w.dir)
}

// consume drains the event channel sequentially: one orchestration run to
// completion before the next event is considered.
func (w *Watcher) consume(ctx context.Context, events <-chan string) {
	for path := range events {
		if !w.detector.ShouldProcess(path) {
			w.log.Debug("skipping already-processed article", "path", path)
			continue
		}

		w.log.Info("processing new article", "path", path)
		if err := w.run(ctx, path); err != nil {
			w.log.Error("breakdown run failed", "path", path, "error", err)
			continue
		}

		if err := w.detector.MarkProcessed(path); err != nil {
			w.log.Error("recording processed article", "path", path, "error", err)
		}
	}
}
