package monitor

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"
)

// Extension watched articles must carry.
const articleExt = ".md"

// Detector decides which newly-created documents require processing. It is
// the only writer of the watch state: the processed set grows only after a
// run completes, and the last-run time advances at the end of every scan
// regardless of outcome.
type Detector struct {
	state     *State
	dir       string
	log       *slog.Logger
	lastRun   time.Time
	processed map[string]struct{}
}

// NewDetector loads the persisted watch state for the given directory.
func NewDetector(state *State, dir string, log *slog.Logger) *Detector {
	if log == nil {
		log = slog.Default()
	}
	return &Detector{
		state:     state,
		dir:       dir,
		log:       log,
		lastRun:   state.LastRun(),
		processed: state.Processed(),
	}
}

// ShouldProcess reports whether the item is a new article: modified after
// the last scan and not already processed. Items that cannot be resolved or
// stat'd are skipped.
func (d *Detector) ShouldProcess(path string) bool {
	abs, err := filepath.Abs(path)
	if err != nil {
		d.log.Warn("skipping unresolvable path", "path", path, "error", err)
		return false
	}
	if _, done := d.processed[abs]; done {
		return false
	}

	info, err := os.Stat(abs)
	if err != nil {
		d.log.Warn("skipping unstatable file", "path", abs, "error", err)
		return false
	}
	if !info.Mode().IsRegular() || filepath.Ext(abs) != articleExt {
		return false
	}
	return info.ModTime().After(d.lastRun)
}

// Scan enumerates direct children of the watched directory and returns the
// items that should be processed. A stat failure on one item does not abort
// the scan of the rest.
func (d *Detector) Scan() ([]string, error) {
	entries, err := os.ReadDir(d.dir)
	if err != nil {
		return nil, fmt.Errorf("reading watch directory: %w", err)
	}

	var items []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(d.dir, entry.Name())
		if d.ShouldProcess(path) {
			items = append(items, path)
		}
	}
	return items, nil
}

// MarkProcessed records a completed item and persists the set immediately.
func (d *Detector) MarkProcessed(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving processed path: %w", err)
	}
	d.processed[abs] = struct{}{}
	return d.state.SaveProcessed(d.processed)
}

// CommitScan advances the last-run time to now. Called at the end of every
// scan cycle whether or not anything was processed, so a crash mid-run does
// not rescan the same window forever; the processed set still guards items
// that were handled.
func (d *Detector) CommitScan(now time.Time) error {
	if err := d.state.SetLastRun(now); err != nil {
		return err
	}
	d.lastRun = now.UTC()
	return nil
}
