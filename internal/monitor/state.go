// Package monitor detects new articles exactly once: durable watch state,
// a change detector over the clippings directory, and a filesystem watcher
// front-end that feeds qualifying events to the pipeline one at a time.
package monitor

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	lastRunFile   = "last_run.txt"
	processedFile = "processed_files.json"
)

// State persists the watch state across process restarts: the last scan
// time as an ISO-8601 UTC string and the processed set as a JSON array of
// absolute paths. Missing or corrupt files mean "never run" (epoch time
// and an empty set), never a fatal error.
type State struct {
	dir string
}

// NewState creates the state store rooted at dir, creating it if needed.
func NewState(dir string) (*State, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}
	return &State{dir: dir}, nil
}

// LastRun loads the persisted last scan time, or the epoch if absent or
// unparseable.
func (s *State) LastRun() time.Time {
	data, err := os.ReadFile(filepath.Join(s.dir, lastRunFile))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	t, err := time.Parse(time.RFC3339Nano, strings.TrimSpace(string(data)))
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return t.UTC()
}

// SetLastRun persists the scan time in UTC.
func (s *State) SetLastRun(t time.Time) error {
	data := []byte(t.UTC().Format(time.RFC3339Nano))
	if err := os.WriteFile(filepath.Join(s.dir, lastRunFile), data, 0o644); err != nil {
		return fmt.Errorf("saving last run time: %w", err)
	}
	return nil
}

// Processed loads the set of already-processed absolute paths, or an empty
// set if the file is absent or corrupt.
func (s *State) Processed() map[string]struct{} {
	set := make(map[string]struct{})

	data, err := os.ReadFile(filepath.Join(s.dir, processedFile))
	if err != nil {
		return set
	}
	var paths []string
	if err := json.Unmarshal(data, &paths); err != nil {
		return set
	}
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// SaveProcessed persists the processed set.
func (s *State) SaveProcessed(set map[string]struct{}) error {
	paths := make([]string, 0, len(set))
	for p := range set {
		paths = append(paths, p)
	}
	data, err := json.Marshal(paths)
	if err != nil {
		return fmt.Errorf("encoding processed set: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, processedFile), data, 0o644); err != nil {
		return fmt.Errorf("saving processed set: %w", err)
	}
	return nil
}
