package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestDetector(t *testing.T) (*Detector, string) {
	t.Helper()
	watchDir := t.TempDir()
	s, err := NewState(t.TempDir())
	if err != nil {
		t.Fatalf("NewState: %v", err)
	}
	return NewDetector(s, watchDir, nil), watchDir
}

func writeArticle(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("# Summary\nhello\n"), 0o644); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDetector(t *testing.T) {
	t.Run("fresh article should be processed", func(t *testing.T) {
		d, dir := newTestDetector(t)
		path := writeArticle(t, dir, "new.md")
		if !d.ShouldProcess(path) {
			t.Error("expected fresh article to qualify")
		}
	})

	t.Run("processed items are skipped regardless of mtime", func(t *testing.T) {
		d, dir := newTestDetector(t)
		path := writeArticle(t, dir, "done.md")
		if err := d.MarkProcessed(path); err != nil {
			t.Fatalf("MarkProcessed: %v", err)
		}
		// Bump the mtime past any scan boundary.
		future := time.Now().Add(time.Hour)
		os.Chtimes(path, future, future)

		if d.ShouldProcess(path) {
			t.Error("processed item must never qualify again")
		}
	})

	t.Run("items older than the last scan are skipped", func(t *testing.T) {
		d, dir := newTestDetector(t)
		path := writeArticle(t, dir, "old.md")
		if err := d.CommitScan(time.Now().Add(time.Minute)); err != nil {
			t.Fatalf("CommitScan: %v", err)
		}
		if d.ShouldProcess(path) {
			t.Error("item modified before the last scan must not qualify")
		}
	})

	t.Run("non-markdown and missing files are skipped", func(t *testing.T) {
		d, dir := newTestDetector(t)
		txt := filepath.Join(dir, "note.txt")
		os.WriteFile(txt, []byte("x"), 0o644)

		if d.ShouldProcess(txt) {
			t.Error("non-markdown file must not qualify")
		}
		if d.ShouldProcess(filepath.Join(dir, "gone.md")) {
			t.Error("missing file must not qualify")
		}
	})

	t.Run("scan returns only qualifying direct children", func(t *testing.T) {
		d, dir := newTestDetector(t)
		want := writeArticle(t, dir, "one.md")
		writeArticle(t, dir, "two.md")
		os.Mkdir(filepath.Join(dir, "nested"), 0o755)
		writeArticle(t, filepath.Join(dir, "nested"), "deep.md")

		other := filepath.Join(dir, "two.md")
		if err := d.MarkProcessed(other); err != nil {
			t.Fatalf("MarkProcessed: %v", err)
		}

		items, err := d.Scan()
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected 1 item, got %d: %v", len(items), items)
		}
		abs, _ := filepath.Abs(want)
		gotAbs, _ := filepath.Abs(items[0])
		if gotAbs != abs {
			t.Errorf("expected %s, got %s", abs, gotAbs)
		}
	})

	t.Run("processed set survives a reload", func(t *testing.T) {
		watchDir := t.TempDir()
		stateDir := t.TempDir()
		s, err := NewState(stateDir)
		if err != nil {
			t.Fatalf("NewState: %v", err)
		}
		d := NewDetector(s, watchDir, nil)
		path := writeArticle(t, watchDir, "persist.md")
		if err := d.MarkProcessed(path); err != nil {
			t.Fatalf("MarkProcessed: %v", err)
		}

		reloaded := NewDetector(s, watchDir, nil)
		if reloaded.ShouldProcess(path) {
			t.Error("processed set must survive a restart")
		}
	})
}
