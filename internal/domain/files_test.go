package domain

import (
	"strings"
	"testing"
	"time"
)

var testDate = time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

func sampleTree() ArticleTree {
	return ParseArticle("# Summary\nOverview.\n# Intro\nintro body\n## Background\nbg body\n# Results\nresults body\n# Special: References\nref list\n")
}

func TestSanitizeFilename(t *testing.T) {
	t.Run("replaces forbidden characters", func(t *testing.T) {
		got := SanitizeFilename(`A/B:C`)
		if got != "A-B-C" {
			t.Errorf("expected A-B-C, got %q", got)
		}
	})

	t.Run("removes every forbidden character", func(t *testing.T) {
		got := SanitizeFilename(`a/b\c:d*e?f"g<h>i|j`)
		if strings.ContainsAny(got, `/\:*?"<>|`) {
			t.Errorf("forbidden characters remain in %q", got)
		}
	})

	t.Run("leaves clean names untouched", func(t *testing.T) {
		if got := SanitizeFilename("Plain Title"); got != "Plain Title" {
			t.Errorf("expected unchanged name, got %q", got)
		}
	})
}

func TestBuildFileSet(t *testing.T) {
	tree := sampleTree()
	b := NewBreakdown("My Article", "Clippings/My Article.md")
	files := BuildFileSet(tree, b, testDate)

	t.Run("produces one document per node in write order", func(t *testing.T) {
		want := []string{
			"My Article-Breakdown/00-Summary.md",
			"My Article-Breakdown/01-Intro.md",
			"My Article-Breakdown/01.01-Background.md",
			"My Article-Breakdown/02-Results.md",
			"My Article-Breakdown/References.md",
		}
		if len(files) != len(want) {
			t.Fatalf("expected %d files, got %d", len(want), len(files))
		}
		for i, w := range want {
			if files[i].Path != w {
				t.Errorf("file %d: expected path %q, got %q", i, w, files[i].Path)
			}
		}
	})

	t.Run("summary links every section and subsection", func(t *testing.T) {
		summary := files[0].Content
		for _, link := range []string{
			"[[01-Intro.md|Intro]]",
			"[[01.01-Background.md|Background]]",
			"[[02-Results.md|Results]]",
			"[[References.md|References]]",
		} {
			if !strings.Contains(summary, link) {
				t.Errorf("summary missing link %s", link)
			}
		}
		if !strings.Contains(summary, "original_article: Clippings/My Article.md") {
			t.Error("summary missing original_article front matter")
		}
		if !strings.Contains(summary, "date: 2025-03-14") {
			t.Error("summary missing date front matter")
		}
	})

	t.Run("section documents carry back-links", func(t *testing.T) {
		section := files[1].Content
		if !strings.Contains(section, "parent: [[00-Summary.md]]") {
			t.Error("section missing parent front matter")
		}
		if !strings.Contains(section, "[[00-Summary.md|Back to Summary]]") {
			t.Error("section missing back-link footer")
		}
		if !strings.Contains(section, "[[01.01-Background.md|Background]]") {
			t.Error("section missing subsection link")
		}
	})

	t.Run("subsection documents link their parent section", func(t *testing.T) {
		sub := files[2].Content
		if !strings.Contains(sub, "parent: [[01-Intro.md]]") {
			t.Error("subsection missing parent front matter")
		}
		if !strings.Contains(sub, "[[01-Intro.md|Back to Intro]]") {
			t.Error("subsection missing back-link")
		}
	})

	t.Run("special documents have no parent back-link", func(t *testing.T) {
		special := files[4].Content
		if strings.Contains(special, "parent:") {
			t.Error("special node should not carry a parent link")
		}
		if !strings.Contains(special, "tags: [special-node, article-breakdown]") {
			t.Error("special node missing tags")
		}
	})

	t.Run("rebuilding an unchanged tree is idempotent", func(t *testing.T) {
		again := BuildFileSet(tree, b, testDate)
		if len(again) != len(files) {
			t.Fatalf("expected %d files, got %d", len(files), len(again))
		}
		for i := range files {
			if again[i] != files[i] {
				t.Errorf("file %d differs between runs", i)
			}
		}
	})

	t.Run("empty tree still yields a summary document", func(t *testing.T) {
		minimal := BuildFileSet(ArticleTree{}, b, testDate)
		if len(minimal) != 1 {
			t.Fatalf("expected 1 file, got %d", len(minimal))
		}
		if minimal[0].Path != b.SummaryPath() {
			t.Errorf("expected summary path, got %q", minimal[0].Path)
		}
	})

	t.Run("sanitizes section titles in paths", func(t *testing.T) {
		dirty := ParseArticle("# A/B:C\nbody\n")
		out := BuildFileSet(dirty, b, testDate)
		if out[1].Path != "My Article-Breakdown/01-A-B-C.md" {
			t.Errorf("expected sanitized path, got %q", out[1].Path)
		}
	})
}
