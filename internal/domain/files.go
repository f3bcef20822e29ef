package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// FileSpec is one output document of a breakdown: a vault-relative path and
// the full markdown content to write there.
type FileSpec struct {
	Path    string
	Content string
}

// Breakdown identifies one article's output set: the article title, the
// vault-relative source path, and the folder all generated files live in.
type Breakdown struct {
	Title      string
	SourcePath string
	Folder     string
}

// NewBreakdown derives the breakdown folder from the article title.
func NewBreakdown(title, sourcePath string) Breakdown {
	return Breakdown{
		Title:      title,
		SourcePath: sourcePath,
		Folder:     SanitizeFilename(title) + "-Breakdown",
	}
}

// SummaryPath returns the vault-relative path of the summary document.
func (b Breakdown) SummaryPath() string {
	return path.Join(b.Folder, "00-Summary.md")
}

// SectionPath returns the path for the n-th section (1-based).
func (b Breakdown) SectionPath(n int, title string) string {
	return path.Join(b.Folder, sectionFilename(n, title))
}

// SubsectionPath returns the path for subsection m of section n (1-based).
func (b Breakdown) SubsectionPath(n, m int, title string) string {
	return path.Join(b.Folder, subsectionFilename(n, m, title))
}

// SpecialPath returns the path for a special node document.
func (b Breakdown) SpecialPath(title string) string {
	return path.Join(b.Folder, SanitizeFilename(title)+".md")
}

// CanvasPath returns the path of the canvas document.
func (b Breakdown) CanvasPath() string {
	return path.Join(b.Folder, SanitizeFilename(b.Title)+"-Breakdown.canvas")
}

func sectionFilename(n int, title string) string {
	return fmt.Sprintf("%02d-%s.md", n, SanitizeFilename(title))
}

func subsectionFilename(n, m int, title string) string {
	return fmt.Sprintf("%02d.%02d-%s.md", n, m, SanitizeFilename(title))
}

// SanitizeFilename replaces characters that are invalid in vault filenames
// with hyphens.
func SanitizeFilename(name string) string {
	const invalid = `/\:*?"<>|`
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(invalid, r) {
			return '-'
		}
		return r
	}, name)
}

// BuildFileSet turns an ArticleTree into the ordered list of documents that
// materialize it: the summary first (so its path is known for back-links),
// then sections in order, each section's subsections in order, then special
// nodes. Paths depend only on tree position and titles, so rebuilding an
// unchanged tree yields the same set.
func BuildFileSet(tree ArticleTree, b Breakdown, now time.Time) []FileSpec {
	date := now.Format("2006-01-02")

	files := make([]FileSpec, 0, countFiles(tree))
	files = append(files, FileSpec{
		Path:    b.SummaryPath(),
		Content: summaryContent(tree, b, date),
	})

	for i, sec := range tree.Sections {
		n := i + 1
		files = append(files, FileSpec{
			Path:    b.SectionPath(n, sec.Title),
			Content: sectionContent(sec, n, b, date),
		})
		for j, sub := range sec.Subsections {
			m := j + 1
			files = append(files, FileSpec{
				Path:    b.SubsectionPath(n, m, sub.Title),
				Content: subsectionContent(sub, sec, n, b, date),
			})
		}
	}

	for _, sp := range tree.Specials {
		files = append(files, FileSpec{
			Path:    b.SpecialPath(sp.Title),
			Content: specialContent(sp, b, date),
		})
	}

	return files
}

func countFiles(tree ArticleTree) int {
	n := 1 + len(tree.Sections) + len(tree.Specials)
	for _, sec := range tree.Sections {
		n += len(sec.Subsections)
	}
	return n
}

func summaryContent(tree ArticleTree, b Breakdown, date string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `---
title: Summary of %s
date: %s
original_article: %s
tags: [summary, article-breakdown]
---

# Summary

%s

## Table of Contents

`, b.Title, date, b.SourcePath, tree.Summary)

	for i, sec := range tree.Sections {
		n := i + 1
		fmt.Fprintf(&sb, "- [[%s|%s]]\n", sectionFilename(n, sec.Title), sec.Title)
		if len(sec.Subsections) == 0 {
			continue
		}
		links := make([]string, len(sec.Subsections))
		for j, sub := range sec.Subsections {
			links[j] = fmt.Sprintf("[[%s|%s]]", subsectionFilename(n, j+1, sub.Title), sub.Title)
		}
		fmt.Fprintf(&sb, "  - %s\n", strings.Join(links, " | "))
	}

	if len(tree.Specials) > 0 {
		sb.WriteString("\n## Special Nodes\n\n")
		for _, sp := range tree.Specials {
			fmt.Fprintf(&sb, "- [[%s|%s]]\n", SanitizeFilename(sp.Title)+".md", sp.Title)
		}
	}

	return sb.String()
}

func sectionContent(sec Section, n int, b Breakdown, date string) string {
	summaryFile := path.Base(b.SummaryPath())

	var sb strings.Builder
	fmt.Fprintf(&sb, `---
title: %s
date: %s
parent: [[%s]]
original_article: %s
tags: [section, article-breakdown]
---

# %s

%s

`, sec.Title, date, summaryFile, b.SourcePath, sec.Title, sec.Body)

	if len(sec.Subsections) > 0 {
		sb.WriteString("## Subsections\n\n")
		for j, sub := range sec.Subsections {
			fmt.Fprintf(&sb, "- [[%s|%s]]\n", subsectionFilename(n, j+1, sub.Title), sub.Title)
		}
	}

	fmt.Fprintf(&sb, "\n[[%s|Back to Summary]]\n", summaryFile)
	return sb.String()
}

func subsectionContent(sub Subsection, parent Section, n int, b Breakdown, date string) string {
	parentFile := sectionFilename(n, parent.Title)

	return fmt.Sprintf(`---
title: %s
date: %s
parent: [[%s]]
original_article: %s
tags: [subsection, article-breakdown]
---

# %s

%s

[[%s|Back to %s]]
`, sub.Title, date, parentFile, b.SourcePath, sub.Title, sub.Body, parentFile, parent.Title)
}

func specialContent(sp SpecialNode, b Breakdown, date string) string {
	return fmt.Sprintf(`---
title: %s
date: %s
original_article: %s
tags: [special-node, article-breakdown]
---

# %s

%s
`, sp.Title, date, b.SourcePath, sp.Title, sp.Body)
}
