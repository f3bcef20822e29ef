package domain

import "strings"

// ArticleTree is the structured form of an analyzed article. It is built
// once by ParseArticle and never mutated afterwards; the materializer and
// the canvas layout both consume the same tree.
type ArticleTree struct {
	Summary  string
	Sections []Section
	Specials []SpecialNode
}

// Section is a top-level heading with its body and ordered subsections.
type Section struct {
	Title       string
	Body        string
	Subsections []Subsection
}

// Subsection is a second-level heading with its body.
type Subsection struct {
	Title string
	Body  string
}

// SpecialNode is a breakdown output with no section parent, such as a
// references list. Special nodes cannot have children.
type SpecialNode struct {
	Title string
	Body  string
}

const (
	summaryHeading = "# Summary"
	specialPrefix  = "# Special: "
	sectionPrefix  = "# "
	subPrefix      = "## "
)

// ParseArticle converts heading-delimited text into an ArticleTree.
// It scans lines sequentially, keeping a current-section and a
// current-subsection cursor. Body lines attach to the deepest open cursor;
// lines with no open cursor are dropped. Malformed input never produces an
// error: worst case the tree has an empty summary and no sections, which
// downstream stages turn into a minimal document set.
func ParseArticle(text string) ArticleTree {
	var tree ArticleTree

	var (
		inSummary  bool
		summary    []string
		curSection = -1
		curSub     = -1
	)

	closeSummary := func() {
		if inSummary {
			tree.Summary = strings.TrimSpace(strings.Join(summary, "\n"))
			inSummary = false
		}
	}

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimRight(line, " \t\r")

		switch {
		case trimmed == summaryHeading:
			closeSummary()
			inSummary = true
			summary = summary[:0]
			curSection, curSub = -1, -1

		case strings.HasPrefix(trimmed, specialPrefix):
			closeSummary()
			title := strings.TrimSpace(trimmed[len(specialPrefix):])
			tree.Specials = append(tree.Specials, SpecialNode{Title: title})
			// A special heading terminates whatever context was open.
			curSection, curSub = -1, -1

		case strings.HasPrefix(trimmed, subPrefix):
			if curSection < 0 {
				// No section to attach to; treat as unplaced content.
				if inSummary {
					summary = append(summary, line)
				}
				continue
			}
			title := strings.TrimSpace(trimmed[len(subPrefix):])
			tree.Sections[curSection].Subsections = append(
				tree.Sections[curSection].Subsections, Subsection{Title: title})
			curSub = len(tree.Sections[curSection].Subsections) - 1

		case strings.HasPrefix(trimmed, sectionPrefix):
			closeSummary()
			title := strings.TrimSpace(trimmed[len(sectionPrefix):])
			tree.Sections = append(tree.Sections, Section{Title: title})
			curSection = len(tree.Sections) - 1
			curSub = -1

		default:
			switch {
			case inSummary:
				summary = append(summary, line)
			case curSection >= 0 && curSub >= 0:
				sub := &tree.Sections[curSection].Subsections[curSub]
				sub.Body += line + "\n"
			case curSection >= 0:
				tree.Sections[curSection].Body += line + "\n"
			case len(tree.Specials) > 0:
				// Section cursors are closed here, so the most recent
				// special node is the deepest open context.
				sp := &tree.Specials[len(tree.Specials)-1]
				sp.Body += line + "\n"
			}
		}
	}
	closeSummary()

	for i := range tree.Sections {
		tree.Sections[i].Body = strings.TrimSpace(tree.Sections[i].Body)
		for j := range tree.Sections[i].Subsections {
			sub := &tree.Sections[i].Subsections[j]
			sub.Body = strings.TrimSpace(sub.Body)
		}
	}
	for i := range tree.Specials {
		tree.Specials[i].Body = strings.TrimSpace(tree.Specials[i].Body)
	}

	return tree
}
