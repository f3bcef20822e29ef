package domain

import "github.com/google/uuid"

// Canvas is the positioned node/edge graph describing a breakdown's visual
// layout. The key names match the JSON Canvas format the consuming viewer
// expects, so they must stay stable.
type Canvas struct {
	Nodes []CanvasNode `json:"nodes"`
	Edges []CanvasEdge `json:"edges"`
}

// CanvasNode is one file card on the canvas.
type CanvasNode struct {
	ID     string `json:"id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type"`
	File   string `json:"file"`
	Color  string `json:"color"`
}

// CanvasEdge connects two nodes with explicit anchor sides.
type CanvasEdge struct {
	ID       string `json:"id"`
	FromNode string `json:"fromNode"`
	FromSide string `json:"fromSide"`
	ToNode   string `json:"toNode"`
	ToSide   string `json:"toSide"`
}

// Canvas color classes per tier. Visual discriminators only.
const (
	colorSource     = "6" // purple
	colorSummary    = "4" // green
	colorSection    = "3" // yellow
	colorSubsection = "5" // cyan
	colorSpecial    = "2" // orange
)

// Fixed layout geometry, in canvas units.
const (
	nodeWidth  = 300
	nodeHeight = 200
	nodeGap    = 200

	sourceY  = -600
	summaryY = -300
	sectionY = 0
	subY     = 300

	specialX     = 800
	specialY0    = -300
	specialStepY = 250
)

// LayoutCanvas places the breakdown as a graph: the original article above
// the summary, sections on a centered row below it, each section's
// subsections centered under their parent, and special nodes stacked to the
// right. Given the same tree shape the node count, coordinates, and edges
// are identical on every run; only the generated ids differ.
func LayoutCanvas(tree ArticleTree, b Breakdown) Canvas {
	var c Canvas

	sourceID := c.addNode(0, sourceY, b.SourcePath, colorSource)
	summaryID := c.addNode(0, summaryY, b.SummaryPath(), colorSummary)
	c.addEdge(sourceID, "bottom", summaryID, "top")

	for i, sec := range tree.Sections {
		n := i + 1
		x := rowX(len(tree.Sections), i)
		secID := c.addNode(x, sectionY, b.SectionPath(n, sec.Title), colorSection)
		c.addEdge(summaryID, "bottom", secID, "top")

		for j, sub := range sec.Subsections {
			sx := x + rowX(len(sec.Subsections), j)
			subID := c.addNode(sx, subY, b.SubsectionPath(n, j+1, sub.Title), colorSubsection)
			c.addEdge(secID, "bottom", subID, "top")
		}
	}

	y := specialY0
	for _, sp := range tree.Specials {
		spID := c.addNode(specialX, y, b.SpecialPath(sp.Title), colorSpecial)
		c.addEdge(summaryID, "right", spID, "left")
		y += specialStepY
	}

	return c
}

// rowX returns the x offset of the i-th node in a row of count nodes,
// centered at zero: total width is count*nodeWidth + (count-1)*nodeGap and
// nodes step by nodeWidth+nodeGap from -total/2.
func rowX(count, i int) int {
	total := count*nodeWidth + (count-1)*nodeGap
	return -total/2 + i*(nodeWidth+nodeGap)
}

func (c *Canvas) addNode(x, y int, file, color string) string {
	id := uuid.NewString()
	c.Nodes = append(c.Nodes, CanvasNode{
		ID:     id,
		X:      x,
		Y:      y,
		Width:  nodeWidth,
		Height: nodeHeight,
		Type:   "file",
		File:   file,
		Color:  color,
	})
	return id
}

func (c *Canvas) addEdge(from, fromSide, to, toSide string) {
	c.Edges = append(c.Edges, CanvasEdge{
		ID:       uuid.NewString(),
		FromNode: from,
		FromSide: fromSide,
		ToNode:   to,
		ToSide:   toSide,
	})
}
