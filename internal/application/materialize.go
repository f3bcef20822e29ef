package application

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"breakdown/internal/domain"
	"breakdown/internal/ports"
)

// Materializer writes a parsed article tree to the vault through an
// injected write capability. It is the deterministic path the executor's
// tools also take; the CLI uses it directly when no model is configured.
type Materializer struct {
	writer ports.FileWriter
	now    func() time.Time
	log    *slog.Logger
}

// NewMaterializer creates a materializer over the given write capability.
func NewMaterializer(writer ports.FileWriter, log *slog.Logger) *Materializer {
	if log == nil {
		log = slog.Default()
	}
	return &Materializer{writer: writer, now: time.Now, log: log}
}

// Materialize writes the document set for tree in order: summary first,
// then sections, subsections, special nodes, and finally the canvas. A
// failed write is logged and excluded from the returned set but does not
// block the remaining documents.
func (m *Materializer) Materialize(tree domain.ArticleTree, title, sourcePath string) ([]domain.FileSpec, error) {
	b := domain.NewBreakdown(title, sourcePath)

	files := domain.BuildFileSet(tree, b, m.now())

	canvas := domain.LayoutCanvas(tree, b)
	data, err := json.MarshalIndent(canvas, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding canvas: %w", err)
	}
	files = append(files, domain.FileSpec{Path: b.CanvasPath(), Content: string(data)})

	written := make([]domain.FileSpec, 0, len(files))
	for _, f := range files {
		if err := m.writer.WriteFile(f.Path, f.Content); err != nil {
			m.log.Error("writing breakdown document", "path", f.Path, "error", err)
			continue
		}
		written = append(written, f)
	}
	return written, nil
}
