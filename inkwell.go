// Package inkwell renders styled documents: it resolves the CSS cascade
// over a document tree, lays the result out with the box model and greedy
// line breaking, and emits an ordered, device-independent display list.
//
// The pipeline is a pure function of its inputs and recomputes everything
// on each call; hosts coalesce invalidations and replay the returned list
// through a backend.Canvas.
package inkwell

import (
	"fmt"
	"io"

	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/diagnostics"
	"github.com/inkwellrender/inkwell/dom"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/logger"
	"github.com/inkwellrender/inkwell/paint"
	"github.com/inkwellrender/inkwell/style"
	"github.com/inkwellrender/inkwell/text"
)

// Render runs the full pipeline: cascade, layout, paint. The author sheet
// cascades over the built-in user agent sheet; sheet may be nil.
//
// Failures never abort the run: malformed input degrades to documented
// defaults and is reported in the returned diagnostics.
func Render(doc *dom.Document, sheet *css.Stylesheet, viewport layout.Viewport, metrics text.MetricsProvider) (*paint.DisplayList, []diagnostics.Diagnostic) {
	rec := &diagnostics.Recorder{}

	full := &css.Stylesheet{}
	full.Append(style.UserAgentSheet())
	if sheet != nil {
		full.Append(sheet)
	}

	logger.ProgressLogger.Printf("resolving styles for %d nodes", doc.Size())
	resolver := style.NewResolver(doc, full, viewport.Width, viewport.Height, rec)
	styled := resolver.ResolveAll()

	logger.ProgressLogger.Printf("layout at %gx%g", viewport.Width, viewport.Height)
	engine := layout.NewEngine(styled, viewport, metrics, rec)
	root := engine.Layout()

	list := paint.Paint(root, viewport)
	logger.ProgressLogger.Printf("display list: %d ops, %d diagnostics", len(list.Ops), len(rec.Diagnostics()))
	return list, rec.Diagnostics()
}

// RenderHTML is a convenience wrapper parsing HTML and CSS sources before
// running the pipeline. Stylesheet parse problems surface as diagnostics,
// only an unreadable document is an error.
func RenderHTML(document io.Reader, stylesheet string, viewport layout.Viewport, metrics text.MetricsProvider) (*paint.DisplayList, []diagnostics.Diagnostic, error) {
	doc, err := dom.ReadHTML(document)
	if err != nil {
		return nil, nil, fmt.Errorf("reading document: %w", err)
	}
	rec := &diagnostics.Recorder{}
	sheet := css.ParseStylesheet(stylesheet, css.Author, rec)
	list, diags := Render(doc, sheet, viewport, metrics)
	return list, append(rec.Diagnostics(), diags...), nil
}
