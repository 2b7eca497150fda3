// Package raster is the reference Canvas implementation, drawing into an
// in-memory RGBA image with github.com/fogleman/gg.
package raster

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/inkwellrender/inkwell/backend"
	"github.com/inkwellrender/inkwell/css"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/text"
)

type Fl = backend.Fl

// Canvas rasterizes display list operations. It needs a FontMetrics to
// turn font descriptions back into drawable faces; sharing the instance
// used for layout keeps measurement and rasterization consistent.
type Canvas struct {
	ctx   *gg.Context
	fonts *text.FontMetrics
}

var _ backend.Canvas = (*Canvas)(nil)

// NewCanvas creates a canvas of the given size in device pixels.
func NewCanvas(width, height int, fonts *text.FontMetrics) *Canvas {
	return &Canvas{ctx: gg.NewContext(width, height), fonts: fonts}
}

func (c *Canvas) Clear(color css.Color) {
	c.setColor(color)
	c.ctx.Clear()
}

func (c *Canvas) FillRect(rect layout.Rect, color css.Color) {
	c.setColor(color)
	c.ctx.DrawRectangle(rect.X, rect.Y, rect.Width, rect.Height)
	c.ctx.Fill()
}

// StrokeBorder fills one strip per edge instead of stroking a path, so
// edges of different widths stay crisp and corners meet squarely.
func (c *Canvas) StrokeBorder(borderBox layout.Rect, widths layout.EdgeSizes, color css.Color) {
	c.setColor(color)
	if widths.Top > 0 {
		c.ctx.DrawRectangle(borderBox.X, borderBox.Y, borderBox.Width, widths.Top)
	}
	if widths.Bottom > 0 {
		c.ctx.DrawRectangle(borderBox.X, borderBox.Y+borderBox.Height-widths.Bottom, borderBox.Width, widths.Bottom)
	}
	if widths.Left > 0 {
		c.ctx.DrawRectangle(borderBox.X, borderBox.Y, widths.Left, borderBox.Height)
	}
	if widths.Right > 0 {
		c.ctx.DrawRectangle(borderBox.X+borderBox.Width-widths.Right, borderBox.Y, widths.Right, borderBox.Height)
	}
	c.ctx.Fill()
}

func (c *Canvas) DrawText(run string, x, y Fl, font text.FontDescription, color css.Color) {
	face := c.fonts.Face(font)
	if face == nil {
		return // no registered font can draw this run
	}
	c.ctx.SetFontFace(face)
	c.setColor(color)
	c.ctx.DrawString(run, x, y)
}

func (c *Canvas) setColor(color css.Color) {
	c.ctx.SetRGBA255(int(color.R), int(color.G), int(color.B), int(color.A))
}

// Image returns the rendered frame.
func (c *Canvas) Image() image.Image { return c.ctx.Image() }

// SavePNG writes the rendered frame to disk.
func (c *Canvas) SavePNG(path string) error { return c.ctx.SavePNG(path) }
