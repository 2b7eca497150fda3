// Command inkwell renders an HTML file with an optional stylesheet into a
// PNG image, exercising the whole pipeline end to end.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkwellrender/inkwell"
	"github.com/inkwellrender/inkwell/backend"
	"github.com/inkwellrender/inkwell/backend/raster"
	"github.com/inkwellrender/inkwell/layout"
	"github.com/inkwellrender/inkwell/text"
)

func main() {
	var (
		cssPath = flag.String("css", "", "stylesheet file, cascades over the user agent defaults")
		out     = flag.String("o", "out.png", "output PNG file")
		width   = flag.Float64("width", 1200, "viewport width in logical pixels")
		height  = flag.Float64("height", 800, "viewport height in logical pixels")
		scale   = flag.Float64("scale", 1, "device scale factor")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] page.html\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(flag.Arg(0), *cssPath, *out, layout.Viewport{Width: *width, Height: *height, Scale: *scale}); err != nil {
		fmt.Fprintln(os.Stderr, "inkwell:", err)
		os.Exit(1)
	}
}

func run(htmlPath, cssPath, out string, viewport layout.Viewport) error {
	page, err := os.Open(htmlPath)
	if err != nil {
		return err
	}
	defer page.Close()

	var stylesheet string
	if cssPath != "" {
		src, err := os.ReadFile(cssPath)
		if err != nil {
			return err
		}
		stylesheet = string(src)
	}

	fonts := text.NewFontMetrics()
	// diagnostics are already mirrored on the warning logger as they occur
	list, diags, err := inkwell.RenderHTML(page, stylesheet, viewport, fonts)
	if err != nil {
		return err
	}
	if len(diags) > 0 {
		fmt.Fprintf(os.Stderr, "rendered with %d degradation(s)\n", len(diags))
	}

	canvas := raster.NewCanvas(
		int(viewport.Width*viewport.Scale+0.5),
		int(viewport.Height*viewport.Scale+0.5),
		fonts,
	)
	backend.Replay(list, viewport.Scale, canvas)
	return canvas.SavePNG(out)
}
