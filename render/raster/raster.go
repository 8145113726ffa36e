// Package raster renders a positioned layout into a PNG preview by
// rasterizing the SVG rendition. The rasterizer implements shapes and lines
// but not text nodes or arrow markers, so labels and connector heads drop
// from the preview; the PNG is a thumbnail, not the deliverable.
package raster

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/disintegration/imaging"

	"infogen/layout"
	"infogen/render/svg"
	"infogen/utils/images"
)

// Render produces the PNG preview at the native 96 DPI size (1280x720 for
// the standard canvas).
func Render(l *layout.Layout) ([]byte, error) {
	return RenderScaled(l, 1)
}

// RenderScaled produces the PNG preview scaled by the given factor. The
// rasterizer caps output dimensions, so a runaway scale degrades to a
// smaller image instead of an unbounded allocation.
func RenderScaled(l *layout.Layout, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}

	svgData, err := svg.Render(l)
	if err != nil {
		return nil, err
	}

	dst, err := images.RasterizeSVGScaled(svgData, scale)
	if err != nil {
		return nil, fmt.Errorf("unable to rasterize rendition: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, dst, imaging.PNG, imaging.PNGCompressionLevel(png.BestCompression)); err != nil {
		return nil, fmt.Errorf("unable to encode preview: %w", err)
	}
	return buf.Bytes(), nil
}
