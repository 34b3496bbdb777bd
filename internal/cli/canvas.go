package cli

import (
	"image/color"
	"math"

	"github.com/gogpu/gg"

	"github.com/easelkit/easel"
	"github.com/easelkit/easel/pkg/geom"
)

// pngCanvas rasterizes paint output into a gg drawing context. Scale
// multiplies the pixel density; the coordinate space the pipeline paints
// in is unchanged.
type pngCanvas struct {
	dc  *gg.Context
	err error
}

var _ easel.Canvas = (*pngCanvas)(nil)

func newPNGCanvas(size geom.Size, scale float64, bg color.Color) *pngCanvas {
	w := int(math.Ceil(size.Width * scale))
	h := int(math.Ceil(size.Height * scale))
	dc := gg.NewContext(max(w, 1), max(h, 1))
	dc.ClearWithColor(gg.FromColor(bg))
	dc.Scale(scale, scale)
	return &pngCanvas{dc: dc}
}

// FillRect draws r filled with c. The first rasterizer error is kept
// for Err; the pipeline's paint order is position-independent, so later
// fills still land.
func (c *pngCanvas) FillRect(r geom.Rect, col color.Color) {
	c.dc.SetColor(col)
	c.dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = err
	}
}

// Err returns the first rasterizer error, if any.
func (c *pngCanvas) Err() error { return c.err }

// SavePNG writes the rasterized frame to path.
func (c *pngCanvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Close releases the drawing context.
func (c *pngCanvas) Close() error { return c.dc.Close() }
