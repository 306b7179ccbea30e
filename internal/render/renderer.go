//go:build ebiten

package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter owns the presentation image the simulation state is drawn
// from. The CPU path fills it from a cell buffer; the GPU render-interop
// path writes into it directly on the device, in which case SetCells is
// never called.
type GridPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{
		w:   w,
		h:   h,
		img: ebiten.NewImage(w, h),
		buf: make([]byte, 4*w*h),
	}
}

// Image exposes the painter's texture for device-side interop.
func (gp *GridPainter) Image() *ebiten.Image { return gp.img }

// SetCells uploads a host-side cell buffer into the painter image.
func (gp *GridPainter) SetCells(cells []uint8, on, off color.Color) {
	if len(cells) != gp.w*gp.h {
		return
	}
	FillBinaryRGBA(gp.buf, cells, on, off)
	gp.img.WritePixels(gp.buf)
}

// Draw blits the painter image onto dst at the given integer scale.
func (gp *GridPainter) Draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.w, gp.h }
