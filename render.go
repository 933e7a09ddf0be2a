package easel

import (
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Renderer draws a machine [Snapshot] to an ebiten image. It is a pure
// function of the snapshot: it never mutates machine state. All fields are
// optional; the zero value plus [NewRenderer] defaults give the stock look.
type Renderer struct {
	ClearColor Color
	GridColor  Color
	// FrameColor is the frame accent while idle; FrameActiveColor replaces
	// it while the pointer is over the frame or a drag is in progress.
	FrameColor       Color
	FrameActiveColor Color
	FrameFillAlpha   float64

	// checker is the cached alpha pattern drawn inside the frame,
	// regenerated when the frame size changes.
	checker  *ebiten.Image
	checkerW int
	checkerH int
}

// NewRenderer creates a renderer with the default palette.
func NewRenderer() *Renderer {
	return &Renderer{
		ClearColor:       Color{R: 0.137, G: 0.118, B: 0.176, A: 1},
		GridColor:        Color{R: 1, G: 1, B: 1, A: 0.08},
		FrameColor:       Color{R: 0.65, G: 0.65, B: 0.7, A: 1},
		FrameActiveColor: Color{R: 0.35, G: 0.65, B: 1, A: 1},
		FrameFillAlpha:   0.06,
	}
}

// geoM converts an Affine to an ebiten.GeoM.
func geoM(t Affine) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, t.A)
	g.SetElement(0, 1, t.C)
	g.SetElement(0, 2, t.E)
	g.SetElement(1, 0, t.B)
	g.SetElement(1, 1, t.D)
	g.SetElement(1, 2, t.F)
	return g
}

// Draw renders one frame in a fixed order: clear, grid, placements in list
// order, then the generation frame overlay.
func (r *Renderer) Draw(dst *ebiten.Image, snap Snapshot) {
	dst.Fill(r.ClearColor.toRGBA())
	r.drawGrid(dst, snap)
	r.drawPlacements(dst, snap)
	r.drawFrame(dst, snap)
}

// drawGrid draws the background grid. Line spacing is fixed in screen space
// (the grid ignores zoom scale) but the pan offset carries through, so the
// grid appears to slide with the content.
func (r *Renderer) drawGrid(dst *ebiten.Image, snap Snapshot) {
	w := float32(snap.Width)
	h := float32(snap.Height)
	col := r.GridColor.toRGBA()

	offX := float32(math.Mod(snap.View.E, CellSize))
	offY := float32(math.Mod(snap.View.F, CellSize))
	if offX < 0 {
		offX += CellSize
	}
	if offY < 0 {
		offY += CellSize
	}

	for x := offX; x <= w; x += CellSize {
		vector.StrokeLine(dst, x, 0, x, h, 1, col, false)
	}
	for y := offY; y <= h; y += CellSize {
		vector.StrokeLine(dst, 0, y, w, y, 1, col, false)
	}
}

// drawPlacements draws every placement whose handle is ready, oldest first
// so that later generates land on top. Pending and failed handles are
// skipped.
func (r *Renderer) drawPlacements(dst *ebiten.Image, snap Snapshot) {
	view := geoM(snap.View)
	for _, p := range snap.Placements {
		img := p.Image.Image()
		if img == nil {
			continue
		}
		b := img.Bounds()
		var op ebiten.DrawImageOptions
		op.Filter = ebiten.FilterLinear
		op.GeoM.Scale(p.Frame.Width/float64(b.Dx()), p.Frame.Height/float64(b.Dy()))
		op.GeoM.Translate(p.Frame.X, p.Frame.Y)
		op.GeoM.Concat(view)
		dst.DrawImage(img, &op)
	}
}

// drawFrame draws the generation frame overlay: checkerboard alpha pattern,
// translucent fill, then the stroked border. The accent color follows the
// interaction state.
func (r *Renderer) drawFrame(dst *ebiten.Image, snap Snapshot) {
	accent := r.FrameColor
	if snap.State == StateIdleOver || snap.State == StateDragging {
		accent = r.FrameActiveColor
	}

	view := geoM(snap.View)
	fr := snap.Frame

	// Checkerboard, stretched through the view transform with the frame.
	pattern := r.checkerPattern(int(fr.Width), int(fr.Height))
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(fr.X, fr.Y)
	op.GeoM.Concat(view)
	dst.DrawImage(pattern, &op)

	// Translucent fill in the accent color.
	fill := accent
	fill.A = r.FrameFillAlpha
	var fillOp ebiten.DrawImageOptions
	fillOp.GeoM.Scale(fr.Width, fr.Height)
	fillOp.GeoM.Translate(fr.X, fr.Y)
	fillOp.GeoM.Concat(view)
	fillOp.ColorScale.ScaleWithColor(fill.toRGBA())
	dst.DrawImage(WhitePixel, &fillOp)

	// Border. The frame is axis-aligned and the view has no rotation, so
	// transforming two corners gives the screen rect.
	x0, y0 := snap.View.Apply(fr.X, fr.Y)
	x1, y1 := snap.View.Apply(fr.X+fr.Width, fr.Y+fr.Height)
	vector.StrokeRect(dst, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), 2, accent.toRGBA(), true)
}

// checkerPattern returns the cached frame-sized checkerboard, rebuilding it
// when the frame size changes. Cells are half a grid cell.
func (r *Renderer) checkerPattern(w, h int) *ebiten.Image {
	if r.checker != nil && r.checkerW == w && r.checkerH == h {
		return r.checker
	}
	if r.checker != nil {
		r.checker.Deallocate()
	}

	img := ebiten.NewImage(w, h)
	light := Color{R: 1, G: 1, B: 1, A: 0.05}.toRGBA()
	dark := Color{R: 0, G: 0, B: 0, A: 0.05}.toRGBA()
	const cell = int(CellSize / 2)
	for cy := 0; cy*cell < h; cy++ {
		for cx := 0; cx*cell < w; cx++ {
			col := light
			if (cx+cy)%2 == 1 {
				col = dark
			}
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(float64(cell), float64(cell))
			op.GeoM.Translate(float64(cx*cell), float64(cy*cell))
			op.ColorScale.ScaleWithColor(col)
			img.DrawImage(WhitePixel, &op)
		}
	}

	r.checker = img
	r.checkerW = w
	r.checkerH = h
	return img
}

// DrawOverlay prints the debug HUD: FPS/TPS, current state, zoom, and
// placement counts. Only called by the driver when debug mode is on.
func (r *Renderer) DrawOverlay(dst *ebiten.Image, snap Snapshot) {
	ready := 0
	for _, p := range snap.Placements {
		if p.Image.Ready() {
			ready++
		}
	}
	ebitenutil.DebugPrint(dst, fmt.Sprintf(
		"FPS: %.1f TPS: %.1f\nstate: %s zoom: %.2f\nplacements: %d (%d ready)",
		ebiten.ActualFPS(), ebiten.ActualTPS(), snap.State, snap.View.A,
		len(snap.Placements), ready))
}
