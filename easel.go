package easel

import "github.com/hajimehoshi/ebiten/v2"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// toRGBA converts an easel Color to a premultiplied color.Color.
func (c Color) toRGBA() colorRGBA {
	return colorRGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

// colorRGBA implements the color.Color interface for image.Fill.
type colorRGBA struct {
	R, G, B, A uint8
}

func (c colorRGBA) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = uint32(c.A) * 0x101
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and deltas throughout
// the API.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used to draw solid color rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.toRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Surrounds reports whether the point (x, y) lies strictly inside the
// rectangle. Points on the edge are NOT considered inside. The generation
// frame hit test uses this so that a pointer resting exactly on the border
// does not count as over the frame.
func (r Rect) Surrounds(x, y float64) bool {
	return x > r.X && x < r.X+r.Width &&
		y > r.Y && y < r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)

// KeyModifiers is a bitmask of keyboard modifier keys.
// Values can be combined with bitwise OR (e.g. ModShift | ModCtrl).
type KeyModifiers uint8

const (
	ModShift KeyModifiers = 1 << iota // Shift key
	ModCtrl                           // Control key
	ModAlt                            // Alt / Option key
	ModMeta                           // Meta / Command / Windows key
)

// Key identifies the non-modifier keys the machine reacts to. Raw device
// keys are translated by the driver; anything else arrives as KeyOther and
// is ignored by every state.
type Key uint8

const (
	KeyOther  Key = iota // any key the machine has no binding for
	KeySpace             // pan mode while held
	KeyReturn            // generate command (driver binding)
	KeyF                 // center view on the frame (driver binding)
)

// Cursor is the pointer cursor hint the machine asks the driver to show.
// The driver maps these onto whatever cursor shapes the platform offers.
type Cursor uint8

const (
	CursorDefault  Cursor = iota // arrow
	CursorPointer                // hand, shown over the generation frame
	CursorGrab                   // open hand, pan mode armed
	CursorGrabbing               // closed hand, drag or pan in progress
)

// Canvas constants. CellSize is both the rendered grid spacing at 1:1 zoom
// and the quantum the generation frame snaps to while dragging.
const (
	CellSize = 64.0

	DefaultFrameX      = 64.0
	DefaultFrameY      = 64.0
	DefaultFrameWidth  = 512.0
	DefaultFrameHeight = 512.0

	// MinZoom and MaxZoom bound the horizontal scale of the view transform.
	// Zoom updates that would land outside the range are rejected, which
	// also keeps the transform invertible.
	MinZoom = 0.1
	MaxZoom = 8.0
)
