package easel

import (
	"math"
	"math/rand/v2"
)

// State identifies the interaction machine's current mode. The hierarchy of
// the original statechart (an idle composite containing outside/over, and a
// panning composite containing idle/active) is flattened into one tag; the
// composite membership tests are InIdle and InPanning.
type State uint8

const (
	StateIdle      State = iota // idle, pointer outside the frame
	StateIdleOver               // idle, pointer over the frame
	StateDragging               // frame drag in progress
	StatePanIdle                // pan key held, button up
	StatePanActive              // pan key held, button down, panning
)

// InIdle reports whether s is in the idle composite.
func (s State) InIdle() bool {
	return s == StateIdle || s == StateIdleOver
}

// InPanning reports whether s is in the panning composite.
func (s State) InPanning() bool {
	return s == StatePanIdle || s == StatePanActive
}

// cursor returns the cursor hint shown while in s.
func (s State) cursor() Cursor {
	switch s {
	case StateIdleOver:
		return CursorPointer
	case StateDragging, StatePanActive:
		return CursorGrabbing
	case StatePanIdle:
		return CursorGrab
	default:
		return CursorDefault
	}
}

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateIdleOver:
		return "idle.over"
	case StateDragging:
		return "dragging"
	case StatePanIdle:
		return "panning.idle"
	case StatePanActive:
		return "panning.active"
	default:
		return "unknown"
	}
}

// Context is the machine's mutable state: viewport size, the generation
// frame, drag bookkeeping, the view transform, and the placement list.
// It is owned exclusively by the machine; the renderer reads a [Snapshot].
type Context struct {
	Width, Height int

	Frame Rect
	// FrameAtDragStart is the immutable frame snapshot taken at drag start.
	// Drag math is computed from it plus the total pointer delta, so the
	// result is independent of intermediate pointer positions.
	FrameAtDragStart Rect
	// DragStart is the world-space pointer position captured at drag start.
	DragStart Vec2

	View Affine

	Placements []Placement
}

// Snapshot is the read-only view of the machine handed to the renderer.
// Placements shares the machine's backing array and must not be mutated.
type Snapshot struct {
	State      State
	Width      int
	Height     int
	Frame      Rect
	View       Affine
	Placements []Placement
}

// Effect is a side-effect descriptor returned by [Machine.Handle] for the
// driver to execute. Keeping effects out of the transition logic leaves the
// machine testable without a display.
type Effect interface {
	isEffect()
}

// SetCursor asks the driver to change the pointer cursor.
type SetCursor struct {
	Cursor Cursor
}

// PreventDefault asks the driver to suppress the default action of the
// event just handled (browser-style wheel scrolling, for instance).
type PreventDefault struct{}

// RequestImage asks the driver to fetch an image into Handle. The matching
// placement has already been appended; geometry here is a size hint only.
type RequestImage struct {
	Handle *ImageHandle
	Width  int
	Height int
	Seed   uint64
}

func (SetCursor) isEffect()      {}
func (PreventDefault) isEffect() {}
func (RequestImage) isEffect()   {}

// Machine is the interaction state machine. Exactly one event is processed
// to completion per Handle call; there is no re-entrancy and no locking,
// as the machine is confined to the driver's update goroutine.
type Machine struct {
	state  State
	ctx    Context
	cursor Cursor

	// changed records whether the last Handle/Generate call mutated
	// observable state (state tag, frame, view, size, or placements).
	changed bool

	// seed produces cache-busting keys for generate requests.
	seed func() uint64

	effects []Effect // scratch, reused across Handle calls
}

// NewMachine creates a machine with an identity view transform, the default
// generation frame, and an empty placement list.
func NewMachine(width, height int) *Machine {
	return &Machine{
		ctx: Context{
			Width:  width,
			Height: height,
			Frame:  Rect{X: DefaultFrameX, Y: DefaultFrameY, Width: DefaultFrameWidth, Height: DefaultFrameHeight},
			View:   Identity(),
		},
		seed: rand.Uint64,
	}
}

// State returns the current state tag.
func (m *Machine) State() State {
	return m.state
}

// Snapshot returns the read-only view of the machine for rendering.
func (m *Machine) Snapshot() Snapshot {
	return Snapshot{
		State:      m.state,
		Width:      m.ctx.Width,
		Height:     m.ctx.Height,
		Frame:      m.ctx.Frame,
		View:       m.ctx.View,
		Placements: m.ctx.Placements,
	}
}

// Changed reports whether the last Handle or Generate call changed
// observable state. Drivers use it to skip redundant redraws.
func (m *Machine) Changed() bool {
	return m.changed
}

// SetSeedFunc overrides the cache-busting seed source. Tests use this for
// deterministic generate requests.
func (m *Machine) SetSeedFunc(fn func() uint64) {
	if fn != nil {
		m.seed = fn
	}
}

// snapToCell rounds v to the nearest multiple of CellSize, ties away from
// zero. The frame always lands on a cell boundary regardless of cursor
// precision.
func snapToCell(v float64) float64 {
	return math.Round(v/CellSize) * CellSize
}

// isOverFrame hit-tests a screen point against the generation frame using
// the context's own view transform. Strict containment: points exactly on
// the border are not over.
func (m *Machine) isOverFrame(sx, sy float64) bool {
	wx, wy, ok := m.ctx.View.ToWorld(sx, sy)
	return ok && m.ctx.Frame.Surrounds(wx, wy)
}

// Handle runs one transition. It returns the effect descriptors the driver
// must execute; the returned slice is reused by the next call.
//
// Events that don't match any arm of the current state are identity
// transitions: no state change, no effects. Nothing here panics past the
// machine boundary.
func (m *Machine) Handle(ev Event) []Effect {
	m.effects = m.effects[:0]
	m.changed = false

	// Global handlers: identical in every state.
	switch e := ev.(type) {
	case Resize:
		m.handleResize(e)
		return m.emitCursor()
	case Wheel:
		m.handleWheel(e)
		return m.emitCursor()
	}

	switch m.state {
	case StateIdle:
		switch e := ev.(type) {
		case PointerMove:
			if m.isOverFrame(e.X, e.Y) {
				m.transition(StateIdleOver)
			}
		case KeyDown:
			if e.Key == KeySpace {
				m.transition(StatePanIdle)
			}
		}

	case StateIdleOver:
		switch e := ev.(type) {
		case PointerMove:
			if !m.isOverFrame(e.X, e.Y) {
				m.transition(StateIdle)
			}
		case PointerDown:
			if wx, wy, ok := m.ctx.View.ToWorld(e.X, e.Y); ok {
				m.ctx.FrameAtDragStart = m.ctx.Frame
				m.ctx.DragStart = Vec2{X: wx, Y: wy}
				m.transition(StateDragging)
			}
		case KeyDown:
			if e.Key == KeySpace {
				m.transition(StatePanIdle)
			}
		}

	case StateDragging:
		switch e := ev.(type) {
		case PointerMove:
			m.dragFrame(e.X, e.Y)
		case PointerUp:
			// Re-enters idle.outside; the over test re-runs on the next move.
			m.transition(StateIdle)
		}

	case StatePanIdle:
		switch e := ev.(type) {
		case PointerDown:
			m.transition(StatePanActive)
		case KeyUp:
			if e.Key == KeySpace {
				m.transition(StateIdle)
			}
		}

	case StatePanActive:
		switch e := ev.(type) {
		case PointerMove:
			m.pan(e.DeltaX, e.DeltaY)
		case PointerUp:
			m.transition(StatePanIdle)
		case KeyUp:
			if e.Key == KeySpace {
				m.transition(StateIdle)
			}
		}
	}

	return m.emitCursor()
}

// Generate freezes the current frame geometry, appends a placement with a
// pending image handle, and asks the driver to fetch the image. Valid while
// in the idle composite; in any other state it is a no-op.
//
// The placement's geometry stays frozen even if the frame moves later.
func (m *Machine) Generate() []Effect {
	m.effects = m.effects[:0]
	m.changed = false

	if !m.state.InIdle() {
		return m.effects
	}

	handle := NewImageHandle()
	m.ctx.Placements = append(m.ctx.Placements, Placement{
		Frame: m.ctx.Frame,
		Image: handle,
	})
	m.changed = true
	m.effects = append(m.effects, RequestImage{
		Handle: handle,
		Width:  int(m.ctx.Frame.Width),
		Height: int(m.ctx.Frame.Height),
		Seed:   m.seed(),
	})
	return m.effects
}

// SetView replaces the view transform wholesale. Used by animated view
// moves; subject to the same bounds as interactive zoom, so an animation
// can never drive the view degenerate. Reports whether the view changed.
func (m *Machine) SetView(v Affine) bool {
	if v.A < MinZoom || v.A > MaxZoom {
		return false
	}
	if _, ok := v.Invert(); !ok {
		return false
	}
	if v == m.ctx.View {
		return false
	}
	m.ctx.View = v
	m.changed = true
	return true
}

// transition switches the state tag and marks the machine changed.
func (m *Machine) transition(next State) {
	if m.state == next {
		return
	}
	m.state = next
	m.changed = true
}

// emitCursor appends a SetCursor effect when the wanted cursor differs from
// the last one emitted, then returns the effect list.
func (m *Machine) emitCursor() []Effect {
	want := m.state.cursor()
	if want != m.cursor {
		m.cursor = want
		m.effects = append(m.effects, SetCursor{Cursor: want})
	}
	return m.effects
}

// handleResize updates the stored viewport size. The view transform is
// deliberately untouched: resizing reveals more world, it doesn't move it.
func (m *Machine) handleResize(e Resize) {
	if e.Width <= 0 || e.Height <= 0 {
		return
	}
	if e.Width == m.ctx.Width && e.Height == m.ctx.Height {
		return
	}
	m.ctx.Width = e.Width
	m.ctx.Height = e.Height
	m.changed = true
}

// handleWheel suppresses the default scroll action, then zooms about the
// pointer when ctrl/meta is held and pans otherwise.
func (m *Machine) handleWheel(e Wheel) {
	m.effects = append(m.effects, PreventDefault{})

	if e.Modifiers&(ModCtrl|ModMeta) != 0 {
		if e.DeltaY == 0 {
			return
		}
		factor := math.Pow(1.0015, -e.DeltaY)
		next, ok := m.ctx.View.ZoomAbout(factor, e.X, e.Y)
		if !ok {
			// Out-of-bounds zoom: keep the prior transform.
			return
		}
		m.ctx.View = next
		m.changed = true
		return
	}

	if e.DeltaX == 0 && e.DeltaY == 0 {
		return
	}
	m.ctx.View = m.ctx.View.Pan(-e.DeltaX, -e.DeltaY)
	m.changed = true
}

// dragFrame recomputes the frame from the drag-start snapshot plus the
// total world-space pointer delta, snapping each axis independently to the
// cell grid. Width and height never change during a drag.
func (m *Machine) dragFrame(sx, sy float64) {
	wx, wy, ok := m.ctx.View.ToWorld(sx, sy)
	if !ok {
		return
	}
	nx := snapToCell(m.ctx.FrameAtDragStart.X + wx - m.ctx.DragStart.X)
	ny := snapToCell(m.ctx.FrameAtDragStart.Y + wy - m.ctx.DragStart.Y)
	if nx == m.ctx.Frame.X && ny == m.ctx.Frame.Y {
		return
	}
	m.ctx.Frame.X = nx
	m.ctx.Frame.Y = ny
	m.changed = true
}

// pan applies a screen-space pan delta to the view transform.
func (m *Machine) pan(dx, dy float64) {
	if dx == 0 && dy == 0 {
		return
	}
	m.ctx.View = m.ctx.View.Pan(dx, dy)
	m.changed = true
}
