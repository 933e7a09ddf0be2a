package easel

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// EditorEventKind identifies a kind of editor event delivered to an
// [EventSink].
type EditorEventKind uint8

const (
	EventStateChanged   EditorEventKind = iota // machine entered a new state
	EventViewChanged                           // pan or zoom changed the view
	EventPlacementAdded                        // generate appended a placement
)

// EditorEvent carries editor activity for the optional event bridge.
type EditorEvent struct {
	Kind  EditorEventKind
	State State
	Frame Rect    // frame geometry at event time
	Zoom  float64 // horizontal view scale
	Index int     // placement index (EventPlacementAdded)
}

// EventSink is the interface for optional host integration. When set on an
// Editor, editor events are forwarded to it after each effectful transition.
type EventSink interface {
	EmitEvent(event EditorEvent)
}

const (
	defaultWidth  = 1280
	defaultHeight = 800
)

// Editor drives a [Machine] from Ebitengine input and renders it with a
// [Renderer]. It implements [ebiten.Game].
//
// Rendering is batched per display frame: input may arrive every tick, but
// the canvas is redrawn only when the machine reports a change (or an image
// finishes loading), and Draw blits the cached canvas otherwise.
type Editor struct {
	machine  *Machine
	renderer *Renderer
	source   ImageSource
	sink     EventSink

	canvas *ebiten.Image
	dirty  bool

	// Device polling state.
	lastX, lastY float64
	pointerInit  bool

	// readyCount tracks how many placement handles were drawable at the
	// last check, so a load completing in the background triggers a redraw.
	readyCount int

	injectQueue []injectedStep
	script      *ScriptRunner

	scroll *viewAnim
	zoom   *zoomAnim

	// ExportDir is where Export writes canvas PNGs.
	ExportDir   string
	exportQueue []string

	debug bool
	stats debugStats
}

// NewEditor creates an editor with a fresh machine and the default
// renderer. source supplies generate-command images; it must not be nil.
func NewEditor(source ImageSource) *Editor {
	return &Editor{
		machine:   NewMachine(defaultWidth, defaultHeight),
		renderer:  NewRenderer(),
		source:    source,
		dirty:     true,
		ExportDir: "exports",
	}
}

// Machine returns the editor's interaction machine.
func (e *Editor) Machine() *Machine {
	return e.machine
}

// Renderer returns the editor's renderer for palette adjustments.
func (e *Editor) Renderer() *Renderer {
	return e.renderer
}

// SetEventSink sets the optional host event bridge.
func (e *Editor) SetEventSink(sink EventSink) {
	e.sink = sink
}

// SetDebugMode toggles the stderr stats log and the on-screen HUD.
func (e *Editor) SetDebugMode(enabled bool) {
	e.debug = enabled
}

// Generate invokes the generate command: the current frame geometry is
// frozen into a new placement and an image fetch is dispatched. No-op
// outside the idle states.
func (e *Editor) Generate() {
	prev := e.machine.State()
	e.apply(e.machine.Generate(), prev)
}

// dispatch feeds one event through the machine and executes its effects.
func (e *Editor) dispatch(ev Event) {
	prev := e.machine.State()
	e.apply(e.machine.Handle(ev), prev)
	e.stats.events++
}

// apply executes effect descriptors and forwards editor events to the sink.
func (e *Editor) apply(effects []Effect, prev State) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case SetCursor:
			ebiten.SetCursorShape(cursorShape(eff.Cursor))
		case PreventDefault:
			// Ebitengine input has no default action to suppress; the
			// descriptor exists for embedders that bridge real browser
			// events through the machine.
		case RequestImage:
			e.source.Fetch(eff.Handle, eff.Width, eff.Height, eff.Seed)
			if e.sink != nil {
				snap := e.machine.Snapshot()
				e.sink.EmitEvent(EditorEvent{
					Kind:  EventPlacementAdded,
					State: snap.State,
					Frame: snap.Placements[len(snap.Placements)-1].Frame,
					Zoom:  snap.View.A,
					Index: len(snap.Placements) - 1,
				})
			}
		}
	}

	if !e.machine.Changed() {
		return
	}
	e.dirty = true

	if e.sink != nil {
		snap := e.machine.Snapshot()
		kind := EventViewChanged
		if snap.State != prev {
			kind = EventStateChanged
		}
		e.sink.EmitEvent(EditorEvent{
			Kind:  kind,
			State: snap.State,
			Frame: snap.Frame,
			Zoom:  snap.View.A,
		})
	}
}

// cursorShape maps a machine cursor hint onto an ebiten cursor shape.
// Ebitengine has no grab/grabbing shapes; Move is the closest fit.
func cursorShape(c Cursor) ebiten.CursorShapeType {
	switch c {
	case CursorPointer:
		return ebiten.CursorShapePointer
	case CursorGrab, CursorGrabbing:
		return ebiten.CursorShapeMove
	default:
		return ebiten.CursorShapeDefault
	}
}

// Update advances one tick: animations first, then either injected or real
// device input, then the load-completion poll.
func (e *Editor) Update() error {
	var t0 time.Time
	if e.debug {
		t0 = time.Now()
		e.stats.events = 0
	}

	dt := float32(1.0 / float64(ebiten.TPS()))
	e.updateAnimations(dt)

	if e.script != nil {
		e.script.step(e)
	}

	if !e.processInjected() {
		e.pollDevice()
	}

	e.pollLoads()

	if e.debug {
		e.stats.updateTime = time.Since(t0)
	}
	return nil
}

// pollDevice reads Ebitengine input and synthesizes machine events.
// Ordering matters: the down event must see the position that produced it,
// so the move event is dispatched first.
func (e *Editor) pollDevice() {
	mx, my := ebiten.CursorPosition()
	sx, sy := float64(mx), float64(my)

	if !e.pointerInit {
		e.lastX, e.lastY = sx, sy
		e.pointerInit = true
	}
	if sx != e.lastX || sy != e.lastY {
		e.dispatch(PointerMove{X: sx, Y: sy, DeltaX: sx - e.lastX, DeltaY: sy - e.lastY})
		e.lastX, e.lastY = sx, sy
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		e.dispatch(PointerDown{X: sx, Y: sy, Button: MouseButtonLeft})
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		e.dispatch(PointerUp{X: sx, Y: sy, Button: MouseButtonLeft})
	}

	if wx, wy := ebiten.Wheel(); wx != 0 || wy != 0 {
		// Wheel deltas are in notches; scale to pixels like a browser line
		// scroll so pan speed feels familiar.
		const notch = 20.0
		e.dispatch(Wheel{
			X: sx, Y: sy,
			DeltaX:    -wx * notch,
			DeltaY:    -wy * notch,
			Modifiers: readModifiers(),
		})
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		e.dispatch(KeyDown{Key: KeySpace})
	}
	if inpututil.IsKeyJustReleased(ebiten.KeySpace) {
		e.dispatch(KeyUp{Key: KeySpace})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		e.Generate()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		e.CenterOnFrame(0.4)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		e.debug = !e.debug
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		e.Export("canvas")
	}
}

// readModifiers reads the current keyboard modifier state.
func readModifiers() KeyModifiers {
	var mods KeyModifiers
	if ebiten.IsKeyPressed(ebiten.KeyShift) || ebiten.IsKeyPressed(ebiten.KeyShiftLeft) || ebiten.IsKeyPressed(ebiten.KeyShiftRight) {
		mods |= ModShift
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyControlLeft) || ebiten.IsKeyPressed(ebiten.KeyControlRight) {
		mods |= ModCtrl
	}
	if ebiten.IsKeyPressed(ebiten.KeyAlt) || ebiten.IsKeyPressed(ebiten.KeyAltLeft) || ebiten.IsKeyPressed(ebiten.KeyAltRight) {
		mods |= ModAlt
	}
	if ebiten.IsKeyPressed(ebiten.KeyMeta) || ebiten.IsKeyPressed(ebiten.KeyMetaLeft) || ebiten.IsKeyPressed(ebiten.KeyMetaRight) {
		mods |= ModMeta
	}
	return mods
}

// pollLoads marks the canvas dirty when a pending image became drawable
// since the last check. Failed handles never flip this.
func (e *Editor) pollLoads() {
	ready := 0
	for _, p := range e.machine.Snapshot().Placements {
		if p.Image.Ready() {
			ready++
		}
	}
	if ready != e.readyCount {
		e.readyCount = ready
		e.dirty = true
	}
}

// Draw blits the cached canvas, redrawing it first if anything changed.
func (e *Editor) Draw(screen *ebiten.Image) {
	snap := e.machine.Snapshot()

	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	if e.canvas == nil || e.canvas.Bounds().Dx() != w || e.canvas.Bounds().Dy() != h {
		if e.canvas != nil {
			e.canvas.Deallocate()
		}
		e.canvas = ebiten.NewImage(w, h)
		e.dirty = true
	}

	if e.dirty {
		var t0 time.Time
		if e.debug {
			t0 = time.Now()
		}
		e.renderer.Draw(e.canvas, snap)
		e.dirty = false
		if e.debug {
			e.stats.drawTime = time.Since(t0)
			e.stats.placements = len(snap.Placements)
			e.debugLog()
		}
	}

	screen.DrawImage(e.canvas, nil)
	e.flushExports(e.canvas)

	if e.debug {
		e.renderer.DrawOverlay(screen, snap)
	}
}

// Layout reports the logical screen size and feeds resizes to the machine.
func (e *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	snap := e.machine.Snapshot()
	if outsideWidth != snap.Width || outsideHeight != snap.Height {
		e.dispatch(Resize{Width: outsideWidth, Height: outsideHeight})
	}
	return outsideWidth, outsideHeight
}

// RunConfig configures the window created by [Run].
type RunConfig struct {
	Title  string
	Width  int
	Height int
	Debug  bool
}

// Run opens a resizable window and runs the editor until the window closes.
func Run(e *Editor, cfg RunConfig) error {
	if cfg.Width <= 0 {
		cfg.Width = defaultWidth
	}
	if cfg.Height <= 0 {
		cfg.Height = defaultHeight
	}
	if cfg.Title == "" {
		cfg.Title = "Easel"
	}
	e.SetDebugMode(cfg.Debug)

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(e)
}
