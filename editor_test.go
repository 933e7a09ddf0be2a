package easel

import (
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

var errTest = errors.New("load failed")

// capturingSink records emitted editor events in order.
type capturingSink struct {
	events []EditorEvent
}

func (s *capturingSink) EmitEvent(event EditorEvent) {
	s.events = append(s.events, event)
}

func TestEditorGenerateNotifiesSink(t *testing.T) {
	src := &recordingSource{}
	e := NewEditor(src)
	sink := &capturingSink{}
	e.SetEventSink(sink)

	e.Generate()

	if len(src.fetches) != 1 {
		t.Fatalf("fetches = %d, want 1", len(src.fetches))
	}
	if len(sink.events) == 0 {
		t.Fatal("sink received no events")
	}
	ev := sink.events[0]
	if ev.Kind != EventPlacementAdded {
		t.Errorf("first event kind = %v, want placement added", ev.Kind)
	}
	if ev.Index != 0 {
		t.Errorf("placement index = %d, want 0", ev.Index)
	}
	if ev.Frame != (Rect{X: DefaultFrameX, Y: DefaultFrameY, Width: DefaultFrameWidth, Height: DefaultFrameHeight}) {
		t.Errorf("event frame = %+v", ev.Frame)
	}
}

func TestEditorDispatchNotifiesStateChange(t *testing.T) {
	e := NewEditor(&recordingSource{})
	sink := &capturingSink{}
	e.SetEventSink(sink)

	e.dispatch(PointerMove{X: 320, Y: 320})

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	ev := sink.events[0]
	if ev.Kind != EventStateChanged || ev.State != StateIdleOver {
		t.Errorf("event = %+v, want state change to idle.over", ev)
	}
}

func TestEditorDispatchNotifiesViewChange(t *testing.T) {
	e := NewEditor(&recordingSource{})
	sink := &capturingSink{}
	e.SetEventSink(sink)

	e.dispatch(Wheel{X: 100, Y: 100, DeltaY: 30})

	if len(sink.events) != 1 {
		t.Fatalf("events = %d, want 1", len(sink.events))
	}
	if sink.events[0].Kind != EventViewChanged {
		t.Errorf("event kind = %v, want view changed", sink.events[0].Kind)
	}
}

func TestEditorNoopDispatchEmitsNothing(t *testing.T) {
	e := NewEditor(&recordingSource{})
	sink := &capturingSink{}
	e.SetEventSink(sink)

	e.dispatch(PointerUp{X: 5, Y: 5, Button: MouseButtonLeft})

	if len(sink.events) != 0 {
		t.Errorf("no-op dispatch emitted %d events", len(sink.events))
	}
}

func TestEditorDirtyOnChange(t *testing.T) {
	e := NewEditor(&recordingSource{})
	e.dirty = false

	e.dispatch(PointerUp{X: 5, Y: 5, Button: MouseButtonLeft})
	if e.dirty {
		t.Error("no-op event should not dirty the canvas")
	}

	e.dispatch(PointerMove{X: 320, Y: 320})
	if !e.dirty {
		t.Error("state change should dirty the canvas")
	}
}

func TestEditorPollLoadsDirtiesOnResolve(t *testing.T) {
	src := &recordingSource{}
	e := NewEditor(src)
	e.Generate()

	e.dirty = false
	e.pollLoads()
	if e.dirty {
		t.Error("pending handle should not dirty the canvas")
	}

	src.fetches[0].handle.Resolve(ebiten.NewImage(4, 4))
	e.pollLoads()
	if !e.dirty {
		t.Error("a resolved handle should dirty the canvas")
	}

	// Stable ready count: no further redraws.
	e.dirty = false
	e.pollLoads()
	if e.dirty {
		t.Error("unchanged ready count should not dirty the canvas")
	}
}

func TestEditorPollLoadsIgnoresFailures(t *testing.T) {
	src := &recordingSource{}
	e := NewEditor(src)
	e.Generate()

	e.dirty = false
	src.fetches[0].handle.Fail(errTest)
	e.pollLoads()
	if e.dirty {
		t.Error("a failed handle should not dirty the canvas")
	}
}

func TestEditorLayoutDispatchesResize(t *testing.T) {
	e := NewEditor(&recordingSource{})

	w, h := e.Layout(640, 480)
	if w != 640 || h != 480 {
		t.Errorf("layout = %dx%d", w, h)
	}
	snap := e.Machine().Snapshot()
	if snap.Width != 640 || snap.Height != 480 {
		t.Errorf("machine size = %dx%d", snap.Width, snap.Height)
	}

	// Same size again is not re-dispatched.
	e.dirty = false
	e.Layout(640, 480)
	if e.dirty {
		t.Error("unchanged layout should not dirty the canvas")
	}
}

func TestCursorShapeMapping(t *testing.T) {
	tests := []struct {
		in   Cursor
		want ebiten.CursorShapeType
	}{
		{CursorDefault, ebiten.CursorShapeDefault},
		{CursorPointer, ebiten.CursorShapePointer},
		{CursorGrab, ebiten.CursorShapeMove},
		{CursorGrabbing, ebiten.CursorShapeMove},
	}
	for _, tt := range tests {
		if got := cursorShape(tt.in); got != tt.want {
			t.Errorf("cursorShape(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
