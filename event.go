package easel

// Event is one raw input event delivered to the interaction machine.
// Events are consumed one at a time to completion; the machine never sees
// the next event before [Machine.Handle] has returned for the current one.
type Event interface {
	isEvent()
}

// PointerMove reports the pointer at screen position (X, Y) with the
// movement delta since the previous move.
type PointerMove struct {
	X, Y           float64
	DeltaX, DeltaY float64
}

// PointerDown reports a button press at screen position (X, Y).
type PointerDown struct {
	X, Y   float64
	Button MouseButton
}

// PointerUp reports a button release at screen position (X, Y).
type PointerUp struct {
	X, Y   float64
	Button MouseButton
}

// Wheel reports scroll wheel movement. DeltaX/DeltaY are the wheel's delta
// axes in screen pixels. With ctrl or meta held the wheel zooms about the
// pointer; otherwise it pans.
type Wheel struct {
	X, Y           float64 // pointer position at the time of the event
	DeltaX, DeltaY float64
	Modifiers      KeyModifiers
}

// KeyDown reports a key press.
type KeyDown struct {
	Key Key
}

// KeyUp reports a key release.
type KeyUp struct {
	Key Key
}

// Resize reports a new viewport size in pixels.
type Resize struct {
	Width, Height int
}

func (PointerMove) isEvent() {}
func (PointerDown) isEvent() {}
func (PointerUp) isEvent()   {}
func (Wheel) isEvent()       {}
func (KeyDown) isEvent()     {}
func (KeyUp) isEvent()       {}
func (Resize) isEvent()      {}
