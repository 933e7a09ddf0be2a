package easel

// injectedStep is one queued synthetic input step. A nil event with
// generate set invokes the generate command instead.
type injectedStep struct {
	ev       Event
	generate bool
}

// InjectPointerDown queues a synthetic left-button press at screen (x, y).
// Injected steps are consumed one per tick, before real device input, which
// is skipped for that tick. They are otherwise identical to real input.
func (e *Editor) InjectPointerDown(x, y float64) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: PointerDown{X: x, Y: y, Button: MouseButtonLeft}})
}

// InjectPointerMove queues a synthetic pointer move to screen (x, y).
// The movement delta is derived from the previous pointer position when the
// step is consumed.
func (e *Editor) InjectPointerMove(x, y float64) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: PointerMove{X: x, Y: y}})
}

// InjectPointerUp queues a synthetic left-button release at screen (x, y).
func (e *Editor) InjectPointerUp(x, y float64) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: PointerUp{X: x, Y: y, Button: MouseButtonLeft}})
}

// InjectWheel queues a synthetic wheel event at screen (x, y).
func (e *Editor) InjectWheel(x, y, deltaX, deltaY float64, mods KeyModifiers) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: Wheel{X: x, Y: y, DeltaX: deltaX, DeltaY: deltaY, Modifiers: mods}})
}

// InjectKeyDown queues a synthetic key press.
func (e *Editor) InjectKeyDown(key Key) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: KeyDown{Key: key}})
}

// InjectKeyUp queues a synthetic key release.
func (e *Editor) InjectKeyUp(key Key) {
	e.injectQueue = append(e.injectQueue, injectedStep{ev: KeyUp{Key: key}})
}

// InjectGenerate queues the generate command.
func (e *Editor) InjectGenerate() {
	e.injectQueue = append(e.injectQueue, injectedStep{generate: true})
}

// InjectDrag queues a full frame-drag sequence: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate ticks, and release
// at (toX, toY). Minimum frames is 2 (press + release).
func (e *Editor) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	e.InjectPointerDown(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		e.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	e.InjectPointerUp(toX, toY)
}

// processInjected pops one step from the inject queue and dispatches it.
// Returns true if a step was consumed (real device input is skipped).
func (e *Editor) processInjected() bool {
	if len(e.injectQueue) == 0 {
		return false
	}
	step := e.injectQueue[0]
	copy(e.injectQueue, e.injectQueue[1:])
	e.injectQueue = e.injectQueue[:len(e.injectQueue)-1]

	if step.generate {
		e.Generate()
		return true
	}

	// Fill in movement deltas and keep the pointer bookkeeping coherent
	// with the device path.
	switch ev := step.ev.(type) {
	case PointerMove:
		if e.pointerInit {
			ev.DeltaX = ev.X - e.lastX
			ev.DeltaY = ev.Y - e.lastY
		}
		e.lastX, e.lastY = ev.X, ev.Y
		e.pointerInit = true
		e.dispatch(ev)
	case PointerDown:
		e.lastX, e.lastY = ev.X, ev.Y
		e.pointerInit = true
		e.dispatch(ev)
	case PointerUp:
		e.lastX, e.lastY = ev.X, ev.Y
		e.pointerInit = true
		e.dispatch(ev)
	default:
		e.dispatch(step.ev)
	}
	return true
}
