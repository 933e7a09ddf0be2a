package easel

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a session script.
type scriptStep struct {
	Action string  `json:"action"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	DeltaX float64 `json:"deltaX,omitempty"`
	DeltaY float64 `json:"deltaY,omitempty"`
	Zoom   bool    `json:"zoom,omitempty"` // wheel: hold the zoom modifier
	Key    string  `json:"key,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// sessionScript is the top-level JSON structure for a session script.
type sessionScript struct {
	Steps []scriptStep `json:"steps"`
}

// ScriptRunner replays a scripted editor session through the injection
// queue, one step per tick, for automated demos and input testing.
// Attach to an Editor via SetScriptRunner.
type ScriptRunner struct {
	steps     []scriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a JSON session script.
//
// Supported actions: "move" (x, y), "press" (x, y), "release" (x, y),
// "drag" (fromX, fromY, toX, toY, frames), "wheel" (x, y, deltaX, deltaY,
// zoom), "key" (down+up pair), "keydown"/"keyup" (for held keys such as the
// pan key), "generate", and "wait" (frames). Key names: "space", "return",
// "f".
func LoadScript(jsonData []byte) (*ScriptRunner, error) {
	var script sessionScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse session script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse session script: no steps")
	}
	return &ScriptRunner{steps: script.Steps}, nil
}

// SetScriptRunner attaches a script runner. The runner steps from
// Editor.Update before injected input is consumed each tick.
func (e *Editor) SetScriptRunner(runner *ScriptRunner) {
	e.script = runner
}

// Done reports whether all steps in the script have been executed.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// step advances the runner by one tick. Called from Editor.Update.
func (r *ScriptRunner) step(e *Editor) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(e.injectQueue) > 0 {
		return
	}
	// Count down wait frames.
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "move":
		e.InjectPointerMove(st.X, st.Y)
	case "press":
		e.InjectPointerDown(st.X, st.Y)
	case "release":
		e.InjectPointerUp(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		e.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "wheel":
		var mods KeyModifiers
		if st.Zoom {
			mods = ModCtrl
		}
		e.InjectWheel(st.X, st.Y, st.DeltaX, st.DeltaY, mods)
	case "key":
		if key := parseKey(st.Key); key != KeyOther {
			e.InjectKeyDown(key)
			e.InjectKeyUp(key)
		}
	case "keydown":
		if key := parseKey(st.Key); key != KeyOther {
			e.InjectKeyDown(key)
		}
	case "keyup":
		if key := parseKey(st.Key); key != KeyOther {
			e.InjectKeyUp(key)
		}
	case "generate":
		e.InjectGenerate()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this tick counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(e.injectQueue) == 0 {
		r.done = true
	}
}

// parseKey maps a script key name to a Key.
func parseKey(name string) Key {
	switch name {
	case "space":
		return KeySpace
	case "return", "enter":
		return KeyReturn
	case "f":
		return KeyF
	default:
		return KeyOther
	}
}
