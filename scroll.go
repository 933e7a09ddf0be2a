package easel

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// viewAnim holds active pan tweens for the view translation.
type viewAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// zoomAnim holds an active zoom tween on the view's horizontal scale.
type zoomAnim struct {
	tween *gween.Tween
	done  bool
}

// CenterOnFrame animates the view so the generation frame is centered in
// the viewport, over duration seconds at the current zoom level.
func (e *Editor) CenterOnFrame(duration float32) {
	snap := e.machine.Snapshot()
	fx := snap.Frame.X + snap.Frame.Width/2
	fy := snap.Frame.Y + snap.Frame.Height/2

	// Solve view.Apply(frame center) == viewport center for the translation.
	targetE := float64(snap.Width)/2 - snap.View.A*fx
	targetF := float64(snap.Height)/2 - snap.View.D*fy

	e.scroll = &viewAnim{
		tweenX: gween.New(float32(snap.View.E), float32(targetE), duration, ease.OutQuad),
		tweenY: gween.New(float32(snap.View.F), float32(targetF), duration, ease.OutQuad),
	}
}

// ZoomTo animates the view's scale to target over duration seconds,
// pivoting about the viewport center. The target is clamped to
// [MinZoom, MaxZoom] before the tween starts.
func (e *Editor) ZoomTo(target float64, duration float32) {
	if target < MinZoom {
		target = MinZoom
	}
	if target > MaxZoom {
		target = MaxZoom
	}
	snap := e.machine.Snapshot()
	e.zoom = &zoomAnim{
		tween: gween.New(float32(snap.View.A), float32(target), duration, ease.OutQuad),
	}
}

// updateAnimations advances active view tweens by dt seconds and pushes the
// result through the machine. Called once per tick from Editor.Update.
func (e *Editor) updateAnimations(dt float32) {
	if e.scroll != nil {
		view := e.machine.Snapshot().View
		if !e.scroll.doneX {
			val, done := e.scroll.tweenX.Update(dt)
			view.E = float64(val)
			e.scroll.doneX = done
		}
		if !e.scroll.doneY {
			val, done := e.scroll.tweenY.Update(dt)
			view.F = float64(val)
			e.scroll.doneY = done
		}
		if e.machine.SetView(view) {
			e.dirty = true
		}
		if e.scroll.doneX && e.scroll.doneY {
			e.scroll = nil
		}
	}

	if e.zoom != nil {
		val, done := e.zoom.tween.Update(dt)
		snap := e.machine.Snapshot()
		if snap.View.A != 0 {
			cx := float64(snap.Width) / 2
			cy := float64(snap.Height) / 2
			if next, ok := snap.View.ZoomAbout(float64(val)/snap.View.A, cx, cy); ok {
				if e.machine.SetView(next) {
					e.dirty = true
				}
			}
		}
		if done {
			e.zoom = nil
		}
	}
}
