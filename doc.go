// Package easel is an infinite-canvas editor core for [Ebitengine].
//
// Easel provides the view transform, interaction state machine, and render
// pass behind a pan/zoom canvas with a grid-snapped "generation frame" that
// the user fills with asynchronously fetched placeholder images.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	editor := easel.NewEditor(easel.NewPicsumSource(nil))
//	easel.Run(editor, easel.RunConfig{
//		Title: "Easel", Width: 1280, Height: 800,
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Editor.Update] and [Editor.Draw] directly.
//
// # Architecture
//
// All mutable state lives in a [Machine]: a tagged-state interaction machine
// whose single entry point, [Machine.Handle], consumes one [Event] and
// returns a list of [Effect] descriptors (cursor changes, default-action
// suppression, image fetch requests). The machine is pure apart from those
// descriptors, so the whole interaction model is testable without a display.
//
// [Editor] is the driver: each tick it polls Ebitengine input, feeds events
// through the machine, and executes the returned effects. Rendering is a
// read-only pass over a [Snapshot] of the machine, batched per display frame
// behind a dirty flag.
//
// Coordinates come in two spaces. Screen space is the pixel space of raw
// input events; world space is the unbounded space the frame and placements
// live in. [Affine] converts between the two.
//
// [Ebitengine]: https://ebitengine.org
package easel
