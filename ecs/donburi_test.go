package ecs

import (
	"testing"

	"github.com/phanxgames/easel"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []easel.EditorEvent
	EditorEventType.Subscribe(world, func(w donburi.World, e easel.EditorEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(easel.EditorEvent{
		Kind:  easel.EventStateChanged,
		State: easel.StateDragging,
		Frame: easel.Rect{X: 64, Y: 64, Width: 512, Height: 512},
		Zoom:  1,
	})

	sink.EmitEvent(easel.EditorEvent{
		Kind:  easel.EventPlacementAdded,
		State: easel.StateIdle,
		Index: 3,
	})

	// Donburi queues events; deliver them now.
	EditorEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}

	e0 := received[0]
	if e0.Kind != easel.EventStateChanged || e0.State != easel.StateDragging {
		t.Errorf("event 0: %+v", e0)
	}
	if e0.Frame.X != 64 || e0.Frame.Width != 512 {
		t.Errorf("event 0 frame: %+v", e0.Frame)
	}

	e1 := received[1]
	if e1.Kind != easel.EventPlacementAdded || e1.Index != 3 {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiSink_ImplementsEventSink(t *testing.T) {
	world := donburi.NewWorld()
	var sink easel.EventSink = NewDonburiSink(world)
	_ = sink // compile-time interface check
}

func TestDonburiSink_MultipleSubscribers(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var count1, count2 int
	EditorEventType.Subscribe(world, func(w donburi.World, e easel.EditorEvent) {
		count1++
	})
	EditorEventType.Subscribe(world, func(w donburi.World, e easel.EditorEvent) {
		count2++
	})

	sink.EmitEvent(easel.EditorEvent{Kind: easel.EventViewChanged})
	events.ProcessAllEvents(world)

	if count1 != 1 || count2 != 1 {
		t.Errorf("expected both subscribers called once, got %d and %d", count1, count2)
	}
}
