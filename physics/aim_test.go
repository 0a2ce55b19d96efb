package physics

import (
	"testing"

	"github.com/lixenwraith/rangefire/event"
	"github.com/lixenwraith/rangefire/vmath"
)

func TestAimAssistTracksNearest(t *testing.T) {
	bus := event.NewBus()
	origin := vmath.Vec3F{Y: 1}
	aim := NewAimAssist(origin, vmath.Vec3F{Z: 1})
	aim.Attach(bus)

	if o, d := aim.Pose(); o != origin || d != (vmath.Vec3F{Z: 1}) {
		t.Fatalf("idle pose = %+v %+v", o, d)
	}

	bus.Emit(event.EventTargetSpawned, &event.TargetPayload{Entity: 1, Position: vmath.Vec3F{Y: 1, Z: 8}}, testEpoch)
	bus.Emit(event.EventTargetSpawned, &event.TargetPayload{Entity: 2, Position: vmath.Vec3F{X: 3, Y: 1}}, testEpoch)

	if _, d := aim.Pose(); d != (vmath.Vec3F{X: 3}) {
		t.Errorf("direction = %+v, want toward entity 2", d)
	}

	bus.Emit(event.EventTargetHit, &event.TargetPayload{Entity: 2}, testEpoch)
	if _, d := aim.Pose(); d != (vmath.Vec3F{Z: 8}) {
		t.Errorf("direction after hit = %+v, want toward entity 1", d)
	}

	bus.Emit(event.EventTargetDestroyed, &event.TargetPayload{Entity: 1}, testEpoch)
	if aim.Tracked() != 0 {
		t.Errorf("tracked = %d, want 0", aim.Tracked())
	}

	aim.Detach(bus)
	bus.Emit(event.EventTargetSpawned, &event.TargetPayload{Entity: 3, Position: vmath.Vec3F{X: 1}}, testEpoch)
	if aim.Tracked() != 0 {
		t.Error("detached aim assist still tracking")
	}
}
