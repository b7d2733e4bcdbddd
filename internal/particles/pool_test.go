package particles

import (
	"errors"
	"testing"
	"time"

	"zonefx/internal/vmath"
)

func TestPoolLifecycle(t *testing.T) {
	now := 0.0
	p := NewPool(map[string]time.Duration{"leaves": 2 * time.Second}, func() float64 { return now })

	inst, err := p.Create("leaves")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if inst.IsPlaying() {
		t.Fatal("instance plays before PlayAt")
	}

	now = 10
	inst.PlayAt(vmath.V3(1, 2, 3))
	if !inst.IsPlaying() {
		t.Fatal("instance not playing after PlayAt")
	}

	now = 11.5
	snaps := p.Instances()
	if len(snaps) != 1 || snaps[0].AgeS != 1.5 || !snaps[0].Position.Similar(vmath.V3(1, 2, 3)) {
		t.Fatalf("unexpected snapshot %+v", snaps)
	}

	now = 12
	if inst.IsPlaying() {
		t.Fatal("instance still playing after its duration")
	}
	inst.Destroy()
	if p.Len() != 0 {
		t.Fatalf("pool still holds %d instances", p.Len())
	}
}

func TestPoolLoopingUntilStopped(t *testing.T) {
	now := 0.0
	p := NewPool(map[string]time.Duration{"dust": 0}, func() float64 { return now })
	inst, _ := p.Create("dust")
	inst.PlayAt(vmath.Vec3{})

	now = 1000
	if !inst.IsPlaying() {
		t.Fatal("looping instance stopped on its own")
	}
	inst.Stop()
	if inst.IsPlaying() {
		t.Fatal("stopped instance reports playing")
	}
}

func TestPoolUnknownAsset(t *testing.T) {
	p := NewPool(nil, func() float64 { return 0 })
	if _, err := p.Create("smoke"); !errors.Is(err, ErrUnknownAsset) {
		t.Fatalf("expected ErrUnknownAsset, got %v", err)
	}

	p.Register("smoke", time.Second)
	if _, err := p.Create("smoke"); err != nil {
		t.Fatalf("registered asset failed: %v", err)
	}
	p.Clear()
	if p.Len() != 0 {
		t.Fatal("clear kept instances")
	}
}
