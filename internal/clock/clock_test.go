package clock

import (
	"testing"
	"time"
)

func TestClockFreezesWhilePaused(t *testing.T) {
	src := NewManualSource(time.Unix(1000, 0))
	c := New(src)
	c.Advance()

	src.Advance(250 * time.Millisecond)
	f := c.Advance()
	if f.NowMS != 250 || f.DeltaS != 0.25 {
		t.Fatalf("after 250ms got NowMS=%d DeltaS=%f", f.NowMS, f.DeltaS)
	}

	c.Pause()
	src.Advance(time.Second)
	f = c.Advance()
	if !f.Paused || f.NowMS != 250 || f.DeltaS != 0 {
		t.Fatalf("paused frame advanced: %+v", f)
	}

	c.Resume()
	src.Advance(100 * time.Millisecond)
	f = c.Advance()
	if f.NowMS != 350 {
		t.Fatalf("resume should not jump, NowMS=%d want 350", f.NowMS)
	}
}

func TestClockStep(t *testing.T) {
	c := New(nil)
	for i := 0; i < 10; i++ {
		c.Step(100 * time.Millisecond)
	}
	f := c.Current()
	if f.NowMS != 1000 {
		t.Fatalf("NowMS = %d, want 1000", f.NowMS)
	}
	if f.Number != 10 {
		t.Fatalf("frame number = %d, want 10", f.Number)
	}
}

func TestPacerStepsAtRate(t *testing.T) {
	src := NewManualSource(time.Unix(0, 0))
	p := NewPacer(src, 10)
	if !p.ShouldStep() {
		t.Fatal("first poll should step")
	}
	src.Advance(50 * time.Millisecond)
	if p.ShouldStep() {
		t.Fatal("stepped before the frame was due")
	}
	src.Advance(50 * time.Millisecond)
	if !p.ShouldStep() {
		t.Fatal("expected a step after a full frame")
	}
}
