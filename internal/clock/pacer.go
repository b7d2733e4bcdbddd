package clock

import "time"

// Pacer helps run frame updates at a steady frames-per-second rate when no
// windowing loop is doing it for us.
type Pacer struct {
	src         Source
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewPacer constructs a Pacer targeting the given FPS.
func NewPacer(src Source, fps int) *Pacer {
	if src == nil {
		src = SystemSource{}
	}
	p := &Pacer{src: src}
	p.SetFPS(fps)
	p.accumulator = p.step
	return p
}

// SetFPS changes the frame rate. It is safe to call from the main loop.
func (p *Pacer) SetFPS(fps int) {
	if fps <= 0 {
		fps = 60
	}
	p.step = time.Second / time.Duration(fps)
}

// Step returns the configured frame duration.
func (p *Pacer) Step() time.Duration { return p.step }

// ShouldStep reports whether the loop should advance by one frame.
func (p *Pacer) ShouldStep() bool {
	now := p.src.Now()
	if p.last.IsZero() {
		p.last = now
	}
	delta := now.Sub(p.last)
	p.last = now
	p.accumulator += delta
	if p.accumulator >= p.step {
		p.accumulator -= p.step
		return true
	}
	return false
}

// Wait sleeps until the next frame is due.
func (p *Pacer) Wait() {
	for !p.ShouldStep() {
		time.Sleep(p.step / 4)
	}
}
