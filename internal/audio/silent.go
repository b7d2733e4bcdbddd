package audio

import (
	"fmt"
	"sync"
	"time"

	"zonefx/internal/vmath"
)

// Silent satisfies the scheduler's audio needs without a sound device. It
// reports configured lengths so scheduling matches a real run.
type Silent struct {
	mu      sync.Mutex
	lengths map[string]time.Duration
	def     time.Duration
	played  int
}

// NewSilent returns a silent backend. Unknown assets get def, or ErrNoSound
// when def is zero.
func NewSilent(lengths map[string]time.Duration, def time.Duration) *Silent {
	if lengths == nil {
		lengths = map[string]time.Duration{}
	}
	return &Silent{lengths: lengths, def: def}
}

// PlayAt returns the nominal length of asset.
func (s *Silent) PlayAt(asset string, _ vmath.Vec3) (time.Duration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	length, ok := s.lengths[asset]
	if !ok {
		if s.def <= 0 {
			return 0, fmt.Errorf("%w: %s", ErrNoSound, asset)
		}
		length = s.def
	}
	s.played++
	return length, nil
}

// StopAll is a no-op.
func (s *Silent) StopAll() {}

// Played returns how many sounds were requested successfully.
func (s *Silent) Played() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.played
}
