// Package particles tracks live particle instances against game time. It
// stands in for a renderer's particle system: the scheduler only needs to
// create, place, stop and poll them.
package particles

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"zonefx/internal/vmath"
	"zonefx/internal/weather"
)

// ErrUnknownAsset is returned when a particle definition is not registered.
var ErrUnknownAsset = errors.New("unknown particle asset")

// Snapshot is a read-only view of one instance for display.
type Snapshot struct {
	ID       uint64
	Asset    string
	Position vmath.Vec3
	AgeS     float64
	Playing  bool
}

// Pool creates instances from registered definitions. A definition with a
// zero duration loops until stopped.
type Pool struct {
	mu     sync.Mutex
	assets map[string]time.Duration
	live   map[uint64]*instance
	nextID uint64
	now    func() float64
}

// NewPool returns a pool reading game time in seconds from now.
func NewPool(assets map[string]time.Duration, now func() float64) *Pool {
	p := &Pool{
		assets: make(map[string]time.Duration, len(assets)),
		live:   make(map[uint64]*instance),
		now:    now,
	}
	for name, d := range assets {
		p.assets[name] = d
	}
	return p
}

// Register adds or replaces a definition.
func (p *Pool) Register(name string, d time.Duration) {
	p.mu.Lock()
	p.assets[name] = d
	p.mu.Unlock()
}

// Create implements weather.Particles.
func (p *Pool) Create(asset string) (weather.Instance, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	d, ok := p.assets[asset]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAsset, asset)
	}
	p.nextID++
	inst := &instance{pool: p, id: p.nextID, asset: asset, duration: d.Seconds()}
	p.live[inst.id] = inst
	slog.Debug("particles created", "asset", asset, "id", inst.id)
	return inst, nil
}

// Len returns the number of instances not yet destroyed.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.live)
}

// Instances returns the live instances ordered by id.
func (p *Pool) Instances() []Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := p.now()
	out := make([]Snapshot, 0, len(p.live))
	for _, inst := range p.live {
		s := Snapshot{ID: inst.id, Asset: inst.asset, Position: inst.pos, Playing: inst.playingAt(now)}
		if inst.started {
			s.AgeS = now - inst.startS
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Clear destroys every instance.
func (p *Pool) Clear() {
	p.mu.Lock()
	p.live = make(map[uint64]*instance)
	p.mu.Unlock()
}

type instance struct {
	pool     *Pool
	id       uint64
	asset    string
	pos      vmath.Vec3
	duration float64
	startS   float64
	started  bool
	stopped  bool
}

func (i *instance) PlayAt(pos vmath.Vec3) {
	i.pool.mu.Lock()
	defer i.pool.mu.Unlock()
	i.pos = pos
	i.startS = i.pool.now()
	i.started = true
	i.stopped = false
}

func (i *instance) Stop() {
	i.pool.mu.Lock()
	i.stopped = true
	i.pool.mu.Unlock()
}

func (i *instance) IsPlaying() bool {
	i.pool.mu.Lock()
	defer i.pool.mu.Unlock()
	return i.playingAt(i.pool.now())
}

func (i *instance) Destroy() {
	i.pool.mu.Lock()
	delete(i.pool.live, i.id)
	i.pool.mu.Unlock()
}

func (i *instance) playingAt(now float64) bool {
	if !i.started || i.stopped {
		return false
	}
	return i.duration <= 0 || now < i.startS+i.duration
}
