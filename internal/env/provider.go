package env

import "math"

// Pair is the blended couple of descriptors active at a point in time.
type Pair [2]*Descriptor

// Provider supplies the current descriptor pair and the blend weight toward
// the second slot.
type Provider interface {
	Current() (Pair, float64)
}

// Select picks slot 0 with probability 1-weight and slot 1 otherwise.
func Select(p Provider, rnd Random) *Descriptor {
	pair, weight := p.Current()
	if rnd.Float64() < 1-weight {
		return pair[0]
	}
	return pair[1]
}

// Fixed is a Provider with a manually controlled weight.
type Fixed struct {
	pair   Pair
	weight float64
}

// NewFixed returns a provider over the given pair.
func NewFixed(a, b *Descriptor, weight float64) *Fixed {
	f := &Fixed{pair: Pair{a, b}}
	f.SetWeight(weight)
	return f
}

// Current implements Provider.
func (f *Fixed) Current() (Pair, float64) { return f.pair, f.weight }

// SetWeight clamps and stores the blend weight.
func (f *Fixed) SetWeight(w float64) { f.weight = clamp01(w) }

// Weight returns the current blend weight.
func (f *Fixed) Weight() float64 { return f.weight }

// Cycle walks a looping list of descriptors, blending each into the next over
// a fixed segment length of game time.
type Cycle struct {
	descriptors []*Descriptor
	segmentS    float64
	pair        Pair
	weight      float64
}

// NewCycle builds a cycle. A single descriptor blends with itself.
func NewCycle(descriptors []*Descriptor, segmentS float64) *Cycle {
	c := &Cycle{descriptors: descriptors, segmentS: segmentS}
	c.Update(0)
	return c
}

// Update recomputes the pair and weight for game time nowS.
func (c *Cycle) Update(nowS float64) {
	n := len(c.descriptors)
	if n == 0 {
		c.pair = Pair{}
		c.weight = 0
		return
	}
	if c.segmentS <= 0 || n == 1 {
		c.pair = Pair{c.descriptors[0], c.descriptors[0]}
		c.weight = 0
		return
	}
	pos := nowS / c.segmentS
	idx := int(math.Floor(pos)) % n
	if idx < 0 {
		idx += n
	}
	c.pair = Pair{c.descriptors[idx], c.descriptors[(idx+1)%n]}
	c.weight = clamp01(pos - math.Floor(pos))
}

// Current implements Provider.
func (c *Cycle) Current() (Pair, float64) { return c.pair, c.weight }

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
