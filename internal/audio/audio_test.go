package audio

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zonefx/internal/vmath"
)

var testFormat = beep.Format{SampleRate: targetSampleRate, NumChannels: 2, Precision: 2}

func constant(n int, v float64) beep.Streamer {
	left := n
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if left == 0 {
			return 0, false
		}
		k := min(len(samples), left)
		for i := range samples[:k] {
			samples[i] = [2]float64{v, v}
		}
		left -= k
		return k, true
	})
}

type captureSink struct {
	streams []beep.Streamer
	cleared int
	err     error
}

func (c *captureSink) Play(s beep.Streamer) error {
	if c.err != nil {
		return c.err
	}
	c.streams = append(c.streams, s)
	return nil
}

func (c *captureSink) Clear() { c.cleared++ }

func drain(s beep.Streamer) (first [2]float64, total int) {
	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		if n > 0 && total == 0 {
			first = buf[0]
		}
		total += n
		if !ok {
			return first, total
		}
	}
}

func TestLibraryLength(t *testing.T) {
	lib := NewLibrary()
	lib.Add("wind_1", testFormat, constant(int(targetSampleRate)*3/2, 0.1))

	d, err := lib.Length("wind_1")
	require.NoError(t, err)
	assert.Equal(t, 1500*time.Millisecond, d)

	_, err = lib.Length("missing")
	assert.True(t, errors.Is(err, ErrNoSound))
}

func TestLibraryLoadDir(t *testing.T) {
	dir := t.TempDir()
	f, err := os.Create(filepath.Join(dir, "crickets.wav"))
	require.NoError(t, err)
	require.NoError(t, wav.Encode(f, constant(4800, 0.25), testFormat))
	require.NoError(t, f.Close())
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.wav"), []byte("not a wav"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	lib := NewLibrary()
	n, err := lib.LoadDir(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, []string{"crickets"}, lib.Names())

	d, err := lib.Length("crickets")
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, d)
}

func TestLibraryLoadDirMissing(t *testing.T) {
	_, err := NewLibrary().LoadDir(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestPlayerAttenuatesByDistance(t *testing.T) {
	lib := NewLibrary()
	lib.Add("owl", testFormat, constant(4800, 0.8))
	sink := &captureSink{}
	p := NewPlayerWithSink(lib, sink)
	p.SetListener(vmath.V3(10, 0, 10))

	length, err := p.PlayAt("owl", vmath.V3(10, 0, 40))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, length)
	require.Len(t, sink.streams, 1)
	assert.Equal(t, 1, p.Playing())

	first, total := drain(sink.streams[0])
	assert.Equal(t, 4800, total)
	assert.InDelta(t, 0.4, first[0], 1e-9)
	assert.InDelta(t, 0.4, first[1], 1e-9)
	assert.Equal(t, 0, p.Playing(), "finished stream still counted")
}

func TestPlayerPansTowardSource(t *testing.T) {
	lib := NewLibrary()
	lib.Add("owl", testFormat, constant(480, 1))
	sink := &captureSink{}
	p := NewPlayerWithSink(lib, sink)

	_, err := p.PlayAt("owl", vmath.V3(20, 0, 0))
	require.NoError(t, err)
	first, _ := drain(sink.streams[0])
	assert.Less(t, first[0], first[1], "source on the right should favour the right channel")
}

func TestPlayerUnknownAndSinkErrors(t *testing.T) {
	lib := NewLibrary()
	lib.Add("owl", testFormat, constant(480, 1))
	sink := &captureSink{}
	p := NewPlayerWithSink(lib, sink)

	_, err := p.PlayAt("bat", vmath.Vec3{})
	assert.True(t, errors.Is(err, ErrNoSound))

	sink.err = errors.New("no device")
	_, err = p.PlayAt("owl", vmath.Vec3{})
	assert.Error(t, err)
	assert.Equal(t, 0, p.Playing())

	p.StopAll()
	assert.Equal(t, 1, sink.cleared)
}

func TestSpatialize(t *testing.T) {
	gain, pan := spatialize(vmath.V3(0, 0, 0), 60)
	assert.Equal(t, 1.0, gain)
	assert.Equal(t, 0.0, pan)

	gain, _ = spatialize(vmath.V3(0, 0, 90), 60)
	assert.Equal(t, 0.0, gain)

	_, pan = spatialize(vmath.V3(-5, 0, 0), 60)
	assert.Equal(t, -1.0, pan)
}

func TestSilentBackend(t *testing.T) {
	s := NewSilent(map[string]time.Duration{"owl": 2 * time.Second}, 0)
	d, err := s.PlayAt("owl", vmath.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, d)

	_, err = s.PlayAt("bat", vmath.Vec3{})
	assert.True(t, errors.Is(err, ErrNoSound))
	assert.Equal(t, 1, s.Played())

	fallback := NewSilent(nil, time.Second)
	d, err = fallback.PlayAt("anything", vmath.Vec3{})
	require.NoError(t, err)
	assert.Equal(t, time.Second, d)
}
