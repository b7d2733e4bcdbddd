// Package audio plays the scheduler's sound requests through gopxl/beep.
package audio

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/wav"
)

// ErrNoSound is returned for assets the library does not hold.
var ErrNoSound = errors.New("sound not loaded")

// Library holds decoded sound assets in memory, keyed by name.
type Library struct {
	mu     sync.RWMutex
	sounds map[string]*beep.Buffer
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{sounds: make(map[string]*beep.Buffer)}
}

// Add buffers every sample of s under name, replacing any previous asset.
func (l *Library) Add(name string, format beep.Format, s beep.Streamer) {
	buf := beep.NewBuffer(format)
	buf.Append(s)

	l.mu.Lock()
	l.sounds[name] = buf
	l.mu.Unlock()
}

// LoadFile decodes a wav file and stores it under its base name without extension.
func (l *Library) LoadFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open sound %s: %w", path, err)
	}
	defer f.Close()

	streamer, format, err := wav.Decode(f)
	if err != nil {
		return fmt.Errorf("decode sound %s: %w", path, err)
	}
	defer streamer.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	l.Add(name, format, streamer)
	return nil
}

// LoadDir loads every .wav file in dir. Files that fail to decode are logged
// and skipped; the number of loaded assets is returned.
func (l *Library) LoadDir(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, fmt.Errorf("read sound dir: %w", err)
	}
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".wav") {
			continue
		}
		if err := l.LoadFile(filepath.Join(dir, e.Name())); err != nil {
			slog.Warn("skipping sound", "file", e.Name(), "error", err)
			continue
		}
		loaded++
	}
	return loaded, nil
}

// Length returns the playback length of an asset.
func (l *Library) Length(name string) (time.Duration, error) {
	buf, err := l.buffer(name)
	if err != nil {
		return 0, err
	}
	return buf.Format().SampleRate.D(buf.Len()), nil
}

// Names lists the loaded assets in sorted order.
func (l *Library) Names() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.sounds))
	for name := range l.sounds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (l *Library) buffer(name string) (*beep.Buffer, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	buf, ok := l.sounds[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSound, name)
	}
	return buf, nil
}
