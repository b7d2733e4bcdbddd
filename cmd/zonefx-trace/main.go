// Command zonefx-trace runs a session headless at a fixed frame rate and
// prints every scheduling decision.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"zonefx/internal/app"
	"zonefx/internal/clock"
	"zonefx/internal/session"
	"zonefx/internal/weather"
)

type traceOptions struct {
	duration     time.Duration
	fps          int
	realtime     bool
	indoorAt     time.Duration
	pick         bool
	disconnectAt time.Duration
	quiet        bool
}

func main() {
	var t traceOptions
	flag.DurationVar(&t.duration, "duration", 60*time.Second, "game time to simulate")
	flag.IntVar(&t.fps, "fps", 60, "frames per second of game time")
	flag.BoolVar(&t.realtime, "realtime", false, "pace frames against the wall clock")
	flag.DurationVar(&t.indoorAt, "indoor-at", 0, "move the listener indoors at this game time (0 = never)")
	flag.BoolVar(&t.pick, "pick", false, "track the aim range with the DOF")
	flag.DurationVar(&t.disconnectAt, "disconnect-at", 0, "disconnect the session at this game time (0 = never)")
	flag.BoolVar(&t.quiet, "quiet", false, "only print the summary")

	cfg, flags, logger, err := app.Startup(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatal(err)
	}
	cfg.Audio.Enabled = false

	rt, err := app.Build(cfg, flags.Set.Map(), logger)
	if err != nil {
		log.Fatal(err)
	}
	run(rt.Session, t)
}

func run(s *session.Session, t traceOptions) {
	if t.fps <= 0 {
		t.fps = 60
	}
	dt := time.Second / time.Duration(t.fps)
	c := clock.New(nil)
	var pacer *clock.Pacer
	if t.realtime {
		pacer = clock.NewPacer(nil, t.fps)
	}
	if t.pick {
		s.DOF.SetPickable(true)
	}

	fmt.Printf("session %s catalog=%s seed=%d fps=%d\n", s.ID, s.Catalog().Name, s.Options().Seed, t.fps)
	lastPhase := weather.PhaseIdle
	lastIntro := s.Intro.Phase()
	indoor := false
	for c.Elapsed() < t.duration {
		if pacer != nil {
			pacer.Wait()
		}
		f := c.Step(dt)
		if t.indoorAt > 0 && !indoor && c.Elapsed() >= t.indoorAt {
			indoor = true
			s.SetIndoor(true)
			event(t, f, "listener indoors")
		}
		if t.disconnectAt > 0 && s.Connected() && c.Elapsed() >= t.disconnectAt {
			s.Disconnect()
			event(t, f, "disconnected")
		}

		s.Step(f)
		if p := s.Intro.Phase(); p != lastIntro {
			event(t, f, "intro %s", p)
			lastIntro = p
		}
		if !s.Connected() {
			continue
		}
		r := s.LastReport()
		if s.Frame().Number != f.Number {
			continue
		}
		for _, ev := range r.Sounds {
			event(t, f, "sound channel=%s asset=%s pos=(%.1f, %.1f, %.1f) next=%dms",
				ev.Channel, ev.Asset, ev.Position.X, ev.Position.Y, ev.Position.Z, s.Weather.Sounds.Next(ev.Index))
		}
		if r.GustStarted != nil {
			event(t, f, "gust %s strength=%.2f gust_factor=%.2f next=%dms",
				r.GustStarted.Name, r.GustStarted.Strength, s.Weather.Wind.GustFactor, s.Weather.Gust.NextTriggerMS())
		}
		if r.Phase != lastPhase {
			event(t, f, "wind %s strength=%.3f", r.Phase, s.Weather.Wind.StrengthFactor)
			lastPhase = r.Phase
		}
	}

	st := s.Stats()
	fmt.Printf("\nframes=%d sounds=%d gusts=%d paused_frames=%d\n", st.Frames, st.Sounds, st.Gusts, st.SkippedPause)
	for _, g := range s.Parameters().Groups {
		var parts []string
		for _, p := range g.Params {
			parts = append(parts, p.Key+"="+p.Value)
		}
		fmt.Printf("  %-12s %s\n", g.Name, strings.Join(parts, " "))
	}
}

func event(t traceOptions, f clock.Frame, format string, args ...any) {
	if t.quiet {
		return
	}
	fmt.Printf("%9.3fs  %s\n", f.NowS, fmt.Sprintf(format, args...))
}
