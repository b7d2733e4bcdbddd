package session

import "log/slog"

// IntroPhase is the step of the startup sequence currently showing.
type IntroPhase int

const (
	IntroIdle IntroPhase = iota
	IntroLogo
	IntroGameLoaded
	IntroGame
	IntroDone
)

func (p IntroPhase) String() string {
	switch p {
	case IntroLogo:
		return "logo"
	case IntroGameLoaded:
		return "game-loaded"
	case IntroGame:
		return "game-intro"
	case IntroDone:
		return "done"
	default:
		return "idle"
	}
}

// Sequence names passed to Sequencer.Start.
const (
	SequenceLogo       = "intro_logo"
	SequenceGameLoaded = "game_loaded"
	SequenceGame       = "intro_game"
)

// Sequencer plays a named cutscene. Start reports false when the sequence
// cannot be shown.
type Sequencer interface {
	Start(name string) bool
	IsFinished() bool
}

// IntroOptions gates each step of the sequence.
type IntroOptions struct {
	// AllowIntro is cleared by -nointro and suppresses the logo and game intros.
	AllowIntro bool
	// AllowGameIntro is cleared by -nogameintro and skips the game_loaded prompt.
	AllowGameIntro bool
	// WaitForKey shows the game_loaded prompt before the game intro.
	WaitForKey bool
	// NewGame plays the game intro; loaded saves skip it.
	NewGame bool
}

// Intro walks logo, game_loaded and game intro in order, polling the
// sequencer once per frame.
type Intro struct {
	seq      Sequencer
	opts     IntroOptions
	gameType GameType
	phase    IntroPhase
	log      *slog.Logger
}

// NewIntro returns an idle intro driver.
func NewIntro(seq Sequencer, opts IntroOptions, gameType GameType, logger *slog.Logger) *Intro {
	if logger == nil {
		logger = slog.Default()
	}
	return &Intro{seq: seq, opts: opts, gameType: gameType, log: logger}
}

// Phase returns the current step.
func (in *Intro) Phase() IntroPhase { return in.phase }

// Begin restarts the sequence from the logo.
func (in *Intro) Begin() {
	in.phase = IntroIdle
	if !in.opts.AllowIntro || in.seq == nil {
		in.phase = IntroDone
		return
	}
	in.start(IntroLogo, SequenceLogo)
}

// Poll advances to the next step once the running sequence has finished.
func (in *Intro) Poll() IntroPhase {
	switch in.phase {
	case IntroLogo:
		if in.seq.IsFinished() {
			in.gameLoaded()
		}
	case IntroGameLoaded:
		if in.seq.IsFinished() {
			in.gameIntro()
		}
	case IntroGame:
		if in.seq.IsFinished() {
			in.phase = IntroDone
			in.log.Debug("intro finished")
		}
	}
	return in.phase
}

func (in *Intro) gameLoaded() {
	if in.opts.AllowGameIntro && in.opts.WaitForKey && in.gameType.IsSingle() {
		if in.start(IntroGameLoaded, SequenceGameLoaded) {
			return
		}
	}
	in.gameIntro()
}

func (in *Intro) gameIntro() {
	if in.opts.AllowIntro && in.opts.NewGame {
		if in.start(IntroGame, SequenceGame) {
			return
		}
	}
	in.phase = IntroDone
}

func (in *Intro) start(phase IntroPhase, name string) bool {
	if !in.seq.Start(name) {
		in.log.Warn("intro sequence unavailable", "sequence", name)
		return false
	}
	in.log.Info("intro_start", "sequence", name)
	in.phase = phase
	return true
}

// TimedSequencer finishes each sequence after a fixed length of game time.
type TimedSequencer struct {
	now     func() float64
	lengths map[string]float64
	endS    float64
	running bool
}

// NewTimedSequencer plays the named sequences for the given lengths in seconds.
func NewTimedSequencer(now func() float64, lengths map[string]float64) *TimedSequencer {
	return &TimedSequencer{now: now, lengths: lengths}
}

// Start implements Sequencer.
func (t *TimedSequencer) Start(name string) bool {
	length, ok := t.lengths[name]
	if !ok {
		return false
	}
	t.endS = t.now() + length
	t.running = true
	return true
}

// IsFinished implements Sequencer.
func (t *TimedSequencer) IsFinished() bool {
	return !t.running || t.now() >= t.endS
}

// Skip ends the running sequence immediately.
func (t *TimedSequencer) Skip() { t.running = false }
