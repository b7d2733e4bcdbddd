package session

import "testing"

type fakeSeq struct {
	started  []string
	finished bool
	refuse   map[string]bool
}

func (f *fakeSeq) Start(name string) bool {
	if f.refuse[name] {
		return false
	}
	f.started = append(f.started, name)
	f.finished = false
	return true
}

func (f *fakeSeq) IsFinished() bool { return f.finished }

func finishAndPoll(in *Intro, seq *fakeSeq) IntroPhase {
	seq.finished = true
	return in.Poll()
}

func TestIntroFullSequence(t *testing.T) {
	seq := &fakeSeq{}
	in := NewIntro(seq, IntroOptions{AllowIntro: true, AllowGameIntro: true, WaitForKey: true, NewGame: true}, GameSingle, nil)
	in.Begin()
	if in.Phase() != IntroLogo {
		t.Fatalf("phase %s, want logo", in.Phase())
	}
	if in.Poll() != IntroLogo {
		t.Fatal("left the logo before it finished")
	}
	if got := finishAndPoll(in, seq); got != IntroGameLoaded {
		t.Fatalf("phase %s, want game-loaded", got)
	}
	if got := finishAndPoll(in, seq); got != IntroGame {
		t.Fatalf("phase %s, want game-intro", got)
	}
	if got := finishAndPoll(in, seq); got != IntroDone {
		t.Fatalf("phase %s, want done", got)
	}
	want := []string{SequenceLogo, SequenceGameLoaded, SequenceGame}
	if len(seq.started) != len(want) {
		t.Fatalf("started %v, want %v", seq.started, want)
	}
	for i := range want {
		if seq.started[i] != want[i] {
			t.Fatalf("started %v, want %v", seq.started, want)
		}
	}
}

func TestIntroGates(t *testing.T) {
	tests := []struct {
		name     string
		opts     IntroOptions
		gameType GameType
		refuse   map[string]bool
		want     []string
	}{
		{"no intro", IntroOptions{AllowGameIntro: true, WaitForKey: true, NewGame: true}, GameSingle, nil, nil},
		{"no game intro prompt", IntroOptions{AllowIntro: true, WaitForKey: true, NewGame: true}, GameSingle, nil, []string{SequenceLogo, SequenceGame}},
		{"multiplayer skips prompt", IntroOptions{AllowIntro: true, AllowGameIntro: true, WaitForKey: true, NewGame: true}, GameDeathmatch, nil, []string{SequenceLogo, SequenceGame}},
		{"loaded save", IntroOptions{AllowIntro: true, AllowGameIntro: true}, GameSingle, nil, []string{SequenceLogo}},
		{"prompt unavailable", IntroOptions{AllowIntro: true, AllowGameIntro: true, WaitForKey: true, NewGame: true}, GameSingle, map[string]bool{SequenceGameLoaded: true}, []string{SequenceLogo, SequenceGame}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq := &fakeSeq{refuse: tt.refuse}
			in := NewIntro(seq, tt.opts, tt.gameType, nil)
			in.Begin()
			for i := 0; i < 5 && in.Phase() != IntroDone; i++ {
				finishAndPoll(in, seq)
			}
			if in.Phase() != IntroDone {
				t.Fatalf("sequence never finished, stuck in %s", in.Phase())
			}
			if len(seq.started) != len(tt.want) {
				t.Fatalf("started %v, want %v", seq.started, tt.want)
			}
			for i := range tt.want {
				if seq.started[i] != tt.want[i] {
					t.Fatalf("started %v, want %v", seq.started, tt.want)
				}
			}
		})
	}
}

func TestTimedSequencer(t *testing.T) {
	now := 1.0
	seq := NewTimedSequencer(func() float64 { return now }, map[string]float64{"intro_logo": 2})
	if !seq.IsFinished() {
		t.Fatal("idle sequencer should report finished")
	}
	if seq.Start("unknown") {
		t.Fatal("unknown sequence started")
	}
	if !seq.Start("intro_logo") {
		t.Fatal("known sequence refused")
	}
	now = 2.5
	if seq.IsFinished() {
		t.Fatal("finished early")
	}
	now = 3
	if !seq.IsFinished() {
		t.Fatal("did not finish on time")
	}
	seq.Start("intro_logo")
	seq.Skip()
	if !seq.IsFinished() {
		t.Fatal("skip did not finish the sequence")
	}
}
