package session

import (
	"fmt"
	"strings"
)

// GameType identifies the rules a session runs under.
type GameType uint32

const (
	GameNone               GameType = 0
	GameSingle             GameType = 1 << 0
	GameDeathmatch         GameType = 1 << 1
	GameTeamDeathmatch     GameType = 1 << 2
	GameArtefactHunt       GameType = 1 << 3
	GameCaptureTheArtefact GameType = 1 << 4
	GameDominationZone     GameType = 1 << 5
	GameTeamDominationZone GameType = 1 << 6
)

// Legacy ids written by older servers for two of the team modes.
const (
	legacyTeamDeathmatch = 6
	legacyArtefactHunt   = 7
)

var gameTypeNames = []struct {
	t           GameType
	long, short string
}{
	{GameSingle, "single", "single"},
	{GameDeathmatch, "deathmatch", "dm"},
	{GameTeamDeathmatch, "teamdeathmatch", "tdm"},
	{GameArtefactHunt, "artefacthunt", "ah"},
	{GameCaptureTheArtefact, "capturetheartefact", "cta"},
	{GameDominationZone, "dominationzone", "dz"},
	{GameTeamDominationZone, "teamdominationzone", "tdz"},
}

// Name returns the long or short name, or "---" for unknown types.
func (g GameType) Name(short bool) string {
	for _, n := range gameTypeNames {
		if n.t == g {
			if short {
				return n.short
			}
			return n.long
		}
	}
	return "---"
}

func (g GameType) String() string { return g.Name(false) }

// IsSingle reports whether the session is a single-player game.
func (g GameType) IsSingle() bool { return g == GameSingle }

// GameTypeFromID maps a raw id to a GameType, translating legacy ids.
func GameTypeFromID(id uint32) GameType {
	switch id {
	case legacyTeamDeathmatch:
		return GameTeamDeathmatch
	case legacyArtefactHunt:
		return GameArtefactHunt
	}
	return GameType(id)
}

// ParseGameType accepts long or short names, case-insensitively.
func ParseGameType(s string) (GameType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, n := range gameTypeNames {
		if s == n.long || s == n.short {
			return n.t, nil
		}
	}
	return GameNone, fmt.Errorf("unknown game type %q", s)
}
