package session

import (
	"fmt"
	"strings"

	"minimax_chess/internal/game"
	"minimax_chess/internal/search"
)

type Mode uint8

const (
	OnePlayer Mode = iota + 1
	TwoPlayers
)

func (m Mode) String() string {
	switch m {
	case OnePlayer:
		return "one-player"
	case TwoPlayers:
		return "two-players"
	default:
		return fmt.Sprintf("mode(%d)", m)
	}
}

func ParseMode(s string) (Mode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "one-player", "one":
		return OnePlayer, true
	case "2", "two-players", "two":
		return TwoPlayers, true
	default:
		return 0, false
	}
}

func (m Mode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Mode) UnmarshalText(text []byte) error {
	parsed, ok := ParseMode(string(text))
	if !ok {
		return fmt.Errorf("%w: unknown mode %q", ErrSettings, string(text))
	}
	*m = parsed
	return nil
}

// Settings configures a new session.
type Settings struct {
	Mode        Mode       `json:"mode"`
	Difficulty  int        `json:"difficulty"`
	HumanColor  game.Color `json:"humanColor"`
	HistorySize int        `json:"historySize"`
}

func DefaultSettings() Settings {
	return Settings{
		Mode:        OnePlayer,
		Difficulty:  search.DefaultDifficulty,
		HumanColor:  game.White,
		HistorySize: game.DefaultHistorySize,
	}
}

// Validate checks the settings. Difficulty and human color only matter in
// one-player mode but are checked in both.
func (s Settings) Validate() error {
	if s.Mode != OnePlayer && s.Mode != TwoPlayers {
		return fmt.Errorf("%w: unknown mode %d", ErrSettings, s.Mode)
	}
	if err := search.ValidDifficulty(s.Difficulty); err != nil {
		return fmt.Errorf("%w: %v", ErrSettings, err)
	}
	if s.HumanColor != game.White && s.HumanColor != game.Black {
		return fmt.Errorf("%w: unknown color %d", ErrSettings, s.HumanColor)
	}
	if s.HistorySize <= 0 {
		return fmt.Errorf("%w: history size %d", ErrSettings, s.HistorySize)
	}
	return nil
}

// HintsEnabled reports whether legal move hints may be shown.
func (s Settings) HintsEnabled() bool {
	return s.Mode == OnePlayer && s.Difficulty <= 2
}
