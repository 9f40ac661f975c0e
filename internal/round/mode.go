// Package round drives a single fruit-slicing round from start to end.
//
// The Monitor owns the per-round State, watches the miss count and the round
// clock once per tick, flips the life icons and performs end-of-round
// bookkeeping exactly once. Everything it talks to (clock, launcher, menu,
// input, persistent prefs) is injected, so the package has no rendering or
// storage dependencies of its own.
package round

import (
	"fmt"
	"strings"
)

// Mode is the game mode of a round. It is fixed when the round starts.
type Mode int

const (
	ModeClassic Mode = iota // life based, three misses end the round
	ModeArcade              // 60 second countdown
	ModeRelax               // 90 second countdown
)

// Modes lists every mode in display order.
var Modes = []Mode{ModeClassic, ModeArcade, ModeRelax}

// String returns the lower-case name used in flags, config and storage.
func (m Mode) String() string {
	switch m {
	case ModeClassic:
		return "classic"
	case ModeArcade:
		return "arcade"
	case ModeRelax:
		return "relax"
	default:
		return "unknown"
	}
}

// Title returns the display name of the mode.
func (m Mode) Title() string {
	switch m {
	case ModeClassic:
		return "Classic"
	case ModeArcade:
		return "Arcade"
	case ModeRelax:
		return "Relax"
	default:
		return "Unknown"
	}
}

// Valid reports whether m is one of the known modes.
func (m Mode) Valid() bool {
	return m >= ModeClassic && m <= ModeRelax
}

// Timed reports whether the round is bounded by the clock rather than lives.
func (m Mode) Timed() bool {
	return m == ModeArcade || m == ModeRelax
}

// ParseMode converts a mode name to a Mode. Matching is case-insensitive.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "classic", "":
		return ModeClassic, nil
	case "arcade":
		return ModeArcade, nil
	case "relax":
		return ModeRelax, nil
	}
	return ModeClassic, fmt.Errorf("round: unknown mode %q", s)
}
