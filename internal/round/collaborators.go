package round

import "time"

// Persistent pref keys.
const (
	KeyHighestClassic = "highest_classic_score"
	KeyHighestArcade  = "highest_arcade_score"
	KeyHighestRelax   = "highest_relax_score"
	KeyExperience     = "experience"
)

// HighScoreKey returns the pref key holding the best score of mode m.
func HighScoreKey(m Mode) string {
	switch m {
	case ModeClassic:
		return KeyHighestClassic
	case ModeArcade:
		return KeyHighestArcade
	case ModeRelax:
		return KeyHighestRelax
	default:
		return ""
	}
}

// Clock is the round countdown.
type Clock interface {
	Remaining() time.Duration
	Start(d time.Duration)
	Stop()
	Zero()
	HideDisplay()
}

// Launcher throws fruit. ReduceIntervalAndSpawn is called once per eligible
// tick; cadence and spawning rules belong to the launcher.
type Launcher interface {
	ReduceIntervalAndSpawn()
}

// Menu pops up the end-of-round menu.
type Menu interface {
	ShowMenuOnly()
}

// InputGate is the slicing input surface.
type InputGate interface {
	Disable()
}

// Prefs is persistent integer key/value storage.
type Prefs interface {
	SetInt(key string, value int) error
	Int(key string) (int, error)
}

// LoadState reads high scores and experience from prefs into a new State.
// A nil prefs yields a zeroed state.
func LoadState(p Prefs) (*State, error) {
	s := NewState()
	if p == nil {
		return s, nil
	}
	for _, m := range Modes {
		v, err := p.Int(HighScoreKey(m))
		if err != nil {
			return s, err
		}
		s.HighScores[m] = v
	}
	exp, err := p.Int(KeyExperience)
	if err != nil {
		return s, err
	}
	s.Experience = exp
	return s, nil
}
