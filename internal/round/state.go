package round

// Splatter depth bounds. New splatters are placed slightly closer to the
// viewer than the previous one so they always stack on top.
const (
	SplatterDepthStart = 55.0
	SplatterDepthFloor = 45.0
	SplatterDepthStep  = 0.01
)

// State is the score bookkeeping of one player session.
// Current scores and misses are reset at the start of every round, high
// scores and experience persist across rounds.
type State struct {
	Scores        [3]int  // current score per mode
	HighScores    [3]int  // best score per mode
	Experience    int     // cumulative score over all finished rounds
	Misses        int     // fruit missed this round
	SplatterDepth float64 // depth of the next splatter
}

// NewState returns a zeroed state with the splatter depth at its start value.
func NewState() *State {
	s := &State{}
	s.ResetRound()
	return s
}

// ResetRound clears the per-round counters. High scores and experience are kept.
func (s *State) ResetRound() {
	s.Scores = [3]int{}
	s.Misses = 0
	s.SplatterDepth = SplatterDepthStart
}

// Score returns the current score of mode m.
func (s *State) Score(m Mode) int {
	if !m.Valid() {
		return 0
	}
	return s.Scores[m]
}

// HighScore returns the stored best score of mode m.
func (s *State) HighScore(m Mode) int {
	if !m.Valid() {
		return 0
	}
	return s.HighScores[m]
}

// NextSplatterDepth returns the depth for a new splatter and moves the
// offset one step toward the viewer, stopping at the floor.
func (s *State) NextSplatterDepth() float64 {
	d := s.SplatterDepth
	if s.SplatterDepth-SplatterDepthStep >= SplatterDepthFloor {
		s.SplatterDepth -= SplatterDepthStep
	}
	return d
}
