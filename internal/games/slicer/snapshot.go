package slicer

import "time"

// Snapshot contains the observable game state for determinism checks.
// Positions are stored in thousandths of a cell so snapshots compare exactly.
type Snapshot struct {
	Tick      int
	Mode      int
	Score     int
	HighScore int
	Misses    int
	Started   bool
	Ended     bool
	Remaining time.Duration
	Waves     int

	// Each object is 4 ints: ID, X, Y, Bomb
	FruitCount int
	FruitData  []int

	PieceCount    int
	SplatterCount int

	RNGState uint64
}

// Snapshot returns the current game state as a Snapshot.
func (g *Game) Snapshot() Snapshot {
	data := make([]int, 0, len(g.field.Fruits)*4)
	for _, fr := range g.field.Fruits {
		bomb := 0
		if fr.Kind.Bomb {
			bomb = 1
		}
		data = append(data, fr.ID, int(fr.Pos.X*1000), int(fr.Pos.Y*1000), bomb)
	}

	st := g.monitor.State()
	return Snapshot{
		Tick:      g.tick,
		Mode:      int(g.mode),
		Score:     st.Score(g.mode),
		HighScore: st.HighScore(g.mode),
		Misses:    st.Misses,
		Started:   g.monitor.Started(),
		Ended:     g.monitor.Ended(),
		Remaining: g.timer.Remaining(),
		Waves:     g.launcher.Waves(),

		FruitCount: len(g.field.Fruits),
		FruitData:  data,

		PieceCount:    len(g.field.Pieces),
		SplatterCount: g.splatters.Len(),

		RNGState: g.rng.state,
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)                //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Mode)          //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Score)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.HighScore)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Misses)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Remaining)     //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Waves)         //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.FruitCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.PieceCount)    //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.SplatterCount) //#nosec G115 -- hash computation
	if snap.Started {
		h = h*31 + 1
	}
	if snap.Ended {
		h = h*31 + 2
	}

	for _, v := range snap.FruitData {
		h = h*31 + uint64(v) //#nosec G115 -- hash computation
	}

	h = h*31 + snap.RNGState

	return h
}
