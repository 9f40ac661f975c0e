package slicer

import (
	"sort"

	"github.com/vovakirdan/tui-slicer/internal/core"
)

// splatterLife is how long juice stays on the background, in seconds.
const splatterLife = 3.0

// Splatter is a juice stain left where a fruit was cut. Depth orders stains:
// lower depth is closer to the viewer and drawn on top.
type Splatter struct {
	Pos   core.Vec
	Color core.Color
	Depth float64
	Age   float64
}

// Splatters is the set of live stains.
type Splatters struct {
	items []Splatter
}

// Add places a new stain.
func (s *Splatters) Add(pos core.Vec, color core.Color, depth float64) {
	s.items = append(s.items, Splatter{Pos: pos, Color: color, Depth: depth})
}

// Update ages every stain by dt seconds and drops dried ones.
func (s *Splatters) Update(dt float64) {
	live := s.items[:0]
	for _, sp := range s.items {
		sp.Age += dt
		if sp.Age < splatterLife {
			live = append(live, sp)
		}
	}
	s.items = live
}

// Len returns the number of live stains.
func (s *Splatters) Len() int { return len(s.items) }

// Items returns the stains farthest first.
func (s *Splatters) Items() []Splatter {
	out := append([]Splatter(nil), s.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Depth > out[j].Depth })
	return out
}

// Render draws stains back to front. Fresh stains are wide, drying ones shrink.
func (s *Splatters) Render(dst *core.Screen) {
	for _, sp := range s.Items() {
		x, y := sp.Pos.Cell()
		if sp.Age < splatterLife/2 {
			for _, dx := range []int{-2, -1, 1, 2} {
				dst.SetColored(x+dx, y, '░', sp.Color)
			}
			dst.SetColored(x, y-1, '░', sp.Color)
			dst.SetColored(x, y+1, '░', sp.Color)
			dst.SetColored(x, y, '▒', sp.Color)
			continue
		}
		dst.SetColored(x, y, '░', sp.Color)
	}
}
