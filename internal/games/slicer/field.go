package slicer

import (
	"github.com/vovakirdan/tui-slicer/internal/core"
)

// Kind describes something the launcher can throw.
type Kind struct {
	Name   string
	Glyph  rune
	Color  core.Color
	Points int // multiplier applied to the configured cut points
	Bomb   bool
}

var fruitKinds = []Kind{
	{Name: "apple", Glyph: '●', Color: core.ColorRed, Points: 1},
	{Name: "lime", Glyph: '●', Color: core.ColorGreen, Points: 1},
	{Name: "lemon", Glyph: '●', Color: core.ColorYellow, Points: 1},
	{Name: "orange", Glyph: '●', Color: core.ColorOrange, Points: 1},
	{Name: "plum", Glyph: '●', Color: core.ColorMagenta, Points: 1},
	{Name: "melon", Glyph: '◉', Color: core.ColorBrightGreen, Points: 2},
}

var bombKind = Kind{Name: "bomb", Glyph: '◍', Color: core.ColorGray, Bomb: true}

// Hit box half sizes in cells. Terminal cells are about twice as tall as
// they are wide, so the box is wider than it is tall.
const (
	hitHalfW = 1.5
	hitHalfH = 0.75
)

// Fruit is a thrown object in flight.
type Fruit struct {
	ID   int
	Kind Kind
	Pos  core.Vec
	Vel  core.Vec
}

// Piece is one half of a sliced fruit, falling away for show.
type Piece struct {
	Pos   core.Vec
	Vel   core.Vec
	Glyph rune
	Color core.Color
}

// Field holds everything in flight and moves it under gravity.
type Field struct {
	W, H    int
	Gravity float64 // cells per second squared

	Fruits []*Fruit
	Pieces []*Piece
	nextID int
}

// NewField creates an empty field of the given size.
func NewField(w, h int, gravity float64) *Field {
	return &Field{W: w, H: h, Gravity: gravity}
}

// Launch puts a new object into the field.
func (f *Field) Launch(k Kind, pos, vel core.Vec) *Fruit {
	f.nextID++
	fr := &Fruit{ID: f.nextID, Kind: k, Pos: pos, Vel: vel}
	f.Fruits = append(f.Fruits, fr)
	return fr
}

// Update advances the field by dt seconds. Objects that fell past the bottom
// edge or drifted off the sides are removed; the fruit among them are
// returned so the caller can count misses.
func (f *Field) Update(dt float64) (lost []*Fruit) {
	live := f.Fruits[:0]
	for _, fr := range f.Fruits {
		f.move(&fr.Pos, &fr.Vel, dt)
		if f.outside(fr.Pos, fr.Vel) {
			if !fr.Kind.Bomb {
				lost = append(lost, fr)
			}
			continue
		}
		live = append(live, fr)
	}
	clear(f.Fruits[len(live):])
	f.Fruits = live

	pieces := f.Pieces[:0]
	for _, p := range f.Pieces {
		f.move(&p.Pos, &p.Vel, dt)
		if !f.outside(p.Pos, p.Vel) {
			pieces = append(pieces, p)
		}
	}
	clear(f.Pieces[len(pieces):])
	f.Pieces = pieces
	return lost
}

func (f *Field) move(pos, vel *core.Vec, dt float64) {
	vel.Y += f.Gravity * dt
	*pos = pos.Add(vel.Scale(dt))
}

// outside reports whether an object has left the field for good: below the
// bottom edge while falling, or past either side.
func (f *Field) outside(pos, vel core.Vec) bool {
	if pos.Y > float64(f.H)+1 && vel.Y > 0 {
		return true
	}
	return pos.X < -2 || pos.X > float64(f.W)+2
}

// Hit returns the objects whose hit box contains p.
func (f *Field) Hit(p core.Vec) []*Fruit {
	var hits []*Fruit
	for _, fr := range f.Fruits {
		dx, dy := fr.Pos.X-p.X, fr.Pos.Y-p.Y
		if dx >= -hitHalfW && dx <= hitHalfW && dy >= -hitHalfH && dy <= hitHalfH {
			hits = append(hits, fr)
		}
	}
	return hits
}

// Slice removes fr from flight and, for fruit, leaves two halves behind.
// Slicing an object that is no longer in flight does nothing and returns false.
func (f *Field) Slice(fr *Fruit) bool {
	idx := -1
	for i, other := range f.Fruits {
		if other == fr {
			idx = i
			break
		}
	}
	if idx < 0 {
		return false
	}
	f.Fruits = append(f.Fruits[:idx], f.Fruits[idx+1:]...)
	if fr.Kind.Bomb {
		return true
	}

	spread := core.Vec{X: 4, Y: 0}
	f.Pieces = append(f.Pieces,
		&Piece{Pos: fr.Pos, Vel: fr.Vel.Add(spread.Scale(-1)), Glyph: '◖', Color: fr.Kind.Color},
		&Piece{Pos: fr.Pos, Vel: fr.Vel.Add(spread), Glyph: '◗', Color: fr.Kind.Color},
	)
	return true
}

// Render draws pieces and then objects in flight.
func (f *Field) Render(dst *core.Screen) {
	for _, p := range f.Pieces {
		x, y := p.Pos.Cell()
		dst.SetColored(x, y, p.Glyph, p.Color)
	}
	for _, fr := range f.Fruits {
		x, y := fr.Pos.Cell()
		dst.SetColored(x, y, fr.Kind.Glyph, fr.Kind.Color)
	}
}
