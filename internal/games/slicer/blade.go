package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
)

// swipeHalfWidth is how far a keyboard swipe reaches either side of the cursor.
const swipeHalfWidth = 3.0

// TrailPoint is one sample of the blade's recent path.
type TrailPoint struct {
	Pos core.Vec
	Age float64 // seconds since the point was cut
}

// Blade is the player's slicing cursor. Arrow keys move it and cut along the
// way, space swipes across it, and a mouse drag cuts along the pointer path.
// Disabling the blade is how the round locks input once it ends.
type Blade struct {
	cfg     config.BladeConfig
	w, h    int
	cursor  core.Vec
	enabled bool

	trail    []TrailPoint
	fresh    []core.Vec // points cut during the current tick
	dragging bool
	last     core.Vec
}

// NewBlade creates an enabled blade centered on a w x h field.
func NewBlade(cfg config.BladeConfig, w, h int) *Blade {
	return &Blade{
		cfg:     cfg,
		w:       w,
		h:       h,
		cursor:  core.Vec{X: float64(w) / 2, Y: float64(h) / 2},
		enabled: true,
	}
}

// Disable stops the blade from cutting and drops its trail.
func (b *Blade) Disable() {
	b.enabled = false
	b.trail = nil
	b.fresh = nil
	b.dragging = false
}

// Enabled reports whether the blade still cuts.
func (b *Blade) Enabled() bool { return b.enabled }

// Cursor returns the blade position.
func (b *Blade) Cursor() core.Vec { return b.cursor }

// Trail returns the live trail, oldest first.
func (b *Blade) Trail() []TrailPoint { return b.trail }

// Fresh returns the points cut during the last Update.
func (b *Blade) Fresh() []core.Vec { return b.fresh }

// Update ages the trail by dt seconds and applies this tick's input.
func (b *Blade) Update(in core.InputFrame, dt float64) {
	b.fresh = b.fresh[:0]

	live := b.trail[:0]
	for _, p := range b.trail {
		p.Age += dt
		if p.Age < b.cfg.TrailLife {
			live = append(live, p)
		}
	}
	b.trail = live

	if !b.enabled {
		return
	}

	// Cells are about twice as tall as wide, so horizontal steps are doubled.
	step := float64(b.cfg.Step)
	var move core.Vec
	if in.Has(core.ActionLeft) {
		move.X -= 2 * step
	}
	if in.Has(core.ActionRight) {
		move.X += 2 * step
	}
	if in.Has(core.ActionUp) {
		move.Y -= step
	}
	if in.Has(core.ActionDown) {
		move.Y += step
	}
	if move != (core.Vec{}) {
		to := b.clamp(b.cursor.Add(move))
		b.cut(b.cursor, to)
		b.cursor = to
	}

	if in.Has(core.ActionSlice) {
		b.cut(
			b.clamp(b.cursor.Add(core.Vec{X: -swipeHalfWidth})),
			b.clamp(b.cursor.Add(core.Vec{X: swipeHalfWidth})),
		)
	}

	for _, p := range in.Pointers {
		pos := b.clamp(core.Vec{X: float64(p.X) + 0.5, Y: float64(p.Y) + 0.5})
		if p.Pressed {
			from := pos
			if b.dragging {
				from = b.last
			}
			b.cut(from, pos)
		}
		b.dragging = p.Pressed
		b.last = pos
		b.cursor = pos
	}
}

// cut records a straight stroke from a to b in half-cell steps.
func (b *Blade) cut(from, to core.Vec) {
	dist := math.Max(math.Abs(to.X-from.X), math.Abs(to.Y-from.Y))
	steps := max(int(math.Ceil(dist*2)), 1)
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		p := core.Vec{X: core.Lerp(from.X, to.X, t), Y: core.Lerp(from.Y, to.Y, t)}
		b.fresh = append(b.fresh, p)
		b.trail = append(b.trail, TrailPoint{Pos: p})
	}
}

func (b *Blade) clamp(v core.Vec) core.Vec {
	return core.Vec{
		X: core.ClampF(v.X, 0, math.Max(float64(b.w)-0.5, 0)),
		Y: core.ClampF(v.Y, 0, math.Max(float64(b.h)-0.5, 0)),
	}
}

// Render draws the trail, fading with age, and the cursor.
func (b *Blade) Render(dst *core.Screen) {
	for _, p := range b.trail {
		x, y := p.Pos.Cell()
		glyph, color := '·', core.ColorGray
		if p.Age < b.cfg.TrailLife/2 {
			glyph, color = '•', core.ColorBrightWhite
		}
		dst.SetColored(x, y, glyph, color)
	}
	if b.enabled {
		x, y := b.cursor.Cell()
		dst.SetColored(x, y, '+', core.ColorBrightCyan)
	}
}
