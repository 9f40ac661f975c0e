package slicer

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/countdown"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

// HUD owns the on-screen elements the round logic drives and draws them.
// It also serves as the end-of-round menu.
type HUD struct {
	layout   round.Layout
	selector *round.DisplaySelector
	clock    *countdown.Timer
	menuOpen bool
}

// NewHUD builds the layout and one score group per mode.
func NewHUD(clock *countdown.Timer) *HUD {
	l := round.NewLayout()
	group := func(m round.Mode) []*round.Element {
		l.ScoreText[m].SetText("0")
		l.HighText[m].SetText("0")
		return []*round.Element{l.ScoreText[m], l.HighText[m]}
	}
	return &HUD{
		layout: l,
		selector: round.NewDisplaySelector(
			group(round.ModeClassic),
			group(round.ModeArcade),
			group(round.ModeRelax),
		),
		clock: clock,
	}
}

// Layout returns the elements the monitor toggles.
func (h *HUD) Layout() round.Layout { return h.layout }

// Selector returns the per-mode score group selector.
func (h *HUD) Selector() *round.DisplaySelector { return h.selector }

// ShowMenuOnly opens the end-of-round menu.
func (h *HUD) ShowMenuOnly() { h.menuOpen = true }

// MenuOpen reports whether the end-of-round menu is showing.
func (h *HUD) MenuOpen() bool { return h.menuOpen }

// hudView is what Render needs from the game beyond the elements.
type hudView struct {
	mode      round.Mode
	started   bool
	introLeft time.Duration
	score     int
	paused    bool
}

// Render draws scores, lives, clock and overlays.
func (h *HUD) Render(dst *core.Screen, v hudView) {
	w, ht := dst.Width(), dst.Height()

	for _, m := range round.Modes {
		if h.layout.ScoreText[m].Active() {
			dst.DrawTextColored(1, 0, "Score "+h.layout.ScoreText[m].Text(), core.ColorBrightWhite)
		}
		if h.layout.HighText[m].Active() {
			dst.DrawTextColored(14, 0, "Best "+h.layout.HighText[m].Text(), core.ColorYellow)
		}
	}

	for i := range h.layout.LifeOK {
		x := w - 2*(round.LifeCount-i) - 1
		switch {
		case h.layout.LifeOK[i].Active():
			dst.SetColored(x, 0, '♥', core.ColorBrightRed)
		case h.layout.LifeMissed[i].Active():
			dst.SetColored(x, 0, '✗', core.ColorGray)
		}
	}

	if v.mode.Timed() && h.clock.Visible() {
		text := h.clock.Format()
		color := core.ColorBrightCyan
		if h.clock.Remaining() <= 10*time.Second && v.started {
			color = core.ColorBrightRed
		}
		dst.DrawTextColored((w-len(text))/2, 0, text, color)
	}

	if v.mode.Timed() && !v.started && !h.layout.GameOver.Active() {
		secs := int(math.Ceil(v.introLeft.Seconds()))
		h.centered(dst, ht/2, fmt.Sprintf("%s round starts in %d", v.mode.Title(), max(secs, 1)), core.ColorBrightYellow)
	}

	if v.paused {
		h.centered(dst, ht/2, "PAUSED - P to resume", core.ColorBrightYellow)
	}

	if h.layout.GameOver.Active() {
		title := "GAME OVER"
		if v.mode.Timed() {
			title = "TIME UP"
		}
		h.centered(dst, ht/2-2, title, core.ColorBrightRed)
		h.centered(dst, ht/2-1, fmt.Sprintf("Score %d", v.score), core.ColorBrightWhite)
	}

	if h.menuOpen {
		box := core.NewRect(w/2-12, ht/2, 24, 5)
		dst.DrawRect(box, ' ')
		dst.DrawBox(box)
		h.centered(dst, ht/2+1, "R  play again", core.ColorBrightGreen)
		h.centered(dst, ht/2+2, "B  back to menu", core.ColorWhite)
		h.centered(dst, ht/2+3, "Q  quit", core.ColorWhite)
	}
}

func (h *HUD) centered(dst *core.Screen, y int, text string, c core.Color) {
	x := (dst.Width() - len([]rune(text))) / 2
	dst.DrawTextColored(x, y, text, c)
}
