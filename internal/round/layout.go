package round

import (
	"errors"
	"fmt"
)

// LifeCount is the number of misses a Classic round tolerates.
// Each life is drawn as a pair of icons: one while intact, one once lost.
const LifeCount = 3

// Element is a HUD widget the round logic can show, hide or label.
// The game renders elements by reading them; the round logic only writes.
type Element struct {
	name   string
	active bool
	text   string
}

// NewElement creates an inactive element.
func NewElement(name string) *Element {
	return &Element{name: name}
}

// Name returns the element's identifier.
func (e *Element) Name() string { return e.name }

// SetActive shows or hides the element.
func (e *Element) SetActive(active bool) { e.active = active }

// Active reports whether the element is shown.
func (e *Element) Active() bool { return e.active }

// SetText replaces the element's label.
func (e *Element) SetText(text string) { e.text = text }

// Text returns the element's label.
func (e *Element) Text() string { return e.text }

// Layout is the set of HUD elements the Monitor drives.
type Layout struct {
	GameOver   *Element
	LifeOK     []*Element // intact life icons, exactly LifeCount
	LifeMissed []*Element // lost life icons, exactly LifeCount
	ScoreText  [3]*Element
	HighText   [3]*Element
}

// NewLayout builds a layout with freshly named elements.
func NewLayout() Layout {
	l := Layout{
		GameOver:   NewElement("game_over"),
		LifeOK:     make([]*Element, LifeCount),
		LifeMissed: make([]*Element, LifeCount),
	}
	for i := 0; i < LifeCount; i++ {
		l.LifeOK[i] = NewElement(fmt.Sprintf("life_ok_%d", i))
		l.LifeMissed[i] = NewElement(fmt.Sprintf("life_missed_%d", i))
	}
	for _, m := range Modes {
		l.ScoreText[m] = NewElement(m.String() + "_score")
		l.HighText[m] = NewElement(m.String() + "_high")
	}
	return l
}

// Validate checks that every element is present and icon arrays hold
// exactly LifeCount entries.
func (l Layout) Validate() error {
	if l.GameOver == nil {
		return errors.New("round: layout has no game over element")
	}
	if len(l.LifeOK) != LifeCount || len(l.LifeMissed) != LifeCount {
		return fmt.Errorf("round: layout needs %d life icon pairs, got %d ok and %d missed",
			LifeCount, len(l.LifeOK), len(l.LifeMissed))
	}
	for i := 0; i < LifeCount; i++ {
		if l.LifeOK[i] == nil || l.LifeMissed[i] == nil {
			return fmt.Errorf("round: life icon pair %d is incomplete", i)
		}
	}
	for _, m := range Modes {
		if l.ScoreText[m] == nil || l.HighText[m] == nil {
			return fmt.Errorf("round: layout has no score text for %s", m)
		}
	}
	return nil
}
