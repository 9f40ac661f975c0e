package round

// DisplaySelector picks which of the three per-mode HUD text groups is
// visible. It runs once when the round starts and does not follow later
// mode changes.
type DisplaySelector struct {
	groups [3][]*Element
}

// NewDisplaySelector creates a selector over one text group per mode.
func NewDisplaySelector(classic, arcade, relax []*Element) *DisplaySelector {
	return &DisplaySelector{
		groups: [3][]*Element{
			ModeClassic: classic,
			ModeArcade:  arcade,
			ModeRelax:   relax,
		},
	}
}

// SelectDisplayForMode hides every element of every group, then shows the
// group belonging to mode. An unknown mode leaves everything hidden.
func (d *DisplaySelector) SelectDisplayForMode(mode Mode) {
	for _, group := range d.groups {
		for _, e := range group {
			e.SetActive(false)
		}
	}
	if !mode.Valid() {
		return
	}
	for _, e := range d.groups[mode] {
		e.SetActive(true)
	}
}

// Group returns the text elements of mode.
func (d *DisplaySelector) Group(mode Mode) []*Element {
	if !mode.Valid() {
		return nil
	}
	return d.groups[mode]
}
