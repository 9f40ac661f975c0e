package round

import (
	"errors"
	"testing"
	"time"
)

type fakeClock struct {
	remaining time.Duration
	started   []time.Duration
	stopped   int
	zeroed    int
	hidden    bool
}

func (c *fakeClock) Remaining() time.Duration { return c.remaining }
func (c *fakeClock) Stop() { c.stopped++ }
func (c *fakeClock) HideDisplay() { c.hidden = true }

func (c *fakeClock) Start(d time.Duration) {
	c.remaining = d
	c.started = append(c.started, d)
}

func (c *fakeClock) Zero() {
	c.remaining = 0
	c.zeroed++
}

type fakeLauncher struct{ calls int }

func (l *fakeLauncher) ReduceIntervalAndSpawn() { l.calls++ }

type fakeMenu struct{ shown int }

func (m *fakeMenu) ShowMenuOnly() { m.shown++ }

type fakeInput struct{ disabled int }

func (i *fakeInput) Disable() { i.disabled++ }

type fakePrefs struct {
	values map[string]int
	writes map[string]int
	fail   bool
}

func newFakePrefs() *fakePrefs {
	return &fakePrefs{values: map[string]int{}, writes: map[string]int{}}
}

func (p *fakePrefs) SetInt(key string, v int) error {
	if p.fail {
		return errors.New("disk full")
	}
	p.values[key] = v
	p.writes[key]++
	return nil
}

func (p *fakePrefs) Int(key string) (int, error) {
	if p.fail {
		return 0, errors.New("disk full")
	}
	return p.values[key], nil
}

type recordingSink struct{ events []Event }

func (s *recordingSink) Publish(ev Event) { s.events = append(s.events, ev) }

func (s *recordingSink) count(t EventType) int {
	n := 0
	for _, ev := range s.events {
		if ev.Type == t {
			n++
		}
	}
	return n
}

type harness struct {
	m        *Monitor
	clock    *fakeClock
	launcher *fakeLauncher
	menu     *fakeMenu
	input    *fakeInput
	prefs    *fakePrefs
	sink     *recordingSink
}

func newHarness(t *testing.T, mode Mode, state *State) *harness {
	t.Helper()
	h := &harness{
		clock:    &fakeClock{},
		launcher: &fakeLauncher{},
		menu:     &fakeMenu{},
		input:    &fakeInput{},
		prefs:    newFakePrefs(),
		sink:     &recordingSink{},
	}
	m, err := NewMonitor(Options{
		Mode:     mode,
		Layout:   NewLayout(),
		State:    state,
		Clock:    h.clock,
		Launcher: h.launcher,
		Menu:     h.menu,
		Input:    h.input,
		Prefs:    h.prefs,
		Sink:     h.sink,
	})
	if err != nil {
		t.Fatalf("NewMonitor() failed: %v", err)
	}
	h.m = m
	return h
}
