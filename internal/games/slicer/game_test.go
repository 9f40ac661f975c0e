package slicer

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

type mapPrefs map[string]int

func (p mapPrefs) SetInt(key string, v int) error {
	p[key] = v
	return nil
}

func (p mapPrefs) Int(key string) (int, error) { return p[key], nil }

func testConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		Seed:     12345,
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

func newGame(t *testing.T, m round.Mode) *Game {
	t.Helper()
	g := NewMode(m)
	g.Reset(testConfig())
	t.Cleanup(g.Close)
	return g
}

func pressAt(x, y int) core.InputFrame {
	in := core.NewInputFrame()
	in.Point(core.Pointer{X: x, Y: y, Pressed: true})
	return in
}

// runUntilStarted steps an idle game until its timed round has started.
func runUntilStarted(t *testing.T, g *Game) {
	t.Helper()
	idle := core.NewInputFrame()
	for i := 0; i < 1000 && !g.monitor.Started(); i++ {
		g.Step(idle)
	}
	if !g.monitor.Started() {
		t.Fatal("round never started")
	}
}

func TestModesRegistered(t *testing.T) {
	for _, m := range round.Modes {
		id := GameID(m)
		if !registry.Exists(id) {
			t.Errorf("%s not registered", id)
		}
		back, ok := ModeFromID(id)
		if !ok || back != m {
			t.Errorf("ModeFromID(%q) = %v, %v", id, back, ok)
		}
	}
	if GameID(round.ModeClassic) != "slicer" {
		t.Errorf("classic ID = %q", GameID(round.ModeClassic))
	}
	if _, ok := ModeFromID("pong"); ok {
		t.Error("ModeFromID(pong) should fail")
	}
}

func TestDeterminism(t *testing.T) {
	for _, m := range round.Modes {
		t.Run(m.String(), func(t *testing.T) {
			g1 := newGame(t, m)
			g2 := newGame(t, m)

			for i := 0; i < 900; i++ {
				in := core.NewInputFrame()
				switch {
				case i%40 == 0:
					in.Set(core.ActionSlice)
				case i%7 == 0:
					in.Set(core.ActionLeft)
				case i%11 == 0:
					in.Set(core.ActionRight)
				}
				g1.Step(in)
				g2.Step(in)
			}

			s1, s2 := g1.Snapshot(), g2.Snapshot()
			if s1.Hash() != s2.Hash() {
				t.Errorf("snapshots diverged:\n%+v\n%+v", s1, s2)
			}
			if s1.Waves == 0 {
				t.Error("no waves thrown in 15 seconds")
			}
		})
	}
}

func TestCutScoresAndSplatters(t *testing.T) {
	g := newGame(t, round.ModeClassic)
	g.field.Fruits = nil
	g.field.Launch(fruitKinds[0], core.Vec{X: 20, Y: 10}, core.Vec{})

	g.Step(pressAt(20, 10))

	if got := g.State().Score; got != 1 {
		t.Fatalf("score = %d, want 1", got)
	}
	if g.splatters.Len() != 1 {
		t.Errorf("splatters = %d, want 1", g.splatters.Len())
	}
	if len(g.field.Pieces) != 2 {
		t.Errorf("pieces = %d, want 2", len(g.field.Pieces))
	}
	if items := g.splatters.Items(); items[0].Depth != round.SplatterDepthStart {
		t.Errorf("first splatter depth = %v, want %v", items[0].Depth, round.SplatterDepthStart)
	}
}

func TestBombEndsClassicRound(t *testing.T) {
	g := newGame(t, round.ModeClassic)
	g.field.Fruits = nil
	g.field.Launch(bombKind, core.Vec{X: 40, Y: 12}, core.Vec{})

	res := g.Step(pressAt(40, 12))

	if !res.State.GameOver {
		t.Fatal("cutting a bomb should end a classic round")
	}
	if g.blade.Enabled() {
		t.Error("blade should be disabled")
	}
	if g.monitor.State().Misses != round.MissSentinel {
		t.Errorf("misses = %d, want %d", g.monitor.State().Misses, round.MissSentinel)
	}

	idle := core.NewInputFrame()
	for i := 0; i < 40; i++ {
		g.Step(idle)
	}
	if !g.hud.MenuOpen() {
		t.Error("menu should pop up after the delay")
	}
}

func TestBombZeroesArcadeClock(t *testing.T) {
	g := newGame(t, round.ModeArcade)
	runUntilStarted(t, g)

	g.field.Fruits = nil
	g.field.Launch(bombKind, core.Vec{X: 40, Y: 12}, core.Vec{})
	res := g.Step(pressAt(40, 12))

	if !res.State.GameOver {
		t.Fatal("cutting a bomb should end an arcade round")
	}
	if g.timer.Remaining() != 0 {
		t.Errorf("clock = %v, want 0", g.timer.Remaining())
	}
}

func TestArcadeIntroHasNoBombs(t *testing.T) {
	g := newGame(t, round.ModeArcade)
	idle := core.NewInputFrame()
	for !g.monitor.Started() {
		g.Step(idle)
		for _, fr := range g.field.Fruits {
			if fr.Kind.Bomb {
				t.Fatal("bomb thrown before the round started")
			}
		}
	}
}

func TestRelaxNeverThrowsBombs(t *testing.T) {
	g := newGame(t, round.ModeRelax)
	idle := core.NewInputFrame()
	for i := 0; i < 3000; i++ {
		g.Step(idle)
		for _, fr := range g.field.Fruits {
			if fr.Kind.Bomb {
				t.Fatalf("bomb thrown in relax at tick %d", i)
			}
		}
	}
}

func TestMissedFruitCountsInClassic(t *testing.T) {
	g := newGame(t, round.ModeClassic)
	g.field.Fruits = nil
	g.field.Launch(fruitKinds[1], core.Vec{X: 40, Y: 24.5}, core.Vec{Y: 5})

	idle := core.NewInputFrame()
	for i := 0; i < 30; i++ {
		g.Step(idle)
	}

	if got := g.monitor.State().Misses; got != 1 {
		t.Fatalf("misses = %d, want 1", got)
	}
	if !g.hud.Layout().LifeMissed[0].Active() {
		t.Error("first life should show as lost")
	}
	if g.State().GameOver {
		t.Error("one miss should not end the round")
	}
}

func TestHighScorePersistedThroughServices(t *testing.T) {
	prefs := mapPrefs{round.KeyExperience: 10}
	var events []round.Event

	g := NewMode(round.ModeClassic)
	g.UseServices(registry.Services{
		Prefs: prefs,
		Sink:  round.SinkFunc(func(ev round.Event) { events = append(events, ev) }),
	})
	g.Reset(testConfig())
	defer g.Close()

	g.field.Fruits = nil
	g.field.Launch(fruitKinds[5], core.Vec{X: 20, Y: 10}, core.Vec{})
	g.Step(pressAt(20, 10))

	g.field.Launch(bombKind, core.Vec{X: 60, Y: 10}, core.Vec{})
	g.Step(pressAt(60, 10))

	if !g.State().GameOver {
		t.Fatal("round should be over")
	}
	if prefs[round.KeyHighestClassic] != 2 {
		t.Errorf("stored high score = %d, want 2", prefs[round.KeyHighestClassic])
	}
	if prefs[round.KeyExperience] != 12 {
		t.Errorf("stored experience = %d, want 12", prefs[round.KeyExperience])
	}
	if g.Experience() != 12 {
		t.Errorf("Experience() = %d, want 12", g.Experience())
	}
	if len(events) == 0 || events[len(events)-1].Type != round.EventRoundEnded {
		t.Errorf("last event should be round_ended, got %v", events)
	}
}

func TestHighScoreCarriesAcrossRestart(t *testing.T) {
	g := newGame(t, round.ModeClassic)
	g.field.Fruits = nil
	g.field.Launch(fruitKinds[0], core.Vec{X: 20, Y: 10}, core.Vec{})
	g.Step(pressAt(20, 10))
	g.monitor.ForceEndRound()
	g.Step(core.NewInputFrame())

	first := g.RoundID()
	g.Reset(testConfig())

	if g.monitor.State().HighScore(round.ModeClassic) != 1 {
		t.Errorf("high score lost on restart")
	}
	if g.State().Score != 0 || g.State().GameOver {
		t.Errorf("restart should clear the round: %+v", g.State())
	}
	if g.RoundID() == first {
		t.Error("restart should assign a new round ID")
	}
}

func TestPauseFreezesRound(t *testing.T) {
	g := newGame(t, round.ModeArcade)
	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)

	g.Step(pause)
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}
	before := g.Snapshot()
	for i := 0; i < 100; i++ {
		g.Step(core.NewInputFrame())
	}
	after := g.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("paused game changed")
	}

	g.Step(pause)
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestRenderShowsHUD(t *testing.T) {
	g := newGame(t, round.ModeClassic)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	top := screen.Row(0)
	if !strings.Contains(top, "Score 0") || !strings.Contains(top, "Best 0") {
		t.Errorf("HUD row = %q", top)
	}
	if !strings.Contains(top, "♥") {
		t.Errorf("classic HUD should show lives: %q", top)
	}
}

func TestRenderArcadeIntro(t *testing.T) {
	g := newGame(t, round.ModeArcade)
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Arcade round starts in 4") {
		t.Errorf("intro text missing:\n%s", screen.String())
	}
	if strings.Contains(screen.Row(0), "♥") {
		t.Error("arcade HUD should not show lives")
	}
}

func TestScreenTooSmall(t *testing.T) {
	g := NewMode(round.ModeClassic)
	cfg := testConfig()
	cfg.ScreenW, cfg.ScreenH = 20, 8
	g.Reset(cfg)
	defer g.Close()

	before := g.Snapshot()
	g.Step(core.NewInputFrame())
	if after := g.Snapshot(); after.Tick != before.Tick {
		t.Error("game should not advance on a tiny screen")
	}
}
