// Package slicer implements the fruit-slicing game in its three modes.
// Fruit is thrown up from the bottom of the screen and the player cuts it
// with a keyboard or mouse blade; the round package decides when a round
// is over and keeps the score books.
package slicer

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/countdown"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

// Minimum playable screen size.
const (
	minScreenW = 30
	minScreenH = 12
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names clear it.
func SetDifficultyPreset(preset string) {
	if preset == "" {
		difficultyPreset = ""
		return
	}
	p, ok := config.ParsePreset(preset)
	if !ok {
		p = ""
	}
	difficultyPreset = p
}

func init() {
	for _, m := range round.Modes {
		m := m
		registry.Register(GameID(m), func() registry.Game { return NewMode(m) })
	}
}

// GameID returns the registry and score table ID of a mode.
func GameID(m round.Mode) string {
	if m == round.ModeClassic {
		return "slicer"
	}
	return "slicer_" + m.String()
}

// ModeFromID is the inverse of GameID.
func ModeFromID(id string) (round.Mode, bool) {
	for _, m := range round.Modes {
		if GameID(m) == id {
			return m, true
		}
	}
	return round.ModeClassic, false
}

// Game implements one slicer mode.
type Game struct {
	mode round.Mode

	// Configuration
	runtime    core.RuntimeConfig
	cfg        config.SlicerConfig
	difficulty *config.DifficultyManager
	services   registry.Services
	logger     *log.Logger

	// Round logic and its collaborators
	state    *round.State
	monitor  *round.Monitor
	timer    *countdown.Timer
	launcher *Launcher
	blade    *Blade
	hud      *HUD

	// World
	rng       *SimpleRNG
	field     *Field
	splatters *Splatters

	paused         bool
	tick           int
	screenTooSmall bool
}

// New creates a Classic game.
func New() *Game { return NewMode(round.ModeClassic) }

// NewArcade creates an Arcade game.
func NewArcade() *Game { return NewMode(round.ModeArcade) }

// NewRelax creates a Relax game.
func NewRelax() *Game { return NewMode(round.ModeRelax) }

// NewMode creates a game for mode m.
func NewMode(m round.Mode) *Game {
	return &Game{mode: m}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string { return GameID(g.mode) }

// Title returns the display name for this game.
func (g *Game) Title() string { return "Slicer: " + g.mode.Title() }

// Mode returns the game's mode.
func (g *Game) Mode() round.Mode { return g.mode }

// UseServices wires prefs, the event sink and the logger. It must be
// called before Reset to take effect for the next round.
func (g *Game) UseServices(s registry.Services) {
	g.services = s
	g.state = nil
}

// Reset starts a new round. High scores and experience carry over from
// the previous round of the same game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	if g.monitor != nil {
		g.monitor.Close()
	}
	g.runtime = runtime
	g.screenTooSmall = runtime.ScreenW < minScreenW || runtime.ScreenH < minScreenH

	g.logger = g.services.Logger
	if g.logger == nil {
		g.logger = log.New(io.Discard)
	}

	// Load game config
	cfg, err := config.LoadSlicer(configPath)
	if err != nil {
		g.logger.Warn("using default config", "error", err)
		cfg = config.DefaultSlicerConfig()
	}

	// Apply difficulty preset if set
	if difficultyPreset != "" {
		config.ApplySlicerPreset(&cfg, difficultyPreset)
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)

	if g.state == nil {
		st, err := round.LoadState(g.services.Prefs)
		if err != nil {
			g.logger.Warn("could not load prefs", "error", err)
		}
		g.state = st
	}

	dt := runtime.TickDuration()
	g.rng = NewSimpleRNG(runtime.Seed)
	g.field = NewField(runtime.ScreenW, runtime.ScreenH, cfg.Launcher.Gravity)
	g.splatters = &Splatters{}
	g.timer = countdown.New()
	g.blade = NewBlade(cfg.Blade, runtime.ScreenW, runtime.ScreenH)
	g.hud = NewHUD(g.timer)
	g.launcher = NewLauncher(cfg.Launcher, g.mode, g.difficulty, g.rng, g.field, dt.Seconds())
	g.launcher.progress = func() (int, int) { return g.state.Score(g.mode), g.tick }
	g.launcher.armed = func() bool { return g.monitor.Started() }

	monitor, err := round.NewMonitor(round.Options{
		Mode:     g.mode,
		Timings:  timings(cfg.Round),
		Layout:   g.hud.Layout(),
		State:    g.state,
		Clock:    g.timer,
		Launcher: g.launcher,
		Menu:     g.hud,
		Input:    g.blade,
		Prefs:    g.services.Prefs,
		Sink:     g.services.Sink,
		Logger:   g.logger,
	})
	if err != nil {
		// The layout and mode are built here, so this is a programming error.
		panic(fmt.Sprintf("slicer: %v", err))
	}
	g.monitor = monitor

	g.paused = false
	g.tick = 0

	g.monitor.Initialize()
	g.hud.Selector().SelectDisplayForMode(g.monitor.Mode())
	g.monitor.Begin()
}

func timings(c config.RoundConfig) round.Timings {
	return round.Timings{
		IntroDelay:      seconds(c.IntroDelay),
		ArcadeDuration:  seconds(c.ArcadeDuration),
		RelaxDuration:   seconds(c.RelaxDuration),
		MenuDelay:       seconds(c.MenuDelay),
		RefreshInterval: seconds(c.RefreshInterval),
		EndThreshold:    seconds(c.EndThreshold),
	}
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.monitor == nil || g.screenTooSmall {
		return core.StepResult{State: g.State()}
	}

	// Handle pause toggle
	if in.Has(core.ActionPause) && !g.monitor.Ended() {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	dt := g.runtime.TickDuration()
	secs := dt.Seconds()
	g.tick++

	g.timer.Advance(dt)
	g.blade.Update(in, secs)

	for range g.field.Update(secs) {
		g.monitor.RecordMiss()
	}
	g.resolveCuts()
	g.splatters.Update(secs)

	g.monitor.Update(dt)

	return core.StepResult{State: g.State()}
}

// resolveCuts slices everything the blade passed through this tick.
func (g *Game) resolveCuts() {
	for _, p := range g.blade.Fresh() {
		if !g.blade.Enabled() {
			return
		}
		for _, fr := range g.field.Hit(p) {
			if !g.field.Slice(fr) {
				continue
			}
			if fr.Kind.Bomb {
				g.detonate()
				continue
			}
			g.monitor.RecordCut(fr.Kind.Points * g.cfg.Launcher.CutPoints)
			g.splatters.Add(fr.Pos, fr.Kind.Color, g.state.NextSplatterDepth())
		}
	}
}

// detonate applies a bomb hit for the current mode.
func (g *Game) detonate() {
	g.logger.Debug("bomb cut", "mode", g.mode, "round", g.monitor.RoundID())
	switch g.mode {
	case round.ModeClassic:
		g.monitor.ForceEndRound()
	case round.ModeArcade:
		g.monitor.ZeroClockAndEndRound()
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.monitor == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.state.Score(g.mode),
		GameOver: g.monitor.Ended(),
		Paused:   g.paused,
	}
}

// RoundID returns the identifier of the current round.
func (g *Game) RoundID() string {
	if g.monitor == nil {
		return ""
	}
	return g.monitor.RoundID()
}

// Experience returns the player's cumulative score over finished rounds.
func (g *Game) Experience() int {
	if g.state == nil {
		return 0
	}
	return g.state.Experience
}

// Close cancels the round's pending timers.
func (g *Game) Close() {
	if g.monitor != nil {
		g.monitor.Close()
	}
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	if g.monitor == nil {
		return
	}
	if g.screenTooSmall {
		dst.DrawTextCentered(dst.Height()/2, fmt.Sprintf("Screen too small (need %dx%d)", minScreenW, minScreenH))
		return
	}

	g.splatters.Render(dst)
	g.field.Render(dst)
	g.blade.Render(dst)

	introLeft := g.cfgIntro() - g.monitor.Scheduler().Now()
	g.hud.Render(dst, hudView{
		mode:      g.mode,
		started:   g.monitor.Started(),
		introLeft: introLeft,
		score:     g.state.Score(g.mode),
		paused:    g.paused,
	})
}

func (g *Game) cfgIntro() time.Duration {
	return seconds(g.cfg.Round.IntroDelay)
}

var (
	_ registry.Game        = (*Game)(nil)
	_ registry.ServiceUser = (*Game)(nil)
	_ registry.Closer      = (*Game)(nil)
	_ round.Launcher       = (*Launcher)(nil)
	_ round.InputGate      = (*Blade)(nil)
	_ round.Menu           = (*HUD)(nil)
)
