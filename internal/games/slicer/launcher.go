package slicer

import (
	"math"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

// referenceHeight is the screen height the launch speeds in the config are
// tuned for. Taller screens throw proportionally higher.
const referenceHeight = 24.0

// Launcher throws waves of fruit into the field. The round monitor calls
// ReduceIntervalAndSpawn once per eligible tick; each call burns one tick
// off the wave timer and throws a wave when it runs out.
type Launcher struct {
	cfg        config.LauncherConfig
	mode       round.Mode
	difficulty *config.DifficultyManager
	rng        *SimpleRNG
	field      *Field
	dt         float64 // seconds per tick

	// progress reports score and elapsed ticks for difficulty scaling.
	progress func() (score, ticks int)
	// armed reports whether bombs may be thrown yet.
	armed func() bool

	interval  float64 // current base interval between waves
	remaining float64 // time until the next wave
	waves     int
}

// NewLauncher creates a launcher with its first wave one interval away,
// capped at one second so a round never opens on an empty screen for long.
func NewLauncher(cfg config.LauncherConfig, mode round.Mode, difficulty *config.DifficultyManager,
	rng *SimpleRNG, field *Field, dt float64) *Launcher {
	return &Launcher{
		cfg:        cfg,
		mode:       mode,
		difficulty: difficulty,
		rng:        rng,
		field:      field,
		dt:         dt,
		progress:   func() (int, int) { return 0, 0 },
		armed:      func() bool { return true },
		interval:   cfg.InitialInterval,
		remaining:  math.Min(cfg.InitialInterval, 1.0),
	}
}

// ReduceIntervalAndSpawn advances the wave timer by one tick.
func (l *Launcher) ReduceIntervalAndSpawn() {
	l.remaining -= l.dt
	if l.remaining > 0 {
		return
	}

	l.spawnWave()
	l.waves++
	l.interval = math.Max(l.cfg.MinInterval, l.interval-l.cfg.IntervalStep)

	score, ticks := l.progress()
	l.remaining = l.difficulty.Interval(l.interval, l.cfg.MinInterval, score, ticks)
}

// Waves returns how many waves have been thrown.
func (l *Launcher) Waves() int { return l.waves }

// Interval returns the current base interval between waves in seconds.
func (l *Launcher) Interval() float64 { return l.interval }

func (l *Launcher) spawnWave() {
	score, ticks := l.progress()
	n := l.difficulty.WaveSize(l.rng.IntRange(l.cfg.MinWave, l.cfg.MaxWave), score, ticks)

	w, h := float64(l.field.W), float64(l.field.H)
	scale := math.Sqrt(math.Max(h, 1) / referenceHeight)
	// Never throw higher than the top row.
	ceiling := math.Sqrt(2 * l.cfg.Gravity * math.Max(h-2, 1))

	for i := 0; i < n; i++ {
		kind := fruitKinds[l.rng.Intn(len(fruitKinds))]
		if l.rng.Float64() < l.bombChance() {
			kind = bombKind
		}

		x := w*0.15 + l.rng.Float64()*w*0.7
		speed := l.difficulty.Speed(l.rng.Range(l.cfg.MinSpeed, l.cfg.MaxSpeed), score, ticks) * scale
		speed = math.Min(speed, ceiling)

		// Drift toward the middle so throws stay on screen.
		drift := l.rng.Range(0, l.cfg.MaxDrift)
		if x > w/2 {
			drift = -drift
		}

		l.field.Launch(kind, core.Vec{X: x, Y: h}, core.Vec{X: drift, Y: -speed})
	}
}

func (l *Launcher) bombChance() float64 {
	if !l.armed() {
		return 0
	}
	switch l.mode {
	case round.ModeClassic:
		return l.cfg.Bombs.ClassicChance
	case round.ModeArcade:
		return l.cfg.Bombs.ArcadeChance
	default:
		return 0
	}
}
