package round

import (
	"errors"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// MissSentinel is the miss count ForceEndRound writes. Anything at or above
// LifeCount ends a Classic round; the exact value only marks a forced end.
const MissSentinel = 5

// Timings holds the round's fixed delays and durations.
type Timings struct {
	IntroDelay      time.Duration // wait before a timed round starts its clock
	ArcadeDuration  time.Duration
	RelaxDuration   time.Duration
	MenuDelay       time.Duration // wait between round end and the menu popup
	RefreshInterval time.Duration // HUD score text refresh period
	EndThreshold    time.Duration // remaining clock time treated as expired
}

// DefaultTimings returns the stock round timings.
func DefaultTimings() Timings {
	return Timings{
		IntroDelay:      3500 * time.Millisecond,
		ArcadeDuration:  60 * time.Second,
		RelaxDuration:   90 * time.Second,
		MenuDelay:       500 * time.Millisecond,
		RefreshInterval: 330 * time.Millisecond,
		EndThreshold:    10 * time.Millisecond,
	}
}

// Options configures a Monitor.
type Options struct {
	Mode     Mode
	Timings  Timings
	Layout   Layout
	State    *State // optional, a fresh State is used when nil
	Clock    Clock
	Launcher Launcher
	Menu     Menu
	Input    InputGate
	Prefs    Prefs       // optional, nothing is persisted when nil
	Sink     Sink        // optional
	Logger   *log.Logger // optional
	Now      func() time.Time
}

// Monitor drives one round: start sequence, per-tick evaluation of the end
// condition, HUD refresh and end-of-round bookkeeping.
type Monitor struct {
	mode     Mode
	timings  Timings
	layout   Layout
	state    *State
	clock    Clock
	launcher Launcher
	menu     Menu
	input    InputGate
	prefs    Prefs
	sink     Sink
	logger   *log.Logger
	now      func() time.Time
	sched    *Scheduler

	roundID string
	running bool
	started bool
	ended   bool
	begun   bool
}

// NewMonitor validates the options and builds a Monitor.
// The round does not run until Initialize is called.
func NewMonitor(opts Options) (*Monitor, error) {
	if !opts.Mode.Valid() {
		return nil, errors.New("round: invalid mode")
	}
	if err := opts.Layout.Validate(); err != nil {
		return nil, err
	}
	if opts.Clock == nil || opts.Launcher == nil || opts.Menu == nil || opts.Input == nil {
		return nil, errors.New("round: clock, launcher, menu and input are required")
	}
	if opts.Timings == (Timings{}) {
		opts.Timings = DefaultTimings()
	}

	m := &Monitor{
		mode:     opts.Mode,
		timings:  opts.Timings,
		layout:   opts.Layout,
		state:    opts.State,
		clock:    opts.Clock,
		launcher: opts.Launcher,
		menu:     opts.Menu,
		input:    opts.Input,
		prefs:    opts.Prefs,
		sink:     opts.Sink,
		logger:   opts.Logger,
		now:      opts.Now,
		sched:    NewScheduler(),
	}
	if m.state == nil {
		m.state = NewState()
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m, nil
}

// Mode returns the round's mode.
func (m *Monitor) Mode() Mode { return m.mode }

// State returns the score bookkeeping the monitor owns.
func (m *Monitor) State() *State { return m.state }

// Layout returns the HUD elements the monitor drives.
func (m *Monitor) Layout() Layout { return m.layout }

// Scheduler exposes the monitor's simulated-time scheduler.
func (m *Monitor) Scheduler() *Scheduler { return m.sched }

// RoundID returns the identifier assigned by Initialize.
func (m *Monitor) RoundID() string { return m.roundID }

// Running reports whether the round is still being evaluated.
func (m *Monitor) Running() bool { return m.running }

// Started reports whether the start sequence has completed.
func (m *Monitor) Started() bool { return m.started }

// Ended reports whether end-of-round bookkeeping has happened.
func (m *Monitor) Ended() bool { return m.ended }

// Initialize prepares a fresh round: overlay hidden, counters cleared,
// running, and the periodic HUD refresh scheduled.
func (m *Monitor) Initialize() {
	m.sched.CancelAll()
	m.layout.GameOver.SetActive(false)
	m.state.ResetRound()
	m.roundID = uuid.NewString()
	m.running = true
	m.started = false
	m.ended = false
	m.begun = false
	m.sched.Every(m.timings.RefreshInterval, func() {
		if m.running {
			m.refresh()
		}
	})
}

// Begin runs the one-shot start sequence for the mode. Classic starts
// immediately; timed modes start their clock after the intro delay.
// Calling Begin again in the same round does nothing.
func (m *Monitor) Begin() {
	if m.begun {
		return
	}
	m.begun = true

	switch m.mode {
	case ModeClassic:
		m.state.Scores[ModeClassic] = 0
		m.clock.HideDisplay()
		for _, icon := range m.layout.LifeOK {
			icon.SetActive(true)
		}
		m.markStarted()
	case ModeArcade:
		m.sched.After(m.timings.IntroDelay, func() {
			m.state.Scores[ModeArcade] = 0
			m.clock.Start(m.timings.ArcadeDuration)
			m.markStarted()
		})
	case ModeRelax:
		m.sched.After(m.timings.IntroDelay, func() {
			m.state.Scores[ModeRelax] = 0
			m.clock.Start(m.timings.RelaxDuration)
			m.markStarted()
		})
	}
}

func (m *Monitor) markStarted() {
	m.started = true
	m.logger.Debug("round started", "mode", m.mode, "round", m.roundID)
	m.publish(EventRoundStarted)
}

// Update advances the monitor's scheduled work by dt and then ticks.
func (m *Monitor) Update(dt time.Duration) {
	m.sched.Advance(dt)
	m.Tick()
}

// Tick evaluates the end condition of the active mode. It does nothing once
// the round has stopped running.
func (m *Monitor) Tick() {
	if !m.running {
		return
	}
	switch m.mode {
	case ModeClassic:
		m.evaluateClassic()
	case ModeArcade, ModeRelax:
		m.evaluateTimed()
	}
}

func (m *Monitor) evaluateClassic() {
	switch misses := m.state.Misses; {
	case misses <= 0:
		m.launcher.ReduceIntervalAndSpawn()
	case misses < LifeCount:
		m.loseLives(misses)
		m.launcher.ReduceIntervalAndSpawn()
	default:
		m.loseLives(LifeCount)
		m.endRound()
	}
}

// loseLives swaps the first n life icons to lost.
func (m *Monitor) loseLives(n int) {
	for i := 0; i < n; i++ {
		m.loseLife(i)
	}
}

// loseLife swaps life icon i from intact to lost. Already lost icons are left alone.
func (m *Monitor) loseLife(i int) {
	if !m.layout.LifeOK[i].Active() && m.layout.LifeMissed[i].Active() {
		return
	}
	m.layout.LifeOK[i].SetActive(false)
	m.layout.LifeMissed[i].SetActive(true)
	m.publish(EventLifeLost)
}

func (m *Monitor) evaluateTimed() {
	if m.started && m.clock.Remaining() <= m.timings.EndThreshold {
		m.endRound()
		return
	}
	m.launcher.ReduceIntervalAndSpawn()
}

// endRound shows the overlay, locks input, schedules the menu and persists
// the results. The running flag is cleared last so this runs once per round.
func (m *Monitor) endRound() {
	m.layout.GameOver.SetActive(true)
	m.input.Disable()
	m.sched.After(m.timings.MenuDelay, m.menu.ShowMenuOnly)

	score := m.state.Score(m.mode)
	if m.state.HighScore(m.mode) < score {
		m.updateHighScore(score)
	}
	m.addExperience(score)

	m.running = false
	m.ended = true
	m.refresh()
	m.logger.Info("round ended", "mode", m.mode, "score", score, "misses", m.state.Misses, "round", m.roundID)
	m.publish(EventRoundEnded)
}

// updateHighScore records a new best for the active mode. The value written
// to prefs is the mode's current score, which is what amt is at every call site.
func (m *Monitor) updateHighScore(amt int) {
	m.state.HighScores[m.mode] = amt
	m.persist(HighScoreKey(m.mode), m.state.Score(m.mode))
	m.publish(EventHighScore)
}

func (m *Monitor) addExperience(points int) {
	m.state.Experience += points
	m.persist(KeyExperience, m.state.Experience)
}

func (m *Monitor) persist(key string, value int) {
	if m.prefs == nil {
		return
	}
	if err := m.prefs.SetInt(key, value); err != nil {
		m.logger.Warn("could not persist pref", "key", key, "error", err)
	}
}

// ForceEndRound marks the round as lost. In Classic it also locks input and
// shows every life as lost; the next Tick performs the end bookkeeping.
func (m *Monitor) ForceEndRound() {
	m.state.Misses = MissSentinel
	if m.mode != ModeClassic {
		return
	}
	m.input.Disable()
	for _, icon := range m.layout.LifeOK {
		if icon.Active() {
			icon.SetActive(false)
		}
	}
	for _, icon := range m.layout.LifeMissed {
		if !icon.Active() {
			icon.SetActive(true)
		}
	}
}

// ZeroClockAndEndRound empties the clock and locks input. A started timed
// round ends on the next Tick.
func (m *Monitor) ZeroClockAndEndRound() {
	m.clock.Zero()
	m.input.Disable()
}

// RecordMiss counts a fruit that got away.
func (m *Monitor) RecordMiss() {
	if !m.running {
		return
	}
	m.state.Misses++
}

// RecordCut adds points to the active mode's score.
func (m *Monitor) RecordCut(points int) {
	if !m.running || points <= 0 {
		return
	}
	m.state.Scores[m.mode] += points
}

// Close cancels every pending continuation: intro start, menu popup and refresh.
func (m *Monitor) Close() {
	m.sched.CancelAll()
}

// refresh writes the six score fields from State.
func (m *Monitor) refresh() {
	for _, mode := range Modes {
		m.layout.ScoreText[mode].SetText(strconv.Itoa(m.state.Score(mode)))
		m.layout.HighText[mode].SetText(strconv.Itoa(m.state.HighScore(mode)))
	}
}

func (m *Monitor) publish(t EventType) {
	if m.sink == nil {
		return
	}
	m.sink.Publish(Event{
		Type:       t,
		RoundID:    m.roundID,
		Mode:       m.mode.String(),
		Score:      m.state.Score(m.mode),
		HighScore:  m.state.HighScore(m.mode),
		Misses:     m.state.Misses,
		Experience: m.state.Experience,
		Time:       m.now(),
	})
}
