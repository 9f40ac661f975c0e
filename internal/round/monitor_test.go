package round

import (
	"testing"
	"time"
)

func TestNewMonitorValidation(t *testing.T) {
	ok := Options{
		Mode:     ModeClassic,
		Layout:   NewLayout(),
		Clock:    &fakeClock{},
		Launcher: &fakeLauncher{},
		Menu:     &fakeMenu{},
		Input:    &fakeInput{},
	}
	if _, err := NewMonitor(ok); err != nil {
		t.Fatalf("NewMonitor() with valid options failed: %v", err)
	}

	badMode := ok
	badMode.Mode = Mode(7)
	if _, err := NewMonitor(badMode); err == nil {
		t.Error("expected error for unknown mode")
	}

	shortLayout := ok
	shortLayout.Layout = NewLayout()
	shortLayout.Layout.LifeOK = shortLayout.Layout.LifeOK[:2]
	if _, err := NewMonitor(shortLayout); err == nil {
		t.Error("expected error for layout with two life icons")
	}

	noClock := ok
	noClock.Clock = nil
	if _, err := NewMonitor(noClock); err == nil {
		t.Error("expected error for missing clock")
	}
}

func TestInitializeResetsRound(t *testing.T) {
	state := NewState()
	state.Scores[ModeClassic] = 40
	state.Misses = 2
	state.SplatterDepth = 47
	state.HighScores[ModeClassic] = 90

	h := newHarness(t, ModeClassic, state)
	h.m.Layout().GameOver.SetActive(true)
	h.m.Initialize()

	if h.m.Layout().GameOver.Active() {
		t.Error("game over overlay should be hidden after Initialize")
	}
	if !h.m.Running() {
		t.Error("round should be running after Initialize")
	}
	if state.Misses != 0 || state.Scores[ModeClassic] != 0 {
		t.Errorf("per-round counters not reset: misses=%d score=%d", state.Misses, state.Scores[ModeClassic])
	}
	if state.SplatterDepth != SplatterDepthStart {
		t.Errorf("SplatterDepth = %v, want %v", state.SplatterDepth, SplatterDepthStart)
	}
	if state.HighScores[ModeClassic] != 90 {
		t.Errorf("high score should survive Initialize, got %d", state.HighScores[ModeClassic])
	}
	if h.m.RoundID() == "" {
		t.Error("Initialize should assign a round ID")
	}
}

func TestClassicMissSequence(t *testing.T) {
	h := newHarness(t, ModeClassic, nil)
	h.m.Initialize()
	h.m.Begin()

	l := h.m.Layout()
	if !h.m.Started() {
		t.Fatal("classic round should start immediately")
	}
	if !h.clock.hidden {
		t.Error("classic round should hide the clock display")
	}
	for i, icon := range l.LifeOK {
		if !icon.Active() {
			t.Errorf("life_ok_%d should be shown at start", i)
		}
	}

	tests := []struct {
		misses       int
		wantLauncher int
		wantMissed   []bool
		wantEnded    bool
	}{
		{0, 1, []bool{false, false, false}, false},
		{1, 2, []bool{true, false, false}, false},
		{2, 3, []bool{true, true, false}, false},
		{3, 3, []bool{true, true, true}, true},
	}

	for _, tt := range tests {
		h.m.State().Misses = tt.misses
		h.m.Tick()

		if h.launcher.calls != tt.wantLauncher {
			t.Errorf("misses=%d: launcher calls = %d, want %d", tt.misses, h.launcher.calls, tt.wantLauncher)
		}
		for i, want := range tt.wantMissed {
			if got := l.LifeMissed[i].Active(); got != want {
				t.Errorf("misses=%d: life_missed_%d active = %v, want %v", tt.misses, i, got, want)
			}
			if got := l.LifeOK[i].Active(); got == want {
				t.Errorf("misses=%d: life_ok_%d active = %v, want %v", tt.misses, i, got, !want)
			}
		}
		if h.m.Ended() != tt.wantEnded {
			t.Errorf("misses=%d: Ended() = %v, want %v", tt.misses, h.m.Ended(), tt.wantEnded)
		}
	}

	if !l.GameOver.Active() {
		t.Error("game over overlay should be shown")
	}
	if h.input.disabled != 1 {
		t.Errorf("input disabled %d times, want 1", h.input.disabled)
	}
	if h.menu.shown != 0 {
		t.Error("menu should not pop up before the delay")
	}

	// Further ticks after the end do nothing.
	h.m.State().Misses = 4
	h.m.Tick()
	h.m.Tick()
	if h.launcher.calls != 3 {
		t.Errorf("launcher called after round end: %d", h.launcher.calls)
	}
	if n := h.sink.count(EventRoundEnded); n != 1 {
		t.Errorf("round_ended published %d times, want 1", n)
	}
	if n := h.sink.count(EventLifeLost); n != 3 {
		t.Errorf("life_lost published %d times, want 3", n)
	}

	h.m.Update(DefaultTimings().MenuDelay)
	if h.menu.shown != 1 {
		t.Errorf("menu shown %d times after delay, want 1", h.menu.shown)
	}
}

func TestClassicMissJumpFlipsEarlierIcons(t *testing.T) {
	h := newHarness(t, ModeClassic, nil)
	h.m.Initialize()
	h.m.Begin()

	h.m.State().Misses = 2
	h.m.Tick()

	l := h.m.Layout()
	if !l.LifeMissed[0].Active() || !l.LifeMissed[1].Active() {
		t.Error("both first icons should show as lost")
	}
	if l.LifeMissed[2].Active() {
		t.Error("third icon should still be intact")
	}
}

func TestClassicRepeatedTickDoesNotRepublishLifeLost(t *testing.T) {
	h := newHarness(t, ModeClassic, nil)
	h.m.Initialize()
	h.m.Begin()

	h.m.RecordMiss()
	for i := 0; i < 10; i++ {
		h.m.Tick()
	}
	if n := h.sink.count(EventLifeLost); n != 1 {
		t.Errorf("life_lost published %d times, want 1", n)
	}
	if h.launcher.calls != 10 {
		t.Errorf("launcher calls = %d, want 10", h.launcher.calls)
	}
}

func TestArcadeNeverEndsBeforeStart(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.Initialize()
	h.m.Begin()

	// Clock reads zero during the intro.
	for i := 0; i < 100; i++ {
		h.m.Update(10 * time.Millisecond)
	}
	if h.m.Ended() {
		t.Fatal("arcade round ended before its clock started")
	}
	if h.m.Started() {
		t.Fatal("arcade round started before the intro delay")
	}
	if h.launcher.calls != 100 {
		t.Errorf("launcher calls during intro = %d, want 100", h.launcher.calls)
	}
}

func TestArcadeClockExpiryEndsOnce(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.Initialize()
	h.m.Begin()

	h.m.Update(DefaultTimings().IntroDelay)
	if !h.m.Started() {
		t.Fatal("arcade round should have started after the intro delay")
	}
	if len(h.clock.started) != 1 || h.clock.started[0] != 60*time.Second {
		t.Fatalf("clock started with %v, want [60s]", h.clock.started)
	}
	if h.m.Ended() {
		t.Fatal("round ended with a full clock")
	}

	h.m.RecordCut(25)
	h.clock.remaining = 0
	h.m.Tick()
	h.m.Tick()
	h.m.Tick()

	if !h.m.Ended() {
		t.Fatal("round should end when the clock reaches zero")
	}
	if n := h.sink.count(EventRoundEnded); n != 1 {
		t.Errorf("round_ended published %d times, want 1", n)
	}
	if h.input.disabled != 1 {
		t.Errorf("input disabled %d times, want 1", h.input.disabled)
	}
	if h.prefs.values[KeyExperience] != 25 {
		t.Errorf("experience = %d, want 25", h.prefs.values[KeyExperience])
	}
	if h.prefs.writes[KeyExperience] != 1 {
		t.Errorf("experience written %d times, want 1", h.prefs.writes[KeyExperience])
	}
}

func TestTimedEndThreshold(t *testing.T) {
	h := newHarness(t, ModeRelax, nil)
	h.m.Initialize()
	h.m.Begin()
	h.m.Update(DefaultTimings().IntroDelay)

	if h.clock.started[0] != 90*time.Second {
		t.Fatalf("relax clock started with %v, want 90s", h.clock.started[0])
	}

	h.clock.remaining = 11 * time.Millisecond
	h.m.Tick()
	if h.m.Ended() {
		t.Fatal("round ended with 11ms left")
	}

	h.clock.remaining = 10 * time.Millisecond
	h.m.Tick()
	if !h.m.Ended() {
		t.Fatal("round should end at 10ms left")
	}
}

func TestRelaxKeepsHigherStoredHighScore(t *testing.T) {
	state := NewState()
	state.HighScores[ModeRelax] = 100

	h := newHarness(t, ModeRelax, state)
	h.m.Initialize()
	h.m.Begin()
	h.m.Update(DefaultTimings().IntroDelay)

	h.m.RecordCut(80)
	h.clock.remaining = 0
	h.m.Tick()

	if state.HighScores[ModeRelax] != 100 {
		t.Errorf("relax high score = %d, want 100", state.HighScores[ModeRelax])
	}
	if _, ok := h.prefs.values[KeyHighestRelax]; ok {
		t.Error("relax high score should not be written")
	}
	if state.Experience != 80 {
		t.Errorf("experience = %d, want 80", state.Experience)
	}
	if h.sink.count(EventHighScore) != 0 {
		t.Error("high_score event should not be published")
	}
}

func TestHighScoreUpdatesOnlyWhenStrictlyGreater(t *testing.T) {
	tests := []struct {
		name     string
		stored   int
		score    int
		wantHigh int
		wantSave bool
	}{
		{"lower", 50, 30, 50, false},
		{"equal", 50, 50, 50, false},
		{"greater", 50, 51, 51, true},
		{"first", 0, 12, 12, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := NewState()
			state.HighScores[ModeClassic] = tt.stored

			h := newHarness(t, ModeClassic, state)
			h.m.Initialize()
			h.m.Begin()
			h.m.RecordCut(tt.score)
			h.m.ForceEndRound()
			h.m.Tick()

			if state.HighScores[ModeClassic] != tt.wantHigh {
				t.Errorf("high score = %d, want %d", state.HighScores[ModeClassic], tt.wantHigh)
			}
			v, saved := h.prefs.values[KeyHighestClassic]
			if saved != tt.wantSave {
				t.Fatalf("high score saved = %v, want %v", saved, tt.wantSave)
			}
			if saved && v != state.Scores[ModeClassic] {
				t.Errorf("stored high score = %d, want current score %d", v, state.Scores[ModeClassic])
			}
		})
	}
}

func TestForceEndRoundIdempotent(t *testing.T) {
	h := newHarness(t, ModeClassic, nil)
	h.m.Initialize()
	h.m.Begin()

	h.m.ForceEndRound()
	h.m.ForceEndRound()

	l := h.m.Layout()
	for i := 0; i < LifeCount; i++ {
		if l.LifeOK[i].Active() || !l.LifeMissed[i].Active() {
			t.Errorf("life icon %d should show as lost", i)
		}
	}
	if h.m.State().Misses != MissSentinel {
		t.Errorf("misses = %d, want %d", h.m.State().Misses, MissSentinel)
	}

	h.m.Tick()
	h.m.ForceEndRound()
	h.m.Tick()

	if n := h.sink.count(EventRoundEnded); n != 1 {
		t.Errorf("round_ended published %d times, want 1", n)
	}
	if h.prefs.writes[KeyExperience] != 1 {
		t.Errorf("experience written %d times, want 1", h.prefs.writes[KeyExperience])
	}
	// Icons were already flipped, so the end tick does not report lost lives.
	if n := h.sink.count(EventLifeLost); n != 0 {
		t.Errorf("life_lost published %d times, want 0", n)
	}
}

func TestForceEndRoundInTimedModeOnlySetsMisses(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.Initialize()
	h.m.Begin()
	h.m.Update(DefaultTimings().IntroDelay)

	h.m.ForceEndRound()
	h.m.Tick()

	if h.input.disabled != 0 {
		t.Error("timed mode ForceEndRound should not disable input")
	}
	if h.m.Ended() {
		t.Error("timed mode ends on the clock, not on misses")
	}
	if h.m.State().Misses != MissSentinel {
		t.Errorf("misses = %d, want %d", h.m.State().Misses, MissSentinel)
	}
}

func TestZeroClockAndEndRound(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.Initialize()
	h.m.Begin()
	h.m.Update(DefaultTimings().IntroDelay)

	h.m.ZeroClockAndEndRound()
	if h.clock.zeroed != 1 || h.input.disabled != 1 {
		t.Fatalf("zeroed=%d disabled=%d, want 1 and 1", h.clock.zeroed, h.input.disabled)
	}
	if h.m.Ended() {
		t.Fatal("round should end on the next tick, not immediately")
	}
	h.m.Tick()
	if !h.m.Ended() {
		t.Fatal("round should end after the clock was zeroed")
	}
}

func TestRecordCutOnlyActiveModeWhileRunning(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.RecordCut(10)
	if h.m.State().Scores[ModeArcade] != 0 {
		t.Error("cut before Initialize should be ignored")
	}

	h.m.Initialize()
	h.m.RecordCut(10)
	h.m.RecordCut(-4)
	h.m.RecordMiss()

	s := h.m.State()
	if s.Scores != [3]int{0, 10, 0} {
		t.Errorf("scores = %v, want [0 10 0]", s.Scores)
	}
	if s.Misses != 1 {
		t.Errorf("misses = %d, want 1", s.Misses)
	}
}

func TestPeriodicRefreshWritesScores(t *testing.T) {
	state := NewState()
	state.HighScores = [3]int{11, 22, 33}

	h := newHarness(t, ModeClassic, state)
	h.m.Initialize()
	h.m.Begin()
	h.m.RecordCut(7)

	l := h.m.Layout()
	if l.ScoreText[ModeClassic].Text() != "" {
		t.Fatal("score text should not be written before the first refresh")
	}

	h.m.Update(DefaultTimings().RefreshInterval)

	want := map[Mode][2]string{
		ModeClassic: {"7", "11"},
		ModeArcade:  {"0", "22"},
		ModeRelax:   {"0", "33"},
	}
	for mode, w := range want {
		if got := l.ScoreText[mode].Text(); got != w[0] {
			t.Errorf("%s score text = %q, want %q", mode, got, w[0])
		}
		if got := l.HighText[mode].Text(); got != w[1] {
			t.Errorf("%s high text = %q, want %q", mode, got, w[1])
		}
	}
}

func TestCloseCancelsContinuations(t *testing.T) {
	h := newHarness(t, ModeRelax, nil)
	h.m.Initialize()
	h.m.Begin()
	h.m.Close()

	if n := h.m.Scheduler().Pending(); n != 0 {
		t.Fatalf("pending after Close = %d, want 0", n)
	}
	h.m.Update(10 * time.Second)
	if h.m.Started() {
		t.Error("intro continuation fired after Close")
	}
	if len(h.clock.started) != 0 {
		t.Error("clock started after Close")
	}
}

func TestBeginRunsOnce(t *testing.T) {
	h := newHarness(t, ModeArcade, nil)
	h.m.Initialize()
	h.m.Begin()
	h.m.Begin()
	h.m.Update(DefaultTimings().IntroDelay)

	if len(h.clock.started) != 1 {
		t.Errorf("clock started %d times, want 1", len(h.clock.started))
	}
	if n := h.sink.count(EventRoundStarted); n != 1 {
		t.Errorf("round_started published %d times, want 1", n)
	}
}

func TestPrefsFailureDoesNotStopRound(t *testing.T) {
	h := newHarness(t, ModeClassic, nil)
	h.prefs.fail = true
	h.m.Initialize()
	h.m.Begin()
	h.m.RecordCut(5)
	h.m.ForceEndRound()
	h.m.Tick()

	if !h.m.Ended() {
		t.Fatal("round should end even when prefs cannot be written")
	}
	if h.m.State().HighScores[ModeClassic] != 5 {
		t.Errorf("in-memory high score = %d, want 5", h.m.State().HighScores[ModeClassic])
	}
}

func TestEventsCarryRoundData(t *testing.T) {
	fixed := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	sink := &recordingSink{}
	m, err := NewMonitor(Options{
		Mode:     ModeClassic,
		Layout:   NewLayout(),
		Clock:    &fakeClock{},
		Launcher: &fakeLauncher{},
		Menu:     &fakeMenu{},
		Input:    &fakeInput{},
		Sink:     sink,
		Now:      func() time.Time { return fixed },
	})
	if err != nil {
		t.Fatalf("NewMonitor() failed: %v", err)
	}
	m.Initialize()
	m.Begin()
	m.RecordCut(9)
	m.ForceEndRound()
	m.Tick()

	last := sink.events[len(sink.events)-1]
	if last.Type != EventRoundEnded {
		t.Fatalf("last event = %s, want %s", last.Type, EventRoundEnded)
	}
	if last.Mode != "classic" || last.Score != 9 || last.HighScore != 9 || last.Misses != MissSentinel {
		t.Errorf("unexpected event payload: %+v", last)
	}
	if last.RoundID != m.RoundID() || !last.Time.Equal(fixed) {
		t.Errorf("event round/time mismatch: %+v", last)
	}
}
