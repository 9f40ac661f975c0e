package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/feed"
	"github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/platform/tui"
	"github.com/vovakirdan/tui-slicer/internal/registry"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

var (
	flagConfig     string
	flagDifficulty string
	flagFeed       string
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing a mode: classic (default), arcade or relax.

Controls:
  Arrows/WASD  - Move the blade, cutting along the way
  Space        - Swipe at the blade
  Mouse drag   - Cut along the pointer
  P            - Pause
  R            - Play again (after the round ends)
  B/Esc        - Leave (after the round ends or while paused)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Slower waves, fewer bombs
  normal - Config defaults
  hard   - Faster, bigger waves and more bombs
  fixed  - No progression, stays at config's initial level

Examples:
  slicer play
  slicer play arcade --difficulty hard
  slicer play relax --config ./my-slicer.yaml
  slicer play classic --feed :8080`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	for _, cmd := range []*cobra.Command{playCmd, menuCmd} {
		cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom slicer config YAML")
		cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
		cmd.Flags().StringVar(&flagFeed, "feed", "", "Serve a live round feed on this address (e.g. :8080)")
	}
}

// applyGameFlags hands --config and --difficulty to the game package.
func applyGameFlags() error {
	if flagDifficulty != "" {
		if _, ok := config.ParsePreset(flagDifficulty); !ok {
			return fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
	}
	slicer.SetConfigPath(flagConfig)
	slicer.SetDifficultyPreset(flagDifficulty)
	return nil
}

// startFeed serves the websocket feed when addr is set and returns the
// sink games should publish to.
func startFeed(ctx context.Context, addr string, logger *log.Logger) round.Sink {
	if addr == "" {
		return nil
	}
	hub := feed.NewHub(logger.WithPrefix("feed"))
	go func() {
		if err := feed.Serve(ctx, addr, hub); err != nil {
			logger.Error("feed stopped", "error", err)
		}
	}()
	return hub
}

func runPlay(_ *cobra.Command, args []string) {
	arg := ""
	if len(args) == 1 {
		arg = args[0]
	}
	mode, err := resolveMode(arg)
	if err != nil {
		fail("%v\nRun 'slicer modes' to see the modes.", err)
	}
	if err := applyGameFlags(); err != nil {
		fail("%v", err)
	}

	logger, closeLog, err := newLogger()
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	game, err := registry.Create(slicer.GameID(mode))
	if err != nil {
		fail("creating game: %v", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}
	prefs, err := openPrefs(store)
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	services := registry.Services{
		Prefs:  prefs,
		Sink:   startFeed(ctx, flagFeed, logger),
		Logger: logger,
	}

	if _, err := tui.Run(game, store, runtimeConfig(), services); err != nil {
		fail("running game: %v", err)
	}
}
