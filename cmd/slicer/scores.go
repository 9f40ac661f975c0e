package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/round"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresAll   bool
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top high scores for one mode, or for every mode when
none is given.

Examples:
  slicer scores
  slicer scores arcade
  slicer scores relax --limit 20
  slicer scores arcade --all
  slicer scores classic --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores to show per mode")
	scoresCmd.Flags().BoolVar(&flagScoresAll, "all", false, "Show every recorded score")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete the recorded scores instead of showing them")
}

func runScores(_ *cobra.Command, args []string) {
	modes := round.Modes
	if len(args) == 1 {
		m, err := resolveMode(args[0])
		if err != nil {
			fail("%v\nRun 'slicer modes' to see the modes.", err)
		}
		modes = []round.Mode{m}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail("opening scores database: %v", err)
	}
	defer store.Close()

	if flagScoresClear {
		for _, m := range modes {
			if err := store.ClearScores(slicer.GameID(m)); err != nil {
				fail("clearing scores: %v", err)
			}
			fmt.Printf("Cleared %s scores.\n", m)
		}
		return
	}

	for i, m := range modes {
		if i > 0 {
			fmt.Println()
		}
		if err := printScores(store, m); err != nil {
			fail("retrieving scores: %v", err)
		}
	}
}

func printScores(store *storage.Store, m round.Mode) error {
	gameID := slicer.GameID(m)
	var (
		scores []storage.ScoreEntry
		err    error
	)
	if flagScoresAll {
		scores, err = store.AllScores(gameID)
	} else {
		scores, err = store.TopScores(gameID, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", slicer.NewMode(m).Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Printf("Play 'slicer play %s' to set the first high score!\n", m)
		return nil
	}

	fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
	fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
	for i, entry := range scores {
		fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Printf("Best: %s  Rounds: %s  Average: %.1f\n",
		humanize.Comma(int64(stats.HighScore)),
		humanize.Comma(int64(stats.GamesCount)),
		stats.AvgScore,
	)
	return nil
}
