package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/games/slicer"
	"github.com/vovakirdan/tui-slicer/internal/round"
)

var modesCmd = &cobra.Command{
	Use:     "modes",
	Aliases: []string{"list"},
	Short:   "List the game modes",
	Long:    `Shows every mode with the game ID its scores are kept under.`,
	Args:    cobra.NoArgs,
	Run:     runModes,
}

func runModes(_ *cobra.Command, _ []string) {
	fmt.Println("Game modes:")
	fmt.Println()
	fmt.Printf("  %-8s  %-14s  %s\n", "Mode", "ID", "Rules")
	fmt.Printf("  %-8s  %-14s  %s\n", "----", "--", "-----")

	for _, m := range round.Modes {
		fmt.Printf("  %-8s  %-14s  %s\n", m.String(), slicer.GameID(m), modeRules(m))
	}

	fmt.Println()
	fmt.Println("Run 'slicer play <mode>' to play.")
}

func modeRules(m round.Mode) string {
	switch m {
	case round.ModeClassic:
		return "three lives, a bomb ends the round"
	case round.ModeArcade:
		return "timed, a bomb empties the clock"
	case round.ModeRelax:
		return "timed, no bombs"
	default:
		return ""
	}
}

// resolveMode accepts a mode name or a game ID. Empty means classic.
func resolveMode(arg string) (round.Mode, error) {
	if arg == "" {
		return round.ModeClassic, nil
	}
	if m, ok := slicer.ModeFromID(arg); ok {
		return m, nil
	}
	return round.ParseMode(arg)
}
