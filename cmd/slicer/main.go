// slicer is a fruit-slicing arcade game for the terminal.
//
// Usage:
//
//	slicer modes             - List the game modes
//	slicer play [mode]       - Play a mode (classic, arcade, relax)
//	slicer menu              - Start menu to pick modes interactively
//	slicer serve             - Start SSH server for remote play
//	slicer scores [mode]     - Show high scores
//
// Global flags:
//
//	--fps <rate>           - Set tick rate (default: 60)
//	--seed <value>         - Set RNG seed for reproducible gameplay
//	--db <path>            - Set database path (default: ~/.slicer/scores.db)
//	--prefs <backend>      - Where best scores and experience live: sqlite or gdata
//	--log-file <path>      - Write logs to a file
//	--log-level <level>    - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-slicer/internal/core"
	"github.com/vovakirdan/tui-slicer/internal/round"
	"github.com/vovakirdan/tui-slicer/internal/storage"

	// Register the slicer modes
	_ "github.com/vovakirdan/tui-slicer/internal/games/slicer"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagPrefs    string
	flagLogFile  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "slicer",
	Short: "Slicer - slice fruit in your terminal",
	Long: `Slicer is a terminal fruit-slicing game with three modes:

  classic  - three lives, a bomb ends the round
  arcade   - sixty seconds on the clock, a bomb empties it
  relax    - ninety seconds, no bombs

Available commands:
  modes    - Show the game modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  serve    - Start SSH server for remote play
  scores   - View high scores
  config   - Print the default config

Examples:
  slicer play
  slicer play arcade --difficulty hard
  slicer menu
  slicer serve --ssh :2222 --feed :8080
  slicer scores relax`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.slicer/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagPrefs, "prefs", "sqlite", "Preference backend: sqlite or gdata")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (default: discard)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(modesCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fail prints an error the way every command reports one and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// newLogger builds the logger for local play. The terminal is the game
// screen, so logs only go to --log-file when one is given.
func newLogger() (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	if flagLogFile == "" {
		return log.New(io.Discard), func() {}, nil
	}

	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          "slicer",
	})
	return logger, func() { f.Close() }, nil
}

// openStore opens the score database. A missing database is not fatal:
// the game still works, it just keeps nothing.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// openPrefs returns the store for best scores and experience.
func openPrefs(store *storage.Store) (round.Prefs, error) {
	switch flagPrefs {
	case "sqlite":
		if store == nil {
			return nil, nil
		}
		return store.Prefs(localOwner()), nil
	case "gdata":
		prefs, err := storage.OpenGdataPrefs("slicer")
		if err != nil {
			return nil, err
		}
		return prefs, nil
	default:
		return nil, fmt.Errorf("unknown --prefs backend %q (want sqlite or gdata)", flagPrefs)
	}
}

// localOwner names the local player in the prefs table.
func localOwner() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}
