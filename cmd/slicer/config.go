package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-slicer/internal/config"
	"github.com/vovakirdan/tui-slicer/internal/storage"
)

var flagConfigWrite string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default slicer config",
	Long: `Print the built-in slicer config as YAML, or write it to a file to use
as a starting point for --config.

The config is looked up in this order:
  --config path
  ~/.slicer/configs/slicer.yaml
  ./configs/slicer.yaml
  built-in defaults

Examples:
  slicer config
  slicer config --write ~/.slicer/configs/slicer.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagConfigWrite, "write", "", "Write the default config to this path")
}

func runConfig(_ *cobra.Command, _ []string) {
	data := config.GetDefaultYAML()
	if flagConfigWrite == "" {
		os.Stdout.Write(data)
		return
	}

	path, err := storage.ExpandHome(flagConfigWrite)
	if err != nil {
		fail("%v", err)
	}
	if _, err := os.Stat(path); err == nil {
		fail("%s already exists", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fail("cannot create config directory: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fail("cannot write config: %v", err)
	}
	fmt.Printf("Wrote default config to %s\n", path)
}
