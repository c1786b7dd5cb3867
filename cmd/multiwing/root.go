package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/soypat/multiwing/span"
	"github.com/soypat/multiwing/table"
	"github.com/soypat/multiwing/wing"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "multiwing",
	Short: "Multi-element wing geometry generator",
	Long: `multiwing - multi-element wing geometry generator

Reads a case folder of spanwise control tables, builds the airfoil
cross-sections of every wing element along the span, lofts them into
solids together with the endplates and exports the result.

Case folder layout:
  <case>/Wings/1/UpperInput.csv
  <case>/Wings/1/LowerInput.csv
  <case>/Wings/1/Parameters.csv
  <case>/Wings/2/...
  <case>/Endplates/*.csv     (optional)
  <case>/case.yaml           (optional run configuration)`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Run configuration file (default <case>/"+table.ConfigFile+")")
}

// runConfig loads the run configuration of the case at dir and applies
// the sections and scale flags when set on cmd.
func runConfig(cmd *cobra.Command, dir string) (wing.Config, error) {
	path := configPath
	if path == "" {
		path = filepath.Join(dir, table.ConfigFile)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			path = ""
		}
	}
	cfg := wing.DefaultConfig()
	if path != "" {
		var err error
		cfg, err = table.LoadConfig(path)
		if err != nil {
			return cfg, err
		}
		slog.Debug("loaded run configuration", "path", path)
	}
	flags := cmd.Flags()
	if flags.Changed("sections") {
		cfg.Sections, _ = flags.GetInt("sections")
	}
	if flags.Changed("scale") {
		cfg.Scale, _ = flags.GetFloat64("scale")
	}
	cfg.Logger = slog.Default()
	return cfg, cfg.Validate()
}

// loadGrid reads the case at dir and fits its spanwise interpolators.
// Configuration errors disable the affected elements and are only
// returned when strict is set.
func loadGrid(dir string, strict bool) (table.Case, *span.Grid, error) {
	c, err := table.LoadCase(dir)
	if err != nil {
		return c, nil, err
	}
	g, err := span.NewGrid(c.Elements)
	if err != nil {
		if strict {
			return c, nil, err
		}
		slog.Warn("elements disabled by configuration errors", "err", err)
	}
	slog.Debug("case loaded", "dir", dir, "elements", len(c.Elements), "endplates", len(c.Endplates))
	return c, g, nil
}
