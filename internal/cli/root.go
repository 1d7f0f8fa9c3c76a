// Package cli implements the command-line interface for cubeturn.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/cubeturn/internal/config"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	verbose    bool
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "cubeturn",
	Short: "Twisty puzzle turn engine",
	Long: `cubeturn - drive a 3x3x3 twisty puzzle with pointer gestures.

Play in the terminal by dragging stickers with the mouse, apply move
sequences, stress the turn engine with random sequences, and replay
recorded turn logs.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
}

// loadConfig returns the config from --config, or the defaults.
func loadConfig() (config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// newLogger returns a logger writing to w, at debug level with --verbose.
func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.Out = w
	l.Level = logrus.WarnLevel
	if verbose {
		l.Level = logrus.DebugLevel
	}
	return l
}

// logDir returns the turn log directory from config or the default.
func logDir(cfg config.Config) string {
	if cfg.LogDir != "" {
		return cfg.LogDir
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".cubeturn", "logs")
}
