// Package cmd implements the CLI commands for devmark using Cobra.
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	cfgpkg "github.com/gaurav-prasanna/devmark/core/config"
)

var (
	cfgFile string
	verbose bool

	// Loaded configuration and logger, set before any subcommand runs.
	cfg    *cfgpkg.Config
	logger = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "devmark",
	Short: "devmark converts HTML articles into dev.to flavored Markdown",
	Long: `devmark turns published HTML articles into Markdown ready to paste into
dev.to. Embedded tweets, videos, pens and gists become liquid tags.

Usage:
  devmark convert <url|file|-> [flags]
  devmark embed <url>...`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(cmd.ErrOrStderr(), verbose)
		c, err := cfgpkg.Load(cfgFile)
		if err != nil {
			return err
		}
		cfg = c
		logger.Debug("config loaded", "file", cfgFile, "engine", cfg.Engine)
		return nil
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.devmark/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log conversion details to stderr")
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
