package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/regkit/internal/config"
	"github.com/joshuapare/regkit/internal/logging"
)

var (
	// Global flags
	verbose    bool
	quiet      bool
	jsonOut    bool
	configPath string
	backend    string
	dbPath     string
	readOnly   bool

	// cfg is resolved before any subcommand runs.
	cfg = config.Defaults()

	// stdout is swapped out by tests.
	stdout io.Writer = os.Stdout

	log = logging.For("regctl")
)

var rootCmd = &cobra.Command{
	Use:   "regctl",
	Short: "Inspect and edit registry stores",
	Long: `regctl reads and writes registry keys and values through the regkit
access layer. It works against a persistent bbolt-backed store, a scratch
in-memory store, or (on Windows) the live system registry.`,
	Version:           "0.1.0",
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return setup(cmd) },
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default ~/.regctl/config.toml)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Store backend: bolt, memory or windows")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path of the bolt database")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Open the store read-only")
}

// setup loads the config file and applies flag overrides on top of it.
func setup(cmd *cobra.Command) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("backend") {
		loaded.Store.Backend = backend
	}
	if flags.Changed("db") {
		loaded.Store.Path = dbPath
	}
	if flags.Changed("read-only") {
		loaded.Store.ReadOnly = readOnly
	}
	switch {
	case verbose:
		loaded.Log.Level = "debug"
	case quiet:
		loaded.Log.Level = "error"
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logging.Init(loaded.Log.Level, loaded.Log.Format)
	cfg = loaded
	return nil
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// printInfo prints a message unless in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(stdout, format, args...)
	}
}

// printJSON outputs data as indented JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
