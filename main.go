package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/msomdec/spartan-directory/internal/config"
)

const programName = "spartan-directory"

var globalFlags = struct {
	debug bool
}{}

// setupLogging configures the default slog logger from the loaded config and
// the --debug flag.
func setupLogging(cfg config.Config) {
	logLevel := slog.LevelInfo
	if globalFlags.debug || cfg.Debug {
		logLevel = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: logLevel}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func main() {
	rootCmd := &cobra.Command{
		Use:   programName,
		Short: "Spartans directory server",
		Long:  "HTTP API server for the Spartans directory: session-backed auth and a filterable, searchable, sortable member listing.",
	}

	rootCmd.PersistentFlags().
		BoolVarP(&globalFlags.debug, "debug", "D", false, "enable debug logging")

	rootCmd.AddCommand(serveCommand())
	rootCmd.AddCommand(seedCommand())

	if err := rootCmd.Execute(); err != nil {
		// cobra already printed the error
		os.Exit(1)
	}
}
