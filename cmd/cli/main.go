package main

import (
	"fmt"
	"io"
	"os"

	"github.com/QTest-hq/clientgen/internal/config"
	"github.com/QTest-hq/clientgen/internal/lexer"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var version = "dev"

// app holds the settings shared by every subcommand
type app struct {
	cfg      *config.Config
	logLevel string
}

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "clientgen",
		Short: "clientgen - post-processing for generated connector clients",
		Long: `clientgen renames the functions of a generated client, and expands the
macro regions of a library template into wrappers around that client.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	// Add subcommands
	rootCmd.AddCommand(renameCmd(a))
	rootCmd.AddCommand(includeCmd(a))
	rootCmd.AddCommand(parseCmd(a))
	rootCmd.AddCommand(watchCmd(a))
	rootCmd.AddCommand(initCmd())

	return rootCmd
}

// setup loads the environment config and applies it to logging and the lexer.
// Log lines of this invocation go to out and carry one run id.
func (a *app) setup(out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.logLevel != "" {
		cfg.LogLevel = a.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: out}).
		With().Timestamp().Str("run", uuid.NewString()).Logger()

	lexer.ResizeCache(cfg.TokenCacheSize)
	return nil
}

// loadProject reads the project config from the working directory and applies
// the command line overrides
func loadProject(overrides *config.ProjectConfig) (*config.ProjectConfig, error) {
	pc, err := config.LoadProjectConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", config.ProjectFile, err)
	}
	pc.Merge(overrides)
	return pc, nil
}

// argOr returns args[i] when present, else fallback. An empty result is an
// error naming what is missing.
func argOr(args []string, i int, fallback, what string) (string, error) {
	if i < len(args) && args[i] != "" {
		return args[i], nil
	}
	if fallback == "" {
		return "", fmt.Errorf("no %s given and none set in %s", what, config.ProjectFile)
	}
	return fallback, nil
}
