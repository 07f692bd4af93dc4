// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the casefile CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/casefile/internal/history"
	"github.com/pdiddy/casefile/internal/logging"
	"github.com/pdiddy/casefile/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// cfg is the merged configuration from file, environment and flags.
var cfg types.Config

// logger is built from cfg.Log before any subcommand runs.
var logger = zap.NewNop()

// rootCmd is the base command for the casefile CLI.
var rootCmd = &cobra.Command{
	Use:   "casefile",
	Short: "Batch tools for a legal office's client case files",
	Long: `casefile automates the paperwork of a legal office's client folders.

It merges each client's accounting statement, commission sheet and invoice PDFs
into one document, finds and removes blank pages, extracts client, agent and case
status from .docx case files, and lists commission and statement documents
into spreadsheets. Every batch run is recorded in a local history database.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("reading configuration: %w", err)
		}
		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./casefile.yaml or ~/.config/casefile/casefile.yaml)")
	pf.String("log-level", "warn", "log level: debug, info, warn, or error")
	pf.String("log-format", "console", "log format: console or json")
	pf.String("history-dir", ".casefile", "directory of the run history database")
	pf.Bool("no-history", false, "do not record this run in the history database")

	bindFlag(pf, "log.level", "log-level")
	bindFlag(pf, "log.format", "log-format")
	bindFlag(pf, "history.dir", "history-dir")
	bindFlag(pf, "history.disabled", "no-history")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("casefile")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "casefile"))
		}
	}

	viper.SetEnvPrefix("CASEFILE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// bindFlag ties a config key to a flag so file, environment and flag values
// compose with the flag taking precedence when set.
func bindFlag(fs *pflag.FlagSet, key, name string) {
	if err := viper.BindPFlag(key, fs.Lookup(name)); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", name, err))
	}
}

// dirArg returns the first positional argument, the configured directory,
// or the working directory, in that order.
func dirArg(args []string, configured string) string {
	if len(args) > 0 {
		return args[0]
	}
	if configured != "" {
		return configured
	}
	return "."
}

// recordRun stores run in the history database. Failures are logged and do
// not fail the command.
func recordRun(ctx context.Context, run *history.Run) {
	if cfg.History.Disabled {
		return
	}
	store, err := history.Open(cfg.History.Dir)
	if err != nil {
		logger.Warn("opening run history failed", zap.Error(err))
		return
	}
	defer store.Close()

	if err := store.Record(context.WithoutCancel(ctx), run); err != nil {
		logger.Warn("recording run failed", zap.String("run", run.ID), zap.Error(err))
		return
	}
	logger.Debug("run recorded", zap.String("run", run.ID), zap.String("command", run.Command))
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
