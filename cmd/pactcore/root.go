package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pact-foundation/pact-core-go/pkg/pactconfig"
	"github.com/pact-foundation/pact-core-go/pkg/pactlog"
)

// Persistent flags available to every subcommand.
var (
	cfgFile   string
	logLevel  string
	logFormat string
)

var rootCmd = &cobra.Command{
	Use:   "pactcore",
	Short: "pactcore runs a pact mock server from a pact file",
	Long: `pactcore starts an in-process mock server bound to the interactions
described by a pact file, for exploring or debugging a consumer contract
from a terminal.

Configuration can be supplied via flags, PACTCORE_* environment variables,
or a YAML/JSON config file (--config).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "path to a pactcore config file (yaml or json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format: text or json")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig builds a *pactconfig.ServerConfig from --config (if given),
// then layers environment and persistent-flag overrides on top, in
// file-then-env-then-flag precedence order.
func loadConfig() (*pactconfig.ServerConfig, error) {
	var cfg *pactconfig.ServerConfig
	if cfgFile != "" {
		loaded, err := pactconfig.LoadFromFile(cfgFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = pactconfig.DefaultServerConfig()
	}

	pactconfig.ApplyEnv(cfg)

	if rootCmd.PersistentFlags().Changed("log-level") {
		cfg.LogLevel = logLevel
		cfg.Sources["logLevel"] = pactconfig.SourceFlag
	}
	if rootCmd.PersistentFlags().Changed("log-format") {
		cfg.LogFormat = logFormat
		cfg.Sources["logFormat"] = pactconfig.SourceFlag
	}

	return cfg, nil
}

func newLogger(cfg *pactconfig.ServerConfig) *slog.Logger {
	return pactlog.New(pactlog.Config{
		Level:  pactlog.ParseLevel(cfg.LogLevel),
		Format: pactlog.ParseFormat(cfg.LogFormat),
	})
}
