package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"beccabot/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	configFile string
)

var rootCmd = &cobra.Command{
	Use:           "beccabot [flags]",
	Short:         "A community chat bot for Discord and Telegram",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}

		loaded, err := config.Load(configFile)
		if err != nil {
			return err
		}

		cfg = loaded
		setupLogging(cfg.Bot)

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("beccabot failed")
		os.Exit(1)
	}
}

func setupLogging(bot config.Bot) {
	if bot.PrettyLogs {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	}

	level, err := parseLevel(bot.LogLevel)
	if err != nil {
		log.Warn().Err(err).Msg("falling back to info log level")
	}

	zerolog.SetGlobalLevel(level)
}

func parseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.InfoLevel, fmt.Errorf("invalid log level: %s", level)
	}
}

//nolint:gochecknoinits
func init() {
	rootCmd.PersistentFlags().StringVar(
		&configFile,
		"config",
		"",
		"Config file to use (defaults to ./config.toml)",
	)
}
