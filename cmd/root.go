// Package cmd provides the entrypoint for the voucher-email cli.
package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fallsafe/voucher-email/internal/config"
	"github.com/fallsafe/voucher-email/internal/helpers"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	configFilePath string
	logger         *slog.Logger
	flushLogs      = func() {}
)

type boundEnvVar[T argType] struct {
	Name, Description string
	Env, Short        *string
	Hidden            bool
	// Count binds an int as a repeatable counter flag (-vvv).
	Count bool
}

// New returns the root command for the voucher-email.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "voucher-email",
		Short:        "Send voucher emails from Lambda or a local HTTP service",
		SilenceUsage: true,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			config.Global.Mode = strings.TrimSpace(config.Global.Mode)
			logger, flushLogs = helpers.NewLogger(os.Stdout, helpers.LoggerConfig{
				Level:       slog.LevelWarn - slog.Level(config.Global.Logging.Verbosity*4),
				CallerTrace: config.Global.Logging.CallerTrace,
				SentryDSN:   config.Global.Logging.Sentry.DSN,
				Environment: config.Global.Logging.Sentry.Environment,
			})
			logger = logger.With("mode", config.Global.Mode)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			switch config.Global.Mode {
			case config.ModeService:
				return runService(cmd)
			case config.ModeLambda:
				return runLambda(cmd)
			default:
				return fmt.Errorf("invalid mode: %s", config.Global.Mode)
			}
		},
	}

	// Root command flags
	cmd.PersistentFlags().StringVarP(&configFilePath, "config", "c", "config.yaml", "path to the configuration file")

	// Configuration loading & defaults
	if err := errors.Join(
		config.LoadFromFile(configFilePath),
		config.SetDefaults(),
	); err != nil {
		panic(err)
	}

	// Dynamic flags
	setupDynamicFlags(cmd)

	// Subcommands
	cmd.AddCommand(
		cmdLambda(),
		cmdService(),
	)

	return cmd
}

func setupDynamicFlags(cmd *cobra.Command) {
	viper.AutomaticEnv()
	viper.EnvKeyReplacer(replacer)

	bindEnvMap(cmd, envMapString)
	bindEnvMap(cmd, envMapBool)
	bindEnvMap(cmd, envMapInt)
	bindEnvMap(cmd, envMapDuration)
}
