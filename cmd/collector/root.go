package main

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Bootstrap settings tell the agent where its configuration lives; once
// loaded, the configuration engine answers everything else. Each flag is also
// settable through a COLLECTOR_* environment variable.
const envPrefix = "COLLECTOR"

func newRootCommand() *cobra.Command {
	v := viper.New()

	rootCmd := &cobra.Command{
		Use:   "collector",
		Short: "Media collection agent",
		Long: `The collector agent gathers media mentions for configured targets across
source types (twitter, youtube, news, instagram). Runtime behavior is driven
by a layered configuration: compiled-in defaults, JSON files, the settings
database and CONFIG__* environment variables, in that order of precedence.`,
		Version: version,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return initLogger(v.GetString("log-level"))
		},
	}

	registerBootstrapFlags(rootCmd.PersistentFlags())

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(newServeCommand(v))
	rootCmd.AddCommand(newCollectCommand(v))

	return rootCmd
}

func registerBootstrapFlags(flags *pflag.FlagSet) {
	flags.String("config-dir", "configs", "directory holding *.json configuration files")
	flags.String("database", "collector.db", "path to the settings database")
	flags.Bool("use-database", false, "enable the settings database as a configuration source")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
}

func initLogger(level string) error {
	parsed, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(parsed)
	logger, err := cfg.Build()
	if err != nil {
		return err
	}
	zap.ReplaceGlobals(logger)
	return nil
}
