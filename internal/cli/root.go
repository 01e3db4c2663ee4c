// Package cli implements yangcheck, an example command-line front end for
// the yangresolve module. It is explicitly non-authoritative: ResolveSchema
// and ResolveData are the real surface, and any CLI wrapped around them is
// a convenience.
//
// Grounded on avular-robotics-avular-packages/internal/cli's cobra+viper
// wiring (root.go's PersistentPreRunE config/logging setup, one file per
// subcommand, viper.BindPFlag mapping every flag to an env-overridable
// key).
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var version = "dev"

const envPrefix = "YANGCHECK"

// Execute runs yangcheck's root command, exiting the process with a
// non-zero status on failure.
func Execute() {
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var logLevel string
	cmd := &cobra.Command{
		Use:     "yangcheck",
		Short:   "Resolve YANG modules and report unresolved references",
		Version: version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			viper.SetEnvPrefix(envPrefix)
			viper.AutomaticEnv()
			setupLogging(viper.GetString("log_level"))
			return nil
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	_ = viper.BindPFlag("log_level", cmd.PersistentFlags().Lookup("log-level"))

	cmd.AddCommand(newResolveCommand())
	cmd.AddCommand(newExplainPathCommand())
	return cmd
}

func setupLogging(level string) {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	switch level {
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
