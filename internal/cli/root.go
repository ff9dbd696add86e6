package cli

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/eigerco/rngdao/pkg/log"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	DataDir     string
	ConfigFile  string
	LogLevel    string
	LogFormat   string
	Output      string // "text" | "json"
	MetricsFile string
}

var ValidOutputs = []string{"text", "json"}

// NewRootCommand creates the rngdao command tree.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "rngdao",
		Short: "Commit-reveal random number generation",
		Long: `rngdao runs commit-reveal cycles against a local store.

A creator opens a cycle with a bounty, generators commit the hash of a secret
and reveal it later, the creator finalizes the cycle to obtain the XOR of
every revealed secret.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(ValidOutputs, opts.Output) {
				return fmt.Errorf("invalid output %q: must be one of %v", opts.Output, ValidOutputs)
			}
			level, err := log.ParseLogLevel(opts.LogLevel)
			if err != nil {
				return fmt.Errorf("invalid log level: %w", err)
			}
			loggerType, err := log.ParseLoggerType(opts.LogFormat)
			if err != nil {
				return err
			}
			log.Init(log.Options{LogLevel: level, Type: loggerType, Output: cmd.ErrOrStderr()})
			return nil
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.DataDir, "data-dir", "rngdao-data", "directory of the local store")
	flags.StringVar(&opts.ConfigFile, "config", "", "config file (yaml, toml or json)")
	flags.StringVar(&opts.LogLevel, "log-level", "info", "log level")
	flags.StringVar(&opts.LogFormat, "log-format", "console", "log format (console|json)")
	flags.StringVarP(&opts.Output, "output", "o", "text", "output format (text|json)")
	flags.StringVar(&opts.MetricsFile, "metrics-file", "", "write engine metrics to this file in the Prometheus text format")

	cmd.AddCommand(NewOpenCommand(opts))
	cmd.AddCommand(NewCommitCommand(opts))
	cmd.AddCommand(NewRevealCommand(opts))
	cmd.AddCommand(NewFinalizeCommand(opts))
	cmd.AddCommand(NewSweepCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewMintCommand(opts))
	cmd.AddCommand(NewBalanceCommand(opts))
	cmd.AddCommand(NewHashCommand(opts))

	return cmd
}
