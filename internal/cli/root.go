// Package cli implements the corespec command line: running
// declared scenarios, listing and validating declaration files,
// and browsing the run history.
package cli

import (
	"github.com/spf13/cobra"

	"digital.vasic.corespec/pkg/config"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	ConfigFile string
	EnvFile    string
	Verbose    bool
}

// NewRootCommand creates the root command for the corespec CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "corespec",
		Short: "corespec - behavioral scenarios for core collection semantics",
		Long: `Declare groups of behavioral cases, run them sequentially or in
parallel, and report the results as text, JSON, Markdown or HTML.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.ConfigFile, "config", "c", "",
		"config file (default "+config.DefaultFile+" when present)")
	cmd.PersistentFlags().StringVar(&opts.EnvFile, "env", ".env",
		"dotenv file with "+config.EnvPrefix+" overrides")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false,
		"verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHistoryCommand(opts))

	return cmd
}

// resolveConfig assembles the config file, the environment and
// the root flags.
func resolveConfig(opts *RootOptions) (*config.Config, error) {
	cfg, err := config.Resolve(opts.ConfigFile, opts.EnvFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "load config", err)
	}
	if opts.Verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}
