package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.corespec/pkg/corelib"
	"digital.vasic.corespec/pkg/registry"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <paths...>",
		Short: "Check declaration files without running them",
		Long: `Check the structure, the expectation definitions and the operation
names of declaration files. Every problem is reported, not just the
first one.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args)
		},
	}

	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, paths []string) error {
	files, err := declarationFiles(paths)
	if err != nil {
		return WrapExitError(ExitCommandError, "validate", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no declaration files found")
	}

	out := cmd.OutOrStdout()
	loader := registry.NewLoader(corelib.Catalog())
	problems, invalid := 0, 0
	for _, file := range files {
		errs := loader.ValidateFile(file)
		if rootOpts.Verbose && len(errs) == 0 {
			fmt.Fprintf(out, "%s: ok\n", file)
		}
		if len(errs) > 0 {
			invalid++
		}
		for _, e := range errs {
			fmt.Fprintf(out, "%s: %s\n", file, e.Error())
			problems++
		}
	}

	if problems > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf(
			"%d problem(s) in %d of %d file(s)",
			problems, invalid, len(files),
		))
	}
	fmt.Fprintf(out, "✓ %d declaration file(s) valid\n", len(files))
	return nil
}
