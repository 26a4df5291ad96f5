package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"digital.vasic.corespec/pkg/registry"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	Builtin bool
	Suites  []string
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{}

	cmd := &cobra.Command{
		Use:           "list [paths...]",
		Short:         "Print the declared group tree without running it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(cmd, rootOpts, opts, args)
		},
	}

	cmd.Flags().BoolVar(&opts.Builtin, "builtin", false,
		"declare every built-in suite")
	cmd.Flags().StringSliceVar(&opts.Suites, "suite", nil,
		"built-in suite to declare (repeatable)")

	return cmd
}

func runList(
	cmd *cobra.Command,
	rootOpts *RootOptions,
	opts *ListOptions,
	args []string,
) error {
	cfg, err := resolveConfig(rootOpts)
	if err != nil {
		return err
	}
	if len(args) > 0 {
		cfg.Paths = args
	}
	if cmd.Flags().Changed("builtin") {
		cfg.Builtin = opts.Builtin
	}
	if cmd.Flags().Changed("suite") {
		cfg.Suites = opts.Suites
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return WrapExitError(ExitCommandError, "load declarations", err)
	}

	out := cmd.OutOrStdout()
	for _, g := range reg.Roots() {
		writeNode(out, reg, g, 0)
	}
	fmt.Fprintf(out, "\n%d groups, %d cases\n", reg.GroupCount(), reg.CaseCount())
	return nil
}

func writeNode(w io.Writer, reg *registry.Registry, n registry.Node, depth int) {
	line := strings.Repeat("  ", depth) + n.Name()
	if n.Pending() {
		line += " (PENDING)"
	}
	fmt.Fprintln(w, line)

	if g, ok := n.(*registry.Group); ok {
		for _, child := range reg.Children(g) {
			writeNode(w, reg, child, depth+1)
		}
	}
}
