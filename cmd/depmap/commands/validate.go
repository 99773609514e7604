package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

// ErrInvalidGraph is returned when a graph file violates the schema.
var ErrInvalidGraph = errors.New("invalid dependency graph")

// NewValidateCommand creates the validate command.
func NewValidateCommand(globals *GlobalOptions) *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "validate FILE",
		Short: "Validate a dependencies.json file against the graph schema",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read %s: %w", args[0], err)
			}

			violations, err := report.Validate(data)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			console := report.NewConsole(out, report.ColorEnabled(out, noColor))

			if len(violations) > 0 || !globals.Quiet {
				console.Violations(args[0], violations)
			}

			if len(violations) > 0 {
				return fmt.Errorf("%w: %d violation(s) in %s", ErrInvalidGraph, len(violations), args[0])
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "disable colored output")

	return cmd
}
