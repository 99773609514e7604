package commands

import (
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depmap/pkg/report"
)

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand(globals *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported languages after configuration overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, globals, nil)
			if err != nil {
				return err
			}

			reg, err := cfg.Registry()
			if err != nil {
				return err
			}

			report.NewConsole(cmd.OutOrStdout(), false).Languages(reg.Languages())

			return nil
		},
	}
}
