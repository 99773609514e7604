// Package main provides the entry point for the depmap CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/depmap/cmd/depmap/commands"
	"github.com/Sumatoshi-tech/depmap/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	globals := &commands.GlobalOptions{}

	rootCmd := &cobra.Command{
		Use:   "depmap",
		Short: "depmap - file-level dependency graphs for polyglot repositories",
		Long: `depmap maps which files of a repository depend on which other files,
and which standard-library and third-party packages they pull in.

Commands:
  scan       Write dependencies.json and dependencies.md
  check      Fail when the committed graph is out of date
  validate   Validate a dependencies.json file
  languages  List supported languages`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	globals.Register(rootCmd)

	rootCmd.AddCommand(commands.NewScanCommand(globals))
	rootCmd.AddCommand(commands.NewCheckCommand(globals))
	rootCmd.AddCommand(commands.NewValidateCommand(globals))
	rootCmd.AddCommand(commands.NewLanguagesCommand(globals))
	rootCmd.AddCommand(commands.NewVersionCommand())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
