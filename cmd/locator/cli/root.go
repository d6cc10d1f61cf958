// Package cli implements the locator command tree.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"
)

const defaultListingsPath = "data/listings.json"

// NewRootCommand builds the locator command. Without a subcommand it serves.
func NewRootCommand(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "locator",
		Short:         "Dry ice supplier directory",
		Long:          "locator serves a browsable directory of dry ice suppliers loaded from a static listings file.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.AddCommand(newServeCommand())
	root.AddCommand(newSearchCommand())
	root.AddCommand(newValidateCommand())
	return root
}

// listingsPath prefers the flag, then LISTINGS_PATH, then the default.
func listingsPath(flag string) string {
	if flag != "" {
		return flag
	}
	if env := os.Getenv("LISTINGS_PATH"); env != "" {
		return env
	}
	return defaultListingsPath
}
