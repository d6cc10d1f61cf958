package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dryice-locator/locator/internal/listings"
)

// ErrInvalidRecords is returned when a listings file has rejected records.
var ErrInvalidRecords = errors.New("listings file has invalid records")

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a listings file before publishing it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := ""
			if len(args) == 1 {
				file = args[0]
			}
			return RunValidate(cmd.OutOrStdout(), listingsPath(file))
		},
	}
}

// RunValidate reports every skipped record in the file at path.
func RunValidate(stdout io.Writer, path string) error {
	result, err := listings.ReadFile(path)
	if err != nil {
		return err
	}
	for _, skipped := range result.Skipped {
		fmt.Fprintf(stdout, "invalid: %s\n", skipped.Error())
	}
	fmt.Fprintf(stdout, "%s: %d valid, %d invalid\n", path, len(result.Listings), len(result.Skipped))
	if len(result.Skipped) > 0 {
		return fmt.Errorf("%w: %d", ErrInvalidRecords, len(result.Skipped))
	}
	return nil
}
