package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dryice-locator/locator/internal/listings"
)

// SearchOptions mirrors the directory controls.
type SearchOptions struct {
	File     string
	Query    string
	Type     string
	Form     string
	Featured bool
	JSON     bool
}

func newSearchCommand() *cobra.Command {
	var opts SearchOptions
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Filter the listings file from the terminal",
		Example: `  locator search -q rockford
  locator search --type "Welding Supply" --form Pellets --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return RunSearch(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.File, "file", "", "listings file (default $LISTINGS_PATH or "+defaultListingsPath+")")
	flags.StringVarP(&opts.Query, "query", "q", "", "free-text search over name, address, notes, type and forms")
	flags.StringVar(&opts.Type, "type", listings.OptionAll, "supplier type: "+strings.Join(listings.TypeOptions(), ", "))
	flags.StringVar(&opts.Form, "form", listings.OptionAll, "dry ice form: "+strings.Join(listings.FormOptions(), ", "))
	flags.BoolVar(&opts.Featured, "featured", false, "only featured suppliers")
	flags.BoolVar(&opts.JSON, "json", false, "print results as JSON")
	return cmd
}

// RunSearch loads the file, applies the filter and prints the matches.
func RunSearch(stdout, stderr io.Writer, opts SearchOptions) error {
	filter := listings.Filter{
		Query:        opts.Query,
		Type:         opts.Type,
		Form:         opts.Form,
		FeaturedOnly: opts.Featured,
	}
	if err := filter.Validate(); err != nil {
		return err
	}

	path := listingsPath(opts.File)
	result, err := listings.ReadFile(path)
	if err != nil {
		return err
	}
	if len(result.Skipped) > 0 {
		fmt.Fprintf(stderr, "warning: %d invalid record(s) skipped; run `locator validate %s`\n", len(result.Skipped), path)
	}

	matched := listings.Apply(result.Listings, filter)
	if opts.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(matched)
	}

	if len(matched) == 0 {
		fmt.Fprintln(stdout, "No results. Try clearing filters or broadening your search.")
		return nil
	}
	tw := tabwriter.NewWriter(stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tTYPE\tFORMS\tLOCATION\tPHONE\tMIN\tPRICE")
	for _, card := range listings.NewCards(matched) {
		name := card.Name
		if card.Featured {
			name += " *"
		}
		location := strings.TrimSpace(strings.Join([]string{card.City, card.State}, " "))
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			name,
			dash(card.SupplierType),
			dash(strings.Join(card.Forms, ", ")),
			dash(location),
			dash(card.Phone),
			card.MinOrder,
			card.Price,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "\n%d of %d suppliers\n", len(matched), len(result.Listings))
	return nil
}

func dash(s string) string {
	if s == "" {
		return "—"
	}
	return s
}
