package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/search"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

func newTokensCmd(opts *rootOptions) *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:     "tokens",
		Aliases: []string{"ls", "list-tokens"},
		Short:   "List tokens with a usable price",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, tokens, err := opts.loadFeed(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			tokens = search.Filter(tokens, query)
			if opts.jsonOutput {
				if tokens == nil {
					tokens = []types.Token{}
				}
				return printJSON(cmd.OutOrStdout(), tokens)
			}
			displayTokens(cmd.OutOrStdout(), tokens)
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by symbol substring")
	return cmd
}

func displayTokens(w io.Writer, tokens []types.Token) {
	if len(tokens) == 0 {
		fmt.Fprintln(w, "\nNo tokens found matching the criteria.")
		return
	}

	fmt.Fprintln(w, "\n"+strings.Repeat("=", 48))
	fmt.Fprintln(w, color.GreenString("  %-6s %-10s %s", "", "SYMBOL", "PRICE (USD)"))
	fmt.Fprintln(w, strings.Repeat("=", 48))
	for _, t := range tokens {
		fmt.Fprintf(w, "  %-6s %-10s %s\n",
			color.CyanString(pricefeed.Glyph(t.Symbol)),
			t.Symbol,
			quote.FormatUSD(t.Price))
	}
	fmt.Fprintf(w, "\n%d tokens\n", len(tokens))
}
