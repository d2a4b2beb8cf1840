package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/swapdemo/internal/balance"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
)

func newBalanceCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balance <symbol>",
		Short: "Show the simulated balance for a symbol",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			symbol := strings.ToUpper(strings.TrimSpace(args[0]))
			bal := balance.For(symbol)
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), map[string]any{
					"symbol":  symbol,
					"balance": bal,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s balance: %s\n",
				color.CyanString(symbol), quote.FormatAmount(bal, 2))
			return nil
		},
	}
}
