package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rovshanmuradov/swapdemo/internal/config"
	"github.com/rovshanmuradov/swapdemo/internal/logger"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

type rootOptions struct {
	configPath string
	jsonOutput bool
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "swapcli",
		Short: "Quote token swaps against a public price feed",
		Long: `swapcli loads the token price feed and prices swaps between any two
listed tokens using USD cross rates. Balances are simulated.

Examples:
  swapcli tokens
  swapcli tokens --query eth
  swapcli quote 2 ETH USDC --slippage-bps 100
  swapcli balance SWTH`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to config file (optional)")
	root.PersistentFlags().BoolVarP(&opts.jsonOutput, "json", "j", false, "Output in JSON format")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose output")

	root.AddCommand(
		newTokensCmd(opts),
		newQuoteCmd(opts),
		newBalanceCmd(opts),
	)
	return root
}

// loadFeed fetches and normalizes the feed, showing a spinner unless JSON
// output was requested.
func (o *rootOptions) loadFeed(ctx context.Context, stderr io.Writer) (*config.Config, []types.Token, error) {
	cfg, err := config.LoadConfig(o.configPath)
	if err != nil {
		return nil, nil, err
	}

	log := zap.NewNop()
	if o.verbose {
		if log, err = logger.CreatePrettyLogger(cfg.DebugLogging); err != nil {
			return nil, nil, err
		}
		defer func() { _ = log.Sync() }()
	}

	loader := pricefeed.NewLoader(
		pricefeed.NewClient(cfg.FeedClientConfig(), log),
		pricefeed.NewNormalizer(cfg.IconBaseURL, log),
		log,
	)

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(stderr))
	if !o.jsonOutput {
		s.Suffix = " Fetching prices..."
		s.Start()
	}
	res, err := loader.Load(ctx)
	if !o.jsonOutput {
		s.Stop()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("load price feed: %w", err)
	}
	return cfg, res.Tokens, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(w io.Writer, err error) {
	fmt.Fprintf(w, "\n%s %v\n\n", color.RedString("Error:"), err)
}
