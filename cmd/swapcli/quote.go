package main

import (
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/rovshanmuradov/swapdemo/internal/balance"
	"github.com/rovshanmuradov/swapdemo/internal/pricefeed"
	"github.com/rovshanmuradov/swapdemo/internal/quote"
	"github.com/rovshanmuradov/swapdemo/internal/session"
	"github.com/rovshanmuradov/swapdemo/internal/types"
)

type quoteOutput struct {
	TokenIn     string   `json:"tokenIn"`
	TokenOut    string   `json:"tokenOut"`
	AmountIn    *float64 `json:"amountIn"`
	Rate        *float64 `json:"rate"`
	AmountOut   *float64 `json:"amountOut"`
	MinReceived *float64 `json:"minReceived"`
	InputUSD    *float64 `json:"inputUsd"`
	OutputUSD   *float64 `json:"outputUsd"`
	SlippageBps int      `json:"slippageBps"`
	Balance     *float64 `json:"balance"`
	OK          bool     `json:"ok"`
	Reason      string   `json:"reason,omitempty"`
}

func newQuoteCmd(opts *rootOptions) *cobra.Command {
	var slippageBps int

	cmd := &cobra.Command{
		Use:   "quote <amount> <token-in> <token-out>",
		Short: "Price a swap and check it against the simulated balance",
		Long: `Price a swap of <amount> <token-in> into <token-out>.

Examples:
  swapcli quote 2 ETH USDC
  swapcli quote 100 SWTH ETH --slippage-bps 150`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, tokens, err := opts.loadFeed(cmd.Context(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("slippage-bps") {
				slippageBps = cfg.DefaultSlippageBps
			}

			sess := session.New(slippageBps)
			sess.LoadTokens(tokens)
			if !sess.PickIn(args[1]) {
				return fmt.Errorf("unknown token %q", args[1])
			}
			if !sess.PickOut(args[2]) {
				return fmt.Errorf("unknown token %q", args[2])
			}
			sess.SetAmountText(args[0])
			sess.SettleAmount(args[0])

			out := buildQuoteOutput(sess)
			if opts.jsonOutput {
				return printJSON(cmd.OutOrStdout(), out)
			}
			displayQuote(cmd.OutOrStdout(), sess, out)
			return nil
		},
	}
	cmd.Flags().IntVar(&slippageBps, "slippage-bps", types.DefaultSlippageBps,
		fmt.Sprintf("Slippage tolerance in basis points (%d-%d)", types.MinSlippageBps, types.MaxSlippageBps))
	return cmd
}

func buildQuoteOutput(sess *session.Session) quoteOutput {
	q := sess.Quote()
	v := sess.Verdict()
	return quoteOutput{
		TokenIn:     sess.TokenIn().Symbol,
		TokenOut:    sess.TokenOut().Symbol,
		AmountIn:    finite(sess.LiveAmount()),
		Rate:        finite(q.Rate),
		AmountOut:   finite(q.AmountOut),
		MinReceived: finite(q.MinReceived),
		InputUSD:    finite(q.InputUSD),
		OutputUSD:   finite(q.OutputUSD),
		SlippageBps: sess.Slippage(),
		Balance:     finite(balance.For(sess.TokenIn().Symbol)),
		OK:          v.OK,
		Reason:      v.Reason,
	}
}

// finite maps NaN and infinities to nil so they encode as null.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func displayQuote(w io.Writer, sess *session.Session, out quoteOutput) {
	q := sess.Quote()
	in, dst := sess.TokenIn(), sess.TokenOut()

	fmt.Fprintln(w)
	fmt.Fprintf(w, "  %s %s  →  %s %s\n",
		color.CyanString(pricefeed.Glyph(in.Symbol)), in.Symbol,
		color.CyanString(pricefeed.Glyph(dst.Symbol)), dst.Symbol)
	fmt.Fprintf(w, "  You pay:       %s %s (%s)\n", quote.FormatAmount(sess.LiveAmount(), 6), in.Symbol, quote.FormatUSD(q.InputUSD))
	fmt.Fprintf(w, "  You receive:   %s %s (%s)\n", quote.FormatAmount(q.AmountOut, 6), dst.Symbol, quote.FormatUSD(q.OutputUSD))
	fmt.Fprintf(w, "  Rate:          %s\n", quote.FormatRate(in.Symbol, dst.Symbol, q.Rate))
	fmt.Fprintf(w, "  Slippage:      %.2f%%\n", types.SlippagePercent(out.SlippageBps))
	fmt.Fprintf(w, "  Min received:  %s %s\n", quote.FormatAmount(q.MinReceived, 6), dst.Symbol)
	fmt.Fprintf(w, "  Balance:       %s %s\n", quote.FormatAmount(sess.Balance(), 2), in.Symbol)
	fmt.Fprintln(w)

	if out.OK {
		color.New(color.FgGreen).Fprintln(w, "  ✓ Ready to swap")
	} else {
		color.New(color.FgYellow).Fprintf(w, "  ✗ %s\n", out.Reason)
	}
	fmt.Fprintln(w)
}
