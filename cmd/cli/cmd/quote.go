// Package cmd - quote command
package cmd

import (
	"github.com/spf13/cobra"

	"rating-engine/core/output"
	"rating-engine/core/rating"
	"rating-engine/internal/config"
)

var (
	quoteRevenue  float64
	quoteState    string
	quoteBusiness string
	quoteFormat   string
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calculate a premium quote",
	Long: `Calculate an annual premium for one business.

Unknown states and business types are rated with the DEFAULT entries.

Examples:
  rating-engine quote --revenue 50000 --state CA --business retail
  rating-engine quote -r 150000 -s oh -b consulting --format json`,
	Args: cobra.NoArgs,
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().Float64VarP(&quoteRevenue, "revenue", "r", 0, "annual revenue in dollars")
	quoteCmd.Flags().StringVarP(&quoteState, "state", "s", "", "US state code (e.g. CA)")
	quoteCmd.Flags().StringVarP(&quoteBusiness, "business", "b", "", "business type (e.g. retail)")
	quoteCmd.Flags().StringVarP(&quoteFormat, "format", "f", "", "output format (cli, json)")
}

func runQuote(cmd *cobra.Command, args []string) error {
	formatter, err := output.Get(output.Format(formatOrDefault(quoteFormat)))
	if err != nil {
		return err
	}

	svc, err := newService()
	if err != nil {
		return err
	}

	req := rating.Request{State: quoteState, Business: quoteBusiness}
	if cmd.Flags().Changed("revenue") {
		req.Revenue = rating.RevenueOf(quoteRevenue)
	}

	result, err := svc.Rate(req)
	if err != nil {
		return err
	}

	return formatter.RenderQuote(cmd.OutOrStdout(), output.Quote{
		QuoteID: rating.NewQuoteID(),
		Result:  result,
	})
}

func formatOrDefault(format string) string {
	if format != "" {
		return format
	}
	return config.Get().Output.DefaultFormat
}
