// Package output provides output formatting for quotes and rate tables.
// This package produces human and machine-readable outputs.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"rating-engine/core/rating"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Quote is a rated request together with its quote identifier
type Quote struct {
	QuoteID string
	Result  *rating.Result
}

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// RenderQuote writes a single quote
	RenderQuote(w io.Writer, quote Quote) error

	// RenderTable writes the rate table
	RenderTable(w io.Writer, table *rating.Table) error
}

// Get returns the formatter for format
func Get(format Format) (Formatter, error) {
	switch format {
	case FormatCLI, "":
		return cliFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want cli or json)", format)
	}
}

type cliFormatter struct{}

func (cliFormatter) Format() Format { return FormatCLI }

func (cliFormatter) RenderQuote(w io.Writer, q Quote) error {
	b := q.Result.Breakdown
	r := q.Result.Resolution

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Quote ID:\t%s\n", q.QuoteID)
	fmt.Fprintf(tw, "Annual Premium:\t$%s\n", q.Result.Premium.StringFixed(2))
	fmt.Fprintln(tw)
	fmt.Fprintf(tw, "Revenue:\t$%s\n", b.Revenue.StringFixed(2))
	fmt.Fprintf(tw, "State Rate (%s):\t%s%s\n", r.StateKey, rateString(b.StateMultiplier), fallbackNote(r.StateFallback))
	fmt.Fprintf(tw, "Business Multiplier (%s):\t%s%s\n", r.BusinessKey, rateString(b.BusinessMultiplier), fallbackNote(r.BusinessFallback))
	return tw.Flush()
}

func fallbackNote(fallback bool) string {
	if fallback {
		return " (DEFAULT)"
	}
	return ""
}

func (cliFormatter) RenderTable(w io.Writer, table *rating.Table) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(tw, "STATE\tRATE PER $1000")
	writeEntries(tw, table.StateCodes(), table.States())
	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "BUSINESS\tMULTIPLIER")
	writeEntries(tw, table.BusinessTypes(), table.Businesses())

	return tw.Flush()
}

func writeEntries(w io.Writer, keys []string, entries map[string]decimal.Decimal) {
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%s\n", k, rateString(entries[k]))
	}
	fmt.Fprintf(w, "%s\t%s\n", rating.DefaultKey, rateString(entries[rating.DefaultKey]))
}

// rateString keeps at least one decimal place so 2.0 does not print as 2.
func rateString(v decimal.Decimal) string {
	if v.Exponent() < -1 {
		return v.String()
	}
	return v.StringFixed(1)
}

type jsonFormatter struct{}

func (jsonFormatter) Format() Format { return FormatJSON }

func (jsonFormatter) RenderQuote(w io.Writer, q Quote) error {
	return encode(w, NewQuoteDocument(q.Result, q.QuoteID))
}

func (jsonFormatter) RenderTable(w io.Writer, table *rating.Table) error {
	return encode(w, NewTableDocument(table))
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
