package output

import (
	"github.com/shopspring/decimal"

	"rating-engine/core/rating"
)

// QuoteDocument is the JSON shape of a quote, shared by the HTTP API and the CLI
type QuoteDocument struct {
	Premium   float64           `json:"premium"`
	QuoteID   string            `json:"quoteId"`
	Breakdown BreakdownDocument `json:"breakdown"`
}

// BreakdownDocument exposes the factors behind a premium
type BreakdownDocument struct {
	BaseRate           float64 `json:"baseRate"`
	StateMultiplier    float64 `json:"stateMultiplier"`
	BusinessMultiplier float64 `json:"businessMultiplier"`
	Revenue            float64 `json:"revenue"`
}

// TableDocument lists the rate table, DEFAULT entries included
type TableDocument struct {
	States     map[string]float64 `json:"states"`
	Businesses map[string]float64 `json:"businesses"`
}

// NewQuoteDocument shapes a rating result for output
func NewQuoteDocument(result *rating.Result, quoteID string) QuoteDocument {
	b := result.Breakdown
	return QuoteDocument{
		Premium: result.Premium.InexactFloat64(),
		QuoteID: quoteID,
		Breakdown: BreakdownDocument{
			BaseRate:           b.BaseRate.InexactFloat64(),
			StateMultiplier:    b.StateMultiplier.InexactFloat64(),
			BusinessMultiplier: b.BusinessMultiplier.InexactFloat64(),
			Revenue:            b.Revenue.InexactFloat64(),
		},
	}
}

// NewTableDocument flattens a rate table for output
func NewTableDocument(table *rating.Table) TableDocument {
	return TableDocument{
		States:     floats(table.States()),
		Businesses: floats(table.Businesses()),
	}
}

func floats(in map[string]decimal.Decimal) map[string]float64 {
	out := make(map[string]float64, len(in))
	for k, v := range in {
		out[k] = v.InexactFloat64()
	}
	return out
}
