package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rating-engine/core/rating"
)

func quote(t *testing.T, revenue float64, state, business string) Quote {
	t.Helper()
	result, err := rating.NewService(nil).Rate(rating.Request{
		Revenue:  rating.RevenueOf(revenue),
		State:    state,
		Business: business,
	})
	require.NoError(t, err)
	return Quote{QuoteID: "Q-12345", Result: result}
}

func TestGet(t *testing.T) {
	f, err := Get(FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f.Format())

	f, err = Get("")
	require.NoError(t, err)
	assert.Equal(t, FormatCLI, f.Format())

	_, err = Get("html")
	assert.Error(t, err)
}

func TestCLIRenderQuote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cliFormatter{}.RenderQuote(&buf, quote(t, 150000, "oh", "Consulting")))

	out := buf.String()
	assert.Contains(t, out, "Q-12345")
	assert.Contains(t, out, "$199.50")
	assert.Contains(t, out, "$150000.00")
	assert.Contains(t, out, "State Rate (OH):")
	assert.Contains(t, out, "1.9")
	assert.Contains(t, out, "Business Multiplier (consulting):")
	assert.NotContains(t, out, "(DEFAULT)")
}

func TestCLIRenderQuoteMarksFallback(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cliFormatter{}.RenderQuote(&buf, quote(t, 100000, "ZZ", "retail")))

	out := buf.String()
	assert.Contains(t, out, "$200.00")
	assert.Equal(t, 1, strings.Count(out, "(DEFAULT)"))
	assert.Contains(t, out, "2.0 (DEFAULT)")
}

func TestCLIRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, cliFormatter{}.RenderTable(&buf, rating.DefaultTable()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	// header + 10 states + DEFAULT, blank, header + 8 businesses + DEFAULT
	assert.Len(t, lines, 12+1+10)
	assert.True(t, strings.HasPrefix(lines[1], "CA"))
	assert.True(t, strings.HasPrefix(lines[11], rating.DefaultKey))
	assert.Contains(t, buf.String(), "transportation")
}

func TestJSONRenderQuote(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsonFormatter{}.RenderQuote(&buf, quote(t, 100000, "NY", "restaurant")))

	var doc QuoteDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, QuoteDocument{
		Premium: 420,
		QuoteID: "Q-12345",
		Breakdown: BreakdownDocument{
			BaseRate:           2.8,
			StateMultiplier:    2.8,
			BusinessMultiplier: 1.5,
			Revenue:            100000,
		},
	}, doc)
}

func TestJSONRenderTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, jsonFormatter{}.RenderTable(&buf, rating.DefaultTable()))

	var doc TableDocument
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Len(t, doc.States, 11)
	assert.Len(t, doc.Businesses, 9)
	assert.Equal(t, 1.6, doc.Businesses["transportation"])
}
