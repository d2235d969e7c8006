// Package rating - Premium rating core
// Rate tables are built once and never mutated afterwards.
package rating

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"rating-engine/internal/errors"
)

// DefaultKey is the entry used when a state or business has no explicit rate.
const DefaultKey = "DEFAULT"

// Table holds the state rates (per $1000 of revenue) and business multipliers.
type Table struct {
	states     map[string]decimal.Decimal
	businesses map[string]decimal.Decimal
}

// DefaultTable returns the built-in rate table.
func DefaultTable() *Table {
	return &Table{
		states: map[string]decimal.Decimal{
			"CA":       decimal.RequireFromString("2.5"),
			"NY":       decimal.RequireFromString("2.8"),
			"TX":       decimal.RequireFromString("2.0"),
			"FL":       decimal.RequireFromString("2.3"),
			"IL":       decimal.RequireFromString("2.2"),
			"PA":       decimal.RequireFromString("2.1"),
			"OH":       decimal.RequireFromString("1.9"),
			"GA":       decimal.RequireFromString("2.0"),
			"NC":       decimal.RequireFromString("1.8"),
			"MI":       decimal.RequireFromString("2.0"),
			DefaultKey: decimal.RequireFromString("2.0"),
		},
		businesses: map[string]decimal.Decimal{
			"retail":         decimal.RequireFromString("1.0"),
			"restaurant":     decimal.RequireFromString("1.5"),
			"technology":     decimal.RequireFromString("0.8"),
			"construction":   decimal.RequireFromString("2.0"),
			"healthcare":     decimal.RequireFromString("1.3"),
			"manufacturing":  decimal.RequireFromString("1.4"),
			"consulting":     decimal.RequireFromString("0.7"),
			"transportation": decimal.RequireFromString("1.6"),
			DefaultKey:       decimal.RequireFromString("1.0"),
		},
	}
}

// NewTable builds a table from caller-supplied maps. Keys are normalized
// (states upper case, businesses lower case) and both maps must carry a
// positive DEFAULT entry. The inputs are copied.
func NewTable(states, businesses map[string]decimal.Decimal) (*Table, error) {
	s, err := normalize("states", states, strings.ToUpper)
	if err != nil {
		return nil, err
	}
	b, err := normalize("businesses", businesses, strings.ToLower)
	if err != nil {
		return nil, err
	}
	return &Table{states: s, businesses: b}, nil
}

func normalize(name string, in map[string]decimal.Decimal, fold func(string) string) (map[string]decimal.Decimal, error) {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		key := strings.TrimSpace(k)
		if key == "" {
			return nil, errors.Newf(errors.TypeConfig, "%s: empty key", name)
		}
		if strings.EqualFold(key, DefaultKey) {
			key = DefaultKey
		} else {
			key = fold(key)
		}
		if !v.IsPositive() {
			return nil, errors.Newf(errors.TypeConfig, "%s: %s must be positive, got %s", name, key, v)
		}
		if _, dup := out[key]; dup {
			return nil, errors.Newf(errors.TypeConfig, "%s: duplicate key %s", name, key)
		}
		out[key] = v
	}
	if _, ok := out[DefaultKey]; !ok {
		return nil, errors.Newf(errors.TypeConfig, "%s: missing %s entry", name, DefaultKey)
	}
	return out, nil
}

// StateRate resolves the rate for a state code, case-insensitively.
// fallback reports whether the DEFAULT entry was used.
func (t *Table) StateRate(state string) (rate decimal.Decimal, key string, fallback bool) {
	key = strings.ToUpper(state)
	rate, fallback = lookupWithFallback(t.states, key)
	return rate, key, fallback
}

// BusinessMultiplier resolves the multiplier for a business category,
// case-insensitively.
func (t *Table) BusinessMultiplier(business string) (multiplier decimal.Decimal, key string, fallback bool) {
	key = strings.ToLower(business)
	multiplier, fallback = lookupWithFallback(t.businesses, key)
	return multiplier, key, fallback
}

func lookupWithFallback(entries map[string]decimal.Decimal, key string) (decimal.Decimal, bool) {
	if v, ok := entries[key]; ok {
		return v, false
	}
	return entries[DefaultKey], true
}

// States returns a copy of the state rates, DEFAULT included.
func (t *Table) States() map[string]decimal.Decimal {
	return copyEntries(t.states)
}

// Businesses returns a copy of the business multipliers, DEFAULT included.
func (t *Table) Businesses() map[string]decimal.Decimal {
	return copyEntries(t.businesses)
}

// StateCodes returns the named state codes in sorted order, DEFAULT excluded.
func (t *Table) StateCodes() []string {
	return sortedKeys(t.states)
}

// BusinessTypes returns the named business categories in sorted order, DEFAULT excluded.
func (t *Table) BusinessTypes() []string {
	return sortedKeys(t.businesses)
}

func copyEntries(in map[string]decimal.Decimal) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func sortedKeys(in map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		if k != DefaultKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
