package rating

import (
	"fmt"
	"math/rand/v2"
	"regexp"
)

// QuoteIDPattern matches identifiers produced by NewQuoteID.
var QuoteIDPattern = regexp.MustCompile(`^Q-\d{5}$`)

// QuoteIDFunc produces a per-call quote identifier.
type QuoteIDFunc func() string

// NewQuoteID returns a random identifier of the form Q-XXXXX.
// It is a correlation token only and plays no part in the premium.
func NewQuoteID() string {
	return fmt.Sprintf("Q-%05d", rand.IntN(100000))
}
