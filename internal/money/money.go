// Package money formats and parses whole-unit rupee amounts.
//
// Amounts are int64 minor units (whole rupees for this storefront). Formatting
// happens only at the presentation boundary.
package money

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultSymbol is the currency symbol used by the catalog fixture.
const DefaultSymbol = "₹"

// ErrMalformed is returned by Parse when the input is not "<symbol><digits>".
var ErrMalformed = errors.New("malformed price")

var printer = message.NewPrinter(language.English)

// Format renders amount with symbol and thousands grouping, e.g. "₹1,200".
func Format(symbol string, amount int64) string {
	if amount < 0 {
		return "-" + symbol + printer.Sprintf("%d", -amount)
	}
	return symbol + printer.Sprintf("%d", amount)
}

// maxExact is the largest amount a float64 holds without rounding.
const maxExact = 1 << 53

// displayPattern is a currency symbol followed by an amount. Fractional
// amounts are accepted only when they are whole, e.g. "₹120.00".
var displayPattern = regexp.MustCompile(`^[^\d\s+\-.,]+(\d+(?:\.\d+)?)$`)

// Parse strips the leading currency symbol from a display price and returns
// the whole-unit amount. "₹120" -> 120.
func Parse(display string) (int64, error) {
	m := displayPattern.FindStringSubmatch(strings.TrimSpace(display))
	if m == nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, display)
	}
	amount, err := cast.ToFloat64E(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %w", ErrMalformed, display, err)
	}
	if amount != math.Trunc(amount) || amount > maxExact {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, display)
	}
	return cast.ToInt64E(amount)
}
