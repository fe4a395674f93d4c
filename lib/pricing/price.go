package pricing

import (
	"fmt"
	"strconv"
	"strings"
)

var currencyReplacer = strings.NewReplacer(
	"€", "",
	"EUR", "",
	" ", "",
	" ", "",
	"\t", "",
	"\n", "",
)

// Parse converts a locale-formatted price string ("3,49 €", "12.00", "7,5")
// into euros. the comma is treated as the decimal separator. it reports
// false for anything it cannot read instead of failing, a single bad price
// tag should never be more than a skipped item.
func Parse(text string) (float64, bool) {
	cleaned := currencyReplacer.Replace(text)
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, false
	}
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || price < 0 {
		return 0, false
	}
	return price, true
}

// Format renders a price in the canonical two-decimal form used for both
// identity hashing and report cells. never locale-dependent.
func Format(price float64) string {
	return fmt.Sprintf("%.2f", price)
}
