package money

import "fmt"

// Format renders an amount in minor units as a major-unit decimal string
// with two fractional digits: 12000 -> "120.00", 5 -> "0.05", 0 -> "0.00".
// All money arithmetic works on integer cents; the decimal string is only
// ever derived from the integer, never parsed back.
func Format(cents int64) string {
	if cents < 0 {
		return "-" + Format(-cents)
	}
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
