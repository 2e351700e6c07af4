// Package pricing holds the booking price rules. Amounts travel as two-decimal
// strings and are computed in fixed point.
package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	// ScheduledDiscount is taken off the base price of a booking made for later.
	ScheduledDiscount = decimal.RequireFromString("3.00")

	// MaxPreviewPoints caps the points shown in the points-plus-card preview.
	MaxPreviewPoints = decimal.NewFromInt(25)
)

// ErrInvalidAmount is returned for strings that are not decimal amounts.
var ErrInvalidAmount = errors.New("invalid amount")

// ParseAmount parses a decimal money string such as "15.00".
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, fmt.Errorf("%w: empty", ErrInvalidAmount)
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// FormatAmount renders an amount with exactly two decimals.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NormalizeAmount parses and re-formats an amount string.
func NormalizeAmount(s string) (string, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return "", err
	}
	return FormatAmount(d), nil
}

// Discount returns the discount applied for the scheduling choice.
func Discount(isScheduled bool) decimal.Decimal {
	if isScheduled {
		return ScheduledDiscount
	}
	return decimal.Zero
}

// Total is the charged amount for a booking. It is not clamped at zero.
func Total(basePrice decimal.Decimal, isScheduled bool) decimal.Decimal {
	return basePrice.Sub(Discount(isScheduled)).Round(2)
}

// Split is the points-plus-card breakdown shown next to a price.
type Split struct {
	Points     decimal.Decimal
	CardAmount decimal.Decimal
}

// PointsSplit spends up to MaxPreviewPoints of the balance at one point per
// cent. It is only a preview; bookings do not deduct points.
func PointsSplit(total, balance decimal.Decimal) Split {
	points := decimal.Min(MaxPreviewPoints, balance)
	if points.IsNegative() {
		points = decimal.Zero
	}
	return Split{
		Points:     points,
		CardAmount: total.Sub(points.Shift(-2)).Round(2),
	}
}
