package locale

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ParseAmount extracts a numeric amount from user text such as "$1,234.50"
// or "NT$ 1000". Everything but digits, the decimal point and a minus sign is
// discarded before parsing.
func ParseAmount(text string) (decimal.Decimal, bool) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return decimal.Zero, false
	}
	value, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return value, true
}

// ParseDigits is ParseAmount restricted to unsigned input; any minus sign is
// ignored.
func ParseDigits(text string) (decimal.Decimal, bool) {
	return ParseAmount(strings.ReplaceAll(text, "-", ""))
}

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"2006/1/2",
	"01/02/2006",
	"1/2/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2006年1月2日",
	"2006-01-02 15:04:05",
	time.RFC3339,
	rawDateLayout,
}

// ParseDate accepts the date notations users commonly type into a check.
func ParseDate(text string) (time.Time, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
