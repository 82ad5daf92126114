package locale

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	hanDigits   = []string{"零", "壹", "貳", "參", "肆", "伍", "陸", "柒", "捌", "玖"}
	hanUnits    = []string{"", "拾", "佰", "仟"}
	hanBigUnits = []string{"", "萬", "億", "兆"}

	hundredCents = decimal.NewFromInt(100)
)

const (
	hanCurrency = "元"
	hanJiao     = "角"
	hanFen      = "分"
	hanExact    = "正"
	hanNegative = "負"
	hanZero     = "零元正"
)

// splitAmount separates the whole units from the first two fractional digits.
func splitAmount(amount decimal.Decimal) (whole decimal.Decimal, cents int64) {
	whole = amount.Truncate(0)
	cents = amount.Sub(whole).Mul(hundredCents).Truncate(0).IntPart()
	return whole, cents
}

func chineseWords(amount decimal.Decimal) string {
	if amount.IsZero() {
		return hanZero
	}
	if amount.IsNegative() {
		return hanNegative + chineseWords(amount.Neg())
	}

	whole, cents := splitAmount(amount)
	limit := decimal.New(1, int32(4*len(hanBigUnits)))
	if whole.GreaterThanOrEqual(limit) {
		return amount.String()
	}

	var b strings.Builder
	n := whole.IntPart()
	if n > 0 {
		b.WriteString(chineseInteger(n))
	} else {
		b.WriteString(hanDigits[0])
	}
	b.WriteString(hanCurrency)

	if cents == 0 {
		b.WriteString(hanExact)
		return b.String()
	}
	if jiao := cents / 10; jiao > 0 {
		b.WriteString(hanDigits[jiao] + hanJiao)
	}
	if fen := cents % 10; fen > 0 {
		b.WriteString(hanDigits[fen] + hanFen)
	}
	return b.String()
}

// chineseInteger groups n into base-10,000 segments, each carrying its big
// unit. Empty segments contribute nothing.
func chineseInteger(n int64) string {
	var out string
	for idx := 0; n > 0; idx++ {
		if segment := n % 10000; segment > 0 {
			out = chineseSegment(segment) + hanBigUnits[idx] + out
		}
		n /= 10000
	}
	return out
}

// chineseSegment converts 1..9999. A run of internal zeros collapses to a
// single 零 and trailing zeros are dropped.
func chineseSegment(segment int64) string {
	var out string
	pendingZero := false
	for pos := 0; segment > 0; pos++ {
		digit := segment % 10
		if digit == 0 {
			pendingZero = true
		} else {
			if pendingZero && out != "" {
				out = hanDigits[0] + out
			}
			out = hanDigits[digit] + hanUnits[pos] + out
			pendingZero = false
		}
		segment /= 10
	}
	return out
}

var (
	enOnes   = []string{"", "one", "two", "three", "four", "five", "six", "seven", "eight", "nine"}
	enTeens  = []string{"ten", "eleven", "twelve", "thirteen", "fourteen", "fifteen", "sixteen", "seventeen", "eighteen", "nineteen"}
	enTens   = []string{"", "", "twenty", "thirty", "forty", "fifty", "sixty", "seventy", "eighty", "ninety"}
	enScales = []string{"", "thousand", "million", "billion"}
)

func englishWords(amount decimal.Decimal) string {
	if amount.IsZero() {
		return "Zero dollars"
	}
	if amount.IsNegative() {
		return "Negative " + lowerFirst(englishWords(amount.Neg()))
	}

	whole, cents := splitAmount(amount)
	limit := decimal.New(1, int32(3*len(enScales)))
	if whole.GreaterThanOrEqual(limit) {
		return amount.String()
	}

	n := whole.IntPart()
	words := englishInteger(n)
	if n == 0 {
		words = "zero"
	}
	if n == 1 {
		words += " dollar"
	} else {
		words += " dollars"
	}
	if cents > 0 {
		words += " and " + englishInteger(cents)
		if cents == 1 {
			words += " cent"
		} else {
			words += " cents"
		}
	}
	return upperFirst(words)
}

func englishInteger(n int64) string {
	var parts []string
	for idx := 0; n > 0; idx++ {
		if segment := n % 1000; segment > 0 {
			words := englishSegment(segment)
			if enScales[idx] != "" {
				words += " " + enScales[idx]
			}
			parts = append([]string{words}, parts...)
		}
		n /= 1000
	}
	return strings.Join(parts, " ")
}

func englishSegment(segment int64) string {
	var parts []string
	if hundreds := segment / 100; hundreds > 0 {
		parts = append(parts, enOnes[hundreds]+" hundred")
	}
	switch rem := segment % 100; {
	case rem == 0:
	case rem < 10:
		parts = append(parts, enOnes[rem])
	case rem < 20:
		parts = append(parts, enTeens[rem-10])
	default:
		word := enTens[rem/10]
		if ones := rem % 10; ones > 0 {
			word += "-" + enOnes[ones]
		}
		parts = append(parts, word)
	}
	return strings.Join(parts, " ")
}

func upperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
