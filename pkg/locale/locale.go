package locale

import (
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Tags for the built-in locales.
const (
	TagTraditionalChinese = "zh-TW"
	TagEnglish            = "en"

	// DefaultTag is used when callers do not pick a locale.
	DefaultTag = TagTraditionalChinese
)

// rawDateLayout mirrors a plain Date.toDateString style rendering.
const rawDateLayout = "Mon Jan 02 2006"

// Locale bundles the formatting rules for one language.
type Locale struct {
	tag          language.Tag
	name         string
	words        func(decimal.Decimal) string
	date         func(time.Time) string
	placeholders map[model.FieldType]string
}

// Raw returns a locale without formatting data. Every formatter falls back to
// plain stringification.
func Raw(tag string) *Locale {
	parsed, err := language.Parse(tag)
	if err != nil {
		parsed = language.Und
	}
	return &Locale{tag: parsed, name: tag}
}

// TraditionalChinese returns the zh-TW locale (logographic amount words).
func TraditionalChinese() *Locale {
	return &Locale{
		tag:   language.MustParse(TagTraditionalChinese),
		name:  "繁體中文",
		words: chineseWords,
		date: func(t time.Time) string {
			return t.Format("2006年1月2日")
		},
		placeholders: map[model.FieldType]string{
			model.FieldPayee:        "收款人姓名",
			model.FieldAmountNumber: "1,000.00",
			model.FieldAmountText:   "壹仟元正",
			model.FieldDate:         "2024年1月1日",
			model.FieldMemo:         "備註說明",
			model.FieldSignature:    "簽名",
		},
	}
}

// English returns the en locale (Latin amount words).
func English() *Locale {
	return &Locale{
		tag:   language.English,
		name:  "English",
		words: englishWords,
		date: func(t time.Time) string {
			return t.Format("January 2, 2006")
		},
		placeholders: map[model.FieldType]string{
			model.FieldPayee:        "Payee Name",
			model.FieldAmountNumber: "1,000.00",
			model.FieldAmountText:   "One Thousand Dollars",
			model.FieldDate:         "January 1, 2024",
			model.FieldMemo:         "Memo",
			model.FieldSignature:    "Signature",
		},
	}
}

// Tag returns the BCP-47 tag of the locale.
func (l *Locale) Tag() string {
	if l == nil {
		return language.Und.String()
	}
	return l.tag.String()
}

// Name returns the display name of the locale.
func (l *Locale) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// AmountToWords spells out a currency amount. Cents beyond two digits are
// truncated, not rounded.
func (l *Locale) AmountToWords(amount decimal.Decimal) string {
	if l == nil || l.words == nil {
		return amount.String()
	}
	return l.words(amount)
}

// AmountFloatToWords is a convenience wrapper for callers holding a float.
func (l *Locale) AmountFloatToWords(amount float64) string {
	return l.AmountToWords(decimal.NewFromFloat(amount))
}

// FormatNumber renders n with the locale's digit grouping, e.g. "1,234.5".
func (l *Locale) FormatNumber(n decimal.Decimal) string {
	if l == nil || l.words == nil {
		return n.String()
	}
	p := message.NewPrinter(l.tag)
	return p.Sprint(number.Decimal(n.InexactFloat64()))
}

// FormatDate renders t in the locale's long date form.
func (l *Locale) FormatDate(t time.Time) string {
	if l == nil || l.date == nil {
		return t.Format(rawDateLayout)
	}
	return l.date(t)
}

// Placeholder returns the hint text shown in an empty field of type ft.
func (l *Locale) Placeholder(ft model.FieldType) string {
	if l == nil {
		return ""
	}
	return l.placeholders[ft]
}
