// Package locale provides the locale-sensitive formatting used by check
// fields: amount-to-words conversion (logographic zh-TW and Latin English rule
// sets), grouped number formatting, long-form dates, lenient parsing of user
// input, and per-locale field placeholders.
//
// Locales are resolved through a Registry constructed by the caller; there is
// no process-wide current language. A tag that matches no registered locale
// resolves to a raw locale whose formatters fall back to plain stringification.
package locale
