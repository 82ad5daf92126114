package canvas

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-checkedit/pkg/field"
	"github.com/goliatone/go-checkedit/pkg/model"
)

// AliasTable lists, per field type, the row keys tried in order when filling a
// field from a data row.
type AliasTable map[model.FieldType][]string

// DefaultAliases accepts Traditional Chinese and English column headers.
func DefaultAliases() AliasTable {
	amount := []string{"金額", "amount", "Amount"}
	return AliasTable{
		model.FieldPayee:        {"收款人", "payee", "Payee"},
		model.FieldAmountNumber: amount,
		model.FieldAmountText:   amount,
		model.FieldDate:         {"日期", "date", "Date"},
		model.FieldMemo:         {"備註", "memo", "Memo"},
		model.FieldSignature:    {"簽名", "signature", "Signature"},
	}
}

// Lookup returns the first non-empty value among the aliases of ft.
func (t AliasTable) Lookup(ft model.FieldType, row map[string]any) (any, bool) {
	for _, key := range t[ft] {
		v, ok := row[key]
		if !ok || v == nil {
			continue
		}
		if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

// PopulateRow fills fields from one data row. Each value goes through the
// regular text path, so amount fields are formatted and spelled out as if
// typed. Date fields without a value get today's date; any other field
// without a value keeps its text. Returns the ids of the fields written.
func (c *Controller) PopulateRow(row map[string]any) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var written []string
	for _, id := range append([]string(nil), c.order...) {
		f := c.fields[id]
		value, ok := c.aliases.Lookup(f.Type(), row)
		var text string
		switch {
		case ok:
			text = c.stringify(value)
		case f.Type() == model.FieldDate:
			text = c.locale.FormatDate(c.now())
		default:
			continue
		}
		if err := c.behaviors.Set(f, field.PropText, text, field.Env{Locale: c.locale, Peers: c.liveLocked()}); err != nil {
			return written, fmt.Errorf("canvas: populate %s: %w", id, err)
		}
		written = append(written, id)
	}
	c.flushLocked()
	return written, nil
}

func (c *Controller) stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case time.Time:
		return c.locale.FormatDate(t)
	case fmt.Stringer:
		return t.String()
	default:
		return fmt.Sprint(v)
	}
}
