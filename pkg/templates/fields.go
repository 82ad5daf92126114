package templates

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-checkedit/pkg/model"
)

// Default position for fields added without explicit coordinates.
const (
	DefaultFieldX = 100.0
	DefaultFieldY = 100.0
)

type fieldDefaults struct {
	width, height float64
	fontSize      float64
	family        string
	required      bool
	align         model.TextAlign
}

var typeDefaults = map[model.FieldType]fieldDefaults{
	model.FieldPayee:        {300, 30, 14, arial, true, model.AlignLeft},
	model.FieldAmountNumber: {120, 30, 14, arial, true, model.AlignRight},
	model.FieldAmountText:   {400, 30, 12, jhengHei, true, model.AlignLeft},
	model.FieldDate:         {120, 25, 12, arial, true, model.AlignLeft},
	model.FieldMemo:         {200, 25, 11, arial, false, model.AlignLeft},
	model.FieldSignature:    {180, 50, 11, arial, true, model.AlignLeft},
}

// CreateFieldConfig returns a fresh configuration for a field of type ft at
// (x, y). Ids take the form "<type>_<millis>" and never repeat within a
// catalog.
func (c *Catalog) CreateFieldConfig(ft model.FieldType, x, y float64) (model.FieldConfig, error) {
	d, ok := typeDefaults[ft]
	if !ok {
		return model.FieldConfig{}, fmt.Errorf("%w: %q", ErrUnknownFieldType, ft)
	}
	return model.FieldConfig{
		ID:          string(ft) + "_" + strconv.FormatInt(c.nextStamp(), 10),
		Type:        ft,
		X:           x,
		Y:           y,
		Width:       d.width,
		Height:      d.height,
		FontSize:    d.fontSize,
		FontFamily:  d.family,
		Color:       inkColor,
		Required:    d.required,
		TextAlign:   d.align,
		Placeholder: c.locale.Placeholder(ft),
	}, nil
}
