package templates

import "github.com/goliatone/go-checkedit/pkg/model"

// Built-in template ids.
const (
	HongKong = "hk"
	China    = "cn"
	US       = "us"
)

const (
	lineStroke = "#cccccc"
	labelColor = "#666666"
	inkColor   = "#000000"
	arial      = "Arial"
	jhengHei   = "Microsoft JhengHei"
)

func line(x1, y1, x2, y2 float64) model.Line {
	return model.Line{X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: lineStroke, StrokeWidth: 1}
}

func label(text string, x, y, size float64) model.Label {
	return model.Label{Text: text, X: x, Y: y, FontSize: size, Color: labelColor}
}

type fieldSpec struct {
	ft          model.FieldType
	x, y, w, h  float64
	fontSize    float64
	family      string
	placeholder string
}

func (s fieldSpec) config() model.FieldConfig {
	cfg := model.FieldConfig{
		ID:          string(s.ft),
		Type:        s.ft,
		X:           s.x,
		Y:           s.y,
		Width:       s.w,
		Height:      s.h,
		FontSize:    s.fontSize,
		FontFamily:  s.family,
		Color:       inkColor,
		Placeholder: s.placeholder,
		Required:    s.ft != model.FieldMemo,
		TextAlign:   model.AlignLeft,
	}
	if s.ft == model.FieldAmountNumber {
		cfg.TextAlign = model.AlignRight
	}
	return cfg
}

func fields(specs ...fieldSpec) []model.FieldConfig {
	out := make([]model.FieldConfig, len(specs))
	for i, s := range specs {
		out[i] = s.config()
	}
	return out
}

// builtins returns fresh copies of the regional layouts in listing order.
func builtins() []entry {
	return []entry{
		{id: HongKong, cfg: model.TemplateConfig{
			Name:            "Hong Kong Check",
			NameLocal:       "香港支票",
			Size:            model.Size{Width: 850, Height: 350},
			BackgroundColor: "#ffffff",
			Fields: fields(
				fieldSpec{model.FieldDate, 680, 40, 150, 30, 14, arial, "2024年1月1日"},
				fieldSpec{model.FieldPayee, 80, 100, 400, 30, 16, arial, "收款人姓名"},
				fieldSpec{model.FieldAmountNumber, 650, 100, 150, 30, 16, arial, "1,000.00"},
				fieldSpec{model.FieldAmountText, 80, 150, 600, 30, 14, jhengHei, "壹仟元正"},
				fieldSpec{model.FieldMemo, 80, 200, 300, 30, 12, arial, "備註說明"},
				fieldSpec{model.FieldSignature, 600, 250, 200, 60, 12, arial, "簽名"},
			),
			Background: model.Background{
				Lines: []model.Line{
					line(70, 130, 500, 130),
					line(70, 180, 700, 180),
					line(70, 230, 400, 230),
					line(590, 280, 810, 280),
				},
				Labels: []model.Label{
					label("PAY TO:", 20, 125, 10),
					label("HK$:", 620, 125, 10),
					label("DATE:", 650, 35, 10),
					label("MEMO:", 20, 225, 10),
					label("SIGNATURE:", 590, 275, 10),
				},
			},
		}},
		{id: China, cfg: model.TemplateConfig{
			Name:            "China Check",
			NameLocal:       "中國支票",
			Size:            model.Size{Width: 800, Height: 360},
			BackgroundColor: "#ffffff",
			Fields: fields(
				fieldSpec{model.FieldDate, 600, 50, 150, 30, 14, jhengHei, "2024年1月1日"},
				fieldSpec{model.FieldPayee, 100, 110, 350, 30, 16, jhengHei, "收款人姓名"},
				fieldSpec{model.FieldAmountNumber, 580, 110, 150, 30, 16, arial, "1,000.00"},
				fieldSpec{model.FieldAmountText, 100, 170, 550, 30, 14, jhengHei, "人民幣壹仟元整"},
				fieldSpec{model.FieldMemo, 100, 230, 300, 30, 12, jhengHei, "用途"},
				fieldSpec{model.FieldSignature, 550, 270, 180, 60, 12, jhengHei, "出票人簽章"},
			),
			Background: model.Background{
				Lines: []model.Line{
					line(90, 140, 470, 140),
					line(90, 200, 670, 200),
					line(90, 260, 420, 260),
					line(540, 310, 740, 310),
				},
				Labels: []model.Label{
					label("收款人:", 40, 135, 10),
					label("人民幣:", 520, 135, 10),
					label("出票日期:", 540, 45, 10),
					label("用途:", 40, 255, 10),
					label("出票人簽章:", 540, 305, 10),
				},
			},
		}},
		{id: US, cfg: model.TemplateConfig{
			Name:            "US Check",
			NameLocal:       "美國支票",
			Size:            model.Size{Width: 820, Height: 320},
			BackgroundColor: "#ffffff",
			Fields: fields(
				fieldSpec{model.FieldDate, 650, 30, 150, 25, 12, arial, "January 1, 2024"},
				fieldSpec{model.FieldPayee, 80, 80, 400, 25, 14, arial, "Payee Name"},
				fieldSpec{model.FieldAmountNumber, 620, 80, 150, 25, 14, arial, "$1,000.00"},
				fieldSpec{model.FieldAmountText, 80, 130, 550, 25, 12, arial, "One Thousand Dollars"},
				fieldSpec{model.FieldMemo, 80, 180, 250, 25, 11, arial, "Memo"},
				fieldSpec{model.FieldSignature, 550, 220, 220, 50, 11, arial, "Signature"},
			),
			Background: model.Background{
				Lines: []model.Line{
					line(70, 105, 500, 105),
					line(70, 155, 650, 155),
					line(70, 205, 350, 205),
					line(540, 250, 780, 250),
				},
				Labels: []model.Label{
					label("PAY TO THE ORDER OF:", 20, 100, 9),
					label("$", 610, 100, 12),
					label("DATE:", 620, 25, 9),
					label("MEMO:", 20, 200, 9),
					label("SIGNATURE:", 540, 245, 9),
				},
			},
		}},
	}
}
