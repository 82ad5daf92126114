package templates

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
)

func fixedClock() func() time.Time {
	now := time.Date(2024, time.March, 1, 9, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestBuiltinTemplatesCarrySixTypedFields(t *testing.T) {
	cat := NewCatalog()
	for _, id := range []string{HongKong, China, US} {
		t.Run(id, func(t *testing.T) {
			cfg, err := cat.Get(id)
			if err != nil {
				t.Fatalf("Get(%s): %v", id, err)
			}
			if len(cfg.Fields) != 6 {
				t.Fatalf("expected 6 fields, got %d", len(cfg.Fields))
			}
			seenIDs := map[string]bool{}
			seenTypes := map[model.FieldType]bool{}
			for _, f := range cfg.Fields {
				if seenIDs[f.ID] {
					t.Fatalf("duplicate id %q", f.ID)
				}
				seenIDs[f.ID] = true
				seenTypes[f.Type] = true
			}
			for _, ft := range model.CheckFieldTypes() {
				if !seenTypes[ft] {
					t.Fatalf("missing field type %s", ft)
				}
			}
			if len(cfg.Background.Lines) != 4 || len(cfg.Background.Labels) != 5 {
				t.Fatalf("unexpected background %d lines / %d labels", len(cfg.Background.Lines), len(cfg.Background.Labels))
			}
			if err := Validate(cfg); err != nil {
				t.Fatalf("built-in fails validation: %v", err)
			}
		})
	}
}

func TestBuiltinLayoutRelativePositions(t *testing.T) {
	cat := NewCatalog()
	for _, id := range []string{HongKong, China, US} {
		cfg, _ := cat.Get(id)
		byType := map[model.FieldType]model.FieldConfig{}
		for _, f := range cfg.Fields {
			byType[f.Type] = f
		}
		date, payee := byType[model.FieldDate], byType[model.FieldPayee]
		number, words := byType[model.FieldAmountNumber], byType[model.FieldAmountText]
		memo, sig := byType[model.FieldMemo], byType[model.FieldSignature]

		if !(date.Y < payee.Y && payee.Y < words.Y && words.Y < memo.Y && memo.Y < sig.Y) {
			t.Fatalf("%s: unexpected vertical order", id)
		}
		if number.Y != payee.Y || number.X <= payee.X {
			t.Fatalf("%s: amount-number should sit right of payee on the same row", id)
		}
		if number.TextAlign != model.AlignRight {
			t.Fatalf("%s: amount-number should be right aligned", id)
		}
		if memo.Required || !payee.Required {
			t.Fatalf("%s: unexpected required flags", id)
		}
		for _, f := range cfg.Fields {
			if f.X+f.Width > cfg.Size.Width || f.Y+f.Height > cfg.Size.Height {
				t.Fatalf("%s: field %s exceeds canvas", id, f.ID)
			}
		}
	}
}

func TestHongKongFixture(t *testing.T) {
	cfg, err := NewCatalog().Get(HongKong)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	want := model.FieldConfig{
		ID: "amount-text", Type: model.FieldAmountText, X: 80, Y: 150, Width: 600, Height: 30,
		FontSize: 14, FontFamily: "Microsoft JhengHei", Color: "#000000", Required: true,
		TextAlign: model.AlignLeft, Placeholder: "壹仟元正",
	}
	if diff := cmp.Diff(want, cfg.Fields[3]); diff != "" {
		t.Fatalf("amount-text mismatch (-want +got):\n%s", diff)
	}
	if cfg.Size != (model.Size{Width: 850, Height: 350}) {
		t.Fatalf("unexpected size %#v", cfg.Size)
	}
}

func TestGetReturnsCopies(t *testing.T) {
	cat := NewCatalog()
	a, _ := cat.Get(US)
	a.Fields[0].X = -1
	b, _ := cat.Get(US)
	if b.Fields[0].X == -1 {
		t.Fatalf("built-in template was mutated through a copy")
	}
	if _, err := cat.Get("zz"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListOrder(t *testing.T) {
	cat := NewCatalog()
	user := model.TemplateConfig{Name: "Mine", Size: model.Size{Width: 10, Height: 10}, Fields: []model.FieldConfig{}}
	if err := cat.Register("b-user", user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := cat.Register("a-user", user); err != nil {
		t.Fatalf("Register: %v", err)
	}
	var ids []string
	for _, s := range cat.List() {
		ids = append(ids, s.ID)
	}
	if diff := cmp.Diff([]string{"hk", "cn", "us", "a-user", "b-user"}, ids); diff != "" {
		t.Fatalf("list order mismatch (-want +got):\n%s", diff)
	}
	if err := cat.Register(HongKong, user); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
	if err := cat.Remove("a-user"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := cat.Remove(US); !errors.Is(err, ErrReadOnly) {
		t.Fatalf("expected ErrReadOnly, got %v", err)
	}
}

func TestCreateFieldConfig(t *testing.T) {
	cat := NewCatalog(WithClock(fixedClock()), WithLocale(locale.English()))
	cfg, err := cat.CreateFieldConfig(model.FieldAmountNumber, 10, 20)
	if err != nil {
		t.Fatalf("CreateFieldConfig: %v", err)
	}
	want := model.FieldConfig{
		ID: "amount-number_1709285400000", Type: model.FieldAmountNumber, X: 10, Y: 20,
		Width: 120, Height: 30, FontSize: 14, FontFamily: "Arial", Color: "#000000",
		Required: true, TextAlign: model.AlignRight, Placeholder: "1,000.00",
	}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	next, _ := cat.CreateFieldConfig(model.FieldAmountNumber, 0, 0)
	if next.ID == cfg.ID {
		t.Fatalf("ids must be unique even with a frozen clock")
	}
	memo, _ := cat.CreateFieldConfig(model.FieldMemo, 0, 0)
	if memo.Required || memo.Placeholder != "Memo" {
		t.Fatalf("unexpected memo defaults %#v", memo)
	}
	if _, err := cat.CreateFieldConfig("bogus", 0, 0); !errors.Is(err, ErrUnknownFieldType) {
		t.Fatalf("expected ErrUnknownFieldType, got %v", err)
	}
}

func TestFromEditorState(t *testing.T) {
	cat := NewCatalog(WithClock(fixedClock()))
	state := model.EditorState{
		Size: model.Size{Width: 400, Height: 200},
		Fields: []model.FieldSnapshot{
			{ID: "p", Type: model.FieldPayee, Text: "Alice", X: 1, Y: 2, Width: 3, Height: 4, FontSize: 5},
		},
		BackgroundElements: []model.BackgroundElement{
			model.LabelElement(model.Label{Text: "PAY"}),
			model.LineElement(model.Line{X2: 10}),
		},
		Zoom: 2,
	}
	cfg := cat.FromEditorState(state, "")
	if cfg.Name != DefaultTemplateName || cfg.BackgroundColor != DefaultBackgroundColor || cfg.Version != FormatVersion {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
	if cfg.Created == nil || !cfg.Created.Equal(fixedClock()()) {
		t.Fatalf("unexpected created %v", cfg.Created)
	}
	if cfg.Fields[0].Text != "" || cfg.Fields[0].TextAlign != model.AlignLeft {
		t.Fatalf("layout should drop text and default alignment: %#v", cfg.Fields[0])
	}
	if len(cfg.Background.Lines) != 1 || len(cfg.Background.Labels) != 1 {
		t.Fatalf("background not split: %#v", cfg.Background)
	}
}

func TestImportRoundTrip(t *testing.T) {
	cat := NewCatalog(WithClock(fixedClock()))
	src, _ := cat.Get(China)
	exported := cat.Export(src)
	data, err := Marshal(exported)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Import(data)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if diff := cmp.Diff(exported, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestImportYAML(t *testing.T) {
	doc := `
name: Payroll
size: {width: 600, height: 250}
backgroundColor: "#fafafa"
fields:
  - id: payee
    type: payee
    x: 40
    y: 80
    width: 300
    height: 30
    fontSize: 14
    fontFamily: Arial
    color: "#000000"
    required: true
    placeholder: "<b>Name</b>"
background:
  lines: [{x1: 0, y1: 0, x2: 10, y2: 0, stroke: "#ccc", strokeWidth: 1}]
  labels: [{text: "PAY", x: 5, y: 5, fontSize: 9, color: "#666"}]
`
	cfg, err := Import([]byte(doc))
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if cfg.Name != "Payroll" || len(cfg.Fields) != 1 || cfg.Fields[0].Placeholder != "Name" {
		t.Fatalf("unexpected template %#v", cfg)
	}
}

func TestImportRejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{name: "missing size", doc: `{"fields": []}`, want: `"size"`},
		{name: "missing fields", doc: `{"size": {"width": 1, "height": 1}}`, want: `"fields"`},
		{name: "not a document", doc: `[1, 2`, want: "invalid JSON or YAML"},
		{name: "empty", doc: `   `, want: "empty"},
		{name: "zero width", doc: `{"size": {"width": 0, "height": 1}, "fields": []}`, want: "Width"},
		{name: "duplicate ids", doc: `{"size": {"width": 1, "height": 1}, "fields": [{"id": "a", "type": "memo"}, {"id": "a", "type": "memo"}]}`, want: "unique"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Import([]byte(tc.doc))
			if !errors.Is(err, ErrInvalidTemplate) {
				t.Fatalf("expected ErrInvalidTemplate, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q in %v", tc.want, err)
			}
		})
	}
}

func TestLoadFS(t *testing.T) {
	fsys := fstest.MapFS{
		"user/payroll.json": {Data: []byte(`{"name": "Payroll", "size": {"width": 500, "height": 200}, "fields": []}`)},
		"user/notes.txt":    {Data: []byte("ignored")},
		"vendor.yaml":       {Data: []byte("name: Vendor\nsize: {width: 300, height: 100}\nfields: []\n")},
	}
	cat := NewCatalog()
	loaded, err := cat.LoadFS(fsys)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if diff := cmp.Diff([]string{"payroll", "vendor"}, loaded); diff != "" {
		t.Fatalf("loaded mismatch (-want +got):\n%s", diff)
	}
	if _, err := cat.Get("vendor"); err != nil {
		t.Fatalf("Get(vendor): %v", err)
	}

	clash := fstest.MapFS{"hk.json": {Data: []byte(`{"size": {"width": 1, "height": 1}, "fields": []}`)}}
	if _, err := NewCatalog().LoadFS(clash); err == nil || !strings.Contains(err.Error(), "duplicate") {
		t.Fatalf("expected duplicate error, got %v", err)
	}
}
