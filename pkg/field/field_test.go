package field

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-checkedit/pkg/locale"
	"github.com/goliatone/go-checkedit/pkg/model"
)

func TestNewAppliesDefaults(t *testing.T) {
	f := New(model.FieldConfig{ID: "memo_1", Type: model.FieldMemo, X: 0, Y: 5})
	got := f.Snapshot()
	want := model.FieldSnapshot{
		ID:         "memo_1",
		Type:       model.FieldMemo,
		X:          0,
		Y:          5,
		Width:      DefaultWidth,
		Height:     DefaultHeight,
		FontSize:   DefaultFontSize,
		FontFamily: DefaultFontFamily,
		Color:      DefaultColor,
		TextAlign:  model.AlignLeft,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if !f.Dirty() {
		t.Fatalf("new field should be dirty until rendered")
	}
}

func TestNewUnknownTypeIsFreeForm(t *testing.T) {
	f := New(model.FieldConfig{ID: "x", Type: "bogus", Text: "hello"})
	if f.Type() != model.FieldText || f.Text() != "hello" {
		t.Fatalf("unexpected field %#v", f.Snapshot())
	}
	if _, _, ok := NewBehaviors().Resolve(f); ok {
		t.Fatalf("free-form field must be inert")
	}
}

func TestNewGeneratesID(t *testing.T) {
	a := New(model.FieldConfig{Type: model.FieldPayee})
	b := New(model.FieldConfig{Type: model.FieldPayee})
	if a.ID() == "" || a.ID() == b.ID() {
		t.Fatalf("expected distinct generated ids, got %q and %q", a.ID(), b.ID())
	}
}

func TestSetProperty(t *testing.T) {
	f := New(model.FieldConfig{ID: "p", Type: model.FieldPayee})
	f.MarkClean()

	steps := []struct {
		key   string
		value any
	}{
		{PropText, "Alice"},
		{PropX, 12},
		{PropY, "34.5"},
		{PropWidth, 300.0},
		{PropHeight, float32(40)},
		{PropFontSize, int64(18)},
		{PropFontFamily, "Helvetica"},
		{PropColor, "#ff0000"},
		{PropTextAlign, "center"},
		{PropRequired, "false"},
		{PropPlaceholder, "Name"},
	}
	for _, step := range steps {
		if err := f.SetProperty(step.key, step.value); err != nil {
			t.Fatalf("SetProperty(%s): %v", step.key, err)
		}
	}
	want := model.FieldSnapshot{
		ID: "p", Type: model.FieldPayee, Text: "Alice", X: 12, Y: 34.5, Width: 300, Height: 40,
		FontSize: 18, FontFamily: "Helvetica", Color: "#ff0000", TextAlign: model.AlignCenter,
		Required: false, Placeholder: "Name",
	}
	if diff := cmp.Diff(want, f.Snapshot()); diff != "" {
		t.Fatalf("snapshot mismatch (-want +got):\n%s", diff)
	}
	if !f.Dirty() {
		t.Fatalf("mutation should mark field dirty")
	}
}

func TestSetPropertyErrors(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		want  error
	}{
		{name: "immutable type", key: PropType, value: "memo", want: ErrImmutableProperty},
		{name: "immutable id", key: PropID, value: "other", want: ErrImmutableProperty},
		{name: "unknown key", key: "opacity", value: 1.0, want: ErrUnknownProperty},
		{name: "wrong type", key: PropFontSize, value: true, want: ErrInvalidValue},
		{name: "non positive width", key: PropWidth, value: 0, want: ErrInvalidValue},
		{name: "bad align", key: PropTextAlign, value: "justify", want: ErrInvalidValue},
		{name: "text not string", key: PropText, value: 42, want: ErrInvalidValue},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := New(model.FieldConfig{ID: "p", Type: model.FieldPayee, Text: "keep"})
			before := f.Snapshot()
			err := f.SetProperty(tc.key, tc.value)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if diff := cmp.Diff(before, f.Snapshot()); diff != "" {
				t.Fatalf("failed SetProperty mutated field (-want +got):\n%s", diff)
			}
		})
	}
}

func canvasFields() (number, words, other, date *Field, peers []*Field) {
	number = New(model.FieldConfig{ID: "n", Type: model.FieldAmountNumber})
	words = New(model.FieldConfig{ID: "w1", Type: model.FieldAmountText})
	other = New(model.FieldConfig{ID: "w2", Type: model.FieldAmountText})
	date = New(model.FieldConfig{ID: "d", Type: model.FieldDate})
	return number, words, other, date, []*Field{number, words, other, date}
}

func TestAmountNumberPropagates(t *testing.T) {
	tests := []struct {
		name       string
		loc        *locale.Locale
		wantNumber string
		wantWords  string
	}{
		{name: "zh-TW", loc: locale.TraditionalChinese(), wantNumber: "1,000", wantWords: "壹仟元正"},
		{name: "en", loc: locale.English(), wantNumber: "1,000", wantWords: "One thousand dollars"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			number, words, other, _, peers := canvasFields()
			b := NewBehaviors()
			if err := b.Set(number, PropText, "1000", Env{Locale: tc.loc, Peers: peers}); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if number.Text() != tc.wantNumber {
				t.Fatalf("number text = %q, want %q", number.Text(), tc.wantNumber)
			}
			for _, w := range []*Field{words, other} {
				if w.Text() != tc.wantWords {
					t.Fatalf("%s text = %q, want %q", w.ID(), w.Text(), tc.wantWords)
				}
			}
		})
	}
}

func TestAmountNumberParseFailureLeavesText(t *testing.T) {
	number, words, _, _, peers := canvasFields()
	words.SetText("previous")
	b := NewBehaviors()
	if err := b.Set(number, PropText, "abc", Env{Locale: locale.English(), Peers: peers}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if number.Text() != "abc" || words.Text() != "previous" {
		t.Fatalf("parse failure changed text: %q / %q", number.Text(), words.Text())
	}
}

func TestAmountTextConvertsOwnDigits(t *testing.T) {
	_, words, _, _, peers := canvasFields()
	b := NewBehaviors()
	env := Env{Locale: locale.TraditionalChinese(), Peers: peers}
	if err := b.Set(words, PropText, "250", env); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if words.Text() != "貳佰伍拾元正" {
		t.Fatalf("amount-text = %q", words.Text())
	}
	if err := b.Set(words, PropText, "0", env); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if words.Text() != "0" {
		t.Fatalf("zero should not convert, got %q", words.Text())
	}
}

func TestDateNormalises(t *testing.T) {
	_, _, _, date, peers := canvasFields()
	b := NewBehaviors()
	env := Env{Locale: locale.English(), Peers: peers}
	if err := b.Set(date, PropText, "2024-01-15", env); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if date.Text() != "January 15, 2024" {
		t.Fatalf("date = %q", date.Text())
	}
	// Idempotent on its own output.
	if err := b.Set(date, PropText, date.Text(), env); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if date.Text() != "January 15, 2024" {
		t.Fatalf("date changed on reapply: %q", date.Text())
	}
	if err := b.Set(date, PropText, "next friday", env); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if date.Text() != "next friday" {
		t.Fatalf("unparseable date rewritten: %q", date.Text())
	}
}

func TestBehaviorsPriority(t *testing.T) {
	b := NewBehaviors()
	b.Register("shout", 10, MatchType(model.FieldDate), func(f *Field, _ Env) { f.SetText("!") })
	f := New(model.FieldConfig{ID: "d", Type: model.FieldDate})
	name, _, ok := b.Resolve(f)
	if !ok || name != "shout" {
		t.Fatalf("expected higher priority rule, got %q", name)
	}
	if err := b.Set(f, PropText, "2024-01-01", Env{}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if f.Text() != "!" {
		t.Fatalf("override not applied: %q", f.Text())
	}
}

func TestNonTextPropertyDoesNotReact(t *testing.T) {
	number, words, _, _, peers := canvasFields()
	number.SetText("1000")
	b := NewBehaviors()
	if err := b.Set(number, PropFontSize, 20, Env{Locale: locale.English(), Peers: peers}); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if words.Text() != "" {
		t.Fatalf("style change triggered reaction: %q", words.Text())
	}
}
