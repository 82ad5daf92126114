package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sampleState() EditorState {
	return EditorState{
		Size:            Size{Width: 850, Height: 350},
		BackgroundColor: "#ffffff",
		Fields: []FieldSnapshot{
			{ID: "payee", Type: FieldPayee, Text: "Alice", X: 80, Y: 100, Width: 400, Height: 30, FontSize: 16, FontFamily: "Arial", Color: "#000000", Required: true, TextAlign: AlignLeft},
		},
		BackgroundElements: []BackgroundElement{
			LineElement(Line{X1: 70, Y1: 130, X2: 500, Y2: 130, Stroke: "#cccccc", StrokeWidth: 1}),
			LabelElement(Label{Text: "PAY TO:", X: 20, Y: 125, FontSize: 10, Color: "#666666"}),
		},
		Zoom: 1,
	}
}

func TestEditorStateJSONShape(t *testing.T) {
	data, err := json.Marshal(sampleState())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var generic map[string]any
	if err := json.Unmarshal(data, &generic); err != nil {
		t.Fatalf("unmarshal generic: %v", err)
	}
	for _, key := range []string{"size", "backgroundColor", "fields", "backgroundElements", "zoom"} {
		if _, ok := generic[key]; !ok {
			t.Fatalf("missing top-level key %q in %s", key, data)
		}
	}
	field := generic["fields"].([]any)[0].(map[string]any)
	for _, key := range []string{"id", "type", "text", "x", "y", "width", "height", "fontSize", "fontFamily", "color", "required", "textAlign"} {
		if _, ok := field[key]; !ok {
			t.Fatalf("missing field key %q", key)
		}
	}
	elements := generic["backgroundElements"].([]any)
	if elements[0].(map[string]any)["type"] != "line" || elements[1].(map[string]any)["type"] != "label" {
		t.Fatalf("unexpected element tags: %s", data)
	}
}

func TestEditorStateJSONRoundTrip(t *testing.T) {
	want := sampleState()
	data, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got EditorState
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorStateYAMLRoundTrip(t *testing.T) {
	want := sampleState()
	data, err := yaml.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got EditorState
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestBackgroundElementRejectsUnknownTag(t *testing.T) {
	var el BackgroundElement
	err := json.Unmarshal([]byte(`{"type":"circle","r":3}`), &el)
	if err == nil || !strings.Contains(err.Error(), "circle") {
		t.Fatalf("expected unknown tag error, got %v", err)
	}
	if _, err := json.Marshal(BackgroundElement{}); err == nil {
		t.Fatalf("expected empty element marshal to fail")
	}
}

func TestBackgroundElementsOrder(t *testing.T) {
	bg := Background{
		Labels: []Label{{Text: "A"}},
		Lines:  []Line{{X2: 1}, {X2: 2}},
	}
	elements := bg.Elements()
	kinds := []string{elements[0].Kind(), elements[1].Kind(), elements[2].Kind()}
	if diff := cmp.Diff([]string{"line", "line", "label"}, kinds); diff != "" {
		t.Fatalf("draw order mismatch (-want +got):\n%s", diff)
	}
	back := BackgroundFromElements(elements)
	if len(back.Lines) != 2 || len(back.Labels) != 1 {
		t.Fatalf("unexpected inverse: %#v", back)
	}
}

func TestTemplateCloneIsDeep(t *testing.T) {
	tpl := TemplateConfig{Fields: []FieldConfig{{ID: "a"}}}
	clone := tpl.Clone()
	clone.Fields[0].ID = "b"
	if tpl.Fields[0].ID != "a" {
		t.Fatalf("clone shares field storage")
	}
}
