package route

import (
	"reflect"
	"testing"
)

func TestFromValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		kind    string
		wrapped bool
		uri     string
	}{
		{"explicit kind", map[string]any{"kind": "log", "message": "hi"}, "log", false, ""},
		{"single key", map[string]any{"log": map[string]any{"message": "hi"}}, "log", true, ""},
		{"single key null body", map[string]any{"stop": nil}, "stop", true, ""},
		{"endpoint shorthand", map[string]any{"to": "log:foo"}, "to", true, "log:foo"},
		{"non-endpoint string", map[string]any{"log": "hello"}, "", false, ""},
		{"several keys", map[string]any{"a": 1, "b": 2}, "", false, ""},
		{"scalar", "oops", "", false, ""},
		{"nil", nil, "", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := FromValue(tt.in)
			if d.Kind() != tt.kind {
				t.Errorf("Kind() = %q, want %q", d.Kind(), tt.kind)
			}
			if d.Wrapped() != tt.wrapped {
				t.Errorf("Wrapped() = %v, want %v", d.Wrapped(), tt.wrapped)
			}
			if got := d.String("uri"); got != tt.uri {
				t.Errorf("String(uri) = %q, want %q", got, tt.uri)
			}
			if !reflect.DeepEqual(d.Raw(), tt.in) {
				t.Errorf("Raw() = %v, want %v", d.Raw(), tt.in)
			}
		})
	}
}

func TestImplied(t *testing.T) {
	bare := Implied(map[string]any{"id": "w1"}, "when")
	if bare.Kind() != "when" || bare.ID() != "w1" {
		t.Errorf("bare body: kind=%q id=%q", bare.Kind(), bare.ID())
	}

	wrapped := Implied(map[string]any{"when": map[string]any{"id": "w2"}}, "when")
	if wrapped.Kind() != "when" || wrapped.ID() != "w2" || !wrapped.Wrapped() {
		t.Errorf("wrapped body: kind=%q id=%q wrapped=%v", wrapped.Kind(), wrapped.ID(), wrapped.Wrapped())
	}

	own := Implied(map[string]any{"kind": "log"}, "when")
	if own.Kind() != "log" {
		t.Errorf("own kind: got %q, want log", own.Kind())
	}

	if d := Implied(42, "when"); d.Kind() != "" {
		t.Errorf("scalar: kind = %q, want empty", d.Kind())
	}
}

func TestDefinitionString(t *testing.T) {
	d := New("x", map[string]any{
		"s": "text",
		"i": 3,
		"f": 1.5,
		"b": true,
		"m": map[string]any{},
	})
	tests := map[string]string{"s": "text", "i": "3", "f": "1.5", "b": "true", "m": "", "missing": ""}
	for key, want := range tests {
		if got := d.String(key); got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestDefinitionSlots(t *testing.T) {
	choice := FromValue(map[string]any{"choice": map[string]any{
		"when": []any{
			map[string]any{"id": "w1", "steps": []any{map[string]any{"log": map[string]any{"id": "l1"}}}},
			map[string]any{"id": "w2"},
		},
		"otherwise": nil,
	}})

	whens := choice.List("when", "when")
	if len(whens) != 2 {
		t.Fatalf("List(when) = %d entries, want 2", len(whens))
	}
	if whens[0].Kind() != "when" || whens[0].ID() != "w1" {
		t.Errorf("when[0] = %q/%q", whens[0].Kind(), whens[0].ID())
	}
	steps := whens[0].Steps()
	if len(steps) != 1 || steps[0].Kind() != "log" || steps[0].ID() != "l1" {
		t.Errorf("when[0].Steps() = %+v", steps)
	}
	if whens[1].Steps() != nil {
		t.Errorf("when[1].Steps() = %v, want nil", whens[1].Steps())
	}

	if _, ok := choice.Slot("otherwise", "otherwise"); ok {
		t.Error("Slot(otherwise) on null value reported present")
	}
	if choice.Has("otherwise") {
		t.Error("Has(otherwise) = true for null value")
	}
	if choice.List("steps", "") != nil {
		t.Error("List(steps) on missing slot should be nil")
	}
}

func TestDefinitionIsZero(t *testing.T) {
	var d Definition
	if !d.IsZero() {
		t.Error("zero Definition.IsZero() = false")
	}
	if FromValue(map[string]any{}).IsZero() {
		t.Error("empty map definition reported zero")
	}
}
