package route

import "strconv"

// KindField is the explicit kind property of a step.
const KindField = "kind"

// StepsSlot holds the ordered children of a branch-bearing step.
const StepsSlot = "steps"

// Definition is a read-only view of one processing step.
//
// The zero value is a valid, empty definition with no kind. Steps whose shape
// is not understood keep their decoded value in [Definition.Raw] and report
// an empty kind, so they still take part in graph construction.
type Definition struct {
	kind    string
	body    map[string]any
	raw     any
	wrapped bool
}

// New creates a definition with an explicit kind and body.
func New(kind string, body map[string]any) Definition {
	return Definition{kind: kind, body: body, raw: body}
}

// FromValue interprets a decoded YAML/JSON value as a step.
//
// Maps with a string "kind" property use it. A map with exactly one key whose
// value is a map (or empty) is the single-key form, and the key is the kind.
// Endpoint shorthands such as {to: "log:foo"} expand the string into a "uri"
// property. Any other value yields a kindless definition.
func FromValue(v any) Definition {
	m, ok := v.(map[string]any)
	if !ok {
		return Definition{raw: v}
	}
	if k, ok := m[KindField].(string); ok {
		return Definition{kind: k, body: m, raw: m}
	}
	if len(m) == 1 {
		for k, inner := range m {
			switch iv := inner.(type) {
			case map[string]any:
				return Definition{kind: k, body: iv, raw: m, wrapped: true}
			case nil:
				return Definition{kind: k, body: map[string]any{}, raw: m, wrapped: true}
			case string:
				if isEndpoint(k) {
					return Definition{kind: k, body: map[string]any{"uri": iv}, raw: m, wrapped: true}
				}
			}
		}
	}
	return Definition{body: m, raw: m}
}

// Implied interprets v as a step of the given kind when v does not name one
// itself. This is how branch slots store their children: a "when" list holds
// bare bodies, not {when: ...} wrappers.
func Implied(v any, kind string) Definition {
	m, ok := v.(map[string]any)
	if !ok {
		return Definition{raw: v}
	}
	if k, ok := m[KindField].(string); ok {
		return Definition{kind: k, body: m, raw: m}
	}
	if inner, ok := m[kind]; ok && len(m) == 1 {
		if im, ok := inner.(map[string]any); ok {
			return Definition{kind: kind, body: im, raw: m, wrapped: true}
		}
	}
	return Definition{kind: kind, body: m, raw: m}
}

// Kind returns the step kind, or "" when it cannot be determined.
func (d Definition) Kind() string { return d.kind }

// Body returns the step properties. It may be nil.
func (d Definition) Body() map[string]any { return d.body }

// Raw returns the decoded value the definition was built from.
func (d Definition) Raw() any { return d.raw }

// Wrapped reports whether the step uses the single-key form, in which case
// its properties live one level below the kind key.
func (d Definition) Wrapped() bool { return d.wrapped }

// IsZero reports whether d carries neither a kind nor a body.
func (d Definition) IsZero() bool { return d.kind == "" && d.body == nil && d.raw == nil }

// Has reports whether the named property is present and not null.
func (d Definition) Has(key string) bool {
	v, ok := d.body[key]
	return ok && v != nil
}

// String returns a string property, or "" when absent or of another type.
// Numbers and booleans are formatted.
func (d Definition) String(key string) string {
	switch v := d.body[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// ID returns the step id property.
func (d Definition) ID() string { return d.String("id") }

// Description returns the step description property.
func (d Definition) Description() string { return d.String("description") }

// Steps returns the children of the "steps" slot in order.
func (d Definition) Steps() []Definition { return d.List(StepsSlot, "") }

// List returns the entries of a list slot. When impliedKind is set, entries
// without a kind of their own are read as that kind. A missing slot, or one
// that is not a list, yields nil.
func (d Definition) List(slot, impliedKind string) []Definition {
	items, ok := d.body[slot].([]any)
	if !ok {
		return nil
	}
	out := make([]Definition, len(items))
	for i, item := range items {
		if impliedKind != "" {
			out[i] = Implied(item, impliedKind)
		} else {
			out[i] = FromValue(item)
		}
	}
	return out
}

// Slot returns the single definition stored under slot, read as impliedKind
// when it does not name a kind. It reports false when the slot is absent or
// null.
func (d Definition) Slot(slot, impliedKind string) (Definition, bool) {
	v, ok := d.body[slot]
	if !ok || v == nil {
		return Definition{}, false
	}
	if impliedKind != "" {
		return Implied(v, impliedKind), true
	}
	return FromValue(v), true
}
