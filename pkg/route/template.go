package route

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"

	"github.com/google/uuid"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
)

// CatalogKind is the catalog a new step is picked from.
type CatalogKind string

const (
	CatalogComponent CatalogKind = "component"
	CatalogKamelet   CatalogKind = "kamelet"
	CatalogProcessor CatalogKind = "processor"
	CatalogEntity    CatalogKind = "entity"
)

// XSLTComponent is the endpoint a data mapper step delegates to.
const XSLTComponent = "xslt-saxon"

// newUUID is replaced in tests.
var newUUID = uuid.New

// RandomID returns prefix followed by a dash and four random digits,
// "log-3172".
func RandomID(prefix string) string {
	u := newUUID()
	n := binary.BigEndian.Uint32(u[:4]) % 10000
	return fmt.Sprintf("%s-%04d", prefix, n)
}

// HexID returns prefix followed by a dash and eight random hex digits.
func HexID(prefix string) string {
	u := newUUID()
	return prefix + "-" + hex.EncodeToString(u[:4])
}

func logStep() map[string]any {
	return map[string]any{"log": map[string]any{
		"id":      RandomID("log"),
		"message": "${body}",
	}}
}

func branch(kind string, steps ...any) map[string]any {
	if steps == nil {
		steps = []any{}
	}
	return map[string]any{"id": RandomID(kind), StepsSlot: steps}
}

func whenBody() map[string]any {
	b := branch("when", logStep())
	b["expression"] = map[string]any{"simple": map[string]any{"expression": "${header.foo} == 1"}}
	return b
}

func doCatchBody() map[string]any {
	b := branch("doCatch")
	b["exception"] = []any{"java.lang.NullPointerException"}
	return b
}

// Template returns a working default definition for a processor kind.
//
// Kinds that only live inside a branch slot (when, otherwise, doCatch,
// doFinally, onFallback) and REST verbs return a bare body; every other kind
// returns the single-key form ready to append to a steps list.
func Template(kind string) (Definition, error) {
	if err := kerrors.ValidateKind(kind); err != nil {
		return Definition{}, err
	}
	switch kind {
	case "circuitBreaker":
		fb := branch("onFallback", logStep())
		body := branch("circuitBreaker")
		body["onFallback"] = fb
		return wrap(kind, body), nil

	case "onFallback", "otherwise", "doFinally":
		return New(kind, branch(kind, logStep())), nil

	case "choice":
		return wrap(kind, map[string]any{
			"id":        RandomID("choice"),
			"when":      []any{whenBody()},
			"otherwise": branch("otherwise", logStep()),
		}), nil

	case "when":
		return New(kind, whenBody()), nil

	case "doTry":
		fin := branch("doFinally")
		body := branch("doTry", logStep())
		body["doCatch"] = []any{doCatchBody()}
		body["doFinally"] = fin
		return wrap(kind, body), nil

	case "doCatch":
		return New(kind, doCatchBody()), nil

	case "log":
		return FromValue(logStep()), nil

	case "removeHeaders":
		return wrap(kind, map[string]any{"id": RandomID(kind), "pattern": "*"}), nil

	case "setHeader", "setProperty", "setVariable", "setBody", "filter":
		return wrap(kind, map[string]any{
			"id":         RandomID(kind),
			"expression": map[string]any{"simple": map[string]any{}},
		}), nil

	case "kaoto-datamapper":
		to := map[string]any{"to": map[string]any{
			"id":         RandomID("kaoto-datamapper-xslt"),
			"uri":        XSLTComponent,
			"parameters": map[string]any{},
		}}
		return wrap("step", map[string]any{
			"id":      HexID("kaoto-datamapper"),
			StepsSlot: []any{to},
		}), nil

	case "delete", "get", "head", "patch", "post", "put":
		return New(kind, map[string]any{"id": RandomID(kind)}), nil

	default:
		return wrap(kind, map[string]any{"id": RandomID(kind)}), nil
	}
}

// DefaultStep returns the definition of a new step picked from a catalog.
// Components and kamelets become "to" endpoints.
func DefaultStep(catalog CatalogKind, name string) (Definition, error) {
	switch catalog {
	case CatalogComponent:
		uri := name
		if name == "log" {
			uri = "log:InfoLogger"
		}
		return wrap("to", map[string]any{
			"id":         RandomID("to"),
			"uri":        uri,
			"parameters": map[string]any{},
		}), nil
	case CatalogKamelet:
		return wrap("to", map[string]any{
			"id":  RandomID("to"),
			"uri": PrefixKamelet(name),
		}), nil
	case CatalogProcessor, CatalogEntity:
		return Template(name)
	default:
		return Definition{}, kerrors.New(kerrors.ErrCodeUnsupported, "unknown catalog %q", catalog)
	}
}

// DefaultFrom returns the body of a new route source.
func DefaultFrom(catalog CatalogKind, name string) Definition {
	uri := name
	if catalog == CatalogKamelet {
		uri = PrefixKamelet(name)
	}
	return New("from", map[string]any{
		"id":         RandomID("from"),
		"uri":        uri,
		"parameters": map[string]any{},
		StepsSlot:    []any{},
	})
}

// NewRoute returns a route entity with a default source and no steps.
func NewRoute(catalog CatalogKind, source string) Definition {
	from := DefaultFrom(catalog, source)
	return wrap("route", map[string]any{
		"id":   RandomID("route"),
		"from": from.Body(),
	})
}

func wrap(kind string, body map[string]any) Definition {
	return FromValue(map[string]any{kind: body})
}
