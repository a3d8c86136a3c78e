package route

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ohler55/ojg/jp"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
)

// Expr converts a visualization node path into a JSONPath expression over
// the raw value of the root entity. Numeric segments index lists; every
// other segment is a map key.
//
// A root entity in the explicit {kind: ...} form has no key for its kind, so
// the leading segment is dropped when it names the root kind.
func Expr(root Definition, path string) jp.Expr {
	segs := strings.Split(path, "/")
	if !root.Wrapped() && len(segs) > 0 && segs[0] == root.Kind() {
		segs = segs[1:]
	}
	x := jp.R()
	for _, s := range segs {
		if s == "" {
			continue
		}
		if n, err := strconv.Atoi(s); err == nil && n >= 0 {
			x = x.N(n)
			continue
		}
		x = x.C(s)
	}
	return x
}

// Select returns the value addressed by a node path inside root. The value
// is read from the decoded document, so it is the raw step as written.
func Select(root Definition, path string) (any, error) {
	if err := kerrors.ValidateNodePath(path); err != nil {
		return nil, err
	}
	x := Expr(root, path)
	got := x.Get(root.Raw())
	if len(got) == 0 {
		return nil, kerrors.New(kerrors.ErrCodeNotFound, "nothing at %s (%s)", path, x.String())
	}
	return got[0], nil
}

// Query evaluates a JSONPath expression against the raw value of root and
// returns every match in document order.
func Query(root Definition, expr string) ([]any, error) {
	x, err := jp.ParseString(expr)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidInput, err, "invalid jsonpath '%s'", expr)
	}
	return x.Get(root.Raw()), nil
}

// Describe returns a one-line description of the step at path, for display.
func Describe(root Definition, path string) (string, error) {
	v, err := Select(root, path)
	if err != nil {
		return "", err
	}
	d := FromValue(v)
	if last := path[strings.LastIndexByte(path, '/')+1:]; last != "" {
		if _, err := strconv.Atoi(last); err != nil {
			d = Implied(v, last)
		}
	}
	switch {
	case d.Description() != "":
		return d.Description(), nil
	case d.ID() != "":
		return fmt.Sprintf("%s %s", d.Kind(), d.ID()), nil
	default:
		return d.Kind(), nil
	}
}
