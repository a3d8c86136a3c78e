package nodepath

import "strings"

const (
	// Separator divides path segments.
	Separator = '/'

	// SchemeTerminator ends the namespace root of a document path ("doc://").
	SchemeTerminator = "://"
)

// Parent returns the structural parent of p and true, or "" and false when p
// is already a root.
//
// A path ending in "://" has the scheme token (everything before the first
// ':') as parent. Otherwise the parent is everything before the last
// separator; if that separator is preceded by another separator the boundary
// moves right by one character so the doubled marker stays with the parent.
//
// Parent does not validate its input. For a path that ends in a doubled
// separator without a scheme colon ("a//") the result equals the input;
// callers that iterate must check for that.
func Parent(p string) (string, bool) {
	if strings.HasSuffix(p, SchemeTerminator) {
		i := strings.IndexByte(p, ':')
		if i <= 0 {
			return "", false
		}
		return p[:i], true
	}

	i := strings.LastIndexByte(p, Separator)
	if i < 0 {
		return "", false
	}
	end := i
	if i > 0 && p[i-1] == Separator {
		end = i + 1
	}
	if end == 0 {
		return "", false
	}
	return p[:end], true
}

// ClosestResolvable returns the first path, starting at p itself and walking
// up through [Parent], for which resolvable reports true.
//
// It returns "" and false when p is empty, when no ancestor qualifies, or when
// the walk stalls on a malformed path whose parent is itself.
func ClosestResolvable(p string, resolvable func(string) bool) (string, bool) {
	for cur := p; cur != ""; {
		if resolvable(cur) {
			return cur, true
		}
		parent, ok := Parent(cur)
		if !ok || parent == cur {
			return "", false
		}
		cur = parent
	}
	return "", false
}

// Ancestors returns the proper ancestors of p, nearest first.
// The result is empty for root paths and stops early on malformed input.
func Ancestors(p string) []string {
	var out []string
	for cur := p; ; {
		parent, ok := Parent(cur)
		if !ok || parent == cur {
			return out
		}
		out = append(out, parent)
		cur = parent
	}
}

// Depth returns the number of proper ancestors of p.
func Depth(p string) int { return len(Ancestors(p)) }

// IsAncestor reports whether a is a proper ancestor of p.
func IsAncestor(a, p string) bool {
	for _, anc := range Ancestors(p) {
		if anc == a {
			return true
		}
	}
	return false
}

// Join appends segments to parent. No separator is inserted after a
// namespace root ("doc://") or when parent is empty.
func Join(parent string, segments ...string) string {
	var b strings.Builder
	b.WriteString(parent)
	cur := parent
	for _, s := range segments {
		if cur != "" && !strings.HasSuffix(cur, SchemeTerminator) {
			b.WriteByte(Separator)
		}
		b.WriteString(s)
		cur = s
	}
	return b.String()
}

// Base returns the last segment of p: the text after its parent boundary.
// Namespace roots return their scheme-qualified form unchanged.
func Base(p string) string {
	if strings.HasSuffix(p, SchemeTerminator) {
		return p
	}
	parent, ok := Parent(p)
	if !ok || parent == p {
		return p
	}
	return strings.TrimPrefix(p[len(parent):], string(Separator))
}

// IsNamespaceRoot reports whether p is a document root such as "doc://".
func IsNamespaceRoot(p string) bool {
	return strings.HasSuffix(p, SchemeTerminator)
}
