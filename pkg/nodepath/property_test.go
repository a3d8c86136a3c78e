package nodepath

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// wellFormed joins identifier segments, optionally under a document namespace.
func wellFormed(segs []string, namespaced bool) string {
	p := strings.Join(segs, "/")
	if namespaced {
		return "src:Doc://" + p
	}
	return p
}

func segmentsGen() gopter.Gen {
	return gen.SliceOf(gen.Identifier()).SuchThat(func(v []string) bool { return len(v) > 0 })
}

func TestPathProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("parent chain terminates within depth bound", prop.ForAll(
		func(segs []string, namespaced bool) bool {
			p := wellFormed(segs, namespaced)
			bound := strings.Count(p, "/") + 1
			steps := 0
			for cur := p; ; steps++ {
				parent, ok := Parent(cur)
				if !ok {
					break
				}
				if parent == cur || steps > bound {
					return false
				}
				cur = parent
			}
			return steps <= bound
		},
		segmentsGen(),
		gen.Bool(),
	))

	properties.Property("closest resolvable returns the path itself when accepted", prop.ForAll(
		func(segs []string, namespaced bool) bool {
			p := wellFormed(segs, namespaced)
			got, ok := ClosestResolvable(p, func(c string) bool { return c == p })
			return ok && got == p
		},
		segmentsGen(),
		gen.Bool(),
	))

	properties.Property("closest resolvable finds the accepted ancestor", prop.ForAll(
		func(segs []string, namespaced bool, pick int) bool {
			p := wellFormed(segs, namespaced)
			anc := Ancestors(p)
			if len(anc) == 0 {
				return true
			}
			target := anc[pick%len(anc)]
			got, ok := ClosestResolvable(p, func(c string) bool { return c == target })
			return ok && got == target
		},
		segmentsGen(),
		gen.Bool(),
		gen.IntRange(0, 64),
	))

	properties.Property("closest resolvable gives up when nothing qualifies", prop.ForAll(
		func(segs []string, namespaced bool) bool {
			_, ok := ClosestResolvable(wellFormed(segs, namespaced), func(string) bool { return false })
			return !ok
		},
		segmentsGen(),
		gen.Bool(),
	))

	properties.Property("malformed input never loops", prop.ForAll(
		func(s string) bool {
			_, ok := ClosestResolvable(s+"//", func(string) bool { return false })
			return !ok
		},
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}
