package mapper

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/Ortofta/kaoto/pkg/route"
)

// genSteps returns a random steps list and the number of step definitions
// it holds, branch clauses included.
func genSteps(r *rand.Rand, depth int) ([]any, int) {
	n := r.Intn(4)
	steps := make([]any, 0, n)
	total := 0
	for i := 0; i < n; i++ {
		s, c := genStep(r, depth)
		steps = append(steps, s)
		total += c
	}
	return steps, total
}

func genStep(r *rand.Rand, depth int) (any, int) {
	choice := r.Intn(8)
	if depth <= 0 {
		choice = r.Intn(4)
	}
	switch choice {
	case 0:
		return map[string]any{"log": map[string]any{"message": "m"}}, 1
	case 1:
		return map[string]any{"kind": "to", "uri": "direct:x"}, 1
	case 2:
		return map[string]any{"kind": "mystery", "steps": []any{map[string]any{"log": nil}}}, 1
	case 3:
		return "junk", 1
	case 4:
		steps, c := genSteps(r, depth-1)
		return map[string]any{"split": map[string]any{"steps": steps}}, 1 + c
	case 5:
		total := 1
		whens := make([]any, r.Intn(3))
		for i := range whens {
			steps, c := genSteps(r, depth-1)
			whens[i] = map[string]any{"steps": steps}
			total += 1 + c
		}
		body := map[string]any{"when": whens}
		if r.Intn(2) == 0 {
			steps, c := genSteps(r, depth-1)
			body["otherwise"] = map[string]any{"steps": steps}
			total += 1 + c
		}
		return map[string]any{"choice": body}, total
	case 6:
		steps, c := genSteps(r, depth-1)
		catch, cc := genSteps(r, depth-1)
		return map[string]any{"doTry": map[string]any{
			"steps":   steps,
			"doCatch": []any{map[string]any{"steps": catch}},
		}}, 2 + c + cc
	default:
		steps, c := genSteps(r, depth-1)
		return map[string]any{"kind": "choice", "steps": []any{
			map[string]any{"kind": "when", "steps": steps},
		}}, 2 + c
	}
}

func genRoute(seed int64) (route.Definition, int) {
	r := rand.New(rand.NewSource(seed))
	steps, c := genSteps(r, 3)
	def := route.FromValue(map[string]any{"route": map[string]any{
		"from": map[string]any{"uri": "timer:t", "steps": steps},
	}})
	return def, 2 + c
}

func TestGraphProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300

	properties := gopter.NewProperties(parameters)

	properties.Property("one node per step definition", prop.ForAll(
		func(seed int64) bool {
			def, want := genRoute(seed)
			g, err := BuildGraph(def)
			return err == nil && g.Len() == want
		},
		gen.Int64(),
	))

	properties.Property("children extend their parent path", prop.ForAll(
		func(seed int64) bool {
			def, _ := genRoute(seed)
			g, err := BuildGraph(def)
			if err != nil {
				return false
			}
			for _, p := range g.Paths() {
				n := g.Lookup(p)
				for _, c := range n.Children() {
					if !strings.HasPrefix(c.Path, n.Path+"/") {
						return false
					}
					parent, ok := g.ParentOf(c.Path)
					if !ok || parent != n {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("every path selects its step", prop.ForAll(
		func(seed int64) bool {
			def, _ := genRoute(seed)
			g, err := BuildGraph(def)
			if err != nil {
				return false
			}
			for _, p := range g.Paths() {
				if _, err := route.Select(def, p); err != nil {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
