// Package route reads route definitions: untyped, nested step trees as they
// appear in Camel YAML or JSON files.
//
// # Step Forms
//
// Two shapes of step are understood and may be mixed in one file:
//
//	steps:
//	  - kind: log                  explicit kind field
//	    message: hello
//	  - log:                       single-key form, the key is the kind
//	      message: hello
//
// A [Definition] hides the difference: [Definition.Kind] is the step kind and
// [Definition.Body] holds its properties. Branch children live in the "steps"
// slot ([Definition.Steps]); named branch slots such as "when", "otherwise" or
// "doCatch" are read with [Definition.List] and [Definition.Slot], which
// accept bare bodies whose kind is implied by the slot.
//
// Definitions are read-only views over the decoded document. Nothing in this
// package mutates the input.
//
// # Loading
//
// [Parse] and [ReadFile] decode YAML (and therefore JSON) with gopkg.in/yaml.v3.
// A file may hold one entity or a list of entities.
//
// # Selection
//
// [Select] resolves a "/"-separated node path inside a definition with a
// JSONPath expression (github.com/ohler55/ojg/jp), which lets callers read
// any property addressed by a visualization node path.
//
// # Templates
//
// [Template], [DefaultStep] and [DefaultFrom] produce working default
// definitions for new steps, with random ids from [RandomID].
package route
