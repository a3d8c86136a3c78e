package mapping

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
)

// validate is a singleton validator instance
var validate = validator.New()

// ParseDocument parses a YAML or JSON document schema.
func ParseDocument(data []byte) (*Document, error) {
	var d Document
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "failed to parse document")
	}
	if err := validate.Struct(&d); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidDocument, formatValidationError(err), "document %q", d.ID)
	}
	return &d, nil
}

// LoadDocument reads and parses a document schema file.
func LoadDocument(path string) (*Document, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	d, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// ParseTree parses a YAML or JSON mapping tree.
func ParseTree(data []byte) (*Tree, error) {
	var t Tree
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "failed to parse mapping")
	}
	applyDefaults(&t)
	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTree reads and parses a mapping tree file.
func LoadTree(path string) (*Tree, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseTree(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Marshal serializes a mapping tree to YAML.
func Marshal(t *Tree) ([]byte, error) {
	return yaml.Marshal(t)
}

func applyDefaults(t *Tree) {
	if t.Version == "" {
		t.Version = "1"
	}
}

// Validate checks struct constraints and that every item has exactly one
// kind. A choose may only hold when and otherwise clauses, with at most one
// otherwise, placed last.
func Validate(t *Tree) error {
	if err := validate.Struct(t); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidMapping, formatValidationError(err), "mapping for %q", t.Target)
	}
	var problems []string
	var check func(path string, items []Item, inChoose bool)
	check = func(path string, items []Item, inChoose bool) {
		for i := range items {
			it := &items[i]
			kind := it.Kind()
			where := fmt.Sprintf("%s[%d]", path, i)
			switch {
			case kind == "":
				problems = append(problems, where+": item must set exactly one of field, if, choose, when, otherwise, forEach")
				continue
			case inChoose && kind != KindWhen && kind != KindOtherwise:
				problems = append(problems, where+": choose may only hold when and otherwise")
			case !inChoose && (kind == KindWhen || kind == KindOtherwise):
				problems = append(problems, where+": "+kind+" outside choose")
			case kind == KindOtherwise && i != len(items)-1:
				problems = append(problems, where+": otherwise must be the last clause")
			}
			check(where, it.children(), kind == KindChoose)
		}
	}
	check("items", t.Items, false)
	if len(problems) > 0 {
		return kerrors.New(kerrors.ErrCodeInvalidMapping, "%s", strings.Join(problems, "; "))
	}
	return nil
}

func formatValidationError(err error) error {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return err
	}
	msgs := make([]string, 0, len(ve))
	for _, fe := range ve {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func readInput(path string) ([]byte, error) {
	if err := kerrors.ValidateInputFile(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, kerrors.Wrap(kerrors.ErrCodeFileNotFound, err, "read %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
