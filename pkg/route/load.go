package route

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
)

// ErrEmptyDocument is returned when a file decodes to nothing.
var ErrEmptyDocument = errors.New("route: empty document")

// Parse decodes a YAML or JSON document holding one entity or a list of
// entities. Each entity becomes a [Definition]; a Camel file such as
//
//	# routes.yaml
//	- route:
//	    from: {uri: timer:tick, steps: [...]}
//
// yields one definition of kind "route".
func Parse(data []byte) ([]Definition, error) {
	var entities []Definition
	dec := yaml.NewDecoder(bytes.NewReader(data))
	for {
		var v any
		err := dec.Decode(&v)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, kerrors.Wrap(kerrors.ErrCodeInvalidFormat, err, "decode definition")
		}
		entities = append(entities, entitiesOf(v)...)
	}
	if len(entities) == 0 {
		return nil, ErrEmptyDocument
	}
	return entities, nil
}

func entitiesOf(v any) []Definition {
	switch t := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]Definition, 0, len(t))
		for _, item := range t {
			if item == nil {
				continue
			}
			out = append(out, FromValue(item))
		}
		return out
	default:
		return []Definition{FromValue(t)}
	}
}

// ParseOne decodes data and returns its only entity. Files with several
// entities are rejected; use [Parse] for those.
func ParseOne(data []byte) (Definition, error) {
	defs, err := Parse(data)
	if err != nil {
		return Definition{}, err
	}
	if len(defs) != 1 {
		return Definition{}, kerrors.New(kerrors.ErrCodeInvalidDefinition, "expected one entity, found %d", len(defs))
	}
	return defs[0], nil
}

// ReadFile reads and parses a definition file.
func ReadFile(path string) ([]Definition, error) {
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
	defs, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return defs, nil
}

// Find returns the first entity whose id matches, or whose kind matches when
// id is a kind name. An empty id selects the first entity.
func Find(defs []Definition, id string) (Definition, error) {
	if len(defs) == 0 {
		return Definition{}, ErrEmptyDocument
	}
	if id == "" {
		return defs[0], nil
	}
	for _, d := range defs {
		if d.ID() == id {
			return d, nil
		}
	}
	for _, d := range defs {
		if d.Kind() == id {
			return d, nil
		}
	}
	return Definition{}, kerrors.New(kerrors.ErrCodeNotFound, "no entity %q", id)
}

// Marshal encodes a definition's raw value as YAML.
func Marshal(d Definition) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.Raw()); err != nil {
		return nil, fmt.Errorf("encode %s: %w", d.Kind(), err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
