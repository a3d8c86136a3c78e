package mapping

import (
	"fmt"

	kerrors "github.com/Ortofta/kaoto/pkg/errors"
	"github.com/Ortofta/kaoto/pkg/nodepath"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// DocumentKind tells where a document sits in the mapping.
type DocumentKind string

const (
	SourceBody DocumentKind = "sourceBody"
	Param      DocumentKind = "param"
	TargetBody DocumentKind = "targetBody"
)

// Field is one node of a document schema.
type Field struct {
	Name     string  `yaml:"name" json:"name" validate:"required,excludesall=/:"`
	Type     string  `yaml:"type,omitempty" json:"type,omitempty"`
	Repeated bool    `yaml:"repeated,omitempty" json:"repeated,omitempty"`
	Fields   []Field `yaml:"fields,omitempty" json:"fields,omitempty" validate:"dive"`
}

// Document is a field tree.
type Document struct {
	ID     string       `yaml:"id" json:"id" validate:"required,excludesall=/:"`
	Kind   DocumentKind `yaml:"kind" json:"kind" validate:"required,oneof=sourceBody param targetBody"`
	Fields []Field      `yaml:"fields" json:"fields" validate:"dive"`
}

// RootPath returns the namespace path of the document root.
func (d *Document) RootPath() string {
	return RootPath(d.Kind, d.ID)
}

// RootPath returns the namespace path of a document root,
// "sourceBody:Order://".
func RootPath(kind DocumentKind, id string) string {
	return string(kind) + ":" + id + nodepath.SchemeTerminator
}

// Lookup returns the field at a slash-separated path relative to the root.
func (d *Document) Lookup(rel string) (*Field, bool) {
	fields := d.Fields
	var found *Field
	for _, seg := range splitRel(rel) {
		found = nil
		for i := range fields {
			if fields[i].Name == seg {
				found = &fields[i]
				break
			}
		}
		if found == nil {
			return nil, false
		}
		fields = found.Fields
	}
	return found, found != nil
}

// Graph builds the visualization graph of the document. The root is a group
// labelled with the document id; every field with children is a group.
func (d *Document) Graph() (*viz.Graph, error) {
	root := viz.NewGroup(d.RootPath(), viz.NodeData{
		ProcessorName: string(d.Kind),
		Label:         d.ID,
	})
	for _, f := range d.Fields {
		root.AddChild(fieldNode(root.Path, f))
	}
	g, err := viz.NewGraph(root)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidDocument, err, "document %s", d.ID)
	}
	return g, nil
}

func fieldNode(parent string, f Field) *viz.Node {
	path := nodepath.Join(parent, f.Name)
	data := viz.NodeData{
		ProcessorName: "field",
		Label:         f.Name,
		IsGroup:       len(f.Fields) > 0,
		Meta:          fieldMeta(f),
	}
	n := viz.NewNode(path, data)
	for _, c := range f.Fields {
		n.AddChild(fieldNode(path, c))
	}
	return n
}

func fieldMeta(f Field) viz.Metadata {
	m := viz.Metadata{}
	if f.Type != "" {
		m["type"] = f.Type
	}
	if f.Repeated {
		m["repeated"] = true
	}
	return m
}

// String returns "kind:id".
func (d *Document) String() string { return fmt.Sprintf("%s:%s", d.Kind, d.ID) }
