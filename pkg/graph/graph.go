package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Ortofta/kaoto/pkg/links"
	"github.com/Ortofta/kaoto/pkg/viz"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph converts a visualization graph to JSON bytes.
func MarshalGraph(g *viz.Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(FromViz(g), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a visualization graph as JSON to an io.Writer.
func WriteGraph(g *viz.Graph, w io.Writer) error {
	return encode(FromViz(g), w)
}

// WriteGraphFile writes a visualization graph to a JSON file.
// The file is created with 0644 permissions.
func WriteGraphFile(g *viz.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return encode(FromViz(g), f)
}

// ReadGraph decodes a JSON graph from an io.Reader.
func ReadGraph(r io.Reader) (*viz.Graph, error) {
	var data Graph
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ToViz(data)
}

// ReadGraphFile reads a JSON file and returns the decoded graph.
func ReadGraphFile(path string) (*viz.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Links Serialization API
// =============================================================================

// MarshalLinks converts an extraction result to JSON bytes.
func MarshalLinks(res links.Result, canvas links.Rect) ([]byte, error) {
	var buf bytes.Buffer
	if err := encode(FromResult(res, canvas), &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteLinks writes an extraction result as JSON to an io.Writer.
func WriteLinks(res links.Result, canvas links.Rect, w io.Writer) error {
	return encode(FromResult(res, canvas), w)
}

func encode(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
