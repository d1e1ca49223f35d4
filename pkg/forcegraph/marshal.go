package forcegraph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/skein-dev/skein/pkg/errors"
)

// =============================================================================
// Graph Serialization API
// =============================================================================

// MarshalGraph serializes a graph to indented JSON bytes in the wire format
// described in the package documentation.
func MarshalGraph(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteGraph writes a graph as indented JSON to w.
func WriteGraph(g *Graph, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(g); err != nil {
		return errors.Wrap(errors.ErrCodeSerialization, err, "encode graph")
	}
	return nil
}

// WriteGraphFile writes a graph to a JSON file at path.
// The file is created with 0644 permissions.
func WriteGraphFile(g *Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}

// ReadGraph decodes a JSON graph from r. Decoding validates the two-level
// shape only; edge endpoint references are a convention and are not
// checked.
func ReadGraph(r io.Reader) (*Graph, error) {
	g := New()
	if err := json.NewDecoder(r).Decode(g); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}
	if g.Nodes == nil {
		g.Nodes = make(map[string]map[string]json.RawMessage)
	}
	if g.Edges == nil {
		g.Edges = make(map[string]map[string]json.RawMessage)
	}
	return g, nil
}

// ReadGraphFile reads a JSON graph file at path.
func ReadGraphFile(path string) (*Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// =============================================================================
// Flattening
// =============================================================================

// FlatGraph is the flattened form most force-directed renderers consume
// directly: flat lists of node and link objects, each still identified by
// its embedded "id".
type FlatGraph struct {
	Nodes []json.RawMessage `json:"nodes"`
	Links []json.RawMessage `json:"links"`
}

// Flatten reduces the two-level variant/id maps to flat lists. Entries are
// ordered by variant name, then id, for deterministic output. Flattening is
// normally the rendering layer's job; this helper exists for servers that
// prefer to hand the renderer ready-to-use lists.
func Flatten(g *Graph) FlatGraph {
	return FlatGraph{
		Nodes: flattenBuckets(g.Nodes),
		Links: flattenBuckets(g.Edges),
	}
}

// MarshalFlat serializes a flattened graph to indented JSON bytes.
func MarshalFlat(fg FlatGraph) ([]byte, error) {
	data, err := json.MarshalIndent(fg, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "encode flat graph")
	}
	return data, nil
}

func flattenBuckets(buckets map[string]map[string]json.RawMessage) []json.RawMessage {
	variants := make([]string, 0, len(buckets))
	for v := range buckets {
		variants = append(variants, v)
	}
	slices.Sort(variants)

	var out []json.RawMessage
	for _, v := range variants {
		ids := make([]string, 0, len(buckets[v]))
		for id := range buckets[v] {
			ids = append(ids, id)
		}
		slices.Sort(ids)
		for _, id := range ids {
			out = append(out, buckets[v][id])
		}
	}
	return out
}
