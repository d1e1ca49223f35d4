package forcegraph

import "fmt"

// Builder is implemented by composite domain objects that populate a graph
// from their own sub-entities. Implementations compose the package's
// primitives ([AddNodeFrom], [SourceEdgeTarget]); no new behavior is
// introduced at this layer.
type Builder interface {
	// PopulateGraph inserts the object's nodes and edges into g.
	// Serialization failures propagate; records inserted before a failure
	// remain in g.
	PopulateGraph(g *Graph) error
}

// BuildGraph creates an empty graph, populates it via the builder, and
// returns it. On failure the partially populated graph is discarded and
// only the error is returned.
func BuildGraph(b Builder) (*Graph, error) {
	g := New()
	if err := b.PopulateGraph(g); err != nil {
		return nil, err
	}
	return g, nil
}

// ZoomTarget is implemented by builders that designate a single node of
// interest for a renderer's initial camera focus.
type ZoomTarget[NV fmt.Stringer, PK any] interface {
	// ZoomTo returns the variant and primary key of the node to focus, or
	// ok=false when no particular focus is meaningful.
	ZoomTo() (variant NV, pk PK, ok bool)
}

// ZoomToID formats the zoom target as a node id using the same convention
// as [FormatID], so the result matches the id of a node built with the
// default formatter. Returns ok=false when the target declines focus.
func ZoomToID[NV fmt.Stringer, PK any](z ZoomTarget[NV, PK]) (string, bool) {
	variant, pk, ok := z.ZoomTo()
	if !ok {
		return "", false
	}
	return FormatID(variant, pk), true
}
