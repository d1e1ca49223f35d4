package forcegraph

import (
	"encoding/json"
	"fmt"
)

// =============================================================================
// Graph - Aggregate of Serialized Records
// =============================================================================

// Graph accumulates serialized nodes and edges, keyed first by variant name
// and then by id. Records are reduced to raw JSON on insertion because the
// aggregate exists to be serialized wholesale for a browser renderer; the
// typed records are returned to the caller instead.
//
// A Graph is created empty, mutated only through insertion (there is no
// remove), serialized once, and discarded. It is not safe for concurrent
// mutation.
type Graph struct {
	Nodes map[string]map[string]json.RawMessage `json:"nodes"`
	Edges map[string]map[string]json.RawMessage `json:"edges"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]map[string]json.RawMessage),
		Edges: make(map[string]map[string]json.RawMessage),
	}
}

// NodeCount returns the total number of nodes across all variants.
func (g *Graph) NodeCount() int {
	n := 0
	for _, bucket := range g.Nodes {
		n += len(bucket)
	}
	return n
}

// EdgeCount returns the total number of edges across all variants.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, bucket := range g.Edges {
		n += len(bucket)
	}
	return n
}

// =============================================================================
// Insertion
//
// Go methods cannot introduce type parameters, so insertion operations are
// package-level functions over *Graph.
// =============================================================================

// AddNode serializes n and inserts it under Nodes[variant][id], creating
// the variant bucket on first use. Inserting a second node with the same id
// overwrites the first (last-write-wins, no merge). On serialization
// failure the graph is left unchanged for that record and the error is
// returned.
func AddNode[NV fmt.Stringer, PK, T any](g *Graph, n Node[NV, PK, T]) error {
	val, err := n.Value()
	if err != nil {
		return err
	}
	variant := n.Variant.String()
	bucket := g.Nodes[variant]
	if bucket == nil {
		bucket = make(map[string]json.RawMessage)
		g.Nodes[variant] = bucket
	}
	bucket[n.ID] = val
	return nil
}

// AddNodeFrom derives the node record from the adapter contract and inserts
// it with [AddNode]. The typed record is returned so the caller retains a
// handle even though the graph only stores serialized form.
func AddNodeFrom[NV fmt.Stringer, PK, T any](g *Graph, a NodeAdapter[NV, PK, T]) (Node[NV, PK, T], error) {
	n := ToNode(a)
	if err := AddNode(g, n); err != nil {
		return n, err
	}
	return n, nil
}

// addEdge serializes e and inserts it under Edges[variant][id]. It is
// deliberately unexported: the only public edge-creation path is
// [SourceEdgeTarget], which guarantees that both endpoint nodes are
// inserted alongside the edge. Keeping the bare insertion private is what
// prevents dangling edges, by API shape rather than by runtime check.
func addEdge[EV fmt.Stringer, PK, T any](g *Graph, e Edge[EV, PK, T]) error {
	val, err := e.Value()
	if err != nil {
		return err
	}
	variant := e.Variant.String()
	bucket := g.Edges[variant]
	if bucket == nil {
		bucket = make(map[string]json.RawMessage)
		g.Edges[variant] = bucket
	}
	bucket[e.ID] = val
	return nil
}

// SourceEdgeTarget inserts a directed edge together with both endpoint
// nodes, derived from their adapters. The edge's primary key is the pair of
// endpoint keys, its id is "<source-pk>|<variant>|<target-pk>", and its
// source/target fields equal the two node ids.
//
// Insertion order is source node, edge, target node. On failure the error
// is returned immediately and records already inserted remain in the graph;
// there is no rollback. All three constructed records are returned.
func SourceEdgeTarget[
	SV fmt.Stringer, SPK, SP any,
	TV fmt.Stringer, TPK, TP any,
	EV fmt.Stringer, EP any,
](
	g *Graph,
	source NodeAdapter[SV, SPK, SP],
	target NodeAdapter[TV, TPK, TP],
	variant EV,
	props EP,
) (Node[SV, SPK, SP], Edge[EV, PairPK[SPK, TPK], EP], Node[TV, TPK, TP], error) {
	src := ToNode(source)
	dst := ToNode(target)
	edge := Edge[EV, PairPK[SPK, TPK], EP]{
		Variant:   variant,
		VariantPK: PairPK[SPK, TPK]{Source: src.VariantPK, Target: dst.VariantPK},
		ID:        fmt.Sprintf("%v|%s|%v", src.VariantPK, variant, dst.VariantPK),
		Source:    src.ID,
		Target:    dst.ID,
		Props:     props,
	}

	if err := AddNode(g, src); err != nil {
		return src, edge, dst, err
	}
	if err := addEdge(g, edge); err != nil {
		return src, edge, dst, err
	}
	if err := AddNode(g, dst); err != nil {
		return src, edge, dst, err
	}
	return src, edge, dst, nil
}
