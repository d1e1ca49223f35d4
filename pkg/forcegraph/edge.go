package forcegraph

import (
	"encoding/json"
	"fmt"

	"github.com/skein-dev/skein/pkg/errors"
)

// =============================================================================
// Edge - Directed Relationship Record
// =============================================================================

// Edge represents a directed relationship between two node ids. Source and
// Target must match node ids present in the same graph; this is a
// convention, not a checked constraint (the only public edge insertion,
// [SourceEdgeTarget], inserts both endpoints alongside the edge).
type Edge[EV fmt.Stringer, PK, T any] struct {
	// Variant indicates the edge's category, e.g. "knows" or "cites".
	Variant EV `json:"variant"`
	// VariantPK is the primary key within the edge variant. Edges created
	// by [SourceEdgeTarget] use a [PairPK] of the endpoint keys.
	VariantPK PK `json:"variant_pk"`
	// ID uniquely identifies this edge instance, distinct even when
	// variant, source and target collide with another edge.
	ID string `json:"id"`
	// Source is the id of the source node.
	Source string `json:"source"`
	// Target is the id of the target node.
	Target string `json:"target"`
	// Props carries variant-specific payload.
	Props T `json:"props"`
}

// Value serializes the edge to its generic JSON form. Failures surface with
// code [errors.ErrCodeSerialization].
func (e Edge[EV, PK, T]) Value() (json.RawMessage, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "serialize edge %s", e.ID)
	}
	return data, nil
}

// PairPK is the composite primary key of an edge created by
// [SourceEdgeTarget]: the primary keys of its source and target nodes.
type PairPK[S, T any] struct {
	Source S `json:"source_pk"`
	Target T `json:"target_pk"`
}

// String renders the pair as "<source>|<target>", matching the %v form used
// by the id convention.
func (p PairPK[S, T]) String() string {
	return fmt.Sprintf("%v|%v", p.Source, p.Target)
}

// =============================================================================
// EdgeAdapter - Entity-to-Edge Contract
// =============================================================================

// EdgeAdapter is the contract a domain type implements to present itself as
// an edge. Symmetric to [NodeAdapter]; there are no comment hooks on the
// edge side (those live with the endpoint nodes).
type EdgeAdapter[EV fmt.Stringer, PK, T any] interface {
	// EdgeVariant returns the category discriminator.
	EdgeVariant() EV
	// EdgePK returns the primary key within the edge variant.
	EdgePK() PK
	// EdgeSource returns the id of the source node.
	EdgeSource() string
	// EdgeTarget returns the id of the target node.
	EdgeTarget() string
	// EdgeProps returns the variant-specific payload.
	EdgeProps() T
}

// EdgeIdentifier is implemented by adapters that override the default
// "<variant>|<pk>" edge id format, e.g. to keep multiple edges between the
// same pair of nodes distinguishable.
type EdgeIdentifier interface {
	EdgeID() string
}

// EdgeID returns the adapter's edge identifier: the adapter's own EdgeID
// when it implements [EdgeIdentifier], otherwise the [FormatID] default.
func EdgeID[EV fmt.Stringer, PK, T any](a EdgeAdapter[EV, PK, T]) string {
	if o, ok := a.(EdgeIdentifier); ok {
		return o.EdgeID()
	}
	return FormatID(a.EdgeVariant(), a.EdgePK())
}

// ToEdge assembles the full edge record from the adapter contract.
func ToEdge[EV fmt.Stringer, PK, T any](a EdgeAdapter[EV, PK, T]) Edge[EV, PK, T] {
	return Edge[EV, PK, T]{
		Variant:   a.EdgeVariant(),
		VariantPK: a.EdgePK(),
		ID:        EdgeID(a),
		Source:    a.EdgeSource(),
		Target:    a.EdgeTarget(),
		Props:     a.EdgeProps(),
	}
}
