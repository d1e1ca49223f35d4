package forcegraph

import (
	"encoding/json"
	"fmt"

	"github.com/skein-dev/skein/pkg/errors"
)

// =============================================================================
// Variants and Identifiers
// =============================================================================

// VariantName is a plain-string variant discriminator for callers that do
// not want to define their own variant type. Custom variant enums only need
// to implement fmt.Stringer.
type VariantName string

// String returns the variant name.
func (v VariantName) String() string { return string(v) }

// FormatID builds the canonical node identifier "<variant>|<pk>".
// The primary key is rendered with %v; the separator is not escaped, so
// keys whose string form contains '|' can produce ambiguous ids (see the
// package documentation).
func FormatID(variant fmt.Stringer, pk any) string {
	return fmt.Sprintf("%s|%v", variant, pk)
}

// =============================================================================
// Node - Unified Node Record
// =============================================================================

// Node is the canonical record every domain type converges to before
// insertion into a [Graph]. The renderer only relies on ID and Name; the
// remaining fields preserve the distinguishing type information.
type Node[NV fmt.Stringer, PK, T any] struct {
	// Variant indicates the node's category, e.g. "person" or "document".
	Variant NV `json:"variant"`
	// VariantPK is the primary key within the variant.
	VariantPK PK `json:"variant_pk"`
	// ID uniquely identifies the node across the whole graph.
	ID string `json:"id"`
	// Name is the display label shown by the renderer.
	Name string `json:"name"`
	// Props carries variant-specific payload of any serializable shape.
	Props T `json:"props"`
}

// Value serializes the node to its generic JSON form. A failure (e.g. a NaN
// float or a props type whose own marshaling fails) is returned as an error
// with code [errors.ErrCodeSerialization].
func (n Node[NV, PK, T]) Value() (json.RawMessage, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSerialization, err, "serialize node %s", n.ID)
	}
	return data, nil
}

// =============================================================================
// NodeAdapter - Entity-to-Node Contract
// =============================================================================

// NodeAdapter is the contract a domain type implements to present itself as
// a node. Only these four methods are required; everything else (id format,
// image URLs, edge comments) has package-level defaults that a concrete
// type can override through the extension interfaces below.
type NodeAdapter[NV fmt.Stringer, PK, T any] interface {
	// NodeVariant returns the category discriminator.
	NodeVariant() NV
	// NodePK returns the primary key within the variant.
	NodePK() PK
	// NodeName returns the display label.
	NodeName() string
	// NodeProps returns the variant-specific payload.
	NodeProps() T
}

// NodeIdentifier is implemented by adapters that override the default
// "<variant>|<pk>" id format. [NodeID] consults it before falling back to
// [FormatID].
type NodeIdentifier interface {
	NodeID() string
}

// NodeImager is implemented by adapters whose nodes carry an avatar or icon
// reference. The core never consumes it; it exists for rendering layers,
// retrieved via [NodeImageURL].
type NodeImager interface {
	NodeImageURL() (string, bool)
}

// EdgeCommenter is implemented by adapters that contribute text to edge
// labels when their node participates as an endpoint. Pass-through only:
// nothing in this package consumes the comments. Rendering layers retrieve
// them via [EdgeSourceComment] and [EdgeTargetComment] to build labels from
// both endpoints' perspectives.
type EdgeCommenter interface {
	EdgeSourceComment() (string, bool)
	EdgeTargetComment() (string, bool)
}

// NodeID returns the adapter's node identifier: the adapter's own NodeID
// when it implements [NodeIdentifier], otherwise the [FormatID] default.
func NodeID[NV fmt.Stringer, PK, T any](a NodeAdapter[NV, PK, T]) string {
	if o, ok := a.(NodeIdentifier); ok {
		return o.NodeID()
	}
	return FormatID(a.NodeVariant(), a.NodePK())
}

// ToNode assembles the full node record from the adapter contract.
func ToNode[NV fmt.Stringer, PK, T any](a NodeAdapter[NV, PK, T]) Node[NV, PK, T] {
	return Node[NV, PK, T]{
		Variant:   a.NodeVariant(),
		VariantPK: a.NodePK(),
		ID:        NodeID(a),
		Name:      a.NodeName(),
		Props:     a.NodeProps(),
	}
}

// NodeImageURL returns the adapter's image reference, if it provides one.
func NodeImageURL(a any) (string, bool) {
	if o, ok := a.(NodeImager); ok {
		return o.NodeImageURL()
	}
	return "", false
}

// EdgeSourceComment returns the text the adapter contributes to an edge
// label when its node is the edge source, if any.
func EdgeSourceComment(a any) (string, bool) {
	if o, ok := a.(EdgeCommenter); ok {
		return o.EdgeSourceComment()
	}
	return "", false
}

// EdgeTargetComment returns the text the adapter contributes to an edge
// label when its node is the edge target, if any.
func EdgeTargetComment(a any) (string, bool) {
	if o, ok := a.(EdgeCommenter); ok {
		return o.EdgeTargetComment()
	}
	return "", false
}
