// Package forcegraph converts strongly-typed domain entities into the
// uniform node/edge JSON consumed by browser-based 3D force-directed graph
// renderers.
//
// # Overview
//
// Force-directed renderers accept a wide range of objects as nodes: the key
// requirements are that each node carries an "id" and a "name", and each
// edge a "source" and "target" referencing node ids. Go, in contrast, works
// best with concrete types. This package bridges the two with three type
// parameters shared by [Node], [Edge], and the adapter contracts:
//
//   - NV/EV: the variant, a category discriminator with a stable string
//     form (any fmt.Stringer; use [VariantName] for plain strings)
//   - PK: the primary key within the variant, typically int, string,
//     uuid.UUID, or a small struct
//   - T: a variant-specific props payload of any serializable shape
//
// # Adapters
//
// A domain type declares how it presents itself as a node by implementing
// [NodeAdapter]; [ToNode] assembles the record and [AddNodeFrom] inserts it
// into a [Graph]. Default behavior (id formatting, optional image URLs and
// edge comments) is provided by package-level functions and opt-in
// extension interfaces rather than by the contract itself, so implementers
// only supply the four required methods.
//
// # The Graph aggregate
//
// [Graph] accumulates serialized records keyed first by variant name, then
// by id. Insertion is last-write-wins: two records with the same id occupy
// one slot and the second overwrites the first. Edges enter a Graph only
// through [SourceEdgeTarget], which inserts both endpoint nodes alongside
// the edge; there is no public bare edge insertion, so a Graph can never
// accumulate an edge without its endpoints having been inserted with it.
//
// # Wire format
//
// A serialized Graph has exactly two top-level fields:
//
//	{
//	  "nodes": { "person": { "person|1": {...}, "person|2": {...} } },
//	  "edges": { "knows":  { "1|knows|2": {...} } }
//	}
//
// Renderers typically flatten the two-level maps into flat lists before
// use; [Flatten] performs that step for consumers that want it done
// server-side.
//
// # Identifier convention
//
// Default ids are "<variant>|<pk>" where the primary key is formatted with
// %v. The separator is not escaped: a primary key whose %v form contains
// '|' can produce ambiguous or colliding ids. Choose key types whose
// string form is separator-free, or override the id via [NodeIdentifier].
//
// # Errors
//
// The only recoverable failure is serialization of a record to JSON, which
// surfaces as an error with code [errors.ErrCodeSerialization] and is never
// swallowed. Id collisions are not detected; they manifest as silent
// overwrite by design.
//
// # Concurrency
//
// A Graph is a per-request construction artifact, not long-lived state. It
// is not safe for concurrent mutation; gather entities first, then
// populate the Graph from a single goroutine.
package forcegraph
