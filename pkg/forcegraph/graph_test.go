package forcegraph

import (
	"bytes"
	"encoding/json"
	"math"
	"testing"

	"github.com/skein-dev/skein/pkg/errors"
)

func TestAddNode(t *testing.T) {
	g := New()
	n := ToNode[VariantName, int, personProps](person{pk: 1, name: "Alice", bio: "mathematician"})

	if err := AddNode(g, n); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	stored, ok := g.Nodes["person"]["person|1"]
	if !ok {
		t.Fatal("node not found under nodes[person][person|1]")
	}

	want, err := n.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}
	if !bytes.Equal(stored, want) {
		t.Errorf("stored = %s, want %s", stored, want)
	}
}

func TestAddNodeLastWriteWins(t *testing.T) {
	g := New()

	first := ToNode[VariantName, int, personProps](person{pk: 1, name: "Alice", bio: "first"})
	second := ToNode[VariantName, int, personProps](person{pk: 1, name: "Alice", bio: "second"})

	if err := AddNode(g, first); err != nil {
		t.Fatalf("AddNode first: %v", err)
	}
	if err := AddNode(g, second); err != nil {
		t.Fatalf("AddNode second: %v", err)
	}

	if got := len(g.Nodes["person"]); got != 1 {
		t.Fatalf("len(nodes[person]) = %d, want 1", got)
	}

	var decoded struct {
		Props personProps `json:"props"`
	}
	if err := json.Unmarshal(g.Nodes["person"]["person|1"], &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Props.Bio != "second" {
		t.Errorf("bio = %q, want %q (last write wins)", decoded.Props.Bio, "second")
	}
}

func TestAddNodeSerializationFailure(t *testing.T) {
	tests := []struct {
		name string
		add  func(g *Graph) error
	}{
		{
			name: "failing props marshaler",
			add: func(g *Graph) error {
				return AddNode(g, ToNode[VariantName, int, failingProps](brokenEntity{pk: 1}))
			},
		},
		{
			name: "unsupported float value",
			add: func(g *Graph) error {
				return AddNode(g, Node[VariantName, int, float64]{
					Variant: "metric", VariantPK: 1, ID: "metric|1", Name: "nan", Props: math.NaN(),
				})
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New()
			err := tt.add(g)
			if err == nil {
				t.Fatal("AddNode = nil error, want serialization failure")
			}
			if !errors.Is(err, errors.ErrCodeSerialization) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeSerialization)
			}
			if got := g.NodeCount(); got != 0 {
				t.Errorf("NodeCount = %d, want 0 (no partial record)", got)
			}
		})
	}
}

func TestAddNodeFrom(t *testing.T) {
	g := New()

	n, err := AddNodeFrom[VariantName, int, personProps](g, person{pk: 3, name: "Carol"})
	if err != nil {
		t.Fatalf("AddNodeFrom: %v", err)
	}

	if n.ID != "person|3" {
		t.Errorf("returned node ID = %q, want person|3", n.ID)
	}
	if _, ok := g.Nodes["person"]["person|3"]; !ok {
		t.Error("node not inserted under nodes[person][person|3]")
	}
}

func TestSourceEdgeTarget(t *testing.T) {
	g := New()
	alice := person{pk: 1, name: "Alice"}
	bob := person{pk: 2, name: "Bob"}

	src, edge, dst, err := SourceEdgeTarget(g, alice, bob, VariantName("knows"), knowsProps{Since: 2020})
	if err != nil {
		t.Fatalf("SourceEdgeTarget: %v", err)
	}

	// Returned typed records.
	if src.ID != "person|1" || dst.ID != "person|2" {
		t.Errorf("endpoint ids = %q, %q; want person|1, person|2", src.ID, dst.ID)
	}
	if edge.ID != "1|knows|2" {
		t.Errorf("edge.ID = %q, want 1|knows|2", edge.ID)
	}
	if edge.Source != src.ID || edge.Target != dst.ID {
		t.Errorf("edge endpoints = %q→%q, want %q→%q", edge.Source, edge.Target, src.ID, dst.ID)
	}
	if edge.VariantPK.Source != 1 || edge.VariantPK.Target != 2 {
		t.Errorf("edge.VariantPK = %+v, want {1 2}", edge.VariantPK)
	}

	// Graph contents: both endpoints and exactly one edge.
	if _, ok := g.Nodes["person"]["person|1"]; !ok {
		t.Error("source node missing from graph")
	}
	if _, ok := g.Nodes["person"]["person|2"]; !ok {
		t.Error("target node missing from graph")
	}
	if got := len(g.Edges["knows"]); got != 1 {
		t.Fatalf("len(edges[knows]) = %d, want 1", got)
	}

	var stored struct {
		Source string     `json:"source"`
		Target string     `json:"target"`
		Props  knowsProps `json:"props"`
	}
	if err := json.Unmarshal(g.Edges["knows"]["1|knows|2"], &stored); err != nil {
		t.Fatalf("unmarshal edge: %v", err)
	}
	if stored.Source != "person|1" || stored.Target != "person|2" {
		t.Errorf("stored edge endpoints = %q→%q, want person|1→person|2", stored.Source, stored.Target)
	}
	if stored.Props.Since != 2020 {
		t.Errorf("stored props.since = %d, want 2020", stored.Props.Since)
	}
}

func TestSourceEdgeTargetMixedVariants(t *testing.T) {
	g := New()
	author := person{pk: 1, name: "Alice"}
	doc := document{pk: "rfc-1149", title: "IP over Avian Carriers"}

	_, edge, _, err := SourceEdgeTarget(g, author, doc, VariantName("authored"), struct{}{})
	if err != nil {
		t.Fatalf("SourceEdgeTarget: %v", err)
	}

	if edge.ID != "1|authored|rfc-1149" {
		t.Errorf("edge.ID = %q, want 1|authored|rfc-1149", edge.ID)
	}
	if _, ok := g.Nodes["person"]["person|1"]; !ok {
		t.Error("person endpoint missing")
	}
	if _, ok := g.Nodes["document"]["document|rfc-1149"]; !ok {
		t.Error("document endpoint missing")
	}
}

func TestSourceEdgeTargetNoRollback(t *testing.T) {
	g := New()
	alice := person{pk: 1, name: "Alice"}
	broken := brokenEntity{pk: 9}

	// Target node fails to serialize: source node and edge stay inserted.
	_, _, _, err := SourceEdgeTarget(g, alice, broken, VariantName("knows"), knowsProps{Since: 2020})
	if err == nil {
		t.Fatal("SourceEdgeTarget = nil error, want serialization failure")
	}
	if !errors.Is(err, errors.ErrCodeSerialization) {
		t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeSerialization)
	}
	if _, ok := g.Nodes["person"]["person|1"]; !ok {
		t.Error("source node rolled back, want it retained (at-least-partial-effect)")
	}
	if got := len(g.Edges["knows"]); got != 1 {
		t.Errorf("len(edges[knows]) = %d, want 1 (inserted before failure)", got)
	}
	if got := len(g.Nodes["broken"]); got != 0 {
		t.Errorf("len(nodes[broken]) = %d, want 0 (failed record not inserted)", got)
	}

	// Edge props fail to serialize: source node retained, edge absent.
	g2 := New()
	_, _, _, err = SourceEdgeTarget(g2, alice, person{pk: 2, name: "Bob"}, VariantName("knows"), failingProps{})
	if err == nil {
		t.Fatal("SourceEdgeTarget = nil error, want serialization failure")
	}
	if _, ok := g2.Nodes["person"]["person|1"]; !ok {
		t.Error("source node missing, want it inserted before the edge failure")
	}
	if got := len(g2.Edges); got != 0 {
		t.Errorf("len(edges) = %d, want 0", got)
	}
	if _, ok := g2.Nodes["person"]["person|2"]; ok {
		t.Error("target node inserted after failure, want insertion stopped")
	}
}

func TestDuplicateEdges(t *testing.T) {
	alice := person{pk: 1, name: "Alice"}
	bob := person{pk: 2, name: "Bob"}

	t.Run("default ids collide", func(t *testing.T) {
		g := New()
		first := ToEdge[VariantName, PairPK[int, int], knowsProps](acquaintance{source: alice, target: bob, since: 2019})
		second := ToEdge[VariantName, PairPK[int, int], knowsProps](acquaintance{source: alice, target: bob, since: 2021})

		if err := addEdge(g, first); err != nil {
			t.Fatalf("addEdge first: %v", err)
		}
		if err := addEdge(g, second); err != nil {
			t.Fatalf("addEdge second: %v", err)
		}

		if got := len(g.Edges["knows"]); got != 1 {
			t.Fatalf("len(edges[knows]) = %d, want 1 (collision overwrites)", got)
		}
		var stored struct {
			Props knowsProps `json:"props"`
		}
		if err := json.Unmarshal(g.Edges["knows"]["knows|1|2"], &stored); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if stored.Props.Since != 2021 {
			t.Errorf("since = %d, want 2021 (second insertion wins)", stored.Props.Since)
		}
	})

	t.Run("overridden ids stay distinct", func(t *testing.T) {
		g := New()
		first := ToEdge[VariantName, PairPK[int, int], knowsProps](citation{acquaintance{source: alice, target: bob, since: 2019}, 1})
		second := ToEdge[VariantName, PairPK[int, int], knowsProps](citation{acquaintance{source: alice, target: bob, since: 2021}, 2})

		if err := addEdge(g, first); err != nil {
			t.Fatalf("addEdge first: %v", err)
		}
		if err := addEdge(g, second); err != nil {
			t.Fatalf("addEdge second: %v", err)
		}

		if got := len(g.Edges["knows"]); got != 2 {
			t.Errorf("len(edges[knows]) = %d, want 2 (distinct instance ids)", got)
		}
	})
}

func TestCounts(t *testing.T) {
	g := New()
	if g.NodeCount() != 0 || g.EdgeCount() != 0 {
		t.Errorf("empty graph counts = %d, %d; want 0, 0", g.NodeCount(), g.EdgeCount())
	}

	_, _, _, err := SourceEdgeTarget(g, person{pk: 1, name: "Alice"}, person{pk: 2, name: "Bob"}, VariantName("knows"), knowsProps{Since: 2020})
	if err != nil {
		t.Fatalf("SourceEdgeTarget: %v", err)
	}
	if _, err := AddNodeFrom[VariantName, string, map[string]string](g, document{pk: "d1", title: "Doc"}); err != nil {
		t.Fatalf("AddNodeFrom: %v", err)
	}

	if got := g.NodeCount(); got != 3 {
		t.Errorf("NodeCount = %d, want 3", got)
	}
	if got := g.EdgeCount(); got != 1 {
		t.Errorf("EdgeCount = %d, want 1", got)
	}
}
