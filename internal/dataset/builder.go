package dataset

import (
	"github.com/skein-dev/skein/pkg/errors"
	"github.com/skein-dev/skein/pkg/forcegraph"
)

// PopulateGraph inserts all entities and relations into g. Entities are
// inserted first so isolated nodes (referenced by no relation) appear in
// the graph; relation insertion re-adds its endpoints, which is harmless
// under last-write-wins.
func (d *Dataset) PopulateGraph(g *forcegraph.Graph) error {
	people := make(map[int]Person, len(d.People))
	for _, p := range d.People {
		if _, err := forcegraph.AddNodeFrom(g, p); err != nil {
			return err
		}
		people[p.ID] = p
	}

	docs := make(map[string]Document, len(d.Documents))
	for _, doc := range d.Documents {
		if _, err := forcegraph.AddNodeFrom(g, doc); err != nil {
			return err
		}
		docs[doc.ID.String()] = doc
	}

	for i, k := range d.Knows {
		src, ok := people[k.Source]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "knows[%d]: unknown source person %d", i, k.Source)
		}
		dst, ok := people[k.Target]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "knows[%d]: unknown target person %d", i, k.Target)
		}
		if _, _, _, err := forcegraph.SourceEdgeTarget(g, src, dst, VariantKnows, KnowsProps{Since: k.Since}); err != nil {
			return err
		}
	}

	for i, a := range d.Authored {
		src, ok := people[a.Person]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "authored[%d]: unknown person %d", i, a.Person)
		}
		dst, ok := docs[a.Document.String()]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "authored[%d]: unknown document %s", i, a.Document)
		}
		if _, _, _, err := forcegraph.SourceEdgeTarget(g, src, dst, VariantAuthored, AuthoredProps{}); err != nil {
			return err
		}
	}

	for i, c := range d.Cites {
		src, ok := docs[c.Source.String()]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "cites[%d]: unknown source document %s", i, c.Source)
		}
		dst, ok := docs[c.Target.String()]
		if !ok {
			return errors.New(errors.ErrCodeInvalidDataset, "cites[%d]: unknown target document %s", i, c.Target)
		}
		if _, _, _, err := forcegraph.SourceEdgeTarget(g, src, dst, VariantCites, CitesProps{Quote: c.Quote}); err != nil {
			return err
		}
	}

	return nil
}

// ZoomTo reports the person the viewer should focus first.
func (d *Dataset) ZoomTo() (forcegraph.VariantName, int, bool) {
	if d.Zoom.Person == 0 {
		return "", 0, false
	}
	return VariantPerson, d.Zoom.Person, true
}

// FocusID returns the zoom target formatted as a node id, matching the id
// convention used for person nodes.
func (d *Dataset) FocusID() (string, bool) {
	return forcegraph.ZoomToID[forcegraph.VariantName, int](d)
}

// BuildGraph builds the full graph for the dataset.
func (d *Dataset) BuildGraph() (*forcegraph.Graph, error) {
	return forcegraph.BuildGraph(d)
}
