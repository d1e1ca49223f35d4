// Package dataset loads the TOML entity datasets the CLI turns into
// force-directed graphs.
//
// A dataset declares typed entities (people with integer keys, documents
// with uuid keys) and the relations between them (knows, authored, cites).
// The Dataset type implements the graph builder contract, so a loaded file
// can be handed directly to forcegraph.BuildGraph.
//
// # Format
//
//	title = "Research circle"
//
//	[zoom]
//	person = 1
//
//	[[people]]
//	id = 1
//	name = "Ada Lovelace"
//	bio = "Mathematician"
//	image = "https://example.com/ada.png"
//
//	[[documents]]
//	id = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
//	title = "Notes on the Analytical Engine"
//	year = 1843
//
//	[[knows]]
//	source = 1
//	target = 2
//	since = 1833
//
//	[[authored]]
//	person = 1
//	document = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
//
//	[[cites]]
//	source = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
//	target = "f47ac10b-58cc-4372-a567-0e02b2c3d479"
//	quote = "..."
//
// Relations must reference declared entities; Load validates this before
// any graph is built (the graph aggregate itself never checks references).
package dataset

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"

	"github.com/skein-dev/skein/pkg/errors"
)

// Dataset is a parsed entity file. It implements forcegraph.Builder and the
// person-focused zoom contract.
type Dataset struct {
	Title     string     `toml:"title"`
	Zoom      Zoom       `toml:"zoom"`
	People    []Person   `toml:"people"`
	Documents []Document `toml:"documents"`
	Knows     []Knows    `toml:"knows"`
	Authored  []Authored `toml:"authored"`
	Cites     []Cites    `toml:"cites"`
}

// Zoom designates the node the viewer should focus first. A zero value
// means no focus.
type Zoom struct {
	Person int `toml:"person"`
}

// Person is an entity with an integer primary key.
type Person struct {
	ID    int    `toml:"id"`
	Name  string `toml:"name"`
	Bio   string `toml:"bio"`
	Image string `toml:"image"`
}

// Document is an entity with a uuid primary key.
type Document struct {
	ID    uuid.UUID `toml:"id"`
	Title string    `toml:"title"`
	Year  int       `toml:"year"`
}

// Knows is a person-to-person relation.
type Knows struct {
	Source int `toml:"source"`
	Target int `toml:"target"`
	Since  int `toml:"since"`
}

// Authored is a person-to-document relation.
type Authored struct {
	Person   int       `toml:"person"`
	Document uuid.UUID `toml:"document"`
}

// Cites is a document-to-document relation.
type Cites struct {
	Source uuid.UUID `toml:"source"`
	Target uuid.UUID `toml:"target"`
	Quote  string    `toml:"quote"`
}

// Load reads and validates a dataset file.
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dataset %s", path)
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes and validates dataset bytes.
func Parse(data []byte) (*Dataset, error) {
	var ds Dataset
	if err := toml.Unmarshal(data, &ds); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDataset, err, "decode dataset")
	}
	if err := ds.Validate(); err != nil {
		return nil, err
	}
	return &ds, nil
}

// Validate checks entity keys, display names, and relation references.
// Relations must point at declared entities: the graph aggregate downstream
// treats endpoint references as an unchecked convention, so this is the
// only place dangling references are caught.
func (d *Dataset) Validate() error {
	for _, v := range variants {
		if err := errors.ValidateVariantName(string(v)); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "variant %q", v)
		}
	}

	people := make(map[int]bool, len(d.People))
	for _, p := range d.People {
		if p.ID <= 0 {
			return errors.New(errors.ErrCodeInvalidDataset, "person %q: id must be positive, got %d", p.Name, p.ID)
		}
		if people[p.ID] {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate person id %d", p.ID)
		}
		if err := errors.ValidateDisplayName(p.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "person %d", p.ID)
		}
		people[p.ID] = true
	}

	docs := make(map[uuid.UUID]bool, len(d.Documents))
	for _, doc := range d.Documents {
		if doc.ID == uuid.Nil {
			return errors.New(errors.ErrCodeInvalidDataset, "document %q: id must be a non-nil uuid", doc.Title)
		}
		if docs[doc.ID] {
			return errors.New(errors.ErrCodeInvalidDataset, "duplicate document id %s", doc.ID)
		}
		if err := errors.ValidateDisplayName(doc.Title); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidDataset, err, "document %s", doc.ID)
		}
		docs[doc.ID] = true
	}

	for i, k := range d.Knows {
		if !people[k.Source] {
			return errors.New(errors.ErrCodeInvalidDataset, "knows[%d]: unknown source person %d", i, k.Source)
		}
		if !people[k.Target] {
			return errors.New(errors.ErrCodeInvalidDataset, "knows[%d]: unknown target person %d", i, k.Target)
		}
	}
	for i, a := range d.Authored {
		if !people[a.Person] {
			return errors.New(errors.ErrCodeInvalidDataset, "authored[%d]: unknown person %d", i, a.Person)
		}
		if !docs[a.Document] {
			return errors.New(errors.ErrCodeInvalidDataset, "authored[%d]: unknown document %s", i, a.Document)
		}
	}
	for i, c := range d.Cites {
		if !docs[c.Source] {
			return errors.New(errors.ErrCodeInvalidDataset, "cites[%d]: unknown source document %s", i, c.Source)
		}
		if !docs[c.Target] {
			return errors.New(errors.ErrCodeInvalidDataset, "cites[%d]: unknown target document %s", i, c.Target)
		}
	}

	if d.Zoom.Person != 0 && !people[d.Zoom.Person] {
		return errors.New(errors.ErrCodeInvalidDataset, "zoom: unknown person %d", d.Zoom.Person)
	}

	return nil
}
