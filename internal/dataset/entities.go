package dataset

import (
	"github.com/google/uuid"

	"github.com/skein-dev/skein/pkg/forcegraph"
)

// Node variants.
const (
	VariantPerson   forcegraph.VariantName = "person"
	VariantDocument forcegraph.VariantName = "document"
)

// Edge variants.
const (
	VariantKnows    forcegraph.VariantName = "knows"
	VariantAuthored forcegraph.VariantName = "authored"
	VariantCites    forcegraph.VariantName = "cites"
)

// variants lists every variant this package declares. Variant names feed
// the id formatter unescaped, so Validate re-checks the set alongside the
// user-supplied fields.
var variants = []forcegraph.VariantName{
	VariantPerson,
	VariantDocument,
	VariantKnows,
	VariantAuthored,
	VariantCites,
}

// PersonProps is the person node payload.
type PersonProps struct {
	Bio   string `json:"bio,omitempty"`
	Image string `json:"image,omitempty"`
}

// DocumentProps is the document node payload.
type DocumentProps struct {
	Year int `json:"year,omitempty"`
}

// KnowsProps is the payload of a knows edge.
type KnowsProps struct {
	Since int `json:"since,omitempty"`
}

// CitesProps is the payload of a cites edge.
type CitesProps struct {
	Quote string `json:"quote,omitempty"`
}

// AuthoredProps is the payload of an authored edge. Authorship carries no
// extra data today; the type exists so the edge variant keeps a stable
// props shape on the wire.
type AuthoredProps struct{}

// Person adapts itself to a node with an integer key.

func (p Person) NodeVariant() forcegraph.VariantName { return VariantPerson }
func (p Person) NodePK() int                         { return p.ID }
func (p Person) NodeName() string                    { return p.Name }
func (p Person) NodeProps() PersonProps              { return PersonProps{Bio: p.Bio, Image: p.Image} }

// NodeImageURL exposes the person's avatar to rendering layers.
func (p Person) NodeImageURL() (string, bool) { return p.Image, p.Image != "" }

// EdgeSourceComment and EdgeTargetComment let rendering layers phrase edge
// labels from the person's perspective.
func (p Person) EdgeSourceComment() (string, bool) { return p.Name, p.Name != "" }
func (p Person) EdgeTargetComment() (string, bool) { return p.Name, p.Name != "" }

// Document adapts itself to a node with a uuid key.

func (d Document) NodeVariant() forcegraph.VariantName { return VariantDocument }
func (d Document) NodePK() uuid.UUID                   { return d.ID }
func (d Document) NodeName() string                    { return d.Title }
func (d Document) NodeProps() DocumentProps            { return DocumentProps{Year: d.Year} }
