package models

import "github.com/gnode/gcaeditor/internal/marshal"

// AbstractGroup is a topic group of a conference. Prefix is used to build
// the printed abstract numbers.
type AbstractGroup struct {
	Identity
	Prefix int
	Name   *string
	Short  *string
}

func NewAbstractGroup() *AbstractGroup { return &AbstractGroup{} }

var AbstractGroupSchema = marshal.NewSchema("AbstractGroup", NewAbstractGroup,
	marshal.UUID("uuid", func(g *AbstractGroup) *string { return &g.UUID }),
	marshal.Int("prefix", func(g *AbstractGroup) *int { return &g.Prefix }),
	marshal.NullString("name", func(g *AbstractGroup) **string { return &g.Name }),
	marshal.NullString("short", func(g *AbstractGroup) **string { return &g.Short }),
)

func (g *AbstractGroup) Record() *marshal.Record { return marshal.Encode(AbstractGroupSchema, g) }

func (g *AbstractGroup) MarshalJSON() ([]byte, error) { return encodeJSON(AbstractGroupSchema, g) }

func (g *AbstractGroup) UnmarshalJSON(b []byte) error {
	return decodeJSON(AbstractGroupSchema, g, b)
}

// Conference is read only for the editor. Owners and Abstracts are resource
// locators set by the server.
type Conference struct {
	Identity
	Name      *string
	Short     *string
	Cite      *string
	Link      *string
	IsOpen    bool
	Groups    []*AbstractGroup
	Owners    *string
	Abstracts *string
}

func NewConference() *Conference {
	return &Conference{Groups: []*AbstractGroup{}}
}

var ConferenceSchema = marshal.NewSchema("Conference", NewConference,
	marshal.UUID("uuid", func(c *Conference) *string { return &c.UUID }),
	marshal.NullString("name", func(c *Conference) **string { return &c.Name }),
	marshal.NullString("short", func(c *Conference) **string { return &c.Short }),
	marshal.NullString("cite", func(c *Conference) **string { return &c.Cite }),
	marshal.NullString("link", func(c *Conference) **string { return &c.Link }),
	marshal.Bool("isOpen", func(c *Conference) *bool { return &c.IsOpen }),
	marshal.Many("groups", AbstractGroupSchema, func(c *Conference) *[]*AbstractGroup { return &c.Groups }),
	marshal.NullString("owners", func(c *Conference) **string { return &c.Owners }).AsOpaque(),
	marshal.NullString("abstracts", func(c *Conference) **string { return &c.Abstracts }).AsOpaque(),
)

func (c *Conference) Record() *marshal.Record { return marshal.Encode(ConferenceSchema, c) }

func (c *Conference) MarshalJSON() ([]byte, error) { return encodeJSON(ConferenceSchema, c) }

func (c *Conference) UnmarshalJSON(b []byte) error { return decodeJSON(ConferenceSchema, c, b) }

// Group returns the group with the given prefix.
func (c *Conference) Group(prefix int) (*AbstractGroup, bool) {
	for _, g := range c.Groups {
		if g.Prefix == prefix {
			return g, true
		}
	}
	return nil, false
}
