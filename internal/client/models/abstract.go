package models

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/gnode/gcaeditor/internal/marshal"
	"github.com/gnode/gcaeditor/internal/workflow"
)

// Author of an abstract. Affiliations holds positions in the affiliations
// list of the owning abstract.
type Author struct {
	Identity
	Mail         *string
	FirstName    *string
	MiddleName   *string
	LastName     *string
	Position     int
	Affiliations []int
}

func NewAuthor() *Author { return &Author{Affiliations: []int{}} }

var AuthorSchema = marshal.NewSchema("Author", NewAuthor,
	marshal.UUID("uuid", func(a *Author) *string { return &a.UUID }),
	marshal.NullString("mail", func(a *Author) **string { return &a.Mail }),
	marshal.NullString("firstName", func(a *Author) **string { return &a.FirstName }),
	marshal.NullString("middleName", func(a *Author) **string { return &a.MiddleName }),
	marshal.NullString("lastName", func(a *Author) **string { return &a.LastName }),
	marshal.Int("position", func(a *Author) *int { return &a.Position }),
	marshal.Ints("affiliations", func(a *Author) *[]int { return &a.Affiliations }),
)

func (a *Author) Record() *marshal.Record { return marshal.Encode(AuthorSchema, a) }

func (a *Author) MarshalJSON() ([]byte, error) { return encodeJSON(AuthorSchema, a) }

func (a *Author) UnmarshalJSON(b []byte) error { return decodeJSON(AuthorSchema, a, b) }

// FormatName returns "First Middle Last" without the missing parts.
func (a *Author) FormatName() string {
	return joinNonEmpty(" ", Deref(a.FirstName), Deref(a.MiddleName), Deref(a.LastName))
}

// FormatAffiliations returns the 1-based affiliation numbers in ascending
// order, e.g. "1, 3".
func (a *Author) FormatAffiliations() string {
	pos := make([]int, len(a.Affiliations))
	copy(pos, a.Affiliations)
	sort.Ints(pos)

	parts := make([]string, len(pos))
	for i, p := range pos {
		parts[i] = strconv.Itoa(p + 1)
	}
	return strings.Join(parts, ", ")
}

// HasAffiliation reports whether the author references the affiliation at
// position idx.
func (a *Author) HasAffiliation(idx int) bool {
	for _, p := range a.Affiliations {
		if p == idx {
			return true
		}
	}
	return false
}

type Affiliation struct {
	Identity
	Address    *string
	Country    *string
	Department *string
	Name       *string
	Section    *string
	Position   int
}

func NewAffiliation() *Affiliation { return &Affiliation{} }

var AffiliationSchema = marshal.NewSchema("Affiliation", NewAffiliation,
	marshal.UUID("uuid", func(a *Affiliation) *string { return &a.UUID }),
	marshal.NullString("address", func(a *Affiliation) **string { return &a.Address }),
	marshal.NullString("country", func(a *Affiliation) **string { return &a.Country }),
	marshal.NullString("department", func(a *Affiliation) **string { return &a.Department }),
	marshal.NullString("name", func(a *Affiliation) **string { return &a.Name }),
	marshal.NullString("section", func(a *Affiliation) **string { return &a.Section }),
	marshal.Int("position", func(a *Affiliation) *int { return &a.Position }),
)

func (a *Affiliation) Record() *marshal.Record { return marshal.Encode(AffiliationSchema, a) }

func (a *Affiliation) MarshalJSON() ([]byte, error) { return encodeJSON(AffiliationSchema, a) }

func (a *Affiliation) UnmarshalJSON(b []byte) error {
	return decodeJSON(AffiliationSchema, a, b)
}

// Format joins name, section, department, address and country.
func (a *Affiliation) Format() string {
	return joinNonEmpty(", ",
		Deref(a.Name), Deref(a.Section), Deref(a.Department), Deref(a.Address), Deref(a.Country))
}

// Figure is attached to an abstract by upload. File is the image URL.
type Figure struct {
	Identity
	Name    *string
	Caption *string
	File    *string
}

func NewFigure() *Figure { return &Figure{} }

var FigureSchema = marshal.NewSchema("Figure", NewFigure,
	marshal.UUID("uuid", func(f *Figure) *string { return &f.UUID }),
	marshal.NullString("name", func(f *Figure) **string { return &f.Name }),
	marshal.NullString("caption", func(f *Figure) **string { return &f.Caption }),
	marshal.NullString("file", func(f *Figure) **string { return &f.File }),
)

func (f *Figure) Record() *marshal.Record { return marshal.Encode(FigureSchema, f) }

func (f *Figure) MarshalJSON() ([]byte, error) { return encodeJSON(FigureSchema, f) }

func (f *Figure) UnmarshalJSON(b []byte) error { return decodeJSON(FigureSchema, f, b) }

type Reference struct {
	Identity
	Authors *string
	Title   *string
	Year    *string
	DOI     *string
}

func NewReference() *Reference { return &Reference{} }

var ReferenceSchema = marshal.NewSchema("Reference", NewReference,
	marshal.UUID("uuid", func(r *Reference) *string { return &r.UUID }),
	marshal.NullString("authors", func(r *Reference) **string { return &r.Authors }),
	marshal.NullString("title", func(r *Reference) **string { return &r.Title }),
	marshal.NullString("year", func(r *Reference) **string { return &r.Year }),
	marshal.NullString("doi", func(r *Reference) **string { return &r.DOI }),
)

func (r *Reference) Record() *marshal.Record { return marshal.Encode(ReferenceSchema, r) }

func (r *Reference) MarshalJSON() ([]byte, error) { return encodeJSON(ReferenceSchema, r) }

func (r *Reference) UnmarshalJSON(b []byte) error { return decodeJSON(ReferenceSchema, r, b) }

// Format renders a citation line: "authors title (year), doi".
func (r *Reference) Format() string {
	var b strings.Builder
	b.WriteString(Deref(r.Authors))
	if t := Deref(r.Title); t != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t)
	}
	if y := Deref(r.Year); y != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "(%s)", y)
	}
	if d := Deref(r.DOI); d != "" {
		if b.Len() > 0 {
			b.WriteString(", ")
		}
		b.WriteString(d)
	}
	return b.String()
}

// Abstract is the editable submission. Owners is the locator of the owner
// list and Figures is managed through separate upload calls, so neither is
// sent back on save.
type Abstract struct {
	Identity
	SortID             int
	Title              *string
	Topic              *string
	Text               *string
	DOI                *string
	ConflictOfInterest *string
	Acknowledgements   *string
	Owners             *string
	State              workflow.State
	Figures            []*Figure
	Authors            []*Author
	Affiliations       []*Affiliation
	References         []*Reference
}

func NewAbstract() *Abstract {
	return &Abstract{
		State:        workflow.InPreparation,
		Figures:      []*Figure{},
		Authors:      []*Author{},
		Affiliations: []*Affiliation{},
		References:   []*Reference{},
	}
}

var AbstractSchema = marshal.NewSchema("Abstract", NewAbstract,
	marshal.UUID("uuid", func(a *Abstract) *string { return &a.UUID }),
	marshal.Int("sortId", func(a *Abstract) *int { return &a.SortID }),
	marshal.NullString("title", func(a *Abstract) **string { return &a.Title }),
	marshal.NullString("topic", func(a *Abstract) **string { return &a.Topic }),
	marshal.NullString("text", func(a *Abstract) **string { return &a.Text }),
	marshal.NullString("doi", func(a *Abstract) **string { return &a.DOI }),
	marshal.NullString("conflictOfInterest", func(a *Abstract) **string { return &a.ConflictOfInterest }),
	marshal.NullString("acknowledgements", func(a *Abstract) **string { return &a.Acknowledgements }),
	marshal.NullString("owners", func(a *Abstract) **string { return &a.Owners }).AsOpaque(),
	marshal.Enum("state", workflow.ParseState, func(a *Abstract) *workflow.State { return &a.State }),
	marshal.Many("figures", FigureSchema, func(a *Abstract) *[]*Figure { return &a.Figures }).AsOpaque(),
	marshal.Many("authors", AuthorSchema, func(a *Abstract) *[]*Author { return &a.Authors }),
	marshal.Many("affiliations", AffiliationSchema, func(a *Abstract) *[]*Affiliation { return &a.Affiliations }),
	marshal.Many("references", ReferenceSchema, func(a *Abstract) *[]*Reference { return &a.References }),
)

// DecodeAbstract builds an abstract from a wire record.
func DecodeAbstract(rec *marshal.Record) (*Abstract, error) {
	return marshal.Decode(AbstractSchema, rec)
}

func (a *Abstract) Record() *marshal.Record { return marshal.Encode(AbstractSchema, a) }

func (a *Abstract) MarshalJSON() ([]byte, error) { return encodeJSON(AbstractSchema, a) }

func (a *Abstract) UnmarshalJSON(b []byte) error { return decodeJSON(AbstractSchema, a, b) }

// Paragraphs splits the text on line breaks. An empty text has none.
func (a *Abstract) Paragraphs() []string {
	t := Deref(a.Text)
	if t == "" {
		return nil
	}
	return strings.Split(t, "\n")
}

// HasFigures reports whether a figure is attached.
func (a *Abstract) HasFigures() bool { return len(a.Figures) > 0 }

// Clone returns a deep copy. Fields are copied through the schema; the
// state and the opaque fields are carried over explicitly, so a state the
// decoder would reject is copied as is.
func (a *Abstract) Clone() *Abstract {
	rec := marshal.Encode(AbstractSchema, a)
	rec.Delete("state")
	c, err := marshal.Decode(AbstractSchema, rec)
	if err != nil {
		// Encode only emits values the schema can read back.
		panic(fmt.Sprintf("models: clone abstract: %v", err))
	}
	c.State = a.State
	if a.Owners != nil {
		c.Owners = Str(*a.Owners)
	}
	c.Figures = make([]*Figure, 0, len(a.Figures))
	for _, f := range a.Figures {
		cp := *f
		if f.Name != nil {
			cp.Name = Str(*f.Name)
		}
		if f.Caption != nil {
			cp.Caption = Str(*f.Caption)
		}
		if f.File != nil {
			cp.File = Str(*f.File)
		}
		c.Figures = append(c.Figures, &cp)
	}
	return c
}
