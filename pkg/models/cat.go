package models

import (
	"fmt"
	"slices"

	"github.com/invopop/jsonschema"
)

// Colour is the closed set of coat colours a catalog entry can carry.
type Colour string

const (
	ColourBlack  Colour = "Black"
	ColourWhite  Colour = "White"
	ColourGinger Colour = "Ginger"
	ColourGrey   Colour = "Grey"
	ColourTabby  Colour = "Tabby"
	ColourCalico Colour = "Calico"
)

var colours = []Colour{ColourBlack, ColourWhite, ColourGinger, ColourGrey, ColourTabby, ColourCalico}

// Colours returns every valid colour in declaration order.
func Colours() []Colour {
	return slices.Clone(colours)
}

// ParseColour returns the Colour named by s, or an error if s is not a known colour.
func ParseColour(s string) (Colour, error) {
	for _, c := range colours {
		if string(c) == s {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown colour %q (expected one of %v)", s, colours)
}

// Valid reports whether c is a member of the closed colour set.
func (c Colour) Valid() bool {
	_, err := ParseColour(string(c))
	return err == nil
}

// JSONSchema publishes the colour enum to schema reflection.
func (Colour) JSONSchema() *jsonschema.Schema {
	enum := make([]interface{}, len(colours))
	for i, c := range colours {
		enum[i] = string(c)
	}
	return &jsonschema.Schema{
		Type:        "string",
		Enum:        enum,
		Description: "Coat colour",
	}
}

// Cat is a single catalog entry. Entries carry no identifier and are
// compared by value; the catalog permits duplicates.
type Cat struct {
	Name      string   `json:"name" yaml:"name" toml:"name" jsonschema:"required,description=Display name"`
	Nicknames []string `json:"nicknames" yaml:"nicknames" toml:"nicknames" jsonschema:"required,description=Alternative names in order of preference"`
	PicURL    *string  `json:"picUrl" yaml:"pic_url,omitempty" toml:"pic_url,omitempty" jsonschema:"nullable,description=Optional picture URL"`
	Colour    Colour   `json:"colour" yaml:"colour" toml:"colour" jsonschema:"required"`
}

// NewCat builds a Cat, normalising a nil nickname list to an empty one so it
// encodes as [] rather than null.
func NewCat(name string, colour Colour, picURL string, nicknames ...string) Cat {
	cat := Cat{
		Name:      name,
		Nicknames: append([]string{}, nicknames...),
		Colour:    colour,
	}
	if picURL != "" {
		cat.PicURL = &picURL
	}
	return cat
}

// Equal reports whether two entries hold the same values.
func (c Cat) Equal(other Cat) bool {
	if c.Name != other.Name || c.Colour != other.Colour {
		return false
	}
	if !slices.Equal(c.Nicknames, other.Nicknames) {
		return false
	}
	switch {
	case c.PicURL == nil && other.PicURL == nil:
		return true
	case c.PicURL == nil || other.PicURL == nil:
		return false
	default:
		return *c.PicURL == *other.PicURL
	}
}

// Clone returns a deep copy so callers cannot mutate stored entries.
func (c Cat) Clone() Cat {
	out := c
	out.Nicknames = append([]string{}, c.Nicknames...)
	if c.PicURL != nil {
		pic := *c.PicURL
		out.PicURL = &pic
	}
	return out
}
