package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColour(t *testing.T) {
	for _, c := range Colours() {
		got, err := ParseColour(string(c))
		require.NoError(t, err)
		assert.Equal(t, c, got)
		assert.True(t, c.Valid())
	}

	_, err := ParseColour("Purple")
	assert.Error(t, err)
	assert.False(t, Colour("black").Valid(), "colour names are case sensitive")
}

func TestCatJSONEncoding(t *testing.T) {
	t.Run("absent picture encodes as null", func(t *testing.T) {
		data, err := json.Marshal(NewCat("Tom", ColourBlack, ""))
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Tom","nicknames":[],"picUrl":null,"colour":"Black"}`, string(data))
	})

	t.Run("picture and nicknames", func(t *testing.T) {
		data, err := json.Marshal(NewCat("Garfield", ColourGinger, "https://example.com/g.png", "Garf", "Fatcat"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"name":"Garfield","nicknames":["Garf","Fatcat"],"picUrl":"https://example.com/g.png","colour":"Ginger"}`, string(data))
	})
}

func TestCatEqualAndClone(t *testing.T) {
	a := NewCat("Crookshanks", ColourGinger, "https://example.com/c.png", "Crooks")
	b := a.Clone()
	assert.True(t, a.Equal(b))

	b.Nicknames[0] = "Shanks"
	assert.False(t, a.Equal(b))
	assert.Equal(t, "Crooks", a.Nicknames[0], "clone must not share the nickname slice")

	c := a.Clone()
	c.PicURL = nil
	assert.False(t, a.Equal(c))
	assert.True(t, NewCat("x", ColourGrey, "").Equal(NewCat("x", ColourGrey, "")))
}

func TestColourJSONSchema(t *testing.T) {
	s := ColourBlack.JSONSchema()
	assert.Equal(t, "string", s.Type)
	assert.Len(t, s.Enum, len(Colours()))
	assert.Contains(t, s.Enum, "Tabby")
}
