package browser

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	cats    []models.Cat
	listErr error
	events  chan models.Cat
}

func (f *fakeSource) ListCats(context.Context) ([]models.Cat, error) {
	return f.cats, f.listErr
}

func (f *fakeSource) Subscribe(context.Context) (<-chan models.Cat, error) {
	return f.events, nil
}

func TestLoadAndSubscribe(t *testing.T) {
	source := &fakeSource{
		cats:   []models.Cat{models.NewCat("Tom", models.ColourGrey, "")},
		events: make(chan models.Cat, 1),
	}
	m := New(context.Background(), source)

	m.Update(m.load()())
	require.Len(t, m.Cats(), 1)
	assert.Contains(t, m.View(), "Tom")

	_, cmd := m.Update(m.subscribe()())
	require.NotNil(t, cmd)
	assert.Contains(t, m.View(), "live")

	source.events <- models.NewCat("Felix", models.ColourBlack, "")
	_, next := m.Update(cmd())
	require.NotNil(t, next)
	require.Len(t, m.Cats(), 2)
	assert.Equal(t, "Felix", m.Cats()[1].Name)

	close(source.events)
	m.Update(next())
	assert.Contains(t, m.View(), "offline")
}

func TestLoadError(t *testing.T) {
	source := &fakeSource{listErr: errors.New("connection refused")}
	m := New(context.Background(), source)

	m.Update(m.load()())
	assert.Empty(t, m.Cats())
	assert.Contains(t, m.View(), "connection refused")
}

func TestKeys(t *testing.T) {
	source := &fakeSource{cats: []models.Cat{models.NewCat("Salem", models.ColourBlack, "https://example.com/salem.png")}}
	m := New(context.Background(), source)
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m.Update(m.load()())

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "https://example.com/salem.png")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	require.NotNil(t, cmd)
	loaded, ok := cmd().(catsLoadedMsg)
	require.True(t, ok)
	assert.Len(t, loaded.cats, 1)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
