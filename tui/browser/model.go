// Package browser is the interactive terminal view of a catalogd server.
package browser

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/tui/theme"
)

// Source is where the browser reads the catalog from.
type Source interface {
	ListCats(ctx context.Context) ([]models.Cat, error)
	Subscribe(ctx context.Context) (<-chan models.Cat, error)
}

type catsLoadedMsg struct {
	cats []models.Cat
	err  error
}

type subscribedMsg struct {
	events <-chan models.Cat
	err    error
}

type catAddedMsg struct {
	cat models.Cat
}

type subscriptionClosedMsg struct{}

// Model is the bubbletea model for the catalog browser.
type Model struct {
	ctx    context.Context
	source Source
	keys   KeyMap
	help   help.Model
	table  table.Model

	cats        []models.Cat
	events      <-chan models.Cat
	live        bool
	showDetails bool
	err         error
	width       int
	height      int
}

// New creates a browser over source. ctx bounds the subscription.
func New(ctx context.Context, source Source) *Model {
	t := table.New(
		table.WithColumns(columns(80)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Foreground(theme.DefaultTheme.TableHeader.GetForeground()).
		BorderBottom(true).
		Bold(true)
	styles.Selected = theme.DefaultTheme.Selected
	t.SetStyles(styles)

	return &Model{
		ctx:    ctx,
		source: source,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		table:  t,
		cats:   []models.Cat{},
	}
}

// Run starts the browser and blocks until the user quits.
func Run(ctx context.Context, source Source) error {
	p := tea.NewProgram(New(ctx, source), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

// Cats returns the entries currently shown.
func (m *Model) Cats() []models.Cat {
	return m.cats
}

// Init loads the catalog and opens the subscription.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.subscribe())
}

func (m *Model) load() tea.Cmd {
	return func() tea.Msg {
		cats, err := m.source.ListCats(m.ctx)
		return catsLoadedMsg{cats: cats, err: err}
	}
}

func (m *Model) subscribe() tea.Cmd {
	return func() tea.Msg {
		events, err := m.source.Subscribe(m.ctx)
		return subscribedMsg{events: events, err: err}
	}
}

func waitForEvent(events <-chan models.Cat) tea.Cmd {
	return func() tea.Msg {
		cat, ok := <-events
		if !ok {
			return subscriptionClosedMsg{}
		}
		return catAddedMsg{cat: cat}
	}
}

func columns(width int) []table.Column {
	// Fixed columns first, the picture URL takes the rest
	cols := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Name", Width: 16},
		{Title: "Nicknames", Width: 24},
		{Title: "Colour", Width: 8},
	}
	used := 0
	for _, c := range cols {
		used += c.Width + 2
	}
	pic := width - used - 2
	if pic < 10 {
		pic = 10
	}
	return append(cols, table.Column{Title: "Picture", Width: pic})
}
