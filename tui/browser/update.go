package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	ctable "github.com/grovetools/catalogd/tui/components/table"
)

// Update handles messages and updates the model accordingly.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table.SetColumns(columns(msg.Width))
		m.table.SetHeight(m.tableHeight())
		return m, nil

	case catsLoadedMsg:
		m.err = msg.err
		if msg.err == nil {
			m.cats = msg.cats
			m.syncRows()
		}
		return m, nil

	case subscribedMsg:
		if msg.err != nil {
			m.live = false
			return m, nil
		}
		m.events = msg.events
		m.live = true
		return m, waitForEvent(m.events)

	case catAddedMsg:
		m.cats = append(m.cats, msg.cat)
		m.syncRows()
		return m, waitForEvent(m.events)

	case subscriptionClosedMsg:
		m.live = false
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			m.table.SetHeight(m.tableHeight())
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *Model) syncRows() {
	rows := make([]table.Row, len(m.cats))
	for i, cat := range m.cats {
		rows[i] = table.Row(ctable.CatRow(i, cat))
	}
	m.table.SetRows(rows)
}

func (m *Model) tableHeight() int {
	// Title, help and spacing
	reserved := 5
	if m.showDetails {
		reserved += 6
	}
	h := m.height - reserved
	if h < 3 {
		h = 3
	}
	return h
}
