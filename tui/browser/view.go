package browser

import (
	"fmt"
	"strings"

	"github.com/grovetools/catalogd/tui/theme"
)

// View renders the browser.
func (m *Model) View() string {
	t := theme.DefaultTheme
	var b strings.Builder

	status := t.Muted.Render("offline")
	if m.live {
		status = t.Success.Render("● live")
	}
	b.WriteString(fmt.Sprintf("%s  %s  %s\n\n",
		t.Header.Render("catalogd"),
		t.Muted.Render(fmt.Sprintf("%d entries", len(m.cats))),
		status))

	if m.err != nil {
		b.WriteString(t.Error.Render("Error: "+m.err.Error()) + "\n\n")
	}

	b.WriteString(m.table.View())
	b.WriteString("\n")

	if m.showDetails {
		b.WriteString(m.detailsView())
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) detailsView() string {
	t := theme.DefaultTheme
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.cats) {
		return t.Muted.Render("  nothing selected") + "\n"
	}
	cat := m.cats[idx]

	pic := "none"
	if cat.PicURL != nil {
		pic = *cat.PicURL
	}
	nicknames := "none"
	if len(cat.Nicknames) > 0 {
		nicknames = strings.Join(cat.Nicknames, ", ")
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Muted.Render("Name:     "), t.Accent.Render(cat.Name)))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Muted.Render("Nicknames:"), nicknames))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Muted.Render("Colour:   "), theme.ColourStyle(cat.Colour).Render(string(cat.Colour))))
	b.WriteString(fmt.Sprintf("  %s %s\n", t.Muted.Render("Picture:  "), pic))
	return b.String()
}
