package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	ltable "github.com/charmbracelet/lipgloss/table"
	"github.com/grovetools/catalogd/pkg/models"
	"github.com/grovetools/catalogd/tui/theme"
)

// CatHeaders are the column titles for catalog listings.
var CatHeaders = []string{"#", "NAME", "NICKNAMES", "COLOUR", "PICTURE"}

// NewStyledTable creates a new lipgloss table with the default styling
func NewStyledTable() *ltable.Table {
	t := theme.DefaultTheme

	return ltable.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.Border)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == ltable.HeaderRow {
				return t.TableHeader.Padding(0, 1)
			}
			baseStyle := lipgloss.NewStyle().Padding(0, 1)
			if row%2 == 0 {
				return baseStyle.Background(theme.VerySubtleBackground)
			}
			return baseStyle
		})
}

// CatRow flattens an entry into table cells.
func CatRow(index int, cat models.Cat) []string {
	pic := "-"
	if cat.PicURL != nil {
		pic = *cat.PicURL
	}
	nicknames := "-"
	if len(cat.Nicknames) > 0 {
		nicknames = strings.Join(cat.Nicknames, ", ")
	}
	return []string{
		strconv.Itoa(index + 1),
		cat.Name,
		nicknames,
		string(cat.Colour),
		pic,
	}
}

// RenderCats renders the catalog as a bordered table.
func RenderCats(cats []models.Cat) string {
	t := NewStyledTable().Headers(CatHeaders...)
	for i, cat := range cats {
		row := CatRow(i, cat)
		row[3] = theme.ColourStyle(cat.Colour).Render(row[3])
		t.Row(row...)
	}
	return t.Render()
}
