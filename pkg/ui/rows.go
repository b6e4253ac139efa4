package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/vanderheijden86/folio/pkg/model"
	"github.com/vanderheijden86/folio/pkg/search"
)

const (
	sizeColWidth = 9
	minNameWidth = 8
	iconFolder   = "📁"
	iconFile     = "📄"
	markFavorite = "★"
)

// rowLayout holds the column widths for one render pass.
type rowLayout struct {
	width     int
	dateWidth int
	nameWidth int
}

func newRowLayout(width int, dateLayout string) rowLayout {
	// Day-of-month layouts like "2" can render one cell wider.
	l := rowLayout{width: width, dateWidth: runewidth.StringWidth(dateLayout) + 1}
	// cursor bar + indicator + icon + favorite mark + separators
	l.nameWidth = width - 1 - 2 - 3 - 2 - sizeColWidth - 2 - l.dateWidth - 1
	if l.nameWidth < minNameWidth {
		l.nameWidth = minNameWidth
	}
	return l
}

// renderColumnHeader renders the column titles above the rows.
func (m Model) renderColumnHeader(l rowLayout) string {
	line := " " + padRight("  Name", 2+3+2+l.nameWidth) +
		padLeft("Size", sizeColWidth) + "  " + padRight("Modified", l.dateWidth)
	return m.theme.ColumnHead.Render(truncate(line, l.width))
}

// renderRow renders one projection row: expand indicator, icon, name,
// favorite mark, size and modified date.
func (m Model) renderRow(r search.Row, cursor bool, l rowLayout) string {
	t := m.theme

	indent := strings.Repeat("  ", r.Depth)
	indicator := "  "
	icon := iconFile
	if r.Kind == model.KindFolder {
		icon = iconFolder
		if r.HasChildren {
			indicator = "▸ "
			if r.Expanded {
				indicator = "▾ "
			}
		}
	}

	nameWidth := l.nameWidth - runewidth.StringWidth(indent)
	if nameWidth < 1 {
		nameWidth = 1
	}
	name := padRight(truncate(r.Name, nameWidth), nameWidth)

	fav := "  "
	if m.ws.Selection().IsFavorite(r.ID) {
		fav = markFavorite + " "
	}

	size := padLeft(r.Size, sizeColWidth)
	date := padRight(formatDate(r.ModifiedAt, m.cfg.UI.DateFormat), l.dateWidth)

	if cursor {
		plain := indent + indicator + icon + " " + name + fav + size + "  " + date
		return t.Selected.Render(padRight(truncate(plain, l.width-1), l.width-1))
	}

	nameStyle := t.FileText
	if icon == iconFolder {
		nameStyle = t.FolderText
	}
	line := " " + indent + t.MutedText.Render(indicator) + icon + " " + nameStyle.Render(name) +
		t.Favorite.Render(fav) + t.MutedText.Render(size) + "  " + t.MutedText.Render(date)
	return line
}

// renderRows renders the visible window of rows.
func (m Model) renderRows(rows []search.Row, height int, l rowLayout) string {
	if len(rows) == 0 {
		msg := "No files"
		switch {
		case m.ws.Query() != "":
			msg = "No matches for \"" + m.ws.Query() + "\""
		case m.tab == tabFavorites:
			msg = "No favorites yet. Press f to pin the highlighted item."
		}
		return m.theme.MutedText.Render("  " + msg)
	}

	end := m.offset + height
	if end > len(rows) {
		end = len(rows)
	}
	var b strings.Builder
	for i := m.offset; i < end; i++ {
		if i > m.offset {
			b.WriteByte('\n')
		}
		b.WriteString(m.renderRow(rows[i], i == m.cursor, l))
	}
	return b.String()
}
