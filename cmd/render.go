package cmd

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/mgrier/ennest/pkg/echonest"
)

// renderTable lays out rows as aligned columns. Widths are measured in
// display columns, accounting for Unicode characters, so CJK names and
// emoji line up correctly.
func renderTable(header []string, rows [][]string) string {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for i, cell := range row {
			if i > 0 {
				sb.WriteString("  ")
			}
			if i == len(row)-1 {
				// No trailing padding on the last column
				sb.WriteString(cell)
			} else {
				sb.WriteString(padToWidth(cell, widths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(header)
	underline := make([]string, len(header))
	for i, h := range header {
		underline[i] = strings.Repeat("-", runewidth.StringWidth(h))
	}
	writeRow(underline)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
// If text is shorter than width, pads with spaces.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text // no padding requested
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		truncated := runewidth.Truncate(text, width-ellipsisWidth, "")
		result := truncated + ellipsis

		// Ensure we're exactly at the target width (in case truncate was imprecise)
		resultWidth := runewidth.StringWidth(result)
		if resultWidth < width {
			padding := strings.Repeat(" ", width-resultWidth)
			return result + padding
		} else if resultWidth > width {
			return runewidth.Truncate(result, width, "")
		}
		return result
	} else if currentWidth < width {
		padding := strings.Repeat(" ", width-currentWidth)
		return text + padding
	}

	return text // exactly the right width
}

// artistRows converts query results into table rows.
func artistRows(artists []*echonest.Artist) [][]string {
	rows := make([][]string, len(artists))
	for i, artist := range artists {
		rows[i] = []string{artist.ID, artist.Name}
	}
	return rows
}
