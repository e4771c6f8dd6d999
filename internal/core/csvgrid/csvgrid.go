// Package csvgrid turns published spreadsheet CSV into a grid of cells and
// writes grids back as fully quoted CSV
package csvgrid

import (
	"io"
	"strings"
)

// Parse splits text into rows of cells. It never fails: an unbalanced quote
// swallows the rest of the input into the current cell. A trailing line
// terminator does not produce an empty row
func Parse(text string) [][]string {
	var (
		rows     [][]string
		row      []string
		cell     strings.Builder
		inQuotes bool
	)
	endRow := func() {
		row = append(row, cell.String())
		cell.Reset()
		rows = append(rows, row)
		row = nil
	}

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case c == '"' && inQuotes && i+1 < len(text) && text[i+1] == '"':
			cell.WriteByte('"')
			i++
		case c == '"':
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			row = append(row, cell.String())
			cell.Reset()
		case (c == '\n' || c == '\r') && !inQuotes:
			if c == '\r' && i+1 < len(text) && text[i+1] == '\n' {
				i++
			}
			endRow()
		default:
			cell.WriteByte(c)
		}
	}
	if cell.Len() > 0 || len(row) > 0 {
		endRow()
	}
	return rows
}

// Format renders rows with every cell quote-wrapped, inner quotes doubled,
// rows joined by \n
func Format(rows [][]string) string {
	var b strings.Builder
	_ = Write(&b, rows)
	return b.String()
}

// Write streams Format(rows) to w
func Write(w io.Writer, rows [][]string) error {
	var line strings.Builder
	for i, row := range rows {
		line.Reset()
		if i > 0 {
			line.WriteByte('\n')
		}
		for j, cell := range row {
			if j > 0 {
				line.WriteByte(',')
			}
			line.WriteByte('"')
			line.WriteString(strings.ReplaceAll(cell, `"`, `""`))
			line.WriteByte('"')
		}
		if _, err := io.WriteString(w, line.String()); err != nil {
			return err
		}
	}
	return nil
}
