// Package table provides a terminal table renderer backed by lipgloss.
// Consumers supply data via the TableData interface rather than building
// lipgloss tables directly.
package table

import (
	"fmt"
	"os"
	"strings"
	"time"

	// Packages
	lipgloss "github.com/charmbracelet/lipgloss"
	lgtable "github.com/charmbracelet/lipgloss/table"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// TableData is the interface that data sources implement to be rendered
// as a terminal table.
type TableData interface {
	// Header returns the column header labels.
	Header() []string

	// Len returns the number of rows.
	Len() int

	// Row returns the cell values for row i. Values are converted to
	// strings via FormatCell. Return nil to skip a row.
	Row(i int) []any
}

// Bold wraps a cell value so that FormatCell renders it in bold.
type Bold struct{ Value any }

// Status renders as a pass or fail glyph followed by the label
type Status bool

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

const (
	Pass = "✅"
	Fail = "❌"
)

///////////////////////////////////////////////////////////////////////////////
// STYLES

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	boldStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	passStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	cellStyle   = lipgloss.NewStyle().PaddingRight(1)
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Render renders the table data as a string suitable for terminal output.
// The table is constrained to the terminal width when stdout is a terminal.
func Render(data TableData) string {
	width := 0
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}
	return RenderWidth(data, width)
}

// RenderWidth renders the table data, wrapping cells when the natural
// rendering is wider than width. A width of zero disables wrapping.
func RenderWidth(data TableData, width int) string {
	t := lgtable.New().
		Headers(data.Header()...).
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Wrap(true).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == lgtable.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	for i := range data.Len() {
		row := data.Row(i)
		if row == nil {
			continue
		}
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = FormatCell(v)
		}
		t.Row(cells...)
	}

	// Only constrain to the width if the natural render exceeds it
	result := t.Render()
	if width > 0 {
		widest := 0
		for _, line := range strings.Split(result, "\n") {
			if n := lipgloss.Width(line); n > widest {
				widest = n
			}
		}
		if widest > width {
			t.Width(width)
			result = t.Render()
		}
	}

	return result
}

///////////////////////////////////////////////////////////////////////////////
// HELPERS

// Truncate shortens s to max runes, collapsing newlines and appending "…"
// if truncated.
func Truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return "…"
	}
	return string(r[:max-1]) + "…"
}

// FormatCell converts a value to a display string for a table cell.
// It handles nil, empty strings, zero values, time formatting, status
// glyphs and Bold wrapping.
func FormatCell(v any) string {
	if v == nil {
		return "-"
	}
	switch val := v.(type) {
	case Bold:
		return boldStyle.Render(FormatCell(val.Value))
	case Status:
		if val {
			return passStyle.Render(Pass + " PASS")
		}
		return failStyle.Render(Fail + " FAIL")
	case string:
		if val == "" {
			return "-"
		}
		return val
	case time.Time:
		if val.IsZero() {
			return "-"
		}
		return val.Format("2006-01-02 15:04")
	case time.Duration:
		if val == 0 {
			return "-"
		}
		return val.Round(time.Millisecond).String()
	case int:
		if val == 0 {
			return "-"
		}
		return fmt.Sprint(val)
	case uint:
		if val == 0 {
			return "-"
		}
		return fmt.Sprint(val)
	default:
		s := fmt.Sprint(val)
		if s == "" {
			return "-"
		}
		return s
	}
}
