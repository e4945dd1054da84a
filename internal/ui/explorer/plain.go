// Package explorer renders an explore.Explorer: interactively in a bubbletea
// TUI on a terminal, or as a plain aligned table / JSON array for piping.
package explorer

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/moltstreet/mstctl/internal/explore"
)

// PrintPlain prints the full refined collection as an aligned table for
// non-TTY output. Shows full content without truncation.
func PrintPlain[E explore.Entity](schema explore.Schema, rows []E) {
	cols := schema.Columns
	if len(cols) == 0 {
		fmt.Println("(0 rows)")
		return
	}

	// Column widths from actual content (no truncation)
	widths := make([]int, len(cols))
	cells := make([][]string, len(rows))
	for i, c := range cols {
		widths[i] = len(c.Title)
	}
	for r, row := range rows {
		cells[r] = make([]string, len(cols))
		for i, c := range cols {
			val := c.CellText(row)
			cells[r][i] = val
			if len(val) > widths[i] {
				widths[i] = len(val)
			}
		}
	}

	for i, c := range cols {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(Pad(c.Title, widths[i]))
	}
	fmt.Println()

	for i, w := range widths {
		if i > 0 {
			fmt.Print("  ")
		}
		fmt.Print(strings.Repeat("─", w))
	}
	fmt.Println()

	for _, row := range cells {
		for i, val := range row {
			if i > 0 {
				fmt.Print("  ")
			}
			fmt.Print(Pad(val, widths[i]))
		}
		fmt.Println()
	}

	fmt.Println()
	fmt.Printf("(%d rows)\n", len(rows))
}

// PrintJSON outputs the refined collection as a JSON array of objects keyed
// by column key, with raw (unformatted) values.
func PrintJSON[E explore.Entity](schema explore.Schema, rows []E) error {
	results := make([]map[string]any, len(rows))
	for i, row := range rows {
		obj := make(map[string]any, len(schema.Columns))
		for _, c := range schema.Columns {
			v := row.Field(c.Key)
			switch v.Kind() {
			case explore.KindNull:
				obj[c.Key] = nil
			case explore.KindNumber:
				obj[c.Key] = v.Num()
			case explore.KindBool:
				obj[c.Key] = v.Truth()
			default:
				obj[c.Key] = v.Str()
			}
		}
		results[i] = obj
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(results)
}

// Pad adds spaces to reach the desired width (no truncation).
func Pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Truncate shortens a string to fit width, adding "..." if needed.
func Truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width > 3 {
		return s[:width-3] + "..."
	}
	return s[:width]
}

// PadOrTruncate pads or truncates to exact width (for the TUI table).
func PadOrTruncate(s string, width int) string {
	if len(s) > width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-len(s))
}
