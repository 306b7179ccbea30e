// Package pattern seeds a grid from a saved layout instead of random fill.
// It understands the plaintext convention used by Life pattern collections:
// '.' for dead, 'O' (or '*') for alive, '!' starting a comment line. Loaded
// patterns are centered on the target grid and applied through the same cell
// write interface the random seeder uses.
package pattern

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"automata/internal/core"
)

// Builtin templates, addressable by name instead of a file path.
var templates = map[string][]string{
	"glider": {
		".O.",
		"..O",
		"OOO",
	},
	"blinker": {
		"OOO",
	},
	"block": {
		"OO",
		"OO",
	},
}

// Names lists the builtin template names.
func Names() []string {
	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	return names
}

// Load reads a plaintext pattern from path, or a builtin template when path
// matches a template name, and returns a full cell buffer for size with the
// pattern centered.
func Load(path string, size core.Size) ([]uint8, error) {
	if rows, ok := templates[path]; ok {
		return place(rows, size)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("pattern: %w", err)
	}
	defer f.Close()
	rows, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("pattern %s: %w", path, err)
	}
	return place(rows, size)
}

// parse reads the plaintext body into trimmed pattern rows.
func parse(r io.Reader) ([]string, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), " \t\r")
		if strings.HasPrefix(line, "!") {
			continue
		}
		for _, c := range line {
			if c != '.' && c != 'O' && c != '*' {
				return nil, fmt.Errorf("unexpected character %q", c)
			}
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("empty pattern")
	}
	return rows, nil
}

// place centers the pattern rows on a zeroed buffer of the given size.
func place(rows []string, size core.Size) ([]uint8, error) {
	ph := len(rows)
	pw := 0
	for _, row := range rows {
		if len(row) > pw {
			pw = len(row)
		}
	}
	if pw > size.W || ph > size.H {
		return nil, fmt.Errorf("pattern: %dx%d does not fit a %dx%d grid", pw, ph, size.W, size.H)
	}

	cells := make([]uint8, size.Cells())
	x0 := (size.W - pw) / 2
	y0 := (size.H - ph) / 2
	for y, row := range rows {
		for x, c := range row {
			if c == 'O' || c == '*' {
				cells[(y0+y)*size.W+x0+x] = 1
			}
		}
	}
	return cells, nil
}
