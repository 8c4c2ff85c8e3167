package matrix

import "fmt"

// Fixed dimensions of the Unicorn HAT.
const (
	Width  = 8
	Height = 8
)

// Color is a single LED cell. Channels are ints rather than bytes so that
// out-of-range JSON values can be rejected instead of silently truncated.
type Color struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// Validate checks that every channel is within [0, 255].
func (c Color) Validate() error {
	channels := []struct {
		name string
		val  int
	}{
		{"r", c.R},
		{"g", c.G},
		{"b", c.B},
	}
	for _, ch := range channels {
		if ch.val < 0 || ch.val > 255 {
			return fmt.Errorf("color component %q must be an integer between 0 and 255", ch.name)
		}
	}
	return nil
}

// Grid is the full matrix state, row-major: Grid[y][x].
type Grid [Height][Width]Color

// ParseGrid validates a decoded JSON grid and converts it to a fixed-size
// Grid. The input must be exactly Height rows of exactly Width colors each.
func ParseGrid(rows [][]Color) (Grid, error) {
	var g Grid
	if len(rows) != Height {
		return g, fmt.Errorf("grid must be an array of %d rows", Height)
	}
	for y, row := range rows {
		if len(row) != Width {
			return g, fmt.Errorf("row %d must be an array of %d colors", y, Width)
		}
		for x, c := range row {
			if err := c.Validate(); err != nil {
				return g, fmt.Errorf("invalid color at position (%d, %d): %w", x, y, err)
			}
			g[y][x] = c
		}
	}
	return g, nil
}

// CheckCoords rejects coordinates outside the matrix.
func CheckCoords(x, y int) error {
	if x < 0 || x >= Width || y < 0 || y >= Height {
		return fmt.Errorf("coordinates must be within 0-%d", Width-1)
	}
	return nil
}

// Rows converts the grid back to the nested-slice shape used on the wire.
func (g Grid) Rows() [][]Color {
	rows := make([][]Color, Height)
	for y := 0; y < Height; y++ {
		row := make([]Color, Width)
		copy(row, g[y][:])
		rows[y] = row
	}
	return rows
}
