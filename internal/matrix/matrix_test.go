package matrix

import (
	"strings"
	"testing"
)

func TestColorValidate(t *testing.T) {
	tests := []struct {
		name    string
		color   Color
		wantErr string
	}{
		{"black", Color{0, 0, 0}, ""},
		{"white", Color{255, 255, 255}, ""},
		{"red_too_high", Color{256, 0, 0}, `"r"`},
		{"green_negative", Color{0, -1, 0}, `"g"`},
		{"blue_too_high", Color{0, 0, 300}, `"b"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.color.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error %q should mention %s", err, tt.wantErr)
			}
		})
	}
}

func fullRows(c Color) [][]Color {
	rows := make([][]Color, Height)
	for y := range rows {
		rows[y] = make([]Color, Width)
		for x := range rows[y] {
			rows[y][x] = c
		}
	}
	return rows
}

func TestParseGrid(t *testing.T) {
	red := Color{R: 255}

	t.Run("valid", func(t *testing.T) {
		g, err := ParseGrid(fullRows(red))
		if err != nil {
			t.Fatalf("ParseGrid() = %v, want nil", err)
		}
		if g[7][7] != red {
			t.Errorf("g[7][7] = %+v, want %+v", g[7][7], red)
		}
	})

	t.Run("too_few_rows", func(t *testing.T) {
		rows := fullRows(red)[:7]
		if _, err := ParseGrid(rows); err == nil {
			t.Error("ParseGrid() should reject 7 rows")
		}
	})

	t.Run("too_many_rows", func(t *testing.T) {
		rows := append(fullRows(red), make([]Color, Width))
		if _, err := ParseGrid(rows); err == nil {
			t.Error("ParseGrid() should reject 9 rows")
		}
	})

	t.Run("short_row", func(t *testing.T) {
		rows := fullRows(red)
		rows[3] = rows[3][:7]
		_, err := ParseGrid(rows)
		if err == nil {
			t.Fatal("ParseGrid() should reject a short row")
		}
		if !strings.Contains(err.Error(), "row 3") {
			t.Errorf("error %q should name the offending row", err)
		}
	})

	t.Run("bad_channel", func(t *testing.T) {
		rows := fullRows(red)
		rows[2][5] = Color{R: 999}
		_, err := ParseGrid(rows)
		if err == nil {
			t.Fatal("ParseGrid() should reject an out-of-range channel")
		}
		if !strings.Contains(err.Error(), "(5, 2)") {
			t.Errorf("error %q should name the offending cell", err)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if _, err := ParseGrid(nil); err == nil {
			t.Error("ParseGrid() should reject nil input")
		}
	})
}

func TestCheckCoords(t *testing.T) {
	tests := []struct {
		name string
		x, y int
		ok   bool
	}{
		{"origin", 0, 0, true},
		{"corner", 7, 7, true},
		{"x_high", 8, 0, false},
		{"y_high", 0, 8, false},
		{"x_negative", -1, 0, false},
		{"y_negative", 0, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckCoords(tt.x, tt.y)
			if tt.ok && err != nil {
				t.Errorf("CheckCoords(%d, %d) = %v, want nil", tt.x, tt.y, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("CheckCoords(%d, %d) = nil, want error", tt.x, tt.y)
			}
		})
	}
}

func TestGridRows(t *testing.T) {
	var g Grid
	g[1][2] = Color{R: 10, G: 20, B: 30}
	rows := g.Rows()
	if len(rows) != Height {
		t.Fatalf("len(rows) = %d, want %d", len(rows), Height)
	}
	if len(rows[0]) != Width {
		t.Fatalf("len(rows[0]) = %d, want %d", len(rows[0]), Width)
	}
	if rows[1][2] != (Color{R: 10, G: 20, B: 30}) {
		t.Errorf("rows[1][2] = %+v, want the set color", rows[1][2])
	}
	// Mutating the copy must not touch the grid
	rows[1][2] = Color{}
	if g[1][2] == (Color{}) {
		t.Error("Rows() should return a copy, not aliased storage")
	}
}
