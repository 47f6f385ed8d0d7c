// Package canvas provides a cell grid the terminal demos draw frames into.
package canvas

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Role tells a backend how to style a cell.
type Role uint8

const (
	RoleBlank Role = iota
	RoleText
	RoleBorder
	RoleTitle
	RoleActive
	RoleMuted
)

// Cell is one terminal cell. Wide runes occupy their cell and mark the next
// one as a continuation.
type Cell struct {
	Rune         rune
	Role         Role
	Continuation bool
}

// Grid is a fixed-size matrix of cells addressed by column and row.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// New creates a blank grid.
func New(width, height int) *Grid {
	g := &Grid{}
	g.Resize(width, height)
	return g
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Resize changes the grid dimensions and clears it.
func (g *Grid) Resize(width, height int) {
	g.width = max(width, 0)
	g.height = max(height, 0)
	g.cells = make([]Cell, g.width*g.height)
	g.Clear()
}

// Clear blanks every cell.
func (g *Grid) Clear() {
	for i := range g.cells {
		g.cells[i] = Cell{Rune: ' '}
	}
}

// At returns the cell at (x, y). Out-of-range coordinates return a blank cell.
func (g *Grid) At(x, y int) Cell {
	if !g.inside(x, y) {
		return Cell{Rune: ' '}
	}
	return g.cells[y*g.width+x]
}

func (g *Grid) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// Set writes r at (x, y) and returns the number of columns it used. Cells
// outside the grid are skipped; a wide rune that would not fit is replaced
// by a space.
func (g *Grid) Set(x, y int, r rune, role Role) int {
	w := runewidth.RuneWidth(r)
	if w == 0 {
		return 0
	}
	if !g.inside(x, y) {
		return w
	}
	if w == 2 && !g.inside(x+1, y) {
		r, w = ' ', 1
	}
	g.cells[y*g.width+x] = Cell{Rune: r, Role: role}
	if w == 2 {
		g.cells[y*g.width+x+1] = Cell{Rune: ' ', Role: role, Continuation: true}
	}
	return w
}

// Text writes s starting at (x, y), clipped to limit columns when limit > 0.
// It returns the number of columns written.
func (g *Grid) Text(x, y int, s string, role Role, limit int) int {
	if limit > 0 {
		s = runewidth.Truncate(s, limit, "…")
	}
	col := 0
	for _, r := range s {
		col += g.Set(x+col, y, r, role)
	}
	return col
}

// Fill writes r over the rectangle.
func (g *Grid) Fill(x, y, w, h int, r rune, role Role) {
	for row := y; row < y+h; row++ {
		for col := x; col < x+w; col++ {
			g.Set(col, row, r, role)
		}
	}
}

// Box draws a bordered rectangle with an optional title in the top edge and
// blanks its interior. Boxes smaller than 2x2 are not drawn.
func (g *Grid) Box(x, y, w, h int, title string, border Role) {
	if w < 2 || h < 2 {
		return
	}
	g.Fill(x+1, y+1, w-2, h-2, ' ', RoleText)

	g.Set(x, y, '╭', border)
	g.Set(x+w-1, y, '╮', border)
	g.Set(x, y+h-1, '╰', border)
	g.Set(x+w-1, y+h-1, '╯', border)
	for col := x + 1; col < x+w-1; col++ {
		g.Set(col, y, '─', border)
		g.Set(col, y+h-1, '─', border)
	}
	for row := y + 1; row < y+h-1; row++ {
		g.Set(x, row, '│', border)
		g.Set(x+w-1, row, '│', border)
	}

	if title != "" && w > 4 {
		g.Text(x+2, y, " "+title+" ", RoleTitle, w-4)
	}
}

// Line returns row y as plain text, with continuation cells skipped.
func (g *Grid) Line(y int) string {
	if y < 0 || y >= g.height {
		return ""
	}
	var sb strings.Builder
	for x := 0; x < g.width; x++ {
		c := g.cells[y*g.width+x]
		if c.Continuation {
			continue
		}
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// Runs calls fn for each maximal run of cells on row y sharing a role.
func (g *Grid) Runs(y int, fn func(text string, role Role)) {
	if y < 0 || y >= g.height || g.width == 0 {
		return
	}
	var sb strings.Builder
	current := g.cells[y*g.width].Role
	for x := 0; x < g.width; x++ {
		c := g.cells[y*g.width+x]
		if c.Role != current && !c.Continuation {
			fn(sb.String(), current)
			sb.Reset()
			current = c.Role
		}
		if !c.Continuation {
			sb.WriteRune(c.Rune)
		}
	}
	fn(sb.String(), current)
}

// String renders the grid as newline-separated plain rows.
func (g *Grid) String() string {
	lines := make([]string, g.height)
	for y := range lines {
		lines[y] = g.Line(y)
	}
	return strings.Join(lines, "\n")
}
