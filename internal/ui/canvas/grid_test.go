package canvas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrid_BoxWithTitle(t *testing.T) {
	g := New(12, 4)
	g.Box(1, 0, 10, 3, "hi", RoleBorder)

	assert.Equal(t, " ╭─ hi ───╮ ", g.Line(0))
	assert.Equal(t, " │        │ ", g.Line(1))
	assert.Equal(t, " ╰────────╯ ", g.Line(2))
	assert.Equal(t, "            ", g.Line(3))
	assert.Equal(t, RoleTitle, g.At(4, 0).Role)
	assert.Equal(t, RoleBorder, g.At(1, 0).Role)
}

func TestGrid_ClipsOutside(t *testing.T) {
	g := New(4, 2)
	g.Box(-2, -1, 5, 3, "", RoleBorder)

	assert.Equal(t, "  │ ", g.Line(0))
	assert.Equal(t, "──╯ ", g.Line(1))
	assert.Equal(t, Cell{Rune: ' '}, g.At(10, 10))
}

func TestGrid_WideRunes(t *testing.T) {
	g := New(5, 1)
	n := g.Text(0, 0, "日本x", RoleText, 0)
	assert.Equal(t, 5, n)
	assert.Equal(t, "日本x", g.Line(0))
	assert.True(t, g.At(1, 0).Continuation)

	g.Clear()
	g.Set(4, 0, '日', RoleText)
	assert.Equal(t, "     ", g.Line(0))
}

func TestGrid_TextTruncates(t *testing.T) {
	g := New(8, 1)
	g.Text(0, 0, "abcdefghij", RoleText, 5)
	assert.Equal(t, "abcd…   ", g.Line(0))
}

func TestGrid_Runs(t *testing.T) {
	g := New(6, 1)
	g.Text(0, 0, "ab", RoleTitle, 0)
	g.Text(2, 0, "cd", RoleMuted, 0)

	type run struct {
		text string
		role Role
	}
	var runs []run
	g.Runs(0, func(text string, role Role) { runs = append(runs, run{text, role}) })

	require.Len(t, runs, 3)
	assert.Equal(t, run{"ab", RoleTitle}, runs[0])
	assert.Equal(t, run{"cd", RoleMuted}, runs[1])
	assert.Equal(t, run{"  ", RoleBlank}, runs[2])
}

func TestGrid_Resize(t *testing.T) {
	g := New(2, 2)
	g.Set(0, 0, 'x', RoleText)
	g.Resize(3, 1)
	assert.Equal(t, 3, g.Width())
	assert.Equal(t, 1, g.Height())
	assert.Equal(t, "   ", g.String())
}
