package picture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewDefaults(t *testing.T) {
	p := New()
	require.Equal(t, 64, p.Width())
	require.Equal(t, 64, p.Height())
	require.Equal(t, "untitled", p.Name())
	require.Zero(t, p.Len())

	p = New(WithWidth(10))
	require.Equal(t, 10, p.Width())
	require.Equal(t, 10, p.Height(), "height should follow width")

	p = New(WithWidth(10), WithHeight(3), WithName("ship"))
	require.Equal(t, 3, p.Height())
	require.Equal(t, "ship", p.Name())

	p = New(WithWidth(-5), WithHeight(0))
	require.Equal(t, 64, p.Width())
	require.Equal(t, 64, p.Height())
}

func TestSetThenGet(t *testing.T) {
	p := New(WithWidth(8), WithHeight(4))
	colors := []Color{"ff0000", "#00ff00", "abc", "000000"}
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			c := colors[(row+col)%len(colors)]
			require.NoError(t, p.SetColor(row, col, c))
			require.Equal(t, c, p.Color(row, col))
		}
	}
	require.Equal(t, 32, p.Len())
}

func TestSetOverwrites(t *testing.T) {
	p := New(WithWidth(2))
	require.NoError(t, p.SetColor(1, 1, "ff0000"))
	require.NoError(t, p.SetColor(1, 1, "0000ff"))
	require.Equal(t, Color("0000ff"), p.Color(1, 1))
	require.Equal(t, 1, p.Len())
}

func TestSetTransparentClears(t *testing.T) {
	p := New(WithWidth(2))
	require.NoError(t, p.SetColor(0, 1, "ff0000"))
	require.NoError(t, p.SetColor(0, 1, Transparent))
	require.Equal(t, Transparent, p.Color(0, 1))
	require.Zero(t, p.Len())
}

func TestClearColorAlwaysTransparent(t *testing.T) {
	p := New(WithWidth(3))
	require.NoError(t, p.SetColor(2, 2, "ff0000"))
	for _, cell := range [][2]int{{2, 2}, {0, 0}, {-1, 4}, {99, 99}} {
		p.ClearColor(cell[0], cell[1])
		require.Equal(t, Transparent, p.Color(cell[0], cell[1]))
	}
	require.Zero(t, p.Len())
}

func TestSetColorOutOfRange(t *testing.T) {
	p := New(WithWidth(2), WithHeight(2))
	for _, cell := range [][2]int{{2, 0}, {0, 2}, {-1, 0}, {0, -1}} {
		err := p.SetColor(cell[0], cell[1], "ff0000")
		require.Error(t, err)
		require.True(t, errors.Is(err, ErrOutOfRange))
		var rangeErr *RangeError
		require.ErrorAs(t, err, &rangeErr)
		require.Equal(t, cell[0], rangeErr.Row)
		require.Equal(t, cell[1], rangeErr.Col)
	}
	require.Zero(t, p.Len())
	require.Equal(t, Transparent, p.Color(5, 5))
}

func TestResizeKeepsInertCells(t *testing.T) {
	p := New(WithWidth(2), WithHeight(2))
	require.NoError(t, p.SetColor(1, 1, "ff0000"))
	require.NoError(t, p.SetColor(0, 0, "00ff00"))

	require.NoError(t, p.Resize(1, 1))
	require.Equal(t, 1, p.Width())
	require.Equal(t, 1, p.Height())
	require.Equal(t, Transparent, p.Color(1, 1))
	require.Equal(t, Color("00ff00"), p.Color(0, 0))
	require.Equal(t, 2, p.Len(), "inert cell stays stored")
	require.Len(t, p.Painted(), 1)
	require.ErrorIs(t, p.SetColor(1, 1, "0000ff"), ErrOutOfRange)

	require.NoError(t, p.Resize(2, 2))
	require.Equal(t, Color("ff0000"), p.Color(1, 1), "growing back exposes the old cell")
}

func TestResizeRejectsNonPositive(t *testing.T) {
	p := New(WithWidth(4))
	require.ErrorIs(t, p.Resize(0, 3), ErrOutOfRange)
	require.ErrorIs(t, p.Resize(3, -1), ErrOutOfRange)
	require.Equal(t, 4, p.Width())
	require.Equal(t, 4, p.Height())
}

func TestEraseAll(t *testing.T) {
	p := New(WithWidth(4), WithHeight(3), WithName("bird"))
	for row := 0; row < 3; row++ {
		require.NoError(t, p.SetColor(row, row, "123456"))
	}
	require.NoError(t, p.Resize(2, 2))
	p.EraseAll()
	require.NoError(t, p.Resize(4, 3))
	for row := 0; row < p.Height(); row++ {
		for col := 0; col < p.Width(); col++ {
			require.Equal(t, Transparent, p.Color(row, col))
		}
	}
	require.Zero(t, p.Len())
	require.Equal(t, "bird", p.Name())
}

func TestPaintedOrder(t *testing.T) {
	p := New(WithWidth(4))
	require.NoError(t, p.SetColor(2, 1, "c"))
	require.NoError(t, p.SetColor(0, 3, "b"))
	require.NoError(t, p.SetColor(0, 1, "a"))
	require.Equal(t, []Cell{
		{Row: 0, Col: 1, Color: "a"},
		{Row: 0, Col: 3, Color: "b"},
		{Row: 2, Col: 1, Color: "c"},
	}, p.Painted())
}

func TestWithBitmapCopies(t *testing.T) {
	bm := map[int]map[int]Color{0: {0: "ff0000", 1: Transparent}}
	p := New(WithWidth(2), WithBitmap(bm))
	bm[0][0] = "000000"
	require.Equal(t, Color("ff0000"), p.Color(0, 0))
	require.Equal(t, 1, p.Len())
}

func TestSetName(t *testing.T) {
	p := New()
	p.SetName("logo")
	require.Equal(t, "logo", p.Name())
	p.SetName("")
	require.Equal(t, DefaultName, p.Name())
}
