// Package picture holds the in-memory pixel picture: its dimensions, its name
// and a sparse bitmap of painted cells.
//
// Range policy: SetColor rejects cells outside [0,Height) x [0,Width) with a
// *RangeError. ClearColor accepts any cell, so entries left behind by a
// shrinking Resize can still be removed. Color reads anything out of range
// as Transparent.
package picture

import (
	"fmt"
	"sort"
)

const (
	DefaultSize = 64
	DefaultName = "untitled"
)

// Color is a hex color string such as "ff0000". The zero value is Transparent.
type Color string

// Transparent marks a cell with no color entry.
const Transparent Color = ""

// Cell is one painted cell.
type Cell struct {
	Row   int
	Col   int
	Color Color
}

// Picture is a named, dimensioned sparse bitmap. It is not safe for
// concurrent use.
type Picture struct {
	width  int
	height int
	name   string
	bitmap map[int]map[int]Color
}

type Option func(*Picture)

func WithWidth(w int) Option { return func(p *Picture) { p.width = w } }

func WithHeight(h int) Option { return func(p *Picture) { p.height = h } }

func WithName(name string) Option { return func(p *Picture) { p.name = name } }

// WithBitmap seeds the picture with cells. The map is copied.
func WithBitmap(bm map[int]map[int]Color) Option {
	return func(p *Picture) {
		for row, cols := range bm {
			for col, c := range cols {
				if c != Transparent {
					p.put(row, col, c)
				}
			}
		}
	}
}

// New creates a picture. Width defaults to 64, height to the width and the
// name to "untitled".
func New(opts ...Option) *Picture {
	p := &Picture{bitmap: make(map[int]map[int]Color)}
	for _, opt := range opts {
		opt(p)
	}
	if p.width <= 0 {
		p.width = DefaultSize
	}
	if p.height <= 0 {
		p.height = p.width
	}
	if p.name == "" {
		p.name = DefaultName
	}
	return p
}

func (p *Picture) Width() int   { return p.width }
func (p *Picture) Height() int  { return p.height }
func (p *Picture) Name() string { return p.name }

// SetName renames the picture. An empty name restores the default.
func (p *Picture) SetName(name string) {
	if name == "" {
		name = DefaultName
	}
	p.name = name
}

// InBounds reports whether (row, col) is inside the current dimensions.
func (p *Picture) InBounds(row, col int) bool {
	return row >= 0 && row < p.height && col >= 0 && col < p.width
}

// Color returns the color at (row, col), or Transparent.
func (p *Picture) Color(row, col int) Color {
	if !p.InBounds(row, col) {
		return Transparent
	}
	return p.bitmap[row][col]
}

// SetColor paints (row, col). Setting Transparent clears the cell.
func (p *Picture) SetColor(row, col int, c Color) error {
	if !p.InBounds(row, col) {
		return &RangeError{Row: row, Col: col, Width: p.width, Height: p.height}
	}
	if c == Transparent {
		p.ClearColor(row, col)
		return nil
	}
	p.put(row, col, c)
	return nil
}

// ClearColor removes the entry at (row, col) if there is one.
func (p *Picture) ClearColor(row, col int) {
	cols, ok := p.bitmap[row]
	if !ok {
		return
	}
	delete(cols, col)
	if len(cols) == 0 {
		delete(p.bitmap, row)
	}
}

// Resize changes the dimensions. Cells outside the new bounds are kept but
// never read back until the picture grows again or they are cleared.
func (p *Picture) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("resize to %dx%d: %w", width, height, ErrOutOfRange)
	}
	p.width = width
	p.height = height
	return nil
}

// EraseAll drops every cell.
func (p *Picture) EraseAll() {
	p.bitmap = make(map[int]map[int]Color)
}

// Len counts stored entries, inert ones included.
func (p *Picture) Len() int {
	n := 0
	for _, cols := range p.bitmap {
		n += len(cols)
	}
	return n
}

// Painted lists in-bounds cells ordered by row, then column.
func (p *Picture) Painted() []Cell {
	out := make([]Cell, 0, p.Len())
	for row, cols := range p.bitmap {
		for col, c := range cols {
			if p.InBounds(row, col) {
				out = append(out, Cell{Row: row, Col: col, Color: c})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

func (p *Picture) put(row, col int, c Color) {
	cols, ok := p.bitmap[row]
	if !ok {
		cols = make(map[int]Color)
		p.bitmap[row] = cols
	}
	cols[col] = c
}
