package terrain

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// MinSize is the smallest grid that still has an interior cell.
const MinSize = 3

// Grid is an immutable N×N snapshot of categories stored in row-major order.
// The zero Grid is empty.
type Grid struct {
	n     int
	cells []Category
}

func newGrid(n int, cells []Category) Grid {
	if len(cells) != n*n {
		panic("terrain: grid cell count does not match dimension")
	}
	return Grid{n: n, cells: slices.Clone(cells)}
}

// GridFromRows builds a grid from a square slice of rows. It is mostly useful
// for tests and for comparing against hand-built maps.
func GridFromRows(rows [][]Category) (Grid, error) {
	n := len(rows)
	if n < MinSize {
		return Grid{}, &ConfigError{Kind: GridTooSmall, Size: n}
	}
	cells := make([]Category, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return Grid{}, fmt.Errorf("terrain: row %d has %d cells, want %d", i, len(row), n)
		}
		cells = append(cells, row...)
	}
	return Grid{n: n, cells: cells}, nil
}

// Size returns the grid dimension N.
func (g Grid) Size() int { return g.n }

// At returns the category at (row, col). It panics when out of range.
func (g Grid) At(row, col int) Category {
	if row < 0 || row >= g.n || col < 0 || col >= g.n {
		panic("terrain: cell (" + strconv.Itoa(row) + "," + strconv.Itoa(col) + ") out of range")
	}
	return g.cells[row*g.n+col]
}

// Row returns a copy of the given row.
func (g Grid) Row(row int) []Category {
	return slices.Clone(g.cells[row*g.n : (row+1)*g.n])
}

// Rows returns a copy of the grid as a slice of rows.
func (g Grid) Rows() [][]Category {
	rows := make([][]Category, g.n)
	for i := range rows {
		rows[i] = g.Row(i)
	}
	return rows
}

// Cells returns a row-major copy of every cell.
func (g Grid) Cells() []Category { return slices.Clone(g.cells) }

// IsBorder reports whether (row, col) lies on the outer ring.
func (g Grid) IsBorder(row, col int) bool {
	return isBorder(g.n, row, col)
}

// Count returns how many cells hold c.
func (g Grid) Count(c Category) int {
	total := 0
	for _, v := range g.cells {
		if v == c {
			total++
		}
	}
	return total
}

// Equal reports whether both grids have the same size and cells.
func (g Grid) Equal(other Grid) bool {
	return g.n == other.n && slices.Equal(g.cells, other.cells)
}

// WriteText writes one line per row: the cell ordinals, each followed by a
// comma, wrapped in brackets.
func (g Grid) WriteText(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for row := 0; row < g.n; row++ {
		bw.WriteByte('[')
		for _, c := range g.cells[row*g.n : (row+1)*g.n] {
			bw.WriteString(strconv.Itoa(int(c)))
			bw.WriteByte(',')
		}
		bw.WriteString("]\n")
	}
	return bw.Flush()
}

func (g Grid) String() string {
	var sb strings.Builder
	_ = g.WriteText(&sb)
	return sb.String()
}

func isBorder(n, row, col int) bool {
	return row == 0 || row == n-1 || col == 0 || col == n-1
}
