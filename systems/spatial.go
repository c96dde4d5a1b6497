// Package systems provides the per-tick ECS systems that sense, decide,
// move and feed each animal.
package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/foragers/vmath"
)

// MaxGridCols bounds the grid resolution for very small food sizes.
const MaxGridCols = 64

// FoodGrid is a uniform bucket grid over the unit square that indexes food
// by its creation index. Queries return candidate indices in ascending
// order, so callers iterating the candidates see foods in the same order
// as a full scan would.
type FoodGrid struct {
	cols   int
	cells  [][]int // flat grid of food indices
	cellOf []int   // food index -> cell, -1 if not inserted
}

// NewFoodGrid creates a grid whose cells are roughly cellSize wide, for
// foods indexed 0..n-1.
func NewFoodGrid(cellSize float32, n int) *FoodGrid {
	cols := 1
	if cellSize > 0 {
		cols = int(1 / cellSize)
	}
	cols = max(1, min(cols, MaxGridCols))

	cells := make([][]int, cols*cols)
	for i := range cells {
		cells[i] = make([]int, 0, 4)
	}

	cellOf := make([]int, n)
	for i := range cellOf {
		cellOf[i] = -1
	}

	return &FoodGrid{
		cols:   cols,
		cells:  cells,
		cellOf: cellOf,
	}
}

// Cols returns the number of columns (and rows) in the grid.
func (g *FoodGrid) Cols() int { return g.cols }

// Set places food i at p, moving it out of its previous cell if needed.
func (g *FoodGrid) Set(i int, p vmath.Vec2) {
	idx := g.cellIndex(p)
	prev := g.cellOf[i]
	if prev == idx {
		return
	}
	if prev >= 0 {
		bucket := g.cells[prev]
		if j := slices.Index(bucket, i); j >= 0 {
			g.cells[prev] = slices.Delete(bucket, j, j+1)
		}
	}
	g.cells[idx] = append(g.cells[idx], i)
	g.cellOf[i] = idx
}

// Candidates appends to dst every food index whose cell overlaps the square
// of half-width radius around p, sorted ascending. It is a superset of the
// foods within radius; callers apply the exact distance test.
func (g *FoodGrid) Candidates(dst []int, p vmath.Vec2, radius float32) []int {
	// A radius of 1 already spans the whole unit grid; larger values would
	// overflow the column conversion.
	radius = min(radius, 1)

	// One cell of padding absorbs float rounding at the square's edges
	minCol := g.coord(p.X-radius) - 1
	maxCol := g.coord(p.X+radius) + 1
	minRow := g.coord(p.Y-radius) - 1
	maxRow := g.coord(p.Y+radius) + 1

	minCol, maxCol = max(minCol, 0), min(maxCol, g.cols-1)
	minRow, maxRow = max(minRow, 0), min(maxRow, g.cols-1)

	start := len(dst)
	for row := minRow; row <= maxRow; row++ {
		for col := minCol; col <= maxCol; col++ {
			dst = append(dst, g.cells[row*g.cols+col]...)
		}
	}
	slices.Sort(dst[start:])
	return dst
}

// coord maps a coordinate to a (possibly out of range) column.
func (g *FoodGrid) coord(v float32) int {
	return int(math.Floor(float64(v) * float64(g.cols)))
}

// cellIndex returns the flat index for a position, clamped to the grid.
func (g *FoodGrid) cellIndex(p vmath.Vec2) int {
	col := min(max(g.coord(p.X), 0), g.cols-1)
	row := min(max(g.coord(p.Y), 0), g.cols-1)
	return row*g.cols + col
}
