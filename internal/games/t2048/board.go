// Package t2048 implements the 2048 sliding-tile puzzle: the board state machine,
// the directional move engine and a game adapter for the arcade platform.
package t2048

import (
	"errors"
	"fmt"
)

// Empty is the value of a cell that holds no tile.
const Empty = 0

// DefaultSize is the classic board dimension.
const DefaultSize = 4

// DefaultSpawn4 is the probability that a spawned tile is a 4 instead of a 2.
const DefaultSpawn4 = 0.10

var (
	// ErrNotSquare is returned when a grid is not N×N.
	ErrNotSquare = errors.New("t2048: grid is not square")
	// ErrInvalidTile is returned when a cell holds something other than a power of two >= 2.
	ErrInvalidTile = errors.New("t2048: invalid tile value")
	// ErrNoSource is returned when a board is built without a random source.
	ErrNoSource = errors.New("t2048: nil random source")
)

// Source is the random source used for spawning tiles.
// *math/rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Cell is a 0-indexed board coordinate.
type Cell struct {
	Row, Col int
}

// Board is an N×N grid of tile values. Zero means empty.
type Board struct {
	size   int
	cells  [][]int
	rng    Source
	spawn4 float64
}

// BoardOption configures a Board.
type BoardOption func(*Board)

// WithSpawn4Probability overrides the chance of spawning a 4.
func WithSpawn4Probability(p float64) BoardOption {
	return func(b *Board) {
		b.spawn4 = p
	}
}

// NewBoard creates an empty size×size board and spawns two tiles.
func NewBoard(size int, rng Source, opts ...BoardOption) *Board {
	if size < 2 {
		panic(fmt.Sprintf("t2048: board size %d is too small", size))
	}
	if rng == nil {
		panic("t2048: nil random source")
	}

	b := &Board{
		size:   size,
		rng:    rng,
		spawn4: DefaultSpawn4,
	}
	for _, opt := range opts {
		opt(b)
	}

	b.Reset()
	return b
}

// LoadBoard builds a board from explicit rows without spawning any tiles.
// rng is still required for later spawns.
func LoadBoard(rows [][]int, rng Source, opts ...BoardOption) (*Board, error) {
	size := len(rows)
	if size < 2 {
		return nil, fmt.Errorf("%w: %d rows", ErrNotSquare, size)
	}

	cells := make([][]int, size)
	for r, row := range rows {
		if len(row) != size {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrNotSquare, r, len(row), size)
		}
		for c, v := range row {
			if v != Empty && !isTile(v) {
				return nil, fmt.Errorf("%w: %d at (%d,%d)", ErrInvalidTile, v, r, c)
			}
		}
		cells[r] = append([]int(nil), row...)
	}
	if rng == nil {
		return nil, fmt.Errorf("load board: %w", ErrNoSource)
	}

	b := &Board{
		size:   size,
		cells:  cells,
		rng:    rng,
		spawn4: DefaultSpawn4,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// isTile reports whether v is a power of two >= 2.
func isTile(v int) bool {
	return v >= 2 && v&(v-1) == 0
}

// Reset replaces the grid with an empty one and spawns two tiles.
func (b *Board) Reset() {
	b.cells = make([][]int, b.size)
	for r := range b.cells {
		b.cells[r] = make([]int, b.size)
	}
	b.SpawnTile()
	b.SpawnTile()
}

// Size returns the board dimension.
func (b *Board) Size() int {
	return b.size
}

// ValueAt returns the tile value at (row, col), or Empty.
func (b *Board) ValueAt(row, col int) int {
	return b.cells[row][col]
}

// set writes a cell, panicking on values that break the tile invariant.
func (b *Board) set(row, col, v int) {
	if v != Empty && !isTile(v) {
		panic(fmt.Sprintf("t2048: refusing to store %d at (%d,%d)", v, row, col))
	}
	b.cells[row][col] = v
}

// EmptyCells returns the empty coordinates in row-major order.
func (b *Board) EmptyCells() []Cell {
	var cells []Cell
	for r := range b.size {
		for c := range b.size {
			if b.cells[r][c] == Empty {
				cells = append(cells, Cell{Row: r, Col: c})
			}
		}
	}
	return cells
}

// SpawnTile places a 2 (or, rarely, a 4) on a random empty cell.
// Returns the cell and true, or false when the board is full.
func (b *Board) SpawnTile() (Cell, bool) {
	empty := b.EmptyCells()
	if len(empty) == 0 {
		return Cell{}, false
	}

	cell := empty[b.rng.Intn(len(empty))]

	value := 2
	if b.rng.Float64() >= 1-b.spawn4 {
		value = 4
	}

	b.set(cell.Row, cell.Col, value)
	return cell, true
}

// HasAnyMove reports whether there is an empty cell or any pair of equal
// horizontally or vertically adjacent tiles.
func (b *Board) HasAnyMove() bool {
	for r := range b.size {
		for c := range b.size {
			v := b.cells[r][c]
			if v == Empty {
				return true
			}
			if c < b.size-1 && b.cells[r][c+1] == v {
				return true
			}
			if r < b.size-1 && b.cells[r+1][c] == v {
				return true
			}
		}
	}
	return false
}

// Rows returns a copy of the grid.
func (b *Board) Rows() [][]int {
	rows := make([][]int, b.size)
	for r := range b.cells {
		rows[r] = append([]int(nil), b.cells[r]...)
	}
	return rows
}

// MaxTile returns the largest tile on the board.
func (b *Board) MaxTile() int {
	maxVal := 0
	for _, row := range b.cells {
		for _, v := range row {
			maxVal = max(maxVal, v)
		}
	}
	return maxVal
}

// TileCount returns the number of non-empty cells.
func (b *Board) TileCount() int {
	n := 0
	for _, row := range b.cells {
		for _, v := range row {
			if v != Empty {
				n++
			}
		}
	}
	return n
}
