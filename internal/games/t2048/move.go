package t2048

import (
	"errors"
	"fmt"
	"strings"
)

// Direction represents a move direction.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

// Directions lists every direction in declaration order.
var Directions = []Direction{DirUp, DirDown, DirLeft, DirRight}

// ErrUnknownDirection is returned by ParseDirection for unrecognised input.
var ErrUnknownDirection = errors.New("t2048: unknown direction")

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// ParseDirection converts a name such as "left" or "L" into a Direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return DirUp, nil
	case "down", "d":
		return DirDown, nil
	case "left", "l":
		return DirLeft, nil
	case "right", "r":
		return DirRight, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// Outcome is the result of applying a move with the post-move protocol.
type Outcome int

const (
	// OutcomeMoved means the board changed and a tile was spawned.
	OutcomeMoved Outcome = iota
	// OutcomeNoop means nothing changed but a move is still possible.
	OutcomeNoop
	// OutcomeTerminal means nothing changed and no move is possible.
	OutcomeTerminal
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeMoved:
		return "moved"
	case OutcomeNoop:
		return "noop"
	case OutcomeTerminal:
		return "terminal"
	default:
		return "unknown"
	}
}

// lineMapper maps (line, pos) to a board cell for a board of size n.
// Position 0 is the wall tiles move toward.
type lineMapper func(n, line, pos int) (row, col int)

var lineMappers = map[Direction]lineMapper{
	DirUp:    func(n, line, pos int) (int, int) { return pos, line },
	DirDown:  func(n, line, pos int) (int, int) { return n - 1 - pos, line },
	DirLeft:  func(n, line, pos int) (int, int) { return line, pos },
	DirRight: func(n, line, pos int) (int, int) { return line, n - 1 - pos },
}

// MoveEngine slides and merges tiles on a Board.
type MoveEngine struct{}

// Slide compacts and merges every line of b toward dir.
// Returns whether any cell changed.
func (MoveEngine) Slide(b *Board, dir Direction) bool {
	at, ok := lineMappers[dir]
	if !ok {
		panic(fmt.Sprintf("t2048: invalid direction %d", dir))
	}

	n := b.size
	changed := false
	merged := make([]bool, n)

	for line := range n {
		clear(merged)

		for pos := 1; pos < n; pos++ {
			r, c := at(n, line, pos)
			v := b.cells[r][c]
			if v == Empty {
				continue
			}

			// Slide through empty cells toward the wall.
			t := pos
			for t > 0 {
				pr, pc := at(n, line, t-1)
				if b.cells[pr][pc] != Empty {
					break
				}
				tr, tc := at(n, line, t)
				b.cells[pr][pc] = v
				b.cells[tr][tc] = Empty
				t--
				changed = true
			}

			if t == 0 {
				continue
			}

			// Merge with the next tile once; merged tiles are locked for this pass.
			pr, pc := at(n, line, t-1)
			if b.cells[pr][pc] == v && !merged[t-1] {
				tr, tc := at(n, line, t)
				b.set(pr, pc, v*2)
				b.cells[tr][tc] = Empty
				merged[t-1] = true
				changed = true
			}
		}
	}

	return changed
}

// Apply slides b toward dir, then spawns a tile if the board changed or
// checks whether any move is left if it did not.
func (e MoveEngine) Apply(b *Board, dir Direction) Outcome {
	if e.Slide(b, dir) {
		b.SpawnTile()
		return OutcomeMoved
	}
	if b.HasAnyMove() {
		return OutcomeNoop
	}
	return OutcomeTerminal
}
