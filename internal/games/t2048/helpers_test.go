package t2048

import "testing"

// stubSource replays fixed draws. When a queue runs out it returns zero.
type stubSource struct {
	ints   []int
	floats []float64
}

func (s *stubSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *stubSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// mustLoad builds a board from rows or fails the test.
func mustLoad(t *testing.T, rows [][]int) *Board {
	t.Helper()
	b, err := LoadBoard(rows, &stubSource{})
	if err != nil {
		t.Fatalf("LoadBoard(%v) failed: %v", rows, err)
	}
	return b
}

// rowBoard returns a 4x4 board whose first row is row and the rest empty.
func rowBoard(t *testing.T, row []int) *Board {
	t.Helper()
	return mustLoad(t, [][]int{
		row,
		{0, 0, 0, 0},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	})
}

// checkerboard is a full board with no equal neighbours.
func checkerboard() [][]int {
	return [][]int{
		{2, 4, 2, 4},
		{4, 2, 4, 2},
		{2, 4, 2, 4},
		{4, 2, 4, 2},
	}
}

func equalRows(a, b [][]int) bool {
	if len(a) != len(b) {
		return false
	}
	for r := range a {
		if len(a[r]) != len(b[r]) {
			return false
		}
		for c := range a[r] {
			if a[r][c] != b[r][c] {
				return false
			}
		}
	}
	return true
}

// boardSum returns the total of all tile values.
func boardSum(b *Board) int {
	total := 0
	for _, row := range b.Rows() {
		for _, v := range row {
			total += v
		}
	}
	return total
}
