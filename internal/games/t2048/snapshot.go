package t2048

// Snapshot captures the complete board state for rendering, transport and tests.
type Snapshot struct {
	Size    int     `json:"size"`
	Cells   [][]int `json:"cells"`
	State   State   `json:"state"`
	MaxTile int     `json:"max_tile"`
	Tiles   int     `json:"tiles"`
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Size:    s.board.Size(),
		Cells:   s.board.Rows(),
		State:   s.state,
		MaxTile: s.board.MaxTile(),
		Tiles:   s.board.TileCount(),
	}
}
