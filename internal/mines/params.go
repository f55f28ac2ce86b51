package mines

import "fmt"

type Params struct {
	Rows  int `json:"rows"`
	Cols  int `json:"cols"`
	Mines int `json:"mines"`
}

func (p Params) Unpack() (rows, cols, mines int) {
	return p.Rows, p.Cols, p.Mines
}

func (p Params) Validate() error {
	switch {
	case p.Rows < 1 || p.Cols < 1:
		return fmt.Errorf("%w: board must be at least 1x1, got %dx%d",
			ErrInvalidParams, p.Rows, p.Cols)
	case p.Rows*p.Cols < 2:
		return fmt.Errorf("%w: board must have at least 2 cells", ErrInvalidParams)
	case p.Mines < 1:
		return fmt.Errorf("%w: mine count must be positive, got %d",
			ErrInvalidParams, p.Mines)
	}
	return nil
}

// Clamped leaves at least one safe cell on the board.
func (p Params) Clamped() Params {
	p.Mines = min(p.Mines, p.Rows*p.Cols-1)
	return p
}

func (p Params) PointInBounds(row, col int) bool {
	return 0 <= row && row < p.Rows && 0 <= col && col < p.Cols
}

func (p Params) String() string {
	return fmt.Sprintf("%dx%d(%d)", p.Rows, p.Cols, p.Mines)
}
