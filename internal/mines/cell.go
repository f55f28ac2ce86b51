package mines

import "strconv"

type Cell struct {
	Row, Col      int
	Mine          bool
	Revealed      bool
	Flagged       bool
	NeighborMines int
}

// Cell implements [fmt.Stringer]. The output is meant for logs and
// tests; hidden cells show as "-", revealed empty cells as ".".
func (c Cell) String() string {
	switch {
	case !c.Revealed && c.Flagged:
		return "F"
	case !c.Revealed:
		return "-"
	case c.Mine:
		return "*"
	case c.NeighborMines == 0:
		return "."
	default:
		return strconv.Itoa(c.NeighborMines)
	}
}
