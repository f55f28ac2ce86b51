package mines

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// Board owns the grid. Mines are placed on the first reveal, so the
// first revealed cell is always safe.
type Board struct {
	rows, cols int
	mineCount  int
	armed      bool
	cells      []Cell
	rnd        *rand.Rand
}

func NewBoard(params Params, rnd *rand.Rand) (*Board, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	params = params.Clamped()

	b := &Board{
		rows:      params.Rows,
		cols:      params.Cols,
		mineCount: params.Mines,
		cells:     make([]Cell, params.Rows*params.Cols),
		rnd:       rnd,
	}
	for i := range b.cells {
		b.cells[i].Row = i / b.cols
		b.cells[i].Col = i % b.cols
	}
	return b, nil
}

func (b *Board) Rows() int      { return b.rows }
func (b *Board) Cols() int      { return b.cols }
func (b *Board) MineCount() int { return b.mineCount }

// Armed reports whether the mine layout has been placed.
func (b *Board) Armed() bool { return b.armed }

func (b *Board) inBounds(row, col int) bool {
	return 0 <= row && row < b.rows && 0 <= col && col < b.cols
}

func (b *Board) cell(row, col int) (*Cell, error) {
	if !b.inBounds(row, col) {
		return nil, fmt.Errorf("%w: (%d, %d) on a %dx%d board",
			ErrOutOfBounds, row, col, b.rows, b.cols)
	}
	return &b.cells[row*b.cols+col], nil
}

func (b *Board) Cell(row, col int) (Cell, error) {
	c, err := b.cell(row, col)
	if err != nil {
		return Cell{}, err
	}
	return *c, nil
}

// Cells returns a row-major copy of the grid.
func (b *Board) Cells() [][]Cell {
	grid := make([][]Cell, b.rows)
	for row := range b.rows {
		grid[row] = make([]Cell, b.cols)
		copy(grid[row], b.cells[row*b.cols:(row+1)*b.cols])
	}
	return grid
}

func (b *Board) neighbors(row, col int) []*Cell {
	ns := make([]*Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if r, c := row+dr, col+dc; b.inBounds(r, c) {
				ns = append(ns, &b.cells[r*b.cols+c])
			}
		}
	}
	return ns
}

func (b *Board) placeMines(startRow, startCol int) {
	placed := 0
	for placed < b.mineCount {
		row := b.rnd.IntN(b.rows)
		col := b.rnd.IntN(b.cols)
		c := &b.cells[row*b.cols+col]
		if (row == startRow && col == startCol) || c.Mine {
			continue
		}
		c.Mine = true
		placed++
	}
	b.countNeighborMines()
	b.armed = true

	Log.WithFields(logrus.Fields{
		"rows":  b.rows,
		"cols":  b.cols,
		"mines": b.mineCount,
		"start": fmt.Sprintf("%d:%d", startRow, startCol),
	}).Debug("mines placed")
}

func (b *Board) countNeighborMines() {
	for i := range b.cells {
		c := &b.cells[i]
		if c.Mine {
			continue
		}
		c.NeighborMines = 0
		for _, n := range b.neighbors(c.Row, c.Col) {
			if n.Mine {
				c.NeighborMines++
			}
		}
	}
}

// RevealCell opens the cell at row:col. It returns false only when the
// opened cell holds a mine. Revealed and flagged cells are left alone.
func (b *Board) RevealCell(row, col int) (bool, error) {
	target, err := b.cell(row, col)
	if err != nil {
		return false, err
	}
	if target.Revealed || target.Flagged {
		return true, nil
	}
	if !b.armed {
		b.placeMines(row, col)
	}

	target.Revealed = true
	if target.Mine {
		return false, nil
	}

	/*
	 * Flood fill over empty cells. A cell is marked revealed before it
	 * is pushed, so the revealed flag doubles as the visited set and
	 * nothing is pushed twice.
	 */
	todo := []*Cell{target}
	for len(todo) > 0 {
		c := todo[len(todo)-1]
		todo = todo[:len(todo)-1]
		if c.NeighborMines != 0 {
			continue
		}
		for _, n := range b.neighbors(c.Row, c.Col) {
			if n.Revealed || n.Flagged {
				continue
			}
			n.Revealed = true
			todo = append(todo, n)
		}
	}
	return true, nil
}

// ChordCell reveals the unflagged neighbours of an open numbered cell
// once the player has flagged as many neighbours as the number says.
// It returns false if one of the revealed neighbours was a mine.
func (b *Board) ChordCell(row, col int) (bool, error) {
	c, err := b.cell(row, col)
	if err != nil {
		return false, err
	}
	if !c.Revealed || c.Mine || c.NeighborMines == 0 {
		return true, nil
	}

	flags := 0
	var hidden []*Cell
	for _, n := range b.neighbors(row, col) {
		switch {
		case n.Flagged:
			flags++
		case !n.Revealed:
			hidden = append(hidden, n)
		}
	}
	if flags != c.NeighborMines {
		return true, nil
	}

	safe := true
	for _, n := range hidden {
		ok, err := b.RevealCell(n.Row, n.Col)
		if err != nil {
			return false, err
		}
		safe = safe && ok
	}
	return safe, nil
}

func (b *Board) ToggleFlag(row, col int) error {
	c, err := b.cell(row, col)
	if err != nil {
		return err
	}
	if !c.Revealed {
		c.Flagged = !c.Flagged
	}
	return nil
}

// RemainingMines may go negative when the player places more flags
// than there are mines.
func (b *Board) RemainingMines() int {
	flagged := 0
	for _, c := range b.cells {
		if c.Flagged {
			flagged++
		}
	}
	return b.mineCount - flagged
}

func (b *Board) CheckWin() bool {
	for _, c := range b.cells {
		if !c.Mine && !c.Revealed {
			return false
		}
	}
	return true
}

func (b *Board) RevealAllMines() {
	for i := range b.cells {
		if b.cells[i].Mine {
			b.cells[i].Revealed = true
		}
	}
}

// Board implements [fmt.Stringer]
func (b *Board) String() string {
	var sb strings.Builder
	for row := range b.rows {
		for col := range b.cols {
			fmt.Fprint(&sb, b.cells[row*b.cols+col].String()+" ")
		}
		fmt.Fprint(&sb, "\n")
	}
	return sb.String()
}
