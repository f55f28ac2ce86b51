package mines

import (
	"fmt"
	"time"
)

type Status int8

const (
	Playing Status = iota
	Won
	Lost
)

// Status implements [fmt.Stringer]
func (s Status) String() string {
	switch s {
	case Playing:
		return "playing"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return fmt.Sprintf("Status(%d)", int8(s))
	}
}

// Status implements [encoding.TextMarshaler]
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*s = Playing
	case "won":
		*s = Won
	case "lost":
		*s = Lost
	default:
		return fmt.Errorf("unknown game status %q", text)
	}
	return nil
}

// Game drives a single Board from Playing to Won or Lost. Both outcomes
// are terminal: once reached, every move is ignored.
type Game struct {
	board     *Board
	status    Status
	startedAt time.Time
	endedAt   time.Time
	now       func() time.Time
}

func NewGame(board *Board) *Game {
	g := &Game{board: board, now: time.Now}
	g.startedAt = g.now()
	return g
}

func (g *Game) Status() Status { return g.status }

func (g *Game) Over() bool { return g.status != Playing }

func (g *Game) StartedAt() time.Time { return g.startedAt }

// EndedAt reports false while the game is still being played.
func (g *Game) EndedAt() (time.Time, bool) {
	return g.endedAt, g.Over()
}

// Elapsed is frozen once the game is over.
func (g *Game) Elapsed() time.Duration {
	if g.Over() {
		return g.endedAt.Sub(g.startedAt)
	}
	return g.now().Sub(g.startedAt)
}

func (g *Game) ElapsedSeconds() int {
	return int(g.Elapsed() / time.Second)
}

func (g *Game) end(status Status) {
	g.status = status
	g.endedAt = g.now()
	if status == Lost {
		g.board.RevealAllMines()
	}
	Log.WithField("status", status).Debugf("game over after %s\n%s", g.Elapsed(), g.board)
}

func (g *Game) settle(safe bool) {
	switch {
	case !safe:
		g.end(Lost)
	case g.board.CheckWin():
		g.end(Won)
	}
}

func (g *Game) RevealCell(row, col int) error {
	if g.Over() {
		return nil
	}
	safe, err := g.board.RevealCell(row, col)
	if err != nil {
		return err
	}
	g.settle(safe)
	return nil
}

func (g *Game) ChordCell(row, col int) error {
	if g.Over() {
		return nil
	}
	safe, err := g.board.ChordCell(row, col)
	if err != nil {
		return err
	}
	g.settle(safe)
	return nil
}

func (g *Game) ToggleFlag(row, col int) error {
	if g.Over() {
		return nil
	}
	return g.board.ToggleFlag(row, col)
}

func (g *Game) Forfeit() {
	if g.Over() {
		return
	}
	g.end(Lost)
}

func (g *Game) Rows() int           { return g.board.Rows() }
func (g *Game) Cols() int           { return g.board.Cols() }
func (g *Game) MineCount() int      { return g.board.MineCount() }
func (g *Game) RemainingMines() int { return g.board.RemainingMines() }
func (g *Game) Cells() [][]Cell     { return g.board.Cells() }

func (g *Game) Cell(row, col int) (Cell, error) {
	return g.board.Cell(row, col)
}
