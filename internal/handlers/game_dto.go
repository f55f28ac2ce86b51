package handlers

import (
	"strconv"

	"github.com/gorilla/schema"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

var decoder = schema.NewDecoder()

func init() {
	decoder.IgnoreUnknownKeys(true)
}

type Position struct {
	Row int `schema:"row,required"`
	Col int `schema:"col,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	err := decoder.Decode(&pos, src)
	return pos, err
}

type GameDTO struct {
	Id             string       `json:"id"`
	Rows           int          `json:"rows"`
	Cols           int          `json:"cols"`
	MineCount      int          `json:"mine_count"`
	RemainingMines int          `json:"remaining_mines"`
	Status         mines.Status `json:"status"`
	StartedAt      int64        `json:"started_at"`
	EndedAt        *int64       `json:"ended_at,omitempty"`
	ElapsedSeconds int          `json:"elapsed_seconds"`
	Grid           [][]CellDTO  `json:"grid"`
}

type CellDTO struct {
	Glyph    string `json:"glyph"`
	Revealed bool   `json:"revealed"`
	Flagged  bool   `json:"flagged"`
}

type NewGameDTO struct {
	Game  *GameDTO `json:"game"`
	Token string   `json:"token"`
}

// glyph only ever shows a mine once it is revealed, so the layout does
// not leak to the client mid-game.
func glyph(c mines.Cell) string {
	switch {
	case c.Flagged && !c.Revealed:
		return "🚩"
	case c.Revealed && c.Mine:
		return "💣"
	case c.Revealed && c.NeighborMines > 0:
		return strconv.Itoa(c.NeighborMines)
	default:
		return ""
	}
}

func NewGameDTO(id string, g *mines.Game) *GameDTO {
	var endedAtInt *int64
	if endedAt, ok := g.EndedAt(); ok {
		e := endedAt.UnixMilli()
		endedAtInt = &e
	}

	cells := g.Cells()
	grid := make([][]CellDTO, len(cells))
	for row, cs := range cells {
		grid[row] = make([]CellDTO, len(cs))
		for col, c := range cs {
			grid[row][col] = CellDTO{
				Glyph:    glyph(c),
				Revealed: c.Revealed,
				Flagged:  c.Flagged,
			}
		}
	}

	return &GameDTO{
		Id:             id,
		Rows:           g.Rows(),
		Cols:           g.Cols(),
		MineCount:      g.MineCount(),
		RemainingMines: g.RemainingMines(),
		Status:         g.Status(),
		StartedAt:      g.StartedAt().UnixMilli(),
		EndedAt:        endedAtInt,
		ElapsedSeconds: g.ElapsedSeconds(),
		Grid:           grid,
	}
}
