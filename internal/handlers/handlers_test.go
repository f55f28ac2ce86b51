package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

func newGame(t *testing.T) *mines.Game {
	t.Helper()
	b, err := mines.NewBoard(mines.Params{Rows: 3, Cols: 3, Mines: 8}, rand.New(rand.NewPCG(1, 2)))
	require.NoError(t, err)
	return mines.NewGame(b)
}

func TestGlyph(t *testing.T) {
	testCases := []struct {
		cell mines.Cell
		want string
	}{
		{mines.Cell{}, ""},
		{mines.Cell{Mine: true}, ""},
		{mines.Cell{Flagged: true}, "🚩"},
		{mines.Cell{Flagged: true, Mine: true}, "🚩"},
		{mines.Cell{Revealed: true, Mine: true}, "💣"},
		{mines.Cell{Revealed: true, NeighborMines: 3}, "3"},
		{mines.Cell{Revealed: true}, ""},
		{mines.Cell{NeighborMines: 2}, ""},
	}
	for _, test := range testCases {
		assert.Equal(t, test.want, glyph(test.cell), "%+v", test.cell)
	}
}

func TestParsePosition(t *testing.T) {
	pos, err := ParsePosition(map[string][]string{"row": {"2"}, "col": {"7"}, "x": {"1"}})
	require.NoError(t, err)
	assert.Equal(t, Position{Row: 2, Col: 7}, pos)

	_, err = ParsePosition(map[string][]string{"row": {"2"}})
	assert.Error(t, err)
}

func TestExecuteCommand(t *testing.T) {
	game := newGame(t)

	require.NoError(t, executeCommand(game, "g"))
	require.NoError(t, executeCommand(game, "f 0 0"))
	assert.Equal(t, 7, game.RemainingMines())

	assert.ErrorIs(t, executeCommand(game, "z"), ErrUnknownCommand)
	assert.ErrorIs(t, executeCommand(game, ""), ErrUnknownCommand)
	assert.ErrorIs(t, executeCommand(game, "o 1"), ErrBadNargs)
	assert.ErrorIs(t, executeCommand(game, "r 1"), ErrBadNargs)
	assert.Error(t, executeCommand(game, "o a 1"))
	assert.Error(t, executeCommand(game, "o 1 b"))
	assert.ErrorIs(t, executeCommand(game, "o 3 3"), mines.ErrOutOfBounds)

	require.NoError(t, executeCommand(game, "o  1   1 "))
	assert.Equal(t, mines.Won, game.Status())
}

func TestExecuteForfeit(t *testing.T) {
	game := newGame(t)
	require.NoError(t, executeCommand(game, "r"))
	assert.Equal(t, mines.Lost, game.Status())
}

func TestNewGameDTO(t *testing.T) {
	game := newGame(t)
	require.NoError(t, game.RevealCell(1, 1))

	dto := NewGameDTO("abc", game)
	assert.Equal(t, "abc", dto.Id)
	assert.Equal(t, mines.Won, dto.Status)
	require.NotNil(t, dto.EndedAt)
	assert.Equal(t, 8, dto.RemainingMines)
	assert.Equal(t, CellDTO{Glyph: "8", Revealed: true}, dto.Grid[1][1])
	assert.Equal(t, CellDTO{}, dto.Grid[0][0])
}
