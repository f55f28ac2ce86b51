package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
	"github.com/Opeoluwa-Osho/minesweeper/internal/session"
)

type wsCommand string

const (
	wsNoop    wsCommand = "g"
	wsReveal  wsCommand = "o"
	wsFlag    wsCommand = "f"
	wsChord   wsCommand = "c"
	wsForfeit wsCommand = "r"
)

// Maps known commands to number of arguments
var commandNargs = map[wsCommand]int{
	wsNoop:    0,
	wsReveal:  2,
	wsFlag:    2,
	wsChord:   2,
	wsForfeit: 0,
}

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrBadNargs       = errors.New("invalid number of arguments")
)

func parseRowCol(args []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(args[0]); err != nil {
		err = errors.New("row must be an int")
		return
	}
	if col, err = strconv.Atoi(args[1]); err != nil {
		err = errors.New("col must be an int")
		return
	}
	return
}

// executeCommand applies one protocol line such as "o 3 4" to the game.
func executeCommand(game *mines.Game, line string) error {
	parts := strings.Fields(line)
	if len(parts) == 0 {
		return ErrUnknownCommand
	}
	cmd, args := wsCommand(parts[0]), parts[1:]
	nargs, ok := commandNargs[cmd]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(args) {
		return fmt.Errorf("%w: %q takes %d", ErrBadNargs, cmd, nargs)
	}

	switch cmd {
	case wsNoop:
		return nil
	case wsForfeit:
		game.Forfeit()
		return nil
	}

	row, col, err := parseRowCol(args)
	if err != nil {
		return err
	}
	switch cmd {
	case wsReveal:
		return game.RevealCell(row, col)
	case wsFlag:
		return game.ToggleFlag(row, col)
	default:
		return game.ChordCell(row, col)
	}
}

type wsError struct {
	Error string `json:"error"`
	Line  string `json:"line"`
}

func (g GameHandler) wsRunGameLoop(conn *websocket.Conn, s *session.Session) error {
	for {
		mt, buf, err := conn.ReadMessage()
		if err != nil {
			return err
		}
		if mt != websocket.TextMessage {
			continue
		}

		var (
			dto     *GameDTO
			failure *wsError
		)
		message := strings.TrimSpace(string(buf))
		_ = s.Do(func(game *mines.Game) error {
			for _, line := range strings.Split(message, "\n") {
				line = strings.TrimSpace(line)
				if line == "" {
					continue
				}
				if err := executeCommand(game, line); err != nil {
					failure = &wsError{Error: err.Error(), Line: line}
					return nil
				}
				if game.Over() {
					break
				}
			}
			dto = NewGameDTO(s.Id, game)
			return nil
		})

		if failure != nil {
			if err := conn.WriteJSON(failure); err != nil {
				return fmt.Errorf("unable to write json: %w", err)
			}
			continue
		}
		if err := conn.WriteJSON(dto); err != nil {
			return fmt.Errorf("unable to write json: %w", err)
		}
	}
}

func (g GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	conn, err := g.ws.Upgrader.Upgrade(w, r, nil) // headers sent here
	if err != nil {
		g.log.WithError(err).Error("unable to upgrade")
		return
	}
	defer conn.Close()

	log := g.log.WithField("session", s.Id)
	log.Debug("established WS connection")

	err = g.wsRunGameLoop(conn, s)
	if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
		log.Debug("WS connection closed")
		return
	}
	log.WithError(err).Warn("error in ws loop")
}
