package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/Opeoluwa-Osho/minesweeper/internal/config"
	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
	"github.com/Opeoluwa-Osho/minesweeper/internal/session"
)

var (
	ErrNoToken      = errors.New("session token required")
	ErrForeignToken = errors.New("token belongs to another session")
)

type GameHandler struct {
	log   *logrus.Logger
	store *session.Store
	jwt   *config.JWT
	ws    *config.WebSocket
}

func NewGameHandler(
	log *logrus.Logger,
	store *session.Store,
	jwt *config.JWT,
	ws *config.WebSocket,
) *GameHandler {
	handler := &GameHandler{
		log:   log,
		store: store,
		jwt:   jwt,
		ws:    ws,
	}
	return handler
}

func bearerToken(r *http.Request) string {
	if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return r.URL.Query().Get("token")
}

// authorize resolves the {id} path value to a session whose token the
// caller holds. On failure it writes the response itself.
func (g GameHandler) authorize(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	token := bearerToken(r)
	if token == "" {
		sendErrorOrLog(w, g.log, http.StatusUnauthorized, ErrNoToken)
		return nil, false
	}
	claims, err := g.jwt.Parse(token)
	if err != nil {
		g.log.WithError(err).Debug("rejected session token")
		sendErrorOrLog(w, g.log, http.StatusUnauthorized, fmt.Errorf("invalid session token"))
		return nil, false
	}

	id := r.PathValue("id")
	if claims.SessionId != id {
		sendErrorOrLog(w, g.log, http.StatusForbidden, ErrForeignToken)
		return nil, false
	}

	s, err := g.store.Get(id)
	if errors.Is(err, session.ErrNotFound) {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return nil, false
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to fetch session")
		return nil, false
	}
	return s, true
}

func (g GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	s, err := g.store.Create()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to create a new game")
		return
	}

	token, err := g.jwt.Sign(s.Id)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.log.WithError(err).Error("unable to sign session token")
		return
	}

	var dto *GameDTO
	_ = s.Do(func(game *mines.Game) error {
		dto = NewGameDTO(s.Id, game)
		return nil
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, g.log, &NewGameDTO{Game: dto, Token: token})
}

func (g GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var dto *GameDTO
	_ = s.Do(func(game *mines.Game) error {
		dto = NewGameDTO(s.Id, game)
		return nil
	})
	sendJSONOrLog(w, g.log, dto)
}

type moveFunc func(game *mines.Game, pos Position) error

func (g GameHandler) move(fn moveFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := g.authorize(w, r)
		if !ok {
			return
		}

		pos, err := ParsePosition(r.URL.Query())
		if err != nil {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
			return
		}

		var dto *GameDTO
		err = s.Do(func(game *mines.Game) error {
			if err := fn(game, pos); err != nil {
				return err
			}
			dto = NewGameDTO(s.Id, game)
			return nil
		})
		if errors.Is(err, mines.ErrOutOfBounds) {
			sendErrorOrLog(w, g.log, http.StatusBadRequest, err)
			return
		}
		if err != nil {
			w.WriteHeader(http.StatusInternalServerError)
			g.log.WithError(err).Error("unable to apply move")
			return
		}

		sendJSONOrLog(w, g.log, dto)
	}
}

func (g GameHandler) Reveal() http.HandlerFunc {
	return g.move(func(game *mines.Game, pos Position) error {
		return game.RevealCell(pos.Row, pos.Col)
	})
}

func (g GameHandler) Flag() http.HandlerFunc {
	return g.move(func(game *mines.Game, pos Position) error {
		return game.ToggleFlag(pos.Row, pos.Col)
	})
}

func (g GameHandler) Chord() http.HandlerFunc {
	return g.move(func(game *mines.Game, pos Position) error {
		return game.ChordCell(pos.Row, pos.Col)
	})
}

func (g GameHandler) Forfeit(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}

	var dto *GameDTO
	_ = s.Do(func(game *mines.Game) error {
		game.Forfeit()
		dto = NewGameDTO(s.Id, game)
		return nil
	})
	sendJSONOrLog(w, g.log, dto)
}

func (g GameHandler) Delete(w http.ResponseWriter, r *http.Request) {
	s, ok := g.authorize(w, r)
	if !ok {
		return
	}
	if err := g.store.Delete(s.Id); err != nil {
		sendErrorOrLog(w, g.log, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
