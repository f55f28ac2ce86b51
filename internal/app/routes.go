package app

import (
	"github.com/Opeoluwa-Osho/minesweeper/internal/handlers"
)

func (a *App) loadRoutes() {
	game := handlers.NewGameHandler(a.log, a.store, a.jwt, a.ws)

	a.router.HandleFunc("POST /game", game.NewGame)
	a.router.HandleFunc("GET /game/{id}", game.Fetch)
	a.router.HandleFunc("DELETE /game/{id}", game.Delete)
	a.router.HandleFunc("POST /game/{id}/reveal", game.Reveal())
	a.router.HandleFunc("POST /game/{id}/flag", game.Flag())
	a.router.HandleFunc("POST /game/{id}/chord", game.Chord())
	a.router.HandleFunc("POST /game/{id}/forfeit", game.Forfeit)
	a.router.HandleFunc("GET /game/{id}/connect", game.ConnectWS)
}
