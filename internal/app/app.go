package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Opeoluwa-Osho/minesweeper/internal/config"
	"github.com/Opeoluwa-Osho/minesweeper/internal/middleware"
	"github.com/Opeoluwa-Osho/minesweeper/internal/session"
)

type App struct {
	log    *logrus.Logger
	config config.Config
	router *http.ServeMux
	store  *session.Store
	jwt    *config.JWT
	ws     *config.WebSocket
}

func New(log *logrus.Logger, cfg config.Config) (*App, error) {
	store, err := session.NewStore(log, cfg.Game, cfg.Session.IdleTimeout.Duration)
	if err != nil {
		return nil, fmt.Errorf("unable to create session store: %w", err)
	}

	jwt, err := config.NewJWT(cfg.Jwt)
	if err != nil {
		return nil, err
	}
	if cfg.Jwt.Secret == "" {
		log.Warn("no jwt secret configured, tokens will not survive a restart")
	}

	app := &App{
		log:    log,
		config: cfg,
		router: http.NewServeMux(),
		store:  store,
		jwt:    jwt,
		ws:     config.NewWebSocket(cfg.AllowedOrigins),
	}
	app.loadRoutes()

	return app, nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Logging(a.log),
		middleware.Cors(a.config.AllowedOrigins),
	)
}

// Start serves until ctx is done or the listener fails, then shuts the
// server down within the configured timeout.
func (a *App) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:    a.config.Addr,
		Handler: a.Handler(),
		BaseContext: func(l net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.log.Infof("ready to serve @ %s", a.config.Addr)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("unable to listen and serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		return a.store.Run(gCtx, a.config.Session.SweepInterval.Duration)
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), a.config.ShutdownTimeout.Duration)
		defer cancel()
		a.log.Info("shutting down")
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
