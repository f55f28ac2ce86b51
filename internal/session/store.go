package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

var ErrNotFound = errors.New("session not found")

type Session struct {
	Id string

	mu         sync.Mutex
	game       *mines.Game
	lastActive time.Time
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(g *mines.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.game)
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

// Store keeps live games in memory. Nothing survives a restart.
type Store struct {
	log         *logrus.Logger
	params      mines.Params
	idleTimeout time.Duration

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewStore(log *logrus.Logger, params mines.Params, idleTimeout time.Duration) (*Store, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		log:         log,
		params:      params,
		idleTimeout: idleTimeout,
		sessions:    make(map[string]*Session),
	}, nil
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (st *Store) Create() (*Session, error) {
	board, err := mines.NewBoard(st.params, createRand())
	if err != nil {
		return nil, err
	}
	s := &Session{
		Id:         xid.New().String(),
		game:       mines.NewGame(board),
		lastActive: time.Now(),
	}

	st.mu.Lock()
	st.sessions[s.Id] = s
	st.mu.Unlock()

	st.log.WithFields(logrus.Fields{
		"session": s.Id,
		"params":  st.params.String(),
	}).Debug("session created")
	return s, nil
}

func (st *Store) Get(id string) (*Session, error) {
	if _, err := xid.FromString(id); err != nil {
		return nil, ErrNotFound
	}
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (st *Store) Delete(id string) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return ErrNotFound
	}
	delete(st.sessions, id)
	return nil
}

func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle since before now-idleTimeout and returns how
// many were dropped.
func (st *Store) Sweep(now time.Time) int {
	deadline := now.Add(-st.idleTimeout)

	st.mu.Lock()
	defer st.mu.Unlock()

	n := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(deadline) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps idle sessions every interval until ctx is done.
func (st *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := st.Sweep(now); n > 0 {
				st.log.WithField("expired", n).Info("swept idle sessions")
			}
		}
	}
}
