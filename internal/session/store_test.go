package session

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

func newTestStore(t *testing.T, idleTimeout time.Duration) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)
	st, err := NewStore(log, mines.Params{Rows: 9, Cols: 9, Mines: 10}, idleTimeout)
	require.NoError(t, err)
	return st
}

func TestNewStoreRejectsInvalidParams(t *testing.T) {
	_, err := NewStore(logrus.New(), mines.Params{Rows: 0, Cols: 9, Mines: 10}, time.Hour)
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
}

func TestCreateGetDelete(t *testing.T) {
	st := newTestStore(t, time.Hour)

	a, err := st.Create()
	require.NoError(t, err)
	b, err := st.Create()
	require.NoError(t, err)
	assert.NotEqual(t, a.Id, b.Id)
	assert.Equal(t, 2, st.Len())

	got, err := st.Get(a.Id)
	require.NoError(t, err)
	assert.Same(t, a, got)

	err = got.Do(func(g *mines.Game) error {
		assert.Equal(t, mines.Playing, g.Status())
		assert.Equal(t, 9, g.Rows())
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, st.Delete(a.Id))
	_, err = st.Get(a.Id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.Delete(a.Id), ErrNotFound)
}

func TestGetMalformedId(t *testing.T) {
	st := newTestStore(t, time.Hour)
	_, err := st.Get("not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSweep(t *testing.T) {
	st := newTestStore(t, time.Minute)
	a, err := st.Create()
	require.NoError(t, err)
	_, err = st.Create()
	require.NoError(t, err)

	assert.Zero(t, st.Sweep(time.Now()))

	require.NoError(t, a.Do(func(*mines.Game) error { return nil }))
	assert.Equal(t, 2, st.Sweep(time.Now().Add(2*time.Minute)))
	assert.Zero(t, st.Len())
}

func TestRunStopsWithContext(t *testing.T) {
	st := newTestStore(t, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, st.Run(ctx, time.Millisecond))
	}()
	time.Sleep(5 * time.Millisecond)
	cancel()
	wg.Wait()
}

func TestConcurrentMoves(t *testing.T) {
	st := newTestStore(t, time.Hour)
	s, err := st.Create()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for row := range 9 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for col := range 9 {
				_ = s.Do(func(g *mines.Game) error {
					return g.ToggleFlag(row, col)
				})
			}
		}()
	}
	wg.Wait()

	require.NoError(t, s.Do(func(g *mines.Game) error {
		assert.Equal(t, 10-81, g.RemainingMines())
		return nil
	}))
}
