package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Opeoluwa-Osho/minesweeper/internal/mines"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	c := Default()
	assert.NoError(t, c.Validate())
	assert.True(t, c.Development())
	assert.Equal(t, mines.Params{Rows: 10, Cols: 10, Mines: 10}, c.Game)
}

func TestDurationUnmarshal(t *testing.T) {
	testCases := []struct {
		input string
		want  time.Duration
		fail  bool
	}{
		{`"1h30m"`, 90 * time.Minute, false},
		{`"250ms"`, 250 * time.Millisecond, false},
		{`1000000000`, time.Second, false},
		{`"soon"`, 0, true},
		{`true`, 0, true},
	}
	for _, test := range testCases {
		var d Duration
		err := json.Unmarshal([]byte(test.input), &d)
		if test.fail {
			assert.Error(t, err, test.input)
			continue
		}
		require.NoError(t, err, test.input)
		assert.Equal(t, test.want, d.Duration)
	}

	b, err := json.Marshal(Duration{2 * time.Minute})
	require.NoError(t, err)
	assert.Equal(t, `"2m0s"`, string(b))
}

func TestReadOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `{
		"mode": "production",
		"game": {"rows": 16, "cols": 30, "mines": 99},
		"session": {"idle_timeout": "10m"},
		"jwt": {"secret": "hunter2"}
	}`)

	c := Default()
	require.NoError(t, Read(path, &c))

	assert.True(t, c.Production())
	assert.Equal(t, ":8080", c.Addr)
	assert.Equal(t, mines.Params{Rows: 16, Cols: 30, Mines: 99}, c.Game)
	assert.Equal(t, 10*time.Minute, c.Session.IdleTimeout.Duration)
	assert.Equal(t, time.Minute, c.Session.SweepInterval.Duration)
	assert.Equal(t, "hunter2", c.Jwt.Secret)
	assert.NoError(t, c.Validate())
}

func TestReadErrors(t *testing.T) {
	c := Default()
	assert.Error(t, Read(filepath.Join(t.TempDir(), "missing.json"), &c))
	assert.Error(t, Read(writeConfig(t, `{"addr": `), &c))
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("MINES_MODE", "production")
	t.Setenv("MINES_ADDR", ":9999")
	t.Setenv("MINES_JWT_SECRET", "s3cret")

	c := Default()
	c.LoadEnv()
	assert.Equal(t, "production", c.Mode)
	assert.Equal(t, ":9999", c.Addr)
	assert.Equal(t, "s3cret", c.Jwt.Secret)
}

func TestValidate(t *testing.T) {
	c := Default()
	c.Mode = "staging"
	c.Game.Mines = 0
	c.Session.SweepInterval = Duration{}
	err := c.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, mines.ErrInvalidParams)
	assert.Contains(t, err.Error(), "mode")
	assert.Contains(t, err.Error(), "sweep_interval")

	c = Default()
	c.Mode = "production"
	assert.ErrorContains(t, c.Validate(), "jwt.secret")
}

func TestJWT(t *testing.T) {
	j, err := NewJWT(JwtConfig{Secret: "secret", TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)

	token, err := j.Sign("abc")
	require.NoError(t, err)
	claims, err := j.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, "abc", claims.SessionId)

	other, err := NewJWT(JwtConfig{TokenLifetime: Duration{time.Hour}})
	require.NoError(t, err)
	_, err = other.Parse(token)
	assert.Error(t, err)

	expired, err := NewJWT(JwtConfig{Secret: "secret", TokenLifetime: Duration{-time.Minute}})
	require.NoError(t, err)
	token, err = expired.Sign("abc")
	require.NoError(t, err)
	_, err = j.Parse(token)
	assert.Error(t, err)
}
