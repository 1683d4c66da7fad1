package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "sqlite3", cfg.DB.Driver)
	assert.Equal(t, "./data", cfg.DB.Path)
	assert.False(t, cfg.DB.Debug)
	assert.Equal(t, "./LeetCode.apkg", cfg.Anki.Output)
	assert.Equal(t, "LeetCode", cfg.Anki.DeckName)
	assert.Equal(t, "https://leetcode.com", cfg.LeetCode.BaseURL)
	assert.Equal(t, uint64(3), cfg.LeetCode.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.LeetCode.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfig(t, "leetdeck.yaml", `
db:
  path: /var/lib/leetdeck
  debug: true
anki:
  front: front.html
  back: back.html
  css: style.css
  output: out.apkg
leetcode:
  base_url: https://leetcode.example/
  session: abc
  csrf_token: tok
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/var/lib/leetdeck", cfg.DB.Path)
	assert.True(t, cfg.DB.Debug)
	assert.Equal(t, "front.html", cfg.Anki.Front)
	assert.Equal(t, "back.html", cfg.Anki.Back)
	assert.Equal(t, "style.css", cfg.Anki.CSS)
	assert.Equal(t, "out.apkg", cfg.Anki.Output)
	assert.Equal(t, "https://leetcode.example", cfg.LeetCode.BaseURL)
	assert.Equal(t, "abc", cfg.LeetCode.Session)
	assert.Equal(t, "tok", cfg.LeetCode.CSRFToken)
	assert.NoError(t, cfg.RequireLeetCode())
	assert.NoError(t, cfg.RequireAnki())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "leetdeck.yaml", "db:\n  path: from-file\n")
	t.Setenv("LEETDECK_DB_PATH", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.DB.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("LEETDECK_LEETCODE_TIMEOUT", "soon")

	_, err := Load("")
	require.ErrorIs(t, err, ErrConfiguration)
}

func TestLoad_TimeoutInSeconds(t *testing.T) {
	path := writeConfig(t, "leetdeck.yaml", "leetcode:\n  timeout: 45\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.LeetCode.Timeout)

	t.Setenv("LEETDECK_LEETCODE_TIMEOUT", "2.5")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2500*time.Millisecond, cfg.LeetCode.Timeout)

	t.Setenv("LEETDECK_LEETCODE_TIMEOUT", "1m")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, time.Minute, cfg.LeetCode.Timeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "sqlite with path", mutate: func(c *Config) {}},
		{name: "sqlite without path or dsn", mutate: func(c *Config) { c.DB.Path = "" }, wantErr: true},
		{name: "postgres without dsn", mutate: func(c *Config) { c.DB.Driver = "postgres" }, wantErr: true},
		{name: "mysql with dsn", mutate: func(c *Config) { c.DB.Driver = "mysql"; c.DB.DSN = "u:p@/leetdeck" }},
		{name: "unknown driver", mutate: func(c *Config) { c.DB.Driver = "oracle" }, wantErr: true},
		{name: "zero rate", mutate: func(c *Config) { c.LeetCode.Rate = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Config{}
			c.DB.Driver = "sqlite3"
			c.DB.Path = "./data"
			c.LeetCode.Rate = 1
			tt.mutate(c)

			err := c.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrConfiguration)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRequireSections(t *testing.T) {
	c := &Config{}
	assert.ErrorIs(t, c.RequireLeetCode(), ErrConfiguration)
	assert.ErrorIs(t, c.RequireAnki(), ErrConfiguration)

	c.LeetCode.BaseURL = "https://leetcode.com"
	c.LeetCode.Session = "s"
	assert.NoError(t, c.RequireLeetCode())

	c.Anki.Front, c.Anki.Back, c.Anki.CSS = "f", "b", "c"
	c.Anki.Output, c.Anki.DeckName = "o.apkg", "LeetCode"
	assert.NoError(t, c.RequireAnki())
}
