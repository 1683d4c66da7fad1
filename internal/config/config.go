package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// ErrConfiguration is returned when a required setting is missing or invalid,
// or when a file named by the configuration cannot be used.
var ErrConfiguration = errors.New("configuration error")

type Config struct {
	DB struct {
		Driver string
		Path   string
		DSN    string
		Debug  bool
	}
	Anki struct {
		Front    string
		Back     string
		CSS      string
		Output   string
		DeckName string
	}
	LeetCode struct {
		BaseURL    string
		Session    string
		CSRFToken  string
		Rate       float64
		MaxRetries uint64
		Timeout    time.Duration
	}
	Log struct {
		Level  string
		Format string
	}
	Metrics struct {
		File string
	}
}

// Load reads config from environment (LEETDECK_ prefix) and an optional config
// file. When path is empty, leetdeck.{yaml,toml,json} is searched for in the
// working directory and in $HOME/.config/leetdeck.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEETDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("db.driver", "sqlite3")
	v.SetDefault("db.path", "./data")
	v.SetDefault("db.debug", false)
	v.SetDefault("anki.output", "./LeetCode.apkg")
	v.SetDefault("anki.deck_name", "LeetCode")
	v.SetDefault("leetcode.base_url", "https://leetcode.com")
	v.SetDefault("leetcode.rate", 1.0)
	v.SetDefault("leetcode.max_retries", 3)
	v.SetDefault("leetcode.timeout", "30s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("%w: read %s: %v", ErrConfiguration, path, err)
		}
	} else {
		v.SetConfigName("leetdeck")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/leetdeck")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
			}
		}
	}

	cfg := &Config{}
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.Path = v.GetString("db.path")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.DB.Debug = v.GetBool("db.debug")
	cfg.Anki.Front = v.GetString("anki.front")
	cfg.Anki.Back = v.GetString("anki.back")
	cfg.Anki.CSS = v.GetString("anki.css")
	cfg.Anki.Output = v.GetString("anki.output")
	cfg.Anki.DeckName = v.GetString("anki.deck_name")
	cfg.LeetCode.BaseURL = strings.TrimRight(v.GetString("leetcode.base_url"), "/")
	cfg.LeetCode.Session = v.GetString("leetcode.session")
	cfg.LeetCode.CSRFToken = v.GetString("leetcode.csrf_token")
	cfg.LeetCode.Rate = v.GetFloat64("leetcode.rate")
	cfg.LeetCode.MaxRetries = v.GetUint64("leetcode.max_retries")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Metrics.File = v.GetString("metrics.file")

	timeout, err := durationSetting(v.Get("leetcode.timeout"))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid LEETDECK_LEETCODE_TIMEOUT: %v", ErrConfiguration, err)
	}
	cfg.LeetCode.Timeout = timeout

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// durationSetting accepts a duration string such as "30s" or a bare number
// of seconds.
func durationSetting(raw any) (time.Duration, error) {
	s, err := cast.ToStringE(raw)
	if err != nil {
		return 0, err
	}
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(secs * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}

// Validate checks the settings every command depends on.
func (c *Config) Validate() error {
	switch c.DB.Driver {
	case "sqlite3":
		if c.DB.Path == "" && c.DB.DSN == "" {
			return fmt.Errorf("%w: LEETDECK_DB_PATH is required for sqlite3", ErrConfiguration)
		}
	case "mysql", "postgres":
		if c.DB.DSN == "" {
			return fmt.Errorf("%w: LEETDECK_DB_DSN is required for %s", ErrConfiguration, c.DB.Driver)
		}
	default:
		return fmt.Errorf("%w: LEETDECK_DB_DRIVER must be sqlite3, mysql, or postgres, got %q", ErrConfiguration, c.DB.Driver)
	}
	if c.LeetCode.Rate <= 0 {
		return fmt.Errorf("%w: LEETDECK_LEETCODE_RATE must be positive", ErrConfiguration)
	}
	return nil
}

// RequireLeetCode checks the settings needed to talk to LeetCode.
func (c *Config) RequireLeetCode() error {
	if c.LeetCode.BaseURL == "" {
		return fmt.Errorf("%w: LEETDECK_LEETCODE_BASE_URL is required", ErrConfiguration)
	}
	if c.LeetCode.Session == "" {
		return fmt.Errorf("%w: LEETDECK_LEETCODE_SESSION is required", ErrConfiguration)
	}
	return nil
}

// RequireAnki checks the settings needed to render a deck.
func (c *Config) RequireAnki() error {
	if c.Anki.Front == "" {
		return fmt.Errorf("%w: LEETDECK_ANKI_FRONT is required", ErrConfiguration)
	}
	if c.Anki.Back == "" {
		return fmt.Errorf("%w: LEETDECK_ANKI_BACK is required", ErrConfiguration)
	}
	if c.Anki.CSS == "" {
		return fmt.Errorf("%w: LEETDECK_ANKI_CSS is required", ErrConfiguration)
	}
	if c.Anki.Output == "" {
		return fmt.Errorf("%w: LEETDECK_ANKI_OUTPUT is required", ErrConfiguration)
	}
	if c.Anki.DeckName == "" {
		return fmt.Errorf("%w: LEETDECK_ANKI_DECK_NAME is required", ErrConfiguration)
	}
	return nil
}
