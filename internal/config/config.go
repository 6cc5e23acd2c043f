package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultAPIURL       = "https://api.pearktrue.cn/api/goldprice/"
	defaultFetchTimeout = 15 * time.Second
)

// Layout selects how the gold feed is laid out in the text reply.
type Layout string

const (
	// LayoutHeader puts a single update-time line after all entries.
	LayoutHeader Layout = "header"
	// LayoutInline repeats the feed time on every entry and appends the
	// upstream source as a footer.
	LayoutInline Layout = "inline"
)

// Config holds the runtime settings for the bot.
type Config struct {
	APIURL       string
	FetchTimeout time.Duration
	Layout       Layout
}

// Load returns the compiled defaults overridden by environment variables.
// A .env file is honored when present.
func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		APIURL:       defaultAPIURL,
		FetchTimeout: defaultFetchTimeout,
		Layout:       LayoutHeader,
	}
	if v := os.Getenv("GOLDBOT_API_URL"); v != "" {
		cfg.APIURL = v
	}
	if v := os.Getenv("GOLDBOT_FETCH_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.FetchTimeout = d
		}
	}
	if v := os.Getenv("GOLDBOT_LAYOUT"); v != "" {
		switch Layout(v) {
		case LayoutHeader, LayoutInline:
			cfg.Layout = Layout(v)
		}
	}
	return cfg
}
