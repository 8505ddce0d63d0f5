package fetcher

import "time"

// Fetcher defaults. The user agent mirrors a current desktop browser
// because a number of sites serve degraded markup to unknown agents.
const (
	DefaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	DefaultTimeout     = 30 * time.Second
	DefaultMaxBodySize = 10 << 20
)

// Config holds the fetch settings.
type Config struct {
	UserAgent   string        `yaml:"user_agent" env:"FETCHER_USER_AGENT"`
	Timeout     time.Duration `yaml:"timeout" env:"FETCHER_TIMEOUT"`
	MaxBodySize int           `yaml:"max_body_size" env:"FETCHER_MAX_BODY_SIZE"`
}

// WithDefaults fills unset fields in place.
func (c *Config) WithDefaults() {
	if c.UserAgent == "" {
		c.UserAgent = DefaultUserAgent
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxBodySize <= 0 {
		c.MaxBodySize = DefaultMaxBodySize
	}
}
