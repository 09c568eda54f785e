package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the gophauth CLI.
//
// Fields:
//   - ServerAddr: base URL of the registration server.
//   - RequestTimeout: upper bound for one API call.
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults and then GOPHAUTH_SERVER_ADDR, if set.
// Command-line flags are applied on top by the cobra commands.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	if v, ok := os.LookupEnv("GOPHAUTH_SERVER_ADDR"); ok && v != "" {
		cfg.ServerAddr = v
	}
	return cfg
}
