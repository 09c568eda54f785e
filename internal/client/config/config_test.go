package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("GOPHAUTH_SERVER_ADDR", "")

	cfg := LoadConfig()
	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerAddr)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("GOPHAUTH_SERVER_ADDR", "https://auth.example")

	assert.Equal(t, "https://auth.example", LoadConfig().ServerAddr)
}
