package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "warn", c.LogLevel)
	assert.NotEmpty(t, c.DBPath)
	assert.Equal(t, "session.db", filepath.Base(c.DBPath))
}
