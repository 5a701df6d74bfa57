package config

import (
	"os"
	"path/filepath"
)

// Config holds runtime settings for the blog CLI.
//
// DBPath is the SQLite file that keeps the signed-in session between runs.
type Config struct {
	ServerEndpointAddr string
	DBPath             string
	LogLevel           string
}

// LoadDefaults populates c with defaults suitable for a local blogd.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.DBPath = defaultDBPath()
	c.LogLevel = "warn"
}

func defaultDBPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "blogsync-session.db"
	}
	return filepath.Join(dir, "blogsync", "session.db")
}
