package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonConfig is the on-disk shape. Absent fields keep their current value.
type jsonConfig struct {
	ServerEndpointAddr string `json:"server_endpoint_addr"`
	DBPath             string `json:"db_path"`
	LogLevel           string `json:"log_level"`
}

func parseJSON(config *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	c := &jsonConfig{}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if c.ServerEndpointAddr != "" {
		config.ServerEndpointAddr = c.ServerEndpointAddr
	}
	if c.DBPath != "" {
		config.DBPath = c.DBPath
	}
	if c.LogLevel != "" {
		config.LogLevel = c.LogLevel
	}
	return nil
}
