package config

import (
	"github.com/spf13/pflag"
)

// Loader owns the persistent flags of the CLI and turns them, together with
// the defaults and the JSON file they may name, into a Config.
type Loader struct {
	fs         *pflag.FlagSet
	configPath string
	flags      Config
}

// Bind registers the client flags on fs. Call Load after fs has been parsed.
//
//	-c, --config string      JSON config file
//	-a, --addr string        address and port of blogd
//	-d, --db string          session database file
//	-l, --log-level string   log level (debug, info, warn, error)
func Bind(fs *pflag.FlagSet) *Loader {
	l := &Loader{fs: fs}
	var defaults Config
	defaults.LoadDefaults()

	fs.StringVarP(&l.configPath, "config", "c", "", "JSON config file")
	fs.StringVarP(&l.flags.ServerEndpointAddr, "addr", "a", defaults.ServerEndpointAddr, "address and port of blogd")
	fs.StringVarP(&l.flags.DBPath, "db", "d", defaults.DBPath, "session database file")
	fs.StringVarP(&l.flags.LogLevel, "log-level", "l", defaults.LogLevel, "log level (debug, info, warn, error)")
	return l
}

// Load applies defaults, then the JSON file, then the flags the user set.
func (l *Loader) Load() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, l.configPath); err != nil {
		return nil, err
	}

	if l.fs.Changed("addr") {
		cfg.ServerEndpointAddr = l.flags.ServerEndpointAddr
	}
	if l.fs.Changed("db") {
		cfg.DBPath = l.flags.DBPath
	}
	if l.fs.Changed("log-level") {
		cfg.LogLevel = l.flags.LogLevel
	}
	return cfg, nil
}
