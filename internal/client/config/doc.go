// Package config loads settings for the blog command-line client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. An optional JSON file named by --config / -c.
//  3. Persistent command-line flags that were set explicitly.
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "db_path": "/home/me/.config/blogsync/session.db",
//	  "log_level": "warn"
//	}
//
// Environment variables are not consulted.
package config
