package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/blogsync/internal/flagx"
)

var knownFlags = []string{"-a", "-d", "-s", "-t", "-r", "-u", "-p", "-b", "-g", "-e", "-l"}

// parseFlags overlays command-line flags onto config.
//
//	-a string     gRPC listen address (":50051")
//	-d string     PostgreSQL DSN
//	-s string     JWT HMAC secret
//	-t duration   access token lifetime ("15m")
//	-r duration   refresh token lifetime ("168h")
//	-u string     S3 access key
//	-p string     S3 secret key
//	-b string     S3 bucket
//	-g string     S3 region
//	-e string     S3 endpoint
//	-l string     log level (debug, info, warn, error)
//
// Unknown arguments are filtered out first so -c/-config can share the command line.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("blogd", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.ListenAddr, "a", config.ListenAddr, "address and port to listen on")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.JWTSecret, "s", config.JWTSecret, "JWT secret")
	fs.DurationVar(&config.AccessTokenTTL, "t", config.AccessTokenTTL, "access token lifetime")
	fs.DurationVar(&config.RefreshTokenTTL, "r", config.RefreshTokenTTL, "refresh token lifetime")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "p", config.S3SecretKey, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3Endpoint, "e", config.S3Endpoint, "S3 endpoint")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
