// Package cli is the blog command-line client.
//
// Every invocation restores the session persisted in the local SQLite
// database, starts a content.Synchronizer against blogd, runs one command
// and exits. Reads are served from the synchronizer's caches; writes go
// through its mutation methods.
package cli
