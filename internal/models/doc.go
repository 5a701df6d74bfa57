// Package models defines the records exchanged between the blog client and
// the remote store, and the view models the client derives from them.
package models
