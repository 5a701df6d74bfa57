// Package proto defines the blog.store.v1.StoreService gRPC contract shared by
// blogd and its clients.
//
// Every message travels as a google.protobuf.Struct holding the JSON form of
// the Go request/response types declared in messages.go, so the default
// protobuf codec carries rows as plain documents.
package proto
