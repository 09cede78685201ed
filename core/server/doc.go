// Package server holds the HTTP server configuration.
//
// The Config struct defines the HTTP port, the credentials accepted by the
// auth middleware (a static API key and a JWT secret), the interval of
// scheduled sync passes and the graceful shutdown timeout.
//
// This package is primarily used by the core/config package to embed server
// settings and by cmd/start.go to run the server.
package server
