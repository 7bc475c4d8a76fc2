// Package server holds the HTTP server configuration.
//
// While the start command handles the server startup, this package defines the
// configuration structure and its validation helpers.
//
// # Configuration
//
// The Config struct defines the HTTP port, the API key protecting the diff
// endpoints, and the maximum request body size.
package server
