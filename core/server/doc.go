// Package server holds the HTTP server configuration.
//
// The start command owns the actual Fiber setup; this package only defines
// the configuration structure (listen port, API key) consumed there and by
// the auth middleware.
package server
