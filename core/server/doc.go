// Package server holds the HTTP server configuration.
//
// The start command builds the fiber app from this config; the auth
// middleware is only mounted when an API key is set.
package server
