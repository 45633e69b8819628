// Package server holds the HTTP server configuration.
//
// The application entry point (cmd/start.go) builds the Fiber app from Config:
// listen port, API key and the body limit that caps spreadsheet uploads.
package server
