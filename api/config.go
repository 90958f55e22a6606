// Package api provides the HTTP API server for the chat agent.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8000")
	ListenAddr string
	// CORSOrigins are the browser origins allowed to call the API
	CORSOrigins []string
	// Version is reported by the root endpoint
	Version string
}
