// Package session manages live machines addressed by ID, with concurrency control
// and optional trace recording. It backs the HTTP and MCP adapters.
package session
