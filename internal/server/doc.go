// Package server wires and runs the auth API's HTTP transport.
//
// It owns the server lifecycle: startup, OS signal handling, and graceful
// shutdown.
package server
