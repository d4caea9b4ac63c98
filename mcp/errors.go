package mcp

import "errors"

var (
	// ErrNotConnected is returned when a client method is used before
	// Connect succeeds or after Close.
	ErrNotConnected = errors.New("mcp client not connected")

	// ErrAlreadyConnected is returned by Connect on a connected client.
	ErrAlreadyConnected = errors.New("mcp client already connected")

	// ErrNoTools is returned by NewServer when no tools are provided.
	ErrNoTools = errors.New("mcp server requires at least one tool")
)
