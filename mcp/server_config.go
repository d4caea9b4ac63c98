package mcp

import (
	"fmt"
	"sort"
)

// ServerConfig describes how to start and identify one stdio MCP server.
// The server runs as a subprocess speaking MCP over stdin/stdout.
type ServerConfig struct {
	// Name identifies the server in logs and tool metadata.
	Name string `json:"name" yaml:"name"`

	// Command is the executable to run.
	Command string `json:"command" yaml:"command"`

	// Args are passed to the command.
	Args []string `json:"args,omitempty" yaml:"args,omitempty"`

	// Env holds extra environment variables for the subprocess, merged
	// over the parent environment.
	Env map[string]string `json:"env,omitempty" yaml:"env,omitempty"`
}

// Validate checks that the config can be used to start a server.
func (c *ServerConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("mcp server config: name is required")
	}
	if c.Command == "" {
		return fmt.Errorf("mcp server config %q: command is required", c.Name)
	}
	return nil
}

// environ returns the Env map as KEY=VALUE pairs in sorted key order.
func (c *ServerConfig) environ() []string {
	if len(c.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(c.Env))
	for key := range c.Env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, key := range keys {
		pairs = append(pairs, key+"="+c.Env[key])
	}
	return pairs
}
