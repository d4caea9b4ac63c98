package mcp

import (
	"context"
	"fmt"
	"sync"

	mcpclient "github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"
)

const (
	clientName    = "skillet"
	clientVersion = "0.1.0"
)

// Client manages one stdio MCP server subprocess: it starts the command,
// performs the initialize handshake, and exposes the server's tools.
// It is safe for concurrent use.
type Client struct {
	config    *ServerConfig
	mutex     sync.RWMutex
	client    mcpclient.MCPClient
	connected bool
	tools     []mcp.Tool
}

// NewClient creates a disconnected client for the given server config.
// Call Connect before ListTools or CallTool.
func NewClient(config *ServerConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("mcp server config is required")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Client{config: config}, nil
}

// Name returns the configured server name.
func (c *Client) Name() string {
	return c.config.Name
}

// IsConnected reports whether Connect has succeeded and Close has not
// been called since.
func (c *Client) IsConnected() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.connected
}

// Connect starts the server subprocess and runs the MCP initialize
// handshake. The subprocess inherits the parent environment plus any
// variables from the config.
func (c *Client) Connect(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if c.connected {
		return ErrAlreadyConnected
	}
	inner, err := mcpclient.NewStdioMCPClient(c.config.Command, c.config.environ(), c.config.Args...)
	if err != nil {
		return fmt.Errorf("starting mcp server %q: %w", c.config.Name, err)
	}

	initRequest := mcp.InitializeRequest{}
	initRequest.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initRequest.Params.ClientInfo = mcp.Implementation{
		Name:    clientName,
		Version: clientVersion,
	}
	if _, err := inner.Initialize(ctx, initRequest); err != nil {
		inner.Close()
		return fmt.Errorf("initializing mcp server %q: %w", c.config.Name, err)
	}

	c.client = inner
	c.connected = true
	return nil
}

// ListTools fetches the server's tool list and caches it for GetTools.
func (c *Client) ListTools(ctx context.Context) ([]mcp.Tool, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.connected {
		return nil, ErrNotConnected
	}
	result, err := c.client.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		return nil, fmt.Errorf("listing tools on mcp server %q: %w", c.config.Name, err)
	}
	c.tools = result.Tools
	return result.Tools, nil
}

// GetTools returns the tools cached by the last ListTools call.
func (c *Client) GetTools() []mcp.Tool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	tools := make([]mcp.Tool, len(c.tools))
	copy(tools, c.tools)
	return tools
}

// CallTool invokes the named tool on the server. Tool-level failures are
// reported inside the result via IsError; the error return covers
// transport failures only.
func (c *Client) CallTool(ctx context.Context, name string, arguments map[string]any) (*mcp.CallToolResult, error) {
	c.mutex.RLock()
	inner, connected := c.client, c.connected
	c.mutex.RUnlock()

	if !connected {
		return nil, ErrNotConnected
	}
	request := mcp.CallToolRequest{}
	request.Params.Name = name
	request.Params.Arguments = arguments

	result, err := inner.CallTool(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("calling tool %q on mcp server %q: %w", name, c.config.Name, err)
	}
	return result, nil
}

// Close shuts down the server subprocess. The client may not be reused.
func (c *Client) Close() error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	if !c.connected {
		return nil
	}
	c.connected = false
	inner := c.client
	c.client = nil
	c.tools = nil
	return inner.Close()
}
