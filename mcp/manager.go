package mcp

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/slogger"
)

// connection pairs one connected client with the tools discovered on it.
type connection struct {
	client *Client
	config *ServerConfig
	tools  []skillet.Tool
}

// Manager connects to a set of MCP servers and aggregates their tools.
// Tool names are global across servers; a duplicate is a configuration
// error rather than a silent override.
type Manager struct {
	servers map[string]*connection
	tools   map[string]skillet.Tool
	logger  slogger.Logger
	mutex   sync.RWMutex
}

// ManagerOptions configure a new Manager.
type ManagerOptions struct {
	Logger slogger.Logger
}

// NewManager creates an empty manager.
func NewManager(opts ...ManagerOptions) *Manager {
	m := &Manager{
		servers: make(map[string]*connection),
		tools:   make(map[string]skillet.Tool),
		logger:  slogger.DefaultLogger,
	}
	if len(opts) > 0 && opts[0].Logger != nil {
		m.logger = opts[0].Logger
	}
	return m
}

// InitializeServers connects every configured server and discovers its
// tools. The first failure aborts and is returned; servers connected by
// then stay connected so the caller can still Close them.
func (m *Manager) InitializeServers(ctx context.Context, configs []*ServerConfig) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for _, config := range configs {
		if err := m.initializeServer(ctx, config); err != nil {
			return fmt.Errorf("initializing mcp server %q: %w", config.Name, err)
		}
	}
	return nil
}

func (m *Manager) initializeServer(ctx context.Context, config *ServerConfig) error {
	if _, exists := m.servers[config.Name]; exists {
		return nil
	}
	m.logger.Info("mcp server starting", "server", config.Name, "command", config.Command)

	client, err := NewClient(config)
	if err != nil {
		return err
	}
	if err := client.Connect(ctx); err != nil {
		return err
	}
	remoteTools, err := client.ListTools(ctx)
	if err != nil {
		client.Close()
		return err
	}

	tools := make([]skillet.Tool, 0, len(remoteTools))
	for _, remoteTool := range remoteTools {
		if _, exists := m.tools[remoteTool.Name]; exists {
			client.Close()
			return fmt.Errorf("duplicate tool name %q", remoteTool.Name)
		}
		adapter := NewToolAdapter(client, remoteTool, config.Name)
		tools = append(tools, adapter)
		m.tools[remoteTool.Name] = adapter
	}

	toolNames := make([]string, 0, len(tools))
	for _, tool := range tools {
		toolNames = append(toolNames, tool.Name())
	}
	sort.Strings(toolNames)
	m.logger.Info("mcp server is ready",
		"server", config.Name,
		"tool_count", len(tools),
		"tool_names", toolNames)

	m.servers[config.Name] = &connection{
		client: client,
		config: config,
		tools:  tools,
	}
	return nil
}

// Tools returns every discovered tool across all servers, sorted by name.
func (m *Manager) Tools() []skillet.Tool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.tools))
	for name := range m.tools {
		names = append(names, name)
	}
	sort.Strings(names)
	tools := make([]skillet.Tool, 0, len(names))
	for _, name := range names {
		tools = append(tools, m.tools[name])
	}
	return tools
}

// Tool returns the named tool, or nil if no server provides it.
func (m *Manager) Tool(name string) skillet.Tool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.tools[name]
}

// ServerNames returns the connected server names, sorted.
func (m *Manager) ServerNames() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.servers))
	for name := range m.servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close shuts down every server connection. The first close error is
// returned after all connections are attempted.
func (m *Manager) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	var firstErr error
	for name, conn := range m.servers {
		if err := conn.client.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing mcp server %q: %w", name, err)
		}
	}
	m.servers = make(map[string]*connection)
	m.tools = make(map[string]skillet.Tool)
	return firstErr
}
