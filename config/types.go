// Package config defines the file-based configuration for the skillet
// CLI: where the skills live, which model drives the agent, and which
// MCP servers to attach. Files may be YAML or JSON; parsing is strict,
// so unknown keys fail rather than silently vanish.
package config

import "github.com/deepnoodle-ai/skillet/mcp"

// Config is the root of a skillet configuration file.
type Config struct {
	// SkillsDirectory holds the skill tree scanned by the workspace.
	SkillsDirectory string `yaml:"SkillsDirectory,omitempty" json:"SkillsDirectory,omitempty"`

	// Provider selects the chat model provider. When empty, the model
	// name decides (see GetModel).
	Provider string `yaml:"Provider,omitempty" json:"Provider,omitempty"`

	// Model is the model name passed to the provider.
	Model string `yaml:"Model,omitempty" json:"Model,omitempty"`

	// BaseURL overrides the provider endpoint, for OpenAI-compatible
	// servers at other addresses.
	BaseURL string `yaml:"BaseURL,omitempty" json:"BaseURL,omitempty"`

	// APIKeyEnv names the environment variable holding the API key.
	// When empty, each provider reads its usual variable.
	APIKeyEnv string `yaml:"APIKeyEnv,omitempty" json:"APIKeyEnv,omitempty"`

	// MaxSteps bounds the model calls per agent run. Zero means the
	// agent default.
	MaxSteps int `yaml:"MaxSteps,omitempty" json:"MaxSteps,omitempty"`

	// AutoInstallDeps enables the Python dependency bootstrap before
	// shell commands that appear to run Python.
	AutoInstallDeps bool `yaml:"AutoInstallDeps,omitempty" json:"AutoInstallDeps,omitempty"`

	// SystemPrompt overrides the built-in system prompt template.
	SystemPrompt string `yaml:"SystemPrompt,omitempty" json:"SystemPrompt,omitempty"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"LogLevel,omitempty" json:"LogLevel,omitempty"`

	// MCPServers lists external MCP servers whose tools are offered to
	// the agent alongside or instead of the built-in toolkit.
	MCPServers []MCPServer `yaml:"MCPServers,omitempty" json:"MCPServers,omitempty"`
}

// MCPServer configures one stdio MCP server connection.
type MCPServer struct {
	Name    string            `yaml:"Name" json:"Name"`
	Command string            `yaml:"Command" json:"Command"`
	Args    []string          `yaml:"Args,omitempty" json:"Args,omitempty"`
	Env     map[string]string `yaml:"Env,omitempty" json:"Env,omitempty"`
}

// ServerConfig converts the entry to the mcp package's config form.
func (s *MCPServer) ServerConfig() *mcp.ServerConfig {
	return &mcp.ServerConfig{
		Name:    s.Name,
		Command: s.Command,
		Args:    s.Args,
		Env:     s.Env,
	}
}

// ServerConfigs converts every configured MCP server entry.
func (c *Config) ServerConfigs() []*mcp.ServerConfig {
	if len(c.MCPServers) == 0 {
		return nil
	}
	configs := make([]*mcp.ServerConfig, 0, len(c.MCPServers))
	for i := range c.MCPServers {
		configs = append(configs, c.MCPServers[i].ServerConfig())
	}
	return configs
}
