package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/agent"
	"github.com/deepnoodle-ai/skillet/config"
	"github.com/deepnoodle-ai/skillet/llm"
	"github.com/deepnoodle-ai/skillet/mcp"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/deepnoodle-ai/skillet/toolkit"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerRunCommand(app *cli.App) {
	app.Command("run").
		Description("Run the agent against a query, using skills from a directory or an MCP server").
		Args("query?").
		Flags(
			cli.String("skills", "s").
				Env("SKILLET_SKILLS_DIR").
				Help("Directory containing skill subdirectories"),
			cli.String("query", "q").
				Help("Query to send to the agent (alternative to positional argument)"),
			cli.Int("max-steps", "").
				Help("Maximum model calls per run"),
			cli.Bool("auto-install", "").
				Help("Install Python dependencies into a per-skill .venv before Python commands"),
			cli.String("base-url", "").
				Help("Override the provider endpoint URL"),
			cli.String("system-prompt", "").
				Help("Path to a custom system prompt template file"),
			cli.String("mcp", "").
				Help("Connect to an MCP server command for tools instead of the built-in toolkit"),
		).
		Run(runAgent)
}

func runAgent(ctx *cli.Context) error {
	var query string
	if ctx.NArg() > 0 {
		query = ctx.Arg(0)
	} else {
		query = ctx.String("query")
	}
	if query == "" {
		return cli.Errorf("no query provided. Use argument or --query flag")
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	if v := ctx.Int("max-steps"); v > 0 {
		cfg.MaxSteps = v
	}
	if ctx.Bool("auto-install") {
		cfg.AutoInstallDeps = true
	}
	if v := ctx.String("base-url"); v != "" {
		cfg.BaseURL = v
	}
	if path := ctx.String("system-prompt"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cli.Errorf("failed to read system prompt file: %v", err)
		}
		cfg.SystemPrompt = string(data)
	}

	logger, err := cfg.Logger()
	if err != nil {
		return cli.Errorf("%v", err)
	}
	model, err := cfg.GetModel()
	if err != nil {
		return cli.Errorf("%v", err)
	}

	goCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	tools, cleanup, err := buildTools(goCtx, cfg, ctx.String("mcp"), logger)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	defer cleanup()

	runner, err := agent.New(agent.Options{
		Model:        model,
		Tools:        tools,
		SystemPrompt: cfg.SystemPrompt,
		MaxSteps:     cfg.MaxSteps,
		Logger:       logger,
	})
	if err != nil {
		return cli.Errorf("%v", err)
	}

	conversation, err := runner.Run(goCtx, query)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	printConversation(conversation)
	return nil
}

// buildTools assembles the agent's tool set: adapters over one or more
// MCP servers when any are configured, otherwise the built-in toolkit
// over a local skill workspace. The returned cleanup closes any MCP
// connections.
func buildTools(ctx context.Context, cfg *config.Config, mcpCommand string, logger slogger.Logger) ([]skillet.Tool, func() error, error) {
	noop := func() error { return nil }

	serverConfigs := cfg.ServerConfigs()
	if mcpCommand != "" {
		parts := strings.Fields(mcpCommand)
		if len(parts) == 0 {
			return nil, noop, fmt.Errorf("empty --mcp command")
		}
		serverConfigs = append(serverConfigs, &mcp.ServerConfig{
			Name:    filepath.Base(parts[0]),
			Command: parts[0],
			Args:    parts[1:],
		})
	}
	if len(serverConfigs) > 0 {
		manager := mcp.NewManager(mcp.ManagerOptions{Logger: logger})
		if err := manager.InitializeServers(ctx, serverConfigs); err != nil {
			manager.Close()
			return nil, noop, err
		}
		return manager.Tools(), manager.Close, nil
	}

	workspace, err := skill.NewWorkspace(skill.WorkspaceOptions{
		Dir:    cfg.SkillsDirectory,
		Logger: logger,
	})
	if err != nil {
		return nil, noop, err
	}
	return workspaceTools(workspace, cfg, logger), noop, nil
}

// workspaceTools builds the four built-in tools over one workspace.
func workspaceTools(workspace *skill.Workspace, cfg *config.Config, logger slogger.Logger) []skillet.Tool {
	return []skillet.Tool{
		toolkit.NewListSkillsTool(workspace),
		toolkit.NewLoadSkillTool(workspace),
		toolkit.NewReadReferenceFileTool(workspace),
		toolkit.NewRunShellCommandTool(toolkit.RunShellCommandToolOptions{
			Workspace:       workspace,
			AutoInstallDeps: cfg.AutoInstallDeps,
			Logger:          logger,
		}),
	}
}

// printConversation writes the assistant's side of the run to stdout:
// text blocks as-is and tool invocations dimmed, with the final
// task-complete marker dropped.
func printConversation(conversation *agent.Conversation) {
	for _, message := range conversation.Messages() {
		if message.Role != llm.Assistant {
			continue
		}
		for _, content := range message.Content {
			switch content := content.(type) {
			case *llm.TextContent:
				text := strings.TrimSpace(content.Text)
				if text == "" || text == agent.TaskComplete {
					continue
				}
				fmt.Println(text)
			case *llm.ToolUseContent:
				fmt.Println(toolStyle.Sprintf("→ %s %s", content.Name, string(content.Input)))
			}
		}
	}
}
