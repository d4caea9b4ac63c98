package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepnoodle-ai/skillet/mcp"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/wonton/cli"
)

func registerServeCommand(app *cli.App) {
	app.Command("serve").
		Description("Expose the skill tools over MCP stdio for other agents to consume").
		Flags(
			cli.String("skills", "s").
				Env("SKILLET_SKILLS_DIR").
				Help("Directory containing skill subdirectories"),
			cli.Bool("auto-install", "").
				Help("Install Python dependencies into a per-skill .venv before Python commands"),
		).
		Run(runServe)
}

func runServe(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	if ctx.Bool("auto-install") {
		cfg.AutoInstallDeps = true
	}
	logger, err := cfg.Logger()
	if err != nil {
		return cli.Errorf("%v", err)
	}
	workspace, err := skill.NewWorkspace(skill.WorkspaceOptions{
		Dir:    cfg.SkillsDirectory,
		Logger: logger,
	})
	if err != nil {
		return cli.Errorf("%v", err)
	}

	server, err := mcp.NewServer(mcp.ServerOptions{
		Name:    "skillet",
		Version: "0.1.0",
		Tools:   workspaceTools(workspace, cfg, logger),
		Logger:  logger,
	})
	if err != nil {
		return cli.Errorf("%v", err)
	}

	goCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := server.ServeStdio(goCtx); err != nil && !errors.Is(err, context.Canceled) {
		return cli.Errorf("%v", err)
	}
	return nil
}
