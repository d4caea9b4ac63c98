// Command skillet runs a skill-using agent against a directory of
// skills, lists and watches that directory, and serves the skill tools
// over MCP stdio for other agents to consume.
package main

import (
	"fmt"
	"os"

	"github.com/deepnoodle-ai/skillet/config"
	"github.com/deepnoodle-ai/wonton/cli"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	app := cli.New("skillet").
		Description("Agent that discovers and uses skills from SKILL.md directories").
		Version("0.1.0").
		GlobalFlags(
			cli.String("config", "c").
				Env("SKILLET_CONFIG").
				Help("Path to a skillet config file (YAML or JSON)"),
			cli.String("provider", "").
				Env("SKILLET_PROVIDER").
				Help("Model provider ('openrouter', 'openai', 'openai-compatible')"),
			cli.String("model", "m").
				Env("SKILLET_MODEL").
				Help("Model to use (e.g. 'anthropic/claude-sonnet-4-5')"),
			cli.String("log-level", "").
				Env("SKILLET_LOG_LEVEL").
				Help("Log level to use (debug, info, warn, error)"),
		)

	registerRunCommand(app)
	registerSkillsCommand(app)
	registerServeCommand(app)

	if err := app.Execute(); err != nil {
		if cli.IsHelpRequested(err) {
			os.Exit(0)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}

// loadConfig builds the effective configuration: defaults, then the
// config file when one is given, then flag overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String("config"); path != "" {
		loaded, err := config.ParseFile(path)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		if loaded.SkillsDirectory == "" {
			loaded.SkillsDirectory = cfg.SkillsDirectory
		}
		if loaded.LogLevel == "" {
			loaded.LogLevel = cfg.LogLevel
		}
		cfg = loaded
	}
	if v := ctx.String("provider"); v != "" {
		cfg.Provider = v
	}
	if v := ctx.String("model"); v != "" {
		cfg.Model = v
	}
	if v := ctx.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v := ctx.String("skills"); v != "" {
		cfg.SkillsDirectory = v
	}
	return cfg, nil
}
