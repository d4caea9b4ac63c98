package toolkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/deepnoodle-ai/wonton/schema"
)

var _ skillet.TypedTool[*RunShellCommandInput] = &RunShellCommandTool{}

// venvDirName is the per-skill virtualenv directory created inside a
// skill's directory when dependency auto-install is enabled.
const venvDirName = ".venv"

// installCommand generates a requirements manifest from the skill's
// scripts and installs it. With the skill's virtualenv activated, pip
// resolves from the venv, so installs never touch a shared interpreter.
const installCommand = "pipreqs . --force --ignore .venv && pip install -r requirements.txt"

// RunShellCommandInput is the input for the RunShellCommandTool.
type RunShellCommandInput struct {
	// SkillName selects the skill directory the command runs in.
	SkillName string `json:"skill_name"`

	// Command is the shell command to execute.
	Command string `json:"command"`
}

// RunShellCommandToolOptions configures a RunShellCommandTool.
type RunShellCommandToolOptions struct {
	// Workspace locates skill directories. Required.
	Workspace *skill.Workspace

	// AutoInstallDeps enables best-effort Python dependency installation
	// before commands that appear to invoke Python. Install failures are
	// logged and never block the command itself.
	AutoInstallDeps bool

	// Logger receives command and install diagnostics. If nil, logging
	// is disabled.
	Logger slogger.Logger
}

// RunShellCommandTool executes shell commands inside a skill's directory.
//
// On Unix systems, commands run via /bin/bash -c; on Windows, via cmd /C.
// The skill directory is the working directory, so skill scripts and
// reference files resolve with relative paths. Output is captured to
// completion with no timeout and no size cap, and the result text is the
// trimmed stdout and trimmed stderr joined by a newline, whatever the
// command's exit status was. Exit status is not reported; the model infers
// success or failure from the output text.
//
// When AutoInstallDeps is enabled and the command contains "py", the tool
// first tries to install the skill's Python dependencies into a
// per-skill virtualenv at <skill>/.venv, creating it when missing. The
// command itself then runs with that virtualenv activated (its bin
// directory prepended to PATH and VIRTUAL_ENV set), keeping each skill's
// packages isolated from every other skill and from the host interpreter.
//
// Security: this tool executes arbitrary shell commands with the caller's
// full environment and filesystem permissions. There is no sandboxing.
type RunShellCommandTool struct {
	workspace   *skill.Workspace
	autoInstall bool
	logger      slogger.Logger
}

// NewRunShellCommandTool creates the shell command tool.
func NewRunShellCommandTool(opts RunShellCommandToolOptions) *skillet.TypedToolAdapter[*RunShellCommandInput] {
	logger := opts.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	return skillet.ToolAdapter(&RunShellCommandTool{
		workspace:   opts.Workspace,
		autoInstall: opts.AutoInstallDeps,
		logger:      logger,
	})
}

func (t *RunShellCommandTool) Name() string {
	return "run_shell_command"
}

func (t *RunShellCommandTool) Description() string {
	return fmt.Sprintf("Run a shell command inside a skill's directory under %s. "+
		"The skill directory is the working directory, so scripts and reference files "+
		"can be addressed with relative paths. Returns the command's combined stdout and stderr.",
		t.workspace.Root())
}

func (t *RunShellCommandTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"skill_name", "command"},
		Properties: map[string]*schema.Property{
			"skill_name": {
				Type:        "string",
				Description: "The name of the skill whose directory the command runs in.",
			},
			"command": {
				Type:        "string",
				Description: "The shell command to execute.",
			},
		},
	}
}

func (t *RunShellCommandTool) Annotations() *skillet.ToolAnnotations {
	return &skillet.ToolAnnotations{
		Title:           "Run Shell Command",
		DestructiveHint: true,
		OpenWorldHint:   true,
	}
}

// Call runs the command and returns its combined output. Subprocess
// failures never become Go errors: a command that cannot start yields an
// error result, and a command that exits non-zero yields its output text
// exactly like a successful one.
func (t *RunShellCommandTool) Call(ctx context.Context, input *RunShellCommandInput) (*skillet.ToolResult, error) {
	if input.SkillName == "" {
		return skillet.NewToolResultError("error: 'skill_name' is required"), nil
	}
	if input.Command == "" {
		return skillet.NewToolResultError("error: 'command' is required"), nil
	}
	skillDir := t.workspace.SkillDir(input.SkillName)
	t.logger.Info("running shell command", "skill", input.SkillName, "command", input.Command)

	if t.autoInstall && strings.Contains(input.Command, "py") {
		t.installDependencies(ctx, skillDir)
	}

	shell, shellArgs := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, input.Command)...)
	cmd.Dir = skillDir
	cmd.Env = skillEnvironment(skillDir)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return skillet.NewToolResultError(fmt.Sprintf("error: command could not be run: %s", err)), nil
		}
		// Non-zero exits surface only through the captured output.
	}

	output := strings.TrimSpace(stdout.String()) + "\n" + strings.TrimSpace(stderr.String())
	display := fmt.Sprintf("Ran `%s` in %s", truncateCommand(input.Command, 40), input.SkillName)
	return skillet.NewToolResultText(output).WithDisplay(display), nil
}

// installDependencies bootstraps Python dependencies for a skill. Every
// failure is logged and swallowed: this stage must never block the
// primary command.
func (t *RunShellCommandTool) installDependencies(ctx context.Context, skillDir string) {
	if _, err := exec.LookPath("pipreqs"); err != nil {
		t.logger.Info("pipreqs not found on PATH, skipping dependency install")
		return
	}
	if err := ensureVenv(ctx, skillDir); err != nil {
		t.logger.Warn("skipping dependency install", "skill_dir", skillDir, "error", err)
		return
	}
	shell, shellArgs := shellCommand()
	cmd := exec.CommandContext(ctx, shell, append(shellArgs, installCommand)...)
	cmd.Dir = skillDir
	cmd.Env = skillEnvironment(skillDir)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.logger.Warn("failed to install dependencies",
			"skill_dir", skillDir,
			"error", err,
			"output", strings.TrimSpace(string(output)))
		return
	}
	t.logger.Debug("dependencies installed", "skill_dir", skillDir)
}

// ensureVenv creates the skill's virtualenv if it does not exist yet.
// Creation failures abort the install stage, never the primary command;
// installing without a venv would mutate interpreter state shared across
// skills and sessions.
func ensureVenv(ctx context.Context, skillDir string) error {
	venvDir := filepath.Join(skillDir, venvDirName)
	if _, err := os.Stat(venvDir); err == nil {
		return nil
	}
	cmd := exec.CommandContext(ctx, "python3", "-m", "venv", venvDirName)
	cmd.Dir = skillDir
	if output, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("creating virtualenv: %w: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// skillEnvironment returns the environment for commands run in a skill
// directory: the caller's environment verbatim, with the skill's
// virtualenv activated when one exists.
func skillEnvironment(skillDir string) []string {
	env := os.Environ()
	venvDir := filepath.Join(skillDir, venvDirName)
	if _, err := os.Stat(venvDir); err != nil {
		return env
	}
	binDir := filepath.Join(venvDir, "bin")
	if runtime.GOOS == "windows" {
		binDir = filepath.Join(venvDir, "Scripts")
	}
	result := make([]string, 0, len(env)+2)
	foundPath := false
	for _, kv := range env {
		switch {
		case strings.HasPrefix(kv, "PATH="):
			result = append(result, "PATH="+binDir+string(os.PathListSeparator)+strings.TrimPrefix(kv, "PATH="))
			foundPath = true
		case strings.HasPrefix(kv, "VIRTUAL_ENV="):
			// Superseded by the skill's venv below.
		default:
			result = append(result, kv)
		}
	}
	if !foundPath {
		result = append(result, "PATH="+binDir)
	}
	result = append(result, "VIRTUAL_ENV="+venvDir)
	return result
}

// truncateCommand shortens a command for display purposes.
func truncateCommand(command string, maxLen int) string {
	if len(command) <= maxLen {
		return command
	}
	return command[:maxLen] + "..."
}
