package toolkit

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/wonton/assert"
)

func newShellTool(t *testing.T, dir string) *skillet.TypedToolAdapter[*RunShellCommandInput] {
	t.Helper()
	return NewRunShellCommandTool(RunShellCommandToolOptions{
		Workspace: newTestWorkspace(t, dir),
	})
}

func TestRunShellCommandTool_Name(t *testing.T) {
	tool := newShellTool(t, t.TempDir())
	assert.Equal(t, "run_shell_command", tool.Name())
}

func TestRunShellCommandTool_Description(t *testing.T) {
	dir := t.TempDir()
	tool := newShellTool(t, dir)
	ws := newTestWorkspace(t, dir)
	assert.Contains(t, tool.Description(), ws.Root())
}

func TestRunShellCommandTool_Schema(t *testing.T) {
	tool := newShellTool(t, t.TempDir())
	schema := tool.Schema()
	assert.Equal(t, []string{"skill_name", "command"}, schema.Required)
	assert.Contains(t, schema.Properties, "skill_name")
	assert.Contains(t, schema.Properties, "command")
}

func TestRunShellCommandTool_Annotations(t *testing.T) {
	tool := newShellTool(t, t.TempDir())
	annotations := tool.Annotations()
	assert.True(t, annotations.DestructiveHint)
	assert.True(t, annotations.OpenWorldHint)
	assert.False(t, annotations.ReadOnlyHint)
}

func TestRunShellCommandTool_Call_Echo(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping on Windows - bash not available")
	}
	dir := t.TempDir()
	writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

	tool := newShellTool(t, dir)
	result, err := tool.Call(context.Background(), &RunShellCommandInput{
		SkillName: "pdf-fill",
		Command:   "echo hi",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "hi\n", result.Content[0].Text)
	assert.Contains(t, result.Display, "echo hi")
}

func TestRunShellCommandTool_Call_NonZeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping on Windows - bash not available")
	}
	dir := t.TempDir()
	writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

	tool := newShellTool(t, dir)
	result, err := tool.Call(context.Background(), &RunShellCommandInput{
		SkillName: "pdf-fill",
		Command:   "echo out; echo err 1>&2; exit 3",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "out\nerr", result.Content[0].Text)
}

func TestRunShellCommandTool_Call_RunsInSkillDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping on Windows - bash not available")
	}
	dir := t.TempDir()
	writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

	tool := newShellTool(t, dir)
	result, err := tool.Call(context.Background(), &RunShellCommandInput{
		SkillName: "pdf-fill",
		Command:   "touch marker.txt",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)

	_, statErr := os.Stat(filepath.Join(dir, "pdf-fill", "marker.txt"))
	assert.NoError(t, statErr)
}

func TestRunShellCommandTool_Call_InheritsEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping on Windows - bash not available")
	}
	t.Setenv("SKILLET_TEST_VALUE", "zap")
	dir := t.TempDir()
	writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

	tool := newShellTool(t, dir)
	result, err := tool.Call(context.Background(), &RunShellCommandInput{
		SkillName: "pdf-fill",
		Command:   "printenv SKILLET_TEST_VALUE",
	})
	assert.NoError(t, err)
	assert.Equal(t, "zap\n", result.Content[0].Text)
}

func TestRunShellCommandTool_Call_MissingSkillDirectory(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping on Windows - bash not available")
	}
	tool := newShellTool(t, t.TempDir())
	result, err := tool.Call(context.Background(), &RunShellCommandInput{
		SkillName: "ghost",
		Command:   "echo hi",
	})
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "could not be run")
}

func TestRunShellCommandTool_Call_EmptyCommand(t *testing.T) {
	tool := newShellTool(t, t.TempDir())
	result, err := tool.Call(context.Background(), &RunShellCommandInput{SkillName: "pdf-fill"})
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "'command' is required")
}

func TestSkillEnvironment(t *testing.T) {
	t.Run("without a venv the environment is unchanged", func(t *testing.T) {
		skillDir := t.TempDir()
		assert.Equal(t, len(os.Environ()), len(skillEnvironment(skillDir)))
	})

	t.Run("with a venv PATH and VIRTUAL_ENV are set", func(t *testing.T) {
		skillDir := t.TempDir()
		venvDir := filepath.Join(skillDir, venvDirName)
		assert.NoError(t, os.MkdirAll(filepath.Join(venvDir, "bin"), 0755))

		binDir := filepath.Join(venvDir, "bin")
		if runtime.GOOS == "windows" {
			binDir = filepath.Join(venvDir, "Scripts")
		}

		var pathValue, virtualEnv string
		for _, kv := range skillEnvironment(skillDir) {
			if strings.HasPrefix(kv, "PATH=") {
				pathValue = strings.TrimPrefix(kv, "PATH=")
			}
			if strings.HasPrefix(kv, "VIRTUAL_ENV=") {
				virtualEnv = strings.TrimPrefix(kv, "VIRTUAL_ENV=")
			}
		}
		assert.True(t, strings.HasPrefix(pathValue, binDir+string(os.PathListSeparator)))
		assert.Equal(t, venvDir, virtualEnv)
	})
}

func TestTruncateCommand(t *testing.T) {
	assert.Equal(t, "echo hi", truncateCommand("echo hi", 40))
	long := strings.Repeat("x", 60)
	truncated := truncateCommand(long, 40)
	assert.Len(t, truncated, 43)
	assert.True(t, strings.HasSuffix(truncated, "..."))
}
