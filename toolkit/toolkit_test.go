package toolkit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/wonton/assert"
)

func writeSkillFile(t *testing.T, root, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	assert.NoError(t, os.MkdirAll(skillDir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(skillDir, skill.SkillFileName), []byte(content), 0644))
}

func newTestWorkspace(t *testing.T, dir string) *skill.Workspace {
	t.Helper()
	ws, err := skill.NewWorkspace(skill.WorkspaceOptions{Dir: dir})
	assert.NoError(t, err)
	return ws
}

func TestShellCommand(t *testing.T) {
	shell, args := shellCommand()
	assert.NotEmpty(t, shell)
	assert.Len(t, args, 1)
}
