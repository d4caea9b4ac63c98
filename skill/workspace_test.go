package skill

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func writeSkillFile(t *testing.T, root, dir, content string) {
	t.Helper()
	skillDir := filepath.Join(root, dir)
	assert.NoError(t, os.MkdirAll(skillDir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(skillDir, SkillFileName), []byte(content), 0644))
}

func newTestWorkspace(t *testing.T, dir string) *Workspace {
	t.Helper()
	ws, err := NewWorkspace(WorkspaceOptions{Dir: dir})
	assert.NoError(t, err)
	return ws
}

func TestNewWorkspace(t *testing.T) {
	t.Run("requires a directory", func(t *testing.T) {
		_, err := NewWorkspace(WorkspaceOptions{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "skill directory is required")
	})

	t.Run("resolves the root to an absolute path", func(t *testing.T) {
		ws, err := NewWorkspace(WorkspaceOptions{Dir: "."})
		assert.NoError(t, err)
		assert.True(t, filepath.IsAbs(ws.Root()))
	})

	t.Run("skill dir is root plus name", func(t *testing.T) {
		ws := newTestWorkspace(t, t.TempDir())
		assert.Equal(t, filepath.Join(ws.Root(), "pdf-fill"), ws.SkillDir("pdf-fill"))
	})
}

func TestParseMetadata(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		wantName    string
		wantDesc    string
		wantErr     bool
		errContains string
	}{
		{
			name: "plain values",
			content: `---
name: pdf-fill
description: Fill PDF forms programmatically.
---

Instructions`,
			wantName: "pdf-fill",
			wantDesc: "Fill PDF forms programmatically.",
		},
		{
			name: "double quoted values",
			content: `---
name: "pdf-fill"
description: "Fill PDF forms"
---
body`,
			wantName: "pdf-fill",
			wantDesc: "Fill PDF forms",
		},
		{
			name: "single quoted values",
			content: `---
name: 'pdf-fill'
description: 'Fill PDF forms'
---
body`,
			wantName: "pdf-fill",
			wantDesc: "Fill PDF forms",
		},
		{
			name: "mismatched quotes are kept",
			content: `---
name: 'pdf-fill"
description: Fill PDF forms
---
body`,
			wantName: `'pdf-fill"`,
			wantDesc: "Fill PDF forms",
		},
		{
			name: "surrounding whitespace is trimmed",
			content: `---
name:    pdf-fill
   description:   Fill PDF forms
---
body`,
			wantName: "pdf-fill",
			wantDesc: "Fill PDF forms",
		},
		{
			name: "description value may contain colons",
			content: `---
name: pdf-fill
description: Forms: how to fill them
---
body`,
			wantName: "pdf-fill",
			wantDesc: "Forms: how to fill them",
		},
		{
			name: "unknown fields are ignored",
			content: `---
name: pdf-fill
version: 2
description: Fill PDF forms
license: MIT
---
body`,
			wantName: "pdf-fill",
			wantDesc: "Fill PDF forms",
		},
		{
			name:        "no frontmatter",
			content:     "# Just markdown\n\nNo metadata here.",
			wantErr:     true,
			errContains: "no frontmatter",
		},
		{
			name: "unterminated frontmatter",
			content: `---
name: pdf-fill
description: Fill PDF forms`,
			wantErr:     true,
			errContains: "no frontmatter",
		},
		{
			name: "missing description",
			content: `---
name: pdf-fill
---
body`,
			wantErr:     true,
			errContains: "missing name or description",
		},
		{
			name: "missing name",
			content: `---
description: Fill PDF forms
---
body`,
			wantErr:     true,
			errContains: "missing name or description",
		},
		{
			name: "empty quoted name",
			content: `---
name: ""
description: Fill PDF forms
---
body`,
			wantErr:     true,
			errContains: "missing name or description",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, description, err := parseMetadata(tt.content)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDesc, description)
		})
	}
}

func TestSkillBody(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "returns text after the frontmatter",
			content: `---
name: pdf-fill
description: Fill PDF forms
---

# PDF Form Filling

1. Read forms.md
`,
			want: "# PDF Form Filling\n\n1. Read forms.md\n",
		},
		{
			name:    "no frontmatter returns content unchanged",
			content: "Just instructions, nothing else.\n",
			want:    "Just instructions, nothing else.\n",
		},
		{
			name:    "delimiters inside the body count as frontmatter",
			content: "Intro\n---\nmiddle\n---\nend",
			want:    "end",
		},
		{
			name: "later delimiters stay in the body",
			content: `---
name: pdf-fill
description: Fill PDF forms
---
First section
---
Second section`,
			want: "First section\n---\nSecond section",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, skillBody(tt.content))
		})
	}
}

func TestWorkspaceScan(t *testing.T) {
	t.Run("collects valid skills in scan order", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "alpha", "---\nname: alpha\ndescription: First skill\n---\nbody")
		writeSkillFile(t, dir, "beta", "---\nname: beta\ndescription: Second skill\n---\nbody")
		writeSkillFile(t, dir, "broken", "no frontmatter at all")

		ws := newTestWorkspace(t, dir)
		skills, err := ws.Scan()
		assert.NoError(t, err)
		assert.Len(t, skills, 2)
		assert.Equal(t, "alpha", skills[0].Name)
		assert.Equal(t, "First skill", skills[0].Description)
		assert.Equal(t, filepath.Join(ws.Root(), "alpha"), skills[0].Directory)
		assert.Equal(t, filepath.Join(ws.Root(), "alpha", SkillFileName), skills[0].Path)
		assert.Equal(t, "beta", skills[1].Name)
	})

	t.Run("discovers nested skills", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, filepath.Join("office", "pdf-fill"),
			"---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

		ws := newTestWorkspace(t, dir)
		skills, err := ws.Scan()
		assert.NoError(t, err)
		assert.Len(t, skills, 1)
		assert.Equal(t, filepath.Join(ws.Root(), "office", "pdf-fill"), skills[0].Directory)
	})

	t.Run("keeps duplicate names", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "a", "---\nname: twin\ndescription: From a\n---\nbody")
		writeSkillFile(t, dir, "b", "---\nname: twin\ndescription: From b\n---\nbody")

		ws := newTestWorkspace(t, dir)
		skills, err := ws.Scan()
		assert.NoError(t, err)
		assert.Len(t, skills, 2)
		assert.Equal(t, "From a", skills[0].Description)
		assert.Equal(t, "From b", skills[1].Description)
	})

	t.Run("fails when no skill files exist", func(t *testing.T) {
		ws := newTestWorkspace(t, t.TempDir())
		_, err := ws.Scan()
		assert.ErrorIs(t, err, ErrNoSkills)
		assert.Contains(t, err.Error(), "no SKILL.md files found")
	})
}

func TestWorkspaceListSkills(t *testing.T) {
	t.Run("renders banner and one line per valid skill", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "broken", "---\nname: broken\n---\nbody")
		writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")

		ws := newTestWorkspace(t, dir)
		listing, err := ws.ListSkills()
		assert.NoError(t, err)
		want := `Available skills (each line is "- <skill_name>: <skill_description>"):` +
			"\n- pdf-fill: Fill PDF forms"
		assert.Equal(t, want, listing)
	})

	t.Run("renders only the banner when every skill is invalid", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "broken", "no frontmatter")

		ws := newTestWorkspace(t, dir)
		listing, err := ws.ListSkills()
		assert.NoError(t, err)
		assert.Equal(t, ListingBanner, listing)
	})

	t.Run("fails on an empty workspace", func(t *testing.T) {
		ws := newTestWorkspace(t, t.TempDir())
		_, err := ws.ListSkills()
		assert.Error(t, err)
	})
}

func TestWorkspaceLoadSkill(t *testing.T) {
	t.Run("returns instructions after the frontmatter", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "pdf-fill", `---
name: pdf-fill
description: Fill PDF forms
---

# PDF Form Filling

Run scripts/fill.py with the form data.
`)

		ws := newTestWorkspace(t, dir)
		body, err := ws.LoadSkill("pdf-fill")
		assert.NoError(t, err)
		assert.Equal(t, "# PDF Form Filling\n\nRun scripts/fill.py with the form data.\n", body)
		assert.NotContains(t, body, "description:")
	})

	t.Run("returns the full document when frontmatter is absent", func(t *testing.T) {
		dir := t.TempDir()
		content := "Plain instructions without metadata.\n"
		writeSkillFile(t, dir, "plain", content)

		ws := newTestWorkspace(t, dir)
		body, err := ws.LoadSkill("plain")
		assert.NoError(t, err)
		assert.Equal(t, content, body)
	})

	t.Run("missing skill returns a diagnostic, not an error", func(t *testing.T) {
		ws := newTestWorkspace(t, t.TempDir())
		body, err := ws.LoadSkill("no-such-skill")
		assert.NoError(t, err)
		assert.Contains(t, body, "no-such-skill")
		assert.Contains(t, body, "not found")
	})
}

func TestWorkspaceReadReferenceFile(t *testing.T) {
	t.Run("reads a file from the skill directory", func(t *testing.T) {
		dir := t.TempDir()
		writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "pdf-fill", "forms.md"), []byte("field reference"), 0644))

		ws := newTestWorkspace(t, dir)
		content, err := ws.ReadReferenceFile("pdf-fill", "forms.md")
		assert.NoError(t, err)
		assert.Equal(t, "field reference", content)
	})

	t.Run("resolves nested relative paths", func(t *testing.T) {
		dir := t.TempDir()
		assetDir := filepath.Join(dir, "pdf-fill", "assets")
		assert.NoError(t, os.MkdirAll(assetDir, 0755))
		assert.NoError(t, os.WriteFile(filepath.Join(assetDir, "fields.md"), []byte("nested"), 0644))

		ws := newTestWorkspace(t, dir)
		content, err := ws.ReadReferenceFile("pdf-fill", filepath.Join("assets", "fields.md"))
		assert.NoError(t, err)
		assert.Equal(t, "nested", content)
	})

	t.Run("parent segments resolve outside the skill directory", func(t *testing.T) {
		dir := t.TempDir()
		assert.NoError(t, os.MkdirAll(filepath.Join(dir, "pdf-fill"), 0755))
		assert.NoError(t, os.WriteFile(filepath.Join(dir, "shared.txt"), []byte("shared"), 0644))

		ws := newTestWorkspace(t, dir)
		content, err := ws.ReadReferenceFile("pdf-fill", filepath.Join("..", "shared.txt"))
		assert.NoError(t, err)
		assert.Equal(t, "shared", content)
	})

	t.Run("missing file returns a diagnostic naming file and skill", func(t *testing.T) {
		ws := newTestWorkspace(t, t.TempDir())
		content, err := ws.ReadReferenceFile("pdf-fill", "missing.md")
		assert.NoError(t, err)
		assert.Contains(t, content, "missing.md")
		assert.Contains(t, content, "pdf-fill")
	})
}
