package toolkit

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/deepnoodle-ai/wonton/assert"
)

func TestReadReferenceFileTool_Name(t *testing.T) {
	tool := NewReadReferenceFileTool(newTestWorkspace(t, t.TempDir()))
	assert.Equal(t, "read_reference_file", tool.Name())
}

func TestReadReferenceFileTool_Schema(t *testing.T) {
	tool := NewReadReferenceFileTool(newTestWorkspace(t, t.TempDir()))
	schema := tool.Schema()
	assert.Equal(t, []string{"skill_name", "file_name"}, schema.Required)
	assert.Contains(t, schema.Properties, "skill_name")
	assert.Contains(t, schema.Properties, "file_name")
}

func TestReadReferenceFileTool_Call(t *testing.T) {
	dir := t.TempDir()
	writeSkillFile(t, dir, "pdf-fill", "---\nname: pdf-fill\ndescription: Fill PDF forms\n---\nbody")
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "pdf-fill", "forms.md"), []byte("field reference"), 0644))

	tool := NewReadReferenceFileTool(newTestWorkspace(t, dir))
	result, err := tool.Call(context.Background(), &ReadReferenceFileInput{
		SkillName: "pdf-fill",
		FileName:  "forms.md",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "field reference", result.Content[0].Text)
}

func TestReadReferenceFileTool_Call_NestedPath(t *testing.T) {
	dir := t.TempDir()
	assetDir := filepath.Join(dir, "pdf-fill", "assets")
	assert.NoError(t, os.MkdirAll(assetDir, 0755))
	assert.NoError(t, os.WriteFile(filepath.Join(assetDir, "fields.md"), []byte("nested"), 0644))

	tool := NewReadReferenceFileTool(newTestWorkspace(t, dir))
	result, err := tool.Call(context.Background(), &ReadReferenceFileInput{
		SkillName: "pdf-fill",
		FileName:  "assets/fields.md",
	})
	assert.NoError(t, err)
	assert.Equal(t, "nested", result.Content[0].Text)
}

func TestReadReferenceFileTool_Call_MissingFile(t *testing.T) {
	tool := NewReadReferenceFileTool(newTestWorkspace(t, t.TempDir()))
	result, err := tool.Call(context.Background(), &ReadReferenceFileInput{
		SkillName: "pdf-fill",
		FileName:  "missing.md",
	})
	assert.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "missing.md")
	assert.Contains(t, result.Content[0].Text, "pdf-fill")
}

func TestReadReferenceFileTool_Call_MissingArgument(t *testing.T) {
	tool := NewReadReferenceFileTool(newTestWorkspace(t, t.TempDir()))
	result, err := tool.Call(context.Background(), `{"skill_name": "pdf-fill"}`)
	assert.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, result.Content[0].Text, "file_name")
}
