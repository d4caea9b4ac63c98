package toolkit

import (
	"context"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/wonton/schema"
)

var _ skillet.TypedTool[*ReadReferenceFileInput] = &ReadReferenceFileTool{}

// ReadReferenceFileInput is the input for the ReadReferenceFileTool.
type ReadReferenceFileInput struct {
	// SkillName is the skill whose directory contains the file.
	SkillName string `json:"skill_name"`

	// FileName is the file to read, relative to the skill directory.
	// Nested paths such as "assets/fields.md" are allowed.
	FileName string `json:"file_name"`
}

// ReadReferenceFileTool reads an auxiliary file from a skill's directory,
// e.g. forms.md, reference.md, or ooxml.md. A missing file yields a
// diagnostic message rather than an error.
type ReadReferenceFileTool struct {
	workspace *skill.Workspace
}

// NewReadReferenceFileTool creates the reference file tool for the given
// workspace.
func NewReadReferenceFileTool(workspace *skill.Workspace) *skillet.TypedToolAdapter[*ReadReferenceFileInput] {
	return skillet.ToolAdapter(&ReadReferenceFileTool{workspace: workspace})
}

func (t *ReadReferenceFileTool) Name() string {
	return "read_reference_file"
}

func (t *ReadReferenceFileTool) Description() string {
	return "Read a reference file from a skill's directory (e.g. forms.md, reference.md, ooxml.md). The file name may be a relative path."
}

func (t *ReadReferenceFileTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"skill_name", "file_name"},
		Properties: map[string]*schema.Property{
			"skill_name": {
				Type:        "string",
				Description: "The name of the skill the file belongs to.",
			},
			"file_name": {
				Type:        "string",
				Description: "The reference file name or relative path within the skill directory.",
			},
		},
	}
}

func (t *ReadReferenceFileTool) Annotations() *skillet.ToolAnnotations {
	return &skillet.ToolAnnotations{
		Title:          "Read Reference File",
		ReadOnlyHint:   true,
		IdempotentHint: true,
	}
}

func (t *ReadReferenceFileTool) Call(ctx context.Context, input *ReadReferenceFileInput) (*skillet.ToolResult, error) {
	content, err := t.workspace.ReadReferenceFile(input.SkillName, input.FileName)
	if err != nil {
		return nil, err
	}
	return skillet.NewToolResultText(content), nil
}
