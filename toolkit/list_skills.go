package toolkit

import (
	"context"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/wonton/schema"
)

var _ skillet.TypedTool[*ListSkillsInput] = &ListSkillsTool{}

// ListSkillsInput is the input for the ListSkillsTool. The tool takes no
// parameters.
type ListSkillsInput struct{}

// ListSkillsTool lists every skill available in a workspace. The listing
// is rebuilt from disk on each call, so newly added skills appear without
// restarting the agent.
type ListSkillsTool struct {
	workspace *skill.Workspace
}

// NewListSkillsTool creates the skill listing tool for the given workspace.
func NewListSkillsTool(workspace *skill.Workspace) *skillet.TypedToolAdapter[*ListSkillsInput] {
	return skillet.ToolAdapter(&ListSkillsTool{workspace: workspace})
}

func (t *ListSkillsTool) Name() string {
	return "list_skills"
}

func (t *ListSkillsTool) Description() string {
	return "List the name and description of every available skill in the skills directory. Call this first to discover which skills exist."
}

func (t *ListSkillsTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:       "object",
		Properties: map[string]*schema.Property{},
	}
}

func (t *ListSkillsTool) Annotations() *skillet.ToolAnnotations {
	return &skillet.ToolAnnotations{
		Title:          "List Skills",
		ReadOnlyHint:   true,
		IdempotentHint: true,
	}
}

// Call scans the workspace and returns the rendered listing. A workspace
// containing no SKILL.md files at all is a fatal condition and returns an
// error; an agent with zero skills cannot do anything useful.
func (t *ListSkillsTool) Call(ctx context.Context, input *ListSkillsInput) (*skillet.ToolResult, error) {
	listing, err := t.workspace.ListSkills()
	if err != nil {
		return nil, err
	}
	return skillet.NewToolResultText(listing), nil
}
