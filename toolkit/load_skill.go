package toolkit

import (
	"context"

	"github.com/deepnoodle-ai/skillet"
	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/wonton/schema"
)

var _ skillet.TypedTool[*LoadSkillInput] = &LoadSkillTool{}

// LoadSkillInput is the input for the LoadSkillTool.
type LoadSkillInput struct {
	// SkillName is the name of the skill whose instructions to load.
	SkillName string `json:"skill_name"`
}

// LoadSkillTool loads one skill's instructions from its SKILL.md file.
// A skill that does not exist yields a diagnostic message rather than an
// error, so the model can list skills again and retry.
type LoadSkillTool struct {
	workspace *skill.Workspace
}

// NewLoadSkillTool creates the skill loading tool for the given workspace.
func NewLoadSkillTool(workspace *skill.Workspace) *skillet.TypedToolAdapter[*LoadSkillInput] {
	return skillet.ToolAdapter(&LoadSkillTool{workspace: workspace})
}

func (t *LoadSkillTool) Name() string {
	return "load_skill"
}

func (t *LoadSkillTool) Description() string {
	return "Load one skill's instructions from its SKILL.md file. Use the skill name exactly as reported by list_skills."
}

func (t *LoadSkillTool) Schema() *schema.Schema {
	return &schema.Schema{
		Type:     "object",
		Required: []string{"skill_name"},
		Properties: map[string]*schema.Property{
			"skill_name": {
				Type:        "string",
				Description: "The name of the skill to load.",
			},
		},
	}
}

func (t *LoadSkillTool) Annotations() *skillet.ToolAnnotations {
	return &skillet.ToolAnnotations{
		Title:          "Load Skill",
		ReadOnlyHint:   true,
		IdempotentHint: true,
	}
}

func (t *LoadSkillTool) Call(ctx context.Context, input *LoadSkillInput) (*skillet.ToolResult, error) {
	content, err := t.workspace.LoadSkill(input.SkillName)
	if err != nil {
		return nil, err
	}
	return skillet.NewToolResultText(content), nil
}
