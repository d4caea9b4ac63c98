// Package toolkit provides the tools an agent uses to work with skills.
//
// The four tools operate on a [skill.Workspace] snapshot passed in at
// construction time, so a tool never consults process-wide state:
//
//   - [ListSkillsTool]: list every available skill with its description
//   - [LoadSkillTool]: load one skill's instructions from its SKILL.md
//   - [ReadReferenceFileTool]: read an auxiliary file from a skill directory
//   - [RunShellCommandTool]: run a shell command inside a skill directory,
//     optionally bootstrapping Python dependencies into a per-skill
//     virtualenv first
//
// Each tool is a typed implementation wrapped by [skillet.ToolAdapter],
// which validates raw model-supplied arguments against the tool's schema
// before dispatch. Failures a model can recover from (missing skills,
// missing files, failing commands) are returned as tool result text, not
// Go errors.
package toolkit

import "runtime"

// shellCommand returns the shell and arguments used to execute commands.
func shellCommand() (string, []string) {
	if runtime.GOOS == "windows" {
		return "cmd", []string{"/C"}
	}
	return "/bin/bash", []string{"-c"}
}
