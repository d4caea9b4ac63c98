// Package skill provides discovery and loading of agent skills.
//
// A skill is a named, self-contained bundle of instructions that lives in
// its own directory: a SKILL.md file carrying YAML frontmatter and Markdown
// instructions, plus any reference files and scripts the skill ships with.
// Agents list the available skills, load the one that fits the task, and
// then read reference files or run scripts from the skill's directory.
//
// # Skill File Format
//
// Each SKILL.md starts with a frontmatter block declaring the skill's name
// and description:
//
//	---
//	name: pdf-fill
//	description: Fill PDF forms programmatically.
//	---
//
//	# PDF Form Filling
//
//	## Instructions
//	1. Read forms.md for the field reference
//	2. Run scripts/fill.py with the form data
//
// Values may be wrapped in single or double quotes; one layer of matching
// quotes is removed. Files whose frontmatter is missing or lacks either
// field are excluded from listings with a warning.
//
// # Layout
//
// A workspace is a single root directory with one subdirectory per skill:
//
//	<root>/<skill_name>/SKILL.md          # required
//	<root>/<skill_name>/<reference files> # optional, arbitrary paths
//	<root>/<skill_name>/<scripts>         # optional, run via shell
//
// SKILL.md files are discovered recursively, so skills may also be grouped
// under intermediate directories.
//
// # Usage Example
//
//	ws, err := skill.NewWorkspace(skill.WorkspaceOptions{Dir: "./skills"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	listing, err := ws.ListSkills()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(listing)
package skill

// Skill is one discovered skill with its parsed metadata. A Skill is
// created only when its SKILL.md frontmatter parses with both fields
// non-empty, and is immutable once built.
type Skill struct {
	// Name is the skill identifier from the frontmatter name field.
	Name string

	// Description explains what the skill does and when to use it. The
	// model relies on it to decide which skill fits a task.
	Description string

	// Directory is the skill's directory, containing SKILL.md alongside
	// any reference files and scripts.
	Directory string

	// Path is the location of the SKILL.md file itself, kept for
	// diagnostics.
	Path string
}
