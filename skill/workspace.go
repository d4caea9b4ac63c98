package skill

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/deepnoodle-ai/skillet/slogger"
)

// SkillFileName is the descriptor file that defines a skill.
const SkillFileName = "SKILL.md"

// ListingBanner is the first line of every skill listing.
const ListingBanner = `Available skills (each line is "- <skill_name>: <skill_description>"):`

// frontmatterDelimiter separates the metadata block from the instructions.
// The split is a plain substring match, so a delimiter appearing anywhere
// in the document counts, not just one on its own line.
const frontmatterDelimiter = "---"

// ErrNoSkills reports a scan that found no SKILL.md files anywhere
// under the workspace root.
var ErrNoSkills = errors.New("no skills found")

var (
	errNoFrontmatter   = errors.New("no frontmatter found")
	errIncompleteSkill = errors.New("missing name or description")
)

// WorkspaceOptions configures a skill workspace.
type WorkspaceOptions struct {
	// Dir is the root directory containing skill subdirectories. Required.
	Dir string

	// Logger receives scan diagnostics, e.g. warnings about skill files
	// that were excluded. If nil, logging is disabled.
	Logger slogger.Logger
}

// Workspace is a snapshot of one skill root directory. It is the single
// source skills are listed, loaded, and read from; tools hold a reference
// to a Workspace rather than consulting process-wide state.
//
// A Workspace is immutable and safe for concurrent use. Listings are not
// cached: every call to Scan or ListSkills walks the directory tree again,
// so skills added or edited on disk show up on the next call.
type Workspace struct {
	root   string
	logger slogger.Logger
}

// NewWorkspace creates a workspace rooted at opts.Dir. The directory is
// resolved to an absolute path but is not required to exist yet; a missing
// or empty tree surfaces later as a scan error.
func NewWorkspace(opts WorkspaceOptions) (*Workspace, error) {
	if opts.Dir == "" {
		return nil, fmt.Errorf("skill directory is required")
	}
	root, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("resolving skill directory: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = slogger.DefaultLogger
	}
	return &Workspace{root: root, logger: logger}, nil
}

// Root returns the absolute path of the workspace's skill directory.
func (w *Workspace) Root() string {
	return w.root
}

// SkillDir returns the directory a skill with the given name is expected
// to live in. The directory is not checked for existence.
func (w *Workspace) SkillDir(name string) string {
	return filepath.Join(w.root, name)
}

// Scan walks the workspace recursively and returns every skill whose
// SKILL.md parses with a non-empty name and description, in scan order.
// Files with missing or incomplete frontmatter are logged and excluded
// without failing the scan. Duplicate names are preserved, not collapsed.
//
// Scan returns an error only when no SKILL.md files exist anywhere under
// the root: a workspace with zero skills cannot serve an agent, so the
// caller should treat that as fatal rather than render an empty listing.
// That error matches ErrNoSkills.
func (w *Workspace) Scan() ([]*Skill, error) {
	pattern := filepath.Join(w.root, "**", SkillFileName)
	paths, err := doublestar.FilepathGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("scanning skills directory: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("no %s files found under %s: %w", SkillFileName, w.root, ErrNoSkills)
	}
	var skills []*Skill
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			w.logger.Warn("excluding unreadable skill file", "path", path, "error", err)
			continue
		}
		name, description, err := parseMetadata(string(content))
		if err != nil {
			w.logger.Warn("excluding skill file", "path", path, "reason", err.Error())
			continue
		}
		skills = append(skills, &Skill{
			Name:        name,
			Description: description,
			Directory:   filepath.Dir(path),
			Path:        path,
		})
		w.logger.Debug("discovered skill", "name", name, "directory", filepath.Dir(path))
	}
	return skills, nil
}

// ListSkills scans the workspace and renders the result as a banner line
// followed by one "- <name>: <description>" line per skill, in scan order.
// No sorting and no deduplication is applied.
func (w *Workspace) ListSkills() (string, error) {
	skills, err := w.Scan()
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString(ListingBanner)
	for _, s := range skills {
		sb.WriteString(fmt.Sprintf("\n- %s: %s", s.Name, s.Description))
	}
	return sb.String(), nil
}

// LoadSkill returns the instructions of the named skill, read from
// <root>/<name>/SKILL.md. When the document has a frontmatter block, only
// the content after it is returned, trimmed of leading whitespace;
// otherwise the full document is returned unchanged.
//
// A missing skill is not an error: the returned string is a diagnostic
// naming the skill, so the model can recover by listing skills again.
// An error is returned only for a file that exists but cannot be read.
func (w *Workspace) LoadSkill(name string) (string, error) {
	path := filepath.Join(w.root, name, SkillFileName)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		w.logger.Warn("skill not found", "skill", name, "path", path)
		return fmt.Sprintf("Skill '%s' not found", name), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading skill file: %w", err)
	}
	return skillBody(string(content)), nil
}

// ReadReferenceFile returns the content of <root>/<skill_name>/<file_name>.
// The file name may contain nested relative path segments, e.g.
// "assets/fields.md". No containment check is applied against the skill
// directory boundary.
//
// A missing file is not an error: the returned string is a diagnostic
// naming both the file and the skill. An error is returned only for a
// file that exists but cannot be read.
func (w *Workspace) ReadReferenceFile(skillName, fileName string) (string, error) {
	path := filepath.Join(w.root, skillName, fileName)
	content, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		w.logger.Warn("reference file not found", "skill", skillName, "file", fileName)
		return fmt.Sprintf("File '%s' not found in skill '%s'", fileName, skillName), nil
	}
	if err != nil {
		return "", fmt.Errorf("reading reference file: %w", err)
	}
	return string(content), nil
}

// parseMetadata extracts the name and description from a SKILL.md
// document. The document is split on the frontmatter delimiter; the
// second segment is scanned line by line for "name:" and "description:"
// fields, whose values are whitespace-trimmed and unquoted.
func parseMetadata(content string) (name, description string, err error) {
	parts := strings.SplitN(content, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		return "", "", errNoFrontmatter
	}
	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "name:") {
			name = stripQuotes(strings.TrimSpace(line[len("name:"):]))
		} else if strings.HasPrefix(line, "description:") {
			description = stripQuotes(strings.TrimSpace(line[len("description:"):]))
		}
	}
	if name == "" || description == "" {
		return "", "", errIncompleteSkill
	}
	return name, description, nil
}

// skillBody returns the instructions portion of a SKILL.md document: the
// text strictly after the second frontmatter delimiter, trimmed of leading
// whitespace. A document without a complete frontmatter block is returned
// unchanged.
func skillBody(content string) string {
	parts := strings.SplitN(content, frontmatterDelimiter, 3)
	if len(parts) < 3 {
		return content
	}
	return strings.TrimLeftFunc(parts[2], unicode.IsSpace)
}

// stripQuotes removes one layer of matching single or double quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if first == last && (first == '"' || first == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
