package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/deepnoodle-ai/skillet/slogger"
	"github.com/deepnoodle-ai/wonton/cli"
	"github.com/fsnotify/fsnotify"
	"github.com/gobwas/glob"
	"github.com/pmezard/go-difflib/difflib"
)

func registerSkillsCommand(app *cli.App) {
	app.Command("skills").
		Description("List the skills in a directory, or watch it and print what changes").
		Args("action?").
		Flags(
			cli.String("skills", "s").
				Env("SKILLET_SKILLS_DIR").
				Help("Directory containing skill subdirectories"),
			cli.String("filter", "f").
				Help("Glob pattern applied to skill names (e.g. 'pdf-*')"),
			cli.Int("debounce", "").
				Default(500).
				Help("Debounce time in milliseconds for watch mode"),
		).
		Run(runSkills)
}

func runSkills(ctx *cli.Context) error {
	action := "list"
	if ctx.NArg() > 0 {
		action = ctx.Arg(0)
	}

	cfg, err := loadConfig(ctx)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	logger, err := cfg.Logger()
	if err != nil {
		return cli.Errorf("%v", err)
	}
	workspace, err := skill.NewWorkspace(skill.WorkspaceOptions{
		Dir:    cfg.SkillsDirectory,
		Logger: logger,
	})
	if err != nil {
		return cli.Errorf("%v", err)
	}

	switch action {
	case "list":
		return listSkills(workspace, ctx.String("filter"))
	case "watch":
		debounce := time.Duration(ctx.Int("debounce")) * time.Millisecond
		return watchSkills(workspace, ctx.String("filter"), debounce, logger)
	default:
		return cli.Errorf("unknown action %q (expected 'list' or 'watch')", action)
	}
}

func listSkills(workspace *skill.Workspace, filter string) error {
	skills, err := scanFiltered(workspace, filter)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	if len(skills) == 0 {
		fmt.Println(mutedStyle.Sprintf("No skills matching %q in %s", filter, workspace.Root()))
		return nil
	}
	fmt.Print(renderSkillTable(skills))
	fmt.Println(mutedStyle.Sprintf("%d skill(s) in %s", len(skills), workspace.Root()))
	return nil
}

func watchSkills(workspace *skill.Workspace, filter string, debounce time.Duration, logger slogger.Logger) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	addWatchDirs(watcher, workspace.Root(), logger)

	current, err := renderListing(workspace, filter)
	if err != nil {
		return cli.Errorf("%v", err)
	}
	fmt.Println(headerStyle.Sprintf("Watching skills in %s", workspace.Root()))
	fmt.Print(current)
	fmt.Println(mutedStyle.Sprint("Press Ctrl+C to stop..."))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var rebuild <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped watching.")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			// New skill directories need their own watches.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					addWatchDirs(watcher, event.Name, logger)
				}
			}
			rebuild = time.After(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("file watcher error", "error", err)
		case <-rebuild:
			rebuild = nil
			next, err := renderListing(workspace, filter)
			if err != nil {
				fmt.Println(errorStyle.Sprint(err))
				continue
			}
			if next == current {
				continue
			}
			printListingDiff(current, next)
			current = next
		}
	}
}

// scanFiltered scans the workspace and keeps skills whose name matches
// the glob pattern. An empty pattern keeps everything.
func scanFiltered(workspace *skill.Workspace, filter string) ([]*skill.Skill, error) {
	skills, err := workspace.Scan()
	if err != nil {
		return nil, err
	}
	if filter == "" {
		return skills, nil
	}
	g, err := glob.Compile(filter)
	if err != nil {
		return nil, fmt.Errorf("invalid filter pattern %q: %w", filter, err)
	}
	var matched []*skill.Skill
	for _, s := range skills {
		if g.Match(s.Name) {
			matched = append(matched, s)
		}
	}
	return matched, nil
}

// renderListing renders one "- name: description" line per skill, the
// same shape agents see, so successive renders diff cleanly. An empty
// tree renders as a placeholder instead of failing, since watch mode
// is useful while skills are still being written.
func renderListing(workspace *skill.Workspace, filter string) (string, error) {
	skills, err := scanFiltered(workspace, filter)
	if errors.Is(err, skill.ErrNoSkills) {
		return "(no skills)\n", nil
	}
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, s := range skills {
		fmt.Fprintf(&sb, "- %s: %s\n", s.Name, s.Description)
	}
	if sb.Len() == 0 {
		return "(no skills)\n", nil
	}
	return sb.String(), nil
}

func printListingDiff(before, after string) {
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(before),
		B:        difflib.SplitLines(after),
		FromFile: "skills",
		ToFile:   "skills",
		FromDate: "before",
		ToDate:   "after",
		Context:  2,
	}
	text, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		fmt.Println(errorStyle.Sprintf("error generating diff: %v", err))
		return
	}
	fmt.Println(mutedStyle.Sprintf("%s skills changed:", time.Now().Format("15:04:05")))
	printDiff(text)
}

func relevantEvent(event fsnotify.Event) bool {
	return event.Has(fsnotify.Create) || event.Has(fsnotify.Write) ||
		event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
}

// addWatchDirs watches every directory under root, skipping hidden
// directories such as the per-skill .venv trees, whose churn during
// dependency installs would flood the event stream.
func addWatchDirs(watcher *fsnotify.Watcher, root string, logger slogger.Logger) {
	filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(info.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			logger.Warn("failed to watch directory", "dir", path, "error", err)
		} else {
			logger.Debug("watching directory", "dir", path)
		}
		return nil
	})
}
