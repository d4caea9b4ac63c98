package main

import (
	"fmt"
	"strings"

	"github.com/deepnoodle-ai/skillet/skill"
	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

var (
	headerStyle = color.New(color.FgCyan, color.Bold)
	nameStyle   = color.New(color.Bold)
	mutedStyle  = color.New(color.FgHiBlack)
	errorStyle  = color.New(color.FgRed)
	addStyle    = color.New(color.FgGreen)
	delStyle    = color.New(color.FgRed)
	toolStyle   = color.New(color.FgYellow)
)

// renderSkillTable lays the skills out in aligned columns. Widths are
// computed with runewidth so wide characters keep columns straight.
func renderSkillTable(skills []*skill.Skill) string {
	nameWidth := runewidth.StringWidth("NAME")
	for _, s := range skills {
		if w := runewidth.StringWidth(s.Name); w > nameWidth {
			nameWidth = w
		}
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Sprint(pad("NAME", nameWidth)))
	sb.WriteString("  ")
	sb.WriteString(headerStyle.Sprint("DESCRIPTION"))
	sb.WriteString("\n")
	for _, s := range skills {
		sb.WriteString(nameStyle.Sprint(pad(s.Name, nameWidth)))
		sb.WriteString("  ")
		sb.WriteString(s.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

// pad right-pads text to the given display width.
func pad(text string, width int) string {
	gap := width - runewidth.StringWidth(text)
	if gap <= 0 {
		return text
	}
	return text + strings.Repeat(" ", gap)
}

// printDiff writes a unified diff with +/- lines colored.
func printDiff(diff string) {
	for _, line := range strings.Split(strings.TrimRight(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+"):
			fmt.Println(addStyle.Sprint(line))
		case strings.HasPrefix(line, "-"):
			fmt.Println(delStyle.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			fmt.Println(mutedStyle.Sprint(line))
		default:
			fmt.Println(line)
		}
	}
}
