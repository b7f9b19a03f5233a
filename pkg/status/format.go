package status

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/walteh/patchpal/pkg/patch"
)

// DiffFormatter defines how edit results and their line diffs are rendered
type DiffFormatter interface {
	// FormatDiffLine renders one tagged diff line with its prefix
	FormatDiffLine(line patch.DiffLine) string

	// FormatDiff renders a whole diff, one line per change
	FormatDiff(lines []patch.DiffLine) string

	// FormatResult renders a one-line summary of an edit outcome
	FormatResult(res *patch.Result) string
}

// ColorFormatter renders diffs with conventional +/- prefixes and color
type ColorFormatter struct{}

// NewColorFormatter creates a new ColorFormatter
func NewColorFormatter() *ColorFormatter {
	return &ColorFormatter{}
}

// FormatDiffLine renders a line as "+ text" (green), "- text" (red) or
// "  text" (plain).
func (f *ColorFormatter) FormatDiffLine(line patch.DiffLine) string {
	text := fmt.Sprintf("%s %s", line.Tag, line.Text)
	switch line.Tag {
	case patch.TagAdded:
		return color.New(color.FgGreen).Sprint(text)
	case patch.TagRemoved:
		return color.New(color.FgRed).Sprint(text)
	default:
		return text
	}
}

// FormatDiff renders every diff line, newline separated.
func (f *ColorFormatter) FormatDiff(lines []patch.DiffLine) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(f.FormatDiffLine(line))
	}
	return b.String()
}

// FormatResult renders a one-line edit summary with change counts.
func (f *ColorFormatter) FormatResult(res *patch.Result) string {
	var added, removed int
	for _, c := range res.Changes {
		switch c.Tag {
		case patch.TagAdded:
			added++
		case patch.TagRemoved:
			removed++
		}
	}

	if res.IsNew {
		return fmt.Sprintf("✨ Created %s (%d lines)", res.File, added)
	}
	return fmt.Sprintf("📝 Modified %s (+%d -%d)", res.File, added, removed)
}
