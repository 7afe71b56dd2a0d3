package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"mapmyfirm/internal/adapters/tui/styles"
)

// RenderHelpLine renders key bindings as "key desc" pairs joined by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return joinBullets(parts)
}

func joinBullets(parts []string) string {
	return strings.Join(parts, styles.HelpSeparator.String())
}

// ViewBuilder accumulates the lines of a screen
type ViewBuilder struct {
	b strings.Builder
}

// NewViewBuilder creates an empty view builder
func NewViewBuilder() *ViewBuilder {
	return &ViewBuilder{}
}

// Title writes the screen heading. An empty subtitle is skipped.
func (v *ViewBuilder) Title(title, subtitle string) *ViewBuilder {
	v.Line(styles.Title.Render(title))
	if subtitle != "" {
		v.Line(styles.Subtitle.Render(subtitle))
	}
	return v.Line("")
}

// Line writes text followed by a newline
func (v *ViewBuilder) Line(text string) *ViewBuilder {
	v.b.WriteString(text)
	v.b.WriteByte('\n')
	return v
}

// Muted writes a dimmed line
func (v *ViewBuilder) Muted(text string) *ViewBuilder {
	return v.Line(styles.MutedText.Render(text))
}

// Bullets writes parts on one line separated by bullets
func (v *ViewBuilder) Bullets(parts ...string) *ViewBuilder {
	return v.Line(joinBullets(parts))
}

// Range writes the "first-last of total" footer of a paged list, only
// when the list does not fit on one page.
func (v *ViewBuilder) Range(start, end, total int) *ViewBuilder {
	if end-start >= total {
		return v
	}
	return v.Muted(fmt.Sprintf("%d-%d of %d", start+1, end, total))
}

// Message writes the status line if there is one
func (v *ViewBuilder) Message(message string, isError bool) *ViewBuilder {
	if message == "" {
		return v
	}
	style := styles.Success
	if isError {
		style = styles.ErrorMsg
	}
	v.b.WriteByte('\n')
	return v.Line(style.Render(message))
}

// Help writes the key help footer
func (v *ViewBuilder) Help(bindings ...key.Binding) *ViewBuilder {
	v.b.WriteByte('\n')
	v.b.WriteString(RenderHelpLine(bindings...))
	return v
}

// String returns the screen wrapped in the app padding
func (v *ViewBuilder) String() string {
	return styles.App.Render(v.b.String())
}

// truncate shortens s to width runes with an ellipsis
func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return string(r[:width-1]) + "…"
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
