// Package diagnose renders pattern and parse failures for terminal display:
// the message line, the offending input, and a caret under the failing
// position. Caret alignment is display-width aware so wide runes do not
// shift it.
package diagnose

import (
	"errors"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/dkoosis/spanfmt/pkg/pattern"
)

// Styles carries the lipgloss styles for each part of a rendered diagnostic.
type Styles struct {
	Heading lipgloss.Style
	Message lipgloss.Style
	Source  lipgloss.Style
	Caret   lipgloss.Style
}

// DefaultStyles returns the colored style set.
func DefaultStyles() Styles {
	return Styles{
		Heading: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		Message: lipgloss.NewStyle(),
		Source:  lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Caret:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11")),
	}
}

// MonochromeStyles returns a style set with no color or weight, for
// NO_COLOR environments and non-TTY output.
func MonochromeStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{Heading: plain, Message: plain, Source: plain, Caret: plain}
}

// Renderer formats failures with a fixed style set.
type Renderer struct {
	styles Styles
}

// NewRenderer builds a renderer; monochrome selects the unstyled set.
func NewRenderer(monochrome bool) *Renderer {
	if monochrome {
		return &Renderer{styles: MonochromeStyles()}
	}
	return &Renderer{styles: DefaultStyles()}
}

// Render formats err. Pattern failures point into the pattern text, parse
// failures into the value text; anything else renders as a plain message.
func (r *Renderer) Render(err error) string {
	var pe *pattern.PatternError
	if errors.As(err, &pe) {
		return r.renderAt("pattern error", pe.Message(), pe.Pattern, pe.Pos)
	}
	var se *pattern.ParseError
	if errors.As(err, &se) {
		return r.renderAt("parse error", se.Message(), se.Text, se.Pos)
	}
	return r.styles.Heading.Render("error: ") + r.styles.Message.Render(err.Error())
}

// renderAt produces the heading line plus, when the failure carries a
// position, the source excerpt with a caret under the failing column.
func (r *Renderer) renderAt(heading, msg, source string, pos int) string {
	var sb strings.Builder
	sb.WriteString(r.styles.Heading.Render(heading + ": "))
	sb.WriteString(r.styles.Message.Render(msg))
	if pos < 0 || pos > len(source) {
		return sb.String()
	}
	sb.WriteByte('\n')
	sb.WriteString("  ")
	sb.WriteString(r.styles.Source.Render(source))
	sb.WriteByte('\n')
	sb.WriteString("  ")
	sb.WriteString(strings.Repeat(" ", runewidth.StringWidth(source[:pos])))
	sb.WriteString(r.styles.Caret.Render("^"))
	return sb.String()
}
