// Package playground hosts the interactive pattern playground behind the
// "play" subcommand: type a pattern and a value, see the compiled plan
// format a sample and parse the value live, with diagnostics rendered as
// they would be on the command line.
package playground

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dkoosis/spanfmt/internal/diagnose"
	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/pattern"
	"github.com/dkoosis/spanfmt/pkg/span"
)

// valueKind selects which value type the playground exercises.
type valueKind int

const (
	kindDuration valueKind = iota
	kindYearMonth
)

func (k valueKind) String() string {
	if k == kindDuration {
		return "duration"
	}
	return "year-month"
}

// Fixed sample values shown under "format". Chosen so every directive
// produces visible output: a negative duration with a fraction, and a
// year-month away from the template.
var (
	sampleDuration = span.Duration(-(26*span.NanosPerHour + 3*span.NanosPerMinute + 4*span.NanosPerSecond + 500_000_000))
	sampleMonth    = span.MustYearMonth(2026, 7)
)

type styleSet struct {
	title  lipgloss.Style
	label  lipgloss.Style
	result lipgloss.Style
	faint  lipgloss.Style
}

func newStyles(monochrome bool) styleSet {
	if monochrome {
		plain := lipgloss.NewStyle()
		return styleSet{title: plain, label: plain, result: plain, faint: plain}
	}
	return styleSet{
		title:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		label:  lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		result: lipgloss.NewStyle().Bold(true),
		faint:  lipgloss.NewStyle().Faint(true),
	}
}

// Model is the bubbletea model for the playground.
type Model struct {
	kind     valueKind
	culture  culture.Culture
	renderer *diagnose.Renderer
	styles   styleSet

	patternInput textinput.Model
	valueInput   textinput.Model
	focus        int
	width        int
}

// New builds a playground bound to a culture snapshot.
func New(c culture.Culture, monochrome bool) Model {
	pat := textinput.New()
	pat.Placeholder = "-D:hh:mm:ss.FFFFFFFFF"
	pat.Focus()
	pat.CharLimit = 80

	val := textinput.New()
	val.Placeholder = "value to parse"
	val.CharLimit = 120

	return Model{
		kind:         kindDuration,
		culture:      c,
		renderer:     diagnose.NewRenderer(monochrome),
		styles:       newStyles(monochrome),
		patternInput: pat,
		valueInput:   val,
	}
}

// Run launches the playground and blocks until the user quits.
func Run(ctx context.Context, c culture.Culture, monochrome bool) error {
	program := tea.NewProgram(New(c, monochrome), tea.WithContext(ctx))
	_, err := program.Run()
	return err
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "tab", "enter":
			m.focus = (m.focus + 1) % 2
			if m.focus == 0 {
				m.patternInput.Focus()
				m.valueInput.Blur()
			} else {
				m.patternInput.Blur()
				m.valueInput.Focus()
			}
			return m, nil
		case "ctrl+t":
			if m.kind == kindDuration {
				m.kind = kindYearMonth
			} else {
				m.kind = kindDuration
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.patternInput, cmd = m.patternInput.Update(msg)
	} else {
		m.valueInput, cmd = m.valueInput.Update(msg)
	}
	return m, cmd
}

func (m Model) View() string {
	var sb strings.Builder
	sb.WriteString(m.styles.title.Render("spanfmt playground"))
	sb.WriteString(m.styles.faint.Render("  (" + m.kind.String() + ", culture " + m.culture.Name + ")"))
	sb.WriteString("\n\n")

	sb.WriteString(m.styles.label.Render("pattern "))
	sb.WriteString(m.patternInput.View())
	sb.WriteByte('\n')
	sb.WriteString(m.styles.label.Render("value   "))
	sb.WriteString(m.valueInput.View())
	sb.WriteString("\n\n")

	sb.WriteString(m.evaluate())
	sb.WriteString("\n\n")
	sb.WriteString(m.styles.faint.Render("tab switch field • ctrl+t switch value type • esc quit"))
	return sb.String()
}

// evaluate compiles the pattern text and shows a sample formatting plus the
// parse of the value input. Failures render through the shared diagnostic
// renderer so the playground and the CLI agree.
func (m Model) evaluate() string {
	patText := m.patternInput.Value()
	if patText == "" {
		return m.styles.faint.Render("enter a pattern to begin")
	}

	if m.kind == kindDuration {
		p, err := pattern.NewDurationPattern(patText, m.culture)
		if err != nil {
			return m.renderer.Render(err)
		}
		return m.show(p.Format(sampleDuration), func(text string) (string, error) {
			r := p.Parse(text)
			if v, err := r.Get(); err == nil {
				return v.String(), nil
			}
			return "", r.Err()
		})
	}

	p, err := pattern.NewYearMonthPattern(patText, m.culture)
	if err != nil {
		return m.renderer.Render(err)
	}
	return m.show(p.Format(sampleMonth), func(text string) (string, error) {
		r := p.Parse(text)
		if v, err := r.Get(); err == nil {
			return v.String(), nil
		}
		return "", r.Err()
	})
}

func (m Model) show(formatted string, parse func(string) (string, error)) string {
	var sb strings.Builder
	sb.WriteString(m.styles.label.Render("sample  "))
	sb.WriteString(m.styles.result.Render(formatted))

	valText := m.valueInput.Value()
	if valText == "" {
		return sb.String()
	}
	sb.WriteByte('\n')
	parsed, err := parse(valText)
	if err != nil {
		sb.WriteByte('\n')
		sb.WriteString(m.renderer.Render(err))
		return sb.String()
	}
	sb.WriteString(m.styles.label.Render("parsed  "))
	sb.WriteString(m.styles.result.Render(parsed))
	return sb.String()
}
