package playground

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/dkoosis/spanfmt/pkg/culture"
)

func TestView_PromptsForPattern_When_Empty(t *testing.T) {
	t.Parallel()

	m := New(culture.Invariant(), true)
	assert.Contains(t, m.View(), "enter a pattern to begin")
}

func TestView_ShowsSampleFormatting(t *testing.T) {
	t.Parallel()

	m := New(culture.Invariant(), true)
	m.patternInput.SetValue("H:mm:ss.FFF")

	// The sample duration is -26h03m04.5s.
	assert.Contains(t, m.View(), "26:03:04.5")
}

func TestView_RendersPatternDiagnostics(t *testing.T) {
	t.Parallel()

	m := New(culture.Invariant(), true)
	m.patternInput.SetValue("hhh")

	assert.Contains(t, m.View(), "pattern error")
	assert.Contains(t, m.View(), "repeat count")
}

func TestView_ParsesValueInput(t *testing.T) {
	t.Parallel()

	m := New(culture.Invariant(), true)
	m.patternInput.SetValue("H:mm")
	m.valueInput.SetValue("1:30")

	assert.Contains(t, m.View(), "0:01:30:00")

	m.valueInput.SetValue("1:60")
	assert.Contains(t, m.View(), "parse error")
}

func TestUpdate_TogglesValueKind(t *testing.T) {
	t.Parallel()

	m := New(culture.Invariant(), true)
	assert.Contains(t, m.View(), "duration")

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyCtrlT})
	m = updated.(Model)
	assert.Contains(t, m.View(), "year-month")
}
