package diagnose

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/pattern"
)

func renderMonochrome(t *testing.T, err error) []string {
	t.Helper()
	out := NewRenderer(true).Render(err)
	return strings.Split(out, "\n")
}

func TestRenderer_PointsCaretAtParsePosition(t *testing.T) {
	t.Parallel()

	p, err := pattern.NewDurationPatternInvariant("hh:mm")
	require.NoError(t, err)

	lines := renderMonochrome(t, p.Parse("01-02").Err())
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "parse error")
	assert.Equal(t, "  01-02", lines[1])
	// The failure is at byte 2, so the caret sits under the '-'.
	assert.Equal(t, "    ^", lines[2])
}

func TestRenderer_PointsCaretAtPatternPosition(t *testing.T) {
	t.Parallel()

	_, err := pattern.NewDurationPatternInvariant("hh:mm!")
	lines := renderMonochrome(t, err)
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "pattern error")
	assert.Equal(t, "  hh:mm!", lines[1])
	assert.Equal(t, "       ^", lines[2])
}

func TestRenderer_CaretAlignmentIsWidthAware(t *testing.T) {
	t.Parallel()

	p, err := pattern.NewYearMonthPattern("MMMM uuuu", culture.FiFI())
	require.NoError(t, err)

	// "heinäkuuta " is 11 display columns but 12 bytes; the caret under the
	// year digits must count columns, not bytes.
	lines := renderMonochrome(t, p.Parse("heinäkuuta 20x6").Err())
	require.Len(t, lines, 3)
	assert.Equal(t, "  "+strings.Repeat(" ", 11)+"^", lines[2])
}

func TestRenderer_OmitsCaret_When_FailureHasNoPosition(t *testing.T) {
	t.Parallel()

	p, err := pattern.NewDurationPatternInvariant("H:mm")
	require.NoError(t, err)

	out := NewRenderer(true).Render(p.Parse("1:60").Err())
	assert.NotContains(t, out, "^")
	assert.Contains(t, out, "out of range")
}

func TestRenderer_PlainError(t *testing.T) {
	t.Parallel()

	out := NewRenderer(true).Render(errors.New("boom"))
	assert.Equal(t, "error: boom", out)
}
