package culture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/dkoosis/spanfmt/pkg/calendar"
)

func TestBuiltins_AllValidate(t *testing.T) {
	t.Parallel()

	for _, c := range Builtins() {
		assert.NoError(t, c.Validate(), "culture %s", c.Name)
	}
}

func TestMonthName_FallsBackToPlain_When_NoGenitiveTable(t *testing.T) {
	t.Parallel()

	c := EnUS()
	assert.Equal(t, "July", c.MonthName(7, false, true))
	assert.Equal(t, "Jul", c.MonthName(7, true, true))
}

func TestMonthName_UsesGenitiveTable_When_Present(t *testing.T) {
	t.Parallel()

	c := FiFI()
	assert.Equal(t, "heinäkuuta", c.MonthName(7, false, true))
	assert.Equal(t, "heinäkuu", c.MonthName(7, false, false))
	// Finnish short names carry no genitive table.
	assert.Equal(t, "heinä", c.MonthName(7, true, true))
}

func TestMonthName_ReturnsEmpty_When_MonthOutOfTable(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", EnUS().MonthName(13, false, false))
}

func TestDayName(t *testing.T) {
	t.Parallel()

	c := FiFI()
	assert.Equal(t, "sunnuntai", c.DayName(0, false))
	assert.Equal(t, "su", c.DayName(0, true))
	assert.Equal(t, "", c.DayName(7, false))
}

func TestEraNames(t *testing.T) {
	t.Parallel()

	c := Invariant()
	assert.Equal(t, []string{"CE", "AD"}, c.EraNames(calendar.EraCommon))
	assert.Equal(t, []string{"BCE", "BC"}, c.EraNames(calendar.EraBeforeCommon))
}

func TestForTag_MatchesFinnish(t *testing.T) {
	t.Parallel()

	c, ok := ForTag(language.MustParse("fi-FI"))
	require.True(t, ok)
	assert.Equal(t, "fi-FI", c.Name)

	// Plain "fi" matches the same table.
	c, ok = ForTag(language.Finnish)
	require.True(t, ok)
	assert.Equal(t, "fi-FI", c.Name)
}

func TestForTag_FallsBackToInvariant_When_NoMatch(t *testing.T) {
	t.Parallel()

	c, ok := ForTag(language.Japanese)
	assert.False(t, ok)
	assert.Equal(t, "invariant", c.Name)
}

func TestValidate_ReportsMissingPieces(t *testing.T) {
	t.Parallel()

	c := EnUS()
	c.MonthNames = c.MonthNames[:11]
	assert.Error(t, c.Validate())

	c = EnUS()
	c.DecimalSep = ""
	assert.Error(t, c.Validate())

	c = EnUS()
	c.EraNamesBeforeCommon = nil
	assert.Error(t, c.Validate())
}
