package pattern

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/span"
)

// parseErrKind extracts the kind from a parse failure.
func parseErrKind(t *testing.T, err error) ParseErrorKind {
	t.Helper()
	if err == nil {
		t.Fatal("expected a parse error")
	}
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T, want *ParseError", err)
	}
	return pe.Kind
}

func TestDurationPattern_FormatParse_RoundTrip(t *testing.T) {
	tests := []struct {
		pattern string
		value   span.Duration
		text    string
	}{
		{"H:mm", span.Duration(90 * span.NanosPerMinute), "1:30"},
		{"H:mm", span.Duration(26 * span.NanosPerHour), "26:00"},
		{"hh:mm:ss", span.Duration(2*span.NanosPerHour + 3*span.NanosPerMinute + 4*span.NanosPerSecond), "02:03:04"},
		{"D'd' hh'h'", span.Duration(26 * span.NanosPerHour), "1d 02h"},
		{"ss.fff", span.Duration(12 * span.NanosPerSecond), "12.000"},
		{"ss.fff", span.Duration(12*span.NanosPerSecond + 345_000_000), "12.345"},
		{"SS", span.Duration(7 * span.NanosPerSecond), "07"},
		{"M'm' ss's'", span.Duration(90*span.NanosPerMinute + 5*span.NanosPerSecond), "90m 05s"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.text, func(t *testing.T) {
			p, err := NewDurationPatternInvariant(tt.pattern)
			require.NoError(t, err)

			assert.Equal(t, tt.text, p.Format(tt.value))
			got, err := p.Parse(tt.text).Get()
			require.NoError(t, err)
			assert.Equal(t, tt.value, got)
		})
	}
}

func TestDurationPattern_TrimmedFraction_ElidesDecimalSeparator(t *testing.T) {
	t.Parallel()

	p, err := NewDurationPatternInvariant("ss.FFF")
	require.NoError(t, err)

	// A whole value drops both the fraction and the separator...
	assert.Equal(t, "12", p.Format(span.Duration(12*span.NanosPerSecond)))
	// ...and the parser accepts the elided form back.
	got, err := p.Parse("12").Get()
	require.NoError(t, err)
	assert.Equal(t, span.Duration(12*span.NanosPerSecond), got)

	// A fractional value keeps the separator and trims trailing zeros.
	assert.Equal(t, "12.34", p.Format(span.Duration(12*span.NanosPerSecond+340_000_000)))
}

func TestDurationPattern_TrimmedFraction_ElidesSeparator_When_KeptDigitsAreZero(t *testing.T) {
	t.Parallel()

	// 12.001s has non-zero nanos, but "FF" only keeps the first two
	// fraction digits, which are both zero and trim away.
	p, err := NewDurationPatternInvariant("ss.FF")
	require.NoError(t, err)

	d := span.Duration(12*span.NanosPerSecond + 1_000_000)
	text := p.Format(d)
	assert.Equal(t, "12", text)

	got, err := p.Parse(text).Get()
	require.NoError(t, err)
	assert.Equal(t, span.Duration(12*span.NanosPerSecond), got)
}

func TestDurationRoundTrip_IsExactAtTheRangeEnds(t *testing.T) {
	t.Parallel()

	rt := DurationRoundTrip()
	for _, d := range []span.Duration{
		span.MinDuration,
		span.MaxDuration,
		0,
		span.Duration(-1),
		span.Duration(90 * span.NanosPerMinute),
	} {
		text := rt.Format(d)
		got, err := rt.Parse(text).Get()
		require.NoError(t, err, "text %q", text)
		assert.Equal(t, d, got, "text %q", text)
	}

	assert.Equal(t, "-106751:23:47:16.854775808", rt.Format(span.MinDuration))
	assert.Equal(t, "106751:23:47:16.854775807", rt.Format(span.MaxDuration))
}

func TestDurationPattern_Signs(t *testing.T) {
	t.Parallel()

	plus, err := NewDurationPatternInvariant("+H")
	require.NoError(t, err)
	minus, err := NewDurationPatternInvariant("-H")
	require.NoError(t, err)

	hour := span.Duration(span.NanosPerHour)

	// '+' always emits a sign; '-' only for negative values.
	assert.Equal(t, "+1", plus.Format(hour))
	assert.Equal(t, "-1", plus.Format(-hour))
	assert.Equal(t, "1", minus.Format(hour))
	assert.Equal(t, "-1", minus.Format(-hour))

	got, err := plus.Parse("-5").Get()
	require.NoError(t, err)
	assert.Equal(t, span.Duration(-5*span.NanosPerHour), got)

	// A mandatory sign fails when absent.
	assert.Equal(t, MismatchedSign, parseErrKind(t, plus.Parse("5").Err()))
	// An optional sign never accepts '+'.
	assert.Equal(t, MismatchedCharacter, parseErrKind(t, minus.Parse("+5").Err()))
}

func TestDurationPattern_Parse_Failures(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		text    string
		kind    ParseErrorKind
	}{
		{"empty value", "H:mm", "", ValueStringEmpty},
		{"wrong separator", "hh:mm", "01-02", MismatchedCharacter},
		{"missing digits", "hh", "ab", MismatchedNumber},
		{"truncated input", "hh:mm", "01:", UnexpectedEndOfString},
		{"trailing text", "hh:mm", "01:02:03", ExtraValueCharacters},
		{"minutes out of range", "H:mm", "1:60", FieldValueOutOfRange},
		{"seconds out of range", "H:mm:ss", "1:02:61", FieldValueOutOfRange},
		{"total field overflow", "SS", "9223372036854775807", FieldValueOutOfRange},
		{"combination overflow", "H:mm", "2562047:59", OverallValueOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := NewDurationPatternInvariant(tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, parseErrKind(t, p.Parse(tt.text).Err()))
		})
	}
}

func TestDurationPattern_FieldFailure_EchoesRawText(t *testing.T) {
	t.Parallel()

	p, err := NewDurationPatternInvariant("H:mm")
	require.NoError(t, err)

	var pe *ParseError
	require.ErrorAs(t, p.Parse("1:60").Err(), &pe)
	assert.Equal(t, FieldValueOutOfRange, pe.Kind)
	assert.Equal(t, []any{"60", "m"}, pe.Args)

	// Overflowing totals echo the complete digit run, leading zeros included.
	totals, err := NewDurationPatternInvariant("SS")
	require.NoError(t, err)
	require.ErrorAs(t, totals.Parse("009999999999").Err(), &pe)
	assert.Equal(t, FieldValueOutOfRange, pe.Kind)
	assert.Equal(t, []any{"009999999999", "S"}, pe.Args)
}

func TestDurationPattern_CultureSeparators(t *testing.T) {
	t.Parallel()

	p, err := NewDurationPattern("hh:mm:ss.FFF", culture.FiFI())
	require.NoError(t, err)

	d := span.Duration(2*span.NanosPerHour + 3*span.NanosPerMinute + 4*span.NanosPerSecond + 500_000_000)
	assert.Equal(t, "02.03.04,5", p.Format(d))

	got, err := p.Parse("02.03.04,5").Get()
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestDurationPattern_WithCulture_SharesCompiledSteps(t *testing.T) {
	t.Parallel()

	inv, err := NewDurationPatternInvariant("ss.FFF")
	require.NoError(t, err)
	fi := inv.WithCulture(culture.FiFI())

	d := span.Duration(12*span.NanosPerSecond + 500_000_000)
	assert.Equal(t, "12.5", inv.Format(d))
	assert.Equal(t, "12,5", fi.Format(d))
	assert.Equal(t, inv.Text(), fi.Text())
}

func TestDurationStandardPattern_IgnoresCultureRebinding(t *testing.T) {
	t.Parallel()

	rt := DurationRoundTrip()
	assert.Same(t, rt, rt.WithCulture(culture.FiFI()))

	// Compiled from the name with a non-invariant culture, still invariant.
	p, err := NewDurationPattern("o", culture.FiFI())
	require.NoError(t, err)
	assert.Equal(t, "0:00:01:30", p.Format(span.Duration(90*span.NanosPerSecond)))
}

func TestDurationPattern_AmbientConstructors(t *testing.T) {
	t.Parallel()

	a := culture.NewAmbient(culture.FiFI())
	p, err := NewDurationPatternAmbient("ss.F", a)
	require.NoError(t, err)
	assert.Equal(t, "fi-FI", p.Culture().Name)

	// The facade snapshots the culture; later Use calls do not reach it.
	restore := a.Use(culture.Invariant())
	defer restore()
	assert.Equal(t, "fi-FI", p.Culture().Name)
	assert.Equal(t, "invariant", p.WithAmbientCulture(a).Culture().Name)
}

func TestDurationPattern_MustParse_PanicsOnFailure(t *testing.T) {
	t.Parallel()

	p, err := NewDurationPatternInvariant("hh:mm")
	require.NoError(t, err)
	assert.Panics(t, func() { p.MustParse("nope") })
	assert.NotPanics(t, func() { p.MustParse("01:02") })
}
