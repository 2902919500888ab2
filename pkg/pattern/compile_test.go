package pattern

import (
	"errors"
	"testing"

	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/span"
)

// patternErrKind extracts the kind from a compile failure, failing the test
// when the error is not a *PatternError.
func patternErrKind(t *testing.T, err error) PatternErrorKind {
	t.Helper()
	if err == nil {
		t.Fatal("expected a pattern error")
	}
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T, want *PatternError", err)
	}
	return pe.Kind
}

func TestNewDurationPattern_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		kind    PatternErrorKind
	}{
		{"empty", "", FormatStringEmpty},
		{"unknown standard", "x", UnknownStandardFormat},
		{"repeat exceeded", "hhh", RepeatCountExceeded},
		{"missing end quote", "hh'boom", MissingEndQuote},
		{"escape at end", "hh\\", EscapeAtEndOfString},
		{"percent doubled", "%%", PercentDoubled},
		{"percent at end", "hh%", PercentAtEndOfString},
		{"unquoted literal", "hhx", UnquotedLiteral},
		{"unquoted literal after percent", "%x", UnquotedLiteral},
		{"repeated field", "hh:mm:hh", RepeatedFieldInPattern},
		{"fixed and trimmed fraction share a field", "ss.fff.FFF", RepeatedFieldInPattern},
		{"two totals", "D:HH", MultipleCapitalDurationFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDurationPatternInvariant(tt.pattern)
			if got := patternErrKind(t, err); got != tt.kind {
				t.Errorf("pattern %q: kind %v, want %v", tt.pattern, got, tt.kind)
			}
		})
	}
}

func TestNewYearMonthPattern_Errors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		kind    PatternErrorKind
	}{
		{"empty", "", FormatStringEmpty},
		{"unknown standard", "x", UnknownStandardFormat},
		{"repeat exceeded", "uuuuu", RepeatCountExceeded},
		{"era with calendar", "yyyy g c", CalendarAndEra},
		{"era without year of era", "uuuu g", EraWithoutYearOfEra},
		{"repeated month", "MM/MM", RepeatedFieldInPattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYearMonthPatternInvariant(tt.pattern)
			if got := patternErrKind(t, err); got != tt.kind {
				t.Errorf("pattern %q: kind %v, want %v", tt.pattern, got, tt.kind)
			}
		})
	}
}

func TestCompile_DistinctFieldsMayShareDirective(t *testing.T) {
	// MM is the numeric month and MMMM the month name; they are different
	// fields, so one pattern may carry both and cross-check them at parse time.
	if _, err := NewYearMonthPatternInvariant("MM MMMM"); err != nil {
		t.Fatalf("MM MMMM should compile: %v", err)
	}
}

func TestCompile_PercentNamesASingleDirective(t *testing.T) {
	p, err := NewDurationPatternInvariant("%H")
	if err != nil {
		t.Fatal(err)
	}
	if got := p.Format(durFromParts(t, "26:00:00")); got != "26" {
		t.Errorf("Format = %q, want 26", got)
	}
}

func TestCompile_ErrorsCarryPosition(t *testing.T) {
	_, err := NewDurationPatternInvariant("hh:mm!")
	var pe *PatternError
	if !errors.As(err, &pe) {
		t.Fatalf("error type %T", err)
	}
	if pe.Kind != UnquotedLiteral || pe.Pos != 5 {
		t.Errorf("got kind %v at %d, want UnquotedLiteral at 5", pe.Kind, pe.Pos)
	}
}

// durFromParts parses "H:mm:ss" style invariant text into a Duration for
// test fixtures.
func durFromParts(t *testing.T, text string) span.Duration {
	t.Helper()
	p, err := NewDurationPattern("H:mm:ss", culture.Invariant())
	if err != nil {
		t.Fatal(err)
	}
	v, err := p.Parse(text).Get()
	if err != nil {
		t.Fatal(err)
	}
	return v
}
