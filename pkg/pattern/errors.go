package pattern

import (
	"fmt"
	"strings"
)

// PatternErrorKind classifies a malformed pattern string. Pattern errors are
// terminal: no partial plan is ever returned alongside one.
type PatternErrorKind int

const (
	// FormatStringEmpty: the pattern string is empty.
	FormatStringEmpty PatternErrorKind = iota
	// UnknownStandardFormat: a single-character pattern that names no
	// standard pattern for the value kind.
	UnknownStandardFormat
	// RepeatCountExceeded: a directive repeated beyond its per-field maximum.
	RepeatCountExceeded
	// MissingEndQuote: a '-delimited literal is never closed.
	MissingEndQuote
	// EscapeAtEndOfString: a trailing unescaped backslash.
	EscapeAtEndOfString
	// PercentDoubled: "%%" is not a valid escape.
	PercentDoubled
	// PercentAtEndOfString: a trailing '%'.
	PercentAtEndOfString
	// UnquotedLiteral: a character that is neither a directive nor quoted.
	UnquotedLiteral
	// RepeatedFieldInPattern: the same field appears twice. Identity is per
	// field, not per directive character: "MM MMM" is two distinct fields.
	RepeatedFieldInPattern
	// CalendarAndEra: a calendar directive cannot coexist with an era directive.
	CalendarAndEra
	// EraWithoutYearOfEra: an era directive without a year-of-era directive.
	EraWithoutYearOfEra
	// MultipleCapitalDurationFields: more than one of the total-value
	// directives D, H, M, S in a duration pattern.
	MultipleCapitalDurationFields
)

var patternKindNames = [...]string{
	FormatStringEmpty:             "FormatStringEmpty",
	UnknownStandardFormat:         "UnknownStandardFormat",
	RepeatCountExceeded:           "RepeatCountExceeded",
	MissingEndQuote:               "MissingEndQuote",
	EscapeAtEndOfString:           "EscapeAtEndOfString",
	PercentDoubled:                "PercentDoubled",
	PercentAtEndOfString:          "PercentAtEndOfString",
	UnquotedLiteral:               "UnquotedLiteral",
	RepeatedFieldInPattern:        "RepeatedFieldInPattern",
	CalendarAndEra:                "CalendarAndEra",
	EraWithoutYearOfEra:           "EraWithoutYearOfEra",
	MultipleCapitalDurationFields: "MultipleCapitalDurationFields",
}

// String returns the kind name.
func (k PatternErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(patternKindNames) {
		return patternKindNames[k]
	}
	return fmt.Sprintf("PatternErrorKind(%d)", int(k))
}

// patternMessages maps kinds to message verbs. Args documented per kind.
var patternMessages = map[PatternErrorKind]string{
	FormatStringEmpty:             "pattern string is empty",
	UnknownStandardFormat:         "%q is not a standard pattern for this value type",            // pattern char
	RepeatCountExceeded:           "repeat count of directive %q exceeds the maximum of %d",      // char, max
	MissingEndQuote:               "quoted literal opened at index %d is never closed",           // pos
	EscapeAtEndOfString:           "escape character at end of pattern",
	PercentDoubled:                "%% may not be followed by another %%",
	PercentAtEndOfString:          "%% at end of pattern",
	UnquotedLiteral:               "unquoted literal character %q",                               // char
	RepeatedFieldInPattern:        "field %q appears more than once",                             // char
	CalendarAndEra:                "calendar and era directives may not both appear",
	EraWithoutYearOfEra:           "era directive requires a year-of-era directive",
	MultipleCapitalDurationFields: "only one of the total-value directives D, H, M, S may appear",
}

// PatternError reports a malformed pattern string. Pos is a byte index into
// the pattern, or -1 when the error has no single position.
type PatternError struct {
	Kind    PatternErrorKind
	Pattern string
	Pos     int
	Args    []any
}

func newPatternError(kind PatternErrorKind, pattern string, pos int, args ...any) *PatternError {
	return &PatternError{Kind: kind, Pattern: pattern, Pos: pos, Args: args}
}

// Message returns the message without the pattern text or position, for
// renderers that present those separately.
func (e *PatternError) Message() string {
	return fmt.Sprintf(patternMessages[e.Kind], e.Args...)
}

// Error implements error.
func (e *PatternError) Error() string {
	msg := e.Message()
	if e.Pos >= 0 {
		return fmt.Sprintf("pattern %q: %s (index %d)", e.Pattern, msg, e.Pos)
	}
	return fmt.Sprintf("pattern %q: %s", e.Pattern, msg)
}

// ParseErrorKind classifies a failure to parse input text against an
// already-valid pattern.
type ParseErrorKind int

const (
	// ValueStringEmpty: the input text is empty. Composite parsers propagate
	// this immediately instead of retrying other patterns.
	ValueStringEmpty ParseErrorKind = iota
	// MismatchedCharacter: a literal or separator character did not match.
	MismatchedCharacter
	// MismatchedText: a quoted literal or name field did not match.
	MismatchedText
	// MismatchedNumber: digits were required and absent.
	MismatchedNumber
	// MismatchedSign: a mandatory sign was absent.
	MismatchedSign
	// UnexpectedEndOfString: the input ended before the pattern did.
	UnexpectedEndOfString
	// ExtraValueCharacters: unconsumed text after the final pattern step.
	ExtraValueCharacters
	// FieldValueOutOfRange: one field's own value is outside its legal range.
	// Carries the field directive and the offending text verbatim.
	FieldValueOutOfRange
	// OverallValueOutOfRange: every field was individually in range but the
	// composed value overflows the target type. Never conflated with
	// FieldValueOutOfRange.
	OverallValueOutOfRange
	// InconsistentValues: two redundant fields disagree.
	InconsistentValues
	// InconsistentMonthTextValue: a month name and a numeric month disagree.
	InconsistentMonthTextValue
	// RepeatedFieldValue: a field was assigned twice during one parse.
	RepeatedFieldValue
	// NoMatchingCalendarSystem: an unrecognized calendar identifier token.
	NoMatchingCalendarSystem
	// YearOfEraOutOfRange: a year-of-era outside the calendar's range.
	YearOfEraOutOfRange
	// MonthOutOfRange: a month outside the calendar's range for the year.
	MonthOutOfRange
)

var parseKindNames = [...]string{
	ValueStringEmpty:           "ValueStringEmpty",
	MismatchedCharacter:        "MismatchedCharacter",
	MismatchedText:             "MismatchedText",
	MismatchedNumber:           "MismatchedNumber",
	MismatchedSign:             "MismatchedSign",
	UnexpectedEndOfString:      "UnexpectedEndOfString",
	ExtraValueCharacters:       "ExtraValueCharacters",
	FieldValueOutOfRange:       "FieldValueOutOfRange",
	OverallValueOutOfRange:     "OverallValueOutOfRange",
	InconsistentValues:         "InconsistentValues",
	InconsistentMonthTextValue: "InconsistentMonthTextValue",
	RepeatedFieldValue:         "RepeatedFieldValue",
	NoMatchingCalendarSystem:   "NoMatchingCalendarSystem",
	YearOfEraOutOfRange:        "YearOfEraOutOfRange",
	MonthOutOfRange:            "MonthOutOfRange",
}

// String returns the kind name.
func (k ParseErrorKind) String() string {
	if int(k) >= 0 && int(k) < len(parseKindNames) {
		return parseKindNames[k]
	}
	return fmt.Sprintf("ParseErrorKind(%d)", int(k))
}

var parseMessages = map[ParseErrorKind]string{
	ValueStringEmpty:           "value string is empty",
	MismatchedCharacter:        "expected %q",                                       // char/separator
	MismatchedText:             "no match for %s",                                   // description
	MismatchedNumber:           "expected digits for field %q",                      // char
	MismatchedSign:             "expected a sign",
	UnexpectedEndOfString:      "unexpected end of input",
	ExtraValueCharacters:       "unexpected trailing text %q",                       // text
	FieldValueOutOfRange:       "value %s is out of range for field %q",             // text, char
	OverallValueOutOfRange:     "composed value is outside the representable range",
	InconsistentValues:         "fields %q and %q give inconsistent values",         // char, char
	InconsistentMonthTextValue: "month name and numeric month give inconsistent values",
	RepeatedFieldValue:         "field %q is assigned more than once",               // char
	NoMatchingCalendarSystem:   "no matching calendar system for %q",                // id text
	YearOfEraOutOfRange:        "year of era %s is out of range for era %s",         // text, era
	MonthOutOfRange:            "month %s is out of range",                          // text
}

// ParseError reports a failure to parse input text. Pos is a byte index into
// the input, or -1 when the failure concerns the text as a whole.
type ParseError struct {
	Kind ParseErrorKind
	Text string
	Pos  int
	Args []any
}

func newParseError(kind ParseErrorKind, text string, pos int, args ...any) *ParseError {
	return &ParseError{Kind: kind, Text: text, Pos: pos, Args: args}
}

// Message returns the message without the input text or position.
func (e *ParseError) Message() string {
	return fmt.Sprintf(parseMessages[e.Kind], e.Args...)
}

// Error implements error.
func (e *ParseError) Error() string {
	msg := e.Message()
	var sb strings.Builder
	fmt.Fprintf(&sb, "parsing %q: %s", e.Text, msg)
	if e.Pos >= 0 {
		fmt.Fprintf(&sb, " (index %d)", e.Pos)
	}
	return sb.String()
}
