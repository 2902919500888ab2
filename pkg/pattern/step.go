package pattern

import (
	"strings"
	"unicode/utf8"
)

// stepKind tags the variants of a compiled pattern step.
type stepKind int

const (
	// stepLiteral emits/matches its text verbatim (quoted runs and spaces).
	stepLiteral stepKind = iota
	// stepEscape is a single \-escaped character; behaves as a literal but is
	// kept distinct so diagnostics can point at the escape.
	stepEscape
	// stepField is a field directive with a repeat count.
	stepField
	// stepSeparator is a culture-supplied separator directive (: . /).
	stepSeparator
)

// step is one element of a compiled pattern. A compiled []step is immutable
// and shared by every Format/Parse call on the facade that owns it.
type step struct {
	kind  stepKind
	text  string // literal/escape text
	field byte   // directive or separator character
	count int    // repeat count for field steps
}

// grammar describes one value kind's directive set for the shared compiler.
type grammar struct {
	// maxRepeat lists the field directives and their per-field repeat limits.
	maxRepeat map[byte]int
	// separators lists the separator directives.
	separators map[byte]bool
	// fieldOf maps a directive + repeat count to its field identity.
	fieldOf func(ch byte, count int) fieldID
	// validate runs semantic cross-checks over the set of fields present.
	validate func(pattern string, written fieldSet) *PatternError
}

// compile tokenizes a pattern string into steps and runs the grammar's
// semantic checks. It is called exactly once per facade; every error is
// terminal and no partial step sequence escapes.
func compile(pattern string, g *grammar) ([]step, fieldSet, *PatternError) {
	if pattern == "" {
		return nil, 0, newPatternError(FormatStringEmpty, pattern, -1)
	}

	var steps []step
	var written fieldSet

	addField := func(ch byte, count, pos int) *PatternError {
		id := g.fieldOf(ch, count)
		if written.has(id) {
			return newPatternError(RepeatedFieldInPattern, pattern, pos, string(ch))
		}
		written = written.with(id)
		steps = append(steps, step{kind: stepField, field: ch, count: count})
		return nil
	}

	i := 0
	for i < len(pattern) {
		ch := pattern[i]
		switch {
		case ch == '\'':
			end := strings.IndexByte(pattern[i+1:], '\'')
			if end < 0 {
				return nil, 0, newPatternError(MissingEndQuote, pattern, i)
			}
			steps = append(steps, step{kind: stepLiteral, text: pattern[i+1 : i+1+end]})
			i += end + 2

		case ch == '\\':
			if i+1 >= len(pattern) {
				return nil, 0, newPatternError(EscapeAtEndOfString, pattern, i)
			}
			r, size := utf8.DecodeRuneInString(pattern[i+1:])
			steps = append(steps, step{kind: stepEscape, text: string(r)})
			i += 1 + size

		case ch == '%':
			if i+1 >= len(pattern) {
				return nil, 0, newPatternError(PercentAtEndOfString, pattern, i)
			}
			next := pattern[i+1]
			switch {
			case next == '%':
				return nil, 0, newPatternError(PercentDoubled, pattern, i)
			case g.maxRepeat[next] > 0:
				if err := addField(next, 1, i+1); err != nil {
					return nil, 0, err
				}
			case g.separators[next]:
				steps = append(steps, step{kind: stepSeparator, field: next})
			default:
				r, _ := utf8.DecodeRuneInString(pattern[i+1:])
				return nil, 0, newPatternError(UnquotedLiteral, pattern, i+1, string(r))
			}
			i += 2

		case g.maxRepeat[ch] > 0:
			count := 1
			for i+count < len(pattern) && pattern[i+count] == ch {
				count++
			}
			if count > g.maxRepeat[ch] {
				return nil, 0, newPatternError(RepeatCountExceeded, pattern, i, string(ch), g.maxRepeat[ch])
			}
			if err := addField(ch, count, i); err != nil {
				return nil, 0, err
			}
			i += count

		case g.separators[ch]:
			steps = append(steps, step{kind: stepSeparator, field: ch})
			i++

		case ch == ' ':
			steps = append(steps, step{kind: stepLiteral, text: " "})
			i++

		default:
			r, _ := utf8.DecodeRuneInString(pattern[i:])
			return nil, 0, newPatternError(UnquotedLiteral, pattern, i, string(r))
		}
	}

	if g.validate != nil {
		if err := g.validate(pattern, written); err != nil {
			return nil, 0, err
		}
	}
	return steps, written, nil
}
