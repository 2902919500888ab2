package pattern

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// folder implements the case-insensitivity policy for name matching.
// Calendar identifiers never go through it.
var folder = cases.Fold()

// foldEqual reports whether two strings are equal under Unicode case folding.
func foldEqual(a, b string) bool {
	return folder.String(a) == folder.String(b)
}

// cursor tracks the parse position within the input text. The text itself is
// never mutated; all failures carry the current byte position.
type cursor struct {
	text string
	pos  int
}

func (c *cursor) remaining() string { return c.text[c.pos:] }
func (c *cursor) atEnd() bool       { return c.pos >= len(c.text) }

// matchLiteral consumes lit exactly (case-sensitive) or fails.
func (c *cursor) matchLiteral(lit string) *ParseError {
	if strings.HasPrefix(c.remaining(), lit) {
		c.pos += len(lit)
		return nil
	}
	if c.atEnd() {
		return newParseError(UnexpectedEndOfString, c.text, c.pos)
	}
	if len(lit) == 1 {
		return newParseError(MismatchedCharacter, c.text, c.pos, lit)
	}
	return newParseError(MismatchedText, c.text, c.pos, "literal "+quote(lit))
}

// parseDigits consumes between minDigits and maxDigits decimal digits and
// returns the value with its raw text. fieldCh names the field in failures.
func (c *cursor) parseDigits(minDigits, maxDigits int, fieldCh byte) (int64, string, *ParseError) {
	start := c.pos
	for c.pos < len(c.text) && c.pos-start < maxDigits && isDigit(c.text[c.pos]) {
		c.pos++
	}
	raw := c.text[start:c.pos]
	if len(raw) < minDigits {
		c.pos = start
		if c.atEnd() {
			return 0, "", newParseError(UnexpectedEndOfString, c.text, c.pos)
		}
		return 0, "", newParseError(MismatchedNumber, c.text, c.pos, string(fieldCh))
	}
	var v int64
	for i := 0; i < len(raw); i++ {
		v = v*10 + int64(raw[i]-'0')
	}
	return v, raw, nil
}

// parseBoundedDigits consumes a full run of digits for an unbounded total
// field. The value is accumulated against limit; when it overflows, the rest
// of the run is still consumed so the failure echoes the complete field text,
// leading zeros included.
func (c *cursor) parseBoundedDigits(fieldCh byte, limit uint64) (uint64, string, *ParseError) {
	start := c.pos
	var v uint64
	overflow := false
	for c.pos < len(c.text) && isDigit(c.text[c.pos]) {
		d := uint64(c.text[c.pos] - '0')
		if !overflow {
			if v > (limit-d)/10 {
				overflow = true
			} else {
				v = v*10 + d
			}
		}
		c.pos++
	}
	raw := c.text[start:c.pos]
	if raw == "" {
		if c.atEnd() {
			return 0, "", newParseError(UnexpectedEndOfString, c.text, c.pos)
		}
		return 0, "", newParseError(MismatchedNumber, c.text, c.pos, string(fieldCh))
	}
	if overflow {
		return 0, raw, newParseError(FieldValueOutOfRange, c.text, start, raw, string(fieldCh))
	}
	return v, raw, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// nameCandidate pairs a recognized name with the field value it denotes.
type nameCandidate struct {
	value int
	name  string
	// genitive candidates sort before plain ones of the same length, because
	// genitive names extend plain ones and a shorter prefix match would
	// otherwise shadow the correct longer one.
	genitive bool
}

// sortCandidates orders candidates longest first, genitive before plain on
// equal length. Called once when a facade is built, never per parse.
func sortCandidates(cands []nameCandidate) []nameCandidate {
	sort.SliceStable(cands, func(i, j int) bool {
		if len(cands[i].name) != len(cands[j].name) {
			return len(cands[i].name) > len(cands[j].name)
		}
		return cands[i].genitive && !cands[j].genitive
	})
	return cands
}

// matchLongestName consumes the longest candidate matching the input,
// case-insensitively, and returns its value. what describes the field in the
// failure message, e.g. "month name".
func (c *cursor) matchLongestName(cands []nameCandidate, what string) (int, *ParseError) {
	rest := c.remaining()
	for _, cand := range cands {
		if len(rest) < len(cand.name) {
			continue
		}
		if foldEqual(rest[:len(cand.name)], cand.name) {
			c.pos += len(cand.name)
			return cand.value, nil
		}
	}
	if c.atEnd() {
		return 0, newParseError(UnexpectedEndOfString, c.text, c.pos)
	}
	return 0, newParseError(MismatchedText, c.text, c.pos, what)
}

// matchExactToken consumes the longest candidate matching case-sensitively.
// Used for calendar identifiers, which own a case-sensitive policy.
func (c *cursor) matchExactToken(names []string) (string, bool) {
	best := ""
	rest := c.remaining()
	for _, name := range names {
		if len(name) > len(best) && strings.HasPrefix(rest, name) {
			best = name
		}
	}
	if best == "" {
		return "", false
	}
	c.pos += len(best)
	return best, true
}

func quote(s string) string { return `"` + s + `"` }
