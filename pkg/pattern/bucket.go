package pattern

// fieldID identifies one accumulated value component, independent of the
// directive character that produced it. A numeric month and a month name are
// distinct fields so one pattern may carry both and cross-check them.
type fieldID int

const (
	fieldSign fieldID = iota
	fieldTotalDays
	fieldTotalHours
	fieldTotalMinutes
	fieldTotalSeconds
	fieldHours
	fieldMinutes
	fieldSeconds
	fieldFraction
	fieldYear
	fieldYearOfEra
	fieldEra
	fieldMonth
	fieldMonthText
	fieldCalendar
	numFields
)

// directive returns the canonical directive character for error messages.
func (f fieldID) directive() byte {
	switch f {
	case fieldSign:
		return '+'
	case fieldTotalDays:
		return 'D'
	case fieldTotalHours:
		return 'H'
	case fieldTotalMinutes:
		return 'M'
	case fieldTotalSeconds:
		return 'S'
	case fieldHours:
		return 'h'
	case fieldMinutes:
		return 'm'
	case fieldSeconds:
		return 's'
	case fieldFraction:
		return 'f'
	case fieldYear:
		return 'u'
	case fieldYearOfEra:
		return 'y'
	case fieldEra:
		return 'g'
	case fieldMonth, fieldMonthText:
		return 'M'
	case fieldCalendar:
		return 'c'
	default:
		return '?'
	}
}

// fieldSet is a bitmask over fieldID.
type fieldSet uint32

func (s fieldSet) has(f fieldID) bool     { return s&(1<<uint(f)) != 0 }
func (s fieldSet) with(f fieldID) fieldSet { return s | 1<<uint(f) }

// bucket accumulates partially-parsed field values during one parse attempt.
// A bucket is created fresh per call, mutated step by step, consumed once by
// resolution, and discarded; it is never shared.
type bucket struct {
	written fieldSet
	vals    [numFields]int64
	text    [numFields]string

	// twoDigitYear marks that year-of-era was written by a two-digit
	// directive and needs pivot expansion against the template.
	twoDigitYear bool
}

// set records a field value with the raw text that produced it. A second
// write to the same field is an input inconsistency, not a crash.
func (b *bucket) set(f fieldID, v int64, raw, input string, pos int) *ParseError {
	if b.written.has(f) {
		return newParseError(RepeatedFieldValue, input, pos, string(f.directive()))
	}
	b.written = b.written.with(f)
	b.vals[f] = v
	b.text[f] = raw
	return nil
}

func (b *bucket) has(f fieldID) bool   { return b.written.has(f) }
func (b *bucket) value(f fieldID) int64 { return b.vals[f] }
func (b *bucket) raw(f fieldID) string { return b.text[f] }

// twoDigitCutoff is the pivot for expanding two-digit years: values below it
// land in the template's century, values at or above in the previous one.
const twoDigitCutoff = 30

// expandTwoDigitYear maps a parsed two-digit year-of-era into a century
// chosen relative to the template's year-of-era. Templates in the first
// century never trigger a century rollback.
func expandTwoDigitYear(v, templateYearOfEra int) int {
	if templateYearOfEra < 100 {
		return v
	}
	base := templateYearOfEra - templateYearOfEra%100
	if v < twoDigitCutoff {
		return base + v
	}
	return base - 100 + v
}
