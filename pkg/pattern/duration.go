package pattern

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/span"
)

// Duration directive set:
//
//	D H M S  total days/hours/minutes/seconds (at most one per pattern)
//	h m s    time-of-day style components, 0-23 / 0-59 / 0-59
//	f F      fraction of a second, fixed / trimmed, up to 9 digits
//	+ -      sign; '+' always emits, '-' only for negative values
//	: .      culture time and decimal separators
var durationGrammar = &grammar{
	maxRepeat: map[byte]int{
		'D': 8, 'H': 8, 'M': 8, 'S': 8,
		'h': 2, 'm': 2, 's': 2,
		'f': 9, 'F': 9,
		'+': 1, '-': 1,
	},
	separators: map[byte]bool{':': true, '.': true},
	fieldOf:    durationFieldOf,
	validate:   validateDuration,
}

func durationFieldOf(ch byte, _ int) fieldID {
	switch ch {
	case 'D':
		return fieldTotalDays
	case 'H':
		return fieldTotalHours
	case 'M':
		return fieldTotalMinutes
	case 'S':
		return fieldTotalSeconds
	case 'h':
		return fieldHours
	case 'm':
		return fieldMinutes
	case 's':
		return fieldSeconds
	case 'f', 'F':
		return fieldFraction
	default: // '+', '-'
		return fieldSign
	}
}

// validateDuration enforces the duration-specific rule that the capital
// total-value family is mutually exclusive.
func validateDuration(pattern string, written fieldSet) *PatternError {
	totals := 0
	for _, f := range []fieldID{fieldTotalDays, fieldTotalHours, fieldTotalMinutes, fieldTotalSeconds} {
		if written.has(f) {
			totals++
		}
	}
	if totals > 1 {
		return newPatternError(MultipleCapitalDurationFields, pattern, -1)
	}
	return nil
}

// DurationRoundTripText is the invariant full-precision duration pattern.
// It is symmetric over the entire range, including MinDuration/MaxDuration.
const DurationRoundTripText = "-D:hh:mm:ss.FFFFFFFFF"

// durationStandard maps single-character standard pattern names.
var durationStandard = map[string]string{
	"o": DurationRoundTripText,
}

// DurationPattern is an immutable, reusable plan for formatting and parsing
// span.Duration values. Compilation happens exactly once; culture changes
// share the compiled steps.
type DurationPattern struct {
	text    string
	steps   []step
	culture culture.Culture
	// fixed marks culture-invariant standard patterns, which render
	// identically regardless of locale.
	fixed bool
}

// NewDurationPattern compiles a duration pattern bound to a culture.
// A single-character pattern names a standard pattern ("o" = round-trip);
// standard patterns always bind the invariant culture.
func NewDurationPattern(text string, c culture.Culture) (*DurationPattern, error) {
	if text == "" {
		return nil, newPatternError(FormatStringEmpty, text, -1)
	}
	if utf8.RuneCountInString(text) == 1 {
		expanded, ok := durationStandard[text]
		if !ok {
			return nil, newPatternError(UnknownStandardFormat, text, 0, text)
		}
		steps, _, err := compile(expanded, durationGrammar)
		if err != nil {
			return nil, err
		}
		return &DurationPattern{text: expanded, steps: steps, culture: culture.Invariant(), fixed: true}, nil
	}
	steps, _, err := compile(text, durationGrammar)
	if err != nil {
		return nil, err
	}
	return &DurationPattern{text: text, steps: steps, culture: c}, nil
}

// NewDurationPatternInvariant compiles a duration pattern with the invariant
// culture.
func NewDurationPatternInvariant(text string) (*DurationPattern, error) {
	return NewDurationPattern(text, culture.Invariant())
}

// NewDurationPatternAmbient compiles a duration pattern with the culture an
// Ambient holder currently carries.
func NewDurationPatternAmbient(text string, a *culture.Ambient) (*DurationPattern, error) {
	return NewDurationPattern(text, a.Current())
}

// Text returns the pattern text the plan was compiled from.
func (p *DurationPattern) Text() string { return p.text }

// Culture returns the bound culture snapshot.
func (p *DurationPattern) Culture() culture.Culture { return p.culture }

// WithCulture returns a facade sharing the compiled steps with a different
// culture snapshot. Standard patterns are culture-invariant and ignore the
// substitution.
func (p *DurationPattern) WithCulture(c culture.Culture) *DurationPattern {
	if p.fixed {
		return p
	}
	clone := *p
	clone.culture = c
	return &clone
}

// WithAmbientCulture rebinds to the culture a holds at call time.
func (p *DurationPattern) WithAmbientCulture(a *culture.Ambient) *DurationPattern {
	return p.WithCulture(a.Current())
}

// WithInvariantCulture rebinds to the invariant culture.
func (p *DurationPattern) WithInvariantCulture() *DurationPattern {
	return p.WithCulture(culture.Invariant())
}

// DurationRoundTrip returns the shared round-trip pattern facade.
func DurationRoundTrip() *DurationPattern { return durationRoundTrip }

var durationRoundTrip = func() *DurationPattern {
	p, err := NewDurationPattern("o", culture.Invariant())
	if err != nil {
		panic(err)
	}
	return p
}()

var pow10 = [...]uint64{1, 10, 100, 1_000, 10_000, 100_000, 1_000_000, 10_000_000, 100_000_000, 1_000_000_000}

// maxDurationMagnitude is the largest nanosecond magnitude representable for
// the sign: 1<<63 negative, MaxInt64 positive.
func maxDurationMagnitude(neg bool) uint64 {
	if neg {
		return 1 << 63
	}
	return math.MaxInt64
}

func durationUnit(ch byte) uint64 {
	switch ch {
	case 'D':
		return uint64(span.NanosPerDay)
	case 'H':
		return uint64(span.NanosPerHour)
	case 'M':
		return uint64(span.NanosPerMinute)
	default: // 'S'
		return uint64(span.NanosPerSecond)
	}
}

// Format renders the value. Total for any compiled pattern: every directive
// the compiler accepted has a rendering rule. Fields render the magnitude;
// sign text comes only from the sign directives.
func (p *DurationPattern) Format(d span.Duration) string {
	neg, mag := d.Abs()
	nanos := mag % uint64(span.NanosPerSecond)

	var sb strings.Builder
	for i, st := range p.steps {
		switch st.kind {
		case stepLiteral, stepEscape:
			sb.WriteString(st.text)
		case stepSeparator:
			if st.field == '.' {
				// The decimal separator vanishes together with an empty
				// trimmed fraction, so the output always parses back. The
				// fraction can trim to nothing even for non-zero nanos when
				// the kept leading digits are all zeros.
				if followedByTrimmedFraction(p.steps, i) && trimmedFraction(nanos, p.steps[i+1].count) == "" {
					continue
				}
				sb.WriteString(p.culture.DecimalSep)
			} else {
				sb.WriteString(p.culture.TimeSep)
			}
		case stepField:
			formatDurationField(&sb, st, neg, mag, nanos)
		}
	}
	return sb.String()
}

func followedByTrimmedFraction(steps []step, i int) bool {
	return i+1 < len(steps) && steps[i+1].kind == stepField && steps[i+1].field == 'F'
}

func formatDurationField(sb *strings.Builder, st step, neg bool, mag, nanos uint64) {
	switch st.field {
	case '+':
		if neg {
			sb.WriteByte('-')
		} else {
			sb.WriteByte('+')
		}
	case '-':
		if neg {
			sb.WriteByte('-')
		}
	case 'D':
		writePaddedUint(sb, mag/uint64(span.NanosPerDay), st.count)
	case 'H':
		writePaddedUint(sb, mag/uint64(span.NanosPerHour), st.count)
	case 'M':
		writePaddedUint(sb, mag/uint64(span.NanosPerMinute), st.count)
	case 'S':
		writePaddedUint(sb, mag/uint64(span.NanosPerSecond), st.count)
	case 'h':
		writePaddedUint(sb, mag/uint64(span.NanosPerHour)%24, st.count)
	case 'm':
		writePaddedUint(sb, mag/uint64(span.NanosPerMinute)%60, st.count)
	case 's':
		writePaddedUint(sb, mag/uint64(span.NanosPerSecond)%60, st.count)
	case 'f':
		sb.WriteString(fractionDigits(nanos, st.count))
	case 'F':
		sb.WriteString(trimmedFraction(nanos, st.count))
	}
}

// writePaddedUint writes v zero-padded to at least width digits.
func writePaddedUint(sb *strings.Builder, v uint64, width int) {
	s := strconv.FormatUint(v, 10)
	for pad := width - len(s); pad > 0; pad-- {
		sb.WriteByte('0')
	}
	sb.WriteString(s)
}

// fractionDigits renders the leading digits of a nanosecond fraction.
func fractionDigits(nanos uint64, digits int) string {
	full := strconv.FormatUint(nanos+uint64(span.NanosPerSecond), 10)[1:] // 9 digits, zero-padded
	return full[:digits]
}

// trimmedFraction is the text a trimmed fraction directive renders.
func trimmedFraction(nanos uint64, digits int) string {
	return strings.TrimRight(fractionDigits(nanos, digits), "0")
}

// Parse executes the plan against text. It never panics; failures are
// structured values. Parsing reconstructs the magnitude and reapplies the
// sign afterwards; patterns without a sign directive accept positive text
// only.
func (p *DurationPattern) Parse(text string) Result[span.Duration] {
	if text == "" {
		return failure[span.Duration](newParseError(ValueStringEmpty, text, -1))
	}

	cur := &cursor{text: text}
	var b bucket
	steps := p.steps
	// set when the decimal separator was consumed, which makes the following
	// trimmed fraction mandatory.
	decimalConsumed := false

	for i := 0; i < len(steps); i++ {
		st := steps[i]
		switch st.kind {
		case stepLiteral, stepEscape:
			if err := cur.matchLiteral(st.text); err != nil {
				return failure[span.Duration](err)
			}

		case stepSeparator:
			if st.field == ':' {
				if err := cur.matchLiteral(p.culture.TimeSep); err != nil {
					return failure[span.Duration](err)
				}
				continue
			}
			dec := p.culture.DecimalSep
			switch {
			case strings.HasPrefix(cur.remaining(), dec):
				cur.pos += len(dec)
				decimalConsumed = true
			case followedByTrimmedFraction(steps, i):
				i++ // absent fraction: skip the F step as well
			default:
				if err := cur.matchLiteral(dec); err != nil {
					return failure[span.Duration](err)
				}
			}

		case stepField:
			if err := p.parseDurationField(cur, &b, st, decimalConsumed); err != nil {
				return failure[span.Duration](err)
			}
			decimalConsumed = false
		}
	}

	if !cur.atEnd() {
		return failure[span.Duration](newParseError(ExtraValueCharacters, text, cur.pos, cur.remaining()))
	}
	return p.resolveDuration(&b, text)
}

func (p *DurationPattern) parseDurationField(cur *cursor, b *bucket, st step, decimalConsumed bool) *ParseError {
	switch st.field {
	case '+':
		sign, err := cur.parseSign(true)
		if err != nil {
			return err
		}
		return b.set(fieldSign, sign, "", cur.text, cur.pos)

	case '-':
		sign, err := cur.parseSign(false)
		if err != nil {
			return err
		}
		return b.set(fieldSign, sign, "", cur.text, cur.pos)

	case 'D', 'H', 'M', 'S':
		neg := b.has(fieldSign) && b.value(fieldSign) < 0
		limit := maxDurationMagnitude(neg) / durationUnit(st.field)
		start := cur.pos
		v, raw, err := cur.parseBoundedDigits(st.field, limit)
		if err != nil {
			return err
		}
		return b.set(durationFieldOf(st.field, st.count), int64(v), raw, cur.text, start)

	case 'h', 'm', 's':
		start := cur.pos
		v, raw, err := cur.parseDigits(st.count, 2, st.field)
		if err != nil {
			return err
		}
		return b.set(durationFieldOf(st.field, st.count), v, raw, cur.text, start)

	case 'f', 'F':
		minDigits := st.count
		if st.field == 'F' {
			// A trimmed fraction needs at least one digit only when the
			// decimal separator was actually consumed.
			minDigits = 0
			if decimalConsumed {
				minDigits = 1
			}
		}
		start := cur.pos
		v, raw, err := cur.parseDigits(minDigits, st.count, st.field)
		if err != nil {
			return err
		}
		nanos := uint64(v) * pow10[9-len(raw)]
		return b.set(fieldFraction, int64(nanos), raw, cur.text, start)

	default:
		return nil
	}
}

// parseSign consumes a leading sign. Mandatory signs ('+') fail when absent;
// optional signs ('-') default to positive without consuming.
func (c *cursor) parseSign(mandatory bool) (int64, *ParseError) {
	rest := c.remaining()
	switch {
	case strings.HasPrefix(rest, "-"):
		c.pos++
		return -1, nil
	case strings.HasPrefix(rest, "+"):
		if mandatory {
			c.pos++
			return 1, nil
		}
		// The optional sign directive accepts '-' or nothing, never '+'.
		return 0, newParseError(MismatchedCharacter, c.text, c.pos, "-")
	case mandatory:
		if c.atEnd() {
			return 0, newParseError(UnexpectedEndOfString, c.text, c.pos)
		}
		return 0, newParseError(MismatchedSign, c.text, c.pos)
	default:
		return 1, nil
	}
}

// resolveDuration consumes the bucket: per-field range checks first, then
// composition, whose overflow is reported separately so a caller can always
// tell a bad field from a bad combination.
func (p *DurationPattern) resolveDuration(b *bucket, text string) Result[span.Duration] {
	for _, rc := range []struct {
		f   fieldID
		max int64
	}{
		{fieldHours, 23},
		{fieldMinutes, 59},
		{fieldSeconds, 59},
	} {
		if b.has(rc.f) && b.value(rc.f) > rc.max {
			return failure[span.Duration](newParseError(
				FieldValueOutOfRange, text, -1, b.raw(rc.f), string(rc.f.directive())))
		}
	}

	neg := b.has(fieldSign) && b.value(fieldSign) < 0
	d, err := span.FromComponents(neg,
		uint64(b.value(fieldTotalDays)),
		uint64(b.value(fieldTotalHours)+b.value(fieldHours)),
		uint64(b.value(fieldTotalMinutes)+b.value(fieldMinutes)),
		uint64(b.value(fieldTotalSeconds)+b.value(fieldSeconds)),
		uint64(b.value(fieldFraction)))
	if err != nil {
		return failure[span.Duration](newParseError(OverallValueOutOfRange, text, -1))
	}
	return success(d)
}

// MustParse parses or panics with the failure's message.
func (p *DurationPattern) MustParse(text string) span.Duration {
	return p.Parse(text).MustGet()
}
