package pattern

import (
	"strings"
	"unicode/utf8"

	"github.com/dkoosis/spanfmt/pkg/calendar"
	"github.com/dkoosis/spanfmt/pkg/culture"
	"github.com/dkoosis/spanfmt/pkg/span"
)

// YearMonth directive set:
//
//	u     absolute signed year
//	y     year-of-era; "yy" parses two digits and pivots on the template
//	g     era name
//	M MM  numeric month; MMM abbreviated name, MMMM full name
//	c     calendar identifier (case-sensitive)
//	/     culture date separator
var yearMonthGrammar = &grammar{
	maxRepeat: map[byte]int{
		'u': 4, 'y': 4, 'g': 1, 'M': 4, 'c': 1,
	},
	separators: map[byte]bool{'/': true},
	fieldOf:    yearMonthFieldOf,
	validate:   validateYearMonth,
}

func yearMonthFieldOf(ch byte, count int) fieldID {
	switch ch {
	case 'u':
		return fieldYear
	case 'y':
		return fieldYearOfEra
	case 'g':
		return fieldEra
	case 'M':
		if count <= 2 {
			return fieldMonth
		}
		return fieldMonthText
	default: // 'c'
		return fieldCalendar
	}
}

// validateYearMonth enforces the era/calendar cross-checks: an era cannot
// coexist with a calendar directive, and an era is meaningless without a
// year-of-era to apply it to.
func validateYearMonth(pattern string, written fieldSet) *PatternError {
	if written.has(fieldEra) && written.has(fieldCalendar) {
		return newPatternError(CalendarAndEra, pattern, -1)
	}
	if written.has(fieldEra) && !written.has(fieldYearOfEra) {
		return newPatternError(EraWithoutYearOfEra, pattern, -1)
	}
	return nil
}

// Standard year-month patterns. Both are culture-invariant.
const (
	// YearMonthGeneralText is the ISO-style year-month layout.
	YearMonthGeneralText = "uuuu'-'MM"
	// YearMonthRoundTripText appends the calendar identifier so the value is
	// reproduced exactly, calendar included.
	YearMonthRoundTripText = "uuuu'-'MM' 'c"
)

var yearMonthStandard = map[string]string{
	"g": YearMonthGeneralText,
	"r": YearMonthRoundTripText,
}

// defaultYearMonthTemplate fills fields the pattern does not specify.
var defaultYearMonthTemplate = span.MustYearMonth(2000, 1)

// YearMonthPattern is an immutable, reusable plan for formatting and parsing
// span.YearMonth values.
type YearMonthPattern struct {
	text     string
	steps    []step
	culture  culture.Culture
	template span.YearMonth
	fixed    bool

	// name candidates are derived from the culture once at bind time and
	// shared by every parse.
	monthFull []nameCandidate
	monthAbbr []nameCandidate
	eraNames  []nameCandidate
}

// NewYearMonthPattern compiles a year-month pattern bound to a culture.
// Single-character patterns name standard patterns ("g" general, "r"
// round-trip), which always bind the invariant culture.
func NewYearMonthPattern(text string, c culture.Culture) (*YearMonthPattern, error) {
	if text == "" {
		return nil, newPatternError(FormatStringEmpty, text, -1)
	}
	if utf8.RuneCountInString(text) == 1 {
		expanded, ok := yearMonthStandard[text]
		if !ok {
			return nil, newPatternError(UnknownStandardFormat, text, 0, text)
		}
		steps, _, err := compile(expanded, yearMonthGrammar)
		if err != nil {
			return nil, err
		}
		p := &YearMonthPattern{text: expanded, steps: steps, template: defaultYearMonthTemplate, fixed: true}
		p.bindCulture(culture.Invariant())
		return p, nil
	}
	steps, _, err := compile(text, yearMonthGrammar)
	if err != nil {
		return nil, err
	}
	p := &YearMonthPattern{text: text, steps: steps, template: defaultYearMonthTemplate}
	p.bindCulture(c)
	return p, nil
}

// NewYearMonthPatternInvariant compiles with the invariant culture.
func NewYearMonthPatternInvariant(text string) (*YearMonthPattern, error) {
	return NewYearMonthPattern(text, culture.Invariant())
}

// NewYearMonthPatternAmbient compiles with the culture a holds at call time.
func NewYearMonthPatternAmbient(text string, a *culture.Ambient) (*YearMonthPattern, error) {
	return NewYearMonthPattern(text, a.Current())
}

// bindCulture installs the snapshot and precomputes the parse candidates:
// genitive forms sort ahead of the plain forms they extend, longest first.
func (p *YearMonthPattern) bindCulture(c culture.Culture) {
	p.culture = c
	p.monthFull = monthCandidates(c, false)
	p.monthAbbr = monthCandidates(c, true)

	var eras []nameCandidate
	for _, e := range []calendar.Era{calendar.EraCommon, calendar.EraBeforeCommon} {
		for _, name := range c.EraNames(e) {
			eras = append(eras, nameCandidate{value: int(e), name: name})
		}
	}
	p.eraNames = sortCandidates(eras)
}

func monthCandidates(c culture.Culture, abbreviated bool) []nameCandidate {
	var cands []nameCandidate
	for m := 1; m <= 12; m++ {
		if gen := c.MonthName(m, abbreviated, true); gen != "" {
			cands = append(cands, nameCandidate{value: m, name: gen, genitive: true})
		}
		if plain := c.MonthName(m, abbreviated, false); plain != "" {
			cands = append(cands, nameCandidate{value: m, name: plain})
		}
	}
	return sortCandidates(cands)
}

// Text returns the pattern text the plan was compiled from.
func (p *YearMonthPattern) Text() string { return p.text }

// Culture returns the bound culture snapshot.
func (p *YearMonthPattern) Culture() culture.Culture { return p.culture }

// Template returns the template value that fills unspecified fields.
func (p *YearMonthPattern) Template() span.YearMonth { return p.template }

// WithCulture returns a facade sharing the compiled steps with a different
// culture snapshot; compilation is never repeated on a culture change.
// Standard patterns are culture-invariant and ignore the substitution.
func (p *YearMonthPattern) WithCulture(c culture.Culture) *YearMonthPattern {
	if p.fixed {
		return p
	}
	clone := *p
	clone.bindCulture(c)
	return &clone
}

// WithAmbientCulture rebinds to the culture a holds at call time.
func (p *YearMonthPattern) WithAmbientCulture(a *culture.Ambient) *YearMonthPattern {
	return p.WithCulture(a.Current())
}

// WithInvariantCulture rebinds to the invariant culture.
func (p *YearMonthPattern) WithInvariantCulture() *YearMonthPattern {
	return p.WithCulture(culture.Invariant())
}

// WithTemplate returns a facade whose parse fills unspecified fields from ym.
func (p *YearMonthPattern) WithTemplate(ym span.YearMonth) *YearMonthPattern {
	clone := *p
	clone.template = ym
	return &clone
}

// YearMonthRoundTrip returns the shared round-trip pattern facade.
func YearMonthRoundTrip() *YearMonthPattern { return yearMonthRoundTrip }

var yearMonthRoundTrip = func() *YearMonthPattern {
	p, err := NewYearMonthPattern("r", culture.Invariant())
	if err != nil {
		panic(err)
	}
	return p
}()

// Format renders the value; total for any compiled pattern.
func (p *YearMonthPattern) Format(ym span.YearMonth) string {
	var sb strings.Builder
	for _, st := range p.steps {
		switch st.kind {
		case stepLiteral, stepEscape:
			sb.WriteString(st.text)
		case stepSeparator:
			sb.WriteString(p.culture.DateSep)
		case stepField:
			p.formatYearMonthField(&sb, st, ym)
		}
	}
	return sb.String()
}

func (p *YearMonthPattern) formatYearMonthField(sb *strings.Builder, st step, ym span.YearMonth) {
	switch st.field {
	case 'u':
		year := ym.Year()
		if year < 0 {
			sb.WriteByte('-')
			year = -year
		}
		writePaddedUint(sb, uint64(year), st.count)
	case 'y':
		_, yoe := ym.Era()
		if st.count == 2 {
			writePaddedUint(sb, uint64(yoe%100), 2)
		} else {
			writePaddedUint(sb, uint64(yoe), st.count)
		}
	case 'g':
		era, _ := ym.Era()
		names := p.culture.EraNames(era)
		if len(names) > 0 {
			sb.WriteString(names[0])
		}
	case 'M':
		switch {
		case st.count <= 2:
			writePaddedUint(sb, uint64(ym.Month()), st.count)
		case st.count == 3:
			sb.WriteString(p.culture.MonthName(ym.Month(), true, false))
		default:
			sb.WriteString(p.culture.MonthName(ym.Month(), false, false))
		}
	case 'c':
		sb.WriteString(ym.CalendarID())
	}
}

// Parse executes the plan against text, accumulating fields into a fresh
// bucket and resolving them against the calendar and the template.
func (p *YearMonthPattern) Parse(text string) Result[span.YearMonth] {
	if text == "" {
		return failure[span.YearMonth](newParseError(ValueStringEmpty, text, -1))
	}

	cur := &cursor{text: text}
	var b bucket
	for _, st := range p.steps {
		switch st.kind {
		case stepLiteral, stepEscape:
			if err := cur.matchLiteral(st.text); err != nil {
				return failure[span.YearMonth](err)
			}
		case stepSeparator:
			if err := cur.matchLiteral(p.culture.DateSep); err != nil {
				return failure[span.YearMonth](err)
			}
		case stepField:
			if err := p.parseYearMonthField(cur, &b, st); err != nil {
				return failure[span.YearMonth](err)
			}
		}
	}

	if !cur.atEnd() {
		return failure[span.YearMonth](newParseError(ExtraValueCharacters, text, cur.pos, cur.remaining()))
	}
	return p.resolveYearMonth(&b, text)
}

func (p *YearMonthPattern) parseYearMonthField(cur *cursor, b *bucket, st step) *ParseError {
	switch st.field {
	case 'u':
		start := cur.pos
		negative := strings.HasPrefix(cur.remaining(), "-")
		if negative {
			cur.pos++
		}
		v, _, err := cur.parseDigits(st.count, 4, 'u')
		if err != nil {
			return err
		}
		if negative {
			v = -v
		}
		return b.set(fieldYear, v, cur.text[start:cur.pos], cur.text, start)

	case 'y':
		start := cur.pos
		if st.count == 2 {
			v, raw, err := cur.parseDigits(2, 2, 'y')
			if err != nil {
				return err
			}
			b.twoDigitYear = true
			return b.set(fieldYearOfEra, v, raw, cur.text, start)
		}
		v, raw, err := cur.parseDigits(st.count, 4, 'y')
		if err != nil {
			return err
		}
		return b.set(fieldYearOfEra, v, raw, cur.text, start)

	case 'g':
		start := cur.pos
		era, err := cur.matchLongestName(p.eraNames, "era name")
		if err != nil {
			return err
		}
		return b.set(fieldEra, int64(era), cur.text[start:cur.pos], cur.text, start)

	case 'M':
		start := cur.pos
		if st.count <= 2 {
			v, raw, err := cur.parseDigits(st.count, 2, 'M')
			if err != nil {
				return err
			}
			return b.set(fieldMonth, v, raw, cur.text, start)
		}
		cands := p.monthAbbr
		if st.count == 4 {
			cands = p.monthFull
		}
		v, err := cur.matchLongestName(cands, "month name")
		if err != nil {
			return err
		}
		return b.set(fieldMonthText, int64(v), cur.text[start:cur.pos], cur.text, start)

	case 'c':
		start := cur.pos
		id, ok := cur.matchExactToken(calendar.IDs())
		if !ok {
			token := nextToken(cur.remaining())
			return newParseError(NoMatchingCalendarSystem, cur.text, start, token)
		}
		sys, cerr := calendar.ForID(id)
		if cerr != nil {
			return newParseError(NoMatchingCalendarSystem, cur.text, start, id)
		}
		return b.set(fieldCalendar, int64(indexOfCalendar(sys.ID())), id, cur.text, start)

	default:
		return nil
	}
}

// nextToken takes the run of non-space characters a failed calendar match
// should echo.
func nextToken(s string) string {
	if i := strings.IndexByte(s, ' '); i >= 0 {
		return s[:i]
	}
	return s
}

// calendarIndex gives calendar ids stable small integers so they fit the
// bucket's int64 slots.
var calendarIndex = func() map[string]int {
	ids := calendar.IDs()
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		m[id] = i
	}
	return m
}()

func indexOfCalendar(id string) int { return calendarIndex[id] }

// resolveYearMonth cross-validates redundant fields and composes the value.
// Per-field range failures always win over composition failures.
func (p *YearMonthPattern) resolveYearMonth(b *bucket, text string) Result[span.YearMonth] {
	calID := p.template.CalendarID()
	if b.has(fieldCalendar) {
		calID = b.raw(fieldCalendar)
	}
	sys, err := calendar.ForID(calID)
	if err != nil {
		return failure[span.YearMonth](newParseError(NoMatchingCalendarSystem, text, -1, calID))
	}

	// Month: a name and a numeric value may both appear; they must agree.
	month := p.template.Month()
	switch {
	case b.has(fieldMonth) && b.has(fieldMonthText):
		if b.value(fieldMonth) != b.value(fieldMonthText) {
			return failure[span.YearMonth](newParseError(InconsistentMonthTextValue, text, -1))
		}
		month = int(b.value(fieldMonth))
	case b.has(fieldMonth):
		month = int(b.value(fieldMonth))
	case b.has(fieldMonthText):
		month = int(b.value(fieldMonthText))
	}

	// Year: era + year-of-era resolve through the calendar, then must agree
	// with an absolute year when both were written.
	year := p.template.Year()
	switch {
	case b.has(fieldYearOfEra):
		era, _ := p.template.Era()
		if b.has(fieldEra) {
			era = calendar.Era(b.value(fieldEra))
		}
		yoe := int(b.value(fieldYearOfEra))
		if b.twoDigitYear {
			_, templateYoe := p.template.Era()
			yoe = expandTwoDigitYear(yoe, templateYoe)
		}
		resolved, yerr := sys.YearFromEra(era, yoe)
		if yerr != nil {
			return failure[span.YearMonth](newParseError(
				YearOfEraOutOfRange, text, -1, b.raw(fieldYearOfEra), era.String()))
		}
		year = resolved
		if b.has(fieldYear) && int(b.value(fieldYear)) != year {
			return failure[span.YearMonth](newParseError(InconsistentValues, text, -1, "u", "y"))
		}
	case b.has(fieldYear):
		year = int(b.value(fieldYear))
	}

	if year < sys.MinYear() || year > sys.MaxYear() {
		f := fieldYear
		if !b.has(fieldYear) {
			f = fieldYearOfEra
		}
		return failure[span.YearMonth](newParseError(
			FieldValueOutOfRange, text, -1, b.raw(f), string(f.directive())))
	}
	if month < 1 || month > sys.MonthsInYear(year) {
		raw := b.raw(fieldMonth)
		if raw == "" {
			raw = b.raw(fieldMonthText)
		}
		return failure[span.YearMonth](newParseError(MonthOutOfRange, text, -1, raw))
	}

	ym, verr := span.NewYearMonthIn(sys, year, month)
	if verr != nil {
		return failure[span.YearMonth](newParseError(OverallValueOutOfRange, text, -1))
	}
	return success(ym)
}

// MustParse parses or panics with the failure's message.
func (p *YearMonthPattern) MustParse(text string) span.YearMonth {
	return p.Parse(text).MustGet()
}
