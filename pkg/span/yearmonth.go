package span

import (
	"fmt"

	"github.com/dkoosis/spanfmt/pkg/calendar"
)

// YearMonth is a calendar-bound year + month with no day component.
// The zero value is January of year 1 in the ISO calendar.
type YearMonth struct {
	year       int
	month      int
	calendarID string
}

// NewYearMonth builds a YearMonth in the ISO calendar.
func NewYearMonth(year, month int) (YearMonth, error) {
	return NewYearMonthIn(calendar.ISO{}, year, month)
}

// NewYearMonthIn builds a YearMonth in the given calendar system.
func NewYearMonthIn(sys calendar.System, year, month int) (YearMonth, error) {
	if year < sys.MinYear() || year > sys.MaxYear() {
		return YearMonth{}, fmt.Errorf("year %d outside range %d..%d for calendar %s",
			year, sys.MinYear(), sys.MaxYear(), sys.ID())
	}
	if month < 1 || month > sys.MonthsInYear(year) {
		return YearMonth{}, fmt.Errorf("month %d outside range 1..%d for calendar %s",
			month, sys.MonthsInYear(year), sys.ID())
	}
	return YearMonth{year: year, month: month, calendarID: sys.ID()}, nil
}

// MustYearMonth is NewYearMonth for known-good literals; it panics on error.
func MustYearMonth(year, month int) YearMonth {
	ym, err := NewYearMonth(year, month)
	if err != nil {
		panic(err)
	}
	return ym
}

// Year returns the absolute (signed) year.
func (ym YearMonth) Year() int {
	if ym.calendarID == "" {
		return 1
	}
	return ym.year
}

// Month returns the 1-based month of year.
func (ym YearMonth) Month() int {
	if ym.calendarID == "" {
		return 1
	}
	return ym.month
}

// CalendarID returns the identifier of the calendar the value is bound to.
func (ym YearMonth) CalendarID() string {
	if ym.calendarID == "" {
		return "ISO"
	}
	return ym.calendarID
}

// Era decomposes the year into era + year-of-era using the bound calendar.
func (ym YearMonth) Era() (calendar.Era, int) {
	sys, err := calendar.ForID(ym.CalendarID())
	if err != nil {
		// The constructor only accepts registered systems.
		return calendar.ISO{}.EraOf(ym.Year())
	}
	return sys.EraOf(ym.Year())
}

// String renders the value in round-trip layout, e.g. "2026-08 ISO".
func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d %s", ym.Year(), ym.Month(), ym.CalendarID())
}
