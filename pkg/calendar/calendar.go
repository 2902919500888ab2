// Package calendar defines the calendar systems the pattern engine composes
// year/month fields against. A System maps between absolute years and
// era-relative years and owns the per-year month count. Systems are
// registered by a case-sensitive identifier so that pattern text can name
// them (the `c` directive).
package calendar

import (
	"fmt"
)

// Era identifies the era half of an era-relative year.
type Era int

const (
	// EraCommon is the common era (CE / AD). Absolute years >= 1.
	EraCommon Era = iota
	// EraBeforeCommon is the era before the common era (BCE / BC).
	// Absolute year 0 is 1 BCE.
	EraBeforeCommon
)

// String returns the canonical era name.
func (e Era) String() string {
	switch e {
	case EraCommon:
		return "CE"
	case EraBeforeCommon:
		return "BCE"
	default:
		return fmt.Sprintf("Era(%d)", int(e))
	}
}

// System converts between absolute years and era-relative years, and
// validates month numbers. Implementations are immutable and safe for
// concurrent use.
type System interface {
	// ID returns the registry identifier, e.g. "ISO". Matching is case-sensitive.
	ID() string
	// MinYear and MaxYear bound the absolute year range.
	MinYear() int
	MaxYear() int
	// YearFromEra converts an era + year-of-era pair to an absolute year.
	YearFromEra(era Era, yearOfEra int) (int, error)
	// EraOf decomposes an absolute year into its era and year-of-era.
	EraOf(year int) (Era, int)
	// MonthsInYear returns the number of months in the given absolute year.
	MonthsInYear(year int) int
}

// ErrUnknownSystem is wrapped by ForID when no registered calendar matches.
var ErrUnknownSystem = fmt.Errorf("no matching calendar system")

// YearOfEraError reports a year-of-era outside the range a system supports.
type YearOfEraError struct {
	System    string
	Era       Era
	YearOfEra int
	Min, Max  int
}

func (e *YearOfEraError) Error() string {
	return fmt.Sprintf("calendar %s: year of era %d outside range %d..%d for era %s",
		e.System, e.YearOfEra, e.Min, e.Max, e.Era)
}

// registry holds all known systems. Populated at init; read-only afterwards.
var registry = map[string]System{
	"ISO": ISO{},
}

// ForID looks up a registered calendar system by its case-sensitive identifier.
func ForID(id string) (System, error) {
	if sys, ok := registry[id]; ok {
		return sys, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSystem, id)
}

// IDs returns the identifiers of all registered systems.
func IDs() []string {
	ids := make([]string, 0, len(registry))
	for id := range registry {
		ids = append(ids, id)
	}
	return ids
}

// ISO is the proleptic Gregorian calendar with absolute years -9998..9999.
// Year-of-era runs 1..9999 in both eras; absolute year 0 is 1 BCE.
type ISO struct{}

const (
	isoMinYear      = -9998
	isoMaxYear      = 9999
	isoMaxYearOfEra = 9999
)

// ID implements System.
func (ISO) ID() string { return "ISO" }

// MinYear implements System.
func (ISO) MinYear() int { return isoMinYear }

// MaxYear implements System.
func (ISO) MaxYear() int { return isoMaxYear }

// YearFromEra implements System.
func (ISO) YearFromEra(era Era, yearOfEra int) (int, error) {
	if yearOfEra < 1 || yearOfEra > isoMaxYearOfEra {
		return 0, &YearOfEraError{System: "ISO", Era: era, YearOfEra: yearOfEra, Min: 1, Max: isoMaxYearOfEra}
	}
	switch era {
	case EraBeforeCommon:
		return 1 - yearOfEra, nil
	default:
		return yearOfEra, nil
	}
}

// EraOf implements System.
func (ISO) EraOf(year int) (Era, int) {
	if year < 1 {
		return EraBeforeCommon, 1 - year
	}
	return EraCommon, year
}

// MonthsInYear implements System.
func (ISO) MonthsInYear(int) int { return 12 }
