// Package culture supplies the locale snapshots the pattern engine formats
// and parses against: month/day/era name tables (with genitive variants),
// numeric separators, and AM/PM designators.
//
// A Culture is an immutable value. The engine never reads process-wide
// locale state; callers either pass a Culture explicitly or thread an
// Ambient holder through the code that owns it.
package culture

import (
	"fmt"

	"golang.org/x/text/language"

	"github.com/dkoosis/spanfmt/pkg/calendar"
)

const (
	monthsPerYear = 12
	daysPerWeek   = 7
)

// Culture is a snapshot of the locale-specific text the engine needs.
// All name slices are 0-based (index 0 = January / Sunday). Genitive slices
// may be empty; lookups fall back to the plain forms.
type Culture struct {
	Name string       `yaml:"name"`
	Tag  language.Tag `yaml:"-"`

	MonthNames              []string `yaml:"month_names"`
	MonthNamesGenitive      []string `yaml:"month_names_genitive,omitempty"`
	ShortMonthNames         []string `yaml:"short_month_names"`
	ShortMonthNamesGenitive []string `yaml:"short_month_names_genitive,omitempty"`

	DayNames      []string `yaml:"day_names"`
	ShortDayNames []string `yaml:"short_day_names"`

	EraNamesCommon       []string `yaml:"era_names_common"`
	EraNamesBeforeCommon []string `yaml:"era_names_before_common"`

	DateSep    string `yaml:"date_separator"`
	TimeSep    string `yaml:"time_separator"`
	DecimalSep string `yaml:"decimal_separator"`

	AM string `yaml:"am_designator"`
	PM string `yaml:"pm_designator"`
}

// MonthName returns the name for a 1-based month index.
// Genitive lookups fall back to the plain form when the culture carries no
// genitive table, since plain names are valid genitive matches.
func (c Culture) MonthName(month int, abbreviated, genitive bool) string {
	plain := c.MonthNames
	gen := c.MonthNamesGenitive
	if abbreviated {
		plain = c.ShortMonthNames
		gen = c.ShortMonthNamesGenitive
	}
	if genitive && month-1 < len(gen) && gen[month-1] != "" {
		return gen[month-1]
	}
	if month-1 < len(plain) {
		return plain[month-1]
	}
	return ""
}

// DayName returns the name for a day of week (0 = Sunday).
func (c Culture) DayName(day int, abbreviated bool) string {
	names := c.DayNames
	if abbreviated {
		names = c.ShortDayNames
	}
	if day < len(names) {
		return names[day]
	}
	return ""
}

// EraNames returns the recognized alternatives for an era, primary name first.
func (c Culture) EraNames(e calendar.Era) []string {
	if e == calendar.EraBeforeCommon {
		return c.EraNamesBeforeCommon
	}
	return c.EraNamesCommon
}

// Validate reports the first structural problem with the snapshot.
func (c Culture) Validate() error {
	if len(c.MonthNames) != monthsPerYear {
		return fmt.Errorf("culture %q: %d month names, want %d", c.Name, len(c.MonthNames), monthsPerYear)
	}
	if len(c.ShortMonthNames) != monthsPerYear {
		return fmt.Errorf("culture %q: %d short month names, want %d", c.Name, len(c.ShortMonthNames), monthsPerYear)
	}
	if len(c.DayNames) != daysPerWeek {
		return fmt.Errorf("culture %q: %d day names, want %d", c.Name, len(c.DayNames), daysPerWeek)
	}
	if len(c.EraNamesCommon) == 0 || len(c.EraNamesBeforeCommon) == 0 {
		return fmt.Errorf("culture %q: missing era names", c.Name)
	}
	if c.DateSep == "" || c.TimeSep == "" || c.DecimalSep == "" {
		return fmt.Errorf("culture %q: missing separator", c.Name)
	}
	return nil
}

// Invariant returns the culture-independent snapshot used by standard
// patterns. English names, "/" ":" "." separators. Formatting with the
// invariant culture yields identical text on every host.
func Invariant() Culture {
	return Culture{
		Name: "invariant",
		Tag:  language.Und,
		MonthNames: []string{
			"January", "February", "March", "April", "May", "June",
			"July", "August", "September", "October", "November", "December",
		},
		ShortMonthNames: []string{
			"Jan", "Feb", "Mar", "Apr", "May", "Jun",
			"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
		},
		DayNames: []string{
			"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
		},
		ShortDayNames: []string{
			"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat",
		},
		EraNamesCommon:       []string{"CE", "AD"},
		EraNamesBeforeCommon: []string{"BCE", "BC"},
		DateSep:              "/",
		TimeSep:              ":",
		DecimalSep:           ".",
		AM:                   "AM",
		PM:                   "PM",
	}
}

// EnUS returns the United States English culture.
func EnUS() Culture {
	c := Invariant()
	c.Name = "en-US"
	c.Tag = language.AmericanEnglish
	return c
}

// FiFI returns the Finnish culture. Finnish genitive (partitive) month names
// extend the plain forms with a suffix, e.g. "tammikuu" -> "tammikuuta",
// which makes name matching order-sensitive.
func FiFI() Culture {
	return Culture{
		Name: "fi-FI",
		Tag:  language.Finnish,
		MonthNames: []string{
			"tammikuu", "helmikuu", "maaliskuu", "huhtikuu", "toukokuu", "kesäkuu",
			"heinäkuu", "elokuu", "syyskuu", "lokakuu", "marraskuu", "joulukuu",
		},
		MonthNamesGenitive: []string{
			"tammikuuta", "helmikuuta", "maaliskuuta", "huhtikuuta", "toukokuuta", "kesäkuuta",
			"heinäkuuta", "elokuuta", "syyskuuta", "lokakuuta", "marraskuuta", "joulukuuta",
		},
		ShortMonthNames: []string{
			"tammi", "helmi", "maalis", "huhti", "touko", "kesä",
			"heinä", "elo", "syys", "loka", "marras", "joulu",
		},
		DayNames: []string{
			"sunnuntai", "maanantai", "tiistai", "keskiviikko", "torstai", "perjantai", "lauantai",
		},
		ShortDayNames: []string{"su", "ma", "ti", "ke", "to", "pe", "la"},
		EraNamesCommon:       []string{"jKr.", "jKr"},
		EraNamesBeforeCommon: []string{"eKr.", "eKr"},
		DateSep:              ".",
		TimeSep:              ".",
		DecimalSep:           ",",
		AM:                   "ap.",
		PM:                   "ip.",
	}
}

// builtins lists the cultures shipped with the library, in matcher order.
// Invariant is first so it is the matcher fallback.
var builtins = []Culture{Invariant(), EnUS(), FiFI()}

var matcher language.Matcher

func init() {
	tags := make([]language.Tag, len(builtins))
	for i, c := range builtins {
		tags[i] = c.Tag
	}
	matcher = language.NewMatcher(tags)
}

// Builtins returns copies of the cultures shipped with the library.
func Builtins() []Culture {
	out := make([]Culture, len(builtins))
	copy(out, builtins)
	return out
}

// ForTag resolves a BCP-47 tag to the closest built-in culture.
// The second return is false when the matcher fell back to the invariant
// culture with no confidence.
func ForTag(tag language.Tag) (Culture, bool) {
	_, idx, conf := matcher.Match(tag)
	if idx < 0 || idx >= len(builtins) {
		return Invariant(), false
	}
	return builtins[idx], conf >= language.High
}
