// Package span holds the thin value types the pattern engine reads and
// writes: a fixed-length Duration counted in nanoseconds and a YearMonth
// bound to a calendar system. Both are plain comparable values; all text
// conversion beyond a debug String lives in pkg/pattern.
package span

import (
	"fmt"
	"math"
	"strings"
)

// Nanosecond conversion factors.
const (
	NanosPerSecond int64 = 1_000_000_000
	NanosPerMinute int64 = 60 * NanosPerSecond
	NanosPerHour   int64 = 60 * NanosPerMinute
	NanosPerDay    int64 = 24 * NanosPerHour
)

// Duration is a signed span of time counted in nanoseconds.
// The full int64 range is representable, so MinDuration has no positive
// counterpart; magnitude arithmetic is done in uint64.
type Duration int64

// Range limits.
const (
	MinDuration Duration = math.MinInt64
	MaxDuration Duration = math.MaxInt64
)

// FromNanos builds a Duration from a nanosecond count.
func FromNanos(ns int64) Duration { return Duration(ns) }

// Nanos returns the signed nanosecond count.
func (d Duration) Nanos() int64 { return int64(d) }

// IsNegative reports whether the duration is below zero.
func (d Duration) IsNegative() bool { return d < 0 }

// Abs splits the duration into a sign and a magnitude. The magnitude of
// MinDuration (1<<63) does not fit in int64, hence the uint64 return.
func (d Duration) Abs() (neg bool, magnitude uint64) {
	if d < 0 {
		return true, uint64(-(int64(d) + 1)) + 1
	}
	return false, uint64(d)
}

// Components is the magnitude of a Duration broken into calendar-free units.
type Components struct {
	Negative bool
	Days     uint64 // total whole days
	Hours    int    // 0..23
	Minutes  int    // 0..59
	Seconds  int    // 0..59
	Nanos    int    // 0..999_999_999
}

// Decompose splits the duration into sign + day/time components.
func (d Duration) Decompose() Components {
	neg, mag := d.Abs()
	return Components{
		Negative: neg,
		Days:     mag / uint64(NanosPerDay),
		Hours:    int(mag / uint64(NanosPerHour) % 24),
		Minutes:  int(mag / uint64(NanosPerMinute) % 60),
		Seconds:  int(mag / uint64(NanosPerSecond) % 60),
		Nanos:    int(mag % uint64(NanosPerSecond)),
	}
}

// ErrDurationRange is wrapped by FromComponents when the composed value does
// not fit in the nanosecond range.
var ErrDurationRange = fmt.Errorf("duration out of range")

// maxMagnitude returns the largest magnitude representable for the sign:
// 1<<63 for negative values, MaxInt64 for positive ones.
func maxMagnitude(neg bool) uint64 {
	if neg {
		return 1 << 63
	}
	return math.MaxInt64
}

// FromComponents composes a Duration from a sign and unit magnitudes.
// Each unit may individually exceed its carry range (90 seconds is fine);
// only the composed total is range-checked.
func FromComponents(neg bool, days, hours, minutes, seconds, nanos uint64) (Duration, error) {
	limit := maxMagnitude(neg)
	var total uint64
	for _, part := range []struct {
		value uint64
		unit  uint64
	}{
		{days, uint64(NanosPerDay)},
		{hours, uint64(NanosPerHour)},
		{minutes, uint64(NanosPerMinute)},
		{seconds, uint64(NanosPerSecond)},
		{nanos, 1},
	} {
		if part.value != 0 && part.value > limit/part.unit {
			return 0, ErrDurationRange
		}
		add := part.value * part.unit
		if total > limit-add {
			return 0, ErrDurationRange
		}
		total += add
	}
	if neg {
		if total == 1<<63 {
			return MinDuration, nil
		}
		return Duration(-int64(total)), nil
	}
	return Duration(total), nil
}

// String renders the duration as sign, total days, time of day and a trimmed
// nanosecond fraction, e.g. "-106751:23:47:16.854775808". Debug only; the
// round-trip pattern in pkg/pattern is the stable text form.
func (d Duration) String() string {
	c := d.Decompose()
	var sb strings.Builder
	if c.Negative {
		sb.WriteByte('-')
	}
	fmt.Fprintf(&sb, "%d:%02d:%02d:%02d", c.Days, c.Hours, c.Minutes, c.Seconds)
	if c.Nanos != 0 {
		frac := fmt.Sprintf("%09d", c.Nanos)
		sb.WriteByte('.')
		sb.WriteString(strings.TrimRight(frac, "0"))
	}
	return sb.String()
}
