package calendar

import (
	"fmt"
	"time"
)

// CivilTime is a zone-less wall clock: what a person in some timezone would
// read off their watch. It is only ever produced by projecting an absolute
// instant through a named IANA timezone, and it is the only form in which
// times leave this engine for rendering. Nothing in this package mutates
// process-wide timezone state.
type CivilTime struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// CivilDate is the date part of a CivilTime.
type CivilDate struct {
	Year  int `json:"year"`
	Month int `json:"month"`
	Day   int `json:"day"`
}

func (c CivilTime) Date() CivilDate {
	return CivilDate{Year: c.Year, Month: c.Month, Day: c.Day}
}

func (c CivilTime) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d", c.Year, c.Month, c.Day, c.Hour, c.Minute)
}

func (d CivilDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// MarshalText lets CivilDate serve as a JSON map key.
func (d CivilDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *CivilDate) UnmarshalText(b []byte) error {
	t, err := time.Parse("2006-01-02", string(b))
	if err != nil {
		return err
	}
	d.Year, d.Month, d.Day = t.Year(), int(t.Month()), t.Day()
	return nil
}

// Weekday returns the day of week for the date (0 = Sunday). Computed at
// noon so that dates whose midnight falls into a DST gap still resolve.
func (d CivilDate) Weekday() int {
	return int(time.Date(d.Year, time.Month(d.Month), d.Day, 12, 0, 0, 0, time.UTC).Weekday())
}

// Next returns the following calendar day.
func (d CivilDate) Next() CivilDate {
	t := time.Date(d.Year, time.Month(d.Month), d.Day+1, 12, 0, 0, 0, time.UTC)
	return CivilDate{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// After reports whether d is a later calendar day than other.
func (d CivilDate) After(other CivilDate) bool {
	if d.Year != other.Year {
		return d.Year > other.Year
	}
	if d.Month != other.Month {
		return d.Month > other.Month
	}
	return d.Day > other.Day
}

// LoadTimezone resolves an IANA timezone name. Unknown or empty names are
// configuration errors, wrapped in ErrInvalidTimezone.
func LoadTimezone(name string) (*time.Location, error) {
	if name == "" || name == "Local" {
		// "Local" would silently bind the result to whatever zone the
		// process happens to run in, the exact failure mode this seam
		// exists to prevent.
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidTimezone, name)
	}
	return loc, nil
}

// ToCivil projects an absolute instant into the wall clock of loc.
func ToCivil(instant time.Time, loc *time.Location) CivilTime {
	t := instant.In(loc)
	return CivilTime{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
	}
}

// ToInstant converts a wall clock in loc back to an absolute instant (UTC).
// It is total over the two DST boundary cases:
//
//   - A non-existent wall clock (spring-forward gap) normalizes forward by
//     the width of the gap, landing on the post-gap instant.
//   - An ambiguous wall clock (fall-back overlap) resolves to the earlier
//     of the two candidate instants.
func ToInstant(c CivilTime, loc *time.Location) time.Time {
	t := time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, loc)

	if ToCivil(t, loc) != c {
		// Spring-forward gap: the wall clock does not exist in loc, and
		// which side of the transition time.Date lands on is unspecified.
		// Interpreting the wall clock with the pre-transition offset gives
		// an instant just past the transition, which is the wall clock
		// pushed forward by exactly the width of the gap.
		_, offset := t.Add(-12 * time.Hour).In(loc).Zone()
		return time.Date(c.Year, time.Month(c.Month), c.Day, c.Hour, c.Minute, 0, 0, time.UTC).
			Add(-time.Duration(offset) * time.Second)
	}

	// During the fall-back overlap the same wall clock names two instants
	// one transition apart. time.Date picks one of them; probe the other
	// side of the transition and keep the earlier match.
	for _, step := range []time.Duration{-time.Hour, -30 * time.Minute} {
		if cand := t.Add(step); ToCivil(cand, loc) == c {
			t = cand
			break
		}
	}

	return t.UTC()
}
