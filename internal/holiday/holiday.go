// Package holiday models the greeting calendar: which holidays are in effect
// on a given date, and on which day of a multi-day holiday that date falls.
package holiday

import (
	"regexp"
	"strings"
	"time"
)

// MonthDay is a per-year substitute date for holidays whose Gregorian date
// shifts year to year (lunar-calendar-derived holidays).
type MonthDay struct {
	Month int
	Day   int
}

// Definition describes one holiday. Immutable after construction.
type Definition struct {
	Name        string
	Month       int
	Day         int
	LengthDays  int
	Aliases     []string
	Description string
	// DynamicDates maps year -> override start date. When a year has no
	// entry, Month/Day apply.
	DynamicDates map[int]MonthDay
}

var slugNonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug returns the normalized identity key for the definition: lowercase,
// non-alphanumeric runs collapsed to "-", trimmed. Names with no usable
// characters (e.g. purely CJK names) share the fixed "holiday" slug.
func (d Definition) Slug() string {
	base := slugNonAlnum.ReplaceAllString(strings.ToLower(d.Name), "-")
	base = strings.Trim(base, "-")
	if base == "" {
		return "holiday"
	}
	return base
}

// Duration returns the holiday's window length in days, at least 1.
func (d Definition) Duration() int {
	if d.LengthDays < 1 {
		return 1
	}
	return d.LengthDays
}

// StartInYear resolves the holiday's start date for the given year, applying
// the per-year override when present. The second result is false when the
// resolved month/day is not a valid date in that year (e.g. Feb 30); that is
// a normal "does not occur" outcome, not an error.
//
// A window is always evaluated within a single year: a holiday whose window
// crosses Dec 31 needs two dynamic-date entries, one per adjoining year.
func (d Definition) StartInYear(year int) (time.Time, bool) {
	month, day := d.Month, d.Day
	if ov, ok := d.DynamicDates[year]; ok {
		month, day = ov.Month, ov.Day
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range days (Feb 30 -> Mar 2); reject those.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

// OccurrenceOn returns the occurrence of this holiday covering date, or nil
// when date falls outside the holiday's window for its year.
func (d Definition) OccurrenceOn(date time.Time) *Occurrence {
	start, ok := d.StartInYear(date.Year())
	if !ok {
		return nil
	}
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	offset := int(day.Sub(start).Hours() / 24)
	if offset < 0 || offset >= d.Duration() {
		return nil
	}
	return &Occurrence{Definition: d, Date: day, Start: start}
}

// Occurrence pairs a definition with a concrete date inside its window.
// Computed fresh on every query; only its Key is ever persisted.
type Occurrence struct {
	Definition Definition
	Date       time.Time
	Start      time.Time
}

// Key is the dedup unit: slug plus evaluated date, so the same holiday in
// different years produces distinct keys.
func (o Occurrence) Key() string {
	return o.Definition.Slug() + "-" + o.Date.Format("2006-01-02")
}

func (o Occurrence) DayOffset() int {
	return int(o.Date.Sub(o.Start).Hours() / 24)
}

func (o Occurrence) IsFirstDay() bool { return o.DayOffset() == 0 }

// Payload is the occurrence view handed to the text generator.
type Payload struct {
	Name        string   `json:"name"`
	Date        string   `json:"date"`
	StartDate   string   `json:"start_date"`
	LengthDays  int      `json:"length_days"`
	DayOffset   int      `json:"day_offset"`
	IsFirstDay  bool     `json:"is_first_day"`
	Aliases     []string `json:"aliases"`
	Description string   `json:"description"`
	Slug        string   `json:"slug"`
}

func (o Occurrence) Payload() Payload {
	return Payload{
		Name:        o.Definition.Name,
		Date:        o.Date.Format("2006-01-02"),
		StartDate:   o.Start.Format("2006-01-02"),
		LengthDays:  o.Definition.Duration(),
		DayOffset:   o.DayOffset(),
		IsFirstDay:  o.IsFirstDay(),
		Aliases:     append([]string(nil), o.Definition.Aliases...),
		Description: o.Definition.Description,
		Slug:        o.Definition.Slug(),
	}
}

// Calendar resolves dates against a fixed, ordered set of definitions.
// It is a pure lookup structure: safe for concurrent use.
type Calendar struct {
	defs []Definition
}

// NewCalendar merges custom definitions over the built-in defaults.
// A custom definition whose slug matches a built-in replaces it entirely;
// replacements keep registration order by appending at the end, as the
// original tool did.
func NewCalendar(custom []Definition) *Calendar {
	defs := append([]Definition(nil), Defaults()...)
	for _, item := range custom {
		slug := item.Slug()
		kept := defs[:0]
		for _, d := range defs {
			if d.Slug() != slug {
				kept = append(kept, d)
			}
		}
		defs = append(kept, item)
	}
	return &Calendar{defs: defs}
}

// HolidaysOn evaluates every definition against date, preserving
// registration order, returning only matches.
func (c *Calendar) HolidaysOn(date time.Time) []Occurrence {
	var out []Occurrence
	for _, d := range c.defs {
		if occ := d.OccurrenceOn(date); occ != nil {
			out = append(out, *occ)
		}
	}
	return out
}

// Definitions returns a copy of the registered definitions.
func (c *Calendar) Definitions() []Definition {
	return append([]Definition(nil), c.defs...)
}
