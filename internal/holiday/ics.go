package holiday

import (
	"fmt"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"

	"festbot/pkg/logx"
)

// LoadICS imports holiday definitions from an ICS file.
//
// Only all-day VEVENTs are considered. Events sharing a SUMMARY merge into
// one definition: the first event sets the canonical month/day and window
// length, and every event's concrete year is recorded as a dynamic date, so
// a feed that lists a shifting holiday once per year yields the same
// structure as a hand-written override table.
//
// Per-event problems are logged and skipped; only an unreadable or
// unparsable file is an error.
func LoadICS(path string, log logx.Logger) ([]Definition, error) {
	if log.IsZero() {
		log = logx.Nop()
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read ics: %w", err)
	}
	cal, err := ical.ParseCalendar(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse ics: %w", err)
	}

	byName := map[string]int{}
	var defs []Definition

	for _, ve := range cal.Events() {
		name, start, length, ok := parseAllDayEvent(ve)
		if !ok {
			log.Debug("skipping non-all-day or incomplete vevent")
			continue
		}

		idx, seen := byName[name]
		if !seen {
			d := Definition{
				Name:         name,
				Month:        int(start.Month()),
				Day:          start.Day(),
				LengthDays:   length,
				DynamicDates: map[int]MonthDay{},
			}
			if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
				d.Description = p.Value
			}
			defs = append(defs, d)
			idx = len(defs) - 1
			byName[name] = idx
		}
		defs[idx].DynamicDates[start.Year()] = MonthDay{Month: int(start.Month()), Day: start.Day()}
	}

	log.Info("ics holidays loaded", logx.String("path", path), logx.Int("count", len(defs)))
	return defs, nil
}

func parseAllDayEvent(ve *ical.VEvent) (name string, start time.Time, length int, ok bool) {
	sp := ve.GetProperty(ical.ComponentPropertySummary)
	if sp == nil || strings.TrimSpace(sp.Value) == "" {
		return "", time.Time{}, 0, false
	}
	name = strings.TrimSpace(sp.Value)

	dtStart := ve.GetProperty(ical.ComponentPropertyDtStart)
	if dtStart == nil || !isAllDay(dtStart) {
		return "", time.Time{}, 0, false
	}
	start, err := time.Parse("20060102", strings.TrimSpace(dtStart.Value))
	if err != nil {
		return "", time.Time{}, 0, false
	}

	length = 1
	if dtEnd := ve.GetProperty(ical.ComponentPropertyDtEnd); dtEnd != nil {
		// DTEND of an all-day event is exclusive.
		if end, err := time.Parse("20060102", strings.TrimSpace(dtEnd.Value)); err == nil {
			if days := int(end.Sub(start).Hours() / 24); days > 1 {
				length = days
			}
		}
	}
	return name, start, length, true
}

// isAllDay reports whether a DTSTART/DTEND property is a date-only value
// (VALUE=DATE parameter, or a value without a time component).
func isAllDay(p *ical.IANAProperty) bool {
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
