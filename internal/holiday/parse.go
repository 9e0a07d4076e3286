package holiday

import (
	"regexp"
	"strconv"
	"strings"

	"festbot/pkg/logx"
)

// ConfigEntry is one user-supplied holiday entry, in either form:
// structured (Name/Month/Day set) or token (a bare "MMDD" / name string).
type ConfigEntry struct {
	Token string

	Name        string
	Month       int
	Day         int
	LengthDays  int
	Aliases     []string
	Description string
}

func (e ConfigEntry) structured() bool {
	return strings.TrimSpace(e.Name) != "" || e.Month != 0 || e.Day != 0
}

var dateTokenPattern = regexp.MustCompile(`^(0[1-9]|1[0-2])(0[1-9]|[12][0-9]|3[01])$`)

// FromConfig parses user holiday entries into definitions.
//
// If any entry is structured, only structured entries are considered.
// Otherwise entries are treated as a flat list of alternating "MMDD" token +
// name pairs. Malformed entries are skipped with a warning; the load as a
// whole never fails.
func FromConfig(items []ConfigEntry, log logx.Logger) []Definition {
	if log.IsZero() {
		log = logx.Nop()
	}
	if len(items) == 0 {
		return nil
	}

	anyStructured := false
	for _, it := range items {
		if it.structured() {
			anyStructured = true
			break
		}
	}

	if anyStructured {
		return fromStructured(items, log)
	}
	return fromTokenPairs(items, log)
}

func fromStructured(items []ConfigEntry, log logx.Logger) []Definition {
	var defs []Definition
	for _, it := range items {
		if !it.structured() {
			continue
		}
		name := strings.TrimSpace(it.Name)
		if name == "" {
			name = "未命名节日"
		}
		if it.Month < 1 || it.Month > 12 || it.Day < 1 || it.Day > 31 {
			log.Warn("invalid custom holiday entry skipped",
				logx.String("name", name), logx.Int("month", it.Month), logx.Int("day", it.Day))
			continue
		}
		length := it.LengthDays
		if length < 1 {
			length = 1
		}
		var aliases []string
		for _, a := range it.Aliases {
			if a = strings.TrimSpace(a); a != "" {
				aliases = append(aliases, a)
			}
		}
		defs = append(defs, Definition{
			Name:        name,
			Month:       it.Month,
			Day:         it.Day,
			LengthDays:  length,
			Aliases:     aliases,
			Description: it.Description,
		})
	}
	return defs
}

func fromTokenPairs(items []ConfigEntry, log logx.Logger) []Definition {
	var defs []Definition
	var buf []string
	for _, it := range items {
		text := strings.TrimSpace(it.Token)
		if text == "" {
			continue
		}
		buf = append(buf, text)
		if len(buf) < 2 {
			continue
		}
		token, name := buf[0], buf[1]
		buf = buf[:0]

		if !dateTokenPattern.MatchString(token) {
			log.Warn("ignoring invalid holiday date token", logx.String("token", token))
			continue
		}
		name = strings.TrimSpace(name)
		if name == "" {
			log.Warn("holiday name empty; skipping date token", logx.String("token", token))
			continue
		}
		month, _ := strconv.Atoi(token[:2])
		day, _ := strconv.Atoi(token[2:])
		defs = append(defs, Definition{Name: name, Month: month, Day: day})
	}
	if len(buf) > 0 {
		log.Warn("unpaired custom holiday entry ignored", logx.String("entry", buf[0]))
	}
	return defs
}
