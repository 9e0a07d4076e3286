package greeter

import (
	"strconv"
	"strings"
	"time"

	"festbot/internal/config"
	"festbot/pkg/logx"
)

const (
	DefaultTimezone = "Asia/Shanghai"

	defaultTriggerHour   = 8
	defaultTriggerMinute = 0

	// PruneInterval and RetentionWindow bound ledger growth: every week,
	// records older than roughly 13 months are dropped.
	PruneInterval   = 7 * 24 * time.Hour
	RetentionWindow = 400 * 24 * time.Hour
)

// Settings is the validated, clamped form of config.GreeterConfig.
// Bad leaf values never abort startup; they fall back to documented
// defaults with a warning (configuration defects are recoverable).
type Settings struct {
	Location      *time.Location
	TriggerHour   int
	TriggerMinute int
	CronSpec      string

	Targets []string

	FilterMode string // "disabled", "whitelist", "blacklist"
	FilterList []string

	RepeatMode    string // "first-day", "every-day"
	CooldownHours *int

	Style       string
	MaxRetries  int
	AllowManual bool

	FallbackMessages []string
}

// SettingsFromConfig clamps and defaults every field of the raw config.
func SettingsFromConfig(cfg config.GreeterConfig, log logx.Logger) Settings {
	if log.IsZero() {
		log = logx.Nop()
	}
	s := Settings{}

	tzName := strings.TrimSpace(cfg.Timezone)
	if tzName == "" {
		tzName = DefaultTimezone
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		log.Warn("unknown timezone; falling back", logx.String("tz", tzName), logx.String("fallback", DefaultTimezone))
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			// The default zone ships with the zoneinfo database; treat a
			// missing one like a stripped-down environment and keep UTC.
			loc = time.UTC
		}
	}
	s.Location = loc

	s.TriggerHour, s.TriggerMinute = parseTriggerTime(cfg.TriggerTime, log)
	s.CronSpec = strings.TrimSpace(cfg.Cron)

	for _, t := range cfg.Targets {
		if t = strings.TrimSpace(t); t != "" {
			s.Targets = append(s.Targets, t)
		}
	}

	mode := strings.ToLower(strings.TrimSpace(cfg.ChatFilterMode))
	if mode == "" {
		mode = "disabled"
	}
	if mode != "disabled" && mode != "whitelist" && mode != "blacklist" {
		log.Warn("invalid chat filter mode; using disabled", logx.String("mode", mode))
		mode = "disabled"
	}
	s.FilterMode = mode
	for _, e := range cfg.ChatFilterList {
		if e = strings.TrimSpace(e); e != "" {
			s.FilterList = append(s.FilterList, e)
		}
	}

	repeat := strings.ToLower(strings.TrimSpace(cfg.RepeatMode))
	if repeat == "" {
		repeat = "first-day"
	}
	if repeat != "first-day" && repeat != "every-day" {
		log.Warn("invalid repeat mode; using first-day", logx.String("mode", repeat))
		repeat = "first-day"
	}
	s.RepeatMode = repeat
	s.CooldownHours = cfg.CooldownHours

	s.Style = strings.TrimSpace(cfg.Style)
	if s.Style == "" {
		s.Style = "warm"
	}
	s.MaxRetries = cfg.MaxRetries
	if s.MaxRetries < 0 {
		s.MaxRetries = 0
	}
	s.AllowManual = cfg.AllowManualTrigger == nil || *cfg.AllowManualTrigger

	for _, m := range cfg.FallbackMessages {
		if m = strings.TrimSpace(m); m != "" {
			s.FallbackMessages = append(s.FallbackMessages, m)
		}
	}

	return s
}

// Cooldown returns the effective cooldown in hours: an explicit override
// wins, otherwise first-day mode dedups for 24h and every-day mode uses the
// once-per-calendar-day rule (cooldown 0).
func (s Settings) Cooldown() int {
	if s.CooldownHours != nil {
		return *s.CooldownHours
	}
	if s.RepeatMode == "every-day" {
		return 0
	}
	return 24
}

func parseTriggerTime(raw string, log logx.Logger) (hour, minute int) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultTriggerHour, defaultTriggerMinute
	}
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		log.Warn("invalid trigger time; using default", logx.String("raw", raw))
		return defaultTriggerHour, defaultTriggerMinute
	}
	h, errH := strconv.Atoi(strings.TrimSpace(parts[0]))
	m, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	if errH != nil || errM != nil {
		log.Warn("invalid trigger time; using default", logx.String("raw", raw))
		return defaultTriggerHour, defaultTriggerMinute
	}
	return clamp(h, 0, 23), clamp(m, 0, 59)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
