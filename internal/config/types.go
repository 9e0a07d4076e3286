package config

type Config struct {
	Telegram TelegramConfig `json:"telegram"`
	Logging  LoggingConfig  `json:"logging"`

	// Storage configures the delivery ledger backend.
	// If omitted, the file driver with the default path is used.
	Storage *StorageConfig `json:"storage,omitempty"`

	Greeter GreeterConfig `json:"greeter"`
}

type TelegramConfig struct {
	Token        string  `json:"token"`
	OwnerUserIDs []int64 `json:"owner_user_ids"`
	GroupLog     string  `json:"group_log"`
	// PollTimeout is a Go duration string (e.g. "10s", "2m").
	PollTimeout string `json:"poll_timeout"`
}

type LoggingConfig struct {
	Level    string          `json:"level"`
	Console  bool            `json:"console"`
	File     LoggingFile     `json:"file"`
	Telegram LoggingTelegram `json:"telegram"`
}

type LoggingFile struct {
	Enabled bool   `json:"enabled"`
	Path    string `json:"path"`
}

type LoggingTelegram struct {
	Enabled    bool   `json:"enabled"`
	ThreadID   int    `json:"thread_id"`
	MinLevel   string `json:"min_level"`
	RatePerSec int    `json:"rate_per_sec"`
}

// StorageConfig controls the delivery ledger backend.
//
// Example:
//
//	"storage": { "driver": "file", "path": "./data/deliveries.json" }
type StorageConfig struct {
	Driver      string `json:"driver"`
	Path        string `json:"path"`
	BusyTimeout string `json:"busy_timeout,omitempty"` // Go duration string (sqlite)
}

// GreeterConfig controls holiday greeting delivery.
//
// Invalid leaf values never abort startup: they are clamped to documented
// defaults with a logged warning when the greeter derives its settings.
type GreeterConfig struct {
	// Timezone is an IANA zone name. Default "Asia/Shanghai".
	Timezone string `json:"timezone,omitempty"`
	// TriggerTime is "HH:MM" local to Timezone. Default "08:00".
	TriggerTime string `json:"trigger_time,omitempty"`
	// Cron optionally replaces TriggerTime with a cron spec
	// (e.g. "0 8 * * *"), evaluated in Timezone.
	Cron string `json:"cron,omitempty"`

	// Targets are chat IDs (decimal strings) greeted on each tick.
	Targets []string `json:"targets,omitempty"`

	// ChatFilterMode is "disabled", "whitelist" or "blacklist".
	ChatFilterMode string   `json:"chat_filter_mode,omitempty"`
	ChatFilterList []string `json:"chat_filter_list,omitempty"`

	// RepeatMode is "first-day" (greet only the first day of multi-day
	// holidays) or "every-day".
	RepeatMode string `json:"repeat_mode,omitempty"`
	// CooldownHours overrides the cooldown derived from RepeatMode.
	CooldownHours *int `json:"cooldown_hours,omitempty"`

	Provider ProviderConfig `json:"provider,omitempty"`
	// Style selects the prompt style tag ("warm", "formal", "cheerful").
	Style string `json:"style,omitempty"`
	// MaxRetries bounds extra generation attempts after the first (>= 0).
	MaxRetries int `json:"max_retries,omitempty"`

	AllowManualTrigger *bool `json:"allow_manual_trigger,omitempty"`

	// CustomHolidays accepts either structured records or a flat list of
	// alternating "MMDD" + name string pairs.
	CustomHolidays []CustomHoliday `json:"custom_holidays,omitempty"`
	// HolidaysICS optionally imports additional all-day events from an ICS file.
	HolidaysICS string `json:"holidays_ics,omitempty"`

	// FallbackMessages are templates with {holiday}/{date}/{year} placeholders.
	FallbackMessages []string `json:"fallback_messages,omitempty"`
}

type ProviderConfig struct {
	// BaseURL of an OpenAI-compatible chat completion endpoint.
	// Empty disables generation (fallback templates are used directly).
	BaseURL string `json:"base_url,omitempty"`
	Model   string `json:"model,omitempty"`
	// APIKeyEnv names the environment variable holding the API key.
	APIKeyEnv string `json:"api_key_env,omitempty"`
}

// CustomHoliday is one entry of greeter.custom_holidays.
//
// Structured form: {"name": ..., "month": ..., "day": ..., ...}.
// Token form: a bare string; entries then pair up as "MMDD", "name", ...
type CustomHoliday struct {
	Token string

	Name        string
	Month       int
	Day         int
	LengthDays  int
	Aliases     []string
	Description string
}
