package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
  "telegram": {"token": "123:abc", "owner_user_ids": [42], "poll_timeout": "15s"},
  "logging": {"level": "debug", "console": true},
  "storage": {"driver": "file", "path": "./x/led.json"},
  "greeter": {
    "timezone": "Asia/Shanghai",
    "trigger_time": "08:30",
    "targets": ["100", "200"],
    "repeat_mode": "every-day",
    "cooldown_hours": 6,
    "style": "formal",
    "custom_holidays": [
      "0214", "情人节",
      {"name": "厂庆", "month": 9, "day": 1, "length_days": 2}
    ]
  }
}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.Token != "123:abc" || len(cfg.Telegram.OwnerUserIDs) != 1 {
		t.Fatalf("telegram config wrong: %+v", cfg.Telegram)
	}
	if cfg.Storage == nil || cfg.Storage.Path != "./x/led.json" {
		t.Fatalf("storage config wrong: %+v", cfg.Storage)
	}
	if cfg.Greeter.TriggerTime != "08:30" || len(cfg.Greeter.Targets) != 2 {
		t.Fatalf("greeter config wrong: %+v", cfg.Greeter)
	}
	if cfg.Greeter.CooldownHours == nil || *cfg.Greeter.CooldownHours != 6 {
		t.Fatalf("cooldown override missing: %+v", cfg.Greeter.CooldownHours)
	}

	hs := cfg.Greeter.CustomHolidays
	if len(hs) != 3 {
		t.Fatalf("got %d custom holidays, want 3", len(hs))
	}
	if hs[0].Token != "0214" || hs[1].Token != "情人节" {
		t.Fatalf("token entries wrong: %+v", hs[:2])
	}
	if hs[2].Name != "厂庆" || hs[2].Month != 9 || hs[2].LengthDays != 2 {
		t.Fatalf("structured entry wrong: %+v", hs[2])
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
telegram:
  token: "123:abc"
logging:
  level: info
  console: true
greeter:
  trigger_time: "09:00"
  targets:
    - "300"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Telegram.Token != "123:abc" || cfg.Greeter.TriggerTime != "09:00" {
		t.Fatalf("yaml config wrong: %+v", cfg)
	}
	if len(cfg.Greeter.Targets) != 1 || cfg.Greeter.Targets[0] != "300" {
		t.Fatalf("targets wrong: %v", cfg.Greeter.Targets)
	}
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	path := writeConfig(t, "config.json", `{"telegram": {"token": "t", "typo_field": 1}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("unknown field must be rejected")
	}
}

func TestLoadRejectsUnknownCustomHolidayFields(t *testing.T) {
	path := writeConfig(t, "config.json",
		`{"greeter": {"custom_holidays": [{"name": "x", "month": 1, "day": 1, "extra": true}]}}`)
	if _, err := Load(path); err == nil {
		t.Fatal("unknown custom holiday field must be rejected")
	}
}

func TestLoadRejectsTrailingData(t *testing.T) {
	path := writeConfig(t, "config.json", `{"telegram": {"token": "t"}} {"again": true}`)
	if _, err := Load(path); err == nil {
		t.Fatal("trailing document must be rejected")
	}
}

func TestParseDurationField(t *testing.T) {
	d, err := ParseDurationOrDefault("telegram.poll_timeout", "", 10*time.Second)
	if err != nil || d != 10*time.Second {
		t.Fatalf("empty duration = %v, %v", d, err)
	}
	d, err = ParseDurationOrDefault("telegram.poll_timeout", "90s", 10*time.Second)
	if err != nil || d != 90*time.Second {
		t.Fatalf("explicit duration = %v, %v", d, err)
	}
	if _, err := ParseDurationField("x", "-5s"); err == nil {
		t.Fatal("negative duration must error")
	}
	if _, err := ParseDurationField("x", "soon"); err == nil {
		t.Fatal("garbage duration must error")
	}
}
