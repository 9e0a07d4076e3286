package holiday

import (
	"testing"

	"festbot/pkg/logx"
)

func TestFromConfigTokenPairs(t *testing.T) {
	defs := FromConfig([]ConfigEntry{
		{Token: "0214"}, {Token: "情人节"},
		{Token: "1225"}, {Token: "圣诞节"},
	}, logx.Nop())
	if len(defs) != 2 {
		t.Fatalf("got %d definitions, want 2", len(defs))
	}
	if defs[0].Name != "情人节" || defs[0].Month != 2 || defs[0].Day != 14 {
		t.Fatalf("first definition wrong: %+v", defs[0])
	}
	if defs[1].Name != "圣诞节" || defs[1].Month != 12 || defs[1].Day != 25 {
		t.Fatalf("second definition wrong: %+v", defs[1])
	}
}

func TestFromConfigInvalidTokenSkipsPair(t *testing.T) {
	defs := FromConfig([]ConfigEntry{
		{Token: "1350"}, {Token: "无效"},
		{Token: "0101"}, {Token: "好节"},
	}, logx.Nop())
	if len(defs) != 1 || defs[0].Name != "好节" {
		t.Fatalf("invalid token pair should be skipped: %+v", defs)
	}
}

func TestFromConfigUnpairedTrailingIgnored(t *testing.T) {
	defs := FromConfig([]ConfigEntry{
		{Token: "0505"}, {Token: "A Day"},
		{Token: "0606"},
	}, logx.Nop())
	if len(defs) != 1 {
		t.Fatalf("trailing unpaired token must be ignored: %+v", defs)
	}
}

func TestFromConfigStructuredWins(t *testing.T) {
	// One structured entry makes the parse ignore token entries entirely.
	defs := FromConfig([]ConfigEntry{
		{Token: "0214"},
		{Name: "厂庆", Month: 9, Day: 1, LengthDays: 2, Aliases: []string{" 周年庆 ", ""}},
	}, logx.Nop())
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	d := defs[0]
	if d.Name != "厂庆" || d.Month != 9 || d.Day != 1 || d.LengthDays != 2 {
		t.Fatalf("structured definition wrong: %+v", d)
	}
	if len(d.Aliases) != 1 || d.Aliases[0] != "周年庆" {
		t.Fatalf("aliases not trimmed: %+v", d.Aliases)
	}
}

func TestFromConfigStructuredValidation(t *testing.T) {
	defs := FromConfig([]ConfigEntry{
		{Name: "bad month", Month: 13, Day: 1},
		{Month: 3, Day: 3}, // nameless gets a placeholder name
	}, logx.Nop())
	if len(defs) != 1 {
		t.Fatalf("got %d definitions, want 1", len(defs))
	}
	if defs[0].Name != "未命名节日" {
		t.Fatalf("placeholder name missing: %q", defs[0].Name)
	}
	if defs[0].LengthDays != 1 {
		t.Fatalf("length should default to 1, got %d", defs[0].LengthDays)
	}
}
