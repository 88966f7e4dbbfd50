package schema

import (
	"regexp"
	"testing"
	"time"
)

func TestValidateReportsAllViolations(t *testing.T) {
	s := Schema{
		"title":      {Kind: String, Required: true},
		"partner_id": {Kind: Number, Required: true},
		"world":      {Kind: Number},
	}

	payload := map[string]interface{}{"world": "not-a-number"}
	violations := s.Validate(payload)

	if len(violations) != 3 {
		t.Fatalf("expected 3 violations, got %d: %v", len(violations), violations)
	}
	// Sorted by field name for stable client output.
	if violations[0].Field != "partner_id" || violations[1].Field != "title" || violations[2].Field != "world" {
		t.Errorf("unexpected violation order: %v", violations)
	}
}

func TestValidateRejectsNullForNonNullable(t *testing.T) {
	s := Schema{
		"status": {Kind: Number},
		"theme":  {Kind: Number, Nullable: true},
	}
	violations := s.Validate(map[string]interface{}{"status": nil, "theme": nil})
	if len(violations) != 1 || violations[0].Field != "status" {
		t.Fatalf("expected only a status violation, got %v", violations)
	}
}

func TestValidatePattern(t *testing.T) {
	s := Schema{
		"hex_color": {Kind: String, Required: true, Pattern: regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)},
	}
	if v := s.Validate(map[string]interface{}{"hex_color": "#A1B2C3"}); len(v) != 0 {
		t.Errorf("valid color rejected: %v", v)
	}
	if v := s.Validate(map[string]interface{}{"hex_color": "red"}); len(v) != 1 {
		t.Errorf("invalid color accepted: %v", v)
	}
}

func TestValidateTime(t *testing.T) {
	s := Schema{"duration": {Kind: Time}}
	if v := s.Validate(map[string]interface{}{"duration": "2026-09-01T10:00:00Z"}); len(v) != 0 {
		t.Errorf("RFC3339 string rejected: %v", v)
	}
	if v := s.Validate(map[string]interface{}{"duration": "tomorrow"}); len(v) != 1 {
		t.Errorf("malformed timestamp accepted: %v", v)
	}
}

func TestStripUnknown(t *testing.T) {
	s := Schema{"name": {Kind: String, Required: true}}
	payload := map[string]interface{}{"name": "x", "injected": true}
	s.Strip(payload)
	if _, ok := payload["injected"]; ok {
		t.Error("unknown field survived Strip")
	}
	if _, ok := payload["name"]; !ok {
		t.Error("declared field removed by Strip")
	}
}

func TestApplyDefaults(t *testing.T) {
	s := Schema{
		"world":        {Kind: Number, Default: float64(1)},
		"chat_enabled": {Kind: Bool, Default: true},
		"duration": {Kind: Time, DefaultFunc: func() interface{} {
			return time.Now().UTC().Add(30 * 24 * time.Hour)
		}},
		"title": {Kind: String, Required: true},
	}
	payload := map[string]interface{}{"title": "t", "world": float64(2)}
	s.ApplyDefaults(payload)

	if payload["world"] != float64(2) {
		t.Errorf("provided value overwritten by default: %v", payload["world"])
	}
	if payload["chat_enabled"] != true {
		t.Errorf("static default not applied: %v", payload["chat_enabled"])
	}
	d, ok := payload["duration"].(time.Time)
	if !ok || time.Until(d) < 29*24*time.Hour {
		t.Errorf("computed default not applied: %v", payload["duration"])
	}
}
