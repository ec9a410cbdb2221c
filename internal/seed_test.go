package internal

import (
	"strings"
	"testing"
	"time"
)

func TestNewSeedIDFormat(t *testing.T) {
	now := time.UnixMilli(1700000000000)
	id := NewSeedID(now)

	if !strings.HasPrefix(id, "seed-1700000000000-") {
		t.Fatalf("unexpected id %q", id)
	}

	ts, ok := SeedIDTime(id)
	if !ok {
		t.Fatalf("SeedIDTime(%q) failed to parse", id)
	}
	if !ts.Equal(now) {
		t.Errorf("expected %v, got %v", now, ts)
	}
}

func TestSeedIDsSortByTimestamp(t *testing.T) {
	earlier := NewSeedID(time.UnixMilli(1700000000000))
	later := NewSeedID(time.UnixMilli(1700000000001))

	if !(earlier < later) {
		t.Errorf("expected %q < %q", earlier, later)
	}
}

func TestSeedIDTimeMalformed(t *testing.T) {
	malformed := []string{
		"",
		"seed-",
		"seed-abc-def0",
		"note-1700000000000-ab12",
		"seed-1700000000000",
		"seed-1700000000000-XYZ!",
	}

	for _, id := range malformed {
		if _, ok := SeedIDTime(id); ok {
			t.Errorf("SeedIDTime(%q) unexpectedly parsed", id)
		}
	}
}

func TestValidateTitle(t *testing.T) {
	valid := []string{
		"Test",
		"Investigate flaky retry loop",
		"cache: stale reads after TTL bump",
		"why does list return 200 items?",
	}
	for _, title := range valid {
		if err := ValidateTitle(title); err != nil {
			t.Errorf("ValidateTitle(%q) returned error: %v", title, err)
		}
	}

	// Identical forbidden set for the write path and standalone validation.
	for _, c := range "$`'\"|;&\\<>(){}" {
		title := "bad " + string(c) + " title"
		if err := ValidateTitle(title); err == nil {
			t.Errorf("ValidateTitle(%q) expected error", title)
		}
	}

	invalid := []string{
		"",
		"   ",
		"has\ttab",
		"has\nnewline",
		"has\x00nul",
	}
	for _, title := range invalid {
		if err := ValidateTitle(title); err == nil {
			t.Errorf("ValidateTitle(%q) expected error", title)
		}
	}
}

func TestDedupeKeyStable(t *testing.T) {
	anchors := []Anchor{{Path: "internal/store.go", ContextStartText: "func Write", ContextEndText: "return"}}

	a := DedupeKey("Test", anchors, "hint")
	b := DedupeKey("Test", anchors, "hint")
	if a != b {
		t.Errorf("same content hashed differently: %q vs %q", a, b)
	}
	if len(a) != dedupeKeyLen {
		t.Errorf("expected %d-char key, got %d", dedupeKeyLen, len(a))
	}
}

func TestDedupeKeyDiffers(t *testing.T) {
	anchors := []Anchor{{Path: "a.go", ContextStartText: "x", ContextEndText: "y"}}
	base := DedupeKey("Test", anchors, "hint")

	if DedupeKey("Other", anchors, "hint") == base {
		t.Error("different title produced the same key")
	}
	if DedupeKey("Test", nil, "hint") == base {
		t.Error("different anchors produced the same key")
	}
	if DedupeKey("Test", anchors, "other") == base {
		t.Error("different hint produced the same key")
	}
	if DedupeKey("Test", []Anchor{{Path: "b.go", ContextStartText: "x", ContextEndText: "y"}}, "hint") == base {
		t.Error("different anchor path produced the same key")
	}
}
