package main

import (
	"strings"
	"testing"
)

func TestWriteCmdCreatesSeed(t *testing.T) {
	base := t.TempDir()

	out := mustRunSeed(t, base, "write", "Investigate flaky retry loop", "retries fire twice")
	resp := parseWriteResponse(t, out)

	if !resp.Success {
		t.Fatalf("expected success, got %s", out)
	}
	if !strings.HasPrefix(resp.Seed.ID, "seed-") {
		t.Errorf("unexpected id %q", resp.Seed.ID)
	}
	if resp.Seed.Rationale != "retries fire twice" {
		t.Errorf("rationale = %q", resp.Seed.Rationale)
	}
	if resp.Seed.FreshnessTier != "fresh" {
		t.Errorf("new seed tier = %q", resp.Seed.FreshnessTier)
	}
}

func TestWriteCmdAnchors(t *testing.T) {
	base := t.TempDir()

	anchors := `[{"path":"internal/retry.go","context_start_text":"func backoff","line_start":10,"line_end":24}]`
	out := mustRunSeed(t, base, "write", "Anchored insight", "--anchors", anchors)
	resp := parseWriteResponse(t, out)

	if len(resp.Seed.Anchors) != 1 {
		t.Fatalf("anchors = %+v", resp.Seed.Anchors)
	}
	if resp.Seed.Anchors[0].Path != "internal/retry.go" || resp.Seed.Anchors[0].LineEnd != 24 {
		t.Errorf("anchor round trip lost fields: %+v", resp.Seed.Anchors[0])
	}
}

func TestWriteCmdMalformedAnchors(t *testing.T) {
	_, err := runSeed(t, t.TempDir(), "write", "Bad anchors", "--anchors", "{not an array")
	if err == nil {
		t.Fatal("expected error for malformed anchors JSON")
	}
}

func TestWriteCmdDuplicate(t *testing.T) {
	base := t.TempDir()
	writeSeed(t, base, "Same insight twice")

	out, err := runSeed(t, base, "write", "Same insight twice")
	if err == nil {
		t.Fatal("expected non-zero exit for duplicate write")
	}
	resp := parseWriteResponse(t, out)
	if resp.Success || resp.Reason != "duplicate" {
		t.Errorf("expected {success:false, reason:duplicate}, got %s", out)
	}
}

func TestWriteCmdForbiddenTitle(t *testing.T) {
	out, err := runSeed(t, t.TempDir(), "write", "rm -rf; echo pwned")
	if err == nil {
		t.Fatal("expected non-zero exit for forbidden title")
	}
	resp := parseWriteResponse(t, out)
	if resp.Success {
		t.Errorf("expected failure payload, got %s", out)
	}
}

func TestWriteCmdDisabledStore(t *testing.T) {
	base := t.TempDir()
	writeSeed(t, base, "Lands while enabled")

	if err := disableStore(base); err != nil {
		t.Fatal(err)
	}
	out, err := runSeed(t, base, "write", "Should never land")
	if err == nil {
		t.Fatal("expected non-zero exit for disabled store")
	}
	resp := parseWriteResponse(t, out)
	if resp.Success || resp.Reason != "disabled" {
		t.Errorf("expected {success:false, reason:disabled}, got %s", out)
	}
}
