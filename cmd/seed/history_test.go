package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/seedbed-dev/seedbed/internal"
)

func TestHistoryCmdInitAndLog(t *testing.T) {
	base := t.TempDir()

	out := mustRunSeed(t, base, "history", "init")
	if !strings.Contains(out, `"success": true`) {
		t.Fatalf("init output = %q", out)
	}

	// Mutations after init land as commits.
	id := writeSeed(t, base, "Audited record")
	mustRunSeed(t, base, "archive", id)

	var commits []*internal.Commit
	if err := json.Unmarshal([]byte(mustRunSeed(t, base, "history", "log")), &commits); err != nil {
		t.Fatal(err)
	}
	// init + write + archive
	if len(commits) != 3 {
		t.Fatalf("commits = %d, want 3", len(commits))
	}
	if !strings.HasPrefix(commits[0].Message, "archive:") {
		t.Errorf("newest commit = %q", commits[0].Message)
	}
}

func TestHistoryCmdInitTwice(t *testing.T) {
	base := t.TempDir()
	mustRunSeed(t, base, "history", "init")

	if _, err := runSeed(t, base, "history", "init"); err == nil {
		t.Fatal("expected error for repeated init")
	}
}

func TestHistoryCmdLogLimit(t *testing.T) {
	base := t.TempDir()
	mustRunSeed(t, base, "history", "init")
	writeSeed(t, base, "First record")
	writeSeed(t, base, "Second record")

	var commits []*internal.Commit
	out := mustRunSeed(t, base, "history", "log", "--limit", "1")
	if err := json.Unmarshal([]byte(out), &commits); err != nil {
		t.Fatal(err)
	}
	if len(commits) != 1 {
		t.Errorf("limited log = %d commits", len(commits))
	}
}

func TestHistoryCmdWithoutInit(t *testing.T) {
	if _, err := runSeed(t, t.TempDir(), "history", "log"); err == nil {
		t.Fatal("expected error when history is not initialized")
	}
}

func TestHistoryCmdDiff(t *testing.T) {
	base := t.TempDir()
	mustRunSeed(t, base, "history", "init")
	writeSeed(t, base, "Tracked record")

	out := mustRunSeed(t, base, "history", "diff", "HEAD~1")
	if !strings.Contains(out, "Tracked record") {
		t.Errorf("diff does not show the new record:\n%s", out)
	}
}
