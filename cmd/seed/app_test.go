package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/seedbed-dev/seedbed/internal"
	"go.uber.org/zap"
)

// runSeed executes one full command line against the store at base and
// returns what it printed. Every call builds a fresh command tree, the same
// way each process invocation does.
func runSeed(t *testing.T, base string, args ...string) (string, error) {
	t.Helper()
	return runSeedAs(t, base, "sess-test", args...)
}

// runSeedAs is runSeed with an explicit session identity.
func runSeedAs(t *testing.T, base, session string, args ...string) (string, error) {
	t.Helper()

	root := NewRootCmd("test", zap.NewNop())
	root.SetArgs(append(args, "--base", base, "--session", session))

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	err := root.Execute()
	return out.String(), err
}

func mustRunSeed(t *testing.T, base string, args ...string) string {
	t.Helper()
	out, err := runSeed(t, base, args...)
	if err != nil {
		t.Fatalf("seed %v: %v\noutput: %s", args, err, out)
	}
	return out
}

type writeResponse struct {
	Success bool           `json:"success"`
	Reason  string         `json:"reason"`
	Seed    *internal.Seed `json:"seed"`
}

func parseWriteResponse(t *testing.T, out string) writeResponse {
	t.Helper()
	var resp writeResponse
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("parse response %q: %v", out, err)
	}
	return resp
}

// disableStore flips enabled off in the config file at base.
func disableStore(base string) error {
	root := internal.Root{Base: base}
	cfg, err := internal.LoadConfig(root.ConfigPath())
	if err != nil {
		return err
	}
	cfg.Enabled = false
	return internal.SaveConfig(root.ConfigPath(), cfg)
}

// writeSeed creates one record and returns its id.
func writeSeed(t *testing.T, base, title string) string {
	t.Helper()
	out := mustRunSeed(t, base, "write", title)
	resp := parseWriteResponse(t, out)
	if !resp.Success || resp.Seed == nil {
		t.Fatalf("write %q failed: %s", title, out)
	}
	return resp.Seed.ID
}
