package main

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func TestRootCmdShowsHelp(t *testing.T) {
	root := NewRootCmd("test", zap.NewNop())
	root.SetArgs([]string{})

	var out bytes.Buffer
	root.SetOut(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}

	for _, cmd := range []string{"write", "list", "archive", "conclude", "cleanup", "history", "watch"} {
		if !strings.Contains(out.String(), cmd) {
			t.Errorf("help output missing %q", cmd)
		}
	}
}

func TestRootCmdUnknownCommand(t *testing.T) {
	root := NewRootCmd("test", zap.NewNop())
	root.SetArgs([]string{"definitely-not-a-command"})

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)

	if err := root.Execute(); err == nil {
		t.Fatal("expected error for unknown command")
	}
}

func TestRootCmdVersion(t *testing.T) {
	root := NewRootCmd("1.2.3", zap.NewNop())
	root.SetArgs([]string{"--version"})

	var out bytes.Buffer
	root.SetOut(&out)

	if err := root.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out.String(), "1.2.3") {
		t.Errorf("version output = %q", out.String())
	}
}
