package internal

import (
	"strings"
	"testing"
)

func TestResolveSessionIDPrecedence(t *testing.T) {
	cases := []struct {
		name     string
		override string
		hostID   string
		workdir  string
		want     string
	}{
		{"override wins", "explicit-id", "conv-123", "/work", "explicit-id"},
		{"host id when no override", "", "conv-123", "/work", "conv-123"},
		{"invalid override falls through", "has spaces", "conv-123", "/work", "conv-123"},
		{"workdir hash as last source", "", "", "/work", ProjectHash("/work")},
		{"invalid host id falls through", "", "bad/id", "/work", ProjectHash("/work")},
		{"nothing usable", "", "", "", UnknownIdentity},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ResolveSessionID(tc.override, tc.hostID, tc.workdir)
			if got != tc.want {
				t.Errorf("ResolveSessionID(%q, %q, %q) = %q, want %q",
					tc.override, tc.hostID, tc.workdir, got, tc.want)
			}
		})
	}
}

func TestValidIdentity(t *testing.T) {
	valid := []string{"a", "conv-123", "a.b_c-d", "A1", strings.Repeat("x", 128)}
	for _, s := range valid {
		if !ValidIdentity(s) {
			t.Errorf("ValidIdentity(%q) = false, want true", s)
		}
	}

	invalid := []string{"", "has spaces", "slash/id", strings.Repeat("x", 129), "semi;colon"}
	for _, s := range invalid {
		if ValidIdentity(s) {
			t.Errorf("ValidIdentity(%q) = true, want false", s)
		}
	}
}

func TestProjectHashStable(t *testing.T) {
	a := ProjectHash("/home/dev/project")
	b := ProjectHash("/home/dev/project")
	if a != b {
		t.Errorf("same directory hashed differently: %q vs %q", a, b)
	}
	if len(a) != projectHashLen {
		t.Errorf("expected %d-char hash, got %d", projectHashLen, len(a))
	}
	if a == ProjectHash("/home/dev/other") {
		t.Error("different directories collided")
	}
	for _, r := range a {
		if !strings.ContainsRune("0123456789abcdef", r) {
			t.Errorf("non-hex rune %q in %q", r, a)
		}
	}
}
