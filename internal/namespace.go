package internal

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// AmbiguousNamespaceError is the one hard failure in namespace resolution:
// the candidate prefixes more than one existing namespace and the caller must
// supply something more specific. It always enumerates every match.
type AmbiguousNamespaceError struct {
	Candidate string
	Matches   []string
}

func (e *AmbiguousNamespaceError) Error() string {
	return fmt.Sprintf("ambiguous namespace %q matches %s; use a longer identifier",
		e.Candidate, strings.Join(e.Matches, ", "))
}

// ResolveNamespace maps a candidate key onto the existing namespace names,
// git-abbreviated-ref style. An exact match always wins, even when the
// candidate also prefixes other names. With no matches the candidate is a
// brand-new namespace (isNew true); a unique prefix resolves to its full
// name; multiple prefix matches fail rather than guess.
func ResolveNamespace(candidate string, existing []string) (name string, isNew bool, err error) {
	for _, n := range existing {
		if n == candidate {
			return n, false, nil
		}
	}

	var matches []string
	for _, n := range existing {
		if strings.HasPrefix(n, candidate) {
			matches = append(matches, n)
		}
	}

	switch len(matches) {
	case 0:
		return candidate, true, nil
	case 1:
		return matches[0], false, nil
	default:
		sort.Strings(matches)
		return "", false, &AmbiguousNamespaceError{Candidate: candidate, Matches: matches}
	}
}

// listNamespaceDirs returns the namespace directory names under seedsDir.
// A missing seeds directory is an empty store, not an error.
func listNamespaceDirs(seedsDir string) ([]string, error) {
	entries, err := os.ReadDir(seedsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read seeds directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	return names, nil
}
