package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// UnknownIdentity is returned when no usable identity source exists.
// Operations still work under it; only cross-session correlation is lost.
const UnknownIdentity = "unknown"

const projectHashLen = 12

var identityPattern = regexp.MustCompile(`^[A-Za-z0-9._-]{1,128}$`)

// ValidIdentity reports whether s is acceptable as a namespace key.
func ValidIdentity(s string) bool {
	return identityPattern.MatchString(s)
}

// ResolveSessionID derives the namespace key for this invocation. Precedence:
// explicit override, host-assigned conversation id, working-directory hash.
// It is a pure function so every collaborating process computes the same key
// from the same inputs.
func ResolveSessionID(override, hostID, workdir string) string {
	if ValidIdentity(override) {
		return override
	}
	if ValidIdentity(hostID) {
		return hostID
	}
	if workdir != "" {
		return ProjectHash(workdir)
	}
	return UnknownIdentity
}

// ProjectHash is the stable working-directory identity used for
// cross-session grouping.
func ProjectHash(dir string) string {
	sum := sha256.Sum256([]byte(dir))
	return hex.EncodeToString(sum[:])[:projectHashLen]
}
