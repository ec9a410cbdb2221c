package internal

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

var (
	ErrNotFound      = errors.New("seed not found")
	ErrDuplicateSeed = errors.New("duplicate")
	ErrStoreDisabled = errors.New("disabled")
	ErrInvalidTitle  = errors.New("invalid title")
)

// Characters a title must never contain: it is rendered in terminals and
// interpolated into shell-adjacent contexts by external callers.
const forbiddenTitleChars = "$`'\"|;&\\<>(){}"

var idPattern = regexp.MustCompile(`^seed-(\d+)-[0-9a-f]+$`)

const dedupeKeyLen = 16

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

// Anchor points back at the source location that motivated a seed. Paths are
// recorded verbatim; existence checks are the caller's concern.
type Anchor struct {
	Path             string `json:"path"`
	ContextStartText string `json:"context_start_text"`
	ContextEndText   string `json:"context_end_text"`
	LineStart        int    `json:"line_start,omitempty"`
	LineEnd          int    `json:"line_end,omitempty"`
}

// ExpansionRecord is one appended investigation conclusion. The list on a
// seed is append-only; entries are never edited or removed.
type ExpansionRecord struct {
	Timestamp  string `json:"timestamp"`
	Conclusion string `json:"conclusion"`
	ResultPath string `json:"result_path,omitempty"`
}

// Seed is a single stored insight record, persisted as <id>.json inside its
// namespace directory.
//
// CreatedAt is display-only and may come from an untrusted caller; every
// lifecycle decision derives age from the timestamp embedded in ID, which the
// store generates itself. IsOutdated and FreshnessTier are computed on read,
// always present in read output, and never persisted (see diskSeed).
type Seed struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Rationale   string            `json:"rationale"`
	Anchors     []Anchor          `json:"anchors"`
	OptionsHint string            `json:"options_hint,omitempty"`
	TTLHours    int               `json:"ttl_hours"`
	CreatedAt   string            `json:"created_at"`
	DedupeKey   string            `json:"dedupe_key"`
	SessionID   string            `json:"session_id"`
	ProjectHash string            `json:"project_hash,omitempty"`
	Status      Status            `json:"status"`
	Expansions  []ExpansionRecord `json:"expansions"`

	IsOutdated    bool `json:"is_outdated"`
	FreshnessTier Tier `json:"freshness_tier"`
}

// diskSeed is the encoding persisted to disk: the zero-valued shadow fields
// take precedence over the embedded ones and omitempty drops them, so the
// derived annotations never reach the file.
type diskSeed struct {
	*Seed
	IsOutdated    bool `json:"is_outdated,omitempty"`
	FreshnessTier Tier `json:"freshness_tier,omitempty"`
}

// NewSeedID allocates an id whose embedded unix-millisecond timestamp is the
// authoritative creation time. Ids sort lexicographically by that timestamp
// for any ids minted within the same epoch-digit era.
func NewSeedID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("seed-%d-%s", now.UnixMilli(), suffix)
}

// SeedIDTime extracts the embedded creation time from an id. The boolean is
// false for anything that does not match the expected format.
func SeedIDTime(id string) (time.Time, bool) {
	m := idPattern.FindStringSubmatch(id)
	if m == nil {
		return time.Time{}, false
	}
	ms, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.UnixMilli(ms), true
}

// ValidateTitle enforces the fixed forbidden-character set shared by the
// write path and standalone validation.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: empty", ErrInvalidTitle)
	}
	if strings.ContainsAny(title, forbiddenTitleChars) {
		return fmt.Errorf("%w: forbidden character", ErrInvalidTitle)
	}
	for _, r := range title {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character", ErrInvalidTitle)
		}
	}
	return nil
}

// DedupeKey hashes the identifying content of a seed. Two seeds with the same
// title, anchors and hint collide on this key anywhere in the store.
func DedupeKey(title string, anchors []Anchor, optionsHint string) string {
	h := sha256.New()
	h.Write([]byte(title))
	for _, a := range anchors {
		h.Write([]byte{0})
		h.Write([]byte(a.Path))
		h.Write([]byte{0})
		h.Write([]byte(a.ContextStartText))
		h.Write([]byte{0})
		h.Write([]byte(a.ContextEndText))
	}
	h.Write([]byte{0})
	h.Write([]byte(optionsHint))
	return hex.EncodeToString(h.Sum(nil))[:dedupeKeyLen]
}
