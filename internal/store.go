package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Root describes the on-disk layout of one store.
type Root struct {
	Base string
}

func (r Root) SeedsDir() string              { return filepath.Join(r.Base, "seeds") }
func (r Root) NamespaceDir(ns string) string { return filepath.Join(r.SeedsDir(), ns) }
func (r Root) ConfigPath() string            { return filepath.Join(r.Base, "config.json") }
func (r Root) ResultsDir() string            { return filepath.Join(r.Base, "results") }

// ResultPath is the conventional location where an external collaborator
// writes expansion output for a seed. The store never parses it.
func (r Root) ResultPath(id string) string {
	return filepath.Join(r.ResultsDir(), id+"-result.md")
}

// ListScope selects which records a listing covers.
type ListScope int

const (
	// ScopeProject keeps records whose project hash matches the current
	// project, falling back to session-id equality for legacy records that
	// predate project hashes.
	ScopeProject ListScope = iota
	// ScopeAll keeps everything.
	ScopeAll
)

// Store is the persistence and lifecycle engine over one store root. Each
// invocation is short-lived and single-threaded; concurrent invocations
// against the same root are tolerated via per-file atomic replace.
type Store struct {
	root        Root
	sessionID   string
	projectHash string
	cfg         *Config
	history     *History
	log         *zap.Logger
	now         func() time.Time
}

// NewStore wires a store for one invocation. sessionID is the namespace
// candidate before abbreviation resolution; cfg has been loaded once by the
// caller; logger must be non-nil (use zap.NewNop in tests). history may be
// nil.
func NewStore(root Root, sessionID, projectHash string, cfg *Config, history *History, logger *zap.Logger) *Store {
	return &Store{
		root:        root,
		sessionID:   sessionID,
		projectHash: projectHash,
		cfg:         cfg,
		history:     history,
		log:         logger,
		now:         time.Now,
	}
}

// WriteRequest carries the caller-supplied fields of a new seed.
type WriteRequest struct {
	Title       string
	Rationale   string
	Anchors     []Anchor
	OptionsHint string
	TTLHours    int    // 0 means "use the configured default"
	CreatedAt   string // informational only; defaults to now
}

// Write validates, deduplicates and persists a new seed, returning the
// created record.
//
// The dedupe scan and the subsequent write are not one atomic step: two
// concurrent writers with identical content can both pass the scan. That is
// an accepted limitation of the single-file store, not something papered
// over with locks.
func (s *Store) Write(req WriteRequest) (*Seed, error) {
	if !s.cfg.Enabled {
		return nil, ErrStoreDisabled
	}
	if err := ValidateTitle(req.Title); err != nil {
		return nil, err
	}

	key := DedupeKey(req.Title, req.Anchors, req.OptionsHint)
	dup, err := s.findByDedupeKey(key)
	if err != nil {
		return nil, err
	}
	if dup != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateSeed, dup.ID)
	}

	existing, err := listNamespaceDirs(s.root.SeedsDir())
	if err != nil {
		return nil, err
	}
	ns, _, err := ResolveNamespace(s.sessionID, existing)
	if err != nil {
		return nil, err
	}

	now := s.now()
	createdAt := req.CreatedAt
	if createdAt == "" {
		createdAt = now.UTC().Format(time.RFC3339)
	}
	ttl := req.TTLHours
	if ttl <= 0 {
		ttl = s.cfg.TTLHours
	}
	anchors := req.Anchors
	if anchors == nil {
		anchors = []Anchor{}
	}

	seed := &Seed{
		ID:          NewSeedID(now),
		Title:       req.Title,
		Rationale:   req.Rationale,
		Anchors:     anchors,
		OptionsHint: req.OptionsHint,
		TTLHours:    ttl,
		CreatedAt:   createdAt,
		DedupeKey:   key,
		SessionID:   ns,
		ProjectHash: s.projectHash,
		Status:      StatusActive,
		Expansions:  []ExpansionRecord{},
	}

	dir := s.root.NamespaceDir(ns)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create namespace directory: %w", err)
	}
	if err := s.persist(seed, filepath.Join(dir, seed.ID+".json")); err != nil {
		return nil, err
	}

	s.recordHistory("write: " + seed.ID)
	return s.annotated(seed), nil
}

// Get scans every namespace for the record. Not finding it is ErrNotFound,
// never a panic or an I/O error.
func (s *Store) Get(id string) (*Seed, error) {
	path, err := s.findPath(id)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return nil, ErrNotFound
	}

	seed, err := s.readSeed(path)
	if err != nil {
		s.log.Warn("corrupt seed record", zap.String("path", path), zap.Error(err))
		return nil, ErrNotFound
	}
	return s.annotated(seed), nil
}

// List returns annotated records matching filter within scope, sorted by
// tier then newest first. A malformed or half-written file never aborts the
// listing; it is skipped with a warning.
func (s *Store) List(filter Filter, scope ListScope) ([]*Seed, error) {
	ns := s.sessionID
	if scope == ScopeProject {
		resolved, err := s.CurrentNamespace()
		if err != nil {
			return nil, err
		}
		ns = resolved
	}

	seeds := []*Seed{}
	err := s.eachSeed(func(path string, seed *Seed) {
		if !s.inScope(seed, scope, ns) {
			return
		}
		annotated := s.annotated(seed)
		if matchesFilter(annotated.FreshnessTier, filter) {
			seeds = append(seeds, annotated)
		}
	})
	if err != nil {
		return nil, err
	}
	sortSeeds(seeds)
	return seeds, nil
}

// Archive flips the record to archived. Archiving an already-archived seed
// succeeds and leaves a single archived record.
func (s *Store) Archive(id string) (bool, error) {
	return s.setStatus(id, StatusArchived)
}

// Unarchive flips the record back to active.
func (s *Store) Unarchive(id string) (bool, error) {
	return s.setStatus(id, StatusActive)
}

// Delete removes the record permanently. False for unknown ids.
func (s *Store) Delete(id string) (bool, error) {
	path, err := s.findPath(id)
	if err != nil {
		return false, err
	}
	if path == "" {
		return false, nil
	}
	if err := os.Remove(path); err != nil {
		return false, fmt.Errorf("delete seed: %w", err)
	}
	s.recordHistory("delete: " + id)
	return true, nil
}

// ArchiveAll archives every fresh or growing record in the current project
// scope and returns how many it touched.
func (s *Store) ArchiveAll() (int, error) {
	return s.archiveWhere(func(tier Tier) bool {
		return tier == TierFresh || tier == TierGrowing
	})
}

// ArchiveOutdated archives only outdated-tier records in the current
// project scope.
func (s *Store) ArchiveOutdated() (int, error) {
	return s.archiveWhere(func(tier Tier) bool {
		return tier == TierOutdated
	})
}

// DeleteArchived permanently removes every boxed record across all
// namespaces.
func (s *Store) DeleteArchived() (int, error) {
	count := 0
	err := s.eachSeed(func(path string, seed *Seed) {
		if s.annotated(seed).FreshnessTier != TierBoxed {
			return
		}
		if err := os.Remove(path); err != nil {
			s.log.Warn("delete archived seed", zap.String("path", path), zap.Error(err))
			return
		}
		count++
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.recordHistory(fmt.Sprintf("delete-archived: %d", count))
	}
	return count, nil
}

// CleanupExpired hard-purges every record whose age exceeds its own TTL,
// regardless of status. Distinct from archiving: the files are gone.
func (s *Store) CleanupExpired() (int, error) {
	count := 0
	err := s.eachSeed(func(path string, seed *Seed) {
		if !Outdated(s.age(seed.ID), seed.TTLHours) {
			return
		}
		if err := os.Remove(path); err != nil {
			s.log.Warn("cleanup expired seed", zap.String("path", path), zap.Error(err))
			return
		}
		count++
	})
	if err != nil {
		return 0, err
	}
	if count > 0 {
		s.recordHistory(fmt.Sprintf("cleanup: %d", count))
	}
	return count, nil
}

// Namespaces returns the existing namespace directory names.
func (s *Store) Namespaces() ([]string, error) {
	return listNamespaceDirs(s.root.SeedsDir())
}

// CurrentNamespace resolves this invocation's session candidate against the
// existing namespaces.
func (s *Store) CurrentNamespace() (string, error) {
	existing, err := listNamespaceDirs(s.root.SeedsDir())
	if err != nil {
		return "", err
	}
	ns, _, err := ResolveNamespace(s.sessionID, existing)
	return ns, err
}

func (s *Store) setStatus(id string, status Status) (bool, error) {
	path, err := s.findPath(id)
	if err != nil {
		return false, err
	}
	if path == "" {
		return false, nil
	}

	seed, err := s.readSeed(path)
	if err != nil {
		s.log.Warn("corrupt seed record", zap.String("path", path), zap.Error(err))
		return false, nil
	}

	seed.Status = status
	if err := s.persist(seed, path); err != nil {
		return false, err
	}
	s.recordHistory(fmt.Sprintf("%s: %s", statusVerb(status), id))
	return true, nil
}

func statusVerb(status Status) string {
	if status == StatusArchived {
		return "archive"
	}
	return "unarchive"
}

func (s *Store) archiveWhere(match func(Tier) bool) (int, error) {
	ns, err := s.CurrentNamespace()
	if err != nil {
		return 0, err
	}

	count := 0
	var firstErr error
	err = s.eachSeed(func(path string, seed *Seed) {
		if !s.inScope(seed, ScopeProject, ns) {
			return
		}
		if !match(s.annotated(seed).FreshnessTier) {
			return
		}
		seed.Status = StatusArchived
		if err := s.persist(seed, path); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		count++
	})
	if err != nil {
		return 0, err
	}
	if firstErr != nil {
		return count, firstErr
	}
	if count > 0 {
		s.recordHistory(fmt.Sprintf("archive: %d seeds", count))
	}
	return count, nil
}

// eachSeed walks every namespace directory, invoking fn for each readable
// record. Corrupt files and malformed ids are warned about and skipped so
// one bad file cannot take down a whole listing.
func (s *Store) eachSeed(fn func(path string, seed *Seed)) error {
	namespaces, err := listNamespaceDirs(s.root.SeedsDir())
	if err != nil {
		return err
	}

	for _, ns := range namespaces {
		dir := s.root.NamespaceDir(ns)
		entries, err := os.ReadDir(dir)
		if err != nil {
			s.log.Warn("read namespace directory", zap.String("dir", dir), zap.Error(err))
			continue
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
				continue
			}
			path := filepath.Join(dir, e.Name())
			seed, err := s.readSeed(path)
			if err != nil {
				s.log.Warn("skipping corrupt seed record", zap.String("path", path), zap.Error(err))
				continue
			}
			if _, ok := SeedIDTime(seed.ID); !ok {
				s.log.Warn("skipping seed with malformed id", zap.String("id", seed.ID), zap.String("path", path))
				continue
			}
			fn(path, seed)
		}
	}
	return nil
}

// findPath locates the file backing id across all namespaces; empty string
// when absent.
func (s *Store) findPath(id string) (string, error) {
	namespaces, err := listNamespaceDirs(s.root.SeedsDir())
	if err != nil {
		return "", err
	}
	for _, ns := range namespaces {
		path := filepath.Join(s.root.NamespaceDir(ns), id+".json")
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func (s *Store) findByDedupeKey(key string) (*Seed, error) {
	var found *Seed
	err := s.eachSeed(func(path string, seed *Seed) {
		if found == nil && seed.DedupeKey == key {
			found = seed
		}
	})
	return found, err
}

func (s *Store) readSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	var seed Seed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	if err := ValidateTitle(seed.Title); err != nil {
		return nil, fmt.Errorf("unsafe title on read: %w", err)
	}
	return &seed, nil
}

// persist replaces the file atomically, encoding through diskSeed so the
// derived annotations stay out of the record. In-place truncation would let
// a concurrent reader observe a half-written record; write-temp-then-rename
// never does.
func (s *Store) persist(seed *Seed, path string) error {
	data, err := json.MarshalIndent(diskSeed{Seed: seed}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal seed: %w", err)
	}
	return atomicWrite(path, append(data, '\n'))
}

func atomicWrite(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace file: %w", err)
	}
	return nil
}

// age is always measured from the id-embedded timestamp; created_at is
// untrusted display data. Records without a parseable id age out maximally.
func (s *Store) age(id string) time.Duration {
	ts, ok := SeedIDTime(id)
	if !ok {
		return maxAge
	}
	return s.now().Sub(ts)
}

// annotated returns a copy carrying the derived read-only fields.
func (s *Store) annotated(seed *Seed) *Seed {
	out := *seed
	age := s.age(seed.ID)
	out.FreshnessTier = TierFor(seed.Status, age, seed.TTLHours)
	out.IsOutdated = Outdated(age, seed.TTLHours)
	return &out
}

func (s *Store) inScope(seed *Seed, scope ListScope, ns string) bool {
	if scope == ScopeAll {
		return true
	}
	if seed.ProjectHash != "" {
		return seed.ProjectHash == s.projectHash
	}
	// Legacy records lacking a project hash group by session id instead.
	return seed.SessionID == ns
}

func matchesFilter(tier Tier, filter Filter) bool {
	switch filter {
	case FilterActive:
		return tier == TierFresh || tier == TierGrowing
	case FilterOutdated:
		return tier == TierOutdated
	case FilterArchived:
		return tier == TierBoxed
	default:
		return true
	}
}

// recordHistory commits the store root after a mutation when history is
// enabled. Best-effort: a failed commit must not fail the operation.
func (s *Store) recordHistory(message string) {
	if s.history == nil {
		return
	}
	if _, err := s.history.Record(message); err != nil {
		s.log.Warn("record history", zap.String("message", message), zap.Error(err))
	}
}
