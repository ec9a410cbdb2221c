package v1

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/seedbed-dev/seedbed/internal"
	"go.uber.org/zap"
)

// Sentinel errors, matchable with errors.Is.
var (
	ErrNotFound      = internal.ErrNotFound
	ErrDuplicateSeed = internal.ErrDuplicateSeed
	ErrStoreDisabled = internal.ErrStoreDisabled
	ErrInvalidTitle  = internal.ErrInvalidTitle
)

// Client provides programmatic access to a seed store, for hosts that embed
// the store instead of shelling out to the CLI.
type Client struct {
	store *internal.Store
	cfg   *internal.Config
}

// New creates a Client. Defaults mirror the CLI: $SEED_HOME or ~/.seeds for
// the root, $SEED_SESSION_ID and the working directory for identity.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	base := cfg.base
	if base == "" {
		base = os.Getenv("SEED_HOME")
	}
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		base = filepath.Join(home, ".seeds")
	}

	workdir := cfg.workdir
	if workdir == "" {
		workdir, _ = os.Getwd()
	}

	logger := cfg.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	root := internal.Root{Base: base}
	storeCfg, err := internal.LoadConfig(root.ConfigPath())
	if err != nil {
		return nil, err
	}

	session := internal.ResolveSessionID(cfg.session, os.Getenv("SEED_SESSION_ID"), workdir)
	projectHash := ""
	if workdir != "" {
		projectHash = internal.ProjectHash(workdir)
	}

	var hist *internal.History
	if internal.HistoryEnabled(base) {
		hist, err = internal.OpenHistory(base)
		if err != nil {
			logger.Warn("open history", zap.Error(err))
			hist = nil
		}
	}

	return &Client{
		store: internal.NewStore(root, session, projectHash, storeCfg, hist, logger),
		cfg:   storeCfg,
	}, nil
}

// Write creates a new seed.
func (c *Client) Write(req WriteRequest) (*Seed, error) {
	seed, err := c.store.Write(internal.WriteRequest{
		Title:       req.Title,
		Rationale:   req.Rationale,
		Anchors:     toInternalAnchors(req.Anchors),
		OptionsHint: req.OptionsHint,
		TTLHours:    req.TTLHours,
	})
	if err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}
	return toSeed(seed), nil
}

// Get retrieves a seed by id. ErrNotFound for unknown ids.
func (c *Client) Get(id string) (*Seed, error) {
	seed, err := c.store.Get(id)
	if err != nil {
		return nil, err
	}
	return toSeed(seed), nil
}

// List returns the current project's seeds. An empty filter uses the
// configured default; otherwise one of all|active|outdated|archived.
func (c *Client) List(filter string) ([]*Seed, error) {
	return c.list(filter, internal.ScopeProject)
}

// ListAll returns seeds across every namespace.
func (c *Client) ListAll(filter string) ([]*Seed, error) {
	return c.list(filter, internal.ScopeAll)
}

func (c *Client) list(filter string, scope internal.ListScope) ([]*Seed, error) {
	f := c.cfg.DefaultFilter
	if filter != "" {
		if !internal.ValidFilter(filter) {
			return nil, fmt.Errorf("unknown filter %q", filter)
		}
		f = internal.Filter(filter)
	}

	seeds, err := c.store.List(f, scope)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}

	out := make([]*Seed, 0, len(seeds))
	for _, s := range seeds {
		out = append(out, toSeed(s))
	}
	return out, nil
}

// Archive flips a seed to archived. False for unknown ids.
func (c *Client) Archive(id string) (bool, error) {
	return c.store.Archive(id)
}

// Unarchive restores an archived seed.
func (c *Client) Unarchive(id string) (bool, error) {
	return c.store.Unarchive(id)
}

// Delete removes a seed permanently.
func (c *Client) Delete(id string) (bool, error) {
	return c.store.Delete(id)
}

// Conclude appends an investigation conclusion to the seed's ledger.
func (c *Client) Conclude(id, conclusion, resultPath string) (bool, error) {
	return c.store.Conclude(id, conclusion, resultPath)
}

// Cleanup hard-purges every seed past its own TTL and returns the count.
func (c *Client) Cleanup() (int, error) {
	return c.store.CleanupExpired()
}

func toInternalAnchors(anchors []Anchor) []internal.Anchor {
	out := make([]internal.Anchor, 0, len(anchors))
	for _, a := range anchors {
		out = append(out, internal.Anchor(a))
	}
	return out
}

func toSeed(s *internal.Seed) *Seed {
	anchors := make([]Anchor, 0, len(s.Anchors))
	for _, a := range s.Anchors {
		anchors = append(anchors, Anchor(a))
	}
	expansions := make([]Expansion, 0, len(s.Expansions))
	for _, e := range s.Expansions {
		expansions = append(expansions, Expansion(e))
	}

	return &Seed{
		ID:            s.ID,
		Title:         s.Title,
		Rationale:     s.Rationale,
		Anchors:       anchors,
		OptionsHint:   s.OptionsHint,
		TTLHours:      s.TTLHours,
		CreatedAt:     s.CreatedAt,
		SessionID:     s.SessionID,
		Status:        string(s.Status),
		Expansions:    expansions,
		IsOutdated:    s.IsOutdated,
		FreshnessTier: string(s.FreshnessTier),
	}
}
