package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Filter selects which freshness tiers a listing includes.
type Filter string

const (
	FilterAll      Filter = "all"
	FilterActive   Filter = "active"   // fresh + growing
	FilterOutdated Filter = "outdated" // outdated tier only
	FilterArchived Filter = "archived" // boxed tier only
)

// filterCycle is the rotation order for cycle-filter.
var filterCycle = []Filter{FilterActive, FilterOutdated, FilterArchived, FilterAll}

// contextTurnsCycle is the rotation order for cycle-context-turns.
var contextTurnsCycle = []int{0, 5, 10, 20}

// Config is the small persisted settings record at <root>/config.json,
// loaded once per invocation.
type Config struct {
	TTLHours        int    `json:"ttl_hours"`
	DefaultFilter   Filter `json:"default_filter"`
	ExpansionMode   string `json:"expansion_mode"`
	SkipPermissions bool   `json:"skip_permissions"`
	Model           string `json:"model"`
	ContextTurns    int    `json:"context_turns"`
	Enabled         bool   `json:"enabled"`
}

func DefaultConfig() *Config {
	return &Config{
		TTLHours:      72,
		DefaultFilter: FilterActive,
		ExpansionMode: "terminal",
		ContextTurns:  10,
		Enabled:       true,
	}
}

// configShadow mirrors Config with pointer fields so that loading can tell
// "absent" from "zero". Decoding through it and merging non-nil fields onto
// the defaults is what makes config files forward and backward compatible:
// unknown keys are dropped, missing ones keep their defaults.
type configShadow struct {
	TTLHours        *int    `json:"ttl_hours"`
	DefaultFilter   *Filter `json:"default_filter"`
	ExpansionMode   *string `json:"expansion_mode"`
	SkipPermissions *bool   `json:"skip_permissions"`
	Model           *string `json:"model"`
	ContextTurns    *int    `json:"context_turns"`
	Enabled         *bool   `json:"enabled"`
}

// LoadConfig reads path and merges the known fields over the defaults. A
// missing file yields the defaults; malformed JSON is an error.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var shadow configShadow
	if err := json.Unmarshal(data, &shadow); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if shadow.TTLHours != nil {
		cfg.TTLHours = *shadow.TTLHours
	}
	if shadow.DefaultFilter != nil {
		cfg.DefaultFilter = *shadow.DefaultFilter
	}
	if shadow.ExpansionMode != nil {
		cfg.ExpansionMode = *shadow.ExpansionMode
	}
	if shadow.SkipPermissions != nil {
		cfg.SkipPermissions = *shadow.SkipPermissions
	}
	if shadow.Model != nil {
		cfg.Model = *shadow.Model
	}
	if shadow.ContextTurns != nil {
		cfg.ContextTurns = *shadow.ContextTurns
	}
	if shadow.Enabled != nil {
		cfg.Enabled = *shadow.Enabled
	}

	return cfg, nil
}

// SaveConfig persists cfg with an atomic replace.
func SaveConfig(path string, cfg *Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	return atomicWrite(path, append(data, '\n'))
}

// NextFilter advances the cycle active -> outdated -> archived -> all.
// Unrecognized values restart at the beginning.
func NextFilter(current Filter) Filter {
	for i, f := range filterCycle {
		if f == current {
			return filterCycle[(i+1)%len(filterCycle)]
		}
	}
	return filterCycle[0]
}

// NextContextTurns advances the preset rotation 0 -> 5 -> 10 -> 20.
func NextContextTurns(current int) int {
	for i, n := range contextTurnsCycle {
		if n == current {
			return contextTurnsCycle[(i+1)%len(contextTurnsCycle)]
		}
	}
	return contextTurnsCycle[0]
}

// ValidFilter reports whether s names a known listing filter.
func ValidFilter(s string) bool {
	switch Filter(s) {
	case FilterAll, FilterActive, FilterOutdated, FilterArchived:
		return true
	}
	return false
}
