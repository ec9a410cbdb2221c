package v1

// Anchor points back at the source location that motivated a seed.
type Anchor struct {
	Path             string `json:"path"`
	ContextStartText string `json:"context_start_text"`
	ContextEndText   string `json:"context_end_text"`
	LineStart        int    `json:"line_start,omitempty"`
	LineEnd          int    `json:"line_end,omitempty"`
}

// Expansion is one appended investigation conclusion.
type Expansion struct {
	Timestamp  string `json:"timestamp"`
	Conclusion string `json:"conclusion"`
	ResultPath string `json:"result_path,omitempty"`
}

// Seed is a stored insight record, annotated with its derived freshness.
type Seed struct {
	ID            string      `json:"id"`
	Title         string      `json:"title"`
	Rationale     string      `json:"rationale"`
	Anchors       []Anchor    `json:"anchors"`
	OptionsHint   string      `json:"options_hint,omitempty"`
	TTLHours      int         `json:"ttl_hours"`
	CreatedAt     string      `json:"created_at"`
	SessionID     string      `json:"session_id"`
	Status        string      `json:"status"`
	Expansions    []Expansion `json:"expansions"`
	IsOutdated    bool        `json:"is_outdated"`
	FreshnessTier string      `json:"freshness_tier"`
}

// WriteRequest carries the caller-supplied fields of a new seed.
type WriteRequest struct {
	Title       string
	Rationale   string
	Anchors     []Anchor
	OptionsHint string
	TTLHours    int
}
