// Package timeline enriches raw career history entries with resolved
// taxonomy structure and composite weights, and summarizes the result
// into arcs and counts.
package timeline

// Entry is one raw item of career history as supplied by the caller.
// Structural ids and the weight are optional; enrichment fills in what
// is missing and never overrides what is present.
type Entry struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
	// Start is an ISO date such as 2021-04-01. 2021-04 and 2021 are
	// accepted as shorthand.
	Start string `json:"start"`
	// End is empty while the entry is ongoing.
	End       string   `json:"end,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	StageID   string   `json:"stage_id,omitempty"`
	EpochID   string   `json:"epoch_id,omitempty"`
	SettingID string   `json:"setting_id,omitempty"`
	// Weight, when set, takes precedence over the computed composite.
	Weight *float64 `json:"weight,omitempty"`
}

// Breakdown records the per-factor detail behind a composite weight.
type Breakdown struct {
	Recency    float64 `json:"recency"`
	StageMatch float64 `json:"stage_match"`
	MaskFit    float64 `json:"mask_fit"`
	TagMatches float64 `json:"tag_matches"`
	Affinity   float64 `json:"affinity"`
	Modifier   float64 `json:"modifier"`
}

// EnrichedEntry is an Entry with resolved structure and scoring detail.
// StageID, EpochID, and SettingID are the resolved values; an empty id
// means resolution found nothing.
type EnrichedEntry struct {
	Entry     Entry     `json:"entry"`
	StageID   string    `json:"stage_id,omitempty"`
	EpochID   string    `json:"epoch_id,omitempty"`
	SettingID string    `json:"setting_id,omitempty"`
	Weight    float64   `json:"weight"`
	Vetoed    bool      `json:"vetoed,omitempty"`
	Scores    Breakdown `json:"scores"`
}

// Stats summarizes an enriched timeline.
type Stats struct {
	Total    int            `json:"total"`
	ByStage  map[string]int `json:"by_stage,omitempty"`
	ByEpoch  map[string]int `json:"by_epoch,omitempty"`
	StageArc []string       `json:"stage_arc,omitempty"`
	EpochArc []string       `json:"epoch_arc,omitempty"`
}
