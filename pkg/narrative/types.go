// Package narrative assembles narrative outputs from view
// configurations: it resolves taxonomies, enriches the timeline, selects
// a mask, builds arcs, expands templates, and attaches metadata.
package narrative

import (
	"github.com/inmidst/narrative-engine/pkg/timeline"
)

// Block is one titled unit of narrative output.
type Block struct {
	Title      string   `json:"title"`
	Body       string   `json:"body"`
	Tags       []string `json:"tags,omitempty"`
	TemplateID string   `json:"template_id,omitempty"`
	Weight     float64  `json:"weight"`
}

// Relations records the relation-table values a build actually used, so
// an output can be audited against the taxonomy that produced it.
type Relations struct {
	PersonalityID string  `json:"personality_id,omitempty"`
	SettingID     string  `json:"setting_id,omitempty"`
	StageAffinity float64 `json:"stage_affinity"`
	EpochModifier float64 `json:"epoch_modifier"`
}

// Meta describes how an Output was assembled.
type Meta struct {
	ProfileRef       string         `json:"profile_ref"`
	MaskID           string         `json:"mask_id,omitempty"`
	MaskName         string         `json:"mask_name,omitempty"`
	PersonalityID    string         `json:"personality_id,omitempty"`
	PersonalityLabel string         `json:"personality_label,omitempty"`
	EpochID          string         `json:"epoch_id,omitempty"`
	StageID          string         `json:"stage_id,omitempty"`
	SettingID        string         `json:"setting_id,omitempty"`
	TopMaskScore     float64        `json:"top_mask_score"`
	Relations        Relations      `json:"relations"`
	Timeline         timeline.Stats `json:"timeline"`
}

// Output is one assembled narrative.
type Output struct {
	ID     string  `json:"id"`
	Blocks []Block `json:"blocks"`
	Meta   Meta    `json:"meta"`
}

// Template ids of the blocks the assembler produces outside the template
// bank. The bank deduplicates against these.
const (
	baselineSummaryID   = "baseline/summary"
	baselineTimelineID  = "baseline/timeline"
	baselineSpotlightID = "baseline/spotlight"
)
