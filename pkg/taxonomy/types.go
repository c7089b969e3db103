// Package taxonomy holds the reference tables a narrative build draws on:
// masks, life stages, epochs, settings, personalities, and the relation
// tables that tie them together. The tables are immutable reference data.
// Callers that need a variation derive a new Store with With rather than
// mutating the shared defaults.
package taxonomy

// Category classifies what kind of lens a mask is.
type Category string

const (
	// CategoryCognitive masks foreground how the subject thinks.
	CategoryCognitive Category = "cognitive"
	// CategoryExpressive masks foreground how the subject communicates.
	CategoryExpressive Category = "expressive"
	// CategoryOperational masks foreground what the subject does.
	CategoryOperational Category = "operational"
)

// Rhetoric is the rhetorical mode a mask writes in.
type Rhetoric string

const (
	RhetoricNarrative  Rhetoric = "narrative"
	RhetoricAnalytic   Rhetoric = "analytic"
	RhetoricPersuasive Rhetoric = "persuasive"
	RhetoricReflective Rhetoric = "reflective"
)

// Style holds a mask's voice parameters.
type Style struct {
	Tone     string   `json:"tone"`
	Rhetoric Rhetoric `json:"rhetoric"`
	// Compression runs from 0 (expansive) to 1 (terse).
	Compression float64 `json:"compression"`
}

// Activation holds the context and trigger keywords that make a mask a
// candidate for a view.
type Activation struct {
	Contexts []string `json:"contexts"`
	Triggers []string `json:"triggers"`
}

// Filters controls which timeline content a mask lets through and how
// heavily each tag counts. Exclude tags veto matching timeline entries;
// in mask scoring they either veto the mask or penalize it, depending
// on the scoring mode.
type Filters struct {
	IncludeTags []string           `json:"include_tags"`
	ExcludeTags []string           `json:"exclude_tags"`
	TagWeights  map[string]float64 `json:"tag_weights"`
}

// Mask is one persona lens a history can be told through.
type Mask struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Category   Category   `json:"category"`
	Scope      string     `json:"scope"`
	Style      Style      `json:"style"`
	Activation Activation `json:"activation"`
	Filters    Filters    `json:"filters"`
}

// Stage is one phase of a career arc. Tags drive stage inference for
// timeline entries that do not name a stage explicitly.
type Stage struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
	Order   int      `json:"order"`
	EpochID string   `json:"epoch_id,omitempty"`
}

// Epoch is a coarse era grouping several stages.
type Epoch struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Summary string  `json:"summary"`
	Order   int     `json:"order"`
	Stages  []Stage `json:"stages"`
}

// Setting is the backdrop a stage plays out against.
type Setting struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

// Personality is the temperament paired with a mask.
type Personality struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Orientation string `json:"orientation"`
}
