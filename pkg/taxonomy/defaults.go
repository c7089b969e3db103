package taxonomy

// Built-in taxonomy. These tables are the shipped defaults; a view can
// swap any of them out through Overrides without touching this data.

var defaultEpochs = []Epoch{
	{
		ID:      "epoch/foundation",
		Name:    "foundation",
		Summary: "Learning the craft and finding the shape of the work.",
		Order:   1,
		Stages: []Stage{
			{
				ID:      "stage/discovery",
				Title:   "Discovery",
				Summary: "Wide exploration, learning in public, first experiments.",
				Tags:    []string{"learning", "exploration", "research"},
				Order:   1,
				EpochID: "epoch/foundation",
			},
			{
				ID:      "stage/design",
				Title:   "Design",
				Summary: "Shaping systems before they exist, trading constraints.",
				Tags:    []string{"design", "architecture"},
				Order:   2,
				EpochID: "epoch/foundation",
			},
		},
	},
	{
		ID:      "epoch/expansion",
		Name:    "expansion",
		Summary: "Building and running things that matter at scale.",
		Order:   2,
		Stages: []Stage{
			{
				ID:      "stage/construction",
				Title:   "Construction",
				Summary: "Heads-down delivery, shipping working systems.",
				Tags:    []string{"delivery", "code", "shipping"},
				Order:   3,
				EpochID: "epoch/expansion",
			},
			{
				ID:      "stage/operation",
				Title:   "Operation",
				Summary: "Keeping systems healthy in production.",
				Tags:    []string{"operations", "reliability", "scale"},
				Order:   4,
				EpochID: "epoch/expansion",
			},
		},
	},
	{
		ID:      "epoch/stewardship",
		Name:    "stewardship",
		Summary: "Multiplying others and making sense of the road so far.",
		Order:   3,
		Stages: []Stage{
			{
				ID:      "stage/mentorship",
				Title:   "Mentorship",
				Summary: "Growing people and teams rather than systems.",
				Tags:    []string{"teaching", "mentorship", "community"},
				Order:   5,
				EpochID: "epoch/stewardship",
			},
			{
				ID:      "stage/reflection",
				Title:   "Reflection",
				Summary: "Writing and speaking about what the work meant.",
				Tags:    []string{"writing", "story", "speaking"},
				Order:   6,
				EpochID: "epoch/stewardship",
			},
		},
	},
}

var defaultMasks = []Mask{
	{
		ID:       "mask/architect",
		Name:     "architect",
		Category: CategoryCognitive,
		Scope:    "systems and the constraints that shape them",
		Style: Style{
			Tone:        "measured",
			Rhetoric:    RhetoricAnalytic,
			Compression: 0.4,
		},
		Activation: Activation{
			Contexts: []string{"hiring", "consulting"},
			Triggers: []string{"architecture", "design", "platform"},
		},
		Filters: Filters{
			IncludeTags: []string{"architecture", "design", "platform"},
			ExcludeTags: []string{},
			TagWeights: map[string]float64{
				"architecture": 1.5,
				"design":       1.0,
			},
		},
	},
	{
		ID:       "mask/builder",
		Name:     "builder",
		Category: CategoryOperational,
		Scope:    "shipping working software",
		Style: Style{
			Tone:        "direct",
			Rhetoric:    RhetoricNarrative,
			Compression: 0.6,
		},
		Activation: Activation{
			Contexts: []string{"hiring", "technical"},
			Triggers: []string{"delivery", "shipping", "code"},
		},
		Filters: Filters{
			IncludeTags: []string{"delivery", "code", "shipping"},
			ExcludeTags: []string{"politics"},
			TagWeights: map[string]float64{
				"delivery": 1.0,
			},
		},
	},
	{
		ID:       "mask/operator",
		Name:     "operator",
		Category: CategoryOperational,
		Scope:    "production systems under load",
		Style: Style{
			Tone:        "calm",
			Rhetoric:    RhetoricAnalytic,
			Compression: 0.7,
		},
		Activation: Activation{
			Contexts: []string{"consulting", "incident"},
			Triggers: []string{"operations", "reliability", "scale"},
		},
		Filters: Filters{
			IncludeTags: []string{"operations", "reliability", "scale"},
			ExcludeTags: []string{"speculative"},
			TagWeights: map[string]float64{
				"reliability": 1.5,
			},
		},
	},
	{
		ID:       "mask/mentor",
		Name:     "mentor",
		Category: CategoryExpressive,
		Scope:    "people and their growth",
		Style: Style{
			Tone:        "warm",
			Rhetoric:    RhetoricReflective,
			Compression: 0.3,
		},
		Activation: Activation{
			Contexts: []string{"mentoring", "teaching", "community"},
			Triggers: []string{"teaching", "mentorship", "growth"},
		},
		Filters: Filters{
			IncludeTags: []string{"teaching", "mentorship", "community"},
			ExcludeTags: []string{"confidential"},
			TagWeights: map[string]float64{
				"mentorship": 1.2,
			},
		},
	},
	{
		ID:       "mask/chronicler",
		Name:     "chronicler",
		Category: CategoryExpressive,
		Scope:    "the story of the work",
		Style: Style{
			Tone:        "candid",
			Rhetoric:    RhetoricNarrative,
			Compression: 0.2,
		},
		Activation: Activation{
			Contexts: []string{"press", "speaking", "writing"},
			Triggers: []string{"story", "writing", "talk"},
		},
		Filters: Filters{
			IncludeTags: []string{"writing", "speaking", "community"},
			ExcludeTags: []string{"internal"},
			TagWeights: map[string]float64{
				"writing": 1.0,
			},
		},
	},
}

var defaultSettings = []Setting{
	{
		ID:      "setting/studio",
		Title:   "The Studio",
		Summary: "Whiteboards, sketches, and problems still soft enough to reshape.",
		Tags:    []string{"design", "exploration"},
	},
	{
		ID:      "setting/workshop",
		Title:   "The Workshop",
		Summary: "Tools out, code flowing, something concrete taking form.",
		Tags:    []string{"delivery", "code"},
	},
	{
		ID:      "setting/control-room",
		Title:   "The Control Room",
		Summary: "Dashboards and pagers, systems watched and kept steady.",
		Tags:    []string{"operations", "reliability"},
	},
	{
		ID:      "setting/commons",
		Title:   "The Commons",
		Summary: "Shared spaces where knowledge moves between people.",
		Tags:    []string{"community", "teaching", "writing"},
	},
}

var defaultPersonalities = []Personality{
	{ID: "personality/systems-thinker", Label: "Systems Thinker", Orientation: "sees wholes before parts"},
	{ID: "personality/pragmatist", Label: "Pragmatist", Orientation: "prefers shipped over perfect"},
	{ID: "personality/guardian", Label: "Guardian", Orientation: "protects what already works"},
	{ID: "personality/guide", Label: "Guide", Orientation: "measures success in other people"},
	{ID: "personality/storyteller", Label: "Storyteller", Orientation: "finds the thread in the events"},
}

var defaultMaskPersonality = map[string]string{
	"mask/architect":  "personality/systems-thinker",
	"mask/builder":    "personality/pragmatist",
	"mask/operator":   "personality/guardian",
	"mask/mentor":     "personality/guide",
	"mask/chronicler": "personality/storyteller",
}

var defaultMaskStageAffinity = map[string]map[string]float64{
	"mask/architect": {
		"stage/design":    1.0,
		"stage/discovery": 0.6,
	},
	"mask/builder": {
		"stage/construction": 1.0,
		"stage/design":       0.4,
	},
	"mask/operator": {
		"stage/operation":    1.0,
		"stage/construction": 0.3,
	},
	"mask/mentor": {
		"stage/mentorship": 1.0,
		"stage/reflection": 0.5,
	},
	"mask/chronicler": {
		"stage/reflection": 1.0,
		"stage/mentorship": 0.4,
	},
}

var defaultEpochMaskModifier = map[string]map[string]float64{
	"epoch/foundation": {
		"mask/architect": 0.5,
		"mask/builder":   0.2,
	},
	"epoch/expansion": {
		"mask/builder":   0.6,
		"mask/operator":  0.6,
		"mask/architect": 0.3,
	},
	"epoch/stewardship": {
		"mask/mentor":     0.7,
		"mask/chronicler": 0.7,
	},
}

var defaultStageSetting = map[string]string{
	"stage/discovery":    "setting/studio",
	"stage/design":       "setting/studio",
	"stage/construction": "setting/workshop",
	"stage/operation":    "setting/control-room",
	"stage/mentorship":   "setting/commons",
	"stage/reflection":   "setting/commons",
}

var defaultStore = &Store{
	Masks:             defaultMasks,
	Stages:            flattenStages(defaultEpochs),
	Epochs:            defaultEpochs,
	Settings:          defaultSettings,
	Personalities:     defaultPersonalities,
	MaskPersonality:   defaultMaskPersonality,
	MaskStageAffinity: defaultMaskStageAffinity,
	EpochMaskModifier: defaultEpochMaskModifier,
	StageSetting:      defaultStageSetting,
}

// Defaults returns the shared built-in taxonomy. Callers must treat it as
// read-only and derive variations with With.
func Defaults() (store *Store) {
	return defaultStore
}
