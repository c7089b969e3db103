// Package view defines the engine's sole input: one requested
// presentation of a profile, covering who is asking, what they care
// about, and any taxonomy overrides for this invocation.
package view

import (
	"github.com/pkg/errors"

	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/timeline"
)

// GeneratorConfig points a build at an external text generation service.
type GeneratorConfig struct {
	Endpoint  string `json:"endpoint,omitempty"`
	MaxTokens int    `json:"max_tokens,omitempty"`
}

// Config describes one requested presentation of a profile.
type Config struct {
	// ProfileRef names the profile being presented. Required.
	ProfileRef string `json:"profile_ref"`
	// Contexts is who or what is asking, e.g. hiring, press, mentoring.
	Contexts []string `json:"contexts,omitempty"`
	// Tags are the focus areas the requester cares about.
	Tags []string `json:"tags,omitempty"`
	// MaskID forces a specific mask instead of scored selection.
	MaskID string `json:"mask_id,omitempty"`
	// Masks is the pool of available masks. Nil means the taxonomy's
	// mask table; an explicit empty slice means no masks at all.
	Masks []taxonomy.Mask `json:"masks,omitempty"`
	// Timeline is the career history to narrate. May be empty.
	Timeline []timeline.Entry `json:"timeline,omitempty"`
	// Summary is a caller-supplied abstract used verbatim as the
	// leading narrative block.
	Summary string `json:"summary,omitempty"`
	// Overrides swaps taxonomy tables for this view only.
	Overrides taxonomy.Overrides `json:"overrides,omitempty"`
	// Generator configures the external text generator, if any.
	Generator GeneratorConfig `json:"generator,omitempty"`
}

// Validate checks the structural requirements a build depends on. It is
// called before any scoring or assembly so a bad view fails fast.
func (c *Config) Validate() (err error) {
	if c.ProfileRef == "" {
		return errors.New("view config missing profile_ref")
	}

	for i, entry := range c.Timeline {
		if entry.ID == "" {
			return errors.Errorf("timeline entry %d missing id", i)
		}

		if entry.Title == "" {
			return errors.Errorf("timeline entry %q missing title", entry.ID)
		}
	}

	for i, mask := range c.Masks {
		if mask.ID == "" {
			return errors.Errorf("mask %d in view pool missing id", i)
		}
	}

	return err
}
