// Package profile loads the on-disk career history document and maps it
// into a view configuration for the engine.
package profile

import (
	"github.com/inmidst/narrative-engine/pkg/timeline"
	"github.com/inmidst/narrative-engine/pkg/view"
)

// Document is the complete career history for one person.
type Document struct {
	Profile  Identity         `json:"profile"`
	Timeline []timeline.Entry `json:"timeline"`
	// Contexts and Tags seed views built from this document when the
	// caller does not supply their own.
	Contexts []string `json:"contexts,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Summary  string   `json:"summary,omitempty"`
}

// Identity is the person behind a history.
type Identity struct {
	Ref      string            `json:"ref"`
	Name     string            `json:"name"`
	Title    string            `json:"title,omitempty"`
	Location string            `json:"location,omitempty"`
	Links    map[string]string `json:"links,omitempty"`
}

// ToView maps a document into a view configuration carrying the
// document's timeline and default contexts, tags, and summary.
func (d *Document) ToView() (v view.Config) {
	v = view.Config{
		ProfileRef: d.Profile.Ref,
		Contexts:   d.Contexts,
		Tags:       d.Tags,
		Timeline:   d.Timeline,
		Summary:    d.Summary,
	}

	return v
}
