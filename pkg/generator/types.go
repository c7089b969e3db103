// Package generator defines the external text generation contract and an
// HTTP client implementing it. Generation is best-effort: callers are
// expected to keep a static fallback body for every generated block.
package generator

import (
	"context"
)

// Context carries the narrative context handed to the generator for one
// block.
type Context struct {
	Mask         string   `json:"mask"`
	Personality  string   `json:"personality"`
	Tone         string   `json:"tone"`
	FocusTags    []string `json:"focus_tags,omitempty"`
	RecentEvents []string `json:"recent_events,omitempty"`
}

// Options adjusts a single generation call.
type Options struct {
	// Endpoint overrides the client's configured endpoint when set.
	Endpoint string
	// MaxTokens caps the generated text. Zero means the default.
	MaxTokens int
}

// Generator produces the body of one narrative block.
type Generator interface {
	Generate(ctx context.Context, gc Context, templateID string, opts Options) (text string, err error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, gc Context, templateID string, opts Options) (text string, err error)

// Generate implements Generator.
func (f Func) Generate(ctx context.Context, gc Context, templateID string, opts Options) (text string, err error) {
	return f(ctx, gc, templateID, opts)
}
