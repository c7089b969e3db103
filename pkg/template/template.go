// Package template holds the weighted narrative template bank and the
// placeholder interpolator that fills template bodies from derived
// variables.
package template

import (
	"regexp"
	"sort"
)

// Template is one weighted narrative template. Generate marks the body
// as eligible for external text generation; its static body remains the
// fallback when generation fails.
type Template struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Body     string  `json:"body"`
	MinScore float64 `json:"min_score"`
	Weight   float64 `json:"weight"`
	Generate bool    `json:"generate,omitempty"`
}

// Bank is a pool of templates.
type Bank struct {
	Templates []Template
}

// placeholderPattern matches {{name}} tokens, tolerating inner spaces.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Interpolate replaces every {{name}} placeholder in body with the
// matching variable. Unknown placeholders resolve to an empty string,
// never an error.
func Interpolate(body string, vars map[string]string) (expanded string) {
	expanded = placeholderPattern.ReplaceAllStringFunc(body, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		return vars[name]
	})

	return expanded
}

// Eligible filters the bank down to templates whose minimum score gate
// clears topScore and whose id has not already been produced by a
// baseline block, then sorts the survivors by descending weight. Equal
// weights keep bank order.
func (b Bank) Eligible(topScore float64, produced map[string]bool) (eligible []Template) {
	for _, t := range b.Templates {
		if t.MinScore > topScore {
			continue
		}

		if produced[t.ID] {
			continue
		}

		eligible = append(eligible, t)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Weight > eligible[j].Weight
	})

	return eligible
}

// DefaultBank is the built-in template pool. Bodies reference the
// variable set derived by the assembler; the generation-eligible subset
// keeps static bodies as fallbacks.
func DefaultBank() (bank Bank) {
	bank.Templates = []Template{
		{
			ID:       "tpl/overview",
			Title:    "Overview",
			Body:     "{{profile}} is working through a {{stage_title}} phase of the {{epoch_name}} era, with {{entry_count}} recorded chapters so far.",
			MinScore: 0,
			Weight:   100,
		},
		{
			ID:       "tpl/trajectory",
			Title:    "Trajectory",
			Body:     "The arc of this history runs {{stage_arc}}, settling most recently into {{stage_title}}.",
			MinScore: 0,
			Weight:   90,
		},
		{
			ID:       "tpl/voice",
			Title:    "Point of View",
			Body:     "This account is told through the {{mask_name}} mask: a {{tone}}, {{rhetoric}} voice shaped by the {{personality}} temperament.",
			MinScore: 1,
			Weight:   80,
			Generate: true,
		},
		{
			ID:       "tpl/era",
			Title:    "The Present Era",
			Body:     "{{epoch_name}}: {{epoch_summary}}",
			MinScore: 1,
			Weight:   70,
		},
		{
			ID:       "tpl/highlight",
			Title:    "Recent Highlight",
			Body:     "{{recent_title}}. {{recent_summary}}",
			MinScore: 2,
			Weight:   60,
			Generate: true,
		},
		{
			ID:       "tpl/setting",
			Title:    "The Scene",
			Body:     "{{setting_title}}: {{setting_summary}}",
			MinScore: 2,
			Weight:   50,
		},
		{
			ID:       "tpl/focus",
			Title:    "Focus",
			Body:     "Current attention goes to {{focus_tags}}, seen through the lens of {{mask_scope}}.",
			MinScore: 3,
			Weight:   40,
		},
		{
			ID:       "tpl/outlook",
			Title:    "Outlook",
			Body:     "From {{stage_title}}, the road ahead points further into {{epoch_name}} territory.",
			MinScore: 4,
			Weight:   30,
			Generate: true,
		},
	}

	return bank
}
