// Package scorer ranks masks against a requested view. It offers two
// strategies: a full relational score that folds in stage affinities and
// epoch modifiers, and a lightweight count-based score with a hard
// exclude-tag veto.
package scorer

import (
	"sort"
	"strings"

	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/view"
)

// Full-score weights per match kind.
const (
	contextMatchScore = 2.0
	triggerMatchScore = 1.0
	includeTagScore   = 2.0
	excludeTagPenalty = 1.0
)

// RankedMask pairs a mask with its score against one view.
type RankedMask struct {
	Mask  taxonomy.Mask `json:"mask"`
	Score float64       `json:"score"`
}

// MaskWeight computes the full relational score of a mask against a view.
// Stage and epoch ids supply optional timeline context; each one adds the
// mask's affinity or modifier for it. Exclude-tag matches subtract rather
// than veto here; the hard veto belongs to ScoreMaskForView.
func MaskWeight(mask taxonomy.Mask, v view.Config, stageIDs, epochIDs []string, store *taxonomy.Store) (score float64) {
	if store == nil {
		store = taxonomy.Defaults()
	}

	contexts := lowered(v.Contexts)
	tags := lowered(v.Tags)

	for _, c := range mask.Activation.Contexts {
		if contexts[strings.ToLower(c)] {
			score += contextMatchScore
		}
	}

	for _, trigger := range mask.Activation.Triggers {
		if tags[strings.ToLower(trigger)] {
			score += triggerMatchScore
		}
	}

	for _, included := range mask.Filters.IncludeTags {
		if tags[strings.ToLower(included)] {
			score += includeTagScore
		}
	}

	for _, excluded := range mask.Filters.ExcludeTags {
		if tags[strings.ToLower(excluded)] {
			score -= excludeTagPenalty
		}
	}

	for tag, weight := range mask.Filters.TagWeights {
		if tags[strings.ToLower(tag)] {
			score += weight
		}
	}

	for _, stageID := range stageIDs {
		score += store.Affinity(mask.ID, stageID)
	}

	for _, epochID := range epochIDs {
		score += store.Modifier(epochID, mask.ID)
	}

	return score
}

// ScoreMaskForView computes the lightweight score of a mask against a
// view: plain counts of context, trigger, and include-tag matches. Any
// view tag in the mask's exclude-tags is a hard veto and zeroes the
// score outright.
func ScoreMaskForView(mask taxonomy.Mask, v view.Config) (score float64) {
	contexts := lowered(v.Contexts)
	tags := lowered(v.Tags)

	for _, excluded := range mask.Filters.ExcludeTags {
		if tags[strings.ToLower(excluded)] {
			return 0
		}
	}

	for _, c := range mask.Activation.Contexts {
		if contexts[strings.ToLower(c)] {
			score++
		}
	}

	for _, trigger := range mask.Activation.Triggers {
		if tags[strings.ToLower(trigger)] {
			score++
		}
	}

	for _, included := range mask.Filters.IncludeTags {
		if tags[strings.ToLower(included)] {
			score++
		}
	}

	return score
}

// SelectMasksForView lightweight-scores a pool of masks, drops
// non-positive scores, and sorts descending by score with ties broken by
// ascending mask name.
func SelectMasksForView(masks []taxonomy.Mask, v view.Config) (ranked []RankedMask) {
	for _, mask := range masks {
		score := ScoreMaskForView(mask, v)
		if score <= 0 {
			continue
		}

		ranked = append(ranked, RankedMask{Mask: mask, Score: score})
	}

	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}

		return ranked[i].Mask.Name < ranked[j].Mask.Name
	})

	return ranked
}

// SelectWeightedMasks full-scores a pool of masks, drops non-positive
// scores, and sorts descending by score only.
func SelectWeightedMasks(masks []taxonomy.Mask, v view.Config, stageIDs, epochIDs []string, store *taxonomy.Store) (ranked []RankedMask) {
	for _, mask := range masks {
		score := MaskWeight(mask, v, stageIDs, epochIDs, store)
		if score <= 0 {
			continue
		}

		ranked = append(ranked, RankedMask{Mask: mask, Score: score})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	return ranked
}

// SelectBestMask returns the top of the weighted selection. When the
// weighted list is empty it falls back to the view's explicit mask,
// resolved first against the pool and then against the store. The score
// returned is the chosen mask's full weight; found reports whether any
// mask was chosen at all.
func SelectBestMask(masks []taxonomy.Mask, v view.Config, stageIDs, epochIDs []string, store *taxonomy.Store) (best taxonomy.Mask, score float64, found bool) {
	if store == nil {
		store = taxonomy.Defaults()
	}

	ranked := SelectWeightedMasks(masks, v, stageIDs, epochIDs, store)
	if len(ranked) > 0 {
		return ranked[0].Mask, ranked[0].Score, true
	}

	if v.MaskID == "" {
		return best, 0, false
	}

	for _, mask := range masks {
		if mask.ID == v.MaskID {
			return mask, MaskWeight(mask, v, stageIDs, epochIDs, store), true
		}
	}

	mask, ok := store.MaskByID(v.MaskID)
	if ok {
		return mask, MaskWeight(mask, v, stageIDs, epochIDs, store), true
	}

	return best, 0, false
}

func lowered(values []string) (set map[string]bool) {
	set = make(map[string]bool, len(values))

	for _, value := range values {
		set[strings.ToLower(value)] = true
	}

	return set
}
