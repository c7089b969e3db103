package scorer

import (
	"testing"

	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/view"
)

func architectMask(t *testing.T) (mask taxonomy.Mask) {
	t.Helper()

	mask, found := taxonomy.Defaults().MaskByID("mask/architect")
	if !found {
		t.Fatal("Expected to find mask/architect")
	}

	return mask
}

func TestMaskWeightComponents(t *testing.T) {
	mask := architectMask(t)

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring"},
		Tags:       []string{"design"},
	}

	// One context match (+2), one trigger match (+1), one include tag
	// (+2), tag weight for design (+1.0).
	score := MaskWeight(mask, v, nil, nil, nil)
	if score != 6.0 {
		t.Errorf("Expected score 6.0, got %f", score)
	}
}

func TestMaskWeightStageContextAddsAffinity(t *testing.T) {
	mask := architectMask(t)

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring"},
		Tags:       []string{"design"},
	}

	without := MaskWeight(mask, v, nil, nil, nil)
	with := MaskWeight(mask, v, []string{"stage/design"}, nil, nil)

	if with != without+1.0 {
		t.Errorf("Expected stage context to add affinity 1.0: without %f, with %f", without, with)
	}
}

func TestMaskWeightEpochContextAddsModifier(t *testing.T) {
	mask := architectMask(t)

	v := view.Config{ProfileRef: "profile/ada", Tags: []string{"design"}}

	without := MaskWeight(mask, v, nil, nil, nil)
	with := MaskWeight(mask, v, nil, []string{"epoch/foundation"}, nil)

	if with != without+0.5 {
		t.Errorf("Expected epoch context to add modifier 0.5: without %f, with %f", without, with)
	}
}

func TestMaskWeightExcludePenaltyIsSoft(t *testing.T) {
	store := taxonomy.Defaults()

	mask, found := store.MaskByID("mask/builder")
	if !found {
		t.Fatal("Expected to find mask/builder")
	}

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring"},
		Tags:       []string{"delivery", "politics"},
	}

	// Context +2, trigger +1, include +2, weight +1.0, exclude -1.
	score := MaskWeight(mask, v, nil, nil, store)
	if score != 5.0 {
		t.Errorf("Expected score 5.0 with soft exclude penalty, got %f", score)
	}
}

func TestScoreMaskForViewVeto(t *testing.T) {
	store := taxonomy.Defaults()

	mask, found := store.MaskByID("mask/builder")
	if !found {
		t.Fatal("Expected to find mask/builder")
	}

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring", "technical"},
		Tags:       []string{"delivery", "code", "politics"},
	}

	// Plenty of matches, but the exclude tag zeroes everything.
	if score := ScoreMaskForView(mask, v); score != 0 {
		t.Errorf("Expected hard veto score 0, got %f", score)
	}
}

func TestScoreMaskForViewCounts(t *testing.T) {
	mask := architectMask(t)

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring", "press"},
		Tags:       []string{"design", "platform"},
	}

	// 1 context + 2 triggers + 2 include tags.
	if score := ScoreMaskForView(mask, v); score != 5 {
		t.Errorf("Expected lightweight score 5, got %f", score)
	}
}

func TestSelectMasksForViewOrderAndTieBreak(t *testing.T) {
	masks := []taxonomy.Mask{
		{
			ID:         "mask/zeta",
			Name:       "zeta",
			Activation: taxonomy.Activation{Contexts: []string{"hiring"}},
		},
		{
			ID:         "mask/alpha",
			Name:       "alpha",
			Activation: taxonomy.Activation{Contexts: []string{"hiring"}},
		},
		{
			ID:   "mask/strong",
			Name: "strong",
			Activation: taxonomy.Activation{
				Contexts: []string{"hiring"},
				Triggers: []string{"design"},
			},
		},
		{
			ID:   "mask/silent",
			Name: "silent",
		},
	}

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring"},
		Tags:       []string{"design"},
	}

	ranked := SelectMasksForView(masks, v)

	if len(ranked) != 3 {
		t.Fatalf("Expected 3 ranked masks, got %d", len(ranked))
	}

	if ranked[0].Mask.ID != "mask/strong" {
		t.Errorf("Expected mask/strong first, got '%s'", ranked[0].Mask.ID)
	}

	// Equal scores break ties by ascending name.
	if ranked[1].Mask.Name != "alpha" || ranked[2].Mask.Name != "zeta" {
		t.Errorf("Expected tie-break alpha before zeta, got %s, %s", ranked[1].Mask.Name, ranked[2].Mask.Name)
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Ranking not non-increasing at index %d", i)
		}
	}
}

func TestSelectWeightedMasksSorted(t *testing.T) {
	store := taxonomy.Defaults()

	v := view.Config{
		ProfileRef: "profile/ada",
		Contexts:   []string{"hiring"},
		Tags:       []string{"design", "architecture"},
	}

	ranked := SelectWeightedMasks(store.Masks, v, []string{"stage/design"}, []string{"epoch/foundation"}, store)

	if len(ranked) == 0 {
		t.Fatal("Expected at least one ranked mask")
	}

	if ranked[0].Mask.ID != "mask/architect" {
		t.Errorf("Expected mask/architect to rank first, got '%s'", ranked[0].Mask.ID)
	}

	for i := 1; i < len(ranked); i++ {
		if ranked[i].Score > ranked[i-1].Score {
			t.Errorf("Ranking not non-increasing at index %d", i)
		}
	}
}

func TestSelectBestMaskExplicitFallback(t *testing.T) {
	// Empty pool, nothing to rank; the explicit mask id resolves
	// against the store.
	v := view.Config{
		ProfileRef: "profile/ada",
		MaskID:     "mask/chronicler",
		Masks:      []taxonomy.Mask{},
	}

	best, _, found := SelectBestMask(nil, v, nil, nil, nil)
	if !found {
		t.Fatal("Expected explicit mask fallback to resolve")
	}

	if best.ID != "mask/chronicler" {
		t.Errorf("Expected mask/chronicler, got '%s'", best.ID)
	}
}

func TestSelectBestMaskNothingResolvable(t *testing.T) {
	v := view.Config{ProfileRef: "profile/ada"}

	_, _, found := SelectBestMask(nil, v, nil, nil, nil)
	if found {
		t.Error("Expected no mask for empty pool and no explicit mask")
	}
}
