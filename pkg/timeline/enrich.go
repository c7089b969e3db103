package timeline

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/inmidst/narrative-engine/pkg/taxonomy"
)

// recencyHorizon is how far back an entry can start before its recency
// weight bottoms out at zero.
const recencyHorizon = 3 * 365 * 24 * time.Hour

var startFormats = []string{"2006-01-02", "2006-01", "2006"}

// Options adjusts a single enrichment pass.
type Options struct {
	// Now anchors recency. The zero value means time.Now().
	Now time.Time
	// TagFilter is the view's focus tags. Matches count into the
	// composite weight.
	TagFilter []string
	// Store supplies the taxonomy tables. Nil means the built-in
	// defaults.
	Store *taxonomy.Store
}

func (o Options) store() (store *taxonomy.Store) {
	if o.Store != nil {
		return o.Store
	}

	return taxonomy.Defaults()
}

func (o Options) now() (now time.Time) {
	if !o.Now.IsZero() {
		return o.Now
	}

	return time.Now()
}

// Enrich resolves an entry's stage, epoch, and setting and computes its
// composite weight under the given mask. A nil mask skips the mask-fit
// factor. Explicit ids and an explicit weight on the entry always win
// over inference.
func Enrich(entry Entry, mask *taxonomy.Mask, opts Options) (enriched EnrichedEntry) {
	store := opts.store()
	enriched.Entry = entry

	// Resolve the stage first; epoch and setting hang off it.
	var stageScore float64

	enriched.StageID = entry.StageID
	if enriched.StageID == "" {
		enriched.StageID, stageScore = inferStage(entry.Tags, store.Stages)
	}

	enriched.EpochID = entry.EpochID
	if enriched.EpochID == "" && enriched.StageID != "" {
		enriched.EpochID = store.EpochForStage(enriched.StageID).ID
	}

	enriched.SettingID = entry.SettingID
	if enriched.SettingID == "" && enriched.StageID != "" {
		enriched.SettingID = store.SettingForStage(enriched.StageID).ID
	}

	enriched.Scores.Recency = RecencyWeight(opts.now(), entry.Start)
	enriched.Scores.StageMatch = stageScore
	enriched.Scores.TagMatches = float64(countMatches(entry.Tags, opts.TagFilter))

	if mask != nil {
		enriched.Scores.MaskFit, enriched.Vetoed = maskFit(entry.Tags, mask)
		enriched.Scores.Affinity = store.Affinity(mask.ID, enriched.StageID)
		enriched.Scores.Modifier = store.Modifier(enriched.EpochID, mask.ID)
	}

	enriched.Weight = enriched.Scores.Recency +
		enriched.Scores.StageMatch +
		enriched.Scores.MaskFit +
		enriched.Scores.TagMatches +
		enriched.Scores.Affinity +
		enriched.Scores.Modifier

	if entry.Weight != nil {
		enriched.Weight = *entry.Weight
	}

	if enriched.Weight < 0 {
		enriched.Weight = 0
	}

	return enriched
}

// EnrichAll enriches every entry, preserving input order.
func EnrichAll(entries []Entry, mask *taxonomy.Mask, opts Options) (enriched []EnrichedEntry) {
	enriched = make([]EnrichedEntry, 0, len(entries))

	for _, entry := range entries {
		enriched = append(enriched, Enrich(entry, mask, opts))
	}

	return enriched
}

// ForMask enriches entries against a chosen mask, drops the ones the
// mask's exclude tags veto, and orders the survivors chronologically by
// start date. Entries with unparseable starts sort last, keeping their
// relative order.
func ForMask(entries []Entry, mask *taxonomy.Mask, opts Options) (filtered []EnrichedEntry) {
	for _, entry := range entries {
		enriched := Enrich(entry, mask, opts)
		if enriched.Vetoed {
			continue
		}

		filtered = append(filtered, enriched)
	}

	SortChronological(filtered)

	return filtered
}

// SortChronological orders enriched entries chronologically by start
// date, unparseable starts last, preserving relative order on ties.
func SortChronological(entries []EnrichedEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		ti, iok := parseStart(entries[i].Entry.Start)
		tj, jok := parseStart(entries[j].Entry.Start)

		if iok && !jok {
			return true
		}

		if !iok {
			return false
		}

		return ti.Before(tj)
	})
}

// RecencyWeight maps an entry start date onto [0, 1]: 1 at now, falling
// linearly to 0 at the three year horizon. Future starts count the same
// as past ones by distance. An unparseable or empty start yields 0.
func RecencyWeight(now time.Time, start string) (weight float64) {
	startTime, ok := parseStart(start)
	if !ok {
		return 0
	}

	distance := now.Sub(startTime)
	if distance < 0 {
		distance = -distance
	}

	if distance > recencyHorizon {
		distance = recencyHorizon
	}

	days := distance.Hours() / 24
	horizonDays := recencyHorizon.Hours() / 24

	weight = 1 - days/horizonDays

	return math.Max(0, weight)
}

func parseStart(start string) (t time.Time, ok bool) {
	if start == "" {
		return t, false
	}

	for _, format := range startFormats {
		parsed, err := time.Parse(format, start)
		if err == nil {
			return parsed, true
		}
	}

	return t, false
}

// inferStage picks the stage whose tags overlap the entry's tags the
// most. Ties go to the earlier stage in taxonomy order. Zero overlap
// resolves nothing.
func inferStage(tags []string, stages []taxonomy.Stage) (stageID string, score float64) {
	best := 0

	for _, stage := range stages {
		overlap := countMatches(tags, stage.Tags)
		if overlap > best {
			best = overlap
			stageID = stage.ID
		}
	}

	return stageID, float64(best)
}

// maskFit scores an entry's tags against a mask's filters. Any exclude
// tag match is a veto: zero fit regardless of the other factors.
func maskFit(tags []string, mask *taxonomy.Mask) (fit float64, vetoed bool) {
	set := tagSet(tags)

	for _, excluded := range mask.Filters.ExcludeTags {
		if set[strings.ToLower(excluded)] {
			return 0, true
		}
	}

	for _, included := range mask.Filters.IncludeTags {
		if set[strings.ToLower(included)] {
			fit++
		}
	}

	for tag, weight := range mask.Filters.TagWeights {
		if set[strings.ToLower(tag)] {
			fit += weight
		}
	}

	return fit, false
}

func countMatches(tags, against []string) (matches int) {
	set := tagSet(against)

	for _, tag := range tags {
		if set[strings.ToLower(tag)] {
			matches++
		}
	}

	return matches
}

func tagSet(tags []string) (set map[string]bool) {
	set = make(map[string]bool, len(tags))

	for _, tag := range tags {
		set[strings.ToLower(tag)] = true
	}

	return set
}
