package narrative

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inmidst/narrative-engine/pkg/generator"
	"github.com/inmidst/narrative-engine/pkg/scorer"
	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/template"
	"github.com/inmidst/narrative-engine/pkg/timeline"
	"github.com/inmidst/narrative-engine/pkg/view"
)

// DefaultGenerationTimeout bounds each external generation call.
const DefaultGenerationTimeout = 20 * time.Second

var titleCaser = cases.Title(language.English)

// Builder assembles narratives. The zero value is usable: it runs on the
// built-in taxonomy and template bank with no external generator.
type Builder struct {
	// Store supplies taxonomy tables. Nil means the built-in defaults.
	Store *taxonomy.Store
	// Bank is the template pool. An empty bank means the default bank.
	Bank template.Bank
	// Generator produces bodies for generation-eligible templates. Nil
	// disables generation; static bodies are used instead.
	Generator generator.Generator
	// Timeout bounds each generation call. Zero means
	// DefaultGenerationTimeout.
	Timeout time.Duration
	// Now pins the clock for recency scoring. Zero means time.Now().
	Now time.Time
}

// NewBuilder creates a Builder with the built-in taxonomy and template
// bank and the given generator, which may be nil.
func NewBuilder(gen generator.Generator) (b *Builder) {
	b = &Builder{
		Store:     taxonomy.Defaults(),
		Bank:      template.DefaultBank(),
		Generator: gen,
		Timeout:   DefaultGenerationTimeout,
	}
	return b
}

// BuildNarrative assembles a narrative using lightweight mask selection.
func (b *Builder) BuildNarrative(ctx context.Context, v view.Config) (out Output, err error) {
	out, err = b.build(ctx, v, false, true)
	return out, err
}

// BuildNarrativeWithTimeline assembles a narrative over the supplied
// timeline, replacing whatever timeline the view carries.
func (b *Builder) BuildNarrativeWithTimeline(ctx context.Context, v view.Config, entries []timeline.Entry) (out Output, err error) {
	v.Timeline = entries

	out, err = b.build(ctx, v, false, true)
	return out, err
}

// BuildNarrativeWithEpochs assembles a narrative against a caller-supplied
// epoch table. The stage table is re-derived from the given epochs.
func (b *Builder) BuildNarrativeWithEpochs(ctx context.Context, v view.Config, epochs []taxonomy.Epoch) (out Output, err error) {
	v.Overrides.Epochs = epochs

	out, err = b.build(ctx, v, false, true)
	return out, err
}

// BuildWeightedNarrative assembles a narrative using full relational mask
// scoring. It never calls the external generator, so it is safe to use
// without network access.
func (b *Builder) BuildWeightedNarrative(ctx context.Context, v view.Config) (out Output, err error) {
	out, err = b.build(ctx, v, true, false)
	return out, err
}

// BuildNarrativeOutput runs the whole machine: full relational mask
// scoring plus external generation for the generation-eligible templates.
func (b *Builder) BuildNarrativeOutput(ctx context.Context, v view.Config) (out Output, err error) {
	out, err = b.build(ctx, v, true, true)
	return out, err
}

// build is the single-pass assembly pipeline. weighted picks the mask
// scoring strategy; allowGenerate enables external generation.
func (b *Builder) build(ctx context.Context, v view.Config, weighted, allowGenerate bool) (out Output, err error) {
	// Fail fast on a malformed view before any enrichment work.
	err = v.Validate()
	if err != nil {
		err = errors.Wrap(err, "invalid view config")
		return out, err
	}

	store := b.store().With(v.Overrides)
	opts := timeline.Options{Now: b.now(), TagFilter: v.Tags, Store: store}

	// First pass without a mask to learn the timeline's structure.
	pre := timeline.EnrichAll(v.Timeline, nil, opts)
	stageIDs, epochIDs := structuralIDs(pre)

	pool := maskPool(v, store)
	chosen, topScore, haveMask := chooseMask(pool, v, stageIDs, epochIDs, store, weighted)

	// Second pass against the chosen mask, dropping vetoed entries.
	var enriched []timeline.EnrichedEntry
	if haveMask {
		enriched = timeline.ForMask(v.Timeline, &chosen, opts)
	} else {
		enriched = pre
		timeline.SortChronological(enriched)
	}

	stats := timeline.Summarize(enriched)
	stage, epoch, setting := currentStructure(enriched, store)

	var personality taxonomy.Personality
	if haveMask {
		personality = store.PersonalityForMask(chosen.ID)
	}

	vars := deriveVars(v, chosen, haveMask, personality, stage, epoch, setting, stats, enriched, store)

	produced := map[string]bool{}
	blocks := baselineBlocks(v, enriched, produced)

	// Mask-dependent blocks only exist once a mask resolved.
	if haveMask {
		eligible := b.bank().Eligible(topScore, produced)
		bodies := b.expand(ctx, v, eligible, vars, chosen, personality, enriched, allowGenerate)

		for i, tmpl := range eligible {
			blocks = append(blocks, Block{
				Title:      tmpl.Title,
				Body:       bodies[i],
				Tags:       v.Tags,
				TemplateID: tmpl.ID,
				Weight:     tmpl.Weight,
			})
		}
	}

	if spotlight, ok := stageSpotlight(epoch, v); ok {
		blocks = append(blocks, spotlight)
	}

	out = Output{
		ID:     uuid.NewString(),
		Blocks: blocks,
		Meta: Meta{
			ProfileRef:       v.ProfileRef,
			MaskID:           chosen.ID,
			MaskName:         chosen.Name,
			PersonalityID:    personality.ID,
			PersonalityLabel: personality.Label,
			EpochID:          epoch.ID,
			StageID:          stage.ID,
			SettingID:        setting.ID,
			TopMaskScore:     topScore,
			Relations: Relations{
				PersonalityID: personality.ID,
				SettingID:     setting.ID,
				StageAffinity: store.Affinity(chosen.ID, stage.ID),
				EpochModifier: store.Modifier(epoch.ID, chosen.ID),
			},
			Timeline: stats,
		},
	}

	return out, err
}

func (b *Builder) store() (store *taxonomy.Store) {
	if b.Store != nil {
		return b.Store
	}

	return taxonomy.Defaults()
}

func (b *Builder) bank() (bank template.Bank) {
	if len(b.Bank.Templates) > 0 {
		return b.Bank
	}

	return template.DefaultBank()
}

func (b *Builder) now() (now time.Time) {
	if !b.Now.IsZero() {
		return b.Now
	}

	return time.Now()
}

func (b *Builder) timeout() (timeout time.Duration) {
	if b.Timeout > 0 {
		return b.Timeout
	}

	return DefaultGenerationTimeout
}

// maskPool resolves the view's available masks. A nil pool means the
// taxonomy's mask table; an explicit empty pool stays empty.
func maskPool(v view.Config, store *taxonomy.Store) (pool []taxonomy.Mask) {
	if v.Masks != nil {
		return v.Masks
	}

	return store.Masks
}

// chooseMask applies the selection precedence: an explicit view mask
// wins, then the top of the ranked selection for the requested strategy.
// The returned score is the chosen mask's score under that strategy.
func chooseMask(pool []taxonomy.Mask, v view.Config, stageIDs, epochIDs []string, store *taxonomy.Store, weighted bool) (chosen taxonomy.Mask, score float64, found bool) {
	if v.MaskID != "" {
		chosen, found = resolveMask(v.MaskID, pool, store)
		if found {
			if weighted {
				score = scorer.MaskWeight(chosen, v, stageIDs, epochIDs, store)
			} else {
				score = scorer.ScoreMaskForView(chosen, v)
			}

			return chosen, score, found
		}
	}

	if weighted {
		ranked := scorer.SelectWeightedMasks(pool, v, stageIDs, epochIDs, store)
		if len(ranked) > 0 {
			return ranked[0].Mask, ranked[0].Score, true
		}

		return chosen, 0, false
	}

	ranked := scorer.SelectMasksForView(pool, v)
	if len(ranked) > 0 {
		return ranked[0].Mask, ranked[0].Score, true
	}

	return chosen, 0, false
}

func resolveMask(id string, pool []taxonomy.Mask, store *taxonomy.Store) (mask taxonomy.Mask, found bool) {
	for _, m := range pool {
		if m.ID == id {
			return m, true
		}
	}

	mask, found = store.MaskByID(id)

	return mask, found
}

// structuralIDs collects the distinct stage and epoch ids present in an
// enriched timeline, preserving first-seen order.
func structuralIDs(entries []timeline.EnrichedEntry) (stageIDs, epochIDs []string) {
	seenStage := map[string]bool{}
	seenEpoch := map[string]bool{}

	for _, entry := range entries {
		if entry.StageID != "" && !seenStage[entry.StageID] {
			seenStage[entry.StageID] = true
			stageIDs = append(stageIDs, entry.StageID)
		}

		if entry.EpochID != "" && !seenEpoch[entry.EpochID] {
			seenEpoch[entry.EpochID] = true
			epochIDs = append(epochIDs, entry.EpochID)
		}
	}

	return stageIDs, epochIDs
}

// currentStructure resolves where the timeline currently stands: the
// most recent entry with a resolved stage, epoch, and setting wins.
func currentStructure(entries []timeline.EnrichedEntry, store *taxonomy.Store) (stage taxonomy.Stage, epoch taxonomy.Epoch, setting taxonomy.Setting) {
	for i := len(entries) - 1; i >= 0; i-- {
		if stage.ID == "" && entries[i].StageID != "" {
			stage, _ = store.StageByID(entries[i].StageID)
			if stage.ID == "" {
				// Unknown id, keep it for auditability.
				stage.ID = entries[i].StageID
			}
		}

		if epoch.ID == "" && entries[i].EpochID != "" {
			epoch, _ = store.EpochByID(entries[i].EpochID)
			if epoch.ID == "" {
				epoch.ID = entries[i].EpochID
			}
		}

		if setting.ID == "" && entries[i].SettingID != "" {
			setting, _ = store.SettingByID(entries[i].SettingID)
			if setting.ID == "" {
				setting.ID = entries[i].SettingID
			}
		}

		if stage.ID != "" && epoch.ID != "" && setting.ID != "" {
			break
		}
	}

	return stage, epoch, setting
}

// baselineBlocks produces the blocks that exist regardless of mask
// resolution and records their template ids for dedupe.
func baselineBlocks(v view.Config, enriched []timeline.EnrichedEntry, produced map[string]bool) (blocks []Block) {
	if v.Summary != "" {
		blocks = append(blocks, Block{
			Title:      "Summary",
			Body:       v.Summary,
			TemplateID: baselineSummaryID,
			Weight:     120,
		})
		produced[baselineSummaryID] = true
	}

	if len(enriched) > 0 {
		var lines []string
		for _, entry := range enriched {
			line := entry.Entry.Title
			if entry.Entry.Start != "" {
				line = fmt.Sprintf("%s: %s", entry.Entry.Start, entry.Entry.Title)
			}
			lines = append(lines, line)
		}

		blocks = append(blocks, Block{
			Title:      "Timeline",
			Body:       strings.Join(lines, "\n"),
			TemplateID: baselineTimelineID,
			Weight:     110,
		})
		produced[baselineTimelineID] = true
	}

	return blocks
}

// expand fills the eligible templates' bodies. Every body is interpolated
// first; generation-eligible templates then go to the external generator
// concurrently, each under its own timeout. A failed or empty generation
// silently keeps the interpolated body.
func (b *Builder) expand(ctx context.Context, v view.Config, eligible []template.Template, vars map[string]string, mask taxonomy.Mask, personality taxonomy.Personality, enriched []timeline.EnrichedEntry, allowGenerate bool) (bodies []string) {
	bodies = make([]string, len(eligible))

	for i, tmpl := range eligible {
		bodies[i] = template.Interpolate(tmpl.Body, vars)
	}

	if !allowGenerate || b.Generator == nil {
		return bodies
	}

	gc := generator.Context{
		Mask:         mask.Name,
		Personality:  personality.Label,
		Tone:         mask.Style.Tone,
		FocusTags:    v.Tags,
		RecentEvents: recentEvents(enriched, 3),
	}

	genOpts := generator.Options{
		Endpoint:  v.Generator.Endpoint,
		MaxTokens: v.Generator.MaxTokens,
	}

	var wg sync.WaitGroup
	for i, tmpl := range eligible {
		if !tmpl.Generate {
			continue
		}

		wg.Add(1)
		go func(i int, templateID string) {
			defer wg.Done()

			genCtx, cancel := context.WithTimeout(ctx, b.timeout())
			defer cancel()

			text, genErr := b.Generator.Generate(genCtx, gc, templateID, genOpts)
			if genErr != nil || strings.TrimSpace(text) == "" {
				// Fall back to the interpolated body.
				return
			}

			bodies[i] = text
		}(i, tmpl.ID)
	}
	wg.Wait()

	return bodies
}

// recentEvents renders the most recent entries as evidence lines,
// newest first.
func recentEvents(entries []timeline.EnrichedEntry, limit int) (events []string) {
	for i := len(entries) - 1; i >= 0 && len(events) < limit; i-- {
		entry := entries[i].Entry

		line := entry.Title
		if entry.Start != "" {
			line = fmt.Sprintf("%s: %s", entry.Start, entry.Title)
		}
		if entry.Summary != "" {
			line = fmt.Sprintf("%s (%s)", line, entry.Summary)
		}

		events = append(events, line)
	}

	return events
}

// stageSpotlight picks the stage of the resolved epoch with the highest
// tag overlap against the view. Ties favor the first stage in epoch
// order. No epoch, no spotlight.
func stageSpotlight(epoch taxonomy.Epoch, v view.Config) (block Block, ok bool) {
	if epoch.ID == "" || len(epoch.Stages) == 0 {
		return block, false
	}

	viewTags := map[string]bool{}
	for _, tag := range v.Tags {
		viewTags[strings.ToLower(tag)] = true
	}

	best := epoch.Stages[0]
	bestOverlap := -1

	for _, stage := range epoch.Stages {
		overlap := 0
		for _, tag := range stage.Tags {
			if viewTags[strings.ToLower(tag)] {
				overlap++
			}
		}

		if overlap > bestOverlap {
			best = stage
			bestOverlap = overlap
		}
	}

	block = Block{
		Title:      fmt.Sprintf("Spotlight: %s", titleCaser.String(best.Title)),
		Body:       best.Summary,
		Tags:       best.Tags,
		TemplateID: baselineSpotlightID,
		Weight:     10,
	}

	return block, true
}

// deriveVars builds the variable set the template bodies interpolate
// against. Unresolved pieces leave their variables empty, which is what
// the interpolator expects.
func deriveVars(v view.Config, mask taxonomy.Mask, haveMask bool, personality taxonomy.Personality, stage taxonomy.Stage, epoch taxonomy.Epoch, setting taxonomy.Setting, stats timeline.Stats, enriched []timeline.EnrichedEntry, store *taxonomy.Store) (vars map[string]string) {
	vars = map[string]string{
		"profile":         v.ProfileRef,
		"focus_tags":      strings.Join(v.Tags, ", "),
		"entry_count":     strconv.Itoa(stats.Total),
		"stage_title":     stage.Title,
		"stage_summary":   stage.Summary,
		"epoch_name":      epoch.Name,
		"epoch_summary":   epoch.Summary,
		"setting_title":   setting.Title,
		"setting_summary": setting.Summary,
		"stage_arc":       strings.Join(stageTitles(stats.StageArc, store), " -> "),
		"epoch_arc":       strings.Join(epochNames(stats.EpochArc, store), " -> "),
	}

	if haveMask {
		vars["mask_name"] = titleCaser.String(mask.Name)
		vars["mask_scope"] = mask.Scope
		vars["tone"] = mask.Style.Tone
		vars["rhetoric"] = string(mask.Style.Rhetoric)
		vars["personality"] = personality.Label
	}

	if len(enriched) > 0 {
		recent := enriched[len(enriched)-1].Entry
		vars["recent_title"] = recent.Title
		vars["recent_summary"] = recent.Summary
	}

	return vars
}

func stageTitles(ids []string, store *taxonomy.Store) (titles []string) {
	for _, id := range ids {
		stage, found := store.StageByID(id)
		if found {
			titles = append(titles, stage.Title)
			continue
		}

		titles = append(titles, id)
	}

	return titles
}

func epochNames(ids []string, store *taxonomy.Store) (names []string) {
	for _, id := range ids {
		epoch, found := store.EpochByID(id)
		if found {
			names = append(names, epoch.Name)
			continue
		}

		names = append(names, id)
	}

	return names
}
