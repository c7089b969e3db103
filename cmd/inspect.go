package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inmidst/narrative-engine/pkg/config"
	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/timeline"
	"github.com/inmidst/narrative-engine/pkg/view"
)

//nolint:gochecknoglobals // Cobra boilerplate
var inspectMask string

//nolint:gochecknoglobals // Cobra boilerplate
var inspectCmd = &cobra.Command{
	Use:   "inspect [view-file-or-url]",
	Short: "Inspect enriched timeline weights",
	Long: `Enriches the timeline and prints each entry's resolved stage, epoch,
composite weight, and score breakdown, followed by the collapsed stage
and epoch arcs.

With --mask, entries are scored for that mask; entries carrying one of
the mask's excluded tags are marked vetoed.

Example:
  narrative-engine inspect --tag architecture
  narrative-engine inspect view.json --mask mask/builder`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringVar(&inspectMask, "mask", "", "Score entries for this mask id")
}

func runInspect(cmd *cobra.Command, args []string) (err error) {
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	var v view.Config
	if len(args) == 1 {
		v, err = view.Fetch(args[0])
		if err != nil {
			err = errors.Wrap(err, "failed to load view config")
			return err
		}
	} else {
		v, err = viewFromHistory(cfg)
		if err != nil {
			return err
		}
	}

	store := taxonomy.Defaults().With(v.Overrides)

	var mask *taxonomy.Mask
	if inspectMask != "" {
		m, found := store.MaskByID(inspectMask)
		if !found {
			err = errors.Errorf("unknown mask id: %s", inspectMask)
			return err
		}
		mask = &m
	}

	opts := timeline.Options{
		TagFilter: v.Tags,
		Store:     store,
	}

	enriched := timeline.EnrichAll(v.Timeline, mask, opts)
	timeline.SortChronological(enriched)

	printEnrichedTimeline(enriched, store)

	stats := timeline.Summarize(enriched)
	printArcs(stats, store)

	return err
}

func printEnrichedTimeline(enriched []timeline.EnrichedEntry, store *taxonomy.Store) {
	if len(enriched) == 0 {
		fmt.Println("Timeline is empty")
		return
	}

	for _, e := range enriched {
		stageTitle := e.StageID
		if stage, found := store.StageByID(e.StageID); found {
			stageTitle = stage.Title
		}

		marker := " "
		if e.Vetoed {
			marker = "x"
		}

		fmt.Printf("%s %-10s %-32s stage=%-14s weight=%.3f\n", marker, e.Entry.Start, e.Entry.Title, stageTitle, e.Weight)

		if getVerbose() {
			s := e.Scores
			fmt.Printf("    recency=%.3f stage=%.1f fit=%.2f tags=%.1f affinity=%.2f modifier=%.2f\n",
				s.Recency, s.StageMatch, s.MaskFit, s.TagMatches, s.Affinity, s.Modifier)
		}
	}
}

func printArcs(stats timeline.Stats, store *taxonomy.Store) {
	fmt.Printf("\nEntries: %d\n", stats.Total)

	if len(stats.StageArc) > 0 {
		fmt.Printf("Stage arc: %s\n", strings.Join(arcTitles(stats.StageArc, func(id string) (title string, found bool) {
			stage, ok := store.StageByID(id)
			return stage.Title, ok
		}), " -> "))
	}

	if len(stats.EpochArc) > 0 {
		fmt.Printf("Epoch arc: %s\n", strings.Join(arcTitles(stats.EpochArc, func(id string) (title string, found bool) {
			epoch, ok := store.EpochByID(id)
			return epoch.Name, ok
		}), " -> "))
	}
}

// arcTitles maps arc ids to display names, keeping the raw id when the
// store has no entry for it.
func arcTitles(ids []string, lookup func(id string) (title string, found bool)) (titles []string) {
	titles = make([]string, 0, len(ids))

	for _, id := range ids {
		title, found := lookup(id)
		if !found || title == "" {
			title = id
		}
		titles = append(titles, title)
	}

	return titles
}
