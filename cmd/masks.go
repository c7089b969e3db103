package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/inmidst/narrative-engine/pkg/config"
	"github.com/inmidst/narrative-engine/pkg/scorer"
	"github.com/inmidst/narrative-engine/pkg/taxonomy"
	"github.com/inmidst/narrative-engine/pkg/timeline"
	"github.com/inmidst/narrative-engine/pkg/view"
)

//nolint:gochecknoglobals // Cobra boilerplate
var masksWeighted bool

//nolint:gochecknoglobals // Cobra boilerplate
var masksCmd = &cobra.Command{
	Use:   "masks [view-file-or-url]",
	Short: "Rank masks against a view",
	Long: `Ranks every mask in the pool against a view and prints the scores.

The default ranking uses the lightweight score: simple context, trigger,
and tag matches, with excluded tags vetoing a mask outright. With
--weighted the full relational score is used instead, folding in tag
weights, stage affinities, and epoch modifiers from the timeline.

Examples:
  narrative-engine masks --context hiring --tag platform
  narrative-engine masks view.json --weighted`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMasks,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(masksCmd)
	masksCmd.Flags().BoolVar(&masksWeighted, "weighted", false, "Use the full relational score")
	masksCmd.Flags().StringSliceVar(&buildContexts, "context", nil, "Requested context (repeatable)")
	masksCmd.Flags().StringSliceVar(&buildTags, "tag", nil, "Focus tag (repeatable)")
}

func runMasks(cmd *cobra.Command, args []string) (err error) {
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

	applyViewFlags(&v, cfg)

	store := taxonomy.Defaults()

	pool := v.Masks
	if pool == nil {
		pool = store.Masks
	}

	var ranked []scorer.RankedMask
	if masksWeighted {
		stageIDs, epochIDs := timelineStructure(v, store)
		ranked = scorer.SelectWeightedMasks(pool, v, stageIDs, epochIDs, store)
	} else {
		ranked = scorer.SelectMasksForView(pool, v)
	}

	printMaskRanking(ranked, len(pool))

	return err
}

// timelineStructure collects the distinct stage and epoch ids touched by
// the view's timeline, in first-seen order.
func timelineStructure(v view.Config, store *taxonomy.Store) (stageIDs, epochIDs []string) {
	enriched := timeline.EnrichAll(v.Timeline, nil, timeline.Options{
		TagFilter: v.Tags,
		Store:     store,
	})

	seenStages := map[string]bool{}
	seenEpochs := map[string]bool{}

	for _, entry := range enriched {
		if entry.StageID != "" && !seenStages[entry.StageID] {
			seenStages[entry.StageID] = true
			stageIDs = append(stageIDs, entry.StageID)
		}
		if entry.EpochID != "" && !seenEpochs[entry.EpochID] {
			seenEpochs[entry.EpochID] = true
			epochIDs = append(epochIDs, entry.EpochID)
		}
	}

	return stageIDs, epochIDs
}

func printMaskRanking(ranked []scorer.RankedMask, poolSize int) {
	if len(ranked) == 0 {
		fmt.Printf("No masks scored above zero (%d in pool)\n", poolSize)
		return
	}

	titleCaser := cases.Title(language.English)

	fmt.Printf("%-24s %-36s %8s\n", "MASK", "ID", "SCORE")
	for _, r := range ranked {
		fmt.Printf("%-24s %-36s %8.2f\n", titleCaser.String(r.Mask.Name), r.Mask.ID, r.Score)
	}

	if len(ranked) < poolSize {
		fmt.Printf("\n%d of %d masks excluded or scoreless\n", poolSize-len(ranked), poolSize)
	}
}
