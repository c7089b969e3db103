package timeline

// BuildArc walks entries in order and collects the key values, collapsing
// consecutive repeats. Empty keys are skipped without breaking a run: an
// entry with no resolved value does not cause its neighbor to repeat.
func BuildArc(entries []EnrichedEntry, key func(EnrichedEntry) string) (arc []string) {
	previous := ""

	for _, entry := range entries {
		value := key(entry)
		if value == "" || value == previous {
			continue
		}

		arc = append(arc, value)
		previous = value
	}

	return arc
}

// StageArc is the sequence of distinct consecutive stages.
func StageArc(entries []EnrichedEntry) (arc []string) {
	return BuildArc(entries, func(e EnrichedEntry) string { return e.StageID })
}

// EpochArc is the sequence of distinct consecutive epochs.
func EpochArc(entries []EnrichedEntry) (arc []string) {
	return BuildArc(entries, func(e EnrichedEntry) string { return e.EpochID })
}

// SettingArc is the sequence of distinct consecutive settings.
func SettingArc(entries []EnrichedEntry) (arc []string) {
	return BuildArc(entries, func(e EnrichedEntry) string { return e.SettingID })
}

// Summarize counts entries per stage and epoch and builds the two
// structural arcs.
func Summarize(entries []EnrichedEntry) (stats Stats) {
	stats.Total = len(entries)
	stats.ByStage = make(map[string]int)
	stats.ByEpoch = make(map[string]int)

	for _, entry := range entries {
		if entry.StageID != "" {
			stats.ByStage[entry.StageID]++
		}

		if entry.EpochID != "" {
			stats.ByEpoch[entry.EpochID]++
		}
	}

	stats.StageArc = StageArc(entries)
	stats.EpochArc = EpochArc(entries)

	return stats
}
