package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/inmidst/narrative-engine/pkg/config"
	"github.com/inmidst/narrative-engine/pkg/generator"
	"github.com/inmidst/narrative-engine/pkg/narrative"
	"github.com/inmidst/narrative-engine/pkg/profile"
	"github.com/inmidst/narrative-engine/pkg/render"
	"github.com/inmidst/narrative-engine/pkg/view"
)

//nolint:gochecknoglobals // Cobra boilerplate
var buildContexts []string

//nolint:gochecknoglobals // Cobra boilerplate
var buildTags []string

//nolint:gochecknoglobals // Cobra boilerplate
var buildMask string

//nolint:gochecknoglobals // Cobra boilerplate
var outputDir string

//nolint:gochecknoglobals // Cobra boilerplate
var outputFormat string

//nolint:gochecknoglobals // Cobra boilerplate
var skipGenerate bool

//nolint:gochecknoglobals // Cobra boilerplate
var buildCmd = &cobra.Command{
	Use:   "build [view-file-or-url]",
	Short: "Build a narrative for a view",
	Long: `Build a narrative from your career history.

The view can be provided as a JSON file or URL. Without one, a view is
derived from the history file named in the config, and the --context,
--tag, and --mask flags refine it.

Example:
  narrative-engine build --context hiring --tag platform
  narrative-engine build view.json --mask mask/architect
  narrative-engine build https://example.com/views/press.json --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().StringSliceVar(&buildContexts, "context", nil, "Requested context (repeatable, e.g. hiring, press)")
	buildCmd.Flags().StringSliceVar(&buildTags, "tag", nil, "Focus tag (repeatable)")
	buildCmd.Flags().StringVar(&buildMask, "mask", "", "Force a specific mask id")
	buildCmd.Flags().StringVar(&outputDir, "output-dir", "", "Output directory (default from config)")
	buildCmd.Flags().StringVar(&outputFormat, "format", "markdown", "Output format: markdown, json, or both")
	buildCmd.Flags().BoolVar(&skipGenerate, "skip-generate", false, "Skip external text generation, use static template bodies")
}

func runBuild(cmd *cobra.Command, args []string) (err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 5*time.Minute)
	defer cancel()

	// Load configuration
	var cfg config.Config
	cfg, err = config.Load(getConfigFile())
	if err != nil {
		err = errors.Wrap(err, "failed to load config")
		return err
	}

	// Resolve the view to build
	var v view.Config
	if len(args) == 1 {
		v, err = fetchAndLogView(ctx, args[0])
	} else {
		v, err = viewFromHistory(cfg)
	}
	if err != nil {
		return err
	}

	applyViewFlags(&v, cfg)

	builder := buildNarrativeBuilder(cfg)

	// Show spinner during assembly unless in verbose mode
	var buildSpinner *spinner
	if !getVerbose() {
		buildSpinner = newSpinner("Building narrative...")
		buildSpinner.start()
	} else {
		fmt.Println("Building narrative...")
	}

	var out narrative.Output
	if skipGenerate || builder.Generator == nil {
		out, err = builder.BuildWeightedNarrative(ctx, v)
	} else {
		out, err = builder.BuildNarrativeOutput(ctx, v)
	}

	if buildSpinner != nil {
		buildSpinner.stopSpinner()
	}

	if err != nil {
		err = errors.Wrap(err, "narrative build failed")
		return err
	}

	if !getVerbose() {
		fmt.Println("✓ Narrative assembled")
	}

	logBuildResults(out)

	err = writeOutputs(out, cfg)

	return err
}

// fetchAndLogView loads a view config from a file or URL.
func fetchAndLogView(ctx context.Context, input string) (v view.Config, err error) {
	if getVerbose() {
		fmt.Printf("Loading view config from: %s\n", input)
	}

	v, err = view.FetchWithContext(ctx, input)
	if err != nil {
		err = errors.Wrap(err, "failed to load view config")
		return v, err
	}

	return v, err
}

// viewFromHistory derives a view from the configured history file.
func viewFromHistory(cfg config.Config) (v view.Config, err error) {
	if getVerbose() {
		fmt.Printf("Loading history from: %s\n", cfg.HistoryLocation)
	}

	var doc profile.Document
	doc, err = profile.Load(cfg.HistoryLocation)
	if err != nil {
		err = errors.Wrap(err, "failed to load history")
		return v, err
	}

	if getVerbose() {
		fmt.Printf("Loaded %d timeline entries\n", len(doc.Timeline))
	}

	v = doc.ToView()

	return v, err
}

// applyViewFlags folds command line refinements and config defaults into
// the view.
func applyViewFlags(v *view.Config, cfg config.Config) {
	if len(buildContexts) > 0 {
		v.Contexts = buildContexts
	}

	if len(v.Contexts) == 0 {
		v.Contexts = cfg.Defaults.Contexts
	}

	if len(buildTags) > 0 {
		v.Tags = buildTags
	}

	if len(v.Tags) == 0 {
		v.Tags = cfg.Defaults.Tags
	}

	if buildMask != "" {
		v.MaskID = buildMask
	}

	if v.Generator.Endpoint == "" {
		v.Generator.Endpoint = cfg.Generator.Endpoint
	}

	if v.Generator.MaxTokens == 0 {
		v.Generator.MaxTokens = cfg.Generator.MaxTokens
	}
}

// buildNarrativeBuilder wires the assembler, attaching a generator client
// only when one is configured.
func buildNarrativeBuilder(cfg config.Config) (builder *narrative.Builder) {
	var gen generator.Generator
	if cfg.Generator.Endpoint != "" || cfg.Generator.APIKey != "" {
		gen = generator.NewClient(cfg.Generator.APIKey, cfg.Generator.Endpoint)
	}

	builder = narrative.NewBuilder(gen)

	return builder
}

func logBuildResults(out narrative.Output) {
	if !getVerbose() {
		return
	}

	if out.Meta.MaskName != "" {
		fmt.Printf("Mask: %s (%s)\n", out.Meta.MaskName, out.Meta.PersonalityLabel)
	} else {
		fmt.Println("No mask resolved; baseline blocks only")
	}

	fmt.Printf("Blocks: %d\n", len(out.Blocks))
	if len(out.Meta.Timeline.StageArc) > 0 {
		fmt.Printf("Stage arc: %s\n", strings.Join(out.Meta.Timeline.StageArc, " -> "))
	}
}

// writeOutputs writes the narrative in the requested formats.
func writeOutputs(out narrative.Output, cfg config.Config) (err error) {
	baseOutDir := outputDir
	if baseOutDir == "" {
		baseOutDir = cfg.Defaults.OutputDir
	}

	base := sanitizeFilename(out.Meta.ProfileRef)
	if out.Meta.MaskName != "" {
		base = base + "-" + sanitizeFilename(out.Meta.MaskName)
	}

	writeMD := outputFormat == "markdown" || outputFormat == "both"
	writeJSON := outputFormat == "json" || outputFormat == "both"

	if !writeMD && !writeJSON {
		err = errors.Errorf("unknown output format: %s (want markdown, json, or both)", outputFormat)
		return err
	}

	if writeMD {
		mdPath := filepath.Join(baseOutDir, base+".md")
		err = render.WriteMarkdown(out, mdPath)
		if err != nil {
			return err
		}
		fmt.Printf("Narrative saved at: %s\n", mdPath)
	}

	if writeJSON {
		jsonPath := filepath.Join(baseOutDir, base+".json")
		err = render.WriteJSON(out, jsonPath)
		if err != nil {
			return err
		}
		fmt.Printf("Narrative JSON saved at: %s\n", jsonPath)
	}

	return err
}

// spinner provides a simple text-based progress indicator.
type spinner struct {
	message string
	stop    chan bool
	done    chan bool
	mu      sync.Mutex
	active  bool
}

func newSpinner(message string) (s *spinner) {
	s = &spinner{
		message: message,
		stop:    make(chan bool),
		done:    make(chan bool),
	}
	return s
}

func (s *spinner) start() {
	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.mu.Unlock()

	go func() {
		chars := []string{"|", "/", "-", "\\"}
		i := 0
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()

		fmt.Printf("%s ", s.message)
		for {
			select {
			case <-s.stop:
				// Clear the line and ensure cursor is at start of new line
				fmt.Printf("\r%s\r", strings.Repeat(" ", len(s.message)+2))
				s.done <- true
				return
			case <-ticker.C:
				fmt.Printf("\r%s %s", s.message, chars[i%len(chars)])
				i++
			}
		}
	}()
}

func (s *spinner) stopSpinner() {
	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.stop <- true
	<-s.done

	s.mu.Lock()
	s.active = false
	s.mu.Unlock()
}

// sanitizeFilename lowercases a name and reduces it to hyphen-separated
// alphanumerics.
func sanitizeFilename(name string) (sanitized string) {
	sanitized = strings.ToLower(name)

	// Replace spaces and special chars with hyphens
	sanitized = strings.Map(func(r rune) (result rune) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			result = r
			return result
		}
		result = '-'
		return result
	}, sanitized)

	// Remove consecutive hyphens
	for strings.Contains(sanitized, "--") {
		sanitized = strings.ReplaceAll(sanitized, "--", "-")
	}

	// Trim hyphens from ends
	sanitized = strings.Trim(sanitized, "-")

	return sanitized
}
