// Package render writes narrative outputs to disk as markdown or JSON.
package render

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/inmidst/narrative-engine/pkg/narrative"
)

// FormatMarkdown renders a narrative output as a markdown document:
// one section per block, in block order, with an audit footer.
func FormatMarkdown(out narrative.Output) (doc string) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# %s\n\n", out.Meta.ProfileRef))

	for _, block := range out.Blocks {
		sb.WriteString(fmt.Sprintf("## %s\n\n", block.Title))
		sb.WriteString(block.Body)
		sb.WriteString("\n\n")
	}

	sb.WriteString("---\n\n")

	if out.Meta.MaskName != "" {
		sb.WriteString(fmt.Sprintf("Told through the %s mask", out.Meta.MaskName))
		if out.Meta.PersonalityLabel != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", out.Meta.PersonalityLabel))
		}
		sb.WriteString(".\n")
	}

	if len(out.Meta.Timeline.StageArc) > 0 {
		sb.WriteString(fmt.Sprintf("Arc: %s\n", strings.Join(out.Meta.Timeline.StageArc, " -> ")))
	}

	doc = sb.String()

	return doc
}

// WriteMarkdown renders an output and writes it to a file.
func WriteMarkdown(out narrative.Output, outputPath string) (err error) {
	err = ensureDir(outputPath)
	if err != nil {
		return err
	}

	err = os.WriteFile(outputPath, []byte(FormatMarkdown(out)), 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write markdown file: %s", outputPath)
		return err
	}

	return err
}

// WriteJSON writes the raw narrative output as indented JSON.
func WriteJSON(out narrative.Output, outputPath string) (err error) {
	err = ensureDir(outputPath)
	if err != nil {
		return err
	}

	var data []byte
	data, err = json.MarshalIndent(out, "", "  ")
	if err != nil {
		err = errors.Wrap(err, "failed to marshal narrative output")
		return err
	}

	err = os.WriteFile(outputPath, data, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write JSON file: %s", outputPath)
		return err
	}

	return err
}

// ensureDir creates the parent directory of a target path.
func ensureDir(outputPath string) (err error) {
	outputDir := filepath.Dir(outputPath)
	err = os.MkdirAll(outputDir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", outputDir)
		return err
	}

	return err
}
