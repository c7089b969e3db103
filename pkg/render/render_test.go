package render

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/inmidst/narrative-engine/pkg/narrative"
	"github.com/inmidst/narrative-engine/pkg/timeline"
)

func testOutput() (out narrative.Output) {
	out = narrative.Output{
		ID: "test-id",
		Blocks: []narrative.Block{
			{Title: "Summary", Body: "A decade of platform work.", TemplateID: "baseline/summary", Weight: 120},
			{Title: "Overview", Body: "Currently in a design phase.", TemplateID: "tpl/overview", Weight: 100},
		},
		Meta: narrative.Meta{
			ProfileRef:       "profile/ada",
			MaskName:         "architect",
			PersonalityLabel: "Systems Thinker",
			Timeline: timeline.Stats{
				Total:    2,
				StageArc: []string{"stage/discovery", "stage/design"},
			},
		},
	}

	return out
}

func TestFormatMarkdown(t *testing.T) {
	doc := FormatMarkdown(testOutput())

	for _, want := range []string{"# profile/ada", "## Summary", "## Overview", "A decade of platform work.", "architect", "Systems Thinker"} {
		if !strings.Contains(doc, want) {
			t.Errorf("Expected markdown to contain '%s'", want)
		}
	}

	// Blocks appear in order.
	if strings.Index(doc, "## Summary") > strings.Index(doc, "## Overview") {
		t.Error("Expected blocks rendered in order")
	}
}

func TestWriteMarkdown(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "nested", "narrative.md")

	err := WriteMarkdown(testOutput(), outputPath)
	if err != nil {
		t.Fatalf("Failed to write markdown: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if !strings.Contains(string(data), "# profile/ada") {
		t.Error("Expected written markdown to contain the profile heading")
	}
}

func TestWriteJSON(t *testing.T) {
	tmpDir := t.TempDir()
	outputPath := filepath.Join(tmpDir, "narrative.json")

	err := WriteJSON(testOutput(), outputPath)
	if err != nil {
		t.Fatalf("Failed to write JSON: %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	var out narrative.Output
	err = json.Unmarshal(data, &out)
	if err != nil {
		t.Fatalf("Failed to parse written JSON: %v", err)
	}

	if out.ID != "test-id" || len(out.Blocks) != 2 {
		t.Error("Expected round-tripped output to match")
	}
}
