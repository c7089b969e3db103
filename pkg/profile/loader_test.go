package profile

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/inmidst/narrative-engine/pkg/timeline"
)

func TestLoad(t *testing.T) {
	// Create a test history file.
	tmpDir := t.TempDir()
	historyPath := filepath.Join(tmpDir, "history.json")

	testData := Document{
		Profile: Identity{
			Ref:      "profile/ada",
			Name:     "Ada Test",
			Title:    "Staff Engineer",
			Location: "Test City",
			Links: map[string]string{
				"github": "https://github.com/ada",
			},
		},
		Timeline: []timeline.Entry{
			{
				ID:    "e1",
				Title: "Platform redesign",
				Start: "2025-09-01",
				Tags:  []string{"design", "architecture"},
			},
		},
		Contexts: []string{"hiring"},
		Tags:     []string{"platform"},
		Summary:  "A short abstract.",
	}

	data, err := json.MarshalIndent(testData, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal test data: %v", err)
	}

	err = os.WriteFile(historyPath, data, 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	// Test loading.
	loaded, err := Load(historyPath)
	if err != nil {
		t.Fatalf("Failed to load history: %v", err)
	}

	if loaded.Profile.Ref != "profile/ada" {
		t.Errorf("Expected profile ref 'profile/ada', got '%s'", loaded.Profile.Ref)
	}

	if len(loaded.Timeline) != 1 {
		t.Errorf("Expected 1 timeline entry, got %d", len(loaded.Timeline))
	}
}

func TestLoadNonexistent(t *testing.T) {
	_, err := Load("/nonexistent/history.json")
	if err == nil {
		t.Error("Expected error loading nonexistent file, got nil")
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	tmpDir := t.TempDir()
	historyPath := filepath.Join(tmpDir, "invalid.json")

	err := os.WriteFile(historyPath, []byte("not valid json"), 0600)
	if err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	_, err = Load(historyPath)
	if err == nil {
		t.Error("Expected error loading invalid JSON, got nil")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		doc       Document
		wantError bool
	}{
		{
			name: "valid document",
			doc: Document{
				Profile: Identity{Ref: "profile/ada", Name: "Ada Test"},
				Timeline: []timeline.Entry{
					{ID: "e1", Title: "Redesign", Start: "2025-09-01"},
				},
			},
			wantError: false,
		},
		{
			name: "empty timeline is fine",
			doc: Document{
				Profile: Identity{Ref: "profile/ada", Name: "Ada Test"},
			},
			wantError: false,
		},
		{
			name:      "missing ref",
			doc:       Document{Profile: Identity{Name: "Ada Test"}},
			wantError: true,
		},
		{
			name:      "missing name",
			doc:       Document{Profile: Identity{Ref: "profile/ada"}},
			wantError: true,
		},
		{
			name: "entry missing ID",
			doc: Document{
				Profile: Identity{Ref: "profile/ada", Name: "Ada Test"},
				Timeline: []timeline.Entry{
					{Title: "Redesign", Start: "2025-09-01"},
				},
			},
			wantError: true,
		},
		{
			name: "entry missing start",
			doc: Document{
				Profile: Identity{Ref: "profile/ada", Name: "Ada Test"},
				Timeline: []timeline.Entry{
					{ID: "e1", Title: "Redesign"},
				},
			},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.doc.Validate()
			if tt.wantError && err == nil {
				t.Error("Expected error, got nil")
			}
			if !tt.wantError && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestToView(t *testing.T) {
	doc := Document{
		Profile: Identity{Ref: "profile/ada", Name: "Ada Test"},
		Timeline: []timeline.Entry{
			{ID: "e1", Title: "Redesign", Start: "2025-09-01"},
		},
		Contexts: []string{"hiring"},
		Tags:     []string{"platform"},
		Summary:  "Abstract.",
	}

	v := doc.ToView()

	if v.ProfileRef != "profile/ada" {
		t.Errorf("Expected profile ref carried over, got '%s'", v.ProfileRef)
	}

	if len(v.Timeline) != 1 || len(v.Contexts) != 1 || len(v.Tags) != 1 {
		t.Error("Expected timeline, contexts, and tags carried over")
	}

	if v.Summary != "Abstract." {
		t.Errorf("Expected summary carried over, got '%s'", v.Summary)
	}

	if err := v.Validate(); err != nil {
		t.Errorf("Expected mapped view to validate, got %v", err)
	}
}
