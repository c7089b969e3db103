package generator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}

		if r.Header.Get("Content-Type") != "application/json" {
			t.Errorf("Expected JSON content type, got %s", r.Header.Get("Content-Type"))
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text": "A measured paragraph about the work."}`))
	}))
	defer server.Close()

	client := NewClient("test-key", server.URL)

	gc := Context{
		Mask:        "architect",
		Personality: "Systems Thinker",
		Tone:        "measured",
		FocusTags:   []string{"platform"},
	}

	text, err := client.Generate(context.Background(), gc, "tpl/voice", Options{})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if text != "A measured paragraph about the work." {
		t.Errorf("Unexpected generated text: '%s'", text)
	}
}

func TestGenerateSendsAuthHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		_, _ = w.Write([]byte(`{"text": "ok"}`))
	}))
	defer server.Close()

	client := NewClient("secret", server.URL)

	_, err := client.Generate(context.Background(), Context{}, "tpl/voice", Options{})
	if err != nil {
		t.Fatalf("Failed to generate: %v", err)
	}

	if gotKey != "secret" {
		t.Errorf("Expected api key header 'secret', got '%s'", gotKey)
	}
}

func TestGenerateNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error": "overloaded"}`))
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	_, err := client.Generate(context.Background(), Context{}, "tpl/voice", Options{})
	if err == nil {
		t.Error("Expected error for 500 response, got nil")
	}
}

func TestGenerateNoTextField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "done"}`))
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	_, err := client.Generate(context.Background(), Context{}, "tpl/voice", Options{})
	if err == nil {
		t.Error("Expected error for response without text, got nil")
	}
}

func TestGenerateContextCancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	client := NewClient("", server.URL)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.Generate(ctx, Context{}, "tpl/voice", Options{})
	if err == nil {
		t.Error("Expected error for cancelled context, got nil")
	}
}

func TestExtractText(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		expected  string
		wantError bool
	}{
		{
			name:     "text field",
			body:     `{"text": "hello"}`,
			expected: "hello",
		},
		{
			name:     "output field",
			body:     `{"output": "hello"}`,
			expected: "hello",
		},
		{
			name:     "nested content",
			body:     `{"content": [{"text": "hello"}]}`,
			expected: "hello",
		},
		{
			name:     "fenced response",
			body:     "```json\n{\"text\": \"hello\"}\n```",
			expected: "hello",
		},
		{
			name:      "not json",
			body:      "plain prose",
			wantError: true,
		},
		{
			name:      "no known field",
			body:      `{"status": "ok"}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := extractText(tt.body)
			if tt.wantError {
				if err == nil {
					t.Error("Expected error, got nil")
				}
				return
			}

			if err != nil {
				t.Fatalf("Expected no error, got %v", err)
			}

			if text != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, text)
			}
		})
	}
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json fence",
			input:    "```json\n{\"a\": 1}\n```",
			expected: `{"a": 1}`,
		},
		{
			name:     "bare fence",
			input:    "```\ntext\n```",
			expected: "text",
		},
		{
			name:     "no fence",
			input:    `{"a": 1}`,
			expected: `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := stripCodeFences(tt.input)
			if result != tt.expected {
				t.Errorf("Expected '%s', got '%s'", tt.expected, result)
			}
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	gc := Context{
		Mask:         "architect",
		Personality:  "Systems Thinker",
		Tone:         "measured",
		FocusTags:    []string{"platform", "reliability"},
		RecentEvents: []string{"2026-01: Led platform redesign"},
	}

	prompt := BuildPrompt(gc, "tpl/voice")

	for _, want := range []string{"architect", "Systems Thinker", "measured", "platform, reliability", "Led platform redesign", "tpl/voice"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Expected prompt to contain '%s'", want)
		}
	}
}

func TestFuncAdapter(t *testing.T) {
	called := false
	gen := Func(func(ctx context.Context, gc Context, templateID string, opts Options) (string, error) {
		called = true
		return "adapted", nil
	})

	text, err := gen.Generate(context.Background(), Context{}, "tpl/voice", Options{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !called || text != "adapted" {
		t.Errorf("Expected adapter to delegate, got '%s'", text)
	}
}
