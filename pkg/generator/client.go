package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

const (
	// DefaultEndpoint is the generation service endpoint used when
	// neither the client nor the call options name one.
	DefaultEndpoint = "http://localhost:8090/v1/generate"
	// DefaultMaxTokens caps generated block bodies.
	DefaultMaxTokens = 1024
)

// Client calls an HTTP text generation service.
type Client struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewClient creates a new generation client. An empty endpoint falls
// back to DefaultEndpoint; an empty apiKey sends no auth header.
func NewClient(apiKey, endpoint string) (client *Client) {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	client = &Client{
		apiKey:   apiKey,
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
	return client
}

// generateRequest is the wire format of one generation call.
type generateRequest struct {
	TemplateID string  `json:"template_id"`
	Prompt     string  `json:"prompt"`
	Context    Context `json:"context"`
	MaxTokens  int     `json:"max_tokens"`
}

// Generate requests one block body from the generation service.
func (c *Client) Generate(ctx context.Context, gc Context, templateID string, opts Options) (text string, err error) {
	endpoint := c.endpoint
	if opts.Endpoint != "" {
		endpoint = opts.Endpoint
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	genReq := generateRequest{
		TemplateID: templateID,
		Prompt:     BuildPrompt(gc, templateID),
		Context:    gc,
		MaxTokens:  maxTokens,
	}

	var reqBody []byte
	reqBody, err = json.Marshal(genReq)
	if err != nil {
		err = errors.Wrap(err, "failed to marshal generation request")
		return text, err
	}

	var httpReq *http.Request
	httpReq, err = http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(reqBody))
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return text, err
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("X-Api-Key", c.apiKey)
	}

	var resp *http.Response
	resp, err = c.httpClient.Do(httpReq)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return text, err
	}
	defer resp.Body.Close()

	var respBody []byte
	respBody, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return text, err
	}

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("generation request failed with status %d: %s", resp.StatusCode, string(respBody))
		return text, err
	}

	text, err = extractText(string(respBody))
	if err != nil {
		err = errors.Wrapf(err, "unusable generation response for template %s", templateID)
		return text, err
	}

	return text, err
}

// extractText pulls the generated text out of a response body. Services
// differ in envelope shape, so a few known fields are tried in order.
func extractText(body string) (text string, err error) {
	body = stripCodeFences(body)

	if !gjson.Valid(body) {
		err = errors.New("response is not valid JSON")
		return text, err
	}

	for _, path := range []string{"text", "output", "content.0.text"} {
		result := gjson.Get(body, path)
		if result.Exists() && result.String() != "" {
			return result.String(), nil
		}
	}

	err = errors.New("no text field in response")

	return text, err
}

// stripCodeFences removes a surrounding markdown code fence, if present.
func stripCodeFences(text string) (cleaned string) {
	cleaned = text

	if len(cleaned) < 6 || cleaned[:3] != "```" {
		return cleaned
	}

	// Skip the fence line, including any language tag.
	start := 3
	for start < len(cleaned) && cleaned[start] != '\n' {
		start++
	}
	start++

	end := len(cleaned)
	if end > 3 && cleaned[end-3:] == "```" {
		end -= 3
	}

	for end > start && (cleaned[end-1] == '\n' || cleaned[end-1] == ' ' || cleaned[end-1] == '\r') {
		end--
	}

	if start >= end {
		return text
	}

	cleaned = cleaned[start:end]

	return cleaned
}
