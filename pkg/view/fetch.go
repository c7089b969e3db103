package view

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Fetch retrieves a view config from a file or URL.
func Fetch(input string) (config Config, err error) {
	ctx := context.Background()
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	config, err = FetchWithContext(ctx, input)
	return config, err
}

// FetchWithContext retrieves a view config with context.
func FetchWithContext(ctx context.Context, input string) (config Config, err error) {
	var data []byte

	// Check if input is a URL
	parsedURL, urlErr := url.Parse(input)
	if urlErr == nil && (parsedURL.Scheme == "http" || parsedURL.Scheme == "https") {
		data, err = fetchFromURL(ctx, input)
		if err != nil {
			err = errors.Wrapf(err, "failed to fetch view config from URL: %s", input)
			return config, err
		}
	} else {
		data, err = os.ReadFile(input)
		if err != nil {
			err = errors.Wrapf(err, "failed to read view config file: %s", input)
			return config, err
		}
	}

	if len(data) == 0 {
		err = errors.Errorf("view config %s is empty", input)
		return config, err
	}

	err = json.Unmarshal(data, &config)
	if err != nil {
		err = errors.Wrapf(err, "failed to parse view config: %s", input)
		return config, err
	}

	err = config.Validate()
	if err != nil {
		err = errors.Wrapf(err, "invalid view config: %s", input)
		return config, err
	}

	return config, err
}

func fetchFromURL(ctx context.Context, urlStr string) (data []byte, err error) {
	var req *http.Request
	req, err = http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		err = errors.Wrap(err, "failed to create HTTP request")
		return data, err
	}

	req.Header.Set("User-Agent", "narrative-engine/1.0")
	req.Header.Set("Accept", "application/json")

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	var resp *http.Response
	resp, err = client.Do(req)
	if err != nil {
		err = errors.Wrap(err, "HTTP request failed")
		return data, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = errors.Errorf("HTTP request failed with status: %d", resp.StatusCode)
		return data, err
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		err = errors.Wrap(err, "failed to read response body")
		return data, err
	}

	return data, err
}
