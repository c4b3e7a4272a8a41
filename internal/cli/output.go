// Package cli provides output and remote-call helpers for the stodlotsen CLI.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/models"
	"github.com/hyperjump/stodlotsen/pkg/utils"
)

// OutputFormat is the format for command output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is structured JSON for machine consumption.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat validates an --output value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputText:
		return OutputText, nil
	case OutputJSON:
		return OutputJSON, nil
	}
	return "", fmt.Errorf("unknown output format %q; use text or json", s)
}

// WriteSearchResults writes a local search response to w.
func WriteSearchResults(w io.Writer, resp *models.SearchResponse, f *format.Formatter, out OutputFormat) error {
	if out == OutputJSON {
		return format.JSON(w, resp)
	}
	_, err := fmt.Fprintln(w, f.SearchResults(resp, resp.Language))
	return err
}

// RemoteResult is one hit as returned by POST /api/v1/search.
type RemoteResult struct {
	ID          string                 `json:"id"`
	Name        string                 `json:"name"`
	Description string                 `json:"description"`
	Authority   string                 `json:"authority"`
	Region      string                 `json:"region,omitempty"`
	InfoURL     string                 `json:"info_url,omitempty"`
	Stale       bool                   `json:"stale"`
	Score       int                    `json:"score"`
	Breakdown   *models.ScoreBreakdown `json:"breakdown,omitempty"`
}

// RemoteResponse is the body of POST /api/v1/search.
type RemoteResponse struct {
	SearchID   string         `json:"search_id"`
	Query      string         `json:"query"`
	Language   string         `json:"language"`
	Total      int            `json:"total"`
	Shown      int            `json:"shown"`
	Results    []RemoteResult `json:"results"`
	QueryTime  int64          `json:"query_time_ms"`
	DidYouMean string         `json:"did_you_mean,omitempty"`
}

// SearchViaHTTP runs query against a running server.
func SearchViaHTTP(ctx context.Context, serverURL string, query *models.SearchQuery) (*RemoteResponse, error) {
	body, err := json.Marshal(query)
	if err != nil {
		return nil, err
	}
	url := strings.TrimRight(serverURL, "/") + "/api/v1/search"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	var out RemoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// WriteRemoteResults writes a server search response to w.
func WriteRemoteResults(w io.Writer, resp *RemoteResponse, out OutputFormat) error {
	if out == OutputJSON {
		return format.JSON(w, resp)
	}
	if resp.Total == 0 {
		fmt.Fprintf(w, "No matches for %q\n", resp.Query)
		if resp.DidYouMean != "" {
			fmt.Fprintf(w, "Did you mean the category %q?\n", resp.DidYouMean)
		}
		return nil
	}
	fmt.Fprintf(w, "Found %d matches in %dms (showing %d)\n\n", resp.Total, resp.QueryTime, resp.Shown)
	for i, r := range resp.Results {
		stale := ""
		if r.Stale {
			stale = format.StaleFlag
		}
		fmt.Fprintf(w, "%2d. %s%s  [%s] score %d\n", i+1, r.Name, stale, r.ID, r.Score)
		if r.Description != "" {
			fmt.Fprintf(w, "    %s\n", utils.Truncate(r.Description, 120))
		}
		if r.InfoURL != "" {
			fmt.Fprintf(w, "    %s\n", r.InfoURL)
		}
	}
	return nil
}
