package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hyperjump/stodlotsen/internal/format"
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/models"
)

func testResponse() *models.SearchResponse {
	return &models.SearchResponse{
		SearchID: "abc",
		Query:    "hyra",
		Language: "sv",
		Total:    1,
		Hits: []*models.Hit{{
			Score: 4,
			Record: &models.SupportRecord{
				ID:           "fk-bostadsbidrag",
				Authority:    "Försäkringskassan",
				Audiences:    []string{"privatperson"},
				Text:         map[string]models.LocalizedText{"sv": {Name: "Bostadsbidrag", Description: "Hjälp med hyran"}},
				LastVerified: "2026-02-15",
			},
		}},
	}
}

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    OutputFormat
		wantErr bool
	}{
		{"", OutputText, false},
		{"text", OutputText, false},
		{"JSON", OutputJSON, false},
		{" json ", OutputJSON, false},
		{"compact", "", true},
	}
	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestWriteSearchResults_Text(t *testing.T) {
	var buf bytes.Buffer
	f := format.New(freshness.NewChecker(0))
	if err := WriteSearchResults(&buf, testResponse(), f, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "### Bostadsbidrag") {
		t.Errorf("expected record heading in output:\n%s", out)
	}
	if !strings.Contains(out, "**ID:** fk-bostadsbidrag") {
		t.Errorf("expected record id in output:\n%s", out)
	}
}

func TestWriteSearchResults_JSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSearchResults(&buf, testResponse(), format.New(nil), OutputJSON); err != nil {
		t.Fatal(err)
	}
	var decoded models.SearchResponse
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}
	if decoded.Total != 1 || len(decoded.Hits) != 1 || decoded.Hits[0].Record.ID != "fk-bostadsbidrag" {
		t.Errorf("unexpected decoded response: %+v", decoded)
	}
}

func TestSearchViaHTTP(t *testing.T) {
	var got models.SearchQuery
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/search" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(RemoteResponse{
			Query: got.Query, Language: "sv", Total: 2, Shown: 1,
			Results: []RemoteResult{{ID: "fk-vab", Name: "VAB", Description: "Vård av barn", Score: 15, Stale: true}},
		})
	}))
	defer srv.Close()

	resp, err := SearchViaHTTP(context.Background(), srv.URL+"/", &models.SearchQuery{Query: "sjuk barn", Audience: "privatperson"})
	if err != nil {
		t.Fatal(err)
	}
	if got.Query != "sjuk barn" || got.Audience != "privatperson" {
		t.Errorf("server received %+v", got)
	}
	if resp.Total != 2 || len(resp.Results) != 1 || resp.Results[0].ID != "fk-vab" {
		t.Errorf("unexpected response %+v", resp)
	}

	var buf bytes.Buffer
	if err := WriteRemoteResults(&buf, resp, OutputText); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"Found 2 matches", "(showing 1)", " 1. VAB" + format.StaleFlag, "[fk-vab] score 15", "Vård av barn"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestSearchViaHTTP_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := SearchViaHTTP(context.Background(), srv.URL, &models.SearchQuery{Query: "x"})
	if err == nil || !strings.Contains(err.Error(), "500") {
		t.Errorf("expected status error, got %v", err)
	}
}

func TestWriteRemoteResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRemoteResults(&buf, &RemoteResponse{Query: "på"}, OutputText); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "No matches for \"på\"\n" {
		t.Errorf("got %q", buf.String())
	}
}
