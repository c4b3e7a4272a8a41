package models

// ScoreBreakdown splits a relevance score into its sources.
// Total always equals the sum of the other fields.
type ScoreBreakdown struct {
	SignalPhrases int `json:"signal_phrases"` // +3 per signal found in the query text
	SignalTokens  int `json:"signal_tokens"`  // +1 per (signal, token) substring pair
	Tags          int `json:"tags"`           // +2 per tag found in the query text
	TextFields    int `json:"text_fields"`    // +1 per name/description field hit
	Total         int `json:"total"`
}

// Hit is one scored record in a search response.
type Hit struct {
	Score     int             `json:"score"`
	Record    *SupportRecord  `json:"record"`
	Breakdown *ScoreBreakdown `json:"breakdown,omitempty"`
}

// SearchResponse is the ranked, truncated result of a search.
// Total counts all matching records before truncation.
type SearchResponse struct {
	SearchID  string `json:"search_id,omitempty"`
	Query     string `json:"query"`
	Language  string `json:"language"`
	Total     int    `json:"total"`
	Hits      []*Hit `json:"hits"`
	QueryTime int64  `json:"query_time_ms"`
	// Suggestion is a known category close to an unknown category filter.
	Suggestion string `json:"did_you_mean,omitempty"`
}

// Empty reports whether the search found nothing. This is a normal outcome, not an error.
func (r *SearchResponse) Empty() bool {
	return r == nil || r.Total == 0
}

// Shown returns the number of hits actually returned.
func (r *SearchResponse) Shown() int {
	if r == nil {
		return 0
	}
	return len(r.Hits)
}

// CatalogStats is an aggregate overview of a catalog.
type CatalogStats struct {
	Total        int            `json:"total"`
	Regional     int            `json:"regional"`
	Stale        int            `json:"stale"`
	TranslatedEN int            `json:"translated_en"`
	TranslatedAR int            `json:"translated_ar"`
	ByCategory   map[string]int `json:"by_category"`
	ByAudience   map[string]int `json:"by_audience"`
	ByAuthority  map[string]int `json:"by_authority"`
}
