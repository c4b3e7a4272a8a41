package models

import "strings"

// SearchQuery is a free-text search with optional hard filters.
type SearchQuery struct {
	Query    string `json:"query"`
	Audience string `json:"audience,omitempty"` // privatperson/företag, or individual/person/business
	Category string `json:"category,omitempty"`
	Region   string `json:"region,omitempty"`
	Language string `json:"language,omitempty"` // sv, en or ar; output language only
	Explain  bool   `json:"explain,omitempty"`  // attach per-hit score breakdowns
}

// ApplyDefaults trims the filters and defaults the language to Swedish.
// The query text itself is left untouched; an empty query is valid and matches nothing.
func (q *SearchQuery) ApplyDefaults() {
	q.Audience = strings.TrimSpace(q.Audience)
	q.Category = strings.TrimSpace(q.Category)
	q.Region = strings.TrimSpace(q.Region)
	q.Language = strings.TrimSpace(q.Language)
	if q.Language == "" {
		q.Language = LangSwedish
	}
}
