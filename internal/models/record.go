// Package models defines core data structures for support records, queries, and search results.
package models

import "strings"

// Languages supported by the catalog. Swedish is the base language and is
// always present; the others are optional per record.
const (
	LangSwedish = "sv"
	LangEnglish = "en"
	LangArabic  = "ar"
)

// SupportedLanguages lists the catalog languages, base language first.
var SupportedLanguages = []string{LangSwedish, LangEnglish, LangArabic}

// Canonical audience values used in the catalog.
const (
	AudienceIndividual = "privatperson"
	AudienceBusiness   = "företag"
)

// NationalRegion is the region value of programs that apply in all of Sweden.
const NationalRegion = "nationellt"

// DefaultCategory is used for grouping records that carry no category.
const DefaultCategory = "övrigt"

// LocalizedText is the name and short description of a record in one language.
type LocalizedText struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupportRecord is one support or benefit program in the catalog.
// Records are read-only once loaded.
type SupportRecord struct {
	ID           string                   `json:"id"`
	Authority    string                   `json:"authority"`
	Audiences    []string                 `json:"audiences"`
	Category     string                   `json:"category,omitempty"`
	Region       string                   `json:"region,omitempty"`
	Tags         []string                 `json:"tags,omitempty"`
	Signals      []string                 `json:"relevance_signals,omitempty"`
	Text         map[string]LocalizedText `json:"text"`
	Requirements []string                 `json:"requirements,omitempty"`
	Amount       string                   `json:"amount,omitempty"`
	ApplyURL     string                   `json:"apply_url,omitempty"`
	InfoURL      string                   `json:"info_url,omitempty"`
	LastVerified string                   `json:"last_verified,omitempty"`
}

// Localized returns the text for lang exactly as stored, without fallback.
func (r *SupportRecord) Localized(lang string) LocalizedText {
	if r == nil || r.Text == nil {
		return LocalizedText{}
	}
	return r.Text[lang]
}

// HasAudience reports whether audience equals one of the record's audiences, ignoring case.
func (r *SupportRecord) HasAudience(audience string) bool {
	for _, a := range r.Audiences {
		if strings.EqualFold(a, audience) {
			return true
		}
	}
	return false
}

// CategoryOrDefault returns the category, or DefaultCategory when it is empty.
func (r *SupportRecord) CategoryOrDefault() string {
	if r.Category == "" {
		return DefaultCategory
	}
	return r.Category
}

// IsNational reports whether the record applies nationwide.
// A record without a region is treated as national.
func (r *SupportRecord) IsNational() bool {
	return r.Region == "" || r.Region == NationalRegion
}
