// Package ranking scores support records against a free-text query.
//
// Matching is plain substring containment on lower-cased text. There is no
// stemming: partial words and Swedish inflections match because a token such
// as "hyra" is contained in "hyran", and a short signal such as "barn" is
// contained in the token "barnen".
package ranking

import (
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// Points awarded by the scorer.
const (
	SignalPhrasePoints = 3
	SignalTokenPoints  = 1
	TagPoints          = 2
	TextFieldPoints    = 1
)

// Score returns the relevance of record for q. It never returns a negative value.
func Score(record *models.SupportRecord, q Query) int {
	return Explain(record, q).Total
}

// Explain returns the score of record for q split by source.
func Explain(record *models.SupportRecord, q Query) *models.ScoreBreakdown {
	b := &models.ScoreBreakdown{}
	if record == nil {
		return b
	}
	tokens := q.MatchTokens()

	for _, signal := range record.Signals {
		s := strings.ToLower(signal)
		// "" is a substring of every query; blank signals and tags score nothing.
		if strings.TrimSpace(s) == "" {
			continue
		}
		if strings.Contains(q.Text, s) {
			b.SignalPhrases += SignalPhrasePoints
		}
		for _, tok := range tokens {
			if strings.Contains(s, tok) || strings.Contains(tok, s) {
				b.SignalTokens += SignalTokenPoints
			}
		}
	}

	for _, tag := range record.Tags {
		t := strings.ToLower(tag)
		if strings.TrimSpace(t) == "" {
			continue
		}
		if strings.Contains(q.Text, t) {
			b.Tags += TagPoints
		}
	}

	// At most one point per field, however many tokens hit it.
	for _, field := range textFields(record) {
		if containsAny(strings.ToLower(field), tokens) {
			b.TextFields += TextFieldPoints
		}
	}

	b.Total = b.SignalPhrases + b.SignalTokens + b.Tags + b.TextFields
	return b
}

// textFields returns the name and description in the base language and in English.
func textFields(record *models.SupportRecord) []string {
	sv := record.Localized(models.LangSwedish)
	en := record.Localized(models.LangEnglish)
	return []string{sv.Name, en.Name, sv.Description, en.Description}
}

func containsAny(value string, tokens []string) bool {
	for _, tok := range tokens {
		if strings.Contains(value, tok) {
			return true
		}
	}
	return false
}
