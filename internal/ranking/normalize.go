package ranking

import (
	"strings"
	"unicode/utf8"
)

// MinTokenLength is the shortest token (in characters) that takes part in
// token-level matching. Shorter tokens are mostly function words ("i", "på").
const MinTokenLength = 3

// Query is a normalized free-text query.
type Query struct {
	// Text is the whole query, lower-cased.
	Text string
	// Tokens are the distinct lower-cased whitespace-separated words, in first-seen order.
	// Punctuation is kept as typed.
	Tokens []string
}

// Normalize lower-cases query and splits it on whitespace.
// No stemming or punctuation stripping is done.
func Normalize(query string) Query {
	text := strings.ToLower(query)
	fields := strings.Fields(text)
	seen := make(map[string]struct{}, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	return Query{Text: text, Tokens: tokens}
}

// MatchTokens returns the tokens long enough for token-level matching.
func (q Query) MatchTokens() []string {
	out := make([]string, 0, len(q.Tokens))
	for _, t := range q.Tokens {
		if utf8.RuneCountInString(t) >= MinTokenLength {
			out = append(out, t)
		}
	}
	return out
}

// IsEmpty reports whether the query has no tokens.
func (q Query) IsEmpty() bool {
	return len(q.Tokens) == 0
}
