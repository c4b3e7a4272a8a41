package catalog

import (
	"strings"

	"golang.org/x/text/language"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// Field selects a localized text field.
type Field int

const (
	// FieldName is the program name.
	FieldName Field = iota
	// FieldDescription is the short description.
	FieldDescription
)

var languageMatcher = language.NewMatcher([]language.Tag{
	language.Swedish,
	language.English,
	language.Arabic,
})

// ResolveLanguage maps a language tag such as "en", "EN" or "ar-SE" to a
// catalog language. Anything unknown or malformed resolves to Swedish.
func ResolveLanguage(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return models.LangSwedish
	}
	tag, err := language.Parse(code)
	if err != nil {
		return models.LangSwedish
	}
	_, idx, confidence := languageMatcher.Match(tag)
	if confidence == language.No || idx < 0 || idx >= len(models.SupportedLanguages) {
		return models.LangSwedish
	}
	return models.SupportedLanguages[idx]
}

// Localize returns field of r in lang, falling back to Swedish when the
// language is unsupported or the record has no text for it.
func Localize(r *models.SupportRecord, field Field, lang string) string {
	lang = ResolveLanguage(lang)
	if v := pick(r.Localized(lang), field); v != "" || lang == models.LangSwedish {
		return v
	}
	return pick(r.Localized(models.LangSwedish), field)
}

// Name returns the localized program name.
func Name(r *models.SupportRecord, lang string) string {
	return Localize(r, FieldName, lang)
}

// Description returns the localized short description.
func Description(r *models.SupportRecord, lang string) string {
	return Localize(r, FieldDescription, lang)
}

func pick(t models.LocalizedText, field Field) string {
	if field == FieldDescription {
		return t.Description
	}
	return t.Name
}
