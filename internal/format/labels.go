// Package format renders search results, record details, listings and
// catalog statistics as Markdown text for MCP clients and the CLI.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/hyperjump/stodlotsen/internal/catalog"
	"github.com/hyperjump/stodlotsen/internal/freshness"
	"github.com/hyperjump/stodlotsen/internal/models"
)

// StaleFlag marks records whose information may be outdated.
const StaleFlag = " ⚠️"

type labels struct {
	Authority, Audience, Category, Region, Description string
	Requirements, Amount, Links, Apply, MoreInfo       string
	LastVerified, Outdated                             string

	// foundHeader formats total and shown hit counts.
	foundHeader func(total, shown int) string
	noMatches   string
	didYouMean  string // takes a category
	notFound    string // takes the record id
	listTotal   string // takes the record count
	listFilter  string // takes the audience filter
	listEmpty   string
}

var swedish = labels{
	Authority:    "Myndighet",
	Audience:     "Målgrupp",
	Category:     "Kategori",
	Region:       "Region",
	Description:  "Beskrivning",
	Requirements: "Villkor",
	Amount:       "Belopp",
	Links:        "Länkar",
	Apply:        "Ansökan",
	MoreInfo:     "Mer info",
	LastVerified: "Senast verifierad",
	Outdated:     "⚠️ Informationen kan vara inaktuell.",
	foundHeader: func(total, shown int) string {
		return fmt.Sprintf("Hittade %d möjliga stöd (visar topp %d):", total, shown)
	},
	noMatches:  "Hittade inga stöd som matchar din sökning. Prova att beskriva din situation med andra ord, eller använd lista_stod() för att se alla.",
	didYouMean: "Menade du kategorin \"%s\"?",
	notFound:   "Hittade inget stöd med ID '%s'.",
	listTotal:  "Totalt %d stöd",
	listFilter: " (filtrerat: %s)",
	listEmpty:  "Inga stöd hittades.",
}

var english = labels{
	Authority:    "Authority",
	Audience:     "Target",
	Category:     "Category",
	Region:       "Region",
	Description:  "Description",
	Requirements: "Requirements",
	Amount:       "Amount",
	Links:        "Links",
	Apply:        "Apply",
	MoreInfo:     "More info",
	LastVerified: "Last verified",
	Outdated:     "⚠️ Information may be outdated.",
	foundHeader: func(total, shown int) string {
		return fmt.Sprintf("Found %d potential benefits (showing top %d):", total, shown)
	},
	noMatches:  "No matching benefits found. Try describing your situation differently, or use lista_stod() to see all available benefits.",
	didYouMean: "Did you mean the category \"%s\"?",
	notFound:   "No benefit found with ID '%s'.",
	listTotal:  "Total %d benefits",
	listFilter: " (filtered: %s)",
	listEmpty:  "No benefits found.",
}

// arabic has its own search messages. Field labels are English; the
// not-found text and the outdated warning stay Swedish.
var arabic = func() labels {
	l := english
	l.foundHeader = func(total, _ int) string {
		return fmt.Sprintf("تم العثور على %d دعم محتمل:", total)
	}
	l.noMatches = "لم يتم العثور على دعم مطابق. حاول وصف وضعك بشكل مختلف."
	l.notFound = swedish.notFound
	l.Outdated = swedish.Outdated
	return l
}()

func labelsFor(lang string) (labels, string) {
	lang = catalog.ResolveLanguage(lang)
	switch lang {
	case models.LangEnglish:
		return english, lang
	case models.LangArabic:
		return arabic, lang
	default:
		return swedish, lang
	}
}

// Formatter renders catalog content. Staleness flags come from its checker.
type Formatter struct {
	checker *freshness.Checker
}

// New returns a Formatter. A nil checker uses the default 180-day window.
func New(checker *freshness.Checker) *Formatter {
	if checker == nil {
		checker = freshness.NewChecker(0)
	}
	return &Formatter{checker: checker}
}

func (f *Formatter) flag(r *models.SupportRecord) string {
	if f.checker.Stale(r.LastVerified) {
		return StaleFlag
	}
	return ""
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) > 0 {
		runes[0] = unicode.ToUpper(runes[0])
	}
	return string(runes)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

// JSON writes v as indented JSON.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
