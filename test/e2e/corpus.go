package e2e

import "github.com/hyperjump/stodlotsen/internal/models"

// QueryCase is a search against the built-in catalog with its known outcome.
type QueryCase struct {
	Name  string
	Query models.SearchQuery
	// WantTotal is the number of matches before truncation.
	WantTotal int
	// WantTop lists the leading hit ids in rank order.
	WantTop []string
}

// Corpus returns the query cases. Expected values hold for the built-in
// catalog searched with the default configuration.
func Corpus() []QueryCase {
	return []QueryCase{
		{
			Name:      "single parent rent",
			Query:     models.SearchQuery{Query: "ensamstående mamma hyra"},
			WantTotal: 4,
			WantTop:   []string{"fk-bostadsbidrag", "fk-bostadstillagg", "fk-underhallsstod", "fk-foraldrapenning"},
		},
		{
			Name:      "business machinery investment",
			Query:     models.SearchQuery{Query: "vill investera i maskiner", Audience: "business", Category: "investering"},
			WantTotal: 3,
			WantTop:   []string{"tv-regionalt-investeringsstod", "rvn-generellt-investeringsstod", "tv-foretagsstod-landsbygd"},
		},
		{
			Name:      "sick child",
			Query:     models.SearchQuery{Query: "sjuk barn vab"},
			WantTotal: 10,
			WantTop:   []string{"fk-vab", "fk-barnbidrag", "fk-bostadsbidrag", "fk-sjukpenning"},
		},
		{
			Name:      "region with nationwide programs",
			Query:     models.SearchQuery{Query: "stöd", Region: "norrland"},
			WantTotal: 12,
		},
		{
			Name:      "english output does not change ranking",
			Query:     models.SearchQuery{Query: "ensamstående mamma hyra", Language: "en"},
			WantTotal: 4,
			WantTop:   []string{"fk-bostadsbidrag"},
		},
		{
			Name:      "stop word only",
			Query:     models.SearchQuery{Query: "på"},
			WantTotal: 0,
		},
		{
			Name:      "blank query",
			Query:     models.SearchQuery{Query: "   "},
			WantTotal: 0,
		},
	}
}
