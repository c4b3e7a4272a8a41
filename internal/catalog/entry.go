package catalog

import (
	"strings"

	"github.com/hyperjump/stodlotsen/internal/models"
)

// Entry is one record in the on-disk catalog format (stod.json and friends).
// Keys are the catalog's Swedish field names; localized text uses a _<lang> suffix.
type Entry struct {
	ID            string   `json:"id" yaml:"id"`
	Name          string   `json:"namn" yaml:"namn"`
	NameEN        string   `json:"namn_en,omitempty" yaml:"namn_en,omitempty"`
	NameAR        string   `json:"namn_ar,omitempty" yaml:"namn_ar,omitempty"`
	Authority     string   `json:"myndighet" yaml:"myndighet"`
	Audiences     []string `json:"malgrupp" yaml:"malgrupp"`
	Category      string   `json:"kategori,omitempty" yaml:"kategori,omitempty"`
	Tags          []string `json:"taggar,omitempty" yaml:"taggar,omitempty"`
	Description   string   `json:"kort_beskrivning" yaml:"kort_beskrivning"`
	DescriptionEN string   `json:"kort_beskrivning_en,omitempty" yaml:"kort_beskrivning_en,omitempty"`
	DescriptionAR string   `json:"kort_beskrivning_ar,omitempty" yaml:"kort_beskrivning_ar,omitempty"`
	Requirements  []string `json:"villkor,omitempty" yaml:"villkor,omitempty"`
	Amount        string   `json:"belopp,omitempty" yaml:"belopp,omitempty"`
	ApplyURL      string   `json:"ansokan_url,omitempty" yaml:"ansokan_url,omitempty"`
	InfoURL       string   `json:"info_url,omitempty" yaml:"info_url,omitempty"`
	Signals       []string `json:"relevans_signaler,omitempty" yaml:"relevans_signaler,omitempty"`
	LastVerified  string   `json:"senast_verifierad,omitempty" yaml:"senast_verifierad,omitempty"`
	Region        string   `json:"region,omitempty" yaml:"region,omitempty"`
}

// Record converts the entry to a SupportRecord. Languages without any text are left out.
func (e Entry) Record() *models.SupportRecord {
	text := map[string]models.LocalizedText{
		models.LangSwedish: {Name: e.Name, Description: e.Description},
	}
	if e.NameEN != "" || e.DescriptionEN != "" {
		text[models.LangEnglish] = models.LocalizedText{Name: e.NameEN, Description: e.DescriptionEN}
	}
	if e.NameAR != "" || e.DescriptionAR != "" {
		text[models.LangArabic] = models.LocalizedText{Name: e.NameAR, Description: e.DescriptionAR}
	}
	return &models.SupportRecord{
		ID:           strings.TrimSpace(e.ID),
		Authority:    e.Authority,
		Audiences:    nonEmpty(e.Audiences),
		Category:     e.Category,
		Region:       e.Region,
		Tags:         nonNil(e.Tags),
		Signals:      nonNil(e.Signals),
		Text:         text,
		Requirements: nonNil(e.Requirements),
		Amount:       e.Amount,
		ApplyURL:     e.ApplyURL,
		InfoURL:      e.InfoURL,
		LastVerified: e.LastVerified,
	}
}

// EntryFromRecord converts a record back to the on-disk format.
func EntryFromRecord(r *models.SupportRecord) Entry {
	sv := r.Localized(models.LangSwedish)
	en := r.Localized(models.LangEnglish)
	ar := r.Localized(models.LangArabic)
	return Entry{
		ID:            r.ID,
		Name:          sv.Name,
		NameEN:        en.Name,
		NameAR:        ar.Name,
		Authority:     r.Authority,
		Audiences:     r.Audiences,
		Category:      r.Category,
		Tags:          r.Tags,
		Description:   sv.Description,
		DescriptionEN: en.Description,
		DescriptionAR: ar.Description,
		Requirements:  r.Requirements,
		Amount:        r.Amount,
		ApplyURL:      r.ApplyURL,
		InfoURL:       r.InfoURL,
		Signals:       r.Signals,
		LastVerified:  r.LastVerified,
		Region:        r.Region,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// nonEmpty drops blank values.
func nonEmpty(s []string) []string {
	out := make([]string, 0, len(s))
	for _, v := range s {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
