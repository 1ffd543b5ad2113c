package model

import "strings"

// SiteType classifies a listing's web presence.
type SiteType string

const (
	// SiteTypeNone means the listing has no website at all.
	SiteTypeNone SiteType = "none"
	// SiteTypeSocial means the listing's "website" is a social or
	// messaging profile (Facebook, Instagram, Linktree, WhatsApp, ...).
	SiteTypeSocial SiteType = "social"
	// SiteTypeWebsite means the listing has a genuine website. Listings
	// classified as website are excluded from output entirely.
	SiteTypeWebsite SiteType = "website"
)

// SearchTerm identifies one (sector, district) text search. Constructed
// once per pair and immutable afterwards.
type SearchTerm struct {
	Sector   string
	District string
	City     string
	Country  string
}

// Query builds the free-text query sent to the Places Text Search API.
// Empty parts are omitted so a run without districts still produces a
// usable query.
func (t SearchTerm) Query() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{t.Sector, t.District, t.City, t.Country} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// Candidate is one search result awaiting detail enrichment. The name
// and address hints come from the search page and act as fallbacks when
// the detail call returns partial data.
type Candidate struct {
	PlaceID     string
	Sector      string
	NameHint    string
	AddressHint string
}

// DetailRecord holds the Place Details response for one candidate. A
// zero-valued record is legal: the detail call failed or returned a
// non-OK status and the candidate falls back to its hints.
type DetailRecord struct {
	PlaceID     string
	Name        string
	Address     string
	Phone       string
	Website     string
	Rating      float64
	ReviewCount int
	MapsURL     string
	Types       []string
}

// Lead is one finalized output row: a business without a genuine
// website. SiteType is always social or none, never website.
type Lead struct {
	Name          string   `json:"name"`
	District      string   `json:"district"`
	Address       string   `json:"address"`
	Phone         string   `json:"phone"`
	Website       string   `json:"website"`
	SiteType      SiteType `json:"site_type"`
	Rating        float64  `json:"rating"`
	ReviewCount   int      `json:"reviews"`
	MapsURL       string   `json:"google_maps_url"`
	PlaceID       string   `json:"place_id"`
	Sector        string   `json:"sector"`
	Types         []string `json:"types"`
	MessagingLink string   `json:"whatsapp"`
}

// RunResult is the aggregated outcome of one run across all districts,
// deduplicated by place id. Warnings maps district name to the first
// non-fatal error seen while enriching that district.
type RunResult struct {
	RunID          string            `json:"run_id"`
	Leads          []Lead            `json:"leads"`
	DistrictCounts map[string]int    `json:"district_counts"`
	Warnings       map[string]string `json:"warnings,omitempty"`
}
