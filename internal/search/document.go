// Package search provides the full-text/autocomplete index for the catalog:
// the document model, the analyzer and field mapping configuration, and the
// lifecycle of physical Bleve indexes that the rebuild pipeline swaps
// between.
package search

import (
	"slices"

	"github.com/leafdex/leafdex-server/internal/domain"
	"github.com/leafdex/leafdex-server/internal/urls"
	"github.com/leafdex/leafdex-server/internal/zodiac"
)

// Document is the denormalized unit persisted into a physical index. Both
// entity kinds share one structure with type discrimination, so a single
// query can search the whole catalog.
type Document struct {
	// Identity and shared search fields
	Type    string   `json:"type"`    // "villager" or "item"
	Suggest string   `json:"suggest"` // autocomplete input (display name)
	Keyword string   `json:"keyword"` // entity id, exact-match
	Name    string   `json:"name"`    // analyzed display name
	Ngram   string   `json:"ngram"`   // partial-match copy of name
	Game    []string `json:"game"`    // game identifiers, sorted
	URL     string   `json:"url"`

	// Enrichment payload, stored but never searched
	Image           string   `json:"image,omitempty"`
	Variations      []string `json:"variations,omitempty"`
	VariationImages []string `json:"variationImages,omitempty"`

	// Villager facets
	Gender      string   `json:"gender,omitempty"`
	Species     string   `json:"species,omitempty"`
	Personality []string `json:"personality,omitempty"` // deduplicated across games
	Zodiac      string   `json:"zodiac,omitempty"`
	Collab      string   `json:"collab,omitempty"`

	// Item facets
	Category      string `json:"category,omitempty"`
	Orderable     *bool  `json:"orderable,omitempty"`
	InteriorTheme string `json:"interiorTheme,omitempty"`
	FashionTheme  string `json:"fashionTheme,omitempty"`
	Set           string `json:"set,omitempty"`
}

// CollabStandard is the sentinel collab facet for villagers that are not
// part of any collaboration.
const CollabStandard = "Standard"

// ID returns the document identity: type + "-" + entity id. Deterministic,
// so re-deriving it on every rebuild always addresses the same document.
func (d *Document) ID() string {
	return d.Type + "-" + d.Keyword
}

// ToMap converts the document to a map with lowercase field names matching
// the index mapping. Bleve would otherwise index Go struct field names.
func (d *Document) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"type":    d.Type,
		"suggest": d.Suggest,
		"keyword": d.Keyword,
		"name":    d.Name,
		"ngram":   d.Ngram,
		"game":    d.Game,
		"url":     d.URL,
	}

	if d.Image != "" {
		m["image"] = d.Image
	}
	if len(d.Variations) > 0 {
		m["variations"] = d.Variations
	}
	if len(d.VariationImages) > 0 {
		m["variationImages"] = d.VariationImages
	}
	if d.Gender != "" {
		m["gender"] = d.Gender
	}
	if d.Species != "" {
		m["species"] = d.Species
	}
	if len(d.Personality) > 0 {
		m["personality"] = d.Personality
	}
	if d.Zodiac != "" {
		m["zodiac"] = d.Zodiac
	}
	if d.Collab != "" {
		m["collab"] = d.Collab
	}
	if d.Category != "" {
		m["category"] = d.Category
	}
	if d.Orderable != nil {
		m["orderable"] = *d.Orderable
	}
	if d.InteriorTheme != "" {
		m["interiorTheme"] = d.InteriorTheme
	}
	if d.FashionTheme != "" {
		m["fashionTheme"] = d.FashionTheme
	}
	if d.Set != "" {
		m["set"] = d.Set
	}

	return m
}

// sortedGames returns the game identifiers of a games mapping in sorted
// order. Go map iteration is randomized, so every per-game derivation walks
// games in sorted key order to keep mapper output deterministic; "last game
// wins" therefore means the lexicographically last game.
func sortedGames[G any](games map[string]G) []string {
	keys := make([]string, 0, len(games))
	for k := range games {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// MapVillager maps a raw villager record plus its enrichment entry to a
// search document. Pure: identical inputs produce an identical document.
func MapVillager(siteURL string, v *domain.Villager, enrichment *domain.Enrichment) (*Document, error) {
	doc := &Document{
		Type:            string(domain.KindVillager),
		Suggest:         v.Name,
		Keyword:         v.ID,
		Name:            v.Name,
		Ngram:           v.Name,
		Game:            sortedGames(v.Games),
		URL:             urls.Villager(siteURL, v.ID),
		Image:           enrichment.Image,
		Variations:      enrichment.Variations,
		VariationImages: enrichment.VariationImages,
		Gender:          v.Gender,
		Species:         v.Species,
		Collab:          v.Collab,
	}

	if doc.Collab == "" {
		doc.Collab = CollabStandard
	}

	// Personality is accumulated as a set across games; the game list
	// itself keeps one entry per game.
	seen := make(map[string]bool)
	for _, game := range doc.Game {
		p := v.Games[game].Personality
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		doc.Personality = append(doc.Personality, p)
	}

	if v.Birthday != "" {
		sign, err := zodiac.FromBirthday(v.Birthday)
		if err != nil {
			return nil, err
		}
		doc.Zodiac = sign
	}

	return doc, nil
}

// MapItem maps a raw item record plus its enrichment entry to a search
// document. Pure: identical inputs produce an identical document.
//
// Unlike villager personality, item facets are not merged across games: a
// facet populated by several games keeps only the last game's value.
func MapItem(siteURL string, it *domain.Item, enrichment *domain.Enrichment) (*Document, error) {
	doc := &Document{
		Type:            string(domain.KindItem),
		Suggest:         it.Name,
		Keyword:         it.ID,
		Name:            it.Name,
		Ngram:           it.Name,
		Game:            sortedGames(it.Games),
		URL:             urls.Item(siteURL, it.ID),
		Image:           enrichment.Image,
		Variations:      enrichment.Variations,
		VariationImages: enrichment.VariationImages,
	}

	for _, game := range doc.Game {
		g := it.Games[game]
		if g.Category != "" {
			doc.Category = g.Category
		}
		if g.Orderable != nil {
			doc.Orderable = g.Orderable
		}
		if g.InteriorTheme != "" {
			doc.InteriorTheme = g.InteriorTheme
		}
		if g.FashionTheme != "" {
			doc.FashionTheme = g.FashionTheme
		}
		if g.Set != "" {
			doc.Set = g.Set
		}
	}

	return doc, nil
}
