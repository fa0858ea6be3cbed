// Package domain defines the catalog's core entity types.
//
// Raw records are the canonical on-disk representation of the catalog: one
// JSON file per entity, immutable as far as this codebase is concerned.
// Enrichment data lives in the key-value cache and is populated by a
// separate maintenance job; the index rebuild only ever reads it.
package domain

// Kind discriminates the two entity kinds in the catalog.
type Kind string

// Entity kinds.
const (
	KindVillager Kind = "villager"
	KindItem     Kind = "item"
)

// Villager is a raw villager record as stored in the dataset.
type Villager struct {
	ID       string                  `json:"id"`
	Name     string                  `json:"name"`
	Gender   string                  `json:"gender,omitempty"`
	Species  string                  `json:"species,omitempty"`
	Birthday string                  `json:"birthday,omitempty"` // "MM-DD"
	Collab   string                  `json:"collab,omitempty"`
	Games    map[string]VillagerGame `json:"games"`
}

// VillagerGame holds the per-game attributes of a villager.
type VillagerGame struct {
	Personality string `json:"personality,omitempty"`
}

// Item is a raw item record as stored in the dataset.
type Item struct {
	ID    string              `json:"id"`
	Name  string              `json:"name"`
	Games map[string]ItemGame `json:"games"`
}

// ItemGame holds the per-game attributes of an item.
type ItemGame struct {
	Category      string `json:"category,omitempty"`
	Orderable     *bool  `json:"orderable,omitempty"`
	InteriorTheme string `json:"interiorTheme,omitempty"`
	FashionTheme  string `json:"fashionTheme,omitempty"`
	Set           string `json:"set,omitempty"`
}

// Enrichment holds the supplementary per-entity fields cached in the
// key-value store: the rendered image reference and, for items with
// variants, the variation identifiers and their images.
type Enrichment struct {
	Image           string   `json:"image"`
	Variations      []string `json:"variations,omitempty"`
	VariationImages []string `json:"variationImages,omitempty"`
}

// EnrichmentFile is the on-disk format consumed by the populate-cache job:
// one object per kind, keyed by entity id.
type EnrichmentFile struct {
	Villagers map[string]*Enrichment `json:"villagers"`
	Items     map[string]*Enrichment `json:"items"`
}
