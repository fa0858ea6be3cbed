// Package urls builds public site URLs for catalog entities.
//
// Kept as pure functions so the document mappers and the sitemap job share
// one source of truth for the site's URL scheme.
package urls

// Villager returns the public page URL for a villager.
func Villager(baseURL, id string) string {
	return baseURL + "/villagers/" + id
}

// Item returns the public page URL for an item.
func Item(baseURL, id string) string {
	return baseURL + "/items/" + id
}
