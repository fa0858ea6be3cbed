// Package sitemap generates the public site's sitemap.xml from the dataset.
// Unrelated to the search index; it shares the CLI entry point with the
// rebuild and populate jobs.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/leafdex/leafdex-server/internal/dataset"
	"github.com/leafdex/leafdex-server/internal/urls"
)

const xmlns = "http://www.sitemaps.org/schemas/sitemap/0.9"

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	Xmlns   string     `xml:"xmlns,attr"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Loc string `xml:"loc"`
}

// Generate writes a sitemap covering the site root and every entity page.
// Returns the number of URLs written.
func Generate(source *dataset.Source, baseURL string, w io.Writer) (int, error) {
	set := urlSet{
		Xmlns: xmlns,
		URLs:  []urlEntry{{Loc: baseURL + "/"}},
	}

	villagers, err := source.Villagers()
	if err != nil {
		return 0, err
	}
	for _, v := range villagers {
		set.URLs = append(set.URLs, urlEntry{Loc: urls.Villager(baseURL, v.ID)})
	}

	items, err := source.Items()
	if err != nil {
		return 0, err
	}
	for _, it := range items {
		set.URLs = append(set.URLs, urlEntry{Loc: urls.Item(baseURL, it.ID)})
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return 0, fmt.Errorf("write sitemap header: %w", err)
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return 0, fmt.Errorf("encode sitemap: %w", err)
	}

	return len(set.URLs), nil
}
