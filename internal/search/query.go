package search

import (
	"context"
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a catalog search.
type Params struct {
	Query string // user's search text
	Type  string // "villager" or "item"; empty = both
	Game  string // restrict to entities appearing in one game

	Limit  int
	Offset int
}

// DefaultParams returns sensible defaults.
func DefaultParams() Params {
	return Params{Limit: 20}
}

// Result represents the search results.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit represents a single search result.
type Hit struct {
	ID      string   `json:"id"`
	Type    string   `json:"type"`
	Score   float64  `json:"score"`
	Name    string   `json:"name"`
	Suggest string   `json:"suggest"`
	Game    []string `json:"game,omitempty"`
	URL     string   `json:"url,omitempty"`
	Image   string   `json:"image,omitempty"`
}

// Query executes a search against this physical index.
func (i *Index) Query(ctx context.Context, params Params) (*Result, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultParams().Limit
	}

	searchRequest := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	searchRequest.Fields = []string{"type", "name", "suggest", "game", "url", "image"}

	searchResult, err := i.idx.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  searchResult.Total,
		TookMs: searchResult.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(searchResult.Hits)),
	}

	for _, hit := range searchResult.Hits {
		h := Hit{
			ID:    hit.ID,
			Score: hit.Score,
		}
		if t, ok := hit.Fields["type"].(string); ok {
			h.Type = t
		}
		if n, ok := hit.Fields["name"].(string); ok {
			h.Name = n
		}
		if s, ok := hit.Fields["suggest"].(string); ok {
			h.Suggest = s
		}
		if u, ok := hit.Fields["url"].(string); ok {
			h.URL = u
		}
		if img, ok := hit.Fields["image"].(string); ok {
			h.Image = img
		}
		// A single-game entity comes back as a bare string, multi-game as
		// a slice.
		switch g := hit.Fields["game"].(type) {
		case string:
			h.Game = []string{g}
		case []interface{}:
			for _, v := range g {
				if s, ok := v.(string); ok {
					h.Game = append(h.Game, s)
				}
			}
		}
		result.Hits = append(result.Hits, h)
	}

	return result, nil
}

// buildQuery constructs the Bleve query: the user's text matched against
// the folded name and the edge-ngram autocomplete field, intersected with
// any exact-match type/game filters.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	if params.Query != "" {
		nameMatch := bleve.NewMatchQuery(params.Query)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)

		ngramMatch := bleve.NewMatchQuery(params.Query)
		ngramMatch.SetField("ngram")

		queries = append(queries, bleve.NewDisjunctionQuery(nameMatch, ngramMatch))
	} else {
		queries = append(queries, bleve.NewMatchAllQuery())
	}

	if params.Type != "" {
		tq := bleve.NewTermQuery(params.Type)
		tq.SetField("type")
		queries = append(queries, tq)
	}
	if params.Game != "" {
		gq := bleve.NewTermQuery(params.Game)
		gq.SetField("game")
		queries = append(queries, gq)
	}

	return bleve.NewConjunctionQuery(queries...)
}
