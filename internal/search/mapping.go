package search

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/char/asciifolding"
	"github.com/blevesearch/bleve/v2/analysis/token/edgengram"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

// Analyzer names registered on every physical index.
const (
	// foldingAnalyzer lowercases and ASCII-folds, so accented and
	// unaccented spellings of a name match each other.
	foldingAnalyzer = "folding"
	// autocompleteAnalyzer adds edge n-grams (2..10) on top of the folding
	// pipeline for prefix-style partial matching.
	autocompleteAnalyzer = "autocomplete"

	edgeNgramFilter = "edge_ngram_2_10"
)

// buildIndexMapping creates the index mapping for catalog documents.
//
// Field layout:
//   - name: folding analyzer, full-text
//   - ngram, suggest: autocomplete analyzer, partial/prefix match
//   - keyword, type, game and the facet fields: keyword analyzer, exact match
//   - url, image, variations, variationImages: stored, never indexed
func buildIndexMapping() (mapping.IndexMapping, error) {
	indexMapping := bleve.NewIndexMapping()

	err := indexMapping.AddCustomTokenFilter(edgeNgramFilter, map[string]interface{}{
		"type": edgengram.Name,
		"min":  2.0,
		"max":  10.0,
	})
	if err != nil {
		return nil, fmt.Errorf("add edge ngram filter: %w", err)
	}

	err = indexMapping.AddCustomAnalyzer(foldingAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, fmt.Errorf("add folding analyzer: %w", err)
	}

	err = indexMapping.AddCustomAnalyzer(autocompleteAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"char_filters":  []string{asciifolding.Name},
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name, edgeNgramFilter},
	})
	if err != nil {
		return nil, fmt.Errorf("add autocomplete analyzer: %w", err)
	}

	indexMapping.DefaultAnalyzer = foldingAnalyzer

	docMapping := bleve.NewDocumentMapping()

	// --- Text fields ---

	nameFieldMapping := bleve.NewTextFieldMapping()
	nameFieldMapping.Analyzer = foldingAnalyzer
	nameFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("name", nameFieldMapping)

	ngramFieldMapping := bleve.NewTextFieldMapping()
	ngramFieldMapping.Analyzer = autocompleteAnalyzer
	docMapping.AddFieldMappingsAt("ngram", ngramFieldMapping)

	suggestFieldMapping := bleve.NewTextFieldMapping()
	suggestFieldMapping.Analyzer = autocompleteAnalyzer
	suggestFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("suggest", suggestFieldMapping)

	// --- Keyword fields (exact match, facetable) ---

	for _, field := range []string{
		"type", "keyword", "game",
		"gender", "species", "personality", "zodiac", "collab",
		"category", "interiorTheme", "fashionTheme", "set",
	} {
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = keyword.Name
		fm.Store = true
		docMapping.AddFieldMappingsAt(field, fm)
	}

	orderableFieldMapping := bleve.NewBooleanFieldMapping()
	orderableFieldMapping.Store = true
	docMapping.AddFieldMappingsAt("orderable", orderableFieldMapping)

	// --- Opaque payload fields (stored, not searched) ---

	for _, field := range []string{"url", "image", "variations", "variationImages"} {
		fm := bleve.NewTextFieldMapping()
		fm.Index = false
		fm.Store = true
		fm.IncludeInAll = false
		docMapping.AddFieldMappingsAt(field, fm)
	}

	indexMapping.AddDocumentMapping("_default", docMapping)

	return indexMapping, nil
}
