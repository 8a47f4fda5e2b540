// Package search maintains an in-memory full-text index over the watchlist
// for the dashboard search box. It complements, not replaces, the screen
// filter's plain substring search: the index adds prefix and fuzzy matching
// over ticker, company name and industry.
package search

import (
	"fmt"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/equity-screener/internal/metrics"
	"github.com/yourusername/equity-screener/internal/models"
)

// stockDoc is the indexed projection of a stock record.
type stockDoc struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
}

// Engine wraps an in-memory bleve index keyed by NSE code. Rebuild swaps
// the index atomically on watchlist reload.
type Engine struct {
	mu     sync.RWMutex
	index  bleve.Index
	logger *logrus.Logger
}

// NewEngine creates an empty search engine.
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

func buildIndexMapping() mapping.IndexMapping {
	indexMapping := bleve.NewIndexMapping()

	stockMapping := bleve.NewDocumentMapping()

	textField := bleve.NewTextFieldMapping()
	textField.Store = false
	textField.Index = true
	stockMapping.AddFieldMappingsAt("code", textField)
	stockMapping.AddFieldMappingsAt("name", textField)
	stockMapping.AddFieldMappingsAt("industry", textField)

	indexMapping.AddDocumentMapping("_default", stockMapping)
	return indexMapping
}

// Rebuild replaces the index contents with the given snapshot.
func (e *Engine) Rebuild(stocks []models.Stock) error {
	index, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return fmt.Errorf("failed to create search index: %w", err)
	}

	batch := index.NewBatch()
	for i := range stocks {
		doc := stockDoc{
			Code:     strings.ToLower(stocks[i].NSECode),
			Name:     stocks[i].Name,
			Industry: stocks[i].Industry,
		}
		if err := batch.Index(stocks[i].NSECode, doc); err != nil {
			return fmt.Errorf("failed to add %s to batch: %w", stocks[i].NSECode, err)
		}
	}
	if err := index.Batch(batch); err != nil {
		return fmt.Errorf("failed to execute index batch: %w", err)
	}

	e.mu.Lock()
	old := e.index
	e.index = index
	e.mu.Unlock()

	if old != nil {
		if err := old.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close previous search index")
		}
	}

	e.logger.WithField("stocks", len(stocks)).Debug("Search index rebuilt")
	return nil
}

// Search returns up to limit NSE codes ranked by relevance. Exact ticker
// matches rank above prefix matches, which rank above name and industry
// matches.
func (e *Engine) Search(query string, limit int) ([]string, error) {
	e.mu.RLock()
	index := e.index
	e.mu.RUnlock()

	if index == nil {
		return nil, models.ErrNoData
	}

	metrics.RecordSearchQuery()
	lowered := strings.ToLower(strings.TrimSpace(query))

	exact := bleve.NewTermQuery(lowered)
	exact.SetField("code")
	exact.SetBoost(10.0)

	prefix := bleve.NewPrefixQuery(lowered)
	prefix.SetField("code")
	prefix.SetBoost(5.0)

	nameMatch := bleve.NewMatchQuery(query)
	nameMatch.SetField("name")
	nameMatch.SetBoost(3.0)

	nameWildcard := bleve.NewWildcardQuery("*" + lowered + "*")
	nameWildcard.SetField("name")
	nameWildcard.SetBoost(1.5)

	industryMatch := bleve.NewMatchQuery(query)
	industryMatch.SetField("industry")
	industryMatch.SetBoost(1.0)

	searchQuery := bleve.NewDisjunctionQuery(exact, prefix, nameMatch, nameWildcard, industryMatch)

	request := bleve.NewSearchRequest(searchQuery)
	request.Size = limit

	result, err := index.Search(request)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	codes := make([]string, 0, len(result.Hits))
	for _, hit := range result.Hits {
		codes = append(codes, hit.ID)
	}
	return codes, nil
}

// Close releases the index.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.index == nil {
		return nil
	}
	err := e.index.Close()
	e.index = nil
	return err
}
