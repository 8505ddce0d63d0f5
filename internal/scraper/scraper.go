// Package scraper materializes a full extraction from one inferred
// collection: where the analysis pass samples a handful of items for
// preview, this pass re-runs the field extractor over every matching
// sibling of the chosen candidate.
package scraper

import (
	"fmt"
	"time"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/dom"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// maxScrapeCandidates bounds how many candidates the finder surfaces on
// the scraping path. Wider than the preview cap so callers can address
// collections the preview would have truncated away.
const maxScrapeCandidates = 10

// IndexError reports a collection index beyond what the finder located.
type IndexError struct {
	Index     int
	Available int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("collection index %d not found: only %d collections detected", e.Index, e.Available)
}

// Item is one fully extracted collection member.
type Item struct {
	Fields       []analyzer.Field `json:"fields"`
	SelectorHint string           `json:"selector_hint"`
}

// CollectionInfo identifies which candidate the items came from.
type CollectionInfo struct {
	ContainerSelector string `json:"container_selector"`
	ItemTag           string `json:"item_tag"`
	CollectionIndex   int    `json:"collection_index"`
}

// Summary aggregates the extraction for quick display.
type Summary struct {
	TotalItemsExtracted int            `json:"total_items_extracted"`
	Collection          CollectionInfo `json:"collection_info"`
	DetectedFieldTypes  []string       `json:"detected_field_types"`
}

// Result is the output of one scrape.
type Result struct {
	URL     string  `json:"url,omitempty"`
	Summary Summary `json:"summary"`
	Items   []Item  `json:"items"`
}

// Scraper drives full extraction. It reuses the analyzer's finder and
// field extractor so preview and extraction can never disagree on what
// a collection is.
type Scraper struct {
	log      logger.Interface
	analyzer *analyzer.Analyzer
}

// New creates a scraper on top of an existing analyzer. A nil analyzer
// gets a default-configured one.
func New(log logger.Interface, a *analyzer.Analyzer) *Scraper {
	if log == nil {
		log = logger.NewNoOp()
	}
	if a == nil {
		a = analyzer.New(log, nil)
	}
	return &Scraper{
		log:      log.WithComponent("scraper"),
		analyzer: a,
	}
}

// Scrape extracts every item of the collection at collectionIndex.
// maxItems caps the extraction when positive; zero or negative means
// all items. Items where the extractor finds nothing are skipped.
func (s *Scraper) Scrape(rawHTML, pageURL string, collectionIndex, maxItems int) (*Result, error) {
	doc, err := analyzer.Parse(rawHTML)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	candidates := s.analyzer.Candidates(doc, maxScrapeCandidates)
	if collectionIndex < 0 || collectionIndex >= len(candidates) {
		return nil, &IndexError{Index: collectionIndex, Available: len(candidates)}
	}
	cand := candidates[collectionIndex]

	nodes := cand.Items()
	if maxItems > 0 && len(nodes) > maxItems {
		nodes = nodes[:maxItems]
	}

	items := make([]Item, 0, len(nodes))
	fieldTypes := []string{}
	seen := make(map[string]bool)
	for _, node := range nodes {
		fields := s.analyzer.ExtractItemFields(node)
		if len(fields) == 0 {
			continue
		}
		for _, f := range fields {
			ft := string(f.Type)
			if !seen[ft] {
				seen[ft] = true
				fieldTypes = append(fieldTypes, ft)
			}
		}
		items = append(items, Item{
			Fields:       fields,
			SelectorHint: dom.SelectorFor(node.Nodes[0], true),
		})
	}

	s.log.Info("extraction complete",
		"url", pageURL,
		"collection_index", collectionIndex,
		"items", len(items),
		"duration", time.Since(start),
	)

	return &Result{
		URL: pageURL,
		Summary: Summary{
			TotalItemsExtracted: len(items),
			Collection: CollectionInfo{
				ContainerSelector: dom.SelectorFor(cand.Container.Nodes[0], true),
				ItemTag:           cand.ItemTag,
				CollectionIndex:   collectionIndex,
			},
			DetectedFieldTypes: fieldTypes,
		},
		Items: items,
	}, nil
}
