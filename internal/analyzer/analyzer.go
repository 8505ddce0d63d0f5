// Package analyzer infers repeating item collections from rendered HTML.
// Given one parsed document it locates candidate containers of repeated
// sibling structures, samples their items through a typed field
// extractor and publishes confidence-scored collections.
package analyzer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/dom"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// Confidence blend weights. Ad hoc linear heuristics, kept as named
// constants so they are tunable in one place.
const (
	confidenceBase        = 0.2
	confidenceScoreDiv    = 20.0
	confidenceFieldWeight = 0.1
)

// Analyzer runs the collection-inference pass. It holds no mutable
// state between calls and is safe for concurrent use as long as each
// call owns its parsed document.
type Analyzer struct {
	log logger.Interface
	cfg *Config
}

// New creates an analyzer. A nil logger or config falls back to no-op
// and defaults respectively.
func New(log logger.Interface, cfg *Config) *Analyzer {
	if log == nil {
		log = logger.NewNoOp()
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	cfg.WithDefaults()
	return &Analyzer{
		log: log.WithComponent("analyzer"),
		cfg: cfg,
	}
}

// Options are per-call overrides of the configured caps.
type Options struct {
	MaxCandidates   int
	MaxItemsPreview int
}

// ItemPreview is one sampled item with its extracted fields.
type ItemPreview struct {
	ItemSelectorHint string  `json:"item_selector_hint"`
	Fields           []Field `json:"fields"`
}

// Collection is a published, confidence-scored group of repeated items.
type Collection struct {
	ContainerSelectorHint string        `json:"container_selector_hint"`
	ItemTag               string        `json:"item_tag"`
	EstimatedItems        int           `json:"estimated_items"`
	Confidence            float64       `json:"confidence"`
	AvgFieldsPerItem      float64       `json:"avg_fields_per_item"`
	ItemsPreview          []ItemPreview `json:"items_preview"`
}

// Result is the output of one analysis call.
type Result struct {
	PageTitle   string       `json:"page_title"`
	Collections []Collection `json:"collections"`
}

// Parse builds a document from raw HTML. Blank input is an explicit
// error, never silently treated as "no signal".
func Parse(rawHTML string) (*goquery.Document, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, ErrEmptyDocument
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse HTML: %w", err)
	}
	return doc, nil
}

// Analyze parses raw HTML and runs the collection pass over it.
func (a *Analyzer) Analyze(rawHTML string, opts Options) (*Result, error) {
	doc, err := Parse(rawHTML)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeDocument(doc, opts), nil
}

// AnalyzeDocument runs the collection pass over an already-parsed
// document. A document with no qualifying candidates yields an empty
// collection list, which is a normal outcome.
func (a *Analyzer) AnalyzeDocument(doc *goquery.Document, opts Options) *Result {
	maxCandidates := opts.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = a.cfg.MaxCandidates
	}
	maxPreview := opts.MaxItemsPreview
	if maxPreview <= 0 {
		maxPreview = a.cfg.MaxItemsPreview
	}

	start := time.Now()
	result := &Result{
		PageTitle:   dom.CleanText(doc.Find("title").First().Text()),
		Collections: []Collection{},
	}

	// Over-fetch so threshold filtering still leaves enough survivors.
	candidates := a.findRepeatingCandidates(doc, maxCandidates*overfetchFactor)
	for _, cand := range candidates {
		if len(result.Collections) >= maxCandidates {
			break
		}
		col, ok := a.buildCollection(cand, maxPreview)
		if !ok {
			continue
		}
		result.Collections = append(result.Collections, col)
	}

	a.log.Debug("analysis complete",
		"candidates", len(candidates),
		"collections", len(result.Collections),
		"duration", time.Since(start),
	)
	return result
}

// Candidates exposes the raw finder output. The scraping path uses it
// to re-run field extraction over all items of a chosen candidate, not
// just the preview sample.
func (a *Analyzer) Candidates(doc *goquery.Document, maxCandidates int) []Candidate {
	if maxCandidates <= 0 {
		maxCandidates = a.cfg.MaxCandidates
	}
	return a.findRepeatingCandidates(doc, maxCandidates)
}

// ExtractItemFields runs the field extractor with the configured field cap.
func (a *Analyzer) ExtractItemFields(item *goquery.Selection) []Field {
	return ExtractFields(item, a.cfg.MaxFieldsPerItem)
}

// buildCollection samples a candidate's items and applies the
// publication thresholds. Returns false when the candidate is too
// field-poor or too low-confidence to publish.
func (a *Analyzer) buildCollection(cand Candidate, maxPreview int) (Collection, bool) {
	items := cand.Items()
	if len(items) == 0 {
		return Collection{}, false
	}

	sample := len(items)
	if sample > maxPreview {
		sample = maxPreview
	}

	previews := make([]ItemPreview, 0, sample)
	totalFields := 0
	for _, item := range items[:sample] {
		fields := ExtractFields(item, a.cfg.MaxFieldsPerItem)
		totalFields += len(fields)
		previews = append(previews, ItemPreview{
			ItemSelectorHint: dom.SelectorFor(item.Nodes[0], true),
			Fields:           fields,
		})
	}

	avgFields := float64(totalFields) / float64(sample)
	if avgFields < a.cfg.MinAvgFields {
		a.log.Debug("candidate dropped: too few fields",
			"item_tag", cand.ItemTag,
			"avg_fields", avgFields,
		)
		return Collection{}, false
	}

	confidence := confidenceBase + cand.Score/confidenceScoreDiv + avgFields*confidenceFieldWeight
	if confidence > 1.0 {
		confidence = 1.0
	}
	if confidence < a.cfg.MinConfidence {
		a.log.Debug("candidate dropped: low confidence",
			"item_tag", cand.ItemTag,
			"confidence", confidence,
		)
		return Collection{}, false
	}

	return Collection{
		ContainerSelectorHint: dom.SelectorFor(cand.Container.Nodes[0], true),
		ItemTag:               cand.ItemTag,
		EstimatedItems:        cand.ItemCount,
		Confidence:            round(confidence, 3),
		AvgFieldsPerItem:      round(avgFields, 2),
		ItemsPreview:          previews,
	}, true
}

// round keeps output stable across runs and readable in serialized form.
func round(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
