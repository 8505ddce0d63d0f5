package api

import (
	"github.com/jonesrussell/pagesense/internal/inspect"
	"github.com/jonesrussell/pagesense/internal/scraper"
)

// AnalyzeRequest asks for a full page inspection. Either url or html
// must be set; inline html wins when both are given.
type AnalyzeRequest struct {
	URL             string `json:"url"`
	HTML            string `json:"html"`
	MaxCandidates   int    `json:"max_candidates"`
	MaxItemsPreview int    `json:"max_items_preview"`
}

// AnalyzeResponse wraps the inspection report with a request identity.
type AnalyzeResponse struct {
	AnalysisID string          `json:"analysis_id"`
	Report     *inspect.Report `json:"report"`
}

// ScrapeRequest asks for a full extraction of one detected collection.
type ScrapeRequest struct {
	URL             string `json:"url"`
	HTML            string `json:"html"`
	CollectionIndex int    `json:"collection_index"`
	MaxItems        int    `json:"max_items"`
}

// ScrapeResponse wraps the extraction result with a request identity.
type ScrapeResponse struct {
	AnalysisID string          `json:"analysis_id"`
	Result     *scraper.Result `json:"result"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}
