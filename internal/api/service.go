package api

import (
	"context"
	"errors"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/inspect"
	"github.com/jonesrussell/pagesense/internal/logger"
	"github.com/jonesrussell/pagesense/internal/scraper"
)

// ErrNoInput reports a request carrying neither a URL nor inline HTML.
var ErrNoInput = errors.New("either url or html must be provided")

// PageFetcher retrieves a page's raw HTML. Satisfied by fetcher.Fetcher.
type PageFetcher interface {
	Fetch(ctx context.Context, pageURL string) (string, error)
}

// FetchError wraps an upstream fetch failure so handlers can map it to
// a gateway status instead of a client error.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string { return "fetch " + e.URL + ": " + e.Err.Error() }
func (e *FetchError) Unwrap() error { return e.Err }

// Service backs the HTTP handlers with the inspection and extraction
// pipelines plus an optional page fetcher.
type Service struct {
	log       logger.Interface
	fetcher   PageFetcher
	inspector *inspect.Inspector
	scraper   *scraper.Scraper
}

// NewService wires the pipelines together. A nil fetcher limits the
// service to inline-HTML requests.
func NewService(log logger.Interface, f PageFetcher, cfg *analyzer.Config) *Service {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Service{
		log:       log.WithComponent("api"),
		fetcher:   f,
		inspector: inspect.New(log, cfg),
		scraper:   scraper.New(log, analyzer.New(log, cfg)),
	}
}

// Analyze resolves the page HTML and runs the full inspection.
func (s *Service) Analyze(ctx context.Context, req *AnalyzeRequest) (*inspect.Report, error) {
	html, err := s.pageHTML(ctx, req.HTML, req.URL)
	if err != nil {
		return nil, err
	}
	return s.inspector.Inspect(html, req.URL, analyzer.Options{
		MaxCandidates:   req.MaxCandidates,
		MaxItemsPreview: req.MaxItemsPreview,
	})
}

// Scrape resolves the page HTML and extracts one collection in full.
func (s *Service) Scrape(ctx context.Context, req *ScrapeRequest) (*scraper.Result, error) {
	html, err := s.pageHTML(ctx, req.HTML, req.URL)
	if err != nil {
		return nil, err
	}
	return s.scraper.Scrape(html, req.URL, req.CollectionIndex, req.MaxItems)
}

// pageHTML prefers inline HTML and falls back to fetching the URL.
func (s *Service) pageHTML(ctx context.Context, html, pageURL string) (string, error) {
	if html != "" {
		return html, nil
	}
	if pageURL == "" {
		return "", ErrNoInput
	}
	if s.fetcher == nil {
		return "", &FetchError{URL: pageURL, Err: errors.New("no fetcher configured")}
	}
	fetched, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return "", &FetchError{URL: pageURL, Err: err}
	}
	return fetched, nil
}
