// Package fetcher retrieves a single page's HTML for downstream
// analysis. Fetch failures stay in this package; the analysis passes
// never perform I/O.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"strings"

	colly "github.com/gocolly/colly/v2"

	"github.com/jonesrussell/pagesense/internal/logger"
)

// ErrNotHTML reports a response whose content type cannot be analyzed.
var ErrNotHTML = errors.New("response is not HTML")

// ErrEmptyBody reports a successful response that carried no document.
var ErrEmptyBody = errors.New("response body is empty")

// StatusError reports an HTTP error status from the target page.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

// Fetcher fetches pages with a fresh collector per call, so one
// instance is safe for concurrent use.
type Fetcher struct {
	cfg *Config
	log logger.Interface
}

// New creates a fetcher. A nil config gets defaults, a nil logger a
// no-op.
func New(log logger.Interface, cfg *Config) *Fetcher {
	if log == nil {
		log = logger.NewNoOp()
	}
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.WithDefaults()
	return &Fetcher{
		cfg: cfg,
		log: log.WithComponent("fetcher"),
	}
}

// Fetch retrieves the raw HTML of one page. Non-HTML responses are
// aborted early from the response headers, and HTTP error statuses are
// surfaced as a StatusError rather than parsed.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	c := colly.NewCollector(
		colly.StdlibContext(ctx),
		colly.UserAgent(f.cfg.UserAgent),
		colly.MaxBodySize(f.cfg.MaxBodySize),
		colly.IgnoreRobotsTxt(),
		colly.ParseHTTPErrorResponse(),
	)
	c.SetRequestTimeout(f.cfg.Timeout)

	var body []byte
	var fetchErr error

	c.OnResponseHeaders(func(r *colly.Response) {
		contentType := strings.ToLower(strings.TrimSpace(r.Headers.Get("Content-Type")))
		isHTML := contentType == "" ||
			strings.HasPrefix(contentType, "text/html") ||
			strings.HasPrefix(contentType, "application/xhtml+xml")
		if !isHTML {
			fetchErr = fmt.Errorf("%w: %s", ErrNotHTML, contentType)
			r.Request.Abort()
		}
	})

	c.OnResponse(func(r *colly.Response) {
		if r.StatusCode >= 400 {
			fetchErr = &StatusError{URL: pageURL, StatusCode: r.StatusCode}
			return
		}
		body = r.Body
	})

	c.OnError(func(r *colly.Response, err error) {
		if fetchErr == nil {
			fetchErr = err
		}
	})

	if err := c.Visit(pageURL); err != nil {
		if fetchErr != nil {
			return "", fetchErr
		}
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	c.Wait()

	if fetchErr != nil {
		return "", fetchErr
	}
	if len(body) == 0 {
		return "", fmt.Errorf("fetch %s: %w", pageURL, ErrEmptyBody)
	}

	f.log.Debug("page fetched",
		"url", pageURL,
		"bytes", len(body),
	)
	return string(body), nil
}
