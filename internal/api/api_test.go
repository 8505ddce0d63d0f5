package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagesense/internal/api"
)

// stubFetcher serves canned HTML or a canned error.
type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (string, error) {
	return s.html, s.err
}

func newRouter(f api.PageFetcher) *gin.Engine {
	return api.SetupRouter(nil, api.NewService(nil, f, nil))
}

func postJSON(t *testing.T, router *gin.Engine, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newsListPage(n int) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Dernières annonces</title></head><body><ul class="results">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<li class="result-item">
			<h2><a href="/annonce/%d">Appartement trois pièces centre-ville</a></h2>
			<span class="price">%d 000 FCFA</span>
		</li>`, i, 150+i)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

func TestHealthEndpoint(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestAnalyzeInlineHTML(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := postJSON(t, router, "/api/v1/analyze", api.AnalyzeRequest{HTML: newsListPage(6)})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AnalysisID)
	require.NotNil(t, resp.Report)
	assert.Equal(t, "Dernières annonces", resp.Report.PageTitle)
	require.Len(t, resp.Report.Collections, 1)
	assert.Equal(t, 6, resp.Report.Collections[0].EstimatedItems)
}

func TestAnalyzeFetchesWhenOnlyURLGiven(t *testing.T) {
	t.Parallel()

	router := newRouter(&stubFetcher{html: newsListPage(5)})
	w := postJSON(t, router, "/api/v1/analyze", api.AnalyzeRequest{URL: "https://annonces.example"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.AnalyzeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "https://annonces.example", resp.Report.URL)
}

func TestAnalyzeWithoutInput(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := postJSON(t, router, "/api/v1/analyze", api.AnalyzeRequest{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeFetchFailure(t *testing.T) {
	t.Parallel()

	router := newRouter(&stubFetcher{err: errors.New("connection refused")})
	w := postJSON(t, router, "/api/v1/analyze", api.AnalyzeRequest{URL: "https://down.example"})
	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestAnalyzeBlankDocument(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := postJSON(t, router, "/api/v1/analyze", api.AnalyzeRequest{HTML: "   \n"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestScrapeCollection(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := postJSON(t, router, "/api/v1/scrape", api.ScrapeRequest{HTML: newsListPage(8)})
	require.Equal(t, http.StatusOK, w.Code)

	var resp api.ScrapeResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AnalysisID)
	require.NotNil(t, resp.Result)
	assert.Equal(t, 8, resp.Result.Summary.TotalItemsExtracted)
	assert.Contains(t, resp.Result.Summary.DetectedFieldTypes, "title")
}

func TestScrapeUnknownCollection(t *testing.T) {
	t.Parallel()

	router := newRouter(nil)
	w := postJSON(t, router, "/api/v1/scrape", api.ScrapeRequest{HTML: newsListPage(8), CollectionIndex: 5})
	assert.Equal(t, http.StatusNotFound, w.Code)
}
