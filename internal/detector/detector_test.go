package detector_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagesense/internal/detector"
	"github.com/jonesrussell/pagesense/internal/logger"
)

func parseDoc(t *testing.T, page string) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func findType(types []detector.DetectedType, cat detector.Category) (detector.DetectedType, bool) {
	for _, dt := range types {
		if dt.Type == cat {
			return dt, true
		}
	}
	return detector.DetectedType{}, false
}

func TestDetectProducts(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<div class="product"><h3 class="name">Widget A</h3><span class="price">19.99€</span></div>
		<div class="product"><h3 class="name">Widget B</h3><span class="price">24.99€</span></div>
		<div class="product"><h3 class="name">Widget C</h3><span class="price">31.50€</span></div>
	</body></html>`

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, page), "https://shop.example")

	products, ok := findType(report.DetectedTypes, detector.CategoryProducts)
	require.True(t, ok, "products not detected")
	assert.Greater(t, products.Confidence, 0.3)
	assert.Contains(t, products.Fields, "price")
	assert.True(t, products.Scrapable)
	assert.Equal(t, "Widget A", products.Sample["name"])
	assert.Equal(t, "19.99€", products.Sample["price"])
}

func TestDetectSkipsUnmatchedCategories(t *testing.T) {
	t.Parallel()

	page := `<html><body><div class="product"><span class="price">5€</span></div></body></html>`
	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, page), "")

	_, found := findType(report.DetectedTypes, detector.CategoryRecipes)
	assert.False(t, found)
}

func TestDetectRanksByConfidence(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<article class="post"><h2>Title one</h2><span class="author">A</span><div class="content">text date 2024</div></article>
		<article class="post"><h2>Title two</h2><span class="author">B</span><div class="content">more text</div></article>
		<div class="comment"><span class="author">C</span> nice text</div>
	</body></html>`

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, page), "")
	require.NotEmpty(t, report.DetectedTypes)
	for i := 1; i < len(report.DetectedTypes); i++ {
		assert.GreaterOrEqual(t,
			report.DetectedTypes[i-1].Confidence,
			report.DetectedTypes[i].Confidence,
		)
	}
	assert.Equal(t, len(report.DetectedTypes), report.TotalTypes)
}

func TestDetectPagination(t *testing.T) {
	t.Parallel()

	page := `<html><body>
		<div class="pagination"><a>1</a><a>2</a><a>3</a><a>12</a></div>
	</body></html>`

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, page), "")
	assert.True(t, report.HasPagination)
	assert.Equal(t, 12, report.TotalPagesEstimate)
}

func TestDetectNoPaginationDefaultsToOnePage(t *testing.T) {
	t.Parallel()

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, `<html><body><p>plain text</p></body></html>`), "")
	assert.False(t, report.HasPagination)
	assert.Equal(t, 1, report.TotalPagesEstimate)
}

func TestDetectComplexityAndRecommendation(t *testing.T) {
	t.Parallel()

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, `<html><body><p>just a paragraph of plain text</p></body></html>`), "")
	assert.LessOrEqual(t, report.TotalTypes, 2)
	assert.Equal(t, "simple", report.StructureComplexity)
	assert.Equal(t, "selective", report.RecommendedAction)
}

func TestDetectPriceEvidenceFromCurrencySymbol(t *testing.T) {
	t.Parallel()

	// No literal "price" text anywhere; only the euro sign carries the signal.
	page := `<html><body>
		<div class="item">Widget 19,99 €</div>
		<div class="item">Gadget 24,99 €</div>
	</body></html>`

	report := detector.New(logger.NewNoOp()).Detect(parseDoc(t, page), "")
	products, ok := findType(report.DetectedTypes, detector.CategoryProducts)
	require.True(t, ok)
	assert.Contains(t, products.Fields, "price")
}
