package inspect_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/classifier"
	"github.com/jonesrussell/pagesense/internal/detector"
	"github.com/jonesrussell/pagesense/internal/inspect"
)

func productPage() string {
	var b strings.Builder
	b.WriteString(`<html><head>
		<title>Boutique Exemple</title>
		<meta property="og:type" content="product">
	</head><body><div class="products">`)
	for i := 0; i < 5; i++ {
		b.WriteString(`<div class="product">
			<h3><a href="/p/1">Clavier mécanique rétroéclairé</a></h3>
			<img src="/img/1.jpg" alt="Clavier">
			<p class="description">Un clavier robuste avec interrupteurs programmables et repose-poignets inclus.</p>
			<span class="price">Prix : 49,99 €</span>
			<span class="stock">En stock</span>
			<button class="add-to-cart">Ajouter au panier</button>
		</div>`)
	}
	b.WriteString(`</div></body></html>`)
	return b.String()
}

func TestInspectProductPage(t *testing.T) {
	t.Parallel()

	ins := inspect.New(nil, nil)
	report, err := ins.Inspect(productPage(), "https://boutique.example", analyzer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "Boutique Exemple", report.PageTitle)
	assert.Equal(t, "https://boutique.example", report.URL)

	require.Len(t, report.Collections, 1)
	col := report.Collections[0]
	assert.Equal(t, "div", col.ItemTag)
	assert.Equal(t, 5, col.EstimatedItems)
	assert.GreaterOrEqual(t, col.Confidence, 0.65)

	// Bare <img> and <p> elements surface their own generic categories,
	// so a product grid detects as products plus media plus text content,
	// ranked by confidence.
	sc := report.ScrapableContent
	assert.Equal(t, 3, sc.TotalTypes)
	require.Len(t, sc.DetectedTypes, 3)
	assert.Equal(t, detector.CategoryProducts, sc.DetectedTypes[0].Type)
	assert.True(t, sc.DetectedTypes[0].AIVerified)
	assert.Empty(t, sc.RejectedTypes)
	assert.Equal(t, "selective", sc.RecommendedAction)
	assert.Equal(t, "medium", sc.StructureComplexity)
	assert.False(t, sc.HasPagination)
	assert.Equal(t, 1, sc.TotalPagesEstimate)
	assert.Equal(t, 3, sc.AIValidation.Validated)
	assert.InDelta(t, 1.0, sc.AIValidation.SuccessRate, 1e-9)

	site := report.SiteClassification
	assert.Equal(t, classifier.SiteEcommerce, site.Type)
	assert.Equal(t, classifier.SourceOpenGraph, site.Source)
	assert.InDelta(t, 0.80, site.Confidence, 1e-9)
}

func TestInspectNoSignalIsNormalReport(t *testing.T) {
	t.Parallel()

	ins := inspect.New(nil, nil)
	report, err := ins.Inspect(
		`<html><head><title>Quiet</title></head><body><div>Nothing here.</div></body></html>`,
		"https://zzqy.example", analyzer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "Quiet", report.PageTitle)
	assert.Empty(t, report.Collections)
	assert.NotNil(t, report.Collections)
	assert.Empty(t, report.ScrapableContent.DetectedTypes)
	assert.Zero(t, report.ScrapableContent.TotalTypes)
	assert.Zero(t, report.ScrapableContent.AIValidation.TotalDetected)

	// A silent page still gets the generic fallback label.
	assert.Equal(t, classifier.SiteCorporate, report.SiteClassification.Type)
	assert.Equal(t, classifier.SourceKeywordFallback, report.SiteClassification.Source)
}

func TestInspectEmptyInput(t *testing.T) {
	t.Parallel()

	ins := inspect.New(nil, nil)
	_, err := ins.Inspect("   \n\t", "https://zzqy.example", analyzer.Options{})
	require.ErrorIs(t, err, analyzer.ErrEmptyDocument)
}
