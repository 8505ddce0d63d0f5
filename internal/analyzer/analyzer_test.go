package analyzer_test

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/logger"
)

func newAnalyzer() *analyzer.Analyzer {
	return analyzer.New(logger.NewNoOp(), nil)
}

// productGrid renders n product items in a plain list.
func productGrid(n int) string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Shop</title></head><body><ul class="products">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<li class="product">
			<h3>Widget %d</h3>
			<span class="price">19.99€</span>
			<img src="/img/%d.jpg" alt="widget">
		</li>`, i, i)
	}
	b.WriteString(`</ul></body></html>`)
	return b.String()
}

func TestAnalyzeProductGrid(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(productGrid(5), analyzer.Options{})
	require.NoError(t, err)

	assert.Equal(t, "Shop", result.PageTitle)
	require.Len(t, result.Collections, 1)

	col := result.Collections[0]
	assert.Equal(t, "li", col.ItemTag)
	assert.Equal(t, 5, col.EstimatedItems)
	assert.GreaterOrEqual(t, col.Confidence, 0.65)
	assert.GreaterOrEqual(t, col.AvgFieldsPerItem, 1.0)

	require.NotEmpty(t, col.ItemsPreview)
	types := make(map[analyzer.FieldType]bool)
	for _, f := range col.ItemsPreview[0].Fields {
		types[f.Type] = true
	}
	assert.True(t, types[analyzer.FieldTitle], "missing title field")
	assert.True(t, types[analyzer.FieldPrice], "missing price field")
	assert.True(t, types[analyzer.FieldImage], "missing image field")
}

func TestAnalyzeBelowRepetitionThreshold(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(productGrid(3), analyzer.Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Collections)
}

func TestAnalyzeEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := newAnalyzer().Analyze("   \n\t ", analyzer.Options{})
	require.ErrorIs(t, err, analyzer.ErrEmptyDocument)
}

func TestAnalyzeNoSignalIsNotAnError(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(`<html><body><p>hello</p></body></html>`, analyzer.Options{})
	require.NoError(t, err)
	assert.NotNil(t, result.Collections)
	assert.Empty(t, result.Collections)
}

func TestFinderExcludesNamedNavigation(t *testing.T) {
	t.Parallel()

	var links strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&links, `<a href="/p%d">Page %d</a>`, i, i)
	}
	page := `<html><body><nav class="menu">` + links.String() + `</nav></body></html>`

	doc, err := analyzer.Parse(page)
	require.NoError(t, err)
	assert.Empty(t, newAnalyzer().Candidates(doc, 5))
}

func TestFinderExcludesAnonymousLinkList(t *testing.T) {
	t.Parallel()

	var links strings.Builder
	for i := 0; i < 10; i++ {
		fmt.Fprintf(&links, `<a href="/c%d">Topic %d</a>`, i, i)
	}
	// No nav-like name at all; only the link-list shape gives it away.
	page := `<html><body><div class="links-wrap">` + links.String() + `</div></body></html>`

	doc, err := analyzer.Parse(page)
	require.NoError(t, err)

	for _, c := range newAnalyzer().Candidates(doc, 5) {
		assert.NotEqual(t, "a", c.ItemTag, "link list promoted to candidate")
	}
}

func TestCandidateRepetitionInvariant(t *testing.T) {
	t.Parallel()

	doc, err := analyzer.Parse(productGrid(7))
	require.NoError(t, err)

	for _, c := range newAnalyzer().Candidates(doc, 5) {
		assert.GreaterOrEqual(t, c.ItemCount, 4)
	}
}

func TestScoreMonotonicUnderDuplication(t *testing.T) {
	t.Parallel()

	a := newAnalyzer()

	doc5, err := analyzer.Parse(productGrid(5))
	require.NoError(t, err)
	doc6, err := analyzer.Parse(productGrid(6))
	require.NoError(t, err)

	c5 := a.Candidates(doc5, 5)
	c6 := a.Candidates(doc6, 5)
	require.NotEmpty(t, c5)
	require.NotEmpty(t, c6)

	assert.GreaterOrEqual(t, c6[0].Score, c5[0].Score)
}

func TestAnalyzeDeterministic(t *testing.T) {
	t.Parallel()

	page := productGrid(5) + productGrid(8)
	a := newAnalyzer()

	first, err := a.Analyze(page, analyzer.Options{})
	require.NoError(t, err)
	second, err := a.Analyze(page, analyzer.Options{})
	require.NoError(t, err)

	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)
	secondJSON, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, firstJSON, secondJSON)
}

func TestAnalyzeRespectsMaxCandidates(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	b.WriteString(`<html><body>`)
	for g := 0; g < 4; g++ {
		fmt.Fprintf(&b, `<ul class="grid-%d">`, g)
		for i := 0; i < 5; i++ {
			fmt.Fprintf(&b, `<li class="product"><h3>Item %d-%d</h3><span class="price">5.00€</span><img src="/i.jpg"></li>`, g, i)
		}
		b.WriteString(`</ul>`)
	}
	b.WriteString(`</body></html>`)

	result, err := newAnalyzer().Analyze(b.String(), analyzer.Options{MaxCandidates: 2})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(result.Collections), 2)
}

func TestAnalyzeThresholdInvariant(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(productGrid(12), analyzer.Options{})
	require.NoError(t, err)

	for _, col := range result.Collections {
		assert.GreaterOrEqual(t, col.Confidence, 0.65)
		assert.GreaterOrEqual(t, col.AvgFieldsPerItem, 1.0)
		assert.LessOrEqual(t, col.Confidence, 1.0)
	}
}

// mixedProductList renders a list where product rows share a class
// signature and the remaining rows only share the tag.
func mixedProductList() string {
	var b strings.Builder
	b.WriteString(`<html><head><title>Shop</title></head><body><div id="main"><ul class="products">`)
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, `<li class="product">
			<h3>Widget %d</h3>
			<span class="price">19.99€</span>
			<img src="/img/%d.jpg" alt="widget">
		</li>`, i, i)
	}
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&b, `<li>Voir aussi la gamme %d</li>`, i)
	}
	b.WriteString(`</ul></div></body></html>`)
	return b.String()
}

func TestEstimatedItemsCountsDominantSignature(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(mixedProductList(), analyzer.Options{})
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)

	// Four li.product plus three plain li: the estimate reflects the
	// dominant signature, not every sibling sharing the tag.
	col := result.Collections[0]
	assert.Equal(t, "li", col.ItemTag)
	assert.Equal(t, 4, col.EstimatedItems)
}

func TestSelectorHintsCarryParentContext(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(mixedProductList(), analyzer.Options{})
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)

	col := result.Collections[0]
	assert.Equal(t, "#main > ul.products", col.ContainerSelectorHint)

	require.NotEmpty(t, col.ItemsPreview)
	assert.Equal(t, "ul.products > li.product", col.ItemsPreview[0].ItemSelectorHint)

	title, ok := fieldByType(col.ItemsPreview[0].Fields, analyzer.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "li.product > h3", title.Selector)

	price, ok := fieldByType(col.ItemsPreview[0].Fields, analyzer.FieldPrice)
	require.True(t, ok)
	assert.Equal(t, "span.price", price.Selector)
}

func TestPreviewSampleSmallerThanEstimate(t *testing.T) {
	t.Parallel()

	result, err := newAnalyzer().Analyze(productGrid(9), analyzer.Options{MaxItemsPreview: 3})
	require.NoError(t, err)
	require.Len(t, result.Collections, 1)

	col := result.Collections[0]
	assert.Equal(t, 9, col.EstimatedItems)
	assert.Len(t, col.ItemsPreview, 3)
}
