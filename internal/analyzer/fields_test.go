package analyzer_test

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pagesense/internal/analyzer"
)

// itemFrom parses a fragment and returns the first node matching sel.
func itemFrom(t *testing.T, fragment, sel string) *goquery.Selection {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	item := doc.Find(sel).First()
	require.Equal(t, 1, item.Length(), "selector %q matched nothing", sel)
	return item
}

func fieldByType(fields []analyzer.Field, ft analyzer.FieldType) (analyzer.Field, bool) {
	for _, f := range fields {
		if f.Type == ft {
			return f, true
		}
	}
	return analyzer.Field{}, false
}

func TestExtractFieldsTitleFirstMatchWins(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card">
		<h2>Primary heading</h2>
		<h3>Secondary heading</h3>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	title, ok := fieldByType(fields, analyzer.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Primary heading", title.Text)
}

func TestExtractFieldsTitleSkipsOverlongHeading(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 130)
	item := itemFrom(t, `<div class="card"><h2>`+long+`</h2><h3>Short title</h3></div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	title, ok := fieldByType(fields, analyzer.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "Short title", title.Text)
}

func TestExtractFieldsLinkTextBounds(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card">
		<a href="/x">ab</a>
		<a href="/details/42">View product details</a>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	link, ok := fieldByType(fields, analyzer.FieldLink)
	require.True(t, ok)
	assert.Equal(t, "View product details", link.Text)
	assert.Equal(t, "/details/42", link.Href)
}

func TestExtractFieldsImage(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card"><img src="/a.jpg" alt="A product"><img src="/b.jpg"></div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	img, ok := fieldByType(fields, analyzer.FieldImage)
	require.True(t, ok)
	assert.Equal(t, "/a.jpg", img.Src)
	assert.Equal(t, "A product", img.Alt)
}

func TestExtractFieldsDescriptionLengthAndTruncation(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 50) // 250 chars, inside [20,300]
	item := itemFrom(t, `<div class="card">
		<p class="excerpt">too short</p>
		<p class="summary">`+long+`</p>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	desc, ok := fieldByType(fields, analyzer.FieldDescription)
	require.True(t, ok)
	assert.LessOrEqual(t, len(desc.Text), 200)
	assert.True(t, strings.HasPrefix(desc.Text, "word word"))
}

func TestExtractFieldsPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "euro suffix in price class",
			html: `<div class="card"><span class="price">19.99€</span></div>`,
			want: "19.99€",
		},
		{
			name: "dollar prefix",
			html: `<div class="card"><span class="amount">$1,299.00</span></div>`,
			want: "$1,299.00",
		},
		{
			name: "fcfa in plain text",
			html: `<div class="card"><span>250 000 FCFA</span></div>`,
			want: "250 000 FCFA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := itemFrom(t, tt.html, "div.card")
			fields := analyzer.ExtractFields(item, 8)
			price, ok := fieldByType(fields, analyzer.FieldPrice)
			require.True(t, ok)
			assert.Equal(t, tt.want, price.Text)
		})
	}
}

func TestExtractFieldsDateShapes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		want string
	}{
		{name: "slash numeric", text: "Published 15/03/2024 by staff", want: "15/03/2024"},
		{name: "iso", text: "2024-03-15 update", want: "2024-03-15"},
		{name: "written month", text: "Posted on March 15, 2024", want: "March 15, 2024"},
		{name: "day first written", text: "15 March 2024", want: "15 March 2024"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			item := itemFrom(t, `<div class="card"><span>`+tt.text+`</span></div>`, "div.card")
			fields := analyzer.ExtractFields(item, 8)
			date, ok := fieldByType(fields, analyzer.FieldDate)
			require.True(t, ok)
			assert.Equal(t, tt.want, date.Text)
		})
	}
}

func TestExtractFieldsAuthor(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card"><span class="author">Jane Smith</span></div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	author, ok := fieldByType(fields, analyzer.FieldAuthor)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", author.Text)
}

func TestExtractFieldsAuthorSkipsOverlongByline(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("x", 60)
	item := itemFrom(t, `<div class="card">
		<span class="posted-by">`+long+`</span>
		<span class="author">Jane Smith</span>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	author, ok := fieldByType(fields, analyzer.FieldAuthor)
	require.True(t, ok)
	assert.Equal(t, "Jane Smith", author.Text)
}

func TestExtractFieldsSelectors(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("word ", 10)
	item := itemFrom(t, `<div class="card">
		<h3>Widget</h3>
		<a href="/w">See the widget</a>
		<p class="summary">`+long+`</p>
		<span class="price">9.99€</span>
		<span class="author">Jane Smith</span>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)

	title, ok := fieldByType(fields, analyzer.FieldTitle)
	require.True(t, ok)
	assert.Equal(t, "div.card > h3", title.Selector)

	link, ok := fieldByType(fields, analyzer.FieldLink)
	require.True(t, ok)
	assert.Equal(t, "div.card > a", link.Selector)

	desc, ok := fieldByType(fields, analyzer.FieldDescription)
	require.True(t, ok)
	assert.Equal(t, "p.summary", desc.Selector)

	price, ok := fieldByType(fields, analyzer.FieldPrice)
	require.True(t, ok)
	assert.Equal(t, "span.price", price.Selector)

	author, ok := fieldByType(fields, analyzer.FieldAuthor)
	require.True(t, ok)
	assert.Equal(t, "span.author", author.Selector)
}

func TestExtractFieldsBlobPriceHasNoSelector(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card"><span>250 000 FCFA</span></div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	price, ok := fieldByType(fields, analyzer.FieldPrice)
	require.True(t, ok)
	assert.Empty(t, price.Selector)
}

func TestExtractFieldsRespectsLimit(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card">
		<h3>Widget</h3>
		<a href="/w">See the widget</a>
		<img src="/w.jpg" alt="w">
		<span class="price">9.99€</span>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 2)
	require.Len(t, fields, 2)
	assert.Equal(t, analyzer.FieldTitle, fields[0].Type)
	assert.Equal(t, analyzer.FieldLink, fields[1].Type)
}

func TestExtractFieldsPreservesPriorityOrder(t *testing.T) {
	t.Parallel()

	item := itemFrom(t, `<div class="card">
		<span class="price">42.00€</span>
		<h3>Widget</h3>
	</div>`, "div.card")

	fields := analyzer.ExtractFields(item, 8)
	require.GreaterOrEqual(t, len(fields), 2)
	assert.Equal(t, analyzer.FieldTitle, fields[0].Type)
}
