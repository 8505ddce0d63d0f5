package dom_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/jonesrussell/pagesense/internal/dom"
)

// firstElement parses a fragment and returns the first element matching tag.
func firstElement(t *testing.T, fragment, tag string) *html.Node {
	t.Helper()

	root, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)

	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && strings.EqualFold(n.Data, tag) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	require.NotNil(t, found, "no <%s> in fragment", tag)
	return found
}

func TestSignatureFiltersInstanceNoise(t *testing.T) {
	t.Parallel()

	n := firstElement(t, `<li class="product post-8124 instock product_cat-shoes js-track first">x</li>`, "li")
	sig := dom.Signature(n)

	assert.Equal(t, "li", sig.Tag)
	assert.Equal(t, []string{"instock", "product"}, sig.Classes)
}

func TestSignatureEqualAcrossInstances(t *testing.T) {
	t.Parallel()

	a := firstElement(t, `<li class="product post-101 product_cat-shoes">a</li>`, "li")
	b := firstElement(t, `<li class="post-202 product product_cat-hats">b</li>`, "li")

	assert.Equal(t, dom.Signature(a).Key(), dom.Signature(b).Key())
}

func TestSignatureSortsClasses(t *testing.T) {
	t.Parallel()

	a := firstElement(t, `<div class="card item">x</div>`, "div")
	b := firstElement(t, `<div class="item card">x</div>`, "div")

	assert.Equal(t, dom.Signature(a), dom.Signature(b))
}

func TestSignatureDropsNonSemanticClasses(t *testing.T) {
	t.Parallel()

	n := firstElement(t, `<div class="mt-4 flex text-lg">x</div>`, "div")
	sig := dom.Signature(n)

	assert.Equal(t, "div", sig.Tag)
	assert.Empty(t, sig.Classes)
	assert.Equal(t, "div", sig.Key())
}

func TestSignatureAllowList(t *testing.T) {
	t.Parallel()

	n := firstElement(t, `<li class="has-post-thumbnail status-publish odd">x</li>`, "li")
	sig := dom.Signature(n)

	assert.Equal(t, []string{"has-post-thumbnail", "status-publish"}, sig.Classes)
}

func TestSelectorForPrefersID(t *testing.T) {
	t.Parallel()

	n := firstElement(t, `<ul id="main-list" class="products"><li>x</li></ul>`, "ul")
	assert.Equal(t, "#main-list", dom.SelectorFor(n, false))
}

func TestSelectorForCapsClasses(t *testing.T) {
	t.Parallel()

	n := firstElement(t, `<div class="card product featured js-thing">x</div>`, "div")
	assert.Equal(t, "div.card.product", dom.SelectorFor(n, false))
}

func TestSelectorForWithParent(t *testing.T) {
	t.Parallel()

	li := firstElement(t, `<ul class="products"><li class="product">x</li></ul>`, "li")
	assert.Equal(t, "ul.products > li.product", dom.SelectorFor(li, true))
}

func TestSelectorForSkipsBodyParent(t *testing.T) {
	t.Parallel()

	div := firstElement(t, `<body><div class="card">x</div></body>`, "div")
	assert.Equal(t, "div.card", dom.SelectorFor(div, true))
}

func TestCleanText(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a b c", dom.CleanText("  a\n\t b \n c  "))
	assert.Equal(t, "", dom.CleanText(" \n\t "))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "abc", dom.Truncate("abc", 5))
	assert.Equal(t, "ab...", dom.Truncate("abcdef", 2))
}
