package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/dom"
)

// FieldType identifies the kind of data a field carries.
type FieldType string

// Field types, in extraction priority order.
const (
	FieldTitle       FieldType = "title"
	FieldLink        FieldType = "link"
	FieldImage       FieldType = "image"
	FieldDescription FieldType = "description"
	FieldPrice       FieldType = "price"
	FieldDate        FieldType = "date"
	FieldAuthor      FieldType = "author"
)

// Field is one typed value extracted from an item node. The selector is
// diagnostic only and never re-queried.
type Field struct {
	Type     FieldType `json:"type"`
	Text     string    `json:"text,omitempty"`
	Href     string    `json:"href,omitempty"`
	Src      string    `json:"src,omitempty"`
	Alt      string    `json:"alt,omitempty"`
	Selector string    `json:"selector,omitempty"`
}

// Field length bounds, in runes.
const (
	maxTitleLen    = 120
	minLinkTextLen = 3 // exclusive
	maxLinkTextLen = 140
	minDescLen     = 20
	maxDescLen     = 300
	descTruncLen   = 200
	maxAuthorLen   = 50
)

// Class-name patterns used for class-targeted field extraction.
var (
	descClassPattern   = regexp.MustCompile(`(?i)(desc|summary|excerpt|content)`)
	priceClassPattern  = regexp.MustCompile(`(?i)(price|cost|amount)`)
	authorClassPattern = regexp.MustCompile(`(?i)(author|by|user|posted)`)
)

// pricePattern matches an optionally currency-prefixed amount with
// thousands grouping, an optional decimal part and an optional trailing
// currency token.
var pricePattern = regexp.MustCompile(
	`(?i)(£|€|\$)?\s?(\d{1,3}(?:[\s.,]\d{3})*(?:[.,]\d{2})?)\s?(£|€|eur|fcfa|xof|usd|\$|gbp)?`)

// datePattern matches common numeric and written date shapes.
var datePattern = regexp.MustCompile(
	`(?i)\b(\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{4}[/-]\d{1,2}[/-]\d{1,2}|\w+ \d{1,2},? \d{4}|\d{1,2} \w+ \d{4})\b`)

// ExtractFields extracts up to limit typed fields from one item node, in
// fixed priority order: title, link, image, description, price, date,
// author. The first plausible signal per type wins; deeper matches are
// ignored to keep the heuristic cheap and explainable.
func ExtractFields(item *goquery.Selection, limit int) []Field {
	if limit <= 0 {
		limit = DefaultMaxFieldsPerItem
	}

	fields := make([]Field, 0, limit)
	extractors := []func(*goquery.Selection) (Field, bool){
		extractTitle,
		extractLink,
		extractImage,
		extractDescription,
		extractPrice,
		extractDate,
		extractAuthor,
	}
	for _, extract := range extractors {
		if f, ok := extract(item); ok {
			fields = append(fields, f)
		}
		if len(fields) >= limit {
			break
		}
	}
	return fields
}

// extractTitle finds the first heading with a plausibly short text.
func extractTitle(item *goquery.Selection) (Field, bool) {
	var out Field
	found := false
	item.Find("h1,h2,h3,h4,h5,h6").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := dom.CleanText(s.Text())
		if text == "" || utf8.RuneCountInString(text) > maxTitleLen {
			return true
		}
		out = Field{
			Type:     FieldTitle,
			Text:     text,
			Selector: dom.SelectorFor(s.Nodes[0], true),
		}
		found = true
		return false
	})
	return out, found
}

// extractLink finds the first anchor whose text looks like a label, not
// an icon glyph or a wall of text.
func extractLink(item *goquery.Selection) (Field, bool) {
	var out Field
	found := false
	item.Find("a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := dom.CleanText(s.Text())
		n := utf8.RuneCountInString(text)
		if n <= minLinkTextLen || n > maxLinkTextLen {
			return true
		}
		out = Field{
			Type:     FieldLink,
			Text:     text,
			Href:     s.AttrOr("href", ""),
			Selector: dom.SelectorFor(s.Nodes[0], true),
		}
		found = true
		return false
	})
	return out, found
}

// extractImage takes the first img with a src.
func extractImage(item *goquery.Selection) (Field, bool) {
	img := item.Find("img[src]").First()
	if img.Length() == 0 {
		return Field{}, false
	}
	return Field{
		Type:     FieldImage,
		Src:      img.AttrOr("src", ""),
		Alt:      img.AttrOr("alt", ""),
		Selector: dom.SelectorFor(img.Nodes[0], false),
	}, true
}

// extractDescription finds the first description-classed block of a
// sensible length.
func extractDescription(item *goquery.Selection) (Field, bool) {
	var out Field
	found := false
	item.Find("p,div").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !descClassPattern.MatchString(s.AttrOr("class", "")) {
			return true
		}
		text := dom.CleanText(s.Text())
		n := utf8.RuneCountInString(text)
		if n < minDescLen || n > maxDescLen {
			return true
		}
		out = Field{
			Type:     FieldDescription,
			Text:     cutRunes(text, descTruncLen),
			Selector: dom.SelectorFor(s.Nodes[0], false),
		}
		found = true
		return false
	})
	return out, found
}

// extractPrice searches a price-classed element first, then the item's
// full text blob. Only a class-targeted hit carries a selector.
func extractPrice(item *goquery.Selection) (Field, bool) {
	var blob, selector string
	if el := firstByClass(item, priceClassPattern); el != nil {
		blob = dom.CleanText(el.Text())
		selector = dom.SelectorFor(el.Nodes[0], false)
	} else {
		blob = dom.CleanText(item.Text())
	}
	m := strings.TrimSpace(pricePattern.FindString(blob))
	if m == "" {
		return Field{}, false
	}
	return Field{Type: FieldPrice, Text: m, Selector: selector}, true
}

// extractDate matches common date shapes over the item text blob.
func extractDate(item *goquery.Selection) (Field, bool) {
	m := strings.TrimSpace(datePattern.FindString(dom.CleanText(item.Text())))
	if m == "" {
		return Field{}, false
	}
	return Field{Type: FieldDate, Text: m}, true
}

// extractAuthor scans the byline-classed elements in document order and
// takes the first whose text is non-empty and short enough. A single
// oversized byline must not mask a usable later one.
func extractAuthor(item *goquery.Selection) (Field, bool) {
	var out Field
	found := false
	item.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !authorClassPattern.MatchString(s.AttrOr("class", "")) {
			return true
		}
		text := dom.CleanText(s.Text())
		if text == "" || utf8.RuneCountInString(text) > maxAuthorLen {
			return true
		}
		out = Field{
			Type:     FieldAuthor,
			Text:     text,
			Selector: dom.SelectorFor(s.Nodes[0], false),
		}
		found = true
		return false
	})
	return out, found
}

// firstByClass returns the first descendant whose class attribute
// matches the pattern, or nil.
func firstByClass(item *goquery.Selection, pattern *regexp.Regexp) *goquery.Selection {
	var out *goquery.Selection
	item.Find("[class]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if pattern.MatchString(s.AttrOr("class", "")) {
			out = s
			return false
		}
		return true
	})
	return out
}

// cutRunes truncates s to at most n runes without an ellipsis.
func cutRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
