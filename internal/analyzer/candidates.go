package analyzer

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/dom"
)

// Candidate is a container element suspected of wrapping a repeated
// list of same-shaped items. Created transiently during one analysis
// pass; never persisted.
type Candidate struct {
	Container *goquery.Selection
	ItemTag   string
	ItemCount int
	Score     float64

	sigKey string
}

// Items returns the container's direct children whose tag matches the
// dominant item tag, in document order.
func (c Candidate) Items() []*goquery.Selection {
	var items []*goquery.Selection
	c.Container.Children().Each(func(_ int, ch *goquery.Selection) {
		if goquery.NodeName(ch) == c.ItemTag {
			items = append(items, ch)
		}
	})
	return items
}

// navContainerPatterns flag id/class names that belong to navigation
// chrome rather than content.
var navContainerPatterns = []string{
	"nav", "menu", "sidebar", "filter", "refinement", "facet",
	"breadcrumb", "pagination", "footer", "header", "toolbar",
	"categories", "page-numbers", "paging",
}

// skipContainerTags are never candidate containers.
var skipContainerTags = map[string]struct{}{
	"head":   {},
	"nav":    {},
	"header": {},
	"footer": {},
	"select": {},
	"script": {},
	"style":  {},
}

// Content-richness weights and sampling bounds.
const (
	richnessImage   = 2.0
	richnessPrice   = 2.0
	richnessHeading = 1.5
	richnessSample  = 3

	// Link-list heuristic: a container is navigation when at least 80%
	// of its first 10 children are short link-only nodes.
	linkListProbe     = 10
	linkListRatio     = 0.8
	maxLinkedNodeText = 40

	// overfetchFactor widens the internal candidate search so threshold
	// filtering still leaves enough survivors.
	overfetchFactor = 2
)

// findRepeatingCandidates walks every element, groups each element's
// direct children by signature and promotes elements whose dominant
// child signature repeats at least MinRepeats times. Candidates are
// ranked by score, then item count, and truncated to maxCandidates.
func (a *Analyzer) findRepeatingCandidates(doc *goquery.Document, maxCandidates int) []Candidate {
	var cands []Candidate

	doc.Find("*").Each(func(_ int, container *goquery.Selection) {
		if isNavigationContainer(container) {
			return
		}

		children := container.Children()
		total := children.Length()
		if total < a.cfg.MinRepeats {
			return
		}

		counts := make(map[string]int, total)
		tags := make(map[string]string, total)
		order := make([]string, 0, total)
		children.Each(func(_ int, ch *goquery.Selection) {
			sig := dom.Signature(ch.Nodes[0])
			key := sig.Key()
			if _, seen := counts[key]; !seen {
				order = append(order, key)
				tags[key] = sig.Tag
			}
			counts[key]++
		})

		// Dominant signature; ties resolved by first appearance so the
		// result is stable across runs.
		bestKey := ""
		best := 0
		for _, k := range order {
			if counts[k] > best {
				best = counts[k]
				bestKey = k
			}
		}
		if best < a.cfg.MinRepeats {
			return
		}

		var items []*goquery.Selection
		children.Each(func(_ int, ch *goquery.Selection) {
			if dom.Signature(ch.Nodes[0]).Key() == bestKey {
				items = append(items, ch)
			}
		})

		density := float64(best) / float64(total)
		richness := contentRichness(items)
		score := float64(best) * density * (1 + richness)

		cands = append(cands, Candidate{
			Container: container,
			ItemTag:   tags[bestKey],
			ItemCount: best,
			Score:     score,
			sigKey:    bestKey,
		})
	})

	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Score != cands[j].Score {
			return cands[i].Score > cands[j].Score
		}
		return cands[i].ItemCount > cands[j].ItemCount
	})
	if len(cands) > maxCandidates {
		cands = cands[:maxCandidates]
	}
	return cands
}

// isNavigationContainer filters out menu, sidebar and pagination
// chrome before any repetition counting happens.
func isNavigationContainer(s *goquery.Selection) bool {
	n := s.Nodes[0]
	if _, skip := skipContainerTags[strings.ToLower(n.Data)]; skip {
		return true
	}

	name := strings.ToLower(dom.Attr(n, "id") + " " + dom.Attr(n, "class"))
	for _, p := range navContainerPatterns {
		if strings.Contains(name, p) {
			return true
		}
	}

	return looksLikeLinkList(s)
}

// looksLikeLinkList reports whether a container is dominated by short
// link-only children, the shape of an unnamed menu.
func looksLikeLinkList(s *goquery.Selection) bool {
	children := s.Children()
	total := children.Length()
	if total == 0 {
		return false
	}

	probe := total
	if probe > linkListProbe {
		probe = linkListProbe
	}
	short := 0
	children.EachWithBreak(func(i int, ch *goquery.Selection) bool {
		if i >= probe {
			return false
		}
		if isShortLinkNode(ch) {
			short++
		}
		return true
	})
	return float64(short)/float64(probe) >= linkListRatio
}

// isShortLinkNode reports whether a child is essentially a bare link:
// short text, no image, no price signal.
func isShortLinkNode(ch *goquery.Selection) bool {
	text := dom.CleanText(ch.Text())
	if text == "" || utf8.RuneCountInString(text) > maxLinkedNodeText {
		return false
	}
	if goquery.NodeName(ch) != "a" && ch.Find("a").Length() == 0 {
		return false
	}
	if ch.Find("img").Length() > 0 {
		return false
	}
	if strings.ContainsAny(text, "€£$") {
		return false
	}
	return firstByClass(ch, priceClassPattern) == nil
}

// contentRichness samples up to three items and rewards images,
// price-like classes and headings. Biases scoring toward product-grid
// shapes over generic repeated list chrome.
func contentRichness(items []*goquery.Selection) float64 {
	n := len(items)
	if n == 0 {
		return 0
	}
	if n > richnessSample {
		n = richnessSample
	}

	var total float64
	for _, it := range items[:n] {
		var r float64
		if it.Find("img").Length() > 0 {
			r += richnessImage
		}
		if firstByClass(it, priceClassPattern) != nil {
			r += richnessPrice
		}
		if it.Find("h1,h2,h3,h4,h5,h6").Length() > 0 {
			r += richnessHeading
		}
		total += r
	}
	return total / float64(n)
}
