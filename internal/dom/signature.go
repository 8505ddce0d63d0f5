// Package dom provides structural keys and diagnostic locators for HTML
// element nodes. The analysis passes use signatures to decide whether two
// sibling elements are instances of the same repeated item template.
package dom

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// NodeSignature reduces an element to its tag name plus the subset of its
// classes that carry structural meaning. Two siblings repeat the same
// template iff their signatures are equal.
type NodeSignature struct {
	Tag     string
	Classes []string // filtered, sorted
}

// instanceIDClass matches per-item numeric identifiers such as
// "post-8124" or "item-42" that differ on every instance.
var instanceIDClass = regexp.MustCompile(`^(post|id|item)-\d+`)

// taxonomyPrefixes mark per-item taxonomy slugs emitted by WordPress
// and WooCommerce themes.
var taxonomyPrefixes = []string{
	"product_cat-",
	"product_tag-",
	"category-",
	"tag-",
}

// stateClasses vary with an item's position or availability rather than
// its structure.
var stateClasses = map[string]struct{}{
	"first":  {},
	"last":   {},
	"odd":    {},
	"even":   {},
	"active": {},
}

// semanticVocabulary lists substrings that mark a class as describing
// the item's structural role.
var semanticVocabulary = []string{
	"product",
	"item",
	"card",
	"post",
	"article",
	"entry",
	"listing",
	"result",
	"tile",
	"box",
	"container",
}

// allowedClasses are kept verbatim. They fail the vocabulary test but
// reliably mark item nodes on WooCommerce and WordPress markup.
var allowedClasses = map[string]struct{}{
	"has-post-thumbnail": {},
	"instock":            {},
	"status-publish":     {},
	"type-product":       {},
}

// Signature computes the grouping key for an element node. Non-element
// nodes yield a zero signature.
func Signature(n *html.Node) NodeSignature {
	if n == nil || n.Type != html.ElementNode {
		return NodeSignature{}
	}

	classes := classList(n)
	kept := make([]string, 0, len(classes))
	for _, c := range classes {
		if isSemanticClass(c) {
			kept = append(kept, c)
		}
	}
	sort.Strings(kept)

	return NodeSignature{
		Tag:     strings.ToLower(n.Data),
		Classes: kept,
	}
}

// Key returns a deterministic string form of the signature, usable as a
// map key.
func (s NodeSignature) Key() string {
	if len(s.Classes) == 0 {
		return s.Tag
	}
	return s.Tag + "|" + strings.Join(s.Classes, ".")
}

// isSemanticClass reports whether a class survives noise filtering and
// matches the semantic vocabulary or the explicit allow-list.
func isSemanticClass(c string) bool {
	lc := strings.ToLower(c)

	if instanceIDClass.MatchString(lc) {
		return false
	}
	if strings.HasPrefix(lc, "js-") {
		return false
	}
	for _, p := range taxonomyPrefixes {
		if strings.HasPrefix(lc, p) {
			return false
		}
	}
	if _, ok := stateClasses[lc]; ok {
		return false
	}

	if _, ok := allowedClasses[lc]; ok {
		return true
	}
	for _, word := range semanticVocabulary {
		if strings.Contains(lc, word) {
			return true
		}
	}
	return false
}

// classList splits an element's class attribute on whitespace.
func classList(n *html.Node) []string {
	return strings.Fields(Attr(n, "class"))
}

// Attr returns the value of the named attribute, or "" when absent.
func Attr(n *html.Node, key string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}
