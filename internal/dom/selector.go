package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// maxSelectorClasses caps how many classes a locator part carries.
const maxSelectorClasses = 2

// SelectorFor builds a short CSS-flavoured locator for an element, for
// diagnostics and report output. The result is never re-queried against
// the document, so it favours readability over uniqueness.
func SelectorFor(n *html.Node, withParent bool) string {
	if n == nil || n.Type != html.ElementNode {
		return ""
	}

	part := selectorPart(n)
	if !withParent {
		return part
	}

	p := n.Parent
	if p == nil || p.Type != html.ElementNode {
		return part
	}
	tag := strings.ToLower(p.Data)
	if tag == "html" || tag == "body" {
		return part
	}
	return selectorPart(p) + " > " + part
}

// selectorPart renders a single element as #id, tag.class.class or tag.
func selectorPart(n *html.Node) string {
	if id := Attr(n, "id"); id != "" {
		return "#" + id
	}

	tag := strings.ToLower(n.Data)
	classes := make([]string, 0, maxSelectorClasses)
	for _, c := range classList(n) {
		if strings.HasPrefix(strings.ToLower(c), "js-") {
			continue
		}
		classes = append(classes, c)
		if len(classes) == maxSelectorClasses {
			break
		}
	}
	if len(classes) == 0 {
		return tag
	}
	return tag + "." + strings.Join(classes, ".")
}
