// Package classifier assigns one macro category to an entire site. It
// cascades from structured metadata (Schema.org JSON-LD, OpenGraph,
// meta keywords) down to a keyword-weighted scoring fallback; the first
// successful stage wins and sets the confidence.
package classifier

import (
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/logger"
)

// SiteClassification is one macro label for a site.
type SiteClassification struct {
	Type        SiteType `json:"type"`
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	Source      string   `json:"source"`
}

// Classifier runs the site classification cascade. Stateless.
type Classifier struct {
	log logger.Interface
}

// New creates a classifier. A nil logger falls back to no-op.
func New(log logger.Interface) *Classifier {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Classifier{log: log.WithComponent("classifier")}
}

// Classify runs the full cascade: metadata first, then the keyword
// fallback. It always returns a classification; the fallback's generic
// default covers pages with no signal at all.
func (c *Classifier) Classify(doc *goquery.Document, pageURL, pageTitle, sampleText string, detectedFields []string) SiteClassification {
	if sc, ok := c.ClassifyMetadata(doc); ok {
		c.log.Debug("site classified from metadata",
			"type", sc.Type,
			"source", sc.Source,
		)
		return sc
	}
	sc := ClassifyKeywords(pageURL, pageTitle, sampleText, detectedFields)
	c.log.Debug("site classified from keywords",
		"type", sc.Type,
		"confidence", sc.Confidence,
	)
	return sc
}

// ClassifyMetadata tries the structured stages only. The boolean is
// false when no metadata carried a usable signal.
func (c *Classifier) ClassifyMetadata(doc *goquery.Document) (SiteClassification, bool) {
	if schemaType := extractSchemaType(doc); schemaType != "" {
		if cat, ok := schemaTypeMapping[schemaType]; ok {
			return classification(cat, confidenceSchemaOrg, SourceSchemaOrg), true
		}
	}

	if ogType := extractOGType(doc); ogType != "" {
		if cat, ok := ogTypeMapping[ogType]; ok {
			return classification(cat, confidenceOpenGraph, SourceOpenGraph), true
		}
	}

	if cat, ok := classifyMetaText(doc); ok {
		return classification(cat, confidenceMeta, SourceMeta), true
	}

	return SiteClassification{}, false
}

func classification(cat SiteType, confidence float64, source string) SiteClassification {
	return SiteClassification{
		Type:        cat,
		Title:       siteTitles[cat],
		Icon:        siteIcons[cat],
		Confidence:  confidence,
		Description: siteDescriptions[cat],
		Source:      source,
	}
}

// extractSchemaType pulls the first @type from JSON-LD blocks.
// Malformed blocks are skipped, not fatal.
func extractSchemaType(doc *goquery.Document) string {
	schemaType := ""
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		var data any
		if err := json.Unmarshal([]byte(s.Text()), &data); err != nil {
			return true
		}
		if list, ok := data.([]any); ok {
			if len(list) == 0 {
				return true
			}
			data = list[0]
		}
		obj, ok := data.(map[string]any)
		if !ok {
			return true
		}
		switch t := obj["@type"].(type) {
		case string:
			schemaType = t
		case []any:
			if len(t) > 0 {
				if first, ok := t[0].(string); ok {
					schemaType = first
				}
			}
		}
		return schemaType == ""
	})
	return schemaType
}

// extractOGType reads the og:type meta content.
func extractOGType(doc *goquery.Document) string {
	return doc.Find(`meta[property="og:type"]`).First().AttrOr("content", "")
}

// metaTextHints maps small keyword sets over meta description and
// keywords content, checked in order.
var metaTextHints = []struct {
	Type     SiteType
	Keywords []string
}{
	{SiteEducation, []string{"école", "university", "formation", "student"}},
	{SiteEcommerce, []string{"shop", "buy", "cart", "store"}},
	{SiteNews, []string{"news", "actualité", "journal"}},
	{SiteBlog, []string{"blog", "article", "post"}},
	{SiteRestaurant, []string{"restaurant", "menu", "cuisine"}},
}

// classifyMetaText probes meta description and keywords content.
func classifyMetaText(doc *goquery.Document) (SiteType, bool) {
	var text strings.Builder
	if v := doc.Find(`meta[name="description"]`).First().AttrOr("content", ""); v != "" {
		text.WriteString(strings.ToLower(v))
		text.WriteString(" ")
	}
	if v := doc.Find(`meta[name="keywords"]`).First().AttrOr("content", ""); v != "" {
		text.WriteString(strings.ToLower(v))
		text.WriteString(" ")
	}
	if text.Len() == 0 {
		return "", false
	}

	content := text.String()
	for _, hint := range metaTextHints {
		for _, kw := range hint.Keywords {
			if strings.Contains(content, kw) {
				return hint.Type, true
			}
		}
	}
	return "", false
}
