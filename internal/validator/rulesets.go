package validator

import (
	"regexp"

	"github.com/jonesrussell/pagesense/internal/detector"
)

// Ruleset is the hand-authored evidence profile for one category.
// Indicators are bilingual (French/English) because the rulesets grew
// against French-language storefronts and news sites.
type Ruleset struct {
	// HTMLTags are selectors whose presence is structural evidence.
	HTMLTags []string
	// TextIndicators are matched against the lowercased page text.
	TextIndicators []*regexp.Regexp
	// StructureMarkers are words searched in the raw markup (classes,
	// ids, attributes).
	StructureMarkers []StructureMarker
	// MinTextLength is the minimum page text per detected element.
	MinTextLength int
	// RequiredElements is how many structure markers must be present.
	RequiredElements int
}

// StructureMarker pairs a marker word with its whole-word pattern,
// compiled once when the ruleset table is built.
type StructureMarker struct {
	Word    string
	Pattern *regexp.Regexp
}

func markers(words ...string) []StructureMarker {
	out := make([]StructureMarker, len(words))
	for i, w := range words {
		out[i] = StructureMarker{Word: w, Pattern: regexp.MustCompile(`(?i)\b` + w + `\b`)}
	}
	return out
}

// rulesets covers the categories worth a second opinion. Categories
// absent from this table pass through on benefit of the doubt.
var rulesets = map[detector.Category]Ruleset{
	detector.CategoryArticles: {
		HTMLTags: []string{"article", `div[class*="post"]`, `div[class*="article"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(article|blog|post|news|actualit[ée]s?)\b`),
			regexp.MustCompile(`(?i)\b(auteur|author|par|by|written by)\b`),
			regexp.MustCompile(`(?i)\b(publi[ée]|published|date|temps de lecture)\b`),
		},
		StructureMarkers: markers("h1", "h2", "h3", "p", "time", "author"),
		MinTextLength:    200,
		RequiredElements: 2,
	},
	detector.CategoryProducts: {
		HTMLTags: []string{`div[class*="product"]`, `div[itemtype*="Product"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(€|£|\$|USD|EUR|GBP)\s*\d+`),
			regexp.MustCompile(`(?i)\b(prix|price|acheter|buy|ajouter au panier|add to cart)\b`),
			regexp.MustCompile(`(?i)\b(en stock|out of stock|disponible|available)\b`),
			regexp.MustCompile(`(?i)\b(taille|size|couleur|color|quantit[ée])\b`),
		},
		StructureMarkers: markers("price", "add", "cart", "stock", "sku"),
		MinTextLength:    50,
		RequiredElements: 2,
	},
	detector.CategoryComments: {
		HTMLTags: []string{`div[class*="comment"]`, `div[class*="review"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(commentaire|comment|avis|review|r[ée]ponse|reply)\b`),
			regexp.MustCompile(`(?i)\b(utile|helpful|signaler|report|like|partager)\b`),
			regexp.MustCompile(`(?i)\b(il y a|ago|\d+\s*(jour|day|heure|hour|minute|min)s?)\b`),
		},
		StructureMarkers: markers("author", "user", "date", "time", "reply"),
		MinTextLength:    20,
		RequiredElements: 1,
	},
	detector.CategoryReviews: {
		HTMLTags: []string{`div[class*="review"]`, `div[itemtype*="Review"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)(\d+/5|★|⭐|\d+\s*[ée]toile)`),
			regexp.MustCompile(`(?i)\b(avis v[ée]rifi[ée]|verified|recommande|recommend)\b`),
			regexp.MustCompile(`(?i)\b(qualit[ée]|quality|service|satisfaction)\b`),
		},
		StructureMarkers: markers("rating", "star", "verified", "helpful"),
		MinTextLength:    30,
		RequiredElements: 1,
	},
	detector.CategoryEvents: {
		HTMLTags: []string{`div[class*="event"]`, `div[itemtype*="Event"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(\d{1,2}\s*(janvier|f[ée]vrier|mars|avril|mai|juin|juillet|ao[uû]t|septembre|octobre|novembre|d[ée]cembre))\b`),
			regexp.MustCompile(`(?i)\b(calendar|calendrier|r[ée]server|register|inscription)\b`),
			regexp.MustCompile(`(?i)\b(\d{1,2}h\d{2}|\d{1,2}:\d{2})\b`),
		},
		StructureMarkers: markers("date", "time", "location", "event"),
		MinTextLength:    50,
		RequiredElements: 2,
	},
	detector.CategoryCourses: {
		HTMLTags: []string{`div[class*="course"]`, `div[class*="formation"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(cours|course|formation|training|[ée]tude|study)\b`),
			regexp.MustCompile(`(?i)\b(niveau|level|d[ée]butant|beginner|avanc[ée]|advanced)\b`),
			regexp.MustCompile(`(?i)\b(dur[ée]e|duration|heure|hour|module|lesson)\b`),
			regexp.MustCompile(`(?i)\b(certifi[ée]|certificate|dipl[ôo]me|degree)\b`),
		},
		StructureMarkers: markers("instructor", "duration", "level", "price"),
		MinTextLength:    100,
		RequiredElements: 2,
	},
	detector.CategoryJobs: {
		HTMLTags: []string{`div[class*="job"]`, `div[itemtype*="JobPosting"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(emploi|job|poste|position|recrutement|hiring)\b`),
			regexp.MustCompile(`(?i)\b(salaire|salary|CDI|CDD|temps plein|full.?time)\b`),
			regexp.MustCompile(`(?i)\b(exp[ée]rience|experience|comp[ée]tence|skill)\b`),
			regexp.MustCompile(`(?i)\b(postuler|apply|candidature|application)\b`),
		},
		StructureMarkers: markers("company", "salary", "location", "apply"),
		MinTextLength:    100,
		RequiredElements: 2,
	},
	detector.CategoryRealEstate: {
		HTMLTags: []string{`div[class*="property"]`, `div[class*="listing"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(m²|m2|surface|sqft)\b`),
			regexp.MustCompile(`(?i)\b(chambre|bedroom|pi[èe]ce|room)\b`),
			regexp.MustCompile(`(?i)\b(louer|rent|vendre|sale|acheter|buy)\b`),
			regexp.MustCompile(`(?i)\b(appartement|maison|house|villa|terrain)\b`),
		},
		StructureMarkers: markers("price", "surface", "rooms", "location"),
		MinTextLength:    80,
		RequiredElements: 2,
	},
	detector.CategoryRecipes: {
		HTMLTags: []string{`div[class*="recipe"]`, `div[itemtype*="Recipe"]`},
		TextIndicators: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(recette|recipe|ingr[ée]dient|ingredient)\b`),
			regexp.MustCompile(`(?i)\b(cuisson|cooking|pr[ée]paration|preparation)\b`),
			regexp.MustCompile(`(?i)\b(portion|serving|calorie|minute)\b`),
			regexp.MustCompile(`(?i)\b([ée]tape|step|instruction|m[ée]lange|mix)\b`),
		},
		StructureMarkers: markers("ingredients", "instructions", "time", "servings"),
		MinTextLength:    150,
		RequiredElements: 2,
	},
}
