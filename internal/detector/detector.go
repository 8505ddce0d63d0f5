// Package detector runs the coarse-grained content-type pass: each of
// the ~20 fixed categories is tested against its selector list and
// field-presence evidence, yielding per-category confidence scores.
// This pass is independent of the collection analyzer and uses only the
// shared parsed document.
package detector

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/dom"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// Scoring constants.
const (
	// maxElementsPerCategory caps how many matched elements one category
	// keeps for analysis.
	maxElementsPerCategory = 50
	// fieldProbeElements is how many matched elements are scanned for
	// field evidence.
	fieldProbeElements = 5
	// surfaceThreshold is the minimum confidence for a category to
	// appear in the report.
	surfaceThreshold = 0.3

	countScoreDiv  = 10.0
	countScoreCap  = 0.4
	requiredWeight = 0.4
	optionalWeight = 0.2
	// neutralRequiredScore applies when a category requires nothing.
	neutralRequiredScore = 0.2

	sampleTextLen    = 200
	sampleCommentLen = 150
	sampleFallback   = 100
)

// Complexity and recommendation bounds, by surfaced category count.
const (
	selectiveMaxTypes  = 3
	simpleMaxTypes     = 2
	mediumMaxTypes     = 5
	actionSelective    = "selective"
	actionFullSite     = "full_site"
	complexitySimple   = "simple"
	complexityMedium   = "medium"
	complexityComplex  = "complex"
)

// currencyMarkers provide extra evidence for the price field.
var currencyMarkers = []string{"€", "$", "£", "fcfa", "xof"}

// Vehicle-specific keyword evidence.
var (
	modelKeywords = []string{"model", "modèle", "série", "edition"}
	specsKeywords = []string{"km/h", "mph", "0-60", "autonomie", "range", "battery", "wh"}
)

var paginationProbeSelectors = []string{
	".pagination", ".pager", ".page-numbers", ".next", ".previous", `a[rel="next"]`,
}

var digitsPattern = regexp.MustCompile(`\d+`)

// DetectedType is one surfaced category with its evidence.
type DetectedType struct {
	Type           Category          `json:"type"`
	Name           string            `json:"name"`
	Icon           string            `json:"icon"`
	Description    string            `json:"description"`
	Count          int               `json:"count"`
	Sample         map[string]string `json:"sample,omitempty"`
	Confidence     float64           `json:"confidence"`
	Scrapable      bool              `json:"scrapable"`
	Fields         []string          `json:"fields"`
	RequiredFields []string          `json:"required_fields"`
	OptionalFields []string          `json:"optional_fields"`
}

// Report is the output of one detection pass.
type Report struct {
	DetectedTypes       []DetectedType `json:"detected_types"`
	TotalTypes          int            `json:"total_types"`
	RecommendedAction   string         `json:"recommended_action"`
	StructureComplexity string         `json:"structure_complexity"`
	HasPagination       bool           `json:"has_pagination"`
	TotalPagesEstimate  int            `json:"total_pages_estimate"`
}

// Detector runs the content-type pass. Stateless between calls.
type Detector struct {
	log logger.Interface
}

// New creates a detector. A nil logger falls back to no-op.
func New(log logger.Interface) *Detector {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Detector{log: log.WithComponent("detector")}
}

// Detect tests every category against the document and reports those
// whose confidence clears the surface threshold, ranked descending.
func (d *Detector) Detect(doc *goquery.Document, pageURL string) *Report {
	detected := []DetectedType{}

	for _, spec := range categorySpecs {
		elements := collectElements(doc, spec.Selectors)
		if len(elements) == 0 {
			continue
		}

		fields := identifyFields(elements, spec)
		confidence := calculateConfidence(elements, spec, fields)
		if confidence <= surfaceThreshold {
			continue
		}

		detected = append(detected, DetectedType{
			Type:           spec.Type,
			Name:           spec.Name,
			Icon:           spec.Icon,
			Description:    spec.Description,
			Count:          len(elements),
			Sample:         extractSample(elements[0], spec.Type),
			Confidence:     round2(confidence),
			Scrapable:      true,
			Fields:         fields,
			RequiredFields: spec.Required,
			OptionalFields: spec.Optional,
		})
	}

	// Rank by confidence; stable sort keeps table order on ties.
	sort.SliceStable(detected, func(i, j int) bool {
		return detected[i].Confidence > detected[j].Confidence
	})

	action := actionFullSite
	if len(detected) <= selectiveMaxTypes {
		action = actionSelective
	}

	d.log.Debug("content types detected",
		"url", pageURL,
		"types", len(detected),
		"action", action,
	)

	return &Report{
		DetectedTypes:       detected,
		TotalTypes:          len(detected),
		RecommendedAction:   action,
		StructureComplexity: complexityFor(len(detected)),
		HasPagination:       hasPagination(doc),
		TotalPagesEstimate:  estimateTotalPages(doc),
	}
}

func complexityFor(n int) string {
	switch {
	case n <= simpleMaxTypes:
		return complexitySimple
	case n <= mediumMaxTypes:
		return complexityMedium
	default:
		return complexityComplex
	}
}

// collectElements runs every selector and concatenates the matches,
// capped at maxElementsPerCategory. Overlapping selectors may count an
// element more than once; that overlap is itself a weak signal.
func collectElements(doc *goquery.Document, selectors []string) []*goquery.Selection {
	var elements []*goquery.Selection
	for _, sel := range selectors {
		doc.Find(sel).Each(func(_ int, s *goquery.Selection) {
			if len(elements) < maxElementsPerCategory {
				elements = append(elements, s)
			}
		})
		if len(elements) >= maxElementsPerCategory {
			break
		}
	}
	return elements
}

// identifyFields probes the first few matched elements for evidence of
// each required and optional field name.
func identifyFields(elements []*goquery.Selection, spec categorySpec) []string {
	probe := elements
	if len(probe) > fieldProbeElements {
		probe = probe[:fieldProbeElements]
	}

	allFields := make([]string, 0, len(spec.Required)+len(spec.Optional))
	allFields = append(allFields, spec.Required...)
	allFields = append(allFields, spec.Optional...)

	found := make([]string, 0, len(allFields))
	for _, field := range allFields {
		for _, elem := range probe {
			if fieldPresent(elem, field) {
				found = append(found, field)
				break
			}
		}
	}
	return found
}

// fieldPresent checks one element for a field name, in its text, its
// serialized markup (classes, attributes) or a field-specific signal.
func fieldPresent(elem *goquery.Selection, field string) bool {
	text := strings.ToLower(elem.Text())
	markup := ""
	if h, err := goquery.OuterHtml(elem); err == nil {
		markup = strings.ToLower(h)
	}

	if strings.Contains(text, field) || strings.Contains(markup, field) {
		return true
	}
	switch field {
	case "price":
		return containsAnyOf(text, currencyMarkers)
	case "image":
		return elem.Find("img").Length() > 0
	case "model":
		return containsAnyOf(text, modelKeywords)
	case "specs":
		return containsAnyOf(text, specsKeywords)
	}
	return false
}

func containsAnyOf(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}

// calculateConfidence blends match quantity with required and optional
// field coverage.
func calculateConfidence(elements []*goquery.Selection, spec categorySpec, fields []string) float64 {
	if len(elements) == 0 {
		return 0
	}

	countScore := math.Min(float64(len(elements))/countScoreDiv, countScoreCap)

	present := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		present[f] = struct{}{}
	}

	requiredScore := neutralRequiredScore
	if len(spec.Required) > 0 {
		n := 0
		for _, f := range spec.Required {
			if _, ok := present[f]; ok {
				n++
			}
		}
		requiredScore = float64(n) / float64(len(spec.Required)) * requiredWeight
	}

	optionalScore := 0.0
	if len(spec.Optional) > 0 {
		n := 0
		for _, f := range spec.Optional {
			if _, ok := present[f]; ok {
				n++
			}
		}
		optionalScore = float64(n) / float64(len(spec.Optional)) * optionalWeight
	}

	return math.Min(countScore+requiredScore+optionalScore, 1.0)
}

// extractSample pulls a one-element preview, shaped per category.
func extractSample(elem *goquery.Selection, cat Category) map[string]string {
	sample := map[string]string{}
	switch cat {
	case CategoryVehicles:
		sample["model"] = sampleText(elem, []string{".model", ".name", "h1", "h2"})
		sample["specs"] = sampleText(elem, []string{".specs", ".features", ".range", ".acceleration"})
	case CategoryTechSpecs:
		sample["specs"] = sampleText(elem, []string{".value", ".data", "td", "li"})
	case CategoryArticles:
		sample["title"] = sampleText(elem, []string{"h1", "h2", "h3", ".title", ".headline"})
		sample["text"] = dom.Truncate(dom.CleanText(elem.Text()), sampleTextLen)
	case CategoryProducts:
		sample["name"] = sampleText(elem, []string{".name", ".title", "h2", "h3"})
		sample["price"] = sampleText(elem, []string{".price", ".cost", `[itemprop="price"]`})
	case CategoryComments:
		sample["author"] = sampleText(elem, []string{".author", ".user", ".name"})
		sample["text"] = dom.Truncate(dom.CleanText(elem.Text()), sampleCommentLen)
	default:
		sample["text"] = dom.Truncate(dom.CleanText(elem.Text()), sampleTextLen)
	}
	return sample
}

// sampleText tries each selector in turn and falls back to the
// element's own truncated text.
func sampleText(elem *goquery.Selection, selectors []string) string {
	for _, sel := range selectors {
		if found := elem.Find(sel).First(); found.Length() > 0 {
			return dom.CleanText(found.Text())
		}
	}
	return dom.Truncate(dom.CleanText(elem.Text()), sampleFallback)
}

// hasPagination checks the usual pagination markers.
func hasPagination(doc *goquery.Document) bool {
	for _, sel := range paginationProbeSelectors {
		if doc.Find(sel).Length() > 0 {
			return true
		}
	}
	return false
}

// estimateTotalPages takes the largest number found inside pagination
// blocks, defaulting to one page.
func estimateTotalPages(doc *goquery.Document) int {
	maxPage := 0
	doc.Find(".pagination, .pager").Each(func(_ int, s *goquery.Selection) {
		for _, m := range digitsPattern.FindAllString(s.Text(), -1) {
			if n, err := strconv.Atoi(m); err == nil && n > maxPage {
				maxPage = n
			}
		}
	})
	if maxPage == 0 {
		return 1
	}
	return maxPage
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
