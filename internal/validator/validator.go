// Package validator is the second-opinion pass over detected content
// types. It re-checks each detector hit against independent evidence
// (free-text keyword density, structure-marker counts, text-length
// floors) and confirms or rejects it with an explainable trail. The
// decoupling from the detector is the point: a "price" class on a
// non-product page clears the detector but fails here.
package validator

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/detector"
	"github.com/jonesrussell/pagesense/internal/logger"
)

// Score weights and thresholds.
const (
	weightHTMLTags   = 0.3
	weightTextStrong = 0.3
	weightTextWeak   = 0.15
	weightStructure  = 0.2
	weightTextLength = 0.2

	// strongTextMatches is how many indicator hits earn the full text score.
	strongTextMatches = 3

	// validThreshold is the minimum score for a category to be confirmed.
	validThreshold = 0.4

	// passthroughConfidence applies to categories with no ruleset.
	passthroughConfidence = 0.5

	// maxWarningsPerType caps how many per-type warnings bubble up
	// into the global warning list.
	maxWarningsPerType = 2
)

// ScoreDetails carries the raw counters behind a validation decision.
type ScoreDetails struct {
	HTMLTags         int `json:"html_tags"`
	TextIndicators   int `json:"text_indicators"`
	StructureMarkers int `json:"structure_markers"`
	TextLength       int `json:"text_length"`
}

// Result is one validation verdict. Derived per call, never stored.
type Result struct {
	Valid      bool         `json:"valid"`
	Confidence float64      `json:"confidence"`
	Evidence   []string     `json:"evidence"`
	Warnings   []string     `json:"warnings"`
	Details    ScoreDetails `json:"score_details"`
}

// ValidatedType is a detector hit annotated with its verdict.
type ValidatedType struct {
	detector.DetectedType
	Validation Result `json:"validation"`
	AIVerified bool   `json:"ai_verified"`
}

// Summary aggregates one full validation pass.
type Summary struct {
	TotalDetected int     `json:"total_detected"`
	Validated     int     `json:"validated"`
	Rejected      int     `json:"rejected"`
	SuccessRate   float64 `json:"success_rate"`
}

// Outcome splits detector hits into confirmed and rejected sets.
type Outcome struct {
	ValidatedTypes []ValidatedType `json:"validated_types"`
	RejectedTypes  []ValidatedType `json:"rejected_types"`
	Warnings       []string        `json:"warnings"`
	Summary        Summary         `json:"validation_summary"`
}

// Validator runs structure validation. Stateless between calls.
type Validator struct {
	log logger.Interface
}

// New creates a validator. A nil logger falls back to no-op.
func New(log logger.Interface) *Validator {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Validator{log: log.WithComponent("validator")}
}

// Validate scores one category against the document and raw markup.
// detectedCount scales the text-length floor; values below one are
// treated as one.
func (v *Validator) Validate(doc *goquery.Document, rawHTML string, cat detector.Category, detectedCount int) Result {
	ruleset, ok := rulesets[cat]
	if !ok {
		return Result{
			Valid:      true,
			Confidence: passthroughConfidence,
			Evidence:   []string{"no validation ruleset defined"},
			Warnings:   []string{},
		}
	}

	evidence := []string{}
	warnings := []string{}
	score := 0.0

	// 1. Structural selectors.
	htmlMatches := 0
	for _, sel := range ruleset.HTMLTags {
		if n := doc.Find(sel).Length(); n > 0 {
			htmlMatches += n
			evidence = append(evidence, fmt.Sprintf("found %d elements matching %s", n, sel))
		}
	}
	if htmlMatches > 0 {
		score += weightHTMLTags
	} else {
		warnings = append(warnings, fmt.Sprintf("no typical %s markup found", cat))
	}

	// 2. Free-text indicators, independent of any markup evidence.
	pageText := strings.ToLower(doc.Text())
	textMatches := 0
	for _, re := range ruleset.TextIndicators {
		if n := len(re.FindAllString(pageText, -1)); n > 0 {
			textMatches += n
			evidence = append(evidence, fmt.Sprintf("text pattern %q matched %d times", truncPattern(re), n))
		}
	}
	switch {
	case textMatches >= strongTextMatches:
		score += weightTextStrong
	case textMatches >= 1:
		score += weightTextWeak
	default:
		warnings = append(warnings, fmt.Sprintf("few textual indicators for %s", cat))
	}

	// 3. Structure markers in the raw markup (classes, ids, attributes).
	structureMatches := 0
	for _, marker := range ruleset.StructureMarkers {
		if marker.Pattern.MatchString(rawHTML) {
			structureMatches++
			evidence = append(evidence, fmt.Sprintf("structure marker %q present", marker.Word))
		}
	}
	if structureMatches >= ruleset.RequiredElements {
		score += weightStructure
	} else {
		warnings = append(warnings, fmt.Sprintf("only %d/%d required structure markers", structureMatches, ruleset.RequiredElements))
	}

	// 4. Text-length floor scaled by how many elements were detected.
	count := detectedCount
	if count < 1 {
		count = 1
	}
	textLength := utf8.RuneCountInString(pageText)
	if textLength >= ruleset.MinTextLength*count {
		score += weightTextLength
		evidence = append(evidence, fmt.Sprintf("sufficient text length: %d characters", textLength))
	} else {
		warnings = append(warnings, fmt.Sprintf("short text for %d elements", count))
	}

	return Result{
		Valid:      score >= validThreshold,
		Confidence: math.Round(math.Min(score, 1.0)*100) / 100,
		Evidence:   evidence,
		Warnings:   warnings,
		Details: ScoreDetails{
			HTMLTags:         htmlMatches,
			TextIndicators:   textMatches,
			StructureMarkers: structureMatches,
			TextLength:       textLength,
		},
	}
}

// ValidateAll runs Validate over every detector hit and splits the
// outcome into confirmed and rejected sets.
func (v *Validator) ValidateAll(doc *goquery.Document, rawHTML string, detected []detector.DetectedType) *Outcome {
	validated := []ValidatedType{}
	rejected := []ValidatedType{}
	warnings := []string{}

	for _, dt := range detected {
		result := v.Validate(doc, rawHTML, dt.Type, dt.Count)
		entry := ValidatedType{
			DetectedType: dt,
			Validation:   result,
			AIVerified:   result.Valid,
		}
		if result.Valid {
			validated = append(validated, entry)
			continue
		}
		rejected = append(rejected, entry)

		drop := result.Warnings
		if len(drop) > maxWarningsPerType {
			drop = drop[:maxWarningsPerType]
		}
		warnings = append(warnings, fmt.Sprintf("%s: confidence %.0f%% - %s",
			dt.Name, result.Confidence*100, strings.Join(drop, ", ")))
	}

	successRate := 0.0
	if len(detected) > 0 {
		successRate = float64(len(validated)) / float64(len(detected))
	}

	v.log.Debug("validation complete",
		"detected", len(detected),
		"validated", len(validated),
		"rejected", len(rejected),
	)

	return &Outcome{
		ValidatedTypes: validated,
		RejectedTypes:  rejected,
		Warnings:       warnings,
		Summary: Summary{
			TotalDetected: len(detected),
			Validated:     len(validated),
			Rejected:      len(rejected),
			SuccessRate:   successRate,
		},
	}
}

// truncPattern shortens a regex for evidence strings.
func truncPattern(re *regexp.Regexp) string {
	r := []rune(re.String())
	if len(r) > 30 {
		return string(r[:30]) + "..."
	}
	return string(r)
}
