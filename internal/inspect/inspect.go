// Package inspect runs every analysis pass over a single parsed
// document and assembles the combined page report: inferred
// collections, detected and validated content types, and the site
// classification.
package inspect

import (
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/classifier"
	"github.com/jonesrussell/pagesense/internal/detector"
	"github.com/jonesrussell/pagesense/internal/logger"
	"github.com/jonesrussell/pagesense/internal/validator"
)

// ScrapableContent carries the detector output enriched with the
// structure-validation verdicts.
type ScrapableContent struct {
	DetectedTypes       []validator.ValidatedType `json:"detected_types"`
	RejectedTypes       []validator.ValidatedType `json:"rejected_types"`
	TotalTypes          int                       `json:"total_types"`
	RecommendedAction   string                    `json:"recommended_action"`
	StructureComplexity string                    `json:"structure_complexity"`
	HasPagination       bool                      `json:"has_pagination"`
	TotalPagesEstimate  int                       `json:"total_pages_estimate"`
	ValidationWarnings  []string                  `json:"validation_warnings,omitempty"`
	AIValidation        validator.Summary         `json:"ai_validation"`
}

// Report is the full inspection result for one page.
type Report struct {
	URL                string                        `json:"url,omitempty"`
	PageTitle          string                        `json:"page_title"`
	Collections        []analyzer.Collection         `json:"collections"`
	ScrapableContent   ScrapableContent              `json:"scrapable_content"`
	SiteClassification classifier.SiteClassification `json:"site_classification"`
}

// Inspector wires the four passes together. All of them read the same
// parsed document, so one inspection costs one parse.
type Inspector struct {
	log        logger.Interface
	analyzer   *analyzer.Analyzer
	detector   *detector.Detector
	validator  *validator.Validator
	classifier *classifier.Classifier
}

// New creates an inspector with its own pass instances.
func New(log logger.Interface, cfg *analyzer.Config) *Inspector {
	if log == nil {
		log = logger.NewNoOp()
	}
	return &Inspector{
		log:        log.WithComponent("inspect"),
		analyzer:   analyzer.New(log, cfg),
		detector:   detector.New(log),
		validator:  validator.New(log),
		classifier: classifier.New(log),
	}
}

// Inspect parses the raw HTML once and runs all passes over it. Blank
// input is an error; a page where nothing is found is a normal report
// with empty collections and types.
func (i *Inspector) Inspect(rawHTML, pageURL string, opts analyzer.Options) (*Report, error) {
	doc, err := analyzer.Parse(rawHTML)
	if err != nil {
		return nil, err
	}
	return i.InspectDocument(doc, rawHTML, pageURL, opts), nil
}

// InspectDocument runs the passes over an already-parsed document.
// rawHTML is needed alongside it because the structure validator scans
// the serialized markup for structural markers.
func (i *Inspector) InspectDocument(doc *goquery.Document, rawHTML, pageURL string, opts analyzer.Options) *Report {
	start := time.Now()

	analysis := i.analyzer.AnalyzeDocument(doc, opts)
	detection := i.detector.Detect(doc, pageURL)
	validation := i.validator.ValidateAll(doc, rawHTML, detection.DetectedTypes)

	sample, fields := classificationInputs(analysis)
	site := i.classifier.Classify(doc, pageURL, analysis.PageTitle, sample, fields)

	report := &Report{
		URL:         pageURL,
		PageTitle:   analysis.PageTitle,
		Collections: analysis.Collections,
		ScrapableContent: ScrapableContent{
			DetectedTypes:       validation.ValidatedTypes,
			RejectedTypes:       validation.RejectedTypes,
			TotalTypes:          detection.TotalTypes,
			RecommendedAction:   detection.RecommendedAction,
			StructureComplexity: detection.StructureComplexity,
			HasPagination:       detection.HasPagination,
			TotalPagesEstimate:  detection.TotalPagesEstimate,
			ValidationWarnings:  validation.Warnings,
			AIValidation:        validation.Summary,
		},
		SiteClassification: site,
	}

	i.log.Info("inspection complete",
		"url", pageURL,
		"collections", len(report.Collections),
		"detected_types", detection.TotalTypes,
		"validated_types", validation.Summary.Validated,
		"site_type", string(site.Type),
		"duration", time.Since(start),
	)
	return report
}

// classificationInputs feeds the keyword fallback from what the
// collection pass already sampled: the preview field texts become the
// text window and the distinct field types become the detected fields.
func classificationInputs(analysis *analyzer.Result) (string, []string) {
	var texts []string
	var fields []string
	seen := make(map[string]bool)

	for _, col := range analysis.Collections {
		for _, item := range col.ItemsPreview {
			for _, f := range item.Fields {
				if f.Text != "" {
					texts = append(texts, f.Text)
				}
				ft := string(f.Type)
				if !seen[ft] {
					seen[ft] = true
					fields = append(fields, ft)
				}
			}
		}
	}

	sample := ""
	for _, t := range texts {
		if len(sample)+len(t) > maxSampleLen {
			break
		}
		if sample != "" {
			sample += " "
		}
		sample += t
	}
	return sample, fields
}

// maxSampleLen bounds the classifier text window so preview-heavy pages
// do not hand it the whole document.
const maxSampleLen = 2000
