package analyze

import (
	"fmt"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/inspect"
	"github.com/jonesrussell/pagesense/internal/validator"
)

const maxRenderedFieldText = 60

// renderReport prints the human-readable report: header lines, then one
// table per section that has content.
func renderReport(report *inspect.Report) {
	if report.PageTitle != "" {
		fmt.Printf("Page title: %s\n", report.PageTitle)
	}
	site := report.SiteClassification
	fmt.Printf("Site type:  %s (%s, confidence %.0f%%, via %s)\n\n",
		site.Title, site.Type, site.Confidence*100, site.Source)

	renderCollections(report)
	renderTypes("Detected content types", report.ScrapableContent.DetectedTypes)
	renderTypes("Rejected content types", report.ScrapableContent.RejectedTypes)

	sc := report.ScrapableContent
	fmt.Printf("Structure: %s, recommended action: %s", sc.StructureComplexity, sc.RecommendedAction)
	if sc.HasPagination {
		fmt.Printf(", ~%d pages", sc.TotalPagesEstimate)
	}
	fmt.Println()
}

func renderCollections(report *inspect.Report) {
	if len(report.Collections) == 0 {
		fmt.Println("No repeating collections found.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Container", "Item tag", "Items", "Confidence", "Avg fields", "Sample"})

	for i, col := range report.Collections {
		sample := ""
		if len(col.ItemsPreview) > 0 {
			sample = previewLine(col.ItemsPreview[0])
		}
		t.AppendRow(table.Row{
			i,
			col.ContainerSelectorHint,
			col.ItemTag,
			col.EstimatedItems,
			fmt.Sprintf("%.2f", col.Confidence),
			fmt.Sprintf("%.2f", col.AvgFieldsPerItem),
			sample,
		})
	}
	t.Render()
}

func renderTypes(title string, types []validator.ValidatedType) {
	if len(types) == 0 {
		return
	}

	fmt.Println(title + ":")
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Count", "Detected", "Validated", "Fields"})

	for _, dt := range types {
		t.AppendRow(table.Row{
			dt.Name,
			dt.Count,
			fmt.Sprintf("%.2f", dt.Confidence),
			fmt.Sprintf("%.2f", dt.Validation.Confidence),
			strings.Join(dt.Fields, ", "),
		})
	}
	t.Render()
}

// previewLine condenses the first preview item's fields to one line.
func previewLine(item analyzer.ItemPreview) string {
	var parts []string
	for _, f := range item.Fields {
		if f.Text == "" {
			continue
		}
		text := f.Text
		if runes := []rune(text); len(runes) > maxRenderedFieldText {
			text = string(runes[:maxRenderedFieldText]) + "..."
		}
		parts = append(parts, fmt.Sprintf("%s=%s", f.Type, text))
	}
	return strings.Join(parts, " | ")
}
