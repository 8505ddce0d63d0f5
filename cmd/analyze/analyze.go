// Package analyze implements the one-shot page analysis command.
package analyze

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/pagesense/cmd/common"
	"github.com/jonesrussell/pagesense/internal/analyzer"
	"github.com/jonesrussell/pagesense/internal/config"
	"github.com/jonesrussell/pagesense/internal/fetcher"
	"github.com/jonesrussell/pagesense/internal/inspect"
	"github.com/jonesrussell/pagesense/internal/logger"
)

var errNoInput = errors.New("provide a URL argument or --file")

// options holds the analyze command flags.
type options struct {
	file            string
	jsonOutput      bool
	maxCandidates   int
	maxItemsPreview int
}

// Command returns the analyze command.
func Command() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Analyze one page's structure",
		Long: `Analyze one page: infer repeating collections, detect and validate
content types and classify the site. Reads the page from a URL argument
or from a local file with --file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pageURL := ""
			if len(args) > 0 {
				pageURL = args[0]
			}
			return run(cmd.Context(), pageURL, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "analyze a local HTML file instead of fetching a URL")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "print the raw report as JSON")
	cmd.Flags().IntVar(&opts.maxCandidates, "max-candidates", 0, "cap on returned collections (0 = default)")
	cmd.Flags().IntVar(&opts.maxItemsPreview, "max-items-preview", 0, "cap on previewed items per collection (0 = default)")

	return cmd
}

func run(ctx context.Context, pageURL string, opts *options) error {
	cfg := config.Load()
	log, err := common.BuildLogger(cfg)
	if err != nil {
		return err
	}

	html, err := pageHTML(ctx, log, cfg, pageURL, opts.file)
	if err != nil {
		return err
	}

	inspector := inspect.New(log, &cfg.Analyzer)
	report, err := inspector.Inspect(html, pageURL, analyzer.Options{
		MaxCandidates:   opts.maxCandidates,
		MaxItemsPreview: opts.maxItemsPreview,
	})
	if err != nil {
		return fmt.Errorf("analyze page: %w", err)
	}

	if opts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	renderReport(report)
	return nil
}

// pageHTML reads the document from the local file or fetches the URL.
func pageHTML(ctx context.Context, log logger.Interface, cfg *config.Config, pageURL, file string) (string, error) {
	if file != "" {
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", file, err)
		}
		return string(data), nil
	}
	if pageURL == "" {
		return "", errNoInput
	}
	f := fetcher.New(log, &cfg.Fetcher)
	html, err := f.Fetch(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	return html, nil
}
