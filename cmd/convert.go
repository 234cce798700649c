// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// fetch → extract → normalize → render → write.
//
// It handles flag validation, renderer selection, local-file input, and the
// --only / --all modes.
package cmd

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"pkt.systems/pslog"

	"github.com/gaurav-prasanna/markpipe/core"
	"github.com/gaurav-prasanna/markpipe/core/extract"
	"github.com/gaurav-prasanna/markpipe/core/fetch"
	"github.com/gaurav-prasanna/markpipe/core/normalize"
	"github.com/gaurav-prasanna/markpipe/core/output"
	"github.com/gaurav-prasanna/markpipe/core/render"
	"github.com/gaurav-prasanna/markpipe/crawl"
)

// Flag variables.
var (
	flagOnly      bool
	flagAll       bool
	flagPDF       bool
	flagMarkdown  bool
	flagJSON      bool
	flagCompat    bool
	flagOutputDir string
)

var convertCmd = &cobra.Command{
	Use:   "convert <url-or-file>",
	Short: "Convert a URL or local HTML file to the specified output format",
	Long: `Convert fetches a webpage (or reads a local HTML file), extracts the main
content, normalizes it to Markdown, and renders the specified output format
(Markdown, PDF, or JSON).

Examples:
  markpipe convert https://example.com --markdown
  markpipe convert https://example.com --json --output_dir ./out
  markpipe convert https://example.com --all --pdf
  markpipe convert notes/guide.html --markdown
  markpipe convert https://example.com --markdown --compat`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Mode flags.
	convertCmd.Flags().BoolVar(&flagOnly, "only", false, "Convert only the given URL (default)")
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert all discovered sub-pages")

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output structured JSON")

	// Normalizer selection.
	convertCmd.Flags().BoolVar(&flagCompat, "compat", false, "Use the compatibility HTML-to-Markdown converter instead of the built-in engine")

	// Output directory.
	convertCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Output directory (default: current directory)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := args[0]

	if err := validateFlags(); err != nil {
		return err
	}

	renderer, err := selectRenderer()
	if err != nil {
		return err
	}

	// Initialize pipeline components.
	extractor := extract.New()
	normalizer := selectNormalizer()

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	ctx := cmd.Context()

	if isLocalFile(source) {
		if flagAll {
			return fmt.Errorf("--all requires a URL, not a local file")
		}
		return runFile(ctx, source, extractor, normalizer, renderer, writer)
	}

	// Validate URL.
	parsed, err := url.Parse(source)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("invalid source: %s (use a URL with scheme, or a path to an existing .html file)", source)
	}

	fetcher := fetch.New()

	if flagAll {
		return runAll(ctx, source, fetcher, extractor, normalizer, renderer, writer)
	}
	return runOnly(ctx, source, fetcher, extractor, normalizer, renderer, writer)
}

// isLocalFile reports whether the argument names an existing file on disk.
func isLocalFile(source string) bool {
	if strings.Contains(source, "://") {
		return false
	}
	info, err := os.Stat(source)
	return err == nil && !info.IsDir()
}

// runFile converts a local HTML file through the pipeline, skipping fetch.
func runFile(
	ctx context.Context,
	path string,
	extractor *extract.HTMLExtractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	data, _, err := convertHTML(path, string(raw), extractor, normalizer, renderer)
	if err != nil {
		return err
	}

	written, err := writer.WriteOnly(path, data, renderer.Extension())
	if err != nil {
		return err
	}
	pslog.Ctx(ctx).Info("written", "path", written)
	return nil
}

// runOnly processes a single URL through the pipeline.
func runOnly(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor *extract.HTMLExtractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	data, _, err := processURL(ctx, rawURL, fetcher, extractor, normalizer, renderer)
	if err != nil {
		return err
	}

	written, err := writer.WriteOnly(rawURL, data, renderer.Extension())
	if err != nil {
		return err
	}
	pslog.Ctx(ctx).Info("written", "path", written)
	return nil
}

// runAll discovers all internal pages and processes each through the pipeline.
func runAll(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor *extract.HTMLExtractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
	writer *output.Writer,
) error {
	logger := pslog.Ctx(ctx)
	logger.Info("discovering pages", "base", rawURL)

	urls, err := crawl.DiscoverAll(ctx, rawURL, fetcher)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	logger.Info("pages to process", "count", len(urls))

	var errCount int
	for i, pageURL := range urls {
		logger.Info("processing", "page", i+1, "of", len(urls), "url", pageURL)

		data, _, err := processURL(ctx, pageURL, fetcher, extractor, normalizer, renderer)
		if err != nil {
			logger.Error("conversion failed", "url", pageURL, "err", err)
			errCount++
			continue
		}

		written, err := writer.WriteAll(pageURL, data, renderer.Extension())
		if err != nil {
			logger.Error("write failed", "url", pageURL, "err", err)
			errCount++
			continue
		}
		logger.Info("written", "path", written)
	}

	if errCount > 0 {
		logger.Warn("some pages failed", "failed", errCount, "total", len(urls))
	}
	return nil
}

// processURL runs a single URL through the full pipeline.
func processURL(
	ctx context.Context,
	rawURL string,
	fetcher core.Fetcher,
	extractor *extract.HTMLExtractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
) ([]byte, core.DocumentMetadata, error) {
	result, err := fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("fetch: %w", err)
	}
	if !isHTMLContentType(result.ContentType) {
		return nil, core.DocumentMetadata{}, fmt.Errorf("%s is not an HTML page (content type %s)", rawURL, result.ContentType)
	}
	return convertHTML(rawURL, result.HTML, extractor, normalizer, renderer)
}

// isHTMLContentType accepts HTML media types. Servers that send no
// Content-Type at all get the benefit of the doubt.
func isHTMLContentType(mt string) bool {
	switch mt {
	case "", "text/html", "application/xhtml+xml":
		return true
	}
	return false
}

// convertHTML runs the fetch-independent tail of the pipeline:
// extract → normalize → render.
func convertHTML(
	source string,
	html string,
	extractor *extract.HTMLExtractor,
	normalizer core.Normalizer,
	renderer core.Renderer,
) ([]byte, core.DocumentMetadata, error) {
	content, err := extractor.Extract(html)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("extract: %w", err)
	}

	markdown, err := normalizer.Normalize(content)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("normalize: %w", err)
	}

	meta := buildMetadata(source, extractor.Title(html))

	data, err := renderer.Render(markdown, meta)
	if err != nil {
		return nil, core.DocumentMetadata{}, fmt.Errorf("render: %w", err)
	}
	return data, meta, nil
}

// buildMetadata constructs DocumentMetadata for a URL or file source.
func buildMetadata(source string, title string) core.DocumentMetadata {
	meta := core.DocumentMetadata{
		Source:      source,
		Title:       title,
		ConvertedAt: time.Now().UTC().Format(time.RFC3339),
	}
	if parsed, err := url.Parse(source); err == nil && parsed.Host != "" {
		meta.Domain = parsed.Host
		meta.Path = parsed.Path
	}
	return meta
}

// validateFlags checks that exactly one output format is chosen and
// that --only and --all are not both specified.
func validateFlags() error {
	if flagOnly && flagAll {
		return fmt.Errorf("--only and --all are mutually exclusive")
	}

	formatCount := 0
	if flagPDF {
		formatCount++
	}
	if flagMarkdown {
		formatCount++
	}
	if flagJSON {
		formatCount++
	}

	if formatCount == 0 {
		return fmt.Errorf("exactly one output format is required: --pdf, --markdown, or --json")
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the appropriate Renderer based on flags.
func selectRenderer() (core.Renderer, error) {
	switch {
	case flagMarkdown:
		return render.NewMarkdownRenderer(), nil
	case flagJSON:
		return render.NewJSONRenderer(), nil
	case flagPDF:
		return render.NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("no output format selected")
	}
}

// selectNormalizer picks the built-in rendering engine unless --compat asks
// for the html-to-markdown library instead.
func selectNormalizer() core.Normalizer {
	if flagCompat {
		return normalize.NewCompat()
	}
	return normalize.New()
}
