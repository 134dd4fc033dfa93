// Package cmd — convert command.
// This is the main command that orchestrates the pipeline:
// read (fetch, file or stdin) → extract → normalize → render → write.
package cmd

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/devmark/core"
	cfgpkg "github.com/gaurav-prasanna/devmark/core/config"
	"github.com/gaurav-prasanna/devmark/core/extract"
	"github.com/gaurav-prasanna/devmark/core/fetch"
	"github.com/gaurav-prasanna/devmark/core/markdown"
	"github.com/gaurav-prasanna/devmark/core/normalize"
	"github.com/gaurav-prasanna/devmark/core/output"
	"github.com/gaurav-prasanna/devmark/core/render"
	"github.com/gaurav-prasanna/devmark/crawl"
)

// Flag variables.
var (
	flagPDF          bool
	flagMarkdown     bool
	flagJSON         bool
	flagHeadingStyle string
	flagBullets      string
	flagStrip        []string
	flagConvert      []string
	flagNoAutolinks  bool
	flagEngine       string
	flagExtract      bool
	flagFrontMatter  bool
	flagOutputDir    string
	flagStdout       bool
	flagTitle        string
	flagAll          bool
	flagMaxPages     int
)

var convertCmd = &cobra.Command{
	Use:   "convert <url|file|->",
	Short: "Convert an HTML article to dev.to Markdown",
	Long: `Convert reads HTML from a URL, a local file or standard input ("-"),
converts it to dev.to flavored Markdown and writes it as Markdown, JSON or PDF.

Pages fetched from a URL are reduced to their main content first; use
--extract to do the same for files and standard input.

Examples:
  devmark convert https://blog.example.com/my-post --stdout
  devmark convert post.html --heading-style atx --bullets "-"
  cat post.html | devmark convert - --strip img,iframe --stdout
  devmark convert https://blog.example.com/my-post --json --output-dir ./out
  devmark convert https://blog.example.com/posts/ --all --front-matter --output-dir ./drafts`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	// Output format flags (mutually exclusive).
	convertCmd.Flags().BoolVar(&flagMarkdown, "markdown", false, "Output Markdown (default)")
	convertCmd.Flags().BoolVar(&flagJSON, "json", false, "Output Markdown with metadata and structure as JSON")
	convertCmd.Flags().BoolVar(&flagPDF, "pdf", false, "Output PDF")

	// Converter flags; each overrides the config value when set.
	convertCmd.Flags().StringVar(&flagHeadingStyle, "heading-style", "", "Heading style: atx, atx_closed or underlined")
	convertCmd.Flags().StringVar(&flagBullets, "bullets", "", "Bullet characters cycled by list depth")
	convertCmd.Flags().StringSliceVar(&flagStrip, "strip", nil, "Tags to leave unconverted")
	convertCmd.Flags().StringSliceVar(&flagConvert, "convert", nil, "Only convert these tags")
	convertCmd.Flags().BoolVar(&flagNoAutolinks, "no-autolinks", false, "Always write [text](href) links")
	convertCmd.Flags().StringVar(&flagEngine, "engine", "", "Conversion engine: devto or commonmark")
	convertCmd.Flags().BoolVar(&flagExtract, "extract", false, "Reduce file or stdin input to its main content")
	convertCmd.Flags().BoolVar(&flagFrontMatter, "front-matter", false, "Prefix Markdown output with dev.to front matter")
	convertCmd.Flags().StringVar(&flagTitle, "title", "", "Article title (default: page title or first h1)")

	// Whole-blog mode.
	convertCmd.Flags().BoolVar(&flagAll, "all", false, "Convert every article page found under the URL")
	convertCmd.Flags().IntVar(&flagMaxPages, "max-pages", crawl.DefaultMaxPages, "Page limit for --all")

	// Destination.
	convertCmd.Flags().StringVar(&flagOutputDir, "output-dir", "", `Output directory, "-" for stdout (default: current directory)`)
	convertCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Write the result to stdout")
}

func runConvert(cmd *cobra.Command, args []string) error {
	source := args[0]

	if err := validateFlags(); err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	renderer := selectRenderer(cfg)

	p := &pipeline{
		fetcher:   fetch.New(cfg.HTTPTimeout()),
		extractor: extract.New(),
		stdin:     cmd.InOrStdin(),
		extract:   flagExtract,
		title:     flagTitle,
		now:       time.Now,
	}
	opts := cfg.Options
	opts.Logger = logger
	n, err := normalize.New(cfg.Engine, opts)
	if err != nil {
		return err
	}
	p.normalizer = n

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if flagAll {
		return runAll(ctx, cmd.OutOrStdout(), source, p, renderer)
	}

	var writer *output.Writer
	if flagStdout || cfg.OutputDir == output.StdinSource {
		writer = output.NewStdout(cmd.OutOrStdout())
	} else if writer, err = output.New(cfg.OutputDir); err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	path, err := convertOne(ctx, source, p, renderer, writer)
	if err != nil {
		return err
	}
	if writer.Stdout == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", path)
	}
	return nil
}

// runAll discovers the pages under a blog URL and converts each into its own file.
func runAll(ctx context.Context, out io.Writer, source string, p *pipeline, renderer core.Renderer) error {
	if !isURL(source) {
		return fmt.Errorf("--all requires an http(s) URL, got %q", source)
	}
	if flagStdout || cfg.OutputDir == output.StdinSource {
		return fmt.Errorf("--all writes one file per page and cannot write to stdout")
	}
	writer, err := output.New(cfg.OutputDir)
	if err != nil {
		return fmt.Errorf("initializing output writer: %w", err)
	}

	// Each page keeps its own title.
	p.title = ""

	fmt.Fprintf(out, "Discovering pages from %s...\n", source)
	urls, err := crawl.New(p.fetcher, flagMaxPages, logger).Discover(ctx, source)
	if err != nil {
		return fmt.Errorf("discovering pages: %w", err)
	}
	fmt.Fprintf(out, "Found %d pages to convert\n", len(urls))

	var failed int
	for i, pageURL := range urls {
		fmt.Fprintf(out, "[%d/%d] Converting %s\n", i+1, len(urls), pageURL)
		path, err := convertOne(ctx, pageURL, p, renderer, writer)
		if err != nil {
			logger.Error("page failed", "url", pageURL, "error", err)
			failed++
			continue
		}
		fmt.Fprintf(out, "  ✓ Written: %s\n", path)
	}
	if failed > 0 {
		return fmt.Errorf("%d/%d pages failed", failed, len(urls))
	}
	return nil
}

// convertOne runs source through the pipeline, renders it and writes the result.
func convertOne(ctx context.Context, source string, p *pipeline, renderer core.Renderer, writer *output.Writer) (string, error) {
	md, meta, err := p.run(ctx, source)
	if err != nil {
		return "", err
	}
	data, err := renderer.Render(md, meta)
	if err != nil {
		return "", fmt.Errorf("render: %w", err)
	}
	return writer.Write(output.FilenameFor(meta.Source), data, renderer.Extension())
}

// pipeline reads one source and converts it to Markdown.
type pipeline struct {
	fetcher    core.Fetcher
	extractor  core.Extractor
	normalizer core.Normalizer
	stdin      io.Reader
	extract    bool
	title      string
	now        func() time.Time
}

func (p *pipeline) run(ctx context.Context, source string) (string, core.DocumentMetadata, error) {
	meta := core.DocumentMetadata{Source: source}
	extractContent := p.extract

	var html string
	switch {
	case source == output.StdinSource:
		b, err := io.ReadAll(p.stdin)
		if err != nil {
			return "", meta, fmt.Errorf("reading stdin: %w", err)
		}
		html = string(b)
	case isURL(source):
		result, err := p.fetcher.Fetch(ctx, source)
		if err != nil {
			return "", meta, fmt.Errorf("fetch: %w", err)
		}
		html = result.HTML
		meta.Source = result.URL
		meta.CanonicalURL = result.URL
		extractContent = true
	default:
		b, err := os.ReadFile(source)
		if err != nil {
			return "", meta, fmt.Errorf("reading %s: %w", source, err)
		}
		html = string(b)
	}

	meta.Title, meta.Language = extract.Metadata(html)
	if p.title != "" {
		meta.Title = p.title
	}
	meta.ConvertedAt = p.now().UTC().Format(time.RFC3339)

	fragment := html
	if extractContent {
		content, err := p.extractor.Extract(html)
		if err != nil {
			return "", meta, fmt.Errorf("extract: %w", err)
		}
		fragment = content
	}

	md, err := p.normalizer.Normalize(fragment)
	if err != nil {
		return "", meta, fmt.Errorf("normalize: %w", err)
	}
	logger.Debug("converted", "source", meta.Source, "bytes_in", len(fragment), "bytes_out", len(md))
	return md, meta, nil
}

func isURL(s string) bool {
	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		return false
	}
	u, err := url.Parse(s)
	return err == nil && u.Host != ""
}

// applyFlags copies explicitly set converter flags over the loaded config.
func applyFlags(cmd *cobra.Command, c *cfgpkg.Config) {
	f := cmd.Flags()
	if f.Changed("heading-style") {
		c.HeadingStyle = markdown.HeadingStyle(flagHeadingStyle)
	}
	if f.Changed("bullets") {
		c.Bullets = flagBullets
	}
	if f.Changed("strip") {
		c.Strip = flagStrip
	}
	if f.Changed("convert") {
		c.Convert = flagConvert
	}
	if f.Changed("no-autolinks") {
		c.NoAutolinks = flagNoAutolinks
	}
	if f.Changed("engine") {
		c.Engine = normalize.Engine(flagEngine)
	}
	if f.Changed("front-matter") {
		c.FrontMatter = flagFrontMatter
	}
	if f.Changed("output-dir") {
		c.OutputDir = flagOutputDir
	}
}

// validateFlags checks that at most one output format is chosen.
func validateFlags() error {
	formatCount := 0
	for _, set := range []bool{flagMarkdown, flagJSON, flagPDF} {
		if set {
			formatCount++
		}
	}
	if formatCount > 1 {
		return fmt.Errorf("only one output format allowed per run (got %d)", formatCount)
	}
	return nil
}

// selectRenderer creates the Renderer for the chosen format, Markdown by default.
func selectRenderer(c *cfgpkg.Config) core.Renderer {
	switch {
	case flagJSON:
		return render.NewJSONRenderer()
	case flagPDF:
		return render.NewPDFRenderer()
	default:
		return render.NewMarkdownRenderer(c.FrontMatter)
	}
}
