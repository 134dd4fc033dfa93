// Package render — PDF renderer.
// Lays out converted dev.to Markdown with gofpdf: ATX and underlined
// headings, block quotes, nested list items, rules, figure captions and
// embed shortcodes (shown as labelled lines since PDFs cannot embed them).
package render

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/devmark/core"
)

var (
	orderedItemRegex = regexp.MustCompile(`^\d+\.\s`)
	figcaptionRegex  = regexp.MustCompile(`^<figcaption>(.*)</figcaption>$`)
	underlineRegex   = regexp.MustCompile(`^(=+|-+)$`)
	imageRegex       = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	inlineLinkRegex  = regexp.MustCompile(`\[([^\]]*)\]\([^)]+\)`)
	autoLinkRegex    = regexp.MustCompile(`<(https?://[^>]+)>`)
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.DocumentMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		pdf.MultiCell(0, 8, tr(meta.Title), "", "L", false)
		pdf.Ln(4)
	}
	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.MultiCell(0, 5, tr("Source: "+meta.Source), "", "L", false)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	lines := strings.Split(markdown, "\n")
	inCodeBlock := false

	for i := 0; i < len(lines); i++ {
		line := strings.TrimRight(lines[i], " ")
		trimmed := strings.TrimSpace(line)

		if strings.HasPrefix(trimmed, "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}
		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 4.5, tr(line), "", "L", true)
			continue
		}

		if trimmed == "" {
			pdf.Ln(3)
			continue
		}

		// Underlined headings: text followed by a run of = or -.
		// An embed directly followed by a rule stays an embed.
		if i+1 < len(lines) && !shortcodeRegex.MatchString(trimmed) {
			if m := underlineRegex.FindStringSubmatch(strings.TrimSpace(lines[i+1])); m != nil {
				level := 2
				if m[1][0] == '=' {
					level = 1
				}
				renderHeading(pdf, tr(cleanInlineMarkdown(trimmed)), level)
				i++
				continue
			}
		}

		switch {
		case trimmed == "---":
			renderRule(pdf)

		case strings.HasPrefix(trimmed, "#"):
			level := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
			text := strings.TrimSpace(strings.Trim(trimmed, "#"))
			renderHeading(pdf, tr(cleanInlineMarkdown(text)), level)

		case strings.HasPrefix(trimmed, ">"):
			pdf.SetFont("Helvetica", "I", 10)
			pdf.SetTextColor(80, 80, 80)
			text := strings.TrimSpace(strings.TrimPrefix(trimmed, ">"))
			pdf.SetX(pdf.GetX() + 6)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(text)), "L", "L", false)
			pdf.SetTextColor(0, 0, 0)

		case shortcodeRegex.MatchString(trimmed):
			m := shortcodeRegex.FindStringSubmatch(trimmed)
			pdf.SetFont("Helvetica", "B", 10)
			pdf.SetTextColor(40, 90, 160)
			pdf.MultiCell(0, 5, tr("["+m[1]+" embed] "+m[2]), "", "L", false)
			pdf.SetTextColor(0, 0, 0)

		case figcaptionRegex.MatchString(trimmed):
			caption := figcaptionRegex.FindStringSubmatch(trimmed)[1]
			pdf.SetFont("Helvetica", "I", 9)
			pdf.MultiCell(0, 4.5, tr(cleanInlineMarkdown(caption)), "", "C", false)

		case isBulletItem(trimmed):
			depth := len(line) - len(strings.TrimLeft(line, "\t"))
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(pdf.GetX() + float64(depth)*6)
			pdf.MultiCell(0, 5, tr("• "+cleanInlineMarkdown(trimmed[2:])), "", "L", false)

		case orderedItemRegex.MatchString(trimmed):
			depth := len(line) - len(strings.TrimLeft(line, "\t"))
			pdf.SetFont("Helvetica", "", 10)
			pdf.SetX(pdf.GetX() + float64(depth)*6)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)

		default:
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(0, 5, tr(cleanInlineMarkdown(trimmed)), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

func isBulletItem(trimmed string) bool {
	if len(trimmed) < 2 || trimmed[1] != ' ' {
		return false
	}
	return strings.ContainsRune("*+-", rune(trimmed[0]))
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(pdf *gofpdf.Fpdf, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	pdf.Ln(4)
	pdf.SetFont("Helvetica", "B", size)
	pdf.MultiCell(0, size*0.6, text, "", "L", false)
	pdf.Ln(2)
}

func renderRule(pdf *gofpdf.Fpdf) {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	pdf.Ln(2)
	y := pdf.GetY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(left, y, pageWidth-right, y)
	pdf.Ln(4)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	text = imageRegex.ReplaceAllString(text, "[image: $1]")
	text = inlineLinkRegex.ReplaceAllString(text, "$1")
	text = autoLinkRegex.ReplaceAllString(text, "$1")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, `\_`, "_")
	text = regexp.MustCompile(`\*([^*]+)\*`).ReplaceAllString(text, "$1")
	text = regexp.MustCompile("`([^`]+)`").ReplaceAllString(text, "$1")
	return strings.TrimSpace(text)
}
