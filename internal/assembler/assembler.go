// Package assembler lays out a story as a paginated PDF book on local disk.
package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/adventuresof/adventuresof/backend/go-services/pkg/logger"
	"github.com/adventuresof/adventuresof/backend/go-services/pkg/metrics"
)

func init() {
	// pdfcpu otherwise installs a config dir under the user's home on first use.
	model.ConfigPath = "disable"
}

const (
	margin       = 50.0
	bodyFontSize = 12.0
	bodyLineGap  = 8.0

	title   = "Adventures Of"
	tagline = "Where every child becomes the hero"
)

// Assembler writes books into a single output directory.
type Assembler struct {
	outputDir string
	now       func() time.Time
}

func New(outputDir string) *Assembler {
	return &Assembler{outputDir: outputDir, now: time.Now}
}

// OutputDir returns the directory books are written to.
func (a *Assembler) OutputDir() string { return a.outputDir }

// Assemble renders the cover and one page per story segment, and returns the
// path of the written file once it is fully flushed and closed. The
// illustration is only marked on the cover; imageURL is never fetched.
func (a *Assembler) Assemble(ctx context.Context, text, imageURL, childName string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := os.MkdirAll(a.outputDir, 0o755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}
	path := filepath.Join(a.outputDir, FileName(childName, a.now()))

	pdf := render(text, childName)
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("render book: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create book file: %w", err)
	}
	if err := pdf.Output(f); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write book: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close book: %w", err)
	}

	n, err := api.PageCountFile(path)
	if err != nil {
		return "", fmt.Errorf("verify book: %w", err)
	}
	metrics.BookPages.Observe(float64(n))
	logger.Infof("assembler: wrote %s (%d pages)", path, n)
	return path, nil
}

func render(text, childName string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "pt", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(title+": "+childName, true)
	pdf.SetCreator(title, true)

	// cover
	pdf.AddPage()
	setColor(pdf, "#92400e")
	pdf.SetFont("Helvetica", "", 36)
	pdf.CellFormat(0, 36*1.2, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(24)
	setColor(pdf, "#78350f")
	pdf.SetFont("Helvetica", "", 24)
	pdf.CellFormat(0, 24*1.2, tr("A Story About "+childName), "", 1, "C", false, 0, "")
	pdf.Ln(14)
	setColor(pdf, "#6b7280")
	pdf.SetFont("Helvetica", "", 14)
	pdf.CellFormat(0, 14*1.2, tr(tagline), "", 1, "C", false, 0, "")
	pdf.Ln(14 * 5)
	coverPlaceholder(pdf)

	// story
	for _, page := range Pages(text) {
		pdf.AddPage()
		setColor(pdf, "#1f2937")
		pdf.SetFont("Helvetica", "", bodyFontSize)
		pdf.MultiCell(0, bodyFontSize*1.2+bodyLineGap, tr(page), "", "L", false)
	}
	return pdf
}

// coverPlaceholder draws an empty frame where the character art would go.
func coverPlaceholder(pdf *fpdf.Fpdf) {
	pageW, _ := pdf.GetPageSize()
	const size = 200.0
	x := (pageW - size) / 2
	y := pdf.GetY()
	r, g, b := hexRGB("#92400e")
	pdf.SetDrawColor(r, g, b)
	pdf.SetLineWidth(1.5)
	pdf.Rect(x, y, size, size, "D")

	pdf.SetXY(x, y+size/2-6)
	setColor(pdf, "#92400e")
	pdf.SetFont("Helvetica", "", 12)
	pdf.CellFormat(size, 12, "Illustration", "", 0, "C", false, 0, "")
}

func setColor(pdf *fpdf.Fpdf, hex string) {
	r, g, b := hexRGB(hex)
	pdf.SetTextColor(r, g, b)
}

// hexRGB parses "#rrggbb"; malformed input yields black.
func hexRGB(hex string) (int, int, int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 0, 0, 0
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}
