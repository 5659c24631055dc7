package report

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/poiesic/overlap/core"
	"github.com/poiesic/overlap/ranking"
)

// PDF renders a printable report: a summary and the flagged pairs on the
// first page, methodology on the last.
type PDF struct {
	// Uncompressed disables stream compression, which keeps the text
	// greppable in the output.
	Uncompressed bool
}

type rgb struct{ r, g, b int }

var riskFill = map[core.RiskLabel]rgb{
	core.RiskNone:     {240, 240, 240},
	core.RiskModerate: {255, 243, 176},
	core.RiskWarning:  {255, 208, 150},
	core.RiskPossible: {255, 170, 170},
}

const (
	pdfMargin     = 15.0
	pdfLineHeight = 7.0
)

// Render writes r as a PDF document.
func (p PDF) Render(w io.Writer, r *Report) error {
	if r == nil {
		return ErrReportRequired
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	doc.SetAutoPageBreak(true, pdfMargin)
	doc.SetCompression(!p.Uncompressed)
	doc.SetTitle("Document Similarity Report", true)
	doc.SetCreator("overlap", true)
	doc.SetCreationDate(r.GeneratedAt)
	doc.SetModificationDate(r.GeneratedAt)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	doc.SetFooterFunc(func() {
		doc.SetY(-pdfMargin)
		doc.SetFont("Helvetica", "I", 8)
		doc.SetTextColor(128, 128, 128)
		doc.CellFormat(0, 10, fmt.Sprintf("Run %s - page %d", r.RunID, doc.PageNo()), "", 0, "C", false, 0, "")
	})

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 18)
	doc.SetTextColor(0, 0, 0)
	doc.CellFormat(0, 12, "Document Similarity Report", "", 1, "L", false, 0, "")

	doc.SetFont("Helvetica", "", 10)
	summary := []string{
		"Generated: " + r.GeneratedAt.Format("2006-01-02 15:04:05 MST"),
		fmt.Sprintf("Documents compared: %d (%d pairs)", r.Documents, r.Pairs),
		fmt.Sprintf("Threshold: %.2f", r.Threshold),
	}
	if len(r.Strategies) > 0 {
		summary = append(summary, "Composite score: "+r.Formula())
	}
	if r.Degraded > 0 {
		summary = append(summary, fmt.Sprintf("Degraded pairs: %d", r.Degraded))
	}
	for _, line := range summary {
		doc.CellFormat(0, 6, tr(line), "", 1, "L", false, 0, "")
	}
	doc.Ln(4)

	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, tr(fmt.Sprintf("Pairs at or above %.2f", r.Threshold)), "", 1, "L", false, 0, "")
	if len(r.Flagged) == 0 {
		doc.SetFont("Helvetica", "", 11)
		doc.CellFormat(0, 8, tr(r.NoPairsMessage()), "", 1, "L", false, 0, "")
	} else {
		pdfTable(doc, tr, r.Flagged)
	}

	doc.Ln(6)
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, fmt.Sprintf("Top %d pairs", len(r.Top)), "", 1, "L", false, 0, "")
	if len(r.Top) > 0 {
		pdfTable(doc, tr, r.Top)
	}

	doc.AddPage()
	doc.SetFont("Helvetica", "B", 13)
	doc.CellFormat(0, 9, "Methodology", "", 1, "L", false, 0, "")
	doc.SetFont("Helvetica", "", 10)
	for _, line := range r.Methodology() {
		doc.MultiCell(0, 5.5, tr(line), "", "L", false)
		doc.Ln(2)
	}

	if err := doc.Error(); err != nil {
		return err
	}
	return doc.Output(w)
}

func pdfTable(doc *fpdf.Fpdf, tr func(string) string, entries []ranking.Entry) {
	widths := []float64{12, 98, 25, 45}
	headers := []string{"#", "Pair", "Score", "Risk"}

	doc.SetFont("Helvetica", "B", 10)
	doc.SetFillColor(60, 60, 60)
	doc.SetTextColor(255, 255, 255)
	for i, h := range headers {
		doc.CellFormat(widths[i], pdfLineHeight, h, "1", 0, "C", true, 0, "")
	}
	doc.Ln(-1)

	doc.SetFont("Helvetica", "", 10)
	doc.SetTextColor(0, 0, 0)
	for i, e := range entries {
		fill := riskFill[e.Risk]
		doc.SetFillColor(fill.r, fill.g, fill.b)

		score := fmt.Sprintf("%.2f", e.Score)
		if e.Degraded {
			score += "*"
		}
		doc.CellFormat(widths[0], pdfLineHeight, fmt.Sprint(i+1), "1", 0, "C", true, 0, "")
		doc.CellFormat(widths[1], pdfLineHeight, tr(e.Key.String()), "1", 0, "L", true, 0, "")
		doc.CellFormat(widths[2], pdfLineHeight, score, "1", 0, "C", true, 0, "")
		doc.CellFormat(widths[3], pdfLineHeight, tr(string(e.Risk)), "1", 0, "C", true, 0, "")
		doc.Ln(-1)
	}
}
