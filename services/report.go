package services

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// LayoutError reports a structurally invalid ReportDocument. This is a
// programming error in the document builder, not a user-facing
// condition.
type LayoutError struct {
	Section string
	Reason  string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("layout section %q: %s", e.Section, e.Reason)
}

// SectionCell is one (column header, display value) pair. Rows carry
// their headers so column order is explicit rather than an artifact of
// map iteration.
type SectionCell struct {
	Header string
	Value  string
}

// SectionRow is one table row with a fixed, ordered cell schema.
type SectionRow []SectionCell

// ReportSection is one heading plus its data rows. Empty sections
// render a "No data available." paragraph, never a zero-row table.
type ReportSection struct {
	Heading string
	Rows    []SectionRow
}

// ReportSubject is the person the report is about (or the issuing
// administrator for fleet reports).
type ReportSubject struct {
	Name        string
	Department  string
	Designation string
	Email       string
	Phone       string
}

// ReportChart is a rendered chart with its caption. A nil PNG means
// the chart was skipped; the composer silently omits it.
type ReportChart struct {
	Caption string
	PNG     []byte
}

// ReportDocument is the full input to ComposeReport. The composer is a
// pure function of this value.
type ReportDocument struct {
	Title            string
	Subject          ReportSubject
	ProgressOverview string
	Charts           []ReportChart
	Sections         []ReportSection
	FinalSummary     string
	Date             string
	GeneratedAt      time.Time // pins the PDF creation date for reproducible output
}

const (
	pageMargin      = 36.0
	summaryColCap   = 80.0
	tableLineHeight = 10.0
	headerRowHeight = 18.0
)

// ComposeReport lays out the document and serializes it to PDF bytes.
// Fleet-wide ("All Users") reports use landscape pages so the wide
// summary table stays legible.
func ComposeReport(doc *ReportDocument) ([]byte, error) {
	orientation := "P"
	if strings.Contains(doc.Title, "All Users") {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "pt", "Letter", "")
	created := doc.GeneratedAt
	if created.IsZero() {
		created = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	}
	pdf.SetCreationDate(created)
	pdf.SetModificationDate(created)
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	avail := pageW - 2*pageMargin

	// Title.
	pdf.SetFont("Helvetica", "B", 18)
	pdf.SetTextColor(0, 0, 0)
	pdf.CellFormat(0, 24, doc.Title, "", 1, "C", false, 0, "")
	pdf.Ln(16)

	// Subject block.
	subjectLabel := "User Details"
	if orientation == "L" {
		subjectLabel = "Administrator Details"
	}
	writeSectionHeading(pdf, subjectLabel)
	writeSubjectTable(pdf, doc.Subject)
	pdf.Ln(16)

	// Narrative intro.
	writeSectionHeading(pdf, "Progress Overview")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(avail, 13, doc.ProgressOverview, "", "L", false)
	pdf.Ln(16)

	// Charts. A chart with nil image bytes is skipped without a
	// placeholder, unlike empty data sections.
	if len(doc.Charts) > 0 {
		writeSectionHeading(pdf, "Visual Analytics")
		chartW := 400.0
		if orientation == "L" {
			chartW = 500.0
		}
		for i, chart := range doc.Charts {
			if len(chart.PNG) == 0 {
				continue
			}
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(0, 13, chart.Caption, "", 1, "L", false, 0, "")
			name := fmt.Sprintf("chart-%d", i)
			opts := fpdf.ImageOptions{ImageType: "PNG"}
			pdf.RegisterImageOptionsReader(name, opts, bytes.NewReader(chart.PNG))
			pdf.ImageOptions(name, pageMargin, pdf.GetY(), chartW, 200, true, opts, 0, "")
			pdf.Ln(10)
		}
		pdf.Ln(16)
	}

	// Data sections.
	for _, section := range doc.Sections {
		writeSectionHeading(pdf, section.Heading)
		if len(section.Rows) == 0 {
			pdf.SetFont("Helvetica", "", 10)
			pdf.MultiCell(avail, 13, "No data available.", "", "L", false)
			pdf.Ln(16)
			continue
		}
		if err := writeSectionTable(pdf, section, avail); err != nil {
			return nil, err
		}
		pdf.Ln(16)
	}

	// Closing narrative, signature block and date.
	writeSectionHeading(pdf, "Final Summary")
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(avail, 13, doc.FinalSummary, "", "L", false)
	pdf.Ln(40)
	pdf.CellFormat(0, 13, "Authorized Signature: ___________________________", "", 1, "L", false, 0, "")
	pdf.Ln(8)
	pdf.CellFormat(0, 13, "Date: "+doc.Date, "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("serialize report: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSectionHeading(pdf *fpdf.Fpdf, heading string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(0, 0, 139)
	pdf.CellFormat(0, 18, heading, "", 1, "L", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)
}

func writeSubjectTable(pdf *fpdf.Fpdf, subject ReportSubject) {
	rows := []SectionCell{
		{Header: "Name", Value: subject.Name},
		{Header: "Department", Value: subject.Department},
		{Header: "Designation", Value: subject.Designation},
		{Header: "Email", Value: subject.Email},
		{Header: "Phone", Value: subject.Phone},
	}
	for i, kv := range rows {
		fill := false
		if i == 0 {
			pdf.SetFillColor(128, 128, 128)
			pdf.SetTextColor(245, 245, 245)
			pdf.SetFont("Helvetica", "B", 10)
			fill = true
		} else {
			pdf.SetTextColor(0, 0, 0)
			pdf.SetFont("Helvetica", "", 10)
		}
		pdf.CellFormat(150, headerRowHeight, kv.Header, "1", 0, "L", fill, 0, "")
		pdf.CellFormat(300, headerRowHeight, kv.Value, "1", 1, "L", fill, 0, "")
	}
	pdf.SetTextColor(0, 0, 0)
}

// writeSectionTable renders one data table with word-wrapped cells.
// Column headers come from the first row; every row must share that
// schema or the document is malformed.
func writeSectionTable(pdf *fpdf.Fpdf, section ReportSection, avail float64) error {
	headers := make([]string, len(section.Rows[0]))
	for j, cell := range section.Rows[0] {
		headers[j] = cell.Header
	}
	for _, row := range section.Rows {
		if len(row) != len(headers) {
			return &LayoutError{Section: section.Heading, Reason: fmt.Sprintf("row has %d columns, header has %d", len(row), len(headers))}
		}
		for j, cell := range row {
			if cell.Header != headers[j] {
				return &LayoutError{Section: section.Heading, Reason: fmt.Sprintf("column %d is %q, expected %q", j, cell.Header, headers[j])}
			}
		}
	}

	// Summary tables cap the per-column width; remaining space is left
	// blank rather than stretched.
	colW := avail / float64(len(headers))
	if strings.Contains(section.Heading, "Summary") && colW > summaryColCap {
		colW = summaryColCap
	}

	_, pageH := pdf.GetPageSize()
	bottomLimit := pageH - pageMargin

	writeHeaderRow := func() {
		pdf.SetFillColor(173, 216, 230)
		pdf.SetTextColor(245, 245, 245)
		pdf.SetFont("Helvetica", "B", 8)
		for _, h := range headers {
			pdf.CellFormat(colW, headerRowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
	}
	writeHeaderRow()

	pdf.SetFont("Helvetica", "", 8)
	for _, row := range section.Rows {
		lines := make([][]string, len(row))
		maxLines := 1
		for j, cell := range row {
			split := pdf.SplitText(cell.Value, colW-6)
			if len(split) == 0 {
				split = []string{""}
			}
			lines[j] = split
			if len(split) > maxLines {
				maxLines = len(split)
			}
		}
		rowH := float64(maxLines)*tableLineHeight + 4

		if pdf.GetY()+rowH > bottomLimit {
			pdf.AddPage()
			writeHeaderRow()
			pdf.SetFont("Helvetica", "", 8)
		}

		x := pageMargin
		y := pdf.GetY()
		for j := range row {
			pdf.Rect(x, y, colW, rowH, "D")
			pdf.SetXY(x, y+2)
			for _, line := range lines[j] {
				pdf.CellFormat(colW, tableLineHeight, line, "", 2, "C", false, 0, "")
			}
			x += colW
		}
		pdf.SetXY(pageMargin, y+rowH)
	}
	return nil
}
