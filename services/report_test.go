package services

import (
	"bytes"
	"compress/zlib"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

// extractPDFText inflates every FlateDecode stream in the PDF and
// returns the concatenated content so tests can assert on rendered
// text.
func extractPDFText(t *testing.T, pdf []byte) string {
	t.Helper()
	var out bytes.Buffer
	rest := pdf
	for {
		start := bytes.Index(rest, []byte("\nstream\n"))
		if start < 0 {
			break
		}
		rest = rest[start+len("\nstream\n"):]
		end := bytes.Index(rest, []byte("\nendstream"))
		if end < 0 {
			break
		}
		data := rest[:end]
		rest = rest[end:]

		zr, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			continue // image or other non-flate stream
		}
		inflated, err := io.ReadAll(zr)
		zr.Close()
		if err != nil {
			continue
		}
		out.Write(inflated)
	}
	return out.String()
}

func sampleDocument() *ReportDocument {
	return &ReportDocument{
		Title: "My Progress Report",
		Subject: ReportSubject{
			Name:        "Asha Rao",
			Department:  "Research and Innovation Hub",
			Designation: "User",
			Email:       "asha@example.edu",
			Phone:       "Contact Administration",
		},
		ProgressOverview: "This report summarizes your contributions.",
		Sections: []ReportSection{
			{
				Heading: "Intellectual Property Rights (IPR)",
				Rows: []SectionRow{
					{
						{Header: "Title", Value: "Adaptive solar cell"},
						{Header: "Type", Value: "Patent"},
						{Header: "Status", Value: "Filed"},
						{Header: "Filing Date", Value: "2022-01-01"},
					},
				},
			},
			{Heading: "Startups Initiated", Rows: nil},
		},
		FinalSummary: "Strong engagement across multiple domains.",
		Date:         "01 September, 2026",
		GeneratedAt:  time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestComposeReportProducesPDF(t *testing.T) {
	pdf, err := ComposeReport(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF-")) {
		t.Fatal("output does not start with a PDF header")
	}
	if !bytes.Contains(pdf, []byte("%%EOF")) {
		t.Fatal("output is truncated: no EOF marker")
	}
}

func TestComposeReportIdempotent(t *testing.T) {
	first, err := ComposeReport(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := ComposeReport(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("identical documents produced different PDF bytes")
	}
}

func TestComposeReportEmptySectionPlaceholder(t *testing.T) {
	pdf, err := ComposeReport(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := extractPDFText(t, pdf)
	if !strings.Contains(text, "No data available.") {
		t.Fatal("empty section did not render the placeholder paragraph")
	}
	if !strings.Contains(text, "Adaptive solar cell") {
		t.Fatal("populated section rows missing from output")
	}
}

func TestComposeReportSkipsNilCharts(t *testing.T) {
	doc := sampleDocument()
	doc.Charts = []ReportChart{{Caption: "Contribution Distribution", PNG: nil}}

	pdf, err := ComposeReport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := extractPDFText(t, pdf)
	if strings.Contains(text, "Contribution Distribution") {
		t.Fatal("caption rendered for a skipped chart")
	}
	if !strings.Contains(text, "Final Summary") {
		t.Fatal("rest of the report missing after chart skip")
	}
}

func TestComposeReportEmbedsCharts(t *testing.T) {
	doc := sampleDocument()
	png, err := NewChartRenderer().RenderPie([]string{"IPRs", "Papers"}, []float64{2, 1}, "Distribution")
	if err != nil {
		t.Fatalf("unexpected render error: %v", err)
	}
	doc.Charts = []ReportChart{{Caption: "Contribution Distribution", PNG: png}}

	pdf, err := ComposeReport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(pdf, []byte("/XObject")) {
		t.Fatal("no image object embedded")
	}
	text := extractPDFText(t, pdf)
	if !strings.Contains(text, "Contribution Distribution") {
		t.Fatal("chart caption missing")
	}
}

func TestComposeReportOrientation(t *testing.T) {
	portrait, err := ComposeReport(sampleDocument())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(portrait, []byte("[0 0 612.00 792.00]")) {
		t.Fatal("per-user report is not portrait letter")
	}

	doc := sampleDocument()
	doc.Title = "Research and Innovation Hub: All Users Report"
	landscape, err := ComposeReport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Contains(landscape, []byte("[0 0 792.00 612.00]")) {
		t.Fatal("fleet report is not landscape letter")
	}
}

func TestComposeReportHeterogeneousRows(t *testing.T) {
	doc := sampleDocument()
	doc.Sections = []ReportSection{
		{
			Heading: "Broken",
			Rows: []SectionRow{
				{{Header: "Title", Value: "a"}, {Header: "Status", Value: "b"}},
				{{Header: "Title", Value: "c"}},
			},
		},
	}
	_, err := ComposeReport(doc)
	var layoutErr *LayoutError
	if !errors.As(err, &layoutErr) {
		t.Fatalf("expected LayoutError, got %v", err)
	}
}

func TestComposeReportPaginatesLongTables(t *testing.T) {
	doc := sampleDocument()
	rows := make([]SectionRow, 0, 120)
	for i := 0; i < 120; i++ {
		rows = append(rows, SectionRow{
			{Header: "Title", Value: fmt.Sprintf("Record %d with a fairly long descriptive title that wraps", i)},
			{Header: "Status", Value: "Filed"},
		})
	}
	doc.Sections = []ReportSection{{Heading: "Intellectual Property Rights (IPR)", Rows: rows}}

	pdf, err := ComposeReport(doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	m := regexp.MustCompile(`/Count (\d+)`).FindSubmatch(pdf)
	if m == nil {
		t.Fatal("no page count found")
	}
	pages, _ := strconv.Atoi(string(m[1]))
	if pages < 2 {
		t.Fatalf("expected multiple pages, got %d", pages)
	}
}
