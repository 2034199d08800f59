package services

import (
	"strings"
	"testing"
	"time"

	"riise-api/models"
)

func strPtr(s string) *string { return &s }

func datePtr(year, month, day int) *time.Time {
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleUser() *models.User {
	return &models.User{UserID: 7, Name: "Asha Rao", Email: "asha@example.edu", Role: models.RoleUser}
}

// Two IPRs (one undated), one dated paper, nothing else.
func sampleContributions() *UserContributions {
	return &UserContributions{
		IPRs: []models.IPR{
			{IPRID: 1, IPRType: "Patent", Title: "Adaptive solar cell", Status: strPtr("Filed"), FilingDate: datePtr(2022, 1, 1), UserID: 7},
			{IPRID: 2, IPRType: "Trademark", Title: "Hub logo", UserID: 7},
		},
		Papers: []models.ResearchPaper{
			{PaperID: 1, Title: "Perovskite stability survey", PublicationDate: datePtr(2023, 1, 1), UserID: 7},
		},
	}
}

func TestBuildUserReportDocumentShape(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	doc := buildUserReportDocument(sampleUser(), sampleContributions(), true, now)

	if doc.Title != "My Progress Report" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if len(doc.Sections) != 4 {
		t.Fatalf("expected 4 sections, got %d", len(doc.Sections))
	}

	wantRows := map[string]int{
		"Intellectual Property Rights (IPR)": 2,
		"Research Contributions":             1,
		"Innovations Developed":              0,
		"Startups Initiated":                 0,
	}
	for _, section := range doc.Sections {
		want, ok := wantRows[section.Heading]
		if !ok {
			t.Fatalf("unexpected section %q", section.Heading)
		}
		if len(section.Rows) != want {
			t.Fatalf("section %q has %d rows, want %d", section.Heading, len(section.Rows), want)
		}
	}

	// The undated IPR still appears in the detail rows with the
	// placeholder date.
	iprRows := doc.Sections[0].Rows
	if iprRows[1][3].Header != "Filing Date" || iprRows[1][3].Value != "Not filed" {
		t.Fatalf("unexpected undated IPR cell: %+v", iprRows[1][3])
	}
	if iprRows[0][3].Value != "2022-01-01" {
		t.Fatalf("unexpected dated IPR cell: %+v", iprRows[0][3])
	}

	if !strings.Contains(doc.ProgressOverview, "your contributions") {
		t.Fatalf("self report overview is not first person: %q", doc.ProgressOverview)
	}
	if doc.Date != "01 September, 2026" {
		t.Fatalf("unexpected date %q", doc.Date)
	}
}

func TestBuildUserReportDocumentThirdPerson(t *testing.T) {
	doc := buildUserReportDocument(sampleUser(), sampleContributions(), false, time.Now())
	if doc.Title != "User Report: Asha Rao" {
		t.Fatalf("unexpected title %q", doc.Title)
	}
	if !strings.Contains(doc.ProgressOverview, "Asha Rao's contributions") {
		t.Fatalf("admin report overview is not third person: %q", doc.ProgressOverview)
	}
	if doc.Subject.Designation != "User" {
		t.Fatalf("unexpected designation %q", doc.Subject.Designation)
	}
}

func TestBuildFleetReportDocumentOmitsIdleUsersFromDetails(t *testing.T) {
	admin := &models.User{UserID: 1, Name: "Site Admin", Email: "admin@example.edu", Role: models.RoleAdmin}
	entries := []fleetEntry{
		{
			User: models.User{UserID: 2, Name: "Asha Rao", Role: models.RoleUser},
			Contribs: &UserContributions{
				IPRs:   []models.IPR{{IPRID: 1, IPRType: "Patent", Title: "Adaptive solar cell", UserID: 2}},
				Papers: []models.ResearchPaper{{PaperID: 1, Title: "Perovskite stability survey", UserID: 2}},
			},
		},
		{
			User: models.User{UserID: 3, Name: "Ben Okafor", Role: models.RoleUser},
			Contribs: &UserContributions{
				Startups: []models.Startup{{StartupID: 1, Name: "GridLeaf", Status: strPtr("Active"), UserID: uintPtr(3)}},
			},
		},
		{
			User:     models.User{UserID: 4, Name: "Caro Mendes", Role: models.RoleUser},
			Contribs: &UserContributions{},
		},
	}
	globals := ContributionCounts{IPRs: 1, Papers: 1, Startups: 1}

	doc := buildFleetReportDocument(admin, entries, globals, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))

	if !strings.Contains(doc.Title, "All Users") {
		t.Fatalf("fleet title missing All Users marker: %q", doc.Title)
	}

	summary := doc.Sections[0]
	if summary.Heading != "User Contributions Summary" {
		t.Fatalf("first section is %q, want summary", summary.Heading)
	}
	// Every user gets a summary row, idle ones included.
	if len(summary.Rows) != 3 {
		t.Fatalf("expected 3 summary rows, got %d", len(summary.Rows))
	}
	caroRow := summary.Rows[2]
	if caroRow[0].Value != "Caro Mendes" || caroRow[5].Value != "0" {
		t.Fatalf("unexpected idle user summary row: %+v", caroRow)
	}

	// Detail sections exist only for contributors, and only for their
	// non-empty categories.
	var detailHeadings []string
	for _, section := range doc.Sections[1:] {
		detailHeadings = append(detailHeadings, section.Heading)
	}
	want := []string{
		"Asha Rao - Intellectual Property Rights",
		"Asha Rao - Research Contributions",
		"Ben Okafor - Startups",
	}
	if len(detailHeadings) != len(want) {
		t.Fatalf("unexpected detail sections: %v", detailHeadings)
	}
	for i, heading := range want {
		if detailHeadings[i] != heading {
			t.Fatalf("detail section %d is %q, want %q", i, detailHeadings[i], heading)
		}
	}

	if doc.Subject.Designation != "Administrator" {
		t.Fatalf("unexpected subject designation %q", doc.Subject.Designation)
	}
}

func uintPtr(n uint) *uint { return &n }

func TestFleetSummaryRowSchemaIsHomogeneous(t *testing.T) {
	entries := []fleetEntry{
		{User: models.User{UserID: 2, Name: "A"}, Contribs: &UserContributions{}},
		{User: models.User{UserID: 3, Name: "B"}, Contribs: &UserContributions{
			IPRs: []models.IPR{{IPRID: 1, IPRType: "Patent", Title: "X", UserID: 3}},
		}},
	}
	admin := &models.User{UserID: 1, Name: "Admin", Role: models.RoleAdmin}
	doc := buildFleetReportDocument(admin, entries, ContributionCounts{IPRs: 1}, time.Now())

	// The composer rejects heterogeneous rows; the builder must never
	// produce them.
	if _, err := ComposeReport(doc); err != nil {
		t.Fatalf("fleet document failed to compose: %v", err)
	}
}
