package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"riise-api/models"
)

// fleetEntry pairs one user with their fetched contribution records
// for the all-users report.
type fleetEntry struct {
	User     models.User
	Contribs *UserContributions
}

const reportDateFormat = "02 January, 2006"

// buildUserReportDocument assembles the single-user report document.
// The four detail sections are always present; empty ones render the
// "No data available." placeholder so report structure is stable.
func buildUserReportDocument(user *models.User, contribs *UserContributions, firstPerson bool, now time.Time) *ReportDocument {
	counts := contribs.Counts()
	date := now.Format(reportDateFormat)

	title := fmt.Sprintf("User Report: %s", user.Name)
	overview := fmt.Sprintf(
		"This report provides a detailed overview of %s's contributions as of %s. "+
			"The user has contributed to %d Intellectual Property Rights (IPR) filings, "+
			"%d research publications, %d innovations, and %d startup ventures.",
		user.Name, date, counts.IPRs, counts.Papers, counts.Innovations, counts.Startups)
	summary := fmt.Sprintf(
		"%s has made significant contributions with %d IPR filings, %d research publications, "+
			"%d innovations, and %d startup ventures. This performance demonstrates strong "+
			"engagement across multiple domains of research and innovation.",
		user.Name, counts.IPRs, counts.Papers, counts.Innovations, counts.Startups)
	if firstPerson {
		title = "My Progress Report"
		overview = fmt.Sprintf(
			"This report summarizes your contributions as of %s. "+
				"You have contributed to %d Intellectual Property Rights (IPR) filings, "+
				"%d research publications, %d innovations, and %d startup ventures.",
			date, counts.IPRs, counts.Papers, counts.Innovations, counts.Startups)
		summary = fmt.Sprintf(
			"You have made significant contributions with %d IPR filings, %d research publications, "+
				"%d innovations, and %d startup ventures. Your continued engagement across multiple "+
				"domains of research and innovation is highly valued.",
			counts.IPRs, counts.Papers, counts.Innovations, counts.Startups)
	}

	iprRows := make([]SectionRow, 0, len(contribs.IPRs))
	for _, ipr := range contribs.IPRs {
		iprRows = append(iprRows, iprDetailRow(ipr))
	}
	paperRows := make([]SectionRow, 0, len(contribs.Papers))
	for _, paper := range contribs.Papers {
		paperRows = append(paperRows, paperDetailRow(paper))
	}
	innovationRows := make([]SectionRow, 0, len(contribs.Innovations))
	for _, innovation := range contribs.Innovations {
		innovationRows = append(innovationRows, innovationDetailRow(innovation))
	}
	startupRows := make([]SectionRow, 0, len(contribs.Startups))
	for _, startup := range contribs.Startups {
		startupRows = append(startupRows, startupDetailRow(startup))
	}

	return &ReportDocument{
		Title: title,
		Subject: ReportSubject{
			Name:        user.Name,
			Department:  departmentName,
			Designation: titleCase(string(user.Role)),
			Email:       user.Email,
			Phone:       "Contact Administration",
		},
		ProgressOverview: overview,
		Sections: []ReportSection{
			{Heading: "Intellectual Property Rights (IPR)", Rows: iprRows},
			{Heading: "Research Contributions", Rows: paperRows},
			{Heading: "Innovations Developed", Rows: innovationRows},
			{Heading: "Startups Initiated", Rows: startupRows},
		},
		FinalSummary: summary,
		Date:         date,
		GeneratedAt:  now,
	}
}

// buildFleetReportDocument assembles the all-users report: one summary
// row per user (zero counts included), then detail sections only for
// users with at least one contribution.
func buildFleetReportDocument(admin *models.User, entries []fleetEntry, globals ContributionCounts, now time.Time) *ReportDocument {
	date := now.Format(reportDateFormat)

	summaryRows := make([]SectionRow, 0, len(entries))
	for _, entry := range entries {
		counts := entry.Contribs.Counts()
		summaryRows = append(summaryRows, SectionRow{
			{Header: "User", Value: entry.User.Name},
			{Header: "IPRs", Value: strconv.FormatInt(counts.IPRs, 10)},
			{Header: "Research Papers", Value: strconv.FormatInt(counts.Papers, 10)},
			{Header: "Innovations", Value: strconv.FormatInt(counts.Innovations, 10)},
			{Header: "Startups", Value: strconv.FormatInt(counts.Startups, 10)},
			{Header: "Total", Value: strconv.FormatInt(counts.Total(), 10)},
		})
	}

	sections := []ReportSection{
		{Heading: "User Contributions Summary", Rows: summaryRows},
	}

	// Users with zero contributions stay in the summary but get no
	// detail sections, keeping the detail pages relevant.
	for _, entry := range entries {
		if entry.Contribs.Counts().Total() == 0 {
			continue
		}
		name := entry.User.Name
		if len(entry.Contribs.IPRs) > 0 {
			rows := make([]SectionRow, 0, len(entry.Contribs.IPRs))
			for _, ipr := range entry.Contribs.IPRs {
				rows = append(rows, SectionRow{
					{Header: "Title", Value: ipr.Title},
					{Header: "Type", Value: ipr.IPRType},
					{Header: "Status", Value: strOrDefault(ipr.Status, "")},
				})
			}
			sections = append(sections, ReportSection{Heading: name + " - Intellectual Property Rights", Rows: rows})
		}
		if len(entry.Contribs.Papers) > 0 {
			rows := make([]SectionRow, 0, len(entry.Contribs.Papers))
			for _, paper := range entry.Contribs.Papers {
				rows = append(rows, SectionRow{
					{Header: "Title", Value: paper.Title},
					{Header: "Citations", Value: strconv.Itoa(intOrZero(paper.Citations))},
				})
			}
			sections = append(sections, ReportSection{Heading: name + " - Research Contributions", Rows: rows})
		}
		if len(entry.Contribs.Innovations) > 0 {
			rows := make([]SectionRow, 0, len(entry.Contribs.Innovations))
			for _, innovation := range entry.Contribs.Innovations {
				rows = append(rows, SectionRow{
					{Header: "Title", Value: innovation.Title},
					{Header: "Domain", Value: strOrDefault(innovation.Domain, "")},
				})
			}
			sections = append(sections, ReportSection{Heading: name + " - Innovations", Rows: rows})
		}
		if len(entry.Contribs.Startups) > 0 {
			rows := make([]SectionRow, 0, len(entry.Contribs.Startups))
			for _, startup := range entry.Contribs.Startups {
				rows = append(rows, SectionRow{
					{Header: "Name", Value: startup.Name},
					{Header: "Status", Value: strOrDefault(startup.Status, "")},
				})
			}
			sections = append(sections, ReportSection{Heading: name + " - Startups", Rows: rows})
		}
	}

	return &ReportDocument{
		Title: departmentName + ": All Users Report",
		Subject: ReportSubject{
			Name:        admin.Name,
			Department:  departmentName,
			Designation: "Administrator",
			Email:       admin.Email,
			Phone:       "Contact Administration",
		},
		ProgressOverview: fmt.Sprintf(
			"This is an official report generated on %s summarizing the research and innovation "+
				"activities across all users in the department. The report includes data on %d "+
				"Intellectual Property Rights (IPR) filings, %d research publications, %d innovations "+
				"developed, and %d startup ventures initiated by members of the %s.",
			date, globals.IPRs, globals.Papers, globals.Innovations, globals.Startups, departmentName),
		Sections: sections,
		FinalSummary: fmt.Sprintf(
			"This report summarizes contributions from %d users, including a total of %d IPRs, "+
				"%d research publications, %d innovations, and %d startup ventures. The %s continues "+
				"to foster academic excellence, innovation, and entrepreneurship. The department is "+
				"committed to supporting these initiatives and furthering their impact in the coming "+
				"academic year.",
			len(entries), globals.IPRs, globals.Papers, globals.Innovations, globals.Startups, departmentName),
		Date:        date,
		GeneratedAt: now,
	}
}

func iprDetailRow(ipr models.IPR) SectionRow {
	return SectionRow{
		{Header: "Title", Value: ipr.Title},
		{Header: "Type", Value: ipr.IPRType},
		{Header: "Status", Value: strOrDefault(ipr.Status, "")},
		{Header: "Filing Date", Value: dateOrDefault(ipr.FilingDate, "Not filed")},
	}
}

func paperDetailRow(paper models.ResearchPaper) SectionRow {
	return SectionRow{
		{Header: "Title", Value: paper.Title},
		{Header: "Authors", Value: strOrDefault(paper.Authors, "Not specified")},
		{Header: "Citations", Value: strconv.Itoa(intOrZero(paper.Citations))},
		{Header: "Publication Date", Value: dateOrDefault(paper.PublicationDate, "Not published")},
	}
}

func innovationDetailRow(innovation models.Innovation) SectionRow {
	return SectionRow{
		{Header: "Title", Value: innovation.Title},
		{Header: "Domain", Value: strOrDefault(innovation.Domain, "")},
		{Header: "Level", Value: strOrDefault(innovation.Level, "")},
		{Header: "Status", Value: strOrDefault(innovation.Status, "")},
	}
}

func startupDetailRow(startup models.Startup) SectionRow {
	return SectionRow{
		{Header: "Name", Value: startup.Name},
		{Header: "Industry", Value: strOrDefault(startup.Industry, "")},
		{Header: "Founder", Value: strOrDefault(startup.Founder, "")},
		{Header: "Status", Value: strOrDefault(startup.Status, "")},
	}
}

func strOrDefault(s *string, def string) string {
	if s == nil || *s == "" {
		return def
	}
	return *s
}

func intOrZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func dateOrDefault(t *time.Time, def string) string {
	if t == nil {
		return def
	}
	return t.Format("2006-01-02")
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
