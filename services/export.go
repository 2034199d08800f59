package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"riise-api/config"
	"riise-api/models"

	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when an export targets a user that
	// does not exist. Surfaced before any contribution query runs.
	ErrUserNotFound = errors.New("user not found")

	// ErrNoUsers is returned by the fleet export when there are no
	// regular users to report on.
	ErrNoUsers = errors.New("no users found")
)

const departmentName = "Research and Innovation Hub"

// ExportResult is a fully buffered PDF plus its suggested filename.
type ExportResult struct {
	Filename string
	PDF      []byte
}

// ExportService builds report documents from aggregated contribution
// data and serializes them to PDF. Each export call is a single-pass,
// request-scoped pipeline with no retained state.
type ExportService struct {
	db     *gorm.DB
	agg    *AggregatorService
	charts *ChartRenderer
}

func NewExportService(db *gorm.DB) *ExportService {
	if db == nil {
		db = config.DB
	}
	return &ExportService{
		db:     db,
		agg:    NewAggregatorService(db),
		charts: NewChartRenderer(),
	}
}

// ExportSelf builds the first-person progress report for one user.
func (s *ExportService) ExportSelf(userID uint) (*ExportResult, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	return s.exportUserReport(&user, true, "my_progress_report.pdf")
}

// ExportUser builds the third-person report for the user with the
// given email. Role gating happens in the route layer; this only
// resolves the target.
func (s *ExportService) ExportUser(email string) (*ExportResult, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("fetch user: %w", err)
	}
	filename := fmt.Sprintf("user_report_%s.pdf", strings.ReplaceAll(user.Name, " ", "_"))
	return s.exportUserReport(&user, false, filename)
}

func (s *ExportService) exportUserReport(user *models.User, firstPerson bool, filename string) (*ExportResult, error) {
	contribs, err := s.agg.FetchContributions(user.UserID)
	if err != nil {
		return nil, err
	}

	doc := buildUserReportDocument(user, contribs, firstPerson, time.Now())
	doc.Charts = s.userCharts(user, contribs, firstPerson)

	pdfBytes, err := ComposeReport(doc)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Filename: filename, PDF: pdfBytes}, nil
}

// ExportAll builds the fleet-wide report covering every non-admin
// user: a summary table with one row per user, then detail sections
// for users who actually contributed.
func (s *ExportService) ExportAll() (*ExportResult, error) {
	var users []models.User
	if err := s.db.Where("role = ?", models.RoleUser).Order("user_id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("fetch users: %w", err)
	}
	if len(users) == 0 {
		return nil, ErrNoUsers
	}

	entries := make([]fleetEntry, 0, len(users))
	for i := range users {
		contribs, err := s.agg.FetchContributions(users[i].UserID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, fleetEntry{User: users[i], Contribs: contribs})
	}

	// Global totals count every record, owned or not.
	_, globals, err := s.agg.SummarizeAll()
	if err != nil {
		return nil, err
	}

	// The report is issued by the first admin account; fall back to
	// the first user if none exists.
	var admin models.User
	if err := s.db.Where("role = ?", models.RoleAdmin).Order("user_id").First(&admin).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("fetch admin: %w", err)
		}
		admin = users[0]
	}

	doc := buildFleetReportDocument(&admin, entries, globals, time.Now())
	doc.Charts = s.fleetCharts(entries, globals)

	pdfBytes, err := ComposeReport(doc)
	if err != nil {
		return nil, err
	}
	return &ExportResult{Filename: "all_users_report.pdf", PDF: pdfBytes}, nil
}

// userCharts renders the per-user pie and, when any dated record
// exists, the timeline chart. Chart failures are logged and the chart
// is omitted; the report still goes out.
func (s *ExportService) userCharts(user *models.User, contribs *UserContributions, firstPerson bool) []ReportChart {
	counts := contribs.Counts()

	pieTitle := fmt.Sprintf("%s's Contribution Distribution", user.Name)
	if firstPerson {
		pieTitle = "My Contribution Distribution"
	}
	charts := make([]ReportChart, 0, 2)
	png, err := s.charts.RenderPie(
		[]string{"IPRs", "Research Papers", "Innovations", "Startups"},
		[]float64{float64(counts.IPRs), float64(counts.Papers), float64(counts.Innovations), float64(counts.Startups)},
		pieTitle,
	)
	if err != nil {
		if !errors.Is(err, ErrNoChartData) {
			log.Printf("Warning: pie chart skipped: %v", err)
		}
	} else {
		charts = append(charts, ReportChart{Caption: "Contribution Distribution", PNG: png})
	}

	tl := contribs.Timeline()
	if len(tl) == 0 {
		return charts
	}
	iprPoints := map[int]float64{}
	paperPoints := map[int]float64{}
	for year, bucket := range tl {
		iprPoints[year] = float64(bucket.IPRs)
		paperPoints[year] = float64(bucket.Papers)
	}
	lineTitle := fmt.Sprintf("%s's Contribution Timeline", user.Name)
	caption := "Contribution Timeline"
	if firstPerson {
		lineTitle = "Your Contribution Timeline"
		caption = "Your Contribution Timeline"
	}
	png, err = s.charts.RenderLine([]TimeSeries{
		{Name: "IPRs", Points: iprPoints},
		{Name: "Papers", Points: paperPoints},
	}, lineTitle)
	if err != nil {
		if !errors.Is(err, ErrNoChartData) {
			log.Printf("Warning: timeline chart skipped: %v", err)
		}
		return charts
	}
	return append(charts, ReportChart{Caption: caption, PNG: png})
}

// fleetCharts renders the global distribution pie and the per-user
// grouped bar breakdown.
func (s *ExportService) fleetCharts(entries []fleetEntry, globals ContributionCounts) []ReportChart {
	charts := make([]ReportChart, 0, 2)

	png, err := s.charts.RenderPie(
		[]string{"IPRs", "Research Papers", "Innovations", "Startups"},
		[]float64{float64(globals.IPRs), float64(globals.Papers), float64(globals.Innovations), float64(globals.Startups)},
		"Distribution of Contributions",
	)
	if err != nil {
		if !errors.Is(err, ErrNoChartData) {
			log.Printf("Warning: distribution chart skipped: %v", err)
		}
	} else {
		charts = append(charts, ReportChart{Caption: "Contribution Distribution", PNG: png})
	}

	names := make([]string, len(entries))
	series := []ChartSeries{
		{Name: "IPRs", Values: make([]float64, len(entries))},
		{Name: "Papers", Values: make([]float64, len(entries))},
		{Name: "Innovations", Values: make([]float64, len(entries))},
		{Name: "Startups", Values: make([]float64, len(entries))},
	}
	for i, entry := range entries {
		counts := entry.Contribs.Counts()
		names[i] = entry.User.Name
		series[0].Values[i] = float64(counts.IPRs)
		series[1].Values[i] = float64(counts.Papers)
		series[2].Values[i] = float64(counts.Innovations)
		series[3].Values[i] = float64(counts.Startups)
	}
	png, err = s.charts.RenderGroupedBar(names, series, "Contribution Breakdown by User")
	if err != nil {
		log.Printf("Warning: breakdown chart skipped: %v", err)
		return charts
	}
	return append(charts, ReportChart{Caption: "User Contribution Breakdown", PNG: png})
}
