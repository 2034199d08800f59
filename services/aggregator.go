package services

import (
	"fmt"
	"sort"

	"riise-api/config"
	"riise-api/models"

	"gorm.io/gorm"
)

// ContributionCounts holds the per-type record counts for one user or
// for the whole portal.
type ContributionCounts struct {
	IPRs        int64 `json:"iprs"`
	Papers      int64 `json:"papers"`
	Innovations int64 `json:"innovations"`
	Startups    int64 `json:"startups"`
}

func (c ContributionCounts) Total() int64 {
	return c.IPRs + c.Papers + c.Innovations + c.Startups
}

// ContributionSummary is the derived per-user rollup used by reports
// and the dashboard. Recomputed on every request, never persisted.
type ContributionSummary struct {
	User   models.User        `json:"user"`
	Counts ContributionCounts `json:"counts"`
	Total  int64              `json:"total"`
}

// YearCounts is one timeline bucket. Only IPR filings and research
// papers carry a bucketable date in the current schema.
type YearCounts struct {
	IPRs   int
	Papers int
}

// Timeline maps year to dated contribution counts.
type Timeline map[int]YearCounts

// Years returns the bucket years in ascending order.
func (t Timeline) Years() []int {
	years := make([]int, 0, len(t))
	for y := range t {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// UserContributions holds every contribution record owned by one user.
type UserContributions struct {
	IPRs        []models.IPR
	Papers      []models.ResearchPaper
	Innovations []models.Innovation
	Startups    []models.Startup
}

// Counts tallies the fetched records per type.
func (uc *UserContributions) Counts() ContributionCounts {
	return ContributionCounts{
		IPRs:        int64(len(uc.IPRs)),
		Papers:      int64(len(uc.Papers)),
		Innovations: int64(len(uc.Innovations)),
		Startups:    int64(len(uc.Startups)),
	}
}

// Timeline buckets dated records by year. Records with a null date are
// left out of the timeline but still show up in Counts.
func (uc *UserContributions) Timeline() Timeline {
	tl := Timeline{}
	for _, ipr := range uc.IPRs {
		if ipr.FilingDate == nil {
			continue
		}
		bucket := tl[ipr.FilingDate.Year()]
		bucket.IPRs++
		tl[ipr.FilingDate.Year()] = bucket
	}
	for _, paper := range uc.Papers {
		if paper.PublicationDate == nil {
			continue
		}
		bucket := tl[paper.PublicationDate.Year()]
		bucket.Papers++
		tl[paper.PublicationDate.Year()] = bucket
	}
	return tl
}

type AggregatorService struct {
	db *gorm.DB
}

func NewAggregatorService(db *gorm.DB) *AggregatorService {
	if db == nil {
		db = config.DB
	}
	return &AggregatorService{db: db}
}

// Summarize computes the per-type counts for one user with COUNT
// queries. The caller guarantees the user exists.
func (s *AggregatorService) Summarize(userID uint) (*ContributionSummary, error) {
	var counts ContributionCounts

	queries := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.IPR{}, &counts.IPRs},
		{&models.ResearchPaper{}, &counts.Papers},
		{&models.Innovation{}, &counts.Innovations},
		{&models.Startup{}, &counts.Startups},
	}
	for _, q := range queries {
		if err := s.db.Model(q.model).Where("user_id = ?", userID).Count(q.dest).Error; err != nil {
			return nil, fmt.Errorf("count contributions: %w", err)
		}
	}

	return &ContributionSummary{Counts: counts, Total: counts.Total()}, nil
}

// SummarizeTimeline fetches the user's dated records and buckets them
// by year.
func (s *AggregatorService) SummarizeTimeline(userID uint) (Timeline, error) {
	contribs, err := s.FetchContributions(userID)
	if err != nil {
		return nil, err
	}
	return contribs.Timeline(), nil
}

// FetchContributions loads every contribution record for one user, one
// filtered query per type.
func (s *AggregatorService) FetchContributions(userID uint) (*UserContributions, error) {
	var uc UserContributions

	if err := s.db.Where("user_id = ?", userID).Find(&uc.IPRs).Error; err != nil {
		return nil, fmt.Errorf("fetch ipr records: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&uc.Papers).Error; err != nil {
		return nil, fmt.Errorf("fetch research papers: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&uc.Innovations).Error; err != nil {
		return nil, fmt.Errorf("fetch innovations: %w", err)
	}
	if err := s.db.Where("user_id = ?", userID).Find(&uc.Startups).Error; err != nil {
		return nil, fmt.Errorf("fetch startups: %w", err)
	}
	return &uc, nil
}

// SummarizeAll returns one summary per non-admin user, ordered by user
// id, plus the portal-wide totals. Global totals count every record,
// including rows without an owner.
func (s *AggregatorService) SummarizeAll() ([]ContributionSummary, ContributionCounts, error) {
	var users []models.User
	if err := s.db.Where("role = ?", models.RoleUser).Order("user_id").Find(&users).Error; err != nil {
		return nil, ContributionCounts{}, fmt.Errorf("fetch users: %w", err)
	}

	summaries := make([]ContributionSummary, 0, len(users))
	for _, user := range users {
		summary, err := s.Summarize(user.UserID)
		if err != nil {
			return nil, ContributionCounts{}, err
		}
		summary.User = user
		summaries = append(summaries, *summary)
	}

	var globals ContributionCounts
	queries := []struct {
		model interface{}
		dest  *int64
	}{
		{&models.IPR{}, &globals.IPRs},
		{&models.ResearchPaper{}, &globals.Papers},
		{&models.Innovation{}, &globals.Innovations},
		{&models.Startup{}, &globals.Startups},
	}
	for _, q := range queries {
		if err := s.db.Model(q.model).Count(q.dest).Error; err != nil {
			return nil, ContributionCounts{}, fmt.Errorf("count all contributions: %w", err)
		}
	}

	return summaries, globals, nil
}
