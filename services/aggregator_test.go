package services

import (
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"
)

func countStep(table string, n int64) *queryStep {
	return &queryStep{
		pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .` + table + `. WHERE user_id = \?`),
		args:    []driver.Value{int64(7)},
		columns: []string{"count(*)"},
		rows:    [][]driver.Value{{n}},
	}
}

func TestSummarizeTotalsCategoryCounts(t *testing.T) {
	steps := []*queryStep{
		countStep("ipr", 2),
		countStep("research_paper", 1),
		countStep("innovation", 0),
		countStep("startup", 3),
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	agg := NewAggregatorService(gormDB)
	summary, err := agg.Summarize(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	perType := summary.Counts.IPRs + summary.Counts.Papers + summary.Counts.Innovations + summary.Counts.Startups
	if summary.Total != perType {
		t.Fatalf("total %d does not match per-type sum %d", summary.Total, perType)
	}
	if summary.Total != 6 {
		t.Fatalf("expected total 6, got %d", summary.Total)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestSummarizePropagatesStoreError(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT count\(\*\) FROM .ipr. WHERE user_id = \?`),
			err:     errors.New("connection lost"),
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	agg := NewAggregatorService(gormDB)
	if _, err := agg.Summarize(7); err == nil {
		t.Fatal("expected store error to propagate")
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestFetchContributionsBucketsTimeline(t *testing.T) {
	filing := time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC)
	published := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .ipr. WHERE user_id = \?`),
			columns: []string{"ipr_id", "ipr_type", "title", "filing_date", "user_id"},
			rows: [][]driver.Value{
				{int64(1), "Patent", "Adaptive solar cell", filing, int64(7)},
				{int64(2), "Trademark", "Hub logo", nil, int64(7)},
			},
		},
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .research_paper. WHERE user_id = \?`),
			columns: []string{"paper_id", "title", "publication_date", "user_id"},
			rows: [][]driver.Value{
				{int64(1), "Perovskite stability survey", published, int64(7)},
			},
		},
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .innovation. WHERE user_id = \?`),
			columns: []string{"innovation_id", "title", "user_id"},
			rows:    [][]driver.Value{},
		},
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .startup. WHERE user_id = \?`),
			columns: []string{"startup_id", "name", "user_id"},
			rows:    [][]driver.Value{},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	agg := NewAggregatorService(gormDB)
	contribs, err := agg.FetchContributions(7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	counts := contribs.Counts()
	if counts.IPRs != 2 || counts.Papers != 1 {
		t.Fatalf("unexpected counts: %+v", counts)
	}

	// The null-dated IPR stays in the counts but out of the timeline.
	tl := contribs.Timeline()
	if len(tl) != 2 {
		t.Fatalf("expected 2 timeline years, got %d", len(tl))
	}
	if tl[2022].IPRs != 1 || tl[2022].Papers != 0 {
		t.Fatalf("unexpected 2022 bucket: %+v", tl[2022])
	}
	if tl[2023].Papers != 1 || tl[2023].IPRs != 0 {
		t.Fatalf("unexpected 2023 bucket: %+v", tl[2023])
	}

	years := tl.Years()
	if len(years) != 2 || years[0] != 2022 || years[1] != 2023 {
		t.Fatalf("unexpected year order: %v", years)
	}

	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}

func TestExportUserNotFoundStopsBeforeContributionQueries(t *testing.T) {
	steps := []*queryStep{
		{
			pattern: regexp.MustCompile(`SELECT \* FROM .users. WHERE email = \?`),
			columns: []string{"user_id", "name", "email", "role"},
			rows:    [][]driver.Value{},
		},
	}
	gormDB, state, cleanup := newScriptedGormDB(t, steps)
	defer cleanup()

	svc := NewExportService(gormDB)
	if _, err := svc.ExportUser("nonexistent@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	// No contribution query may run after the lookup misses.
	if err := state.verifyComplete(); err != nil {
		t.Fatalf("%v", err)
	}
}
