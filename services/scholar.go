package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"time"

	"riise-api/config"
	"riise-api/models"

	"gorm.io/gorm"
)

// ErrNoScholarID is returned when a metrics refresh is requested for a
// user without a linked scholar profile.
var ErrNoScholarID = errors.New("user has no scholar profile linked")

// ScholarMetrics is the payload returned by the external
// scholarly-metrics lookup service.
type ScholarMetrics struct {
	HIndex         int `json:"h_index"`
	I10Index       int `json:"i10_index"`
	TotalCitations int `json:"total_citations"`
}

// ScholarClient fetches author metrics from the external lookup
// service configured via SCHOLAR_API_URL.
type ScholarClient struct {
	baseURL string
	client  *http.Client
}

func NewScholarClient() *ScholarClient {
	return &ScholarClient{
		baseURL: os.Getenv("SCHOLAR_API_URL"),
		client:  &http.Client{Timeout: 45 * time.Second},
	}
}

func (c *ScholarClient) FetchMetrics(ctx context.Context, scholarID string) (*ScholarMetrics, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("scholar lookup not configured (SCHOLAR_API_URL)")
	}

	endpoint := fmt.Sprintf("%s/author/%s", c.baseURL, url.PathEscape(scholarID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("scholar lookup: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("scholar lookup: unexpected status %d", resp.StatusCode)
	}

	var metrics ScholarMetrics
	if err := json.NewDecoder(resp.Body).Decode(&metrics); err != nil {
		return nil, fmt.Errorf("scholar lookup: decode response: %w", err)
	}
	return &metrics, nil
}

// ScholarMetricsService refreshes a user's stored scholarly metrics
// from the external lookup service.
type ScholarMetricsService struct {
	db     *gorm.DB
	client *ScholarClient
}

func NewScholarMetricsService(db *gorm.DB) *ScholarMetricsService {
	if db == nil {
		db = config.DB
	}
	return &ScholarMetricsService{db: db, client: NewScholarClient()}
}

func (s *ScholarMetricsService) RefreshUser(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("user_id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.ScholarID == nil || *user.ScholarID == "" {
		return nil, ErrNoScholarID
	}

	metrics, err := s.client.FetchMetrics(ctx, *user.ScholarID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"h_index":         metrics.HIndex,
		"i10_index":       metrics.I10Index,
		"total_citations": metrics.TotalCitations,
	}
	if err := s.db.Model(&user).Updates(updates).Error; err != nil {
		return nil, err
	}

	user.HIndex = &metrics.HIndex
	user.I10Index = &metrics.I10Index
	user.TotalCitations = &metrics.TotalCitations
	return &user, nil
}
