// internal/service/campaign_service.go
package service

import (
	"fmt"
	"strings"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

type CampaignService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	ClickRepo    repository.ClickRepositoryInterface
}

// CampaignStats holds the re-derived per-campaign totals.
type CampaignStats struct {
	CampaignID   int     `json:"campaign_id"`
	TargetsCount int     `json:"targets_count"`
	ClicksCount  int     `json:"clicks_count"`
	ClickRate    float64 `json:"click_rate"`
}

func (s *CampaignService) CreateCampaign(name, description, subject, html string) (*model.Campaign, error) {
	name = strings.TrimSpace(name)
	subject = strings.TrimSpace(subject)
	html = strings.TrimSpace(html)
	if name == "" || subject == "" || html == "" {
		return nil, appErrors.ErrMissingCampaignFields
	}

	c := &model.Campaign{
		Name:         name,
		Description:  strings.TrimSpace(description),
		EmailSubject: subject,
		EmailHTML:    html,
	}
	if err := s.CampaignRepo.Create(c); err != nil {
		return nil, fmt.Errorf("create campaign: %w", err)
	}
	return c, nil
}

func (s *CampaignService) GetCampaign(id int) (*model.Campaign, error) {
	return s.CampaignRepo.GetByID(id)
}

func (s *CampaignService) ListCampaigns() ([]model.CampaignOverview, error) {
	return s.CampaignRepo.ListWithStats()
}

// GetCampaignStats computes totals and the click rate: total clicks divided
// by total targets, scaled by 100. A target clicking more than once pushes
// the rate past 100; that is the defined behavior, not a bug.
func (s *CampaignService) GetCampaignStats(campaignID int) (*CampaignStats, error) {
	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return nil, err
	}

	targets, clicks, err := s.ClickRepo.CampaignTotals(campaignID)
	if err != nil {
		return nil, err
	}

	rate := 0.0
	if targets > 0 {
		rate = float64(clicks) / float64(targets) * 100
	}

	return &CampaignStats{
		CampaignID:   campaignID,
		TargetsCount: targets,
		ClicksCount:  clicks,
		ClickRate:    rate,
	}, nil
}
