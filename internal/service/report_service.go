// internal/service/report_service.go
package service

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"

	"github.com/unclebandit/phishsim-backend/internal/repository"
)

// ReportFilename is the download name of the exported report.
const ReportFilename = "campaign_report.csv"

var reportHeader = []string{
	"campaign_id", "campaign_name",
	"target_id", "target_name", "target_email",
	"token", "clicks", "tracking_url",
}

type ReportService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TargetRepo   repository.TargetRepositoryInterface
}

// ExportReport builds the campaign report CSV in memory. Each invocation
// writes its own buffer, so concurrent exports never share state.
func (s *ReportService) ExportReport(campaignID int, baseURL string) (*bytes.Buffer, error) {
	campaign, err := s.CampaignRepo.GetByID(campaignID)
	if err != nil {
		return nil, err
	}

	targets, err := s.TargetRepo.ListByCampaign(campaignID)
	if err != nil {
		return nil, err
	}

	base := strings.TrimRight(baseURL, "/")

	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(reportHeader); err != nil {
		return nil, err
	}
	for _, t := range targets {
		record := []string{
			strconv.Itoa(campaign.ID),
			campaign.Name,
			strconv.Itoa(t.ID),
			t.Name,
			t.Email,
			t.Token,
			strconv.Itoa(t.Clicks),
			base + "/t/" + t.Token,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf, nil
}
