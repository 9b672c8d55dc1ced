// internal/controller/campaign_controller.go
package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/service"
)

type CampaignController struct {
	CampaignService *service.CampaignService
	ImportService   *service.ImportService
	ReportService   *service.ReportService

	// BaseURL is used to build tracking URLs in exports; when empty the
	// request host is used.
	BaseURL string
}

const maxUploadBytes = 10 << 20

func (c *CampaignController) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form body", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.CreateCampaign(
		r.FormValue("name"),
		r.FormValue("description"),
		r.FormValue("email_subject"),
		r.FormValue("email_html"),
	)
	if err != nil {
		if errors.Is(err, appErrors.ErrMissingCampaignFields) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		log.Println("⚠️ failed to create campaign:", err)
		http.Error(w, "failed to create campaign", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(campaign)
}

func (c *CampaignController) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := c.CampaignService.ListCampaigns()
	if err != nil {
		http.Error(w, "failed to fetch campaigns: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"data": campaigns,
	})
}

func (c *CampaignController) UploadTargets(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, _, err := r.FormFile("targets_csv")
	if err != nil {
		http.Error(w, "missing targets_csv file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	inserted, err := c.ImportService.ImportTargets(id, file)
	if err != nil {
		switch {
		case errors.Is(err, appErrors.ErrInvalidFormat), errors.Is(err, appErrors.ErrNoValidRows):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case appErrors.IsCampaignNotFound(err):
			http.Error(w, err.Error(), http.StatusNotFound)
		default:
			http.Error(w, "failed to import targets: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"campaign_id": id,
		"imported":    inserted,
	})
}

func (c *CampaignController) ExportReport(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	buf, err := c.ReportService.ExportReport(id, c.baseURL(r))
	if err != nil {
		if appErrors.IsCampaignNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to export report: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", service.ReportFilename))
	w.Write(buf.Bytes())
}

func (c *CampaignController) GetCampaignStats(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	stats, err := c.CampaignService.GetCampaignStats(id)
	if err != nil {
		if appErrors.IsCampaignNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch stats: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}

var emailPreviewPage = template.Must(template.New("email_preview").Parse(`<!doctype html>
<html>
  <head><meta charset="utf-8"/><title>{{.EmailSubject}}</title></head>
  <body>
    <p><strong>Subject:</strong> {{.EmailSubject}}</p>
    <hr/>
    {{.Body}}
  </body>
</html>
`))

func (c *CampaignController) PreviewEmail(w http.ResponseWriter, r *http.Request) {
	id, err := campaignID(r)
	if err != nil {
		http.Error(w, "invalid campaign id", http.StatusBadRequest)
		return
	}

	campaign, err := c.CampaignService.GetCampaign(id)
	if err != nil {
		if appErrors.IsCampaignNotFound(err) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, "failed to fetch campaign: "+err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	emailPreviewPage.Execute(w, struct {
		EmailSubject string
		Body         template.HTML
	}{
		EmailSubject: campaign.EmailSubject,
		// The stored HTML is operator-authored and rendered as-is.
		Body: template.HTML(campaign.EmailHTML),
	})
}

func (c *CampaignController) baseURL(r *http.Request) string {
	if c.BaseURL != "" {
		return c.BaseURL
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

func campaignID(r *http.Request) (int, error) {
	return strconv.Atoi(chi.URLParam(r, "id"))
}
