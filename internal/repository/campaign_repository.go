package repository

import (
	"database/sql"
	"time"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
)

type CampaignRepositoryInterface interface {
	Create(c *model.Campaign) error
	GetByID(id int) (*model.Campaign, error)
	ListWithStats() ([]model.CampaignOverview, error)
}

type CampaignRepository struct {
	DB *sql.DB
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	c.CreatedAt = time.Now().UTC()
	query := `
        INSERT INTO campaigns (name, description, email_subject, email_html, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.Name, c.Description, c.EmailSubject, c.EmailHTML, c.CreatedAt).Scan(&c.ID)
}

func (r *CampaignRepository) GetByID(id int) (*model.Campaign, error) {
	query := `
        SELECT id, name, COALESCE(description, ''), email_subject, email_html, created_at
        FROM campaigns WHERE id=$1
    `
	var c model.Campaign
	err := r.DB.QueryRow(query, id).Scan(&c.ID, &c.Name, &c.Description, &c.EmailSubject, &c.EmailHTML, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	return &c, nil
}

// ListWithStats returns all campaigns, newest first, each with its target
// and click totals.
func (r *CampaignRepository) ListWithStats() ([]model.CampaignOverview, error) {
	query := `
        SELECT c.id, c.name, COALESCE(c.description, ''), c.email_subject, c.email_html, c.created_at,
          (SELECT COUNT(*) FROM targets t WHERE t.campaign_id = c.id) AS targets_count,
          (SELECT COUNT(*) FROM clicks ck
             JOIN targets t2 ON t2.id = ck.target_id
             WHERE t2.campaign_id = c.id) AS clicks_count
        FROM campaigns c
        ORDER BY c.id DESC
    `
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campaigns := []model.CampaignOverview{}
	for rows.Next() {
		var c model.CampaignOverview
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.EmailSubject, &c.EmailHTML, &c.CreatedAt, &c.TargetsCount, &c.ClicksCount); err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, rows.Err()
}

var _ CampaignRepositoryInterface = (*CampaignRepository)(nil)
