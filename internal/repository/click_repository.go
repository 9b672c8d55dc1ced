package repository

import (
	"database/sql"

	"github.com/unclebandit/phishsim-backend/internal/model"
)

type ClickRepositoryInterface interface {
	Insert(c *model.Click) error
	CountForTarget(targetID int) (int, error)
	CampaignTotals(campaignID int) (targets int, clicks int, err error)
}

// ClickRepository appends click events; clicks are never updated or deleted.
type ClickRepository struct {
	DB *sql.DB
}

func (r *ClickRepository) Insert(c *model.Click) error {
	query := `
        INSERT INTO clicks (target_id, clicked_at, ip, user_agent)
        VALUES ($1, $2, $3, $4)
        RETURNING id
    `
	return r.DB.QueryRow(query, c.TargetID, c.ClickedAt, c.IP, c.UserAgent).Scan(&c.ID)
}

func (r *ClickRepository) CountForTarget(targetID int) (int, error) {
	var count int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM clicks WHERE target_id=$1`, targetID).Scan(&count)
	return count, err
}

// CampaignTotals re-derives the campaign's target and click counts on demand.
func (r *ClickRepository) CampaignTotals(campaignID int) (int, int, error) {
	query := `
        SELECT
          (SELECT COUNT(*) FROM targets t WHERE t.campaign_id = $1),
          (SELECT COUNT(*) FROM clicks ck
             JOIN targets t2 ON t2.id = ck.target_id
             WHERE t2.campaign_id = $1)
    `
	var targets, clicks int
	if err := r.DB.QueryRow(query, campaignID).Scan(&targets, &clicks); err != nil {
		return 0, 0, err
	}
	return targets, clicks, nil
}

var _ ClickRepositoryInterface = (*ClickRepository)(nil)
