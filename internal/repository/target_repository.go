package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

type TargetRepositoryInterface interface {
	// Insert returns appErrors.ErrDuplicateToken when the token is already taken.
	Insert(t *model.Target) error
	GetByToken(token string) (*model.TargetWithCampaign, error)
	ListByCampaign(campaignID int) ([]model.TargetClicks, error)
}

type TargetRepository struct {
	DB *sql.DB
}

func (r *TargetRepository) Insert(t *model.Target) error {
	t.CreatedAt = time.Now().UTC()
	query := `
        INSERT INTO targets (campaign_id, name, email, token, created_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	err := r.DB.QueryRow(query, t.CampaignID, t.Name, t.Email, t.Token, t.CreatedAt).Scan(&t.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return appErrors.ErrDuplicateToken
		}
		return err
	}
	return nil
}

// GetByToken resolves a tracking token to its target, joined with the
// campaign name for the notice page.
func (r *TargetRepository) GetByToken(token string) (*model.TargetWithCampaign, error) {
	query := `
        SELECT t.id, t.campaign_id, COALESCE(t.name, ''), t.email, t.token, t.created_at, c.name
        FROM targets t
        JOIN campaigns c ON c.id = t.campaign_id
        WHERE t.token = $1
    `
	var t model.TargetWithCampaign
	err := r.DB.QueryRow(query, token).Scan(
		&t.ID, &t.CampaignID, &t.Name, &t.Email, &t.Token, &t.CreatedAt, &t.CampaignName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.ErrTargetNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByCampaign returns the campaign's targets ordered by id ascending,
// each with its click count (0 when none recorded).
func (r *TargetRepository) ListByCampaign(campaignID int) ([]model.TargetClicks, error) {
	query := `
        SELECT t.id, t.campaign_id, COALESCE(t.name, ''), t.email, t.token, t.created_at,
          (SELECT COUNT(*) FROM clicks ck WHERE ck.target_id = t.id) AS clicks
        FROM targets t
        WHERE t.campaign_id = $1
        ORDER BY t.id ASC
    `
	rows, err := r.DB.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	targets := []model.TargetClicks{}
	for rows.Next() {
		var t model.TargetClicks
		if err := rows.Scan(&t.ID, &t.CampaignID, &t.Name, &t.Email, &t.Token, &t.CreatedAt, &t.Clicks); err != nil {
			return nil, err
		}
		targets = append(targets, t)
	}
	return targets, rows.Err()
}

var _ TargetRepositoryInterface = (*TargetRepository)(nil)
