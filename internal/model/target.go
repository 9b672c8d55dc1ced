// internal/model/target.go
package model

import "time"

type Target struct {
	ID         int       `db:"id" json:"id"`
	CampaignID int       `db:"campaign_id" json:"campaign_id"`
	Name       string    `db:"name" json:"name,omitempty"`
	Email      string    `db:"email" json:"email"`
	Token      string    `db:"token" json:"token"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// TargetWithCampaign is a target joined with its campaign name, used when
// resolving a tracking token.
type TargetWithCampaign struct {
	Target
	CampaignName string `json:"campaign_name"`
}

// TargetClicks is a target with its click count, used for reporting.
type TargetClicks struct {
	Target
	Clicks int `json:"clicks"`
}
