// internal/model/campaign.go
package model

import "time"

type Campaign struct {
	ID           int       `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Description  string    `db:"description" json:"description,omitempty"`
	EmailSubject string    `db:"email_subject" json:"email_subject"`
	EmailHTML    string    `db:"email_html" json:"email_html"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// CampaignOverview is a campaign with its target/click totals, as shown
// on the campaign list.
type CampaignOverview struct {
	Campaign
	TargetsCount int `json:"targets_count"`
	ClicksCount  int `json:"clicks_count"`
}
