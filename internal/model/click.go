// internal/model/click.go
package model

import "time"

type Click struct {
	ID        int       `db:"id" json:"id"`
	TargetID  int       `db:"target_id" json:"target_id"`
	ClickedAt time.Time `db:"clicked_at" json:"clicked_at"`
	IP        string    `db:"ip" json:"ip,omitempty"`
	UserAgent string    `db:"user_agent" json:"user_agent,omitempty"`
}
