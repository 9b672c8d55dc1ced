// internal/errors/errors.go
package appErrors

import (
	"errors"
	"fmt"
)

// Sentinel errors checked with errors.Is at the operation boundary.
var (
	// ErrDuplicateToken reports a token uniqueness violation on target insert.
	ErrDuplicateToken = errors.New("duplicate target token")

	// ErrInvalidFormat reports a CSV upload without the required email column.
	ErrInvalidFormat = errors.New(`invalid CSV: header must contain an "email" column (optional "name")`)

	// ErrNoValidRows reports a CSV upload whose rows were all filtered out.
	ErrNoValidRows = errors.New("no valid targets found in CSV")

	// ErrTargetNotFound reports an unknown tracking token.
	ErrTargetNotFound = errors.New("target not found")

	// ErrMissingCampaignFields reports a campaign created without the required fields.
	ErrMissingCampaignFields = errors.New("name, email_subject and email_html are required")
)

// ErrCampaignNotFound is a typed not-found error carrying the campaign id.
type ErrCampaignNotFound struct {
	CampaignID int
}

func (e *ErrCampaignNotFound) Error() string {
	return fmt.Sprintf("campaign with ID %d not found", e.CampaignID)
}

// Helper constructor
func NewCampaignNotFound(id int) error {
	return &ErrCampaignNotFound{CampaignID: id}
}

// IsCampaignNotFound reports whether err wraps an ErrCampaignNotFound.
func IsCampaignNotFound(err error) bool {
	var notFound *ErrCampaignNotFound
	return errors.As(err, &notFound)
}
