// internal/service/import_service.go
package service

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/repository"
	"github.com/unclebandit/phishsim-backend/internal/token"
)

type ImportService struct {
	CampaignRepo repository.CampaignRepositoryInterface
	TargetRepo   repository.TargetRepositoryInterface
	Tokens       token.Issuer
}

type importRow struct {
	name  string
	email string
}

// ImportTargets parses the uploaded CSV and creates one target per valid
// row, each with a fresh token. It returns the number of rows actually
// persisted, which can be lower than the number of valid rows when a token
// collides twice. Re-importing the same CSV creates new targets; no
// deduplication is performed.
func (s *ImportService) ImportTargets(campaignID int, csvData io.Reader) (int, error) {
	rows, err := parseTargetsCSV(csvData)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, appErrors.ErrNoValidRows
	}

	if _, err := s.CampaignRepo.GetByID(campaignID); err != nil {
		return 0, err
	}

	inserted := 0
	for _, row := range rows {
		ok, err := s.insertWithRetry(campaignID, row)
		if err != nil {
			return inserted, err
		}
		if ok {
			inserted++
		}
	}
	return inserted, nil
}

// parseTargetsCSV validates the header and filters rows with an empty email.
// Columns other than email and name are ignored.
func parseTargetsCSV(csvData io.Reader) ([]importRow, error) {
	reader := csv.NewReader(csvData)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, appErrors.ErrInvalidFormat
	}

	emailCol, nameCol := -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "email":
			emailCol = i
		case "name":
			nameCol = i
		}
	}
	if emailCol == -1 {
		return nil, appErrors.ErrInvalidFormat
	}

	rows := []importRow{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read CSV: %w", err)
		}

		email := ""
		if emailCol < len(record) {
			email = strings.TrimSpace(record[emailCol])
		}
		if email == "" {
			continue
		}

		name := ""
		if nameCol >= 0 && nameCol < len(record) {
			name = strings.TrimSpace(record[nameCol])
		}
		rows = append(rows, importRow{name: name, email: email})
	}
	return rows, nil
}

// insertWithRetry inserts the target with a fresh token. On a token
// collision it retries exactly once with a longer token; a second collision
// drops the row without surfacing an error.
func (s *ImportService) insertWithRetry(campaignID int, row importRow) (bool, error) {
	tok, err := s.Tokens.Issue()
	if err != nil {
		return false, err
	}

	err = s.TargetRepo.Insert(&model.Target{
		CampaignID: campaignID,
		Name:       row.name,
		Email:      row.email,
		Token:      tok,
	})
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, appErrors.ErrDuplicateToken) {
		return false, err
	}

	tok, err = s.Tokens.IssueLong()
	if err != nil {
		return false, err
	}

	err = s.TargetRepo.Insert(&model.Target{
		CampaignID: campaignID,
		Name:       row.name,
		Email:      row.email,
		Token:      tok,
	})
	if err == nil {
		return true, nil
	}
	if errors.Is(err, appErrors.ErrDuplicateToken) {
		log.Printf("⚠️ dropping target %s: token collided twice\n", row.email)
		return false, nil
	}
	return false, err
}
