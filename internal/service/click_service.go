// internal/service/click_service.go
package service

import (
	"fmt"
	"log"
	"time"
	"unicode/utf8"

	"github.com/unclebandit/phishsim-backend/internal/model"
	"github.com/unclebandit/phishsim-backend/internal/queue"
	"github.com/unclebandit/phishsim-backend/internal/repository"
)

// maxUserAgentLen bounds the stored user-agent string, counted in
// characters, not bytes.
const maxUserAgentLen = 500

type ClickService struct {
	TargetRepo repository.TargetRepositoryInterface
	ClickRepo  repository.ClickRepositoryInterface
	Queue      queue.Queue
}

// ClickResult is what the notice page needs.
type ClickResult struct {
	CampaignName string
	RecordedAt   time.Time
}

// RecordClick resolves the token and appends one click. Every visit is
// recorded independently; there is no deduplication or rate limiting.
// Returns appErrors.ErrTargetNotFound for an unknown token, with nothing
// recorded.
func (s *ClickService) RecordClick(token, ip, userAgent string) (*ClickResult, error) {
	target, err := s.TargetRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}

	// Cutting mid-rune would store invalid UTF-8, which Postgres rejects.
	if utf8.RuneCountInString(userAgent) > maxUserAgentLen {
		userAgent = string([]rune(userAgent)[:maxUserAgentLen])
	}

	click := &model.Click{
		TargetID:  target.ID,
		ClickedAt: time.Now().UTC(),
		IP:        ip,
		UserAgent: userAgent,
	}
	if err := s.ClickRepo.Insert(click); err != nil {
		return nil, fmt.Errorf("record click: %w", err)
	}

	// Best-effort: a failed publish never fails the click.
	if s.Queue != nil {
		event := queue.ClickEvent{
			TargetID:   target.ID,
			CampaignID: target.CampaignID,
			ClickedAt:  click.ClickedAt,
		}
		if err := s.Queue.Publish(queue.ClickEventsTopic, event); err != nil {
			log.Println("⚠️ failed to publish click event:", err)
		}
	}

	return &ClickResult{
		CampaignName: target.CampaignName,
		RecordedAt:   click.ClickedAt,
	}, nil
}
