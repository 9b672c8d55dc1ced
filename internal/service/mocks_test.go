package service_test

import (
	"time"

	appErrors "github.com/unclebandit/phishsim-backend/internal/errors"
	"github.com/unclebandit/phishsim-backend/internal/model"
)

// --- Mock repositories ---

type mockCampaignRepo struct {
	campaigns map[int]*model.Campaign
	createErr error
}

func newMockCampaignRepo(campaigns ...*model.Campaign) *mockCampaignRepo {
	repo := &mockCampaignRepo{campaigns: map[int]*model.Campaign{}}
	for _, c := range campaigns {
		repo.campaigns[c.ID] = c
	}
	return repo
}

func (m *mockCampaignRepo) Create(c *model.Campaign) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = len(m.campaigns) + 1
	c.CreatedAt = time.Now().UTC()
	m.campaigns[c.ID] = c
	return nil
}

func (m *mockCampaignRepo) GetByID(id int) (*model.Campaign, error) {
	c, ok := m.campaigns[id]
	if !ok {
		return nil, appErrors.NewCampaignNotFound(id)
	}
	return c, nil
}

func (m *mockCampaignRepo) ListWithStats() ([]model.CampaignOverview, error) {
	list := []model.CampaignOverview{}
	for _, c := range m.campaigns {
		list = append(list, model.CampaignOverview{Campaign: *c})
	}
	return list, nil
}

type mockTargetRepo struct {
	targets  []*model.Target
	byToken  map[string]*model.TargetWithCampaign
	taken    map[string]bool
	listRows []model.TargetClicks
}

func newMockTargetRepo() *mockTargetRepo {
	return &mockTargetRepo{
		byToken: map[string]*model.TargetWithCampaign{},
		taken:   map[string]bool{},
	}
}

func (m *mockTargetRepo) Insert(t *model.Target) error {
	if m.taken[t.Token] {
		return appErrors.ErrDuplicateToken
	}
	m.taken[t.Token] = true
	t.ID = len(m.targets) + 1
	t.CreatedAt = time.Now().UTC()
	m.targets = append(m.targets, t)
	return nil
}

func (m *mockTargetRepo) GetByToken(token string) (*model.TargetWithCampaign, error) {
	t, ok := m.byToken[token]
	if !ok {
		return nil, appErrors.ErrTargetNotFound
	}
	return t, nil
}

func (m *mockTargetRepo) ListByCampaign(campaignID int) ([]model.TargetClicks, error) {
	return m.listRows, nil
}

type mockClickRepo struct {
	clicks       []*model.Click
	totalTargets int
	totalClicks  int
}

func (m *mockClickRepo) Insert(c *model.Click) error {
	c.ID = len(m.clicks) + 1
	m.clicks = append(m.clicks, c)
	return nil
}

func (m *mockClickRepo) CountForTarget(targetID int) (int, error) {
	count := 0
	for _, c := range m.clicks {
		if c.TargetID == targetID {
			count++
		}
	}
	return count, nil
}

func (m *mockClickRepo) CampaignTotals(campaignID int) (int, int, error) {
	return m.totalTargets, m.totalClicks, nil
}

// --- Mock token issuer ---

// scriptedIssuer returns a fixed sequence of tokens.
type scriptedIssuer struct {
	tokens     []string
	longTokens []string
	longCalls  int
}

func (s *scriptedIssuer) Issue() (string, error) {
	tok := s.tokens[0]
	s.tokens = s.tokens[1:]
	return tok, nil
}

func (s *scriptedIssuer) IssueLong() (string, error) {
	tok := s.longTokens[0]
	s.longTokens = s.longTokens[1:]
	s.longCalls++
	return tok, nil
}

// --- Mock queue ---

type mockQueue struct {
	published []any
}

func (m *mockQueue) Publish(topic string, payload any) error {
	m.published = append(m.published, payload)
	return nil
}

func (m *mockQueue) Subscribe(topic string, handler func(payload any) error) error {
	return nil
}
