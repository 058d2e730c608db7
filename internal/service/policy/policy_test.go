package policy

import (
	"context"
	"testing"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	created []models.Policy
}

func (r *fakeRepo) Create(_ context.Context, p *models.Policy) error {
	p.ID = int64(len(r.created) + 1)
	r.created = append(r.created, *p)
	return nil
}

func (r *fakeRepo) Get(context.Context, int64) (*models.Policy, error) {
	return nil, types.ErrPolicyNotFound
}

func (r *fakeRepo) List(context.Context, int64, models.Filters) ([]models.Policy, models.Metadata, error) {
	return nil, models.Metadata{}, nil
}

func (r *fakeRepo) Update(context.Context, *models.Policy) error { return nil }

func (r *fakeRepo) Delete(context.Context, int64) error { return nil }

type changeLog []models.Change

func (c *changeLog) Notify(_ context.Context, change models.Change) { *c = append(*c, change) }

func newPolicy(start, end string) *models.Policy {
	return &models.Policy{
		PolicyNumber:  "POL-1",
		ClientID:      1,
		CropID:        1,
		InsuredAreaHa: 10,
		InsuredAmount: 5000,
		Premium:       250,
		StartDate:     mustDate(start),
		EndDate:       mustDate(end),
	}
}

func mustDate(s string) models.Date {
	d, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateDefaultsToActive(t *testing.T) {
	repo := &fakeRepo{}
	var log changeLog
	s := New(repo, &log, logger.InitLogger("test", logger.LevelError))

	p := newPolicy("2024-01-01", "2024-12-31")
	require.NoError(t, s.Create(context.Background(), p))

	assert.Equal(t, types.PolicyActive, p.Status)
	assert.Equal(t, int64(1), p.ID)
	require.Len(t, log, 1)
	assert.Equal(t, types.TablePolicies, log[0].Table)
	assert.Equal(t, types.OpInsert, log[0].Op)
}

func TestCreateRejectsInvalidPolicies(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *models.Policy)
	}{
		{"end before start", func(p *models.Policy) { p.EndDate = mustDate("2023-12-31") }},
		{"end equals start", func(p *models.Policy) { p.EndDate = p.StartDate }},
		{"unknown status", func(p *models.Policy) { p.Status = "PAUSED" }},
		{"negative premium", func(p *models.Policy) { p.Premium = -1 }},
		{"missing start", func(p *models.Policy) { p.StartDate = models.Date{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			var log changeLog
			s := New(repo, &log, logger.InitLogger("test", logger.LevelError))

			p := newPolicy("2024-01-01", "2024-12-31")
			tt.mutate(p)

			err := s.Create(context.Background(), p)
			assert.ErrorIs(t, err, types.ErrInvalidValue)
			assert.Empty(t, repo.created)
			assert.Empty(t, log)
		})
	}
}
