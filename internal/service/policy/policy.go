package policy

import (
	"context"
	"fmt"
	"slices"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
)

type Repo interface {
	Create(ctx context.Context, p *models.Policy) error
	Get(ctx context.Context, id int64) (*models.Policy, error)
	List(ctx context.Context, clientID int64, filters models.Filters) ([]models.Policy, models.Metadata, error)
	Update(ctx context.Context, p *models.Policy) error
	Delete(ctx context.Context, id int64) error
}

// Service manages insurance policies. Unknown client, crop or point references
// are rejected by the database and surface as types.ErrInvalidReference.
type Service struct {
	repo     Repo
	notifier changes.Notifier
	l        logger.Logger
}

func New(repo Repo, notifier changes.Notifier, l logger.Logger) *Service {
	return &Service{
		repo:     repo,
		notifier: notifier,
		l:        l,
	}
}

func (s *Service) Create(ctx context.Context, p *models.Policy) error {
	if p.Status == "" {
		p.Status = types.PolicyActive
	}
	if err := check(p); err != nil {
		return wrap.Error(ctx, err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}

	s.l.Info(ctx, "policy created", "policy_id", p.ID, "policy_number", p.PolicyNumber)
	s.notifier.Notify(ctx, models.NewChange(types.TablePolicies, types.OpInsert, p.ID, p))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Policy, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of policies, all of them when clientID is zero.
func (s *Service) List(ctx context.Context, clientID int64, filters models.Filters) ([]models.Policy, models.Metadata, error) {
	return s.repo.List(ctx, clientID, filters)
}

func (s *Service) Update(ctx context.Context, p *models.Policy) error {
	if p.Status == "" {
		p.Status = types.PolicyActive
	}
	if err := check(p); err != nil {
		return wrap.Error(ctx, err)
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}

	s.notifier.Notify(ctx, models.NewChange(types.TablePolicies, types.OpUpdate, p.ID, p))
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.l.Info(ctx, "policy deleted", "policy_id", id)
	s.notifier.Notify(ctx, models.NewChange(types.TablePolicies, types.OpDelete, id, nil))
	return nil
}

// check enforces the invariants the storage layer relies on.
func check(p *models.Policy) error {
	switch {
	case !slices.Contains(types.PolicyStatuses, p.Status):
		return fmt.Errorf("%w: unknown policy status %q", types.ErrInvalidValue, p.Status)
	case p.StartDate.IsZero() || p.EndDate.IsZero():
		return fmt.Errorf("%w: start_date and end_date are required", types.ErrInvalidValue)
	case !p.EndDate.After(p.StartDate.Time):
		return fmt.Errorf("%w: end_date must be after start_date", types.ErrInvalidValue)
	case p.InsuredAreaHa < 0 || p.InsuredAmount < 0 || p.Premium < 0:
		return fmt.Errorf("%w: amounts must not be negative", types.ErrInvalidValue)
	}
	return nil
}
