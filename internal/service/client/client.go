package client

import (
	"context"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
)

type Repo interface {
	Create(ctx context.Context, c *models.Client) error
	Get(ctx context.Context, id int64) (*models.Client, error)
	List(ctx context.Context, filters models.Filters) ([]models.Client, models.Metadata, error)
	Update(ctx context.Context, c *models.Client) error
	Delete(ctx context.Context, id int64) error
}

// Service manages insured clients.
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

func (s *Service) Create(ctx context.Context, c *models.Client) error {
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.l.Info(ctx, "client created", "client_id", c.ID)
	s.notifier.Notify(ctx, models.NewChange(types.TableClients, types.OpInsert, c.ID, c))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Client, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters models.Filters) ([]models.Client, models.Metadata, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, c *models.Client) error {
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.notifier.Notify(ctx, models.NewChange(types.TableClients, types.OpUpdate, c.ID, c))
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.l.Info(ctx, "client deleted", "client_id", id)
	s.notifier.Notify(ctx, models.NewChange(types.TableClients, types.OpDelete, id, nil))
	return nil
}
