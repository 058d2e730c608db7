package crop

import (
	"context"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
)

type Repo interface {
	Create(ctx context.Context, c *models.Crop) error
	Get(ctx context.Context, id int64) (*models.Crop, error)
	List(ctx context.Context, filters models.Filters) ([]models.Crop, models.Metadata, error)
	Update(ctx context.Context, c *models.Crop) error
	Delete(ctx context.Context, id int64) error
}

// Service manages crop types.
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

func (s *Service) Create(ctx context.Context, c *models.Crop) error {
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.l.Info(ctx, "crop created", "crop_id", c.ID)
	s.notifier.Notify(ctx, models.NewChange(types.TableCrops, types.OpInsert, c.ID, c))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Crop, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters models.Filters) ([]models.Crop, models.Metadata, error) {
	return s.repo.List(ctx, filters)
}

func (s *Service) Update(ctx context.Context, c *models.Crop) error {
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.notifier.Notify(ctx, models.NewChange(types.TableCrops, types.OpUpdate, c.ID, c))
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.l.Info(ctx, "crop deleted", "crop_id", id)
	s.notifier.Notify(ctx, models.NewChange(types.TableCrops, types.OpDelete, id, nil))
	return nil
}
