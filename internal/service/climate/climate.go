package climate

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/trm"
)

type Repo interface {
	Create(ctx context.Context, c *models.ClimateRecord) error
	CreateBatch(ctx context.Context, records []models.ClimateRecord) error
	Get(ctx context.Context, id int64) (*models.ClimateRecord, error)
	List(ctx context.Context, pointID int64, filters models.Filters) ([]models.ClimateRecord, models.Metadata, error)
	ListByPoint(ctx context.Context, pointID int64) ([]models.ClimateRecord, error)
	Update(ctx context.Context, c *models.ClimateRecord) error
	Delete(ctx context.Context, id int64) error
}

// PointFinder resolves the point a history is requested for.
type PointFinder interface {
	Get(ctx context.Context, id int64) (*models.Point, error)
	Nearest(ctx context.Context, query locator.Coordinate) (models.NearestPoint, error)
}

// Service manages historical climate records.
type Service struct {
	repo     Repo
	points   PointFinder
	notifier changes.Notifier
	trm      trm.TxManager
	l        logger.Logger
}

func New(repo Repo, points PointFinder, notifier changes.Notifier, trm trm.TxManager, l logger.Logger) *Service {
	return &Service{
		repo:     repo,
		points:   points,
		notifier: notifier,
		trm:      trm,
		l:        l,
	}
}

func (s *Service) Create(ctx context.Context, c *models.ClimateRecord) error {
	if err := s.repo.Create(ctx, c); err != nil {
		return err
	}
	s.notifier.Notify(ctx, models.NewChange(types.TableClimateRecords, types.OpInsert, c.ID, c))
	return nil
}

// CreateBulk stores all records or none of them.
func (s *Service) CreateBulk(ctx context.Context, records []models.ClimateRecord) error {
	if len(records) == 0 {
		return nil
	}

	fn := func(ctx context.Context) error {
		return s.repo.CreateBatch(ctx, records)
	}
	if err := s.trm.Do(ctx, fn); err != nil {
		return err
	}

	s.l.Info(ctx, "climate records imported", "count", len(records))
	for i := range records {
		s.notifier.Notify(ctx, models.NewChange(types.TableClimateRecords, types.OpInsert, records[i].ID, &records[i]))
	}
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.ClimateRecord, error) {
	return s.repo.Get(ctx, id)
}

// List returns a page of records, of every point when pointID is zero.
func (s *Service) List(ctx context.Context, pointID int64, filters models.Filters) ([]models.ClimateRecord, models.Metadata, error) {
	return s.repo.List(ctx, pointID, filters)
}

func (s *Service) Update(ctx context.Context, c *models.ClimateRecord) error {
	if err := s.repo.Update(ctx, c); err != nil {
		return err
	}
	s.notifier.Notify(ctx, models.NewChange(types.TableClimateRecords, types.OpUpdate, c.ID, c))
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, models.NewChange(types.TableClimateRecords, types.OpDelete, id, nil))
	return nil
}

// History returns the records of a point. A zero year means every year.
// The point and its records are read in one read-only transaction.
func (s *Service) History(ctx context.Context, pointID int64, year int) (models.ClimateHistory, error) {
	var (
		point   *models.Point
		records []models.ClimateRecord
	)

	err := s.trm.DoReadOnly(ctx, func(ctx context.Context) error {
		var err error
		if point, err = s.points.Get(ctx, pointID); err != nil {
			return err
		}

		if records, err = s.repo.ListByPoint(ctx, pointID); err != nil {
			return wrap.Error(ctx, fmt.Errorf("failed to load climate records: %w", err))
		}
		return nil
	})
	if err != nil {
		return models.ClimateHistory{}, err
	}

	return models.ClimateHistory{
		Point:   *point,
		Year:    year,
		Records: FilterByYear(records, year),
	}, nil
}

// NearestHistory returns the records of the point closest to query.
func (s *Service) NearestHistory(ctx context.Context, query locator.Coordinate, year int) (models.ClimateHistory, error) {
	nearest, err := s.points.Nearest(ctx, query)
	if err != nil {
		return models.ClimateHistory{}, err
	}

	records, err := s.repo.ListByPoint(ctx, nearest.Nearest.ID)
	if err != nil {
		return models.ClimateHistory{}, wrap.Error(ctx, fmt.Errorf("failed to load climate records: %w", err))
	}

	return models.ClimateHistory{
		Point:      nearest.Nearest,
		DistanceKm: nearest.DistanceKm,
		Year:       year,
		Records:    FilterByYear(records, year),
	}, nil
}

// FilterByYear keeps the records dated in year, preserving order. Zero keeps everything.
func FilterByYear(records []models.ClimateRecord, year int) []models.ClimateRecord {
	if year == 0 {
		return records
	}

	out := make([]models.ClimateRecord, 0, len(records))
	for _, r := range records {
		if r.RecordDate.Year() == year {
			out = append(out, r)
		}
	}
	return out
}
