package point

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/Temutjin2k/agro-insurance/pkg/metrics"
	"github.com/jellydator/ttlcache/v3"
)

type Repo interface {
	Create(ctx context.Context, p *models.Point) error
	Get(ctx context.Context, id int64) (*models.Point, error)
	List(ctx context.Context, filters models.Filters) ([]models.Point, models.Metadata, error)
	All(ctx context.Context) ([]models.Point, error)
	Update(ctx context.Context, p *models.Point) error
	Delete(ctx context.Context, id int64) error
}

const candidatesKey = "points"

// Service manages georeferenced points and answers nearest point lookups.
type Service struct {
	repo     Repo
	notifier changes.Notifier
	cache    *ttlcache.Cache[string, []models.Point] // nil when caching is disabled
	l        logger.Logger

	// gen is bumped on every point write; a load only fills the cache when no
	// write happened while it ran.
	mu  sync.Mutex
	gen uint64
}

// New creates the service. A positive cacheTTL keeps the candidate set of nearest point
// lookups in memory for that long; any point write drops it.
func New(repo Repo, notifier changes.Notifier, cacheTTL time.Duration, l logger.Logger) *Service {
	s := &Service{
		repo:     repo,
		notifier: notifier,
		l:        l,
	}

	if cacheTTL > 0 {
		s.cache = ttlcache.New(
			ttlcache.WithTTL[string, []models.Point](cacheTTL),
			ttlcache.WithDisableTouchOnHit[string, []models.Point](),
		)
		go s.cache.Start()
	}

	return s
}

// Close stops the cache janitor.
func (s *Service) Close() {
	if s.cache != nil {
		s.cache.Stop()
	}
}

func (s *Service) Create(ctx context.Context, p *models.Point) error {
	if err := s.repo.Create(ctx, p); err != nil {
		return err
	}
	s.invalidate()

	s.l.Info(ctx, "point created", "point_id", p.ID)
	s.notifier.Notify(ctx, models.NewChange(types.TablePoints, types.OpInsert, p.ID, p))
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Point, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filters models.Filters) ([]models.Point, models.Metadata, error) {
	return s.repo.List(ctx, filters)
}

// All returns every point, served from the cache when it is warm.
// The returned slice is shared and must not be modified.
func (s *Service) All(ctx context.Context) ([]models.Point, error) {
	if s.cache != nil {
		if item := s.cache.Get(candidatesKey); item != nil {
			metrics.RecordPointCache(true)
			return item.Value(), nil
		}
		metrics.RecordPointCache(false)
	}

	gen := s.generation()

	points, err := s.repo.All(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.mu.Lock()
		if s.gen == gen {
			s.cache.Set(candidatesKey, points, ttlcache.DefaultTTL)
		}
		s.mu.Unlock()
	}
	return points, nil
}

func (s *Service) Update(ctx context.Context, p *models.Point) error {
	if err := s.repo.Update(ctx, p); err != nil {
		return err
	}
	s.invalidate()

	s.notifier.Notify(ctx, models.NewChange(types.TablePoints, types.OpUpdate, p.ID, p))
	return nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.invalidate()

	s.l.Info(ctx, "point deleted", "point_id", id)
	s.notifier.Notify(ctx, models.NewChange(types.TablePoints, types.OpDelete, id, nil))
	return nil
}

func (s *Service) invalidate() {
	if s.cache == nil {
		return
	}
	s.mu.Lock()
	s.gen++
	s.cache.Delete(candidatesKey)
	s.mu.Unlock()
}

func (s *Service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

// Nearest returns the point closest to query.
//
// Points without a complete, finite coordinate cannot be ranked; they are left out
// and reported in SkippedPointIDs. types.ErrNoPoints is returned when nothing is left
// to compare against.
func (s *Service) Nearest(ctx context.Context, query locator.Coordinate) (models.NearestPoint, error) {
	ctx = wrap.WithAction(ctx, types.ActionNearestPointLookup)

	if !query.Valid() {
		return models.NearestPoint{}, wrap.Error(ctx, fmt.Errorf("query: %w", locator.ErrInvalidInput))
	}

	points, err := s.All(ctx)
	if err != nil {
		return models.NearestPoint{}, wrap.Error(ctx, fmt.Errorf("failed to load points: %w", err))
	}

	candidates, skipped := Candidates(points)
	if len(skipped) > 0 {
		s.l.Warn(ctx, "points without coordinates skipped", "skipped_point_ids", skipped)
	}

	metrics.ObserveNearestCandidates(len(candidates))

	res, err := locator.LocateNearest(query, candidates)
	if err != nil {
		if errors.Is(err, locator.ErrNoCandidates) {
			return models.NearestPoint{}, wrap.Error(ctx, types.ErrNoPoints)
		}
		return models.NearestPoint{}, wrap.Error(ctx, err)
	}

	s.l.Debug(ctx, "nearest point found",
		"point_id", res.Nearest.Payload.ID,
		"distance_km", res.DistanceKm,
		"candidates", len(candidates),
	)

	return models.NearestPoint{
		Nearest:         res.Nearest.Payload,
		DistanceKm:      res.DistanceKm,
		SkippedPointIDs: skipped,
	}, nil
}

// Candidates turns points into locator candidates. IDs of points lacking a finite
// latitude or longitude are returned separately, in input order.
func Candidates(points []models.Point) ([]locator.Candidate[models.Point], []int64) {
	candidates := make([]locator.Candidate[models.Point], 0, len(points))
	var skipped []int64

	for _, p := range points {
		c, ok := Coordinate(p)
		if !ok {
			skipped = append(skipped, p.ID)
			continue
		}
		candidates = append(candidates, locator.Candidate[models.Point]{Coordinate: c, Payload: p})
	}

	return candidates, skipped
}

// Coordinate returns the location of p, false when it has none.
func Coordinate(p models.Point) (locator.Coordinate, bool) {
	if p.Latitude == nil || p.Longitude == nil {
		return locator.Coordinate{}, false
	}
	c := locator.Coordinate{Latitude: *p.Latitude, Longitude: *p.Longitude}
	if !c.Valid() {
		return locator.Coordinate{}, false
	}
	return c, true
}
