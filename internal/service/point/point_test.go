package point

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	points   []models.Point
	allCalls int
}

func (r *fakeRepo) Create(_ context.Context, p *models.Point) error {
	p.ID = int64(len(r.points) + 1)
	r.points = append(r.points, *p)
	return nil
}

func (r *fakeRepo) Get(_ context.Context, id int64) (*models.Point, error) {
	for _, p := range r.points {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, types.ErrPointNotFound
}

func (r *fakeRepo) List(context.Context, models.Filters) ([]models.Point, models.Metadata, error) {
	return r.points, models.Metadata{}, nil
}

func (r *fakeRepo) All(context.Context) ([]models.Point, error) {
	r.allCalls++
	return append([]models.Point(nil), r.points...), nil
}

func (r *fakeRepo) Update(context.Context, *models.Point) error { return nil }

func (r *fakeRepo) Delete(context.Context, int64) error { return nil }

func ptr(f float64) *float64 { return &f }

func point(id int64, name string, lat, lon *float64) models.Point {
	return models.Point{ID: id, Name: name, Latitude: lat, Longitude: lon}
}

func newService(t *testing.T, repo Repo, ttl time.Duration) *Service {
	t.Helper()
	s := New(repo, changes.Nop{}, ttl, logger.InitLogger("test", logger.LevelError))
	t.Cleanup(s.Close)
	return s
}

func TestNearest(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{
		point(1, "Usaquén", ptr(4.6097), ptr(-74.0817)),
		point(2, "Medellín", ptr(6.2442), ptr(-75.5812)),
	}}
	s := newService(t, repo, 0)

	got, err := s.Nearest(context.Background(), locator.Coordinate{Latitude: 4.7110, Longitude: -74.0721})
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Nearest.ID)
	assert.InDelta(t, 11.31, got.DistanceKm, 0.5)
	assert.Empty(t, got.SkippedPointIDs)
}

func TestNearestSkipsPointsWithoutCoordinates(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{
		point(1, "imported", nil, ptr(-74.0)),
		point(2, "Medellín", ptr(6.2442), ptr(-75.5812)),
		point(3, "broken", ptr(math.NaN()), ptr(-74.0)),
	}}
	s := newService(t, repo, 0)

	got, err := s.Nearest(context.Background(), locator.Coordinate{Latitude: 4.7110, Longitude: -74.0721})
	require.NoError(t, err)

	assert.Equal(t, int64(2), got.Nearest.ID)
	assert.Equal(t, []int64{1, 3}, got.SkippedPointIDs)
}

func TestNearestNoPoints(t *testing.T) {
	for name, points := range map[string][]models.Point{
		"empty table":    nil,
		"no coordinates": {point(1, "imported", nil, nil)},
	} {
		t.Run(name, func(t *testing.T) {
			s := newService(t, &fakeRepo{points: points}, 0)

			_, err := s.Nearest(context.Background(), locator.Coordinate{Latitude: 0, Longitude: 0})
			assert.ErrorIs(t, err, types.ErrNoPoints)
		})
	}
}

func TestNearestInvalidQuery(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{point(1, "a", ptr(0), ptr(0))}}
	s := newService(t, repo, 0)

	_, err := s.Nearest(context.Background(), locator.Coordinate{Latitude: math.Inf(1), Longitude: 0})
	assert.ErrorIs(t, err, locator.ErrInvalidInput)
	assert.Zero(t, repo.allCalls)
}

func TestNearestTieKeepsFirst(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{
		point(10, "east", ptr(0), ptr(1)),
		point(20, "north", ptr(1), ptr(0)),
	}}
	s := newService(t, repo, 0)

	got, err := s.Nearest(context.Background(), locator.Coordinate{})
	require.NoError(t, err)
	assert.Equal(t, int64(10), got.Nearest.ID)
	assert.InDelta(t, 111.19, got.DistanceKm, 0.01)
}

func TestCandidateCache(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{point(1, "a", ptr(0), ptr(0))}}
	s := newService(t, repo, time.Minute)
	ctx := context.Background()

	_, err := s.Nearest(ctx, locator.Coordinate{})
	require.NoError(t, err)
	_, err = s.Nearest(ctx, locator.Coordinate{})
	require.NoError(t, err)
	assert.Equal(t, 1, repo.allCalls)

	// writes drop the cached set
	require.NoError(t, s.Create(ctx, &models.Point{Name: "b", Latitude: ptr(1), Longitude: ptr(1)}))

	got, err := s.Nearest(ctx, locator.Coordinate{Latitude: 1, Longitude: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, repo.allCalls)
	assert.Equal(t, "b", got.Nearest.Name)
}

func TestCacheDisabled(t *testing.T) {
	repo := &fakeRepo{points: []models.Point{point(1, "a", ptr(0), ptr(0))}}
	s := newService(t, repo, 0)

	for range 3 {
		_, err := s.All(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, 3, repo.allCalls)
}

// blockingRepo holds the first All call open until release is closed.
type blockingRepo struct {
	fakeRepo
	started chan struct{}
	release chan struct{}
	blocked bool
}

func (r *blockingRepo) All(ctx context.Context) ([]models.Point, error) {
	points, err := r.fakeRepo.All(ctx)
	if !r.blocked {
		r.blocked = true
		close(r.started)
		<-r.release
	}
	return points, err
}

func TestCacheIgnoresLoadRacingAWrite(t *testing.T) {
	repo := &blockingRepo{
		fakeRepo: fakeRepo{points: []models.Point{point(1, "a", ptr(0), ptr(0))}},
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
	s := newService(t, repo, time.Minute)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.All(ctx)
		done <- err
	}()

	<-repo.started
	require.NoError(t, s.Create(ctx, &models.Point{Name: "b", Latitude: ptr(10), Longitude: ptr(10)}))
	close(repo.release)
	require.NoError(t, <-done)

	got, err := s.Nearest(ctx, locator.Coordinate{Latitude: 10, Longitude: 10})
	require.NoError(t, err)
	assert.Equal(t, "b", got.Nearest.Name)
	assert.InDelta(t, 0, got.DistanceKm, 1e-9)
}
