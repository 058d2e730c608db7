package climate

import (
	"context"
	"errors"
	"testing"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	"github.com/Temutjin2k/agro-insurance/internal/service/changes"
	"github.com/Temutjin2k/agro-insurance/internal/service/locator"
	"github.com/Temutjin2k/agro-insurance/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(id int64, date string) models.ClimateRecord {
	d, err := models.ParseDate(date)
	if err != nil {
		panic(err)
	}
	return models.ClimateRecord{ID: id, PointID: 1, RecordDate: d}
}

type fakeRepo struct {
	records  []models.ClimateRecord
	batchErr error
}

func (r *fakeRepo) Create(_ context.Context, c *models.ClimateRecord) error {
	c.ID = int64(len(r.records) + 1)
	r.records = append(r.records, *c)
	return nil
}

func (r *fakeRepo) CreateBatch(_ context.Context, records []models.ClimateRecord) error {
	if r.batchErr != nil {
		return r.batchErr
	}
	for i := range records {
		records[i].ID = int64(len(r.records) + 1)
		r.records = append(r.records, records[i])
	}
	return nil
}

func (r *fakeRepo) Get(context.Context, int64) (*models.ClimateRecord, error) {
	return nil, types.ErrClimateRecordNotFound
}

func (r *fakeRepo) List(context.Context, int64, models.Filters) ([]models.ClimateRecord, models.Metadata, error) {
	return r.records, models.Metadata{}, nil
}

func (r *fakeRepo) ListByPoint(_ context.Context, pointID int64) ([]models.ClimateRecord, error) {
	var out []models.ClimateRecord
	for _, rec := range r.records {
		if rec.PointID == pointID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (r *fakeRepo) Update(context.Context, *models.ClimateRecord) error { return nil }

func (r *fakeRepo) Delete(context.Context, int64) error { return nil }

type fakePoints struct {
	nearest models.NearestPoint
	err     error
}

func (p *fakePoints) Get(_ context.Context, id int64) (*models.Point, error) {
	if id != p.nearest.Nearest.ID {
		return nil, types.ErrPointNotFound
	}
	return &p.nearest.Nearest, nil
}

func (p *fakePoints) Nearest(context.Context, locator.Coordinate) (models.NearestPoint, error) {
	return p.nearest, p.err
}

// inlineTx runs fn without a database.
type inlineTx struct{ calls int }

func (m *inlineTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

func (m *inlineTx) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type changeLog []models.Change

func (c *changeLog) Notify(_ context.Context, change models.Change) { *c = append(*c, change) }

func newService(repo Repo, points PointFinder, notifier changes.Notifier, tx *inlineTx) *Service {
	return New(repo, points, notifier, tx, logger.InitLogger("test", logger.LevelError))
}

func TestFilterByYear(t *testing.T) {
	records := []models.ClimateRecord{
		record(1, "2023-12-31"),
		record(2, "2024-01-01"),
		record(3, "2024-06-15"),
		record(4, "2025-01-01"),
	}

	got := FilterByYear(records, 2024)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(3), got[1].ID)

	assert.Len(t, FilterByYear(records, 0), 4)
	assert.Empty(t, FilterByYear(records, 1999))
}

func TestNearestHistory(t *testing.T) {
	repo := &fakeRepo{records: []models.ClimateRecord{record(1, "2023-05-01"), record(2, "2024-05-01")}}
	points := &fakePoints{nearest: models.NearestPoint{Nearest: models.Point{ID: 1, Name: "a"}, DistanceKm: 3.5}}
	s := newService(repo, points, changes.Nop{}, &inlineTx{})

	got, err := s.NearestHistory(context.Background(), locator.Coordinate{Latitude: 1, Longitude: 1}, 2024)
	require.NoError(t, err)

	assert.Equal(t, int64(1), got.Point.ID)
	assert.Equal(t, 3.5, got.DistanceKm)
	assert.Equal(t, 2024, got.Year)
	require.Len(t, got.Records, 1)
	assert.Equal(t, int64(2), got.Records[0].ID)
}

func TestNearestHistoryPropagatesLookupErrors(t *testing.T) {
	s := newService(&fakeRepo{}, &fakePoints{err: types.ErrNoPoints}, changes.Nop{}, &inlineTx{})

	_, err := s.NearestHistory(context.Background(), locator.Coordinate{}, 0)
	assert.ErrorIs(t, err, types.ErrNoPoints)
}

func TestHistoryUnknownPoint(t *testing.T) {
	points := &fakePoints{nearest: models.NearestPoint{Nearest: models.Point{ID: 1}}}
	s := newService(&fakeRepo{}, points, changes.Nop{}, &inlineTx{})

	_, err := s.History(context.Background(), 42, 0)
	assert.ErrorIs(t, err, types.ErrPointNotFound)
}

func TestCreateBulk(t *testing.T) {
	repo := &fakeRepo{}
	tx := &inlineTx{}
	var log changeLog
	s := newService(repo, &fakePoints{}, &log, tx)

	records := []models.ClimateRecord{record(0, "2024-01-01"), record(0, "2024-01-02")}
	require.NoError(t, s.CreateBulk(context.Background(), records))

	assert.Equal(t, 1, tx.calls)
	assert.Len(t, repo.records, 2)
	require.Len(t, log, 2)
	assert.Equal(t, records[1].ID, log[1].RecordID)
}

func TestCreateBulkFailureNotifiesNothing(t *testing.T) {
	repo := &fakeRepo{batchErr: errors.New("insert failed")}
	var log changeLog
	s := newService(repo, &fakePoints{}, &log, &inlineTx{})

	err := s.CreateBulk(context.Background(), []models.ClimateRecord{record(0, "2024-01-01")})
	require.Error(t, err)
	assert.Empty(t, log)
}
