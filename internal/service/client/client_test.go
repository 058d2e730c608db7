package client

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
	err error
}

func (r *fakeRepo) Create(_ context.Context, c *models.Client) error {
	if r.err != nil {
		return r.err
	}
	c.ID = 11
	return nil
}

func (r *fakeRepo) Get(context.Context, int64) (*models.Client, error) { return nil, r.err }

func (r *fakeRepo) List(context.Context, models.Filters) ([]models.Client, models.Metadata, error) {
	return nil, models.Metadata{}, r.err
}

func (r *fakeRepo) Update(context.Context, *models.Client) error { return r.err }

func (r *fakeRepo) Delete(context.Context, int64) error { return r.err }

type recorder []models.Change

func (r *recorder) Notify(_ context.Context, c models.Change) { *r = append(*r, c) }

func TestWritesNotify(t *testing.T) {
	var changes recorder
	s := New(&fakeRepo{}, &changes, logger.InitLogger("test", logger.LevelError))
	ctx := context.Background()

	c := &models.Client{FullName: "Ana Gomez", DocumentID: "1020"}
	require.NoError(t, s.Create(ctx, c))
	require.NoError(t, s.Update(ctx, c))
	require.NoError(t, s.Delete(ctx, c.ID))

	require.Len(t, changes, 3)
	assert.Equal(t, []types.ChangeOp{types.OpInsert, types.OpUpdate, types.OpDelete},
		[]types.ChangeOp{changes[0].Op, changes[1].Op, changes[2].Op})
	for _, ch := range changes {
		assert.Equal(t, types.TableClients, ch.Table)
		assert.Equal(t, int64(11), ch.RecordID)
	}
}

func TestFailedWriteDoesNotNotify(t *testing.T) {
	var changes recorder
	s := New(&fakeRepo{err: types.ErrDocumentTaken}, &changes, logger.InitLogger("test", logger.LevelError))

	err := s.Create(context.Background(), &models.Client{FullName: "x", DocumentID: "1"})
	require.ErrorIs(t, err, types.ErrDocumentTaken)
	assert.Empty(t, changes)
}
