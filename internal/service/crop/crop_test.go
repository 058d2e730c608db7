package crop

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

func (r *fakeRepo) Create(_ context.Context, c *models.Crop) error {
	if r.err != nil {
		return r.err
	}
	c.ID = 7
	return nil
}

func (r *fakeRepo) Get(context.Context, int64) (*models.Crop, error) { return nil, r.err }

func (r *fakeRepo) List(context.Context, models.Filters) ([]models.Crop, models.Metadata, error) {
	return nil, models.Metadata{}, r.err
}

func (r *fakeRepo) Update(context.Context, *models.Crop) error { return r.err }

func (r *fakeRepo) Delete(context.Context, int64) error { return r.err }

type recorder []models.Change

func (r *recorder) Notify(_ context.Context, c models.Change) { *r = append(*r, c) }

func TestWrites(t *testing.T) {
	tests := []struct {
		name    string
		repoErr error
		write   func(ctx context.Context, s *Service) error
		wantOp  types.ChangeOp
		wantErr error
	}{
		{
			name:   "create",
			write:  func(ctx context.Context, s *Service) error { return s.Create(ctx, &models.Crop{Name: "maize"}) },
			wantOp: types.OpInsert,
		},
		{
			name:   "update",
			write:  func(ctx context.Context, s *Service) error { return s.Update(ctx, &models.Crop{ID: 7, Name: "rice"}) },
			wantOp: types.OpUpdate,
		},
		{
			name:   "delete",
			write:  func(ctx context.Context, s *Service) error { return s.Delete(ctx, 7) },
			wantOp: types.OpDelete,
		},
		{
			name:    "update unknown crop",
			repoErr: types.ErrCropNotFound,
			write:   func(ctx context.Context, s *Service) error { return s.Update(ctx, &models.Crop{ID: 99, Name: "rice"}) },
			wantErr: types.ErrCropNotFound,
		},
		{
			name:    "delete referenced crop",
			repoErr: types.ErrStillReferenced,
			write:   func(ctx context.Context, s *Service) error { return s.Delete(ctx, 7) },
			wantErr: types.ErrStillReferenced,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var changes recorder
			s := New(&fakeRepo{err: tt.repoErr}, &changes, logger.InitLogger("test", logger.LevelError))

			err := tt.write(context.Background(), s)

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, changes)
				return
			}

			require.NoError(t, err)
			require.Len(t, changes, 1)
			assert.Equal(t, tt.wantOp, changes[0].Op)
			assert.Equal(t, types.TableCrops, changes[0].Table)
			assert.Equal(t, int64(7), changes[0].RecordID)
		})
	}
}
