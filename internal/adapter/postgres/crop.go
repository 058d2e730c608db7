package repo

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CropRepo struct {
	db *pgxpool.Pool
}

func NewCropRepo(db *pgxpool.Pool) *CropRepo {
	return &CropRepo{
		db: db,
	}
}

func (r *CropRepo) Create(ctx context.Context, c *models.Crop) error {
	const op = "CropRepo.Create"
	query := `
		INSERT INTO crops (name, variety, cycle_days)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query, c.Name, c.Variety, c.CycleDays).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrCropNotFound, nil)))
	}

	return nil
}

func (r *CropRepo) Get(ctx context.Context, id int64) (*models.Crop, error) {
	const op = "CropRepo.Get"
	query := `
		SELECT id, name, variety, cycle_days, created_at, updated_at
		FROM crops
		WHERE id = $1`

	c := &models.Crop{}
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Variety, &c.CycleDays, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrCropNotFound, nil)))
	}

	return c, nil
}

func (r *CropRepo) List(ctx context.Context, filters models.Filters) ([]models.Crop, models.Metadata, error) {
	const op = "CropRepo.List"
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), id, name, variety, cycle_days, created_at, updated_at
		FROM crops
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var (
		total int
		crops = []models.Crop{}
	)
	for rows.Next() {
		var c models.Crop
		if err := rows.Scan(&total, &c.ID, &c.Name, &c.Variety, &c.CycleDays, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		crops = append(crops, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return crops, models.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

func (r *CropRepo) Update(ctx context.Context, c *models.Crop) error {
	const op = "CropRepo.Update"
	query := `
		UPDATE crops
		SET name = $2, variety = $3, cycle_days = $4, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query, c.ID, c.Name, c.Variety, c.CycleDays).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrCropNotFound, nil)))
	}

	return nil
}

func (r *CropRepo) Delete(ctx context.Context, id int64) error {
	const op = "CropRepo.Delete"

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM crops WHERE id = $1`, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapDeleteError(err, types.ErrCropNotFound)))
	}
	if tag.RowsAffected() == 0 {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrCropNotFound))
	}

	return nil
}
