package repo

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PointRepo struct {
	db *pgxpool.Pool
}

func NewPointRepo(db *pgxpool.Pool) *PointRepo {
	return &PointRepo{
		db: db,
	}
}

const pointColumns = `id, name, latitude, longitude, elevation_m, created_at, updated_at`

func pointFields(p *models.Point) []any {
	return []any{&p.ID, &p.Name, &p.Latitude, &p.Longitude, &p.ElevationM, &p.CreatedAt, &p.UpdatedAt}
}

func (r *PointRepo) Create(ctx context.Context, p *models.Point) error {
	const op = "PointRepo.Create"
	query := `
		INSERT INTO points (name, latitude, longitude, elevation_m)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query, p.Name, p.Latitude, p.Longitude, p.ElevationM).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPointNotFound, nil)))
	}

	return nil
}

func (r *PointRepo) Get(ctx context.Context, id int64) (*models.Point, error) {
	const op = "PointRepo.Get"
	query := `SELECT ` + pointColumns + ` FROM points WHERE id = $1`

	p := &models.Point{}
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(pointFields(p)...); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPointNotFound, nil)))
	}

	return p, nil
}

func (r *PointRepo) List(ctx context.Context, filters models.Filters) ([]models.Point, models.Metadata, error) {
	const op = "PointRepo.List"
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM points
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, pointColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var (
		total  int
		points = []models.Point{}
	)
	for rows.Next() {
		var p models.Point
		if err := rows.Scan(append([]any{&total}, pointFields(&p)...)...); err != nil {
			return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return points, models.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

// All returns every point ordered by id, the candidate set of a nearest point lookup.
func (r *PointRepo) All(ctx context.Context) ([]models.Point, error) {
	const op = "PointRepo.All"
	query := `SELECT ` + pointColumns + ` FROM points ORDER BY id`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	points := []models.Point{}
	for rows.Next() {
		var p models.Point
		if err := rows.Scan(pointFields(&p)...); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return points, nil
}

func (r *PointRepo) Update(ctx context.Context, p *models.Point) error {
	const op = "PointRepo.Update"
	query := `
		UPDATE points
		SET name = $2, latitude = $3, longitude = $4, elevation_m = $5, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query, p.ID, p.Name, p.Latitude, p.Longitude, p.ElevationM).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPointNotFound, nil)))
	}

	return nil
}

// Delete removes a point together with its climate records.
func (r *PointRepo) Delete(ctx context.Context, id int64) error {
	const op = "PointRepo.Delete"

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM points WHERE id = $1`, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapDeleteError(err, types.ErrPointNotFound)))
	}
	if tag.RowsAffected() == 0 {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrPointNotFound))
	}

	return nil
}
