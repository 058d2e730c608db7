package repo

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClimateRepo struct {
	db *pgxpool.Pool
}

func NewClimateRepo(db *pgxpool.Pool) *ClimateRepo {
	return &ClimateRepo{
		db: db,
	}
}

const climateColumns = `id, point_id, record_date, temperature_avg_c, temperature_min_c, temperature_max_c,
		precipitation_mm, humidity_pct, created_at`

func climateFields(c *models.ClimateRecord) []any {
	return []any{
		&c.ID, &c.PointID, &c.RecordDate.Time,
		&c.TemperatureAvgC, &c.TemperatureMinC, &c.TemperatureMaxC,
		&c.PrecipitationMm, &c.HumidityPct, &c.CreatedAt,
	}
}

const insertClimate = `
	INSERT INTO climate_records (point_id, record_date, temperature_avg_c, temperature_min_c, temperature_max_c,
		precipitation_mm, humidity_pct)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id, created_at`

func climateArgs(c *models.ClimateRecord) []any {
	return []any{
		c.PointID, c.RecordDate.Time,
		c.TemperatureAvgC, c.TemperatureMinC, c.TemperatureMaxC,
		c.PrecipitationMm, c.HumidityPct,
	}
}

func (r *ClimateRepo) Create(ctx context.Context, c *models.ClimateRecord) error {
	const op = "ClimateRepo.Create"

	if err := TxorDB(ctx, r.db).QueryRow(ctx, insertClimate, climateArgs(c)...).Scan(&c.ID, &c.CreatedAt); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClimateRecordNotFound, nil)))
	}

	return nil
}

// CreateBatch inserts records in a single round trip. Run it inside a transaction to make it atomic.
func (r *ClimateRepo) CreateBatch(ctx context.Context, records []models.ClimateRecord) error {
	const op = "ClimateRepo.CreateBatch"

	batch := &pgx.Batch{}
	for i := range records {
		rec := &records[i]
		batch.Queue(insertClimate, climateArgs(rec)...).QueryRow(func(row pgx.Row) error {
			return row.Scan(&rec.ID, &rec.CreatedAt)
		})
	}

	if err := TxorDB(ctx, r.db).SendBatch(ctx, batch).Close(); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClimateRecordNotFound, nil)))
	}

	return nil
}

func (r *ClimateRepo) Get(ctx context.Context, id int64) (*models.ClimateRecord, error) {
	const op = "ClimateRepo.Get"
	query := `SELECT ` + climateColumns + ` FROM climate_records WHERE id = $1`

	c := &models.ClimateRecord{}
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(climateFields(c)...); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClimateRecordNotFound, nil)))
	}

	return c, nil
}

// List returns a page of records. A non-zero pointID restricts it to that point.
func (r *ClimateRepo) List(ctx context.Context, pointID int64, filters models.Filters) ([]models.ClimateRecord, models.Metadata, error) {
	const op = "ClimateRepo.List"
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM climate_records
		WHERE ($1::bigint = 0 OR point_id = $1)
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, climateColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, pointID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var (
		total   int
		records = []models.ClimateRecord{}
	)
	for rows.Next() {
		var c models.ClimateRecord
		if err := rows.Scan(append([]any{&total}, climateFields(&c)...)...); err != nil {
			return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return records, models.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

// ListByPoint returns every record of a point ordered by date.
func (r *ClimateRepo) ListByPoint(ctx context.Context, pointID int64) ([]models.ClimateRecord, error) {
	const op = "ClimateRepo.ListByPoint"
	query := `SELECT ` + climateColumns + ` FROM climate_records WHERE point_id = $1 ORDER BY record_date, id`

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, pointID)
	if err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	records := []models.ClimateRecord{}
	for rows.Next() {
		var c models.ClimateRecord
		if err := rows.Scan(climateFields(&c)...); err != nil {
			return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		records = append(records, c)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return records, nil
}

func (r *ClimateRepo) Update(ctx context.Context, c *models.ClimateRecord) error {
	const op = "ClimateRepo.Update"
	query := `
		UPDATE climate_records
		SET point_id = $2, record_date = $3, temperature_avg_c = $4, temperature_min_c = $5, temperature_max_c = $6,
			precipitation_mm = $7, humidity_pct = $8
		WHERE id = $1
		RETURNING created_at`

	args := append([]any{c.ID}, climateArgs(c)...)
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, args...).Scan(&c.CreatedAt); err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClimateRecordNotFound, nil)))
	}

	return nil
}

func (r *ClimateRepo) Delete(ctx context.Context, id int64) error {
	const op = "ClimateRepo.Delete"

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM climate_records WHERE id = $1`, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapDeleteError(err, types.ErrClimateRecordNotFound)))
	}
	if tag.RowsAffected() == 0 {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrClimateRecordNotFound))
	}

	return nil
}
