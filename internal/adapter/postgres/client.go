package repo

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClientRepo struct {
	db *pgxpool.Pool
}

func NewClientRepo(db *pgxpool.Pool) *ClientRepo {
	return &ClientRepo{
		db: db,
	}
}

const clientColumns = `id, full_name, document_id, email, phone, address, created_at, updated_at`

func scanClient(row scanner, c *models.Client) error {
	return row.Scan(&c.ID, &c.FullName, &c.DocumentID, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt)
}

func (r *ClientRepo) Create(ctx context.Context, c *models.Client) error {
	const op = "ClientRepo.Create"
	query := `
		INSERT INTO clients (full_name, document_id, email, phone, address)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		c.FullName, c.DocumentID, c.Email, c.Phone, c.Address,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClientNotFound, types.ErrDocumentTaken)))
	}

	return nil
}

func (r *ClientRepo) Get(ctx context.Context, id int64) (*models.Client, error) {
	const op = "ClientRepo.Get"
	query := `SELECT ` + clientColumns + ` FROM clients WHERE id = $1`

	c := &models.Client{}
	if err := scanClient(TxorDB(ctx, r.db).QueryRow(ctx, query, id), c); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClientNotFound, nil)))
	}

	return c, nil
}

func (r *ClientRepo) List(ctx context.Context, filters models.Filters) ([]models.Client, models.Metadata, error) {
	const op = "ClientRepo.List"
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM clients
		ORDER BY %s %s, id ASC
		LIMIT $1 OFFSET $2`, clientColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var (
		total   int
		clients = []models.Client{}
	)
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&total, &c.ID, &c.FullName, &c.DocumentID, &c.Email, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		clients = append(clients, c)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return clients, models.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

func (r *ClientRepo) Update(ctx context.Context, c *models.Client) error {
	const op = "ClientRepo.Update"
	query := `
		UPDATE clients
		SET full_name = $2, document_id = $3, email = $4, phone = $5, address = $6, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		c.ID, c.FullName, c.DocumentID, c.Email, c.Phone, c.Address,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrClientNotFound, types.ErrDocumentTaken)))
	}

	return nil
}

func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	const op = "ClientRepo.Delete"

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapDeleteError(err, types.ErrClientNotFound)))
	}
	if tag.RowsAffected() == 0 {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrClientNotFound))
	}

	return nil
}
