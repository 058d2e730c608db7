package repo

import (
	"context"
	"fmt"

	"github.com/Temutjin2k/agro-insurance/internal/domain/models"
	"github.com/Temutjin2k/agro-insurance/internal/domain/types"
	wrap "github.com/Temutjin2k/agro-insurance/pkg/logger/wrapper"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PolicyRepo struct {
	db *pgxpool.Pool
}

func NewPolicyRepo(db *pgxpool.Pool) *PolicyRepo {
	return &PolicyRepo{
		db: db,
	}
}

const policyColumns = `id, policy_number, client_id, crop_id, point_id, insured_area_ha, insured_amount, premium,
		start_date, end_date, status, created_at, updated_at`

func policyFields(p *models.Policy) []any {
	return []any{
		&p.ID, &p.PolicyNumber, &p.ClientID, &p.CropID, &p.PointID,
		&p.InsuredAreaHa, &p.InsuredAmount, &p.Premium,
		&p.StartDate.Time, &p.EndDate.Time, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	}
}

func (r *PolicyRepo) Create(ctx context.Context, p *models.Policy) error {
	const op = "PolicyRepo.Create"
	query := `
		INSERT INTO policies (policy_number, client_id, crop_id, point_id, insured_area_ha, insured_amount, premium,
			start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		p.PolicyNumber, p.ClientID, p.CropID, p.PointID,
		p.InsuredAreaHa, p.InsuredAmount, p.Premium,
		p.StartDate.Time, p.EndDate.Time, string(p.Status),
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPolicyNotFound, types.ErrPolicyNumberTaken)))
	}

	return nil
}

func (r *PolicyRepo) Get(ctx context.Context, id int64) (*models.Policy, error) {
	const op = "PolicyRepo.Get"
	query := `SELECT ` + policyColumns + ` FROM policies WHERE id = $1`

	p := &models.Policy{}
	if err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(policyFields(p)...); err != nil {
		return nil, wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPolicyNotFound, nil)))
	}

	return p, nil
}

// List returns a page of policies. A non-zero clientID restricts it to that client.
func (r *PolicyRepo) List(ctx context.Context, clientID int64, filters models.Filters) ([]models.Policy, models.Metadata, error) {
	const op = "PolicyRepo.List"
	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM policies
		WHERE ($1::bigint = 0 OR client_id = $1)
		ORDER BY %s %s, id ASC
		LIMIT $2 OFFSET $3`, policyColumns, filters.SortColumn(), filters.SortDirection())

	rows, err := TxorDB(ctx, r.db).Query(ctx, query, clientID, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}
	defer rows.Close()

	var (
		total    int
		policies = []models.Policy{}
	)
	for rows.Next() {
		var p models.Policy
		if err := rows.Scan(append([]any{&total}, policyFields(&p)...)...); err != nil {
			return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
		}
		policies = append(policies, p)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	return policies, models.CalculateMetadata(total, filters.Page, filters.PageSize), nil
}

func (r *PolicyRepo) Update(ctx context.Context, p *models.Policy) error {
	const op = "PolicyRepo.Update"
	query := `
		UPDATE policies
		SET policy_number = $2, client_id = $3, crop_id = $4, point_id = $5, insured_area_ha = $6,
			insured_amount = $7, premium = $8, start_date = $9, end_date = $10, status = $11, updated_at = now()
		WHERE id = $1
		RETURNING created_at, updated_at`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		p.ID, p.PolicyNumber, p.ClientID, p.CropID, p.PointID,
		p.InsuredAreaHa, p.InsuredAmount, p.Premium,
		p.StartDate.Time, p.EndDate.Time, string(p.Status),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapError(err, types.ErrPolicyNotFound, types.ErrPolicyNumberTaken)))
	}

	return nil
}

func (r *PolicyRepo) Delete(ctx context.Context, id int64) error {
	const op = "PolicyRepo.Delete"

	tag, err := TxorDB(ctx, r.db).Exec(ctx, `DELETE FROM policies WHERE id = $1`, id)
	if err != nil {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, mapDeleteError(err, types.ErrPolicyNotFound)))
	}
	if tag.RowsAffected() == 0 {
		return wrap.Error(ctx, fmt.Errorf("%s: %w", op, types.ErrPolicyNotFound))
	}

	return nil
}
