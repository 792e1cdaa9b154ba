package coupons

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

const couponColumns = `id, code, name, discount_type, discount_value, min_spend, starts_at, expires_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]models.Coupon, error) {
	query := `SELECT ` + couponColumns + ` FROM coupons ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.Coupon, 0)
	for rows.Next() {
		var c models.Coupon
		if err := rows.Scan(&c.ID, &c.Code, &c.Name, &c.DiscountType, &c.DiscountValue,
			&c.MinSpend, &c.StartsAt, &c.ExpiresAt); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*models.Coupon, error) {
	query :=
		`SELECT ` + couponColumns + ` FROM coupons
		 WHERE code = $1
		 `

	c := &models.Coupon{}
	err := r.db.QueryRowContext(ctx, query, code).Scan(&c.ID, &c.Code, &c.Name, &c.DiscountType,
		&c.DiscountValue, &c.MinSpend, &c.StartsAt, &c.ExpiresAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return c, nil
}
