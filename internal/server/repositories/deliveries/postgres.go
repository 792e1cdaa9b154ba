package deliveries

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

const deliveryColumns = `id, owner, is_default, recipient_name, recipient_phone, address, city, created_at, updated_at`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// EnsureDefault creates an empty default record for owner unless one exists.
// The partial unique index on (owner) WHERE is_default makes concurrent
// callers converge on a single row.
func (r *PostgresRepository) EnsureDefault(ctx context.Context, owner string) error {
	query :=
		`INSERT INTO deliveries (owner, is_default)
		 VALUES ($1, TRUE)
		 ON CONFLICT (owner) WHERE is_default DO NOTHING
		 `

	if _, err := r.db.ExecContext(ctx, query, owner); err != nil {
		return dbx.MapError(err)
	}

	return nil
}

// ListByOwner returns all records of owner, the default one first.
func (r *PostgresRepository) ListByOwner(ctx context.Context, owner string) ([]models.Delivery, error) {
	query :=
		`SELECT ` + deliveryColumns + ` FROM deliveries
		 WHERE owner = $1
		 ORDER BY is_default DESC, id
		 `

	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.Delivery, 0)
	for rows.Next() {
		var d models.Delivery
		if err := rows.Scan(&d.ID, &d.Owner, &d.IsDefault, &d.RecipientName, &d.RecipientPhone,
			&d.Address, &d.City, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, d)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

// Update overwrites the recipient and address of a record owned by d.Owner.
// Records of other owners are reported as common.ErrorNotFound.
func (r *PostgresRepository) Update(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	query :=
		`UPDATE deliveries
		 SET recipient_name = $3, recipient_phone = $4, address = $5, city = $6, updated_at = now()
		 WHERE id = $1 AND owner = $2
		 RETURNING ` + deliveryColumns

	out := &models.Delivery{}
	err := r.db.QueryRowContext(ctx, query, d.ID, d.Owner, d.RecipientName, d.RecipientPhone, d.Address, d.City).
		Scan(&out.ID, &out.Owner, &out.IsDefault, &out.RecipientName, &out.RecipientPhone,
			&out.Address, &out.City, &out.CreatedAt, &out.UpdatedAt)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return out, nil
}
