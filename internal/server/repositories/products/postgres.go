package products

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/jackc/pgx/v5/pgtype"
)

const productSelect = `SELECT p.product_id, p.category, p.name, p.description, p.original_price, p.sale_price,
		 ARRAY(SELECT i.image_path FROM product_images i
		       WHERE i.product_id = p.product_id ORDER BY i.position, i.id)
		 FROM products p`

type PostgresRepository struct {
	db    dbx.DBTX
	types *pgtype.Map
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db, types: pgtype.NewMap()}
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanProduct decodes the text[] image column through pgtype, since
// database/sql hands arrays over in their text form.
func (r *PostgresRepository) scanProduct(row rowScanner) (*models.Product, error) {
	p := &models.Product{}
	var images []string
	if err := row.Scan(&p.ID, &p.Category, &p.Name, &p.Description, &p.OriginalPrice, &p.SalePrice, r.types.SQLScanner(&images)); err != nil {
		return nil, err
	}
	if images == nil {
		images = []string{}
	}
	p.Images = images
	return p, nil
}

func (r *PostgresRepository) ListCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM products ORDER BY category`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, c)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) ListByCategory(ctx context.Context, category string) ([]models.Product, error) {
	query := productSelect + `
		 WHERE p.category = $1
		 ORDER BY p.product_id
		 `

	rows, err := r.db.QueryContext(ctx, query, category)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.Product, 0)
	for rows.Next() {
		p, err := r.scanProduct(rows)
		if err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, productID int64) (*models.Product, error) {
	query := productSelect + `
		 WHERE p.product_id = $1
		 `

	p, err := r.scanProduct(r.db.QueryRowContext(ctx, query, productID))
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}
