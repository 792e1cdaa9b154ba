package orders

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetOrder(ctx context.Context, purchaseID string) (*models.Order, error) {
	query :=
		`SELECT purchase_id, customer_id, delivery_id, delivery_way, delivery_site, pay_way, COALESCE(pay_id, '')
		 FROM purchase_orders
		 WHERE purchase_id = $1
		 `

	o := &models.Order{}
	err := r.db.QueryRowContext(ctx, query, purchaseID).
		Scan(&o.PurchaseID, &o.CustomerID, &o.DeliveryID, &o.DeliveryWay, &o.DeliverySite, &o.PayWay, &o.PayID)
	if err != nil {
		return nil, dbx.MapError(err)
	}

	return o, nil
}

func (r *PostgresRepository) GetCustomer(ctx context.Context, customerID string) (*models.Customer, error) {
	query :=
		`SELECT name, phone, gender FROM customers
		 WHERE customer_id = $1
		 `

	c := &models.Customer{}
	if err := r.db.QueryRowContext(ctx, query, customerID).Scan(&c.Name, &c.Phone, &c.Gender); err != nil {
		return nil, dbx.MapError(err)
	}

	return c, nil
}

func (r *PostgresRepository) GetDeliveryDetail(ctx context.Context, deliveryID string) (*models.DeliveryDetail, error) {
	query :=
		`SELECT recipient_name, recipient_phone, address, city FROM delivery_details
		 WHERE delivery_id = $1
		 `

	d := &models.DeliveryDetail{}
	if err := r.db.QueryRowContext(ctx, query, deliveryID).
		Scan(&d.RecipientName, &d.RecipientPhone, &d.Address, &d.City); err != nil {
		return nil, dbx.MapError(err)
	}

	return d, nil
}

func (r *PostgresRepository) GetPayment(ctx context.Context, payID string) (*models.Payment, error) {
	query :=
		`SELECT card_last4, card_holder, expiry FROM payments
		 WHERE pay_id = $1
		 `

	p := &models.Payment{}
	if err := r.db.QueryRowContext(ctx, query, payID).Scan(&p.CardLast4, &p.CardHolder, &p.Expiry); err != nil {
		return nil, dbx.MapError(err)
	}

	return p, nil
}

// ListLines returns the purchased products of an order together with their
// catalog name, prices and first image key.
func (r *PostgresRepository) ListLines(ctx context.Context, purchaseID string) ([]models.OrderLine, error) {
	query :=
		`SELECT pp.product_id, pp.quantity, pp.user_id, p.name, p.original_price, p.sale_price,
		 COALESCE((SELECT i.image_path FROM product_images i
		           WHERE i.product_id = pp.product_id
		           ORDER BY i.position, i.id LIMIT 1), '')
		 FROM purchase_products pp
		 JOIN products p ON p.product_id = pp.product_id
		 WHERE pp.purchase_id = $1
		 ORDER BY pp.id
		 `

	rows, err := r.db.QueryContext(ctx, query, purchaseID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]models.OrderLine, 0)
	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ProductID, &l.Quantity, &l.UserID, &l.ProductName,
			&l.OriginalPrice, &l.SalePrice, &l.ImageKey); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, l)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

// ListPurchaseIDs returns the distinct purchases of a user, newest first.
func (r *PostgresRepository) ListPurchaseIDs(ctx context.Context, userID string) ([]string, error) {
	query :=
		`SELECT purchase_id FROM purchase_products
		 WHERE user_id = $1
		 GROUP BY purchase_id
		 ORDER BY MAX(id) DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, dbx.MapError(err)
	}
	defer rows.Close()

	result := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, dbx.MapError(err)
		}
		result = append(result, id)
	}

	if err := rows.Err(); err != nil {
		return nil, dbx.MapError(err)
	}

	return result, nil
}

func (r *PostgresRepository) IsReviewed(ctx context.Context, purchaseID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM reviews WHERE purchase_id = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, purchaseID).Scan(&exists); err != nil {
		return false, dbx.MapError(err)
	}

	return exists, nil
}
