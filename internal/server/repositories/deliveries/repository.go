package deliveries

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type Repository interface {
	EnsureDefault(ctx context.Context, owner string) error
	ListByOwner(ctx context.Context, owner string) ([]models.Delivery, error)
	Update(ctx context.Context, d *models.Delivery) (*models.Delivery, error)
}
