package orders

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type Repository interface {
	GetOrder(ctx context.Context, purchaseID string) (*models.Order, error)
	GetCustomer(ctx context.Context, customerID string) (*models.Customer, error)
	GetDeliveryDetail(ctx context.Context, deliveryID string) (*models.DeliveryDetail, error)
	GetPayment(ctx context.Context, payID string) (*models.Payment, error)
	ListLines(ctx context.Context, purchaseID string) ([]models.OrderLine, error)
	ListPurchaseIDs(ctx context.Context, userID string) ([]string, error)
	IsReviewed(ctx context.Context, purchaseID string) (bool, error)
}
