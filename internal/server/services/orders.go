package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

type OrderService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageSigner
}

func NewOrderService(db *sql.DB, m repomanager.RepositoryManager, images ImageSigner) *OrderService {
	return &OrderService{db: db, repomanager: m, images: images}
}

// Details collects an order with its customer, delivery, payment and
// product lines. An unknown purchase yields common.ErrorNotFound; missing
// related rows are left nil.
func (s *OrderService) Details(ctx context.Context, purchaseID string) (*models.OrderDetails, error) {
	repo := s.repomanager.Orders(s.db)

	order, err := repo.GetOrder(ctx, purchaseID)
	if err != nil {
		return nil, err
	}

	details := &models.OrderDetails{OrderInfo: *order}

	if details.CustomerInfo, err = optional(repo.GetCustomer(ctx, order.CustomerID)); err != nil {
		return nil, err
	}
	if details.DeliveryInfo, err = optional(repo.GetDeliveryDetail(ctx, order.DeliveryID)); err != nil {
		return nil, err
	}
	if order.PayID != "" {
		if details.PaymentInfo, err = optional(repo.GetPayment(ctx, order.PayID)); err != nil {
			return nil, err
		}
	}

	lines, err := repo.ListLines(ctx, purchaseID)
	if err != nil {
		return nil, err
	}
	for i := range lines {
		if lines[i].ImageKey == "" {
			continue
		}
		if lines[i].ImageURL, err = s.images.URL(ctx, lines[i].ImageKey); err != nil {
			return nil, fmt.Errorf("error signing image url: %w", err)
		}
	}
	details.ProductInfo = lines

	return details, nil
}

// PurchaseIDs lists the purchases of userID, newest first.
func (s *OrderService) PurchaseIDs(ctx context.Context, userID string) ([]string, error) {
	return s.repomanager.Orders(s.db).ListPurchaseIDs(ctx, userID)
}

func (s *OrderService) IsReviewed(ctx context.Context, purchaseID string) (bool, error) {
	return s.repomanager.Orders(s.db).IsReviewed(ctx, purchaseID)
}

// optional turns common.ErrorNotFound into a nil result.
func optional[T any](v *T, err error) (*T, error) {
	if errors.Is(err, common.ErrorNotFound) {
		return nil, nil
	}
	return v, err
}
