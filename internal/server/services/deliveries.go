package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storefront/internal/dbx"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

type DeliveryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDeliveryService(db *sql.DB, m repomanager.RepositoryManager) *DeliveryService {
	return &DeliveryService{db: db, repomanager: m}
}

// GetOrCreate returns the delivery records of userID, creating the default
// one on first access. An unknown user yields common.ErrorNotFound.
func (s *DeliveryService) GetOrCreate(ctx context.Context, userID string) ([]models.Delivery, error) {
	if _, err := s.repomanager.Users(s.db).GetByID(ctx, userID); err != nil {
		return nil, err
	}

	var result []models.Delivery
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Deliveries(tx)

		if err := repo.EnsureDefault(ctx, userID); err != nil {
			return err
		}

		var err error
		result, err = repo.ListByOwner(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// Update overwrites an owned delivery record.
func (s *DeliveryService) Update(ctx context.Context, d *models.Delivery) (*models.Delivery, error) {
	return s.repomanager.Deliveries(s.db).Update(ctx, d)
}
