package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

type CouponService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewCouponService(db *sql.DB, m repomanager.RepositoryManager) *CouponService {
	return &CouponService{db: db, repomanager: m}
}

// List returns every coupon. No coupons at all is reported as
// common.ErrorNotFound, which storefront clients rely on.
func (s *CouponService) List(ctx context.Context) ([]models.Coupon, error) {
	coupons, err := s.repomanager.Coupons(s.db).List(ctx)
	if err != nil {
		return nil, err
	}
	if len(coupons) == 0 {
		return nil, common.ErrorNotFound
	}
	return coupons, nil
}

func (s *CouponService) Get(ctx context.Context, code string) (*models.Coupon, error) {
	return s.repomanager.Coupons(s.db).GetByCode(ctx, code)
}
