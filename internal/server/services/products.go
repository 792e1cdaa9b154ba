package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
)

type ProductService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	images      ImageSigner
}

func NewProductService(db *sql.DB, m repomanager.RepositoryManager, images ImageSigner) *ProductService {
	return &ProductService{db: db, repomanager: m, images: images}
}

func (s *ProductService) Categories(ctx context.Context) ([]string, error) {
	return s.repomanager.Products(s.db).ListCategories(ctx)
}

// ByCategory returns the products of category with resolved image URLs.
func (s *ProductService) ByCategory(ctx context.Context, category string) ([]models.Product, error) {
	products, err := s.repomanager.Products(s.db).ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	for i := range products {
		if err := s.resolveImages(ctx, &products[i]); err != nil {
			return nil, err
		}
	}

	return products, nil
}

func (s *ProductService) Get(ctx context.Context, productID int64) (*models.Product, error) {
	p, err := s.repomanager.Products(s.db).GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if err := s.resolveImages(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

func (s *ProductService) resolveImages(ctx context.Context, p *models.Product) error {
	p.ImageURLs = make([]string, 0, len(p.Images))
	for _, key := range p.Images {
		url, err := s.images.URL(ctx, key)
		if err != nil {
			return fmt.Errorf("error signing image url: %w", err)
		}
		p.ImageURLs = append(p.ImageURLs, url)
	}
	return nil
}
