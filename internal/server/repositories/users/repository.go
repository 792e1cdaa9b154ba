package users

import (
	"context"

	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
	ListEmails(ctx context.Context) ([]string, error)
	Update(ctx context.Context, userID string, upd *models.UserUpdate) (*models.User, error)
}
