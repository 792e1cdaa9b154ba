// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login, profile updates and the
// user lookup helpers.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// RegisterInput is a validated registration request.
type RegisterInput struct {
	UserName string
	Email    string
	Gender   string
	Password string
	Birthday time.Time
}

// UserService provides account operations:
// - Register: create users and issue their first token
// - Login: verify credentials and issue a fresh token
// - UpdateInformation: apply partial profile updates
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	tokens      *auth.TokenIssuer
	bcryptCost  int

	dummyOnce sync.Once
	dummyHash string
}

// NewUserService constructs a UserService using repositories, the token
// issuer and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, tokens *auth.TokenIssuer, cfg *config.Config) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		tokens:      tokens,
		bcryptCost:  cfg.BcryptCost,
	}
}

// Register creates a user and returns it with a freshly issued token.
// An already registered email yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	_, err := repo.GetByEmail(ctx, in.Email)
	if err == nil {
		return nil, "", common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, "", fmt.Errorf("error looking up user: %w", err)
	}

	password := []byte(in.Password)
	defer common.WipeByteArray(password)

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("error hashing password: %w", err)
	}

	birthday := in.Birthday
	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		UserName:     in.UserName,
		PasswordHash: hash,
		Gender:       in.Gender,
		Birthday:     &birthday,
	}

	// a concurrent registration of the same email surfaces here as ErrAlreadyExists
	u, err := repo.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("error creating user: %w", err)
	}

	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing token: %w", err)
	}

	return u, token, nil
}

// Login verifies the credentials and returns the user with a new token.
// Unknown email and wrong password both yield common.ErrorUnauthorized.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	repo := s.repomanager.Users(s.db)

	candidate := []byte(password)
	defer common.WipeByteArray(candidate)

	user, err := repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			// spend the same bcrypt time as for a real account
			_, _ = auth.ComparePasswordAndHash(candidate, s.getDummyHash())
			return nil, "", common.ErrorUnauthorized
		}
		return nil, "", fmt.Errorf("error looking up user: %w", err)
	}

	ok, err := auth.ComparePasswordAndHash(candidate, user.PasswordHash)
	if err != nil {
		return nil, "", fmt.Errorf("error checking password: %w", err)
	}
	if !ok {
		return nil, "", common.ErrorUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("error issuing token: %w", err)
	}

	return user, token, nil
}

// UpdateInformation applies a staged profile update in a single write.
func (s *UserService) UpdateInformation(ctx context.Context, userID string, upd *models.UserUpdate) (*models.User, error) {
	return s.repomanager.Users(s.db).Update(ctx, userID, upd)
}

func (s *UserService) ListEmails(ctx context.Context) ([]string, error) {
	return s.repomanager.Users(s.db).ListEmails(ctx)
}

func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.repomanager.Users(s.db).GetByID(ctx, userID)
}

// FindUserID returns the id of the user registered with email.
func (s *UserService) FindUserID(ctx context.Context, email string) (string, error) {
	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	return user.ID, nil
}

// --- helpers below ---

func (s *UserService) getDummyHash() string {
	s.dummyOnce.Do(func() {
		secret, err := common.MakeRandHexString(16)
		if err != nil {
			secret = "storefront-dummy-password"
		}
		s.dummyHash, _ = auth.HashPassword([]byte(secret), s.bcryptCost)
	})
	return s.dummyHash
}
