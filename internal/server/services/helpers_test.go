package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/memrepo"
	"golang.org/x/crypto/bcrypt"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newUserService(t *testing.T, store *memrepo.Store, now func() time.Time) *UserService {
	t.Helper()
	db, _ := newSQLMockDB(t)
	cfg := &config.Config{SecretKey: "k", AccessTokenValidityDuration: time.Hour, BcryptCost: bcrypt.MinCost}
	tokens := auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, auth.WithClock(now))
	return NewUserService(db, store, tokens, cfg)
}

type fakeSigner struct {
	err error
}

func (f fakeSigner) URL(_ context.Context, key string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "signed://" + key, nil
}
