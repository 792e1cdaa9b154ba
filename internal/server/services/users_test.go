package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/models"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/memrepo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func validInput() RegisterInput {
	return RegisterInput{
		UserName: "A",
		Email:    "a@x.com",
		Gender:   "f",
		Password: "12345678",
		Birthday: time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestRegister_OnceThenConflict(t *testing.T) {
	store := memrepo.New()
	s := newUserService(t, store, time.Now)

	u, token, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, u.ID)
	assert.NotEqual(t, "12345678", u.PasswordHash)

	_, _, err = s.Register(context.Background(), validInput())
	assert.ErrorIs(t, err, common.ErrAlreadyExists)
}

func TestRegister_StoresBcryptHash(t *testing.T) {
	store := memrepo.New()
	s := newUserService(t, store, time.Now)

	u, _, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	stored, err := store.Users(nil).GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("12345678")))
}

func TestRegister_LookupError(t *testing.T) {
	store := memrepo.New()
	store.FailWith(errBoom{})
	s := newUserService(t, store, time.Now)

	_, _, err := s.Register(context.Background(), validInput())
	if err == nil || !regexp.MustCompile(`error looking up user: .*boom`).MatchString(err.Error()) {
		t.Fatalf("expected wrapped lookup error, got %v", err)
	}
}

func TestLogin_TokenValidForOneHour(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }

	store := memrepo.New()
	s := newUserService(t, store, clock)

	_, _, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	u, token, err := s.Login(context.Background(), "a@x.com", "12345678")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)

	verifier := auth.NewTokenIssuer([]byte("k"), time.Hour, auth.WithClock(clock))

	now = now.Add(30 * time.Minute)
	claims, err := verifier.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "a@x.com", claims.UserEmail)

	now = now.Add(31 * time.Minute)
	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	store := memrepo.New()
	s := newUserService(t, store, time.Now)

	_, _, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	_, _, errWrong := s.Login(context.Background(), "a@x.com", "wrong-password")
	_, _, errUnknown := s.Login(context.Background(), "ghost@x.com", "12345678")

	assert.ErrorIs(t, errWrong, common.ErrorUnauthorized)
	assert.ErrorIs(t, errUnknown, common.ErrorUnauthorized)
	assert.Equal(t, errWrong.Error(), errUnknown.Error())
}

func TestLogin_FreshTokenEachTime(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	store := memrepo.New()
	s := newUserService(t, store, func() time.Time { return now })

	_, first, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	now = now.Add(time.Second)
	_, second, err := s.Login(context.Background(), "a@x.com", "12345678")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestLogin_InternalError(t *testing.T) {
	store := memrepo.New()
	store.FailWith(errBoom{})
	s := newUserService(t, store, time.Now)

	_, _, err := s.Login(context.Background(), "a@x.com", "x")
	assert.False(t, errors.Is(err, common.ErrorUnauthorized))
	assert.ErrorIs(t, err, errBoom{})
}

func TestUpdateInformation_PartialUpdate(t *testing.T) {
	store := memrepo.New()
	s := newUserService(t, store, time.Now)

	u, _, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	phone := "0911222333"
	got, err := s.UpdateInformation(context.Background(), u.ID, &models.UserUpdate{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "A", got.UserName)
	assert.Equal(t, "a@x.com", got.Email)
	require.NotNil(t, got.Birthday)
	assert.True(t, got.Birthday.Equal(validInput().Birthday))
	require.NotNil(t, got.Phone)
	assert.Equal(t, phone, *got.Phone)

	got, err = s.UpdateInformation(context.Background(), u.ID, &models.UserUpdate{})
	require.NoError(t, err)
	assert.Nil(t, got.Phone)
	assert.Equal(t, "A", got.UserName)
}

func TestUpdateInformation_NotFound(t *testing.T) {
	s := newUserService(t, memrepo.New(), time.Now)

	_, err := s.UpdateInformation(context.Background(), "ghost", &models.UserUpdate{})
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLookups(t *testing.T) {
	store := memrepo.New()
	s := newUserService(t, store, time.Now)

	u, _, err := s.Register(context.Background(), validInput())
	require.NoError(t, err)

	emails, err := s.ListEmails(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a@x.com"}, emails)

	got, err := s.GetUser(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	id, err := s.FindUserID(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, id)

	_, err = s.FindUserID(context.Background(), "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}
