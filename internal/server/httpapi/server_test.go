package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrijs2005/storefront/internal/logging"
	"github.com/dmitrijs2005/storefront/internal/server/auth"
	"github.com/dmitrijs2005/storefront/internal/server/config"
	"github.com/dmitrijs2005/storefront/internal/server/repositories/memrepo"
	"github.com/dmitrijs2005/storefront/internal/server/services"
)

const testSecret = "test-secret"

type testEnv struct {
	srv    *HTTPServer
	store  *memrepo.Store
	mock   sqlmock.Sqlmock
	tokens *auth.TokenIssuer
}

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	cfg := &config.Config{
		EndpointAddrHTTP:            ":0",
		SecretKey:                   testSecret,
		AccessTokenValidityDuration: time.Hour,
		BcryptCost:                  bcrypt.MinCost,
		CORSOrigin:                  "http://localhost:5173",
		ImagesBaseURL:               "/images",
		ShutdownTimeout:             time.Second,
	}

	store := memrepo.New()
	tokens := auth.NewTokenIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration)
	images := services.NewPrefixImageSigner(cfg.ImagesBaseURL)

	svc := Services{
		Users:      services.NewUserService(db, store, tokens, cfg),
		Deliveries: services.NewDeliveryService(db, store),
		Coupons:    services.NewCouponService(db, store),
		Orders:     services.NewOrderService(db, store, images),
		Products:   services.NewProductService(db, store, images),
	}

	return &testEnv{
		srv:    NewHTTPServer(cfg, logging.Nop{}, tokens, svc),
		store:  store,
		mock:   mock,
		tokens: tokens,
	}
}

type response struct {
	status int
	header http.Header
	body   []byte
}

func (r response) decode(t *testing.T, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(r.body, dst), "body: %s", r.body)
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers map[string]string) response {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := e.srv.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{status: resp.StatusCode, header: resp.Header, body: b}
}

const registerA = `{"username":"A","email":"a@x.com","gender":"f","password":"12345678","birthday":"2000-01-01"}`

func (e *testEnv) registerA(t *testing.T) (userID, token string) {
	t.Helper()

	r := e.do(t, http.MethodPost, "/users/register", registerA, nil)
	require.Equal(t, http.StatusCreated, r.status, "body: %s", r.body)

	var out struct {
		Token   string `json:"token"`
		NewUser struct {
			ID string `json:"userId"`
		} `json:"newUser"`
	}
	r.decode(t, &out)

	return out.NewUser.ID, out.Token
}
