package httpapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/storefront/internal/server/auth"
)

func TestRegister_ThenConflict(t *testing.T) {
	e := newTestEnv(t)

	r := e.do(t, http.MethodPost, "/users/register", registerA, nil)
	require.Equal(t, http.StatusCreated, r.status, "body: %s", r.body)

	var out map[string]any
	r.decode(t, &out)
	assert.NotEmpty(t, out["token"])
	assert.NotEmpty(t, out["message"])
	user, ok := out["newUser"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "passwordHash")
	assert.NotContains(t, string(r.body), "$2a$")

	r = e.do(t, http.MethodPost, "/users/register", registerA, nil)
	assert.Equal(t, http.StatusConflict, r.status)
}

func TestRegister_ValidationEnvelope(t *testing.T) {
	e := newTestEnv(t)
	// validation must reject before touching storage
	e.store.FailWith(errBoom{})

	r := e.do(t, http.MethodPost, "/users/register",
		`{"username":"","email":"nope","gender":"x","password":"short","birthday":"yesterday"}`, nil)
	require.Equal(t, http.StatusBadRequest, r.status)

	var out errorBody
	r.decode(t, &out)
	assert.Equal(t, "validation failed", out.Error)

	fields := make([]string, 0, len(out.Details))
	for _, d := range out.Details {
		fields = append(fields, d.Field)
		assert.NotEmpty(t, d.Message)
	}
	assert.Equal(t, []string{"birthday", "email", "gender", "password", "username"}, fields)
}

func TestRegister_MalformedJSON(t *testing.T) {
	e := newTestEnv(t)

	r := e.do(t, http.MethodPost, "/users/register", `{"username":`, nil)
	require.Equal(t, http.StatusBadRequest, r.status)

	var out errorBody
	r.decode(t, &out)
	require.Len(t, out.Details, 1)
	assert.Equal(t, "body", out.Details[0].Field)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := e.registerA(t)

	r := e.do(t, http.MethodPost, "/users/login", `{"email":"a@x.com","password":"12345678"}`, nil)
	require.Equal(t, http.StatusOK, r.status, "body: %s", r.body)

	var out struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"userId"`
		} `json:"user"`
	}
	r.decode(t, &out)
	assert.Equal(t, userID, out.User.ID)

	claims, err := e.tokens.Verify(out.Token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestLogin_UnknownEmailLooksLikeWrongPassword(t *testing.T) {
	e := newTestEnv(t)
	e.registerA(t)

	wrong := e.do(t, http.MethodPost, "/users/login", `{"email":"a@x.com","password":"wrong-pass"}`, nil)
	unknown := e.do(t, http.MethodPost, "/users/login", `{"email":"b@x.com","password":"12345678"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, wrong.status)
	assert.Equal(t, http.StatusUnauthorized, unknown.status)
	assert.JSONEq(t, string(wrong.body), string(unknown.body))
}

func TestLogin_MissingFields(t *testing.T) {
	e := newTestEnv(t)

	r := e.do(t, http.MethodPost, "/users/login", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestProfile_TokenStates(t *testing.T) {
	e := newTestEnv(t)
	userID, token := e.registerA(t)

	stale := auth.NewTokenIssuer([]byte(testSecret), time.Hour,
		auth.WithClock(func() time.Time { return time.Now().Add(-2 * time.Hour) }))
	expired, err := stale.Issue(userID, "a@x.com")
	require.NoError(t, err)

	forged, err := auth.NewTokenIssuer([]byte("other"), time.Hour).Issue(userID, "a@x.com")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"other scheme", "Basic " + token, http.StatusUnauthorized},
		{"empty token", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer not-a-jwt", http.StatusForbidden},
		{"wrong key", "Bearer " + forged, http.StatusForbidden},
		{"expired", "Bearer " + expired, http.StatusForbidden},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lower-case scheme", "bearer " + token, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}

			r := e.do(t, http.MethodGet, "/users/profile", "", headers)
			require.Equal(t, tt.status, r.status, "body: %s", r.body)

			if tt.status == http.StatusOK {
				var out struct {
					User auth.Claims `json:"user"`
				}
				r.decode(t, &out)
				assert.Equal(t, userID, out.User.UserID)
				assert.Equal(t, "a@x.com", out.User.UserEmail)
			}
		})
	}
}

func TestLookups(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := e.registerA(t)

	r := e.do(t, http.MethodGet, "/users/email", "", nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.JSONEq(t, `["a@x.com"]`, string(r.body))

	r = e.do(t, http.MethodGet, "/users/singleUserData", "", nil)
	assert.Equal(t, http.StatusBadRequest, r.status)

	r = e.do(t, http.MethodGet, "/users/singleUserData?userId=ghost", "", nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = e.do(t, http.MethodGet, "/users/singleUserData?userId="+userID, "", nil)
	require.Equal(t, http.StatusOK, r.status)
	assert.Contains(t, string(r.body), `"email":"a@x.com"`)

	r = e.do(t, http.MethodPost, "/users/find", `{"email":"a@x.com"}`, nil)
	require.Equal(t, http.StatusOK, r.status)
	var id string
	r.decode(t, &id)
	assert.Equal(t, userID, id)

	r = e.do(t, http.MethodPost, "/users/find", `{"email":"b@x.com"}`, nil)
	assert.Equal(t, http.StatusNotFound, r.status)

	r = e.do(t, http.MethodPost, "/users/find", `{}`, nil)
	assert.Equal(t, http.StatusBadRequest, r.status)
}

func TestUpdateInformation(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := e.registerA(t)
	uid := map[string]string{"uid": userID}

	r := e.do(t, http.MethodPut, "/updateInformation", `{"username":"B"}`, nil)
	assert.Equal(t, http.StatusBadRequest, r.status, "uid header is required")

	r = e.do(t, http.MethodPut, "/updateInformation",
		`{"username":"B","phone":"0912345678","from_store":"Taipei","mobile_phone":0}`, uid)
	require.Equal(t, http.StatusOK, r.status, "body: %s", r.body)

	var out map[string]any
	r.decode(t, &out)
	assert.Equal(t, "B", out["username"])
	assert.Equal(t, "a@x.com", out["email"], "absent email stays unchanged")
	assert.Equal(t, "0912345678", out["phone"])
	assert.Equal(t, "Taipei", out["fromStore"])
	assert.Nil(t, out["mobilePhone"])
	assert.NotNil(t, out["birthday"], "absent birthday stays unchanged")

	// omitted contact fields are cleared, null username keeps the old one
	r = e.do(t, http.MethodPut, "/updateInformation", `{"username":null,"birthday":"null"}`, uid)
	require.Equal(t, http.StatusOK, r.status, "body: %s", r.body)
	out = nil
	r.decode(t, &out)
	assert.Equal(t, "B", out["username"])
	assert.Nil(t, out["phone"])
	assert.Nil(t, out["fromStore"])
	assert.Nil(t, out["birthday"])
}

func TestUpdateInformation_InvalidEmailWritesNothing(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := e.registerA(t)

	r := e.do(t, http.MethodPut, "/updateInformation", `{"username":"B","email":"not-an-email"}`,
		map[string]string{"uid": userID})
	require.Equal(t, http.StatusBadRequest, r.status)

	r = e.do(t, http.MethodGet, "/users/singleUserData?userId="+userID, "", nil)
	require.Equal(t, http.StatusOK, r.status)
	var out map[string]any
	r.decode(t, &out)
	assert.Equal(t, "A", out["username"])
}

func TestUpdateInformation_UnknownUser(t *testing.T) {
	e := newTestEnv(t)

	r := e.do(t, http.MethodPut, "/updateInformation", `{"username":"B"}`, map[string]string{"uid": "ghost"})
	assert.Equal(t, http.StatusNotFound, r.status)
}

func TestInternalErrorIsGeneric(t *testing.T) {
	e := newTestEnv(t)
	e.store.FailWith(errBoom{})

	r := e.do(t, http.MethodGet, "/users/email", "", nil)
	require.Equal(t, http.StatusInternalServerError, r.status)
	assert.JSONEq(t, `{"message":"internal server error"}`, string(r.body))
}

func TestUpdateInformation_EmptyBodyClearsContacts(t *testing.T) {
	e := newTestEnv(t)
	userID, _ := e.registerA(t)
	uid := map[string]string{"uid": userID}

	r := e.do(t, http.MethodPut, "/updateInformation", `{"phone":1e3,"introduced_by":"friend"}`, uid)
	require.Equal(t, http.StatusOK, r.status, "body: %s", r.body)
	var out map[string]any
	r.decode(t, &out)
	assert.Equal(t, "1000", out["phone"])
	assert.Equal(t, "friend", out["introducedBy"])

	r = e.do(t, http.MethodPut, "/updateInformation", "", uid)
	require.Equal(t, http.StatusOK, r.status, "body: %s", r.body)
	out = nil
	r.decode(t, &out)
	assert.Nil(t, out["phone"])
	assert.Nil(t, out["introducedBy"])
	assert.Equal(t, "A", out["username"])
	assert.Equal(t, "a@x.com", out["email"])
}

func TestRegister_EmptyBodyIsValidationError(t *testing.T) {
	e := newTestEnv(t)

	r := e.do(t, http.MethodPost, "/users/register", "", nil)
	require.Equal(t, http.StatusBadRequest, r.status)

	var out errorBody
	r.decode(t, &out)
	assert.Len(t, out.Details, 5)
}
