package endpoint_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ariebrainware/gym-portal/config"
	"github.com/ariebrainware/gym-portal/endpoint"
	"github.com/ariebrainware/gym-portal/model"
	"github.com/ariebrainware/gym-portal/util"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type apiResp struct {
	Success bool            `json:"success"`
	Error   string          `json:"error"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// requestParams groups HTTP request parameters to reduce function arguments
type requestParams struct {
	method string
	path   string
	body   interface{}
	token  string
}

func doRequest(r http.Handler, params requestParams) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if params.body != nil {
		_ = json.NewEncoder(&buf).Encode(params.body)
	}
	req := httptest.NewRequest(params.method, params.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if params.token != "" {
		req.Header.Set("Authorization", "Bearer "+params.token)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

// ParseAPIResp decodes the response envelope, failing the test on error.
func ParseAPIResp(t *testing.T, rr *httptest.ResponseRecorder) apiResp {
	t.Helper()
	var resp apiResp
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp), "body: %s", rr.Body.String())
	return resp
}

// decodeData unmarshals the envelope's data field into dst.
func decodeData(t *testing.T, rr *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	resp := ParseAPIResp(t, rr)
	require.NoError(t, json.Unmarshal(resp.Data, dst), "data: %s", string(resp.Data))
}

// SetupTestServer opens a private SQLite database, migrates it and returns
// the full API router.
func SetupTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db, err := config.ConnectDatabase()
	require.NoError(t, err)
	require.NoError(t, model.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return endpoint.SetupRouter(db), db
}

type SignupCreds struct {
	Name     string
	Email    string
	Password string
}

type session struct {
	Token  string `json:"token"`
	Role   string `json:"role"`
	UserID uint   `json:"user_id"`
}

// CreateAndLoginUser signs a member up and returns its session.
func CreateAndLoginUser(t *testing.T, r http.Handler, creds SignupCreds) session {
	t.Helper()
	rr := doRequest(r, requestParams{method: http.MethodPost, path: "/api/users/signup", body: map[string]string{
		"name": creds.Name, "email": creds.Email, "password": creds.Password,
	}})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var s session
	decodeData(t, rr, &s)
	require.NotEmpty(t, s.Token)
	return s
}

func login(t *testing.T, r http.Handler, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(r, requestParams{method: http.MethodPost, path: "/api/users/login", body: map[string]string{
		"email": email, "password": password,
	}})
}

// createStaff inserts a user with roleID straight into the database and
// logs it in through the API.
func createStaff(t *testing.T, r http.Handler, db *gorm.DB, roleID uint32, email string) session {
	t.Helper()
	salt, err := util.GenerateSalt()
	require.NoError(t, err)
	hashed, err := util.HashPasswordArgon2("staffpass1", salt)
	require.NoError(t, err)
	user := model.User{
		Name:         "Staff " + model.RoleName(roleID),
		Email:        email,
		Password:     hashed,
		PasswordSalt: salt,
		RoleID:       roleID,
		IsActive:     true,
	}
	require.NoError(t, db.Create(&user).Error)

	rr := login(t, r, email, "staffpass1")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var s session
	decodeData(t, rr, &s)
	return s
}
